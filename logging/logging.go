// Package logging builds the slog loggers used by the binaries and the controller.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Mode selects a logger preset.
type Mode uint8

const (
	// ModeDev writes human readable text at debug level to stderr.
	ModeDev Mode = iota
	// ModeProd writes JSON at info level to stdout.
	ModeProd
	// ModeSilence discards everything.
	ModeSilence
)

func (m Mode) String() string {
	switch m {
	case ModeDev:
		return "dev"
	case ModeProd:
		return "prod"
	case ModeSilence:
		return "silence"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// ParseMode accepts the names printed by Mode.String. Matching ignores case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "dev":
		return ModeDev, nil
	case "prod":
		return ModeProd, nil
	case "silence", "silent", "off":
		return ModeSilence, nil
	default:
		return ModeDev, fmt.Errorf("unknown log mode %q", s)
	}
}

// New returns a logger for mode writing to the preset destination.
func New(mode Mode) *slog.Logger {
	switch mode {
	case ModeProd:
		return NewWriter(mode, os.Stdout)
	default:
		return NewWriter(mode, os.Stderr)
	}
}

// NewWriter returns a logger for mode writing to w. The terminal frontend uses it to keep
// log lines off the screen it draws on.
func NewWriter(mode Mode, w io.Writer) *slog.Logger {
	return slog.New(buildHandler(mode, w))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func buildHandler(mode Mode, w io.Writer) slog.Handler {
	switch mode {
	case ModeDev:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	case ModeProd:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	case ModeSilence:
		return slog.DiscardHandler
	default:
		return slog.NewTextHandler(w, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}
}
