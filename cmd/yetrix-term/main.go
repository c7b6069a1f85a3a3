package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/yetrix/config"
	"github.com/plus3/yetrix/game"
	"github.com/plus3/yetrix/internal/session"
	"github.com/plus3/yetrix/sound"
	"github.com/plus3/yetrix/view"
)

// quitSignals stop the game loop the same way Esc does.
var quitSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file (defaults to $YETRIX_CONFIG).")
	logMode := flag.String("log", "silent", "Log mode: dev, prod or silent. Logs share the terminal with the game.")
	mute := flag.Bool("mute", false, "Disable sound.")
	fps := flag.Int("fps", 60, "Redraws per second.")
	flag.Parse()

	if err := run(*configPath, *logMode, *mute, *fps); err != nil {
		fmt.Fprintf(os.Stderr, "yetrix-term: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logMode string, mute bool, fps int) error {
	ctx, stop := signal.NotifyContext(context.Background(), quitSignals...)
	defer stop()

	var (
		scene   *view.Scene
		speaker *sound.Speaker
	)
	s, err := session.Open(session.Options{ConfigPath: configPath, LogMode: logMode}, func(cfg config.Config, log *slog.Logger) []game.Option {
		var sounder view.Sounder
		if !mute {
			sp, err := sound.NewSpeaker(log)
			if err != nil {
				log.Warn("sound disabled", "err", err)
			} else {
				speaker, sounder = sp, sp
			}
		}
		scene = view.NewScene(cfg, sounder, log)
		return []game.Option{game.WithPresenter(scene), game.WithListener(scene)}
	})
	if err != nil {
		return err
	}
	if speaker != nil {
		defer speaker.Close()
	}
	s.Restore(ctx)

	screen, err := tcell.NewScreen()
	if err == nil {
		err = screen.Init()
	}
	if err != nil {
		return errors.Join(fmt.Errorf("terminal: %w", err), s.Close(context.Background()))
	}

	t := &terminal{screen: screen, session: s, scene: scene}
	t.loop(ctx, time.Second/time.Duration(max(fps, 1)))
	screen.Fini()

	return s.Close(context.Background())
}

type terminal struct {
	screen  tcell.Screen
	session *session.Session
	scene   *view.Scene
}

// loop owns the controller: key events and ticks are both handled here.
func (t *terminal) loop(ctx context.Context, frame time.Duration) {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if quitKey(ev) {
					return
				}
				if intent, ok := intentFor(ev); ok {
					t.session.Controller.Apply(intent)
				}
			case *tcell.EventResize:
				t.screen.Sync()
			}

		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			t.session.Controller.Advance(dt)
			t.scene.Update(dt)
			draw(t.screen, t.session.Controller, t.scene)
		}
	}
}
