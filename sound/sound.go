// Package sound synthesizes the game's sound effects as short tone sequences. The same
// streams feed the terminal speaker and the PCM buffers of the windowed frontend.
package sound

import (
	"encoding/binary"
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
)

// SampleRate is the rate every effect is rendered at.
const SampleRate = beep.SampleRate(44100)

// ErrUnknown is returned for a name with no tone.
var ErrUnknown = errors.New("unknown sound")

type Wave uint8

const (
	Sine Wave = iota
	Square
	Triangle
	Saw
)

// Note is one tone of an effect. A zero frequency is a rest.
type Note struct {
	Freq float64
	Dur  time.Duration
	Wave Wave
}

const (
	tick  = 50 * time.Millisecond
	short = 120 * time.Millisecond
	long  = 220 * time.Millisecond
)

var tones = map[string][]Note{
	"k0": {{440, tick, Sine}},
	"k1": {{494, tick, Sine}},
	"k2": {{660, tick / 2, Square}},

	"bdysh0": {{110, long, Saw}},
	"bdysh1": {{98, long, Saw}},
	"bdysh2": {{87, long, Saw}},

	"bah10": {{330, long, Triangle}},
	"bah11": {{349, long, Triangle}},
	"bah12": {{370, long, Triangle}},
	"bah13": {{392, long, Triangle}},
	"bah20": {{330, short, Triangle}, {440, long, Triangle}},
	"bah30": {{330, short, Triangle}, {440, short, Triangle}, {554, long, Triangle}},
	"bah40": {{330, short, Triangle}, {440, short, Triangle}, {554, short, Triangle}, {659, long, Triangle}},

	"gameover": {{392, long, Square}, {330, long, Square}, {262, long, Square}, {196, 2 * long, Square}},
	"yeah":     {{523, short, Sine}, {0, tick, Sine}, {659, short, Sine}, {784, long, Sine}},
}

// Names lists every sound with a tone.
func Names() []string {
	return slices.Sorted(maps.Keys(tones))
}

// Notes returns the tone sequence of a sound.
func Notes(name string) ([]Note, bool) {
	notes, ok := tones[name]
	return notes, ok
}

// Streamer renders a sound at sr. The stream ends after the last note.
func Streamer(name string, sr beep.SampleRate) (beep.Streamer, error) {
	notes, ok := tones[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, name)
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		s, err := oscillator(n, sr)
		if err != nil {
			return nil, fmt.Errorf("sound %q: %w", name, err)
		}
		parts = append(parts, beep.Take(sr.N(n.Dur), s))
	}

	return &effects.Gain{Streamer: beep.Seq(parts...), Gain: -0.7}, nil
}

func oscillator(n Note, sr beep.SampleRate) (beep.Streamer, error) {
	if n.Freq == 0 {
		return beep.Silence(-1), nil
	}
	switch n.Wave {
	case Square:
		return generators.SquareTone(sr, n.Freq)
	case Triangle:
		return generators.TriangleTone(sr, n.Freq)
	case Saw:
		return generators.SawtoothTone(sr, n.Freq)
	default:
		return generators.SineTone(sr, n.Freq)
	}
}

// PCM16 renders a sound as interleaved stereo 16-bit little endian samples.
func PCM16(name string, sr beep.SampleRate) ([]byte, error) {
	s, err := Streamer(name, sr)
	if err != nil {
		return nil, err
	}

	var out []byte
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for _, frame := range buf[:n] {
			for _, v := range frame {
				v = min(max(v, -1), 1)
				out = binary.LittleEndian.AppendUint16(out, uint16(int16(v*32767)))
			}
		}
		if !ok || n == 0 {
			return out, nil
		}
	}
}
