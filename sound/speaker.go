package sound

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Speaker plays effects on the default audio device. Every effect is rendered once up front
// so Play only queues a buffer.
type Speaker struct {
	mu      sync.Mutex
	buffers map[string]*beep.Buffer
	mixer   *beep.Mixer
	log     *slog.Logger
	open    bool
}

// NewSpeaker opens the audio device. Callers that can live without sound should log the
// error and go on with a nil sounder.
func NewSpeaker(log *slog.Logger) (*Speaker, error) {
	format := beep.Format{SampleRate: SampleRate, NumChannels: 2, Precision: 2}

	s := &Speaker{
		buffers: make(map[string]*beep.Buffer, len(tones)),
		mixer:   &beep.Mixer{},
		log:     log,
	}
	for _, name := range Names() {
		stream, err := Streamer(name, SampleRate)
		if err != nil {
			return nil, err
		}
		buf := beep.NewBuffer(format)
		buf.Append(stream)
		s.buffers[name] = buf
	}

	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.open = true
	return s, nil
}

// Play queues a sound. It returns false for unknown names or a closed speaker.
func (s *Speaker) Play(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.buffers[name]
	if !ok || !s.open {
		return false
	}

	speaker.Lock()
	s.mixer.Add(buf.Streamer(0, buf.Len()))
	speaker.Unlock()
	return true
}

func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return
	}
	s.open = false
	speaker.Clear()
	speaker.Close()
	s.log.Debug("speaker closed")
}
