package sound_test

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/plus3/yetrix/game"
	"github.com/plus3/yetrix/sound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEverySoundHasATone(t *testing.T) {
	assert.ElementsMatch(t, game.SoundNames, sound.Names())
}

func TestPCM16(t *testing.T) {
	const sr = beep.SampleRate(8000)

	for _, name := range sound.Names() {
		t.Run(name, func(t *testing.T) {
			notes, ok := sound.Notes(name)
			require.True(t, ok)

			frames := 0
			for _, n := range notes {
				frames += sr.N(n.Dur)
			}

			pcm, err := sound.PCM16(name, sr)
			require.NoError(t, err)
			// four bytes per stereo frame
			assert.Equal(t, frames*4, len(pcm))

			silent := true
			for _, b := range pcm {
				if b != 0 {
					silent = false
					break
				}
			}
			assert.False(t, silent)
		})
	}
}

func TestUnknownSound(t *testing.T) {
	_, err := sound.Streamer("nope", sound.SampleRate)
	assert.ErrorIs(t, err, sound.ErrUnknown)

	_, err = sound.PCM16("nope", sound.SampleRate)
	assert.ErrorIs(t, err, sound.ErrUnknown)
}
