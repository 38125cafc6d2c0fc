package audio_test

import (
	"testing"

	"github.com/plus3/warpcore/audio"
	"github.com/stretchr/testify/assert"
)

func TestNewSourceDefaults(t *testing.T) {
	src := audio.NewSource("hit.wav")

	assert.Equal(t, "hit.wav", src.Path)
	assert.Equal(t, 1.0, src.Volume)
	assert.Equal(t, 1.0, src.PlaybackRate)
	assert.Equal(t, 0.5, src.Pan)
}

func TestSourceBuilderDoesNotAlias(t *testing.T) {
	base := audio.NewSource("hit.wav")
	loud := base.WithVolume(2).WithRate(0.5).WithPan(1)

	assert.Equal(t, 1.0, base.Volume)
	assert.Equal(t, 2.0, loud.Volume)
	assert.Equal(t, 0.5, loud.PlaybackRate)
	assert.Equal(t, 1.0, loud.Pan)
	assert.NoError(t, audio.Discard.Play(loud))
}
