package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMixerExposedParameters(t *testing.T) {
	t.Parallel()

	mixer := NewMixer("MasterVolume", "Music")

	value, ok := mixer.GetFloat("MasterVolume")
	assert.True(t, ok)
	assert.Equal(t, 0.0, value)

	assert.True(t, mixer.SetFloat("Music", -12))
	value, ok = mixer.GetFloat("Music")
	assert.True(t, ok)
	assert.Equal(t, -12.0, value)
}

func TestMixerRejectsUnknownParameters(t *testing.T) {
	t.Parallel()

	mixer := NewMixer()

	assert.False(t, mixer.SetFloat("Reverb", 1))
	_, ok := mixer.GetFloat("Reverb")
	assert.False(t, ok)
}
