// Package focus reports whether another application is producing audio.
package focus

import "github.com/bnema/audiolib/internal/ports"

// Unsupported is used on platforms without an audio-focus query.
type Unsupported struct{}

var _ ports.FocusDetector = Unsupported{}

func (Unsupported) IsOtherAudioPlaying() bool {
	return false
}
