package ports

import "github.com/bnema/audiolib/internal/domain"

// Source is the external playback primitive a pool hands out.
type Source interface {
	Configure(settings domain.SourceSettings)
	Settings() domain.SourceSettings
	Play()
	Stop()
	IsPlaying() bool
	// Valid reports false once the host has destroyed the handle.
	Valid() bool
}

type SourceFactory interface {
	NewSource() Source
}

// Mixer exposes named numeric parameters of the host mixing graph.
type Mixer interface {
	GetFloat(name string) (float64, bool)
	SetFloat(name string, value float64) bool
}

type FocusDetector interface {
	IsOtherAudioPlaying() bool
}
