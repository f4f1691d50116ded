package memory

import (
	"time"

	"github.com/bnema/audiolib/internal/domain"
	"github.com/bnema/audiolib/internal/ports"
)

type Source struct {
	device *Device
	id     int

	settings  domain.SourceSettings
	playing   bool
	startedAt time.Time
	invalid   bool
}

var _ ports.Source = (*Source)(nil)

func (s *Source) ID() int {
	return s.id
}

func (s *Source) Configure(settings domain.SourceSettings) {
	s.device.mu.Lock()
	s.settings = settings
	s.device.mu.Unlock()
}

func (s *Source) Settings() domain.SourceSettings {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()

	return s.settings
}

func (s *Source) Play() {
	d := s.device
	d.mu.Lock()
	defer d.mu.Unlock()

	if s.invalid {
		return
	}

	now := d.clock.Now()
	s.playing = true
	s.startedAt = now
	d.started = append(d.started, Playback{
		Source: s.id,
		Clip:   s.settings.Clip,
		Route:  s.settings.Route,
		Volume: s.settings.Volume,
		At:     now,
	})
}

func (s *Source) Stop() {
	s.device.mu.Lock()
	s.playing = false
	s.device.mu.Unlock()
}

func (s *Source) IsPlaying() bool {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()

	return s.isPlayingLocked()
}

func (s *Source) Valid() bool {
	s.device.mu.Lock()
	defer s.device.mu.Unlock()

	return !s.invalid
}

func (s *Source) isPlayingLocked() bool {
	if !s.playing || s.invalid {
		return false
	}
	if s.settings.Loop && s.settings.Clip != "" {
		return true
	}

	remaining := s.device.clipDuration(s.settings.Clip) - s.settings.Position
	pitch := s.settings.Pitch
	if pitch <= 0 {
		pitch = 1
	}
	length := time.Duration(float64(remaining) / pitch)

	if s.device.clock.Now().Sub(s.startedAt) >= length {
		s.playing = false
		return false
	}
	return true
}
