// Package memory provides a simulated playback device whose sources advance on
// a ports.Clock instead of rendering audio.
package memory

import (
	"sync"
	"time"

	"github.com/bnema/audiolib/internal/domain"
	"github.com/bnema/audiolib/internal/ports"
)

const defaultClipDuration = time.Second

type Playback struct {
	Source int
	Clip   domain.ClipID
	Route  domain.RouteID
	Volume float64
	At     time.Time
}

type Device struct {
	clock ports.Clock

	mu              sync.Mutex
	durations       map[domain.ClipID]time.Duration
	defaultDuration time.Duration
	sources         []*Source
	started         []Playback
}

var _ ports.SourceFactory = (*Device)(nil)

type Option func(*Device)

func WithClipDuration(clip domain.ClipID, d time.Duration) Option {
	return func(dev *Device) {
		dev.durations[clip] = d
	}
}

// WithDefaultDuration sets the length of clips without an explicit duration.
func WithDefaultDuration(d time.Duration) Option {
	return func(dev *Device) {
		if d > 0 {
			dev.defaultDuration = d
		}
	}
}

func NewDevice(clock ports.Clock, opts ...Option) *Device {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	dev := &Device{
		clock:           clock,
		durations:       map[domain.ClipID]time.Duration{},
		defaultDuration: defaultClipDuration,
	}
	for _, opt := range opts {
		opt(dev)
	}

	return dev
}

func (d *Device) NewSource() ports.Source {
	d.mu.Lock()
	defer d.mu.Unlock()

	src := &Source{device: d, id: len(d.sources) + 1}
	d.sources = append(d.sources, src)
	return src
}

// Invalidate marks src as destroyed by the host.
func (d *Device) Invalidate(src ports.Source) {
	s, ok := src.(*Source)
	if !ok || s.device != d {
		return
	}

	d.mu.Lock()
	s.invalid = true
	s.playing = false
	d.mu.Unlock()
}

// SourceCount reports how many sources the device has constructed.
func (d *Device) SourceCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	return len(d.sources)
}

// Playing reports how many sources are currently audible.
func (d *Device) Playing() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := 0
	for _, src := range d.sources {
		if src.isPlayingLocked() {
			count++
		}
	}
	return count
}

// Started returns every playback started on the device, oldest first.
func (d *Device) Started() []Playback {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]Playback(nil), d.started...)
}

func (d *Device) clipDuration(clip domain.ClipID) time.Duration {
	if clip == "" {
		return 0
	}
	if duration, ok := d.durations[clip]; ok {
		return duration
	}
	return d.defaultDuration
}
