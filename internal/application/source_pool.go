package application

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/bnema/audiolib/internal/domain"
	"github.com/bnema/audiolib/internal/ports"
)

const DefaultSourceCacheSize = 4

type PoolConfig struct {
	InitialSize int
}

func (c PoolConfig) Validate() error {
	if c.InitialSize < 0 {
		return fmt.Errorf("%w: initial size %d is negative", domain.ErrInvalidPoolConfig, c.InitialSize)
	}

	return nil
}

type PoolStats struct {
	Idle    int
	InUse   int
	Pending int
	Created int
}

type sourceState int

const (
	sourceIdle sourceState = iota
	sourceInUse
	sourcePendingRelease
)

// SourcePool recycles playback sources. It grows on demand and never shrinks.
// Every tracked source is in exactly one of idle, in use, or pending release.
// Source implementations must be comparable.
type SourcePool struct {
	factory  ports.SourceFactory
	logger   *slog.Logger
	observer ports.PoolObserver

	mu      sync.Mutex
	idle    []ports.Source
	pending []ports.Source
	states  map[ports.Source]sourceState
	created int
}

type PoolOption func(*SourcePool)

func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(p *SourcePool) {
		if logger != nil {
			p.logger = logger.With("module", "pool")
		}
	}
}

func WithPoolObserver(observer ports.PoolObserver) PoolOption {
	return func(p *SourcePool) {
		if observer != nil {
			p.observer = observer
		}
	}
}

// NewSourcePool creates the pool and warms it with cfg.InitialSize sources.
func NewSourcePool(factory ports.SourceFactory, cfg PoolConfig, opts ...PoolOption) (*SourcePool, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: source factory is nil", domain.ErrInvalidPoolConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &SourcePool{
		factory:  factory,
		logger:   slog.New(slog.DiscardHandler),
		observer: ports.NopObserver{},
		states:   map[ports.Source]sourceState{},
	}
	for _, opt := range opts {
		opt(p)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < cfg.InitialSize; i++ {
		src := p.createLocked()
		p.states[src] = sourceIdle
		p.idle = append(p.idle, src)
	}
	p.reportLocked()

	return p, nil
}

// Acquire hands out an idle source, creating one when none is left, reset to
// default settings on route.
func (p *SourcePool) Acquire(route domain.RouteID) ports.Source {
	p.mu.Lock()
	defer p.mu.Unlock()

	var src ports.Source
	for src == nil && len(p.idle) > 0 {
		candidate := p.idle[0]
		p.idle[0] = nil
		p.idle = p.idle[1:]
		if !candidate.Valid() {
			p.discardLocked(candidate)
			continue
		}
		src = candidate
	}
	if src == nil {
		src = p.createLocked()
	}

	src.Configure(domain.DefaultSourceSettings(route))
	p.states[src] = sourceInUse
	p.observer.SourceAcquired()
	p.reportLocked()

	return src
}

// Release returns src to the pool. With waitTillComplete set, a playing,
// non-looping source keeps playing and is reclaimed by Sweep once it stops.
// Nil, idle, pending and foreign sources are ignored.
func (p *SourcePool) Release(src ports.Source, waitTillComplete bool) {
	if src == nil {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	state, ok := p.states[src]
	if !ok || state != sourceInUse {
		p.logger.Debug("ignoring release of source not in use", "tracked", ok)
		return
	}
	if !src.Valid() {
		p.discardLocked(src)
		p.reportLocked()
		return
	}

	if waitTillComplete && src.IsPlaying() && !src.Settings().Loop {
		p.states[src] = sourcePendingRelease
		p.pending = append(p.pending, src)
		p.reportLocked()
		return
	}

	p.reclaimLocked(src)
	p.observer.SourceReleased(false)
	p.reportLocked()
}

// Sweep reclaims pending sources that stopped playing and drops invalidated
// ones. It returns the number of sources put back in the idle list.
func (p *SourcePool) Sweep() int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.pending) == 0 {
		return 0
	}

	reclaimed := 0
	for i := len(p.pending) - 1; i >= 0; i-- {
		src := p.pending[i]
		valid := src.Valid()
		if valid && src.IsPlaying() {
			continue
		}

		p.pending = append(p.pending[:i], p.pending[i+1:]...)
		if !valid {
			p.discardLocked(src)
			continue
		}
		p.reclaimLocked(src)
		p.observer.SourceReleased(true)
		reclaimed++
	}
	p.reportLocked()

	return reclaimed
}

func (p *SourcePool) Stats() PoolStats {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.statsLocked()
}

func (p *SourcePool) statsLocked() PoolStats {
	stats := PoolStats{Idle: len(p.idle), Pending: len(p.pending), Created: p.created}
	stats.InUse = len(p.states) - stats.Idle - stats.Pending
	return stats
}

func (p *SourcePool) createLocked() ports.Source {
	src := p.factory.NewSource()
	settings := src.Settings()
	settings.PlayOnAwake = false
	src.Configure(settings)

	p.created++
	p.observer.SourceCreated()
	p.logger.Debug("source created", "created", p.created)

	return src
}

func (p *SourcePool) reclaimLocked(src ports.Source) {
	src.Stop()
	settings := src.Settings()
	settings.Clip = ""
	src.Configure(settings)

	p.states[src] = sourceIdle
	p.idle = append(p.idle, src)
}

func (p *SourcePool) discardLocked(src ports.Source) {
	delete(p.states, src)
	p.observer.SourceDiscarded()
	p.logger.Debug("discarded invalid source")
}

func (p *SourcePool) reportLocked() {
	stats := p.statsLocked()
	p.observer.PoolSizes(stats.Idle, stats.InUse, stats.Pending)
}
