package application

import (
	"context"
	"sync"
	"time"

	"github.com/bnema/audiolib/internal/domain"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

type countingObserver struct {
	mu                                       sync.Mutex
	created, acquired, released, deferred    int
	discarded, scheduled, started, completed int
	cancelled, skipped                       int
	idle, inUse, pending                     int
}

func (o *countingObserver) SourceCreated() {
	o.mu.Lock()
	o.created++
	o.mu.Unlock()
}

func (o *countingObserver) SourceAcquired() {
	o.mu.Lock()
	o.acquired++
	o.mu.Unlock()
}

func (o *countingObserver) SourceReleased(deferred bool) {
	o.mu.Lock()
	o.released++
	if deferred {
		o.deferred++
	}
	o.mu.Unlock()
}

func (o *countingObserver) SourceDiscarded() {
	o.mu.Lock()
	o.discarded++
	o.mu.Unlock()
}

func (o *countingObserver) PoolSizes(idle, inUse, pending int) {
	o.mu.Lock()
	o.idle, o.inUse, o.pending = idle, inUse, pending
	o.mu.Unlock()
}

func (o *countingObserver) PlaybackScheduled() {
	o.mu.Lock()
	o.scheduled++
	o.mu.Unlock()
}

func (o *countingObserver) PlaybackStarted() {
	o.mu.Lock()
	o.started++
	o.mu.Unlock()
}

func (o *countingObserver) PlaybackCompleted() {
	o.mu.Lock()
	o.completed++
	o.mu.Unlock()
}

func (o *countingObserver) PlaybackCancelled() {
	o.mu.Lock()
	o.cancelled++
	o.mu.Unlock()
}

func (o *countingObserver) PlaybackSkipped() {
	o.mu.Lock()
	o.skipped++
	o.mu.Unlock()
}

type inMemoryLibraryRepo struct {
	mu        sync.Mutex
	libraries []domain.LibraryConfig
	lists     int
	listErr   error
}

func (r *inMemoryLibraryRepo) GetByID(_ context.Context, id domain.LibraryID) (domain.LibraryConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, lib := range r.libraries {
		if lib.ID == id {
			return lib, nil
		}
	}
	return domain.LibraryConfig{}, domain.ErrLibraryNotFound
}

func (r *inMemoryLibraryRepo) List(_ context.Context) ([]domain.LibraryConfig, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lists++
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.LibraryConfig(nil), r.libraries...), nil
}

func (r *inMemoryLibraryRepo) Save(_ context.Context, lib domain.LibraryConfig) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.libraries {
		if r.libraries[i].ID == lib.ID {
			r.libraries[i] = lib
			return nil
		}
	}
	r.libraries = append(r.libraries, lib)
	return nil
}
