package application

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bnema/audiolib/internal/domain"
	"github.com/bnema/audiolib/internal/ports"
)

const DefaultTickInterval = 16 * time.Millisecond

// Coordinator resolves playback requests, drives delayed starts, and returns
// sources to the pool when playback completes. Hosts call Tick once per frame
// or hand the loop to Run.
type Coordinator struct {
	pool     *SourcePool
	clock    ports.Clock
	mixer    ports.Mixer
	focus    ports.FocusDetector
	logger   *slog.Logger
	observer ports.PoolObserver

	mu        sync.Mutex
	scheduler *Scheduler
	playing   int
}

type CoordinatorOption func(*Coordinator)

func WithClock(clock ports.Clock) CoordinatorOption {
	return func(c *Coordinator) {
		if clock != nil {
			c.clock = clock
		}
	}
}

func WithMixer(mixer ports.Mixer) CoordinatorOption {
	return func(c *Coordinator) {
		c.mixer = mixer
	}
}

func WithFocusDetector(focus ports.FocusDetector) CoordinatorOption {
	return func(c *Coordinator) {
		c.focus = focus
	}
}

func WithLogger(logger *slog.Logger) CoordinatorOption {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger.With("module", "playback")
		}
	}
}

func WithObserver(observer ports.PoolObserver) CoordinatorOption {
	return func(c *Coordinator) {
		if observer != nil {
			c.observer = observer
		}
	}
}

func NewCoordinator(pool *SourcePool, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		pool:      pool,
		clock:     ports.SystemClock{},
		logger:    slog.New(slog.DiscardHandler),
		observer:  ports.NopObserver{},
		scheduler: NewScheduler(),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

type playOptions struct {
	delay        time.Duration
	delaySet     bool
	defaultRoute domain.RouteID
}

type PlayOption func(*playOptions)

// WithDelay replaces the delay configured on the library entry.
func WithDelay(delay time.Duration) PlayOption {
	return func(o *playOptions) {
		o.delay = delay
		o.delaySet = true
	}
}

// WithDefaultRoute is used when the resolved entry has no route.
func WithDefaultRoute(route domain.RouteID) PlayOption {
	return func(o *playOptions) {
		o.defaultRoute = route
	}
}

// PlayKey resolves key through lib and its ancestors and plays the selected
// clip. It reports false, allocating nothing, when no clip resolves.
func (c *Coordinator) PlayKey(lib *domain.Library, key string, opts ...PlayOption) (TaskID, bool) {
	if lib == nil {
		return "", false
	}

	var o playOptions
	for _, opt := range opts {
		opt(&o)
	}

	clip, ok := lib.ClipForKey(key)
	if !ok {
		c.observer.PlaybackSkipped()
		c.logger.Debug("no clip for key", "library", lib.ID(), "key", key)
		return "", false
	}

	route := lib.RouteForKey(key)
	if route == "" {
		route = o.defaultRoute
	}
	delay := lib.DelayForKey(key)
	if o.delaySet {
		delay = o.delay
	}

	return c.Play(clip, route, delay, lib.VolumeForKey(key))
}

// Play starts clip on route after delay. A zero delay starts immediately.
func (c *Coordinator) Play(clip domain.ClipID, route domain.RouteID, delay time.Duration, volume float64) (TaskID, bool) {
	if clip == "" {
		c.observer.PlaybackSkipped()
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	req := playRequest{clip: clip, route: route, volume: volume}
	if delay <= 0 {
		c.startLocked(req)
		return newTaskID(), true
	}

	id := c.scheduler.Schedule(c.clock.Now().Add(delay), func() {
		c.startLocked(req)
	})
	c.observer.PlaybackScheduled()
	c.logger.Debug("playback scheduled", "clip", clip, "delay", delay, "task", id)

	return id, true
}

// Cancel drops a delayed playback that has not started. Started playback
// cannot be cancelled through its task id.
func (c *Coordinator) Cancel(id TaskID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.scheduler.Cancel(id) {
		return false
	}
	c.observer.PlaybackCancelled()
	return true
}

type playRequest struct {
	clip   domain.ClipID
	route  domain.RouteID
	volume float64
}

func (c *Coordinator) startLocked(req playRequest) {
	src := c.pool.Acquire(req.route)
	settings := src.Settings()
	settings.Clip = req.clip
	settings.Volume = req.volume
	src.Configure(settings)
	src.Play()

	c.playing++
	c.observer.PlaybackStarted()
	c.logger.Debug("playback started", "clip", req.clip, "route", req.route, "volume", req.volume)

	c.scheduler.Watch(src, func() {
		c.playing--
		c.pool.Release(src, false)
		c.observer.PlaybackCompleted()
	})
}

// AcquireSource hands a pooled source to the caller, who must release it.
func (c *Coordinator) AcquireSource(route domain.RouteID) ports.Source {
	return c.pool.Acquire(route)
}

func (c *Coordinator) ReleaseSource(src ports.Source, waitTillComplete bool) {
	c.pool.Release(src, waitTillComplete)
}

// Tick reclaims deferred releases, completes finished playback, and starts
// delayed playback that is due. Playback started in a tick is first checked
// for completion on the next one.
func (c *Coordinator) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pool.Sweep()
	c.scheduler.PollWatches()
	for _, action := range c.scheduler.PopDue(c.clock.Now()) {
		action()
	}
}

// Run calls Tick every interval until ctx is done.
func (c *Coordinator) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Tick()
		}
	}
}

// Active reports scheduled plus playing requests owned by the coordinator.
func (c *Coordinator) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.scheduler.Pending() + c.playing
}

func (c *Coordinator) PoolStats() PoolStats {
	return c.pool.Stats()
}

func (c *Coordinator) MasterVolume() float64 {
	return c.Volume(domain.MasterVolumeParam)
}

func (c *Coordinator) SetMasterVolume(linear float64) {
	c.SetVolume(domain.MasterVolumeParam, linear)
}

// Volume reads a mixer parameter in decibels and returns it as linear gain.
// It returns 0 when no mixer is configured.
func (c *Coordinator) Volume(group string) float64 {
	if c.mixer == nil {
		return 0
	}

	db, ok := c.mixer.GetFloat(group)
	if !ok {
		c.logger.Debug("mixer parameter not exposed", "param", group)
	}
	return domain.DecibelToLinear(db)
}

func (c *Coordinator) SetVolume(group string, linear float64) {
	if c.mixer == nil {
		return
	}

	if !c.mixer.SetFloat(group, domain.LinearToDecibel(linear)) {
		c.logger.Warn("mixer parameter not exposed", "param", group)
	}
}

// Value reads a raw mixer parameter.
func (c *Coordinator) Value(name string) (float64, bool) {
	if c.mixer == nil {
		return 0, false
	}
	return c.mixer.GetFloat(name)
}

func (c *Coordinator) SetValue(name string, value float64) bool {
	if c.mixer == nil {
		return false
	}
	return c.mixer.SetFloat(name, value)
}

func (c *Coordinator) IsOtherAudioPlaying() bool {
	if c.focus == nil {
		return false
	}
	return c.focus.IsOtherAudioPlaying()
}
