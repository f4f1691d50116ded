package ports

type PoolObserver interface {
	SourceCreated()
	SourceAcquired()
	SourceReleased(deferred bool)
	SourceDiscarded()
	PoolSizes(idle, inUse, pending int)

	PlaybackScheduled()
	PlaybackStarted()
	PlaybackCompleted()
	PlaybackCancelled()
	PlaybackSkipped()
}

type NopObserver struct{}

var _ PoolObserver = NopObserver{}

func (NopObserver) SourceCreated() {}

func (NopObserver) SourceAcquired() {}

func (NopObserver) SourceReleased(bool) {}

func (NopObserver) SourceDiscarded() {}

func (NopObserver) PoolSizes(int, int, int) {}

func (NopObserver) PlaybackScheduled() {}

func (NopObserver) PlaybackStarted() {}

func (NopObserver) PlaybackCompleted() {}

func (NopObserver) PlaybackCancelled() {}

func (NopObserver) PlaybackSkipped() {}
