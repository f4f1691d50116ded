package prometheus

import (
	"testing"
	"time"

	"github.com/bnema/audiolib/internal/adapters/playback/memory"
	"github.com/bnema/audiolib/internal/application"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	return c.now
}

func TestPlaybackMetricsRegistersOnce(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	_, err := NewPlaybackMetrics(registry)
	require.NoError(t, err)

	_, err = NewPlaybackMetrics(registry)
	assert.Error(t, err)
}

func TestPlaybackMetricsRecordEvents(t *testing.T) {
	t.Parallel()

	m, err := NewPlaybackMetrics(prometheus.NewRegistry())
	require.NoError(t, err)

	testCases := []struct {
		name   string
		record func()
		metric prometheus.Collector
	}{
		{"scheduled", m.PlaybackScheduled, m.playbackEvents.WithLabelValues("scheduled")},
		{"started", m.PlaybackStarted, m.playbackEvents.WithLabelValues("started")},
		{"completed", m.PlaybackCompleted, m.playbackEvents.WithLabelValues("completed")},
		{"cancelled", m.PlaybackCancelled, m.playbackEvents.WithLabelValues("cancelled")},
		{"skipped", m.PlaybackSkipped, m.playbackEvents.WithLabelValues("skipped")},
		{"created", m.SourceCreated, m.sourcesCreated},
		{"acquired", m.SourceAcquired, m.sourcesAcquired},
		{"discarded", m.SourceDiscarded, m.sourcesDiscarded},
	}

	for _, tc := range testCases {
		tc.record()
		tc.record()
		assert.Equal(t, float64(2), testutil.ToFloat64(tc.metric), tc.name)
	}
}

func TestPlaybackMetricsObservePool(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	m, err := NewPlaybackMetrics(registry)
	require.NoError(t, err)

	clock := &fixedClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	device := memory.NewDevice(clock)
	pool, err := application.NewSourcePool(device, application.PoolConfig{InitialSize: 2}, application.WithPoolObserver(m))
	require.NoError(t, err)

	first := pool.Acquire("sfx")
	second := pool.Acquire("sfx")
	third := pool.Acquire("sfx")

	settings := second.Settings()
	settings.Clip = "boom"
	second.Configure(settings)
	second.Play()

	pool.Release(first, false)
	pool.Release(second, true)

	assert.Equal(t, float64(3), testutil.ToFloat64(m.sourcesCreated))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.sourcesAcquired))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.sourcesReleased.WithLabelValues("immediate")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.poolSources.WithLabelValues("idle")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.poolSources.WithLabelValues("in_use")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.poolSources.WithLabelValues("pending")))

	clock.now = clock.now.Add(time.Second)
	pool.Sweep()
	pool.Release(third, false)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.sourcesReleased.WithLabelValues("deferred")))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.poolSources.WithLabelValues("idle")))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.poolSources.WithLabelValues("pending")))

	count, err := testutil.GatherAndCount(registry, "audiolib_pool_releases_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
