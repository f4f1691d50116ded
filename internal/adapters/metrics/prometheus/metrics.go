// Package prometheus exports source pool and playback activity as Prometheus metrics.
package prometheus

import (
	"github.com/bnema/audiolib/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "audiolib"

// PlaybackMetrics records pool and coordinator events. It is a ports.PoolObserver.
type PlaybackMetrics struct {
	registry *prometheus.Registry

	sourcesCreated   prometheus.Counter
	sourcesAcquired  prometheus.Counter
	sourcesReleased  *prometheus.CounterVec
	sourcesDiscarded prometheus.Counter
	poolSources      *prometheus.GaugeVec
	playbackEvents   *prometheus.CounterVec
}

var _ ports.PoolObserver = (*PlaybackMetrics)(nil)

// NewPlaybackMetrics creates and registers playback metrics on registry.
func NewPlaybackMetrics(registry *prometheus.Registry) (*PlaybackMetrics, error) {
	m := &PlaybackMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *PlaybackMetrics) initMetrics() {
	m.sourcesCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pool",
		Name:      "sources_created_total",
		Help:      "Total number of playback sources constructed by the pool",
	})

	m.sourcesAcquired = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pool",
		Name:      "acquisitions_total",
		Help:      "Total number of sources handed out by the pool",
	})

	m.sourcesReleased = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "releases_total",
			Help:      "Total number of sources returned to the idle list",
		},
		[]string{"mode"}, // mode: immediate, deferred
	)

	m.sourcesDiscarded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "pool",
		Name:      "sources_discarded_total",
		Help:      "Total number of invalidated sources dropped from the pool",
	})

	m.poolSources = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "pool",
			Name:      "sources",
			Help:      "Number of pooled sources by state",
		},
		[]string{"state"}, // state: idle, in_use, pending
	)

	m.playbackEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "playback",
			Name:      "events_total",
			Help:      "Total number of playback requests by outcome",
		},
		[]string{"event"}, // event: scheduled, started, completed, cancelled, skipped
	)
}

func (m *PlaybackMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.sourcesCreated.Describe(ch)
	m.sourcesAcquired.Describe(ch)
	m.sourcesReleased.Describe(ch)
	m.sourcesDiscarded.Describe(ch)
	m.poolSources.Describe(ch)
	m.playbackEvents.Describe(ch)
}

func (m *PlaybackMetrics) Collect(ch chan<- prometheus.Metric) {
	m.sourcesCreated.Collect(ch)
	m.sourcesAcquired.Collect(ch)
	m.sourcesReleased.Collect(ch)
	m.sourcesDiscarded.Collect(ch)
	m.poolSources.Collect(ch)
	m.playbackEvents.Collect(ch)
}

func (m *PlaybackMetrics) SourceCreated() {
	m.sourcesCreated.Inc()
}

func (m *PlaybackMetrics) SourceAcquired() {
	m.sourcesAcquired.Inc()
}

func (m *PlaybackMetrics) SourceReleased(deferred bool) {
	mode := "immediate"
	if deferred {
		mode = "deferred"
	}
	m.sourcesReleased.WithLabelValues(mode).Inc()
}

func (m *PlaybackMetrics) SourceDiscarded() {
	m.sourcesDiscarded.Inc()
}

func (m *PlaybackMetrics) PoolSizes(idle, inUse, pending int) {
	m.poolSources.WithLabelValues("idle").Set(float64(idle))
	m.poolSources.WithLabelValues("in_use").Set(float64(inUse))
	m.poolSources.WithLabelValues("pending").Set(float64(pending))
}

func (m *PlaybackMetrics) PlaybackScheduled() {
	m.playbackEvents.WithLabelValues("scheduled").Inc()
}

func (m *PlaybackMetrics) PlaybackStarted() {
	m.playbackEvents.WithLabelValues("started").Inc()
}

func (m *PlaybackMetrics) PlaybackCompleted() {
	m.playbackEvents.WithLabelValues("completed").Inc()
}

func (m *PlaybackMetrics) PlaybackCancelled() {
	m.playbackEvents.WithLabelValues("cancelled").Inc()
}

func (m *PlaybackMetrics) PlaybackSkipped() {
	m.playbackEvents.WithLabelValues("skipped").Inc()
}
