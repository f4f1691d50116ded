package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	metricsadapter "github.com/bnema/audiolib/internal/adapters/metrics/prometheus"
	libraryrender "github.com/bnema/audiolib/internal/adapters/render/library"
	tomlrepo "github.com/bnema/audiolib/internal/adapters/repo/toml"
	"github.com/bnema/audiolib/internal/application"
	"github.com/bnema/audiolib/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/viper"
)

const (
	envPrefix         = "AUDIOLIB"
	cacheSizeKey      = "playback.cache_size"
	tickIntervalKey   = "playback.tick_interval"
	clipDurationKey   = "playback.clip_duration"
	logLevelKey       = "log.level"
	defaultLogLevel   = "warn"
	defaultClipLength = time.Second
)

type app struct {
	libraries       *application.LibraryService
	librariesPath   string
	logger          *slog.Logger
	registry        *prometheus.Registry
	metrics         *metricsadapter.PlaybackMetrics
	libraryRenderer func([]application.LibraryView, libraryrender.RenderOptions) (string, error)
	playback        playbackConfig
	clock           ports.Clock
}

type playbackConfig struct {
	CacheSize    int
	TickInterval time.Duration
	ClipDuration time.Duration
}

func wireApp() (*app, error) {
	cfg := viper.New()
	cfg.SetEnvPrefix(envPrefix)
	cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	cfg.AutomaticEnv()
	cfg.SetDefault(cacheSizeKey, application.DefaultSourceCacheSize)
	cfg.SetDefault(tickIntervalKey, application.DefaultTickInterval)
	cfg.SetDefault(clipDurationKey, defaultClipLength)
	cfg.SetDefault(logLevelKey, defaultLogLevel)

	repo, err := tomlrepo.NewLibraryRepository(cfg)
	if err != nil {
		return nil, fmt.Errorf("wire library repository: %w", err)
	}

	logger, err := newLogger(os.Stderr, cfg.GetString(logLevelKey))
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	playback := playbackConfig{
		CacheSize:    cfg.GetInt(cacheSizeKey),
		TickInterval: cfg.GetDuration(tickIntervalKey),
		ClipDuration: cfg.GetDuration(clipDurationKey),
	}
	if playback.CacheSize < 0 {
		return nil, fmt.Errorf("%s must not be negative, got %d", cacheSizeKey, playback.CacheSize)
	}

	registry := prometheus.NewRegistry()
	metrics, err := metricsadapter.NewPlaybackMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("wire playback metrics: %w", err)
	}

	return &app{
		libraries:       application.NewLibraryService(repo, application.WithLibraryLogger(logger)),
		librariesPath:   repo.Path(),
		logger:          logger,
		registry:        registry,
		metrics:         metrics,
		libraryRenderer: libraryrender.Render,
		playback:        playback,
		clock:           ports.SystemClock{},
	}, nil
}
