package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/bnema/audiolib/internal/adapters/focus"
	mixeradapter "github.com/bnema/audiolib/internal/adapters/mixer/memory"
	playbackadapter "github.com/bnema/audiolib/internal/adapters/playback/memory"
	"github.com/bnema/audiolib/internal/application"
	"github.com/bnema/audiolib/internal/domain"
	"github.com/spf13/cobra"
)

var errNothingToPlay = errors.New("nothing to play")

type playback struct {
	device      *playbackadapter.Device
	coordinator *application.Coordinator
}

func (a *app) newPlayback() (*playback, error) {
	device := playbackadapter.NewDevice(a.clock, playbackadapter.WithDefaultDuration(a.playback.ClipDuration))

	pool, err := application.NewSourcePool(device,
		application.PoolConfig{InitialSize: a.playback.CacheSize},
		application.WithPoolLogger(a.logger),
		application.WithPoolObserver(a.metrics),
	)
	if err != nil {
		return nil, fmt.Errorf("create source pool: %w", err)
	}

	coordinator := application.NewCoordinator(pool,
		application.WithClock(a.clock),
		application.WithMixer(mixeradapter.NewMixer(domain.MasterVolumeParam)),
		application.WithFocusDetector(focus.Unsupported{}),
		application.WithLogger(a.logger),
		application.WithObserver(a.metrics),
	)

	return &playback{device: device, coordinator: coordinator}, nil
}

func newPlayCmd(app *app) *cobra.Command {
	var (
		libraryID    string
		key          string
		delay        time.Duration
		route        string
		repeat       int
		masterVolume float64
		showMetrics  bool
	)

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a library key on the simulated device and report what was heard",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if repeat < 1 {
				return fmt.Errorf("--repeat must be at least 1, got %d", repeat)
			}

			lib, err := app.libraries.Library(cmd.Context(), domain.LibraryID(libraryID))
			if err != nil {
				return err
			}

			pb, err := app.newPlayback()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("master-volume") {
				pb.coordinator.SetMasterVolume(masterVolume)
			}

			var opts []application.PlayOption
			if cmd.Flags().Changed("delay") {
				opts = append(opts, application.WithDelay(delay))
			}
			if route != "" {
				opts = append(opts, application.WithDefaultRoute(domain.RouteID(route)))
			}

			for i := 0; i < repeat; i++ {
				if _, ok := pb.coordinator.PlayKey(lib, key, opts...); !ok {
					return fmt.Errorf("%w: key %q in library %s resolves to no clip", errNothingToPlay, key, lib.ID())
				}
			}

			wait := func(ctx context.Context) error {
				return waitForPlayback(ctx, pb.coordinator, app.playback.TickInterval)
			}
			label := fmt.Sprintf("Playing %s/%s...", lib.ID(), key)
			if err := runPlaybackSpinner(cmd.Context(), cmd.ErrOrStderr(), label, wait); err != nil {
				return err
			}

			writePlaybackReport(cmd.OutOrStdout(), pb)
			if showMetrics {
				return writeMetrics(cmd.OutOrStdout(), app)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&libraryID, "library", "", "Library ID")
	cmd.Flags().StringVar(&key, "key", "", "Key to play")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Override the delay configured on the entry")
	cmd.Flags().StringVar(&route, "route", "", "Route used when the entry has none")
	cmd.Flags().IntVar(&repeat, "repeat", 1, "Number of times to play the key")
	cmd.Flags().Float64Var(&masterVolume, "master-volume", 1, "Master volume in [0,1]")
	cmd.Flags().BoolVar(&showMetrics, "metrics", false, "Print pool and playback metrics")
	_ = cmd.MarkFlagRequired("library")
	_ = cmd.MarkFlagRequired("key")

	return cmd
}

// waitForPlayback drives the coordinator until every request it owns has
// finished or ctx is done.
func waitForPlayback(ctx context.Context, coordinator *application.Coordinator, interval time.Duration) error {
	if interval <= 0 {
		interval = application.DefaultTickInterval
	}

	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		coordinator.Run(runCtx, interval)
	}()
	defer func() {
		cancel()
		<-done
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for coordinator.Active() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

func writePlaybackReport(w io.Writer, pb *playback) {
	for _, played := range pb.device.Started() {
		route := string(played.Route)
		if route == "" {
			route = "default"
		}
		_, _ = fmt.Fprintf(w, "played %s on %s (volume %.2f)\n", played.Clip, route, played.Volume)
	}

	stats := pb.coordinator.PoolStats()
	_, _ = fmt.Fprintf(w, "master volume: %.2f\n", pb.coordinator.MasterVolume())
	_, _ = fmt.Fprintf(w, "pool: created %d, idle %d, in use %d, pending %d\n",
		stats.Created, stats.Idle, stats.InUse, stats.Pending)
}

func writeMetrics(w io.Writer, app *app) error {
	families, err := app.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	lines := []string{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			labels := make([]string, 0, len(metric.GetLabel()))
			for _, label := range metric.GetLabel() {
				labels = append(labels, fmt.Sprintf("%s=%q", label.GetName(), label.GetValue()))
			}

			name := family.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			var value float64
			switch {
			case metric.GetCounter() != nil:
				value = metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				value = metric.GetGauge().GetValue()
			default:
				continue
			}
			lines = append(lines, fmt.Sprintf("%s %g", name, value))
		}
	}

	sort.Strings(lines)
	for _, line := range lines {
		_, _ = fmt.Fprintln(w, line)
	}
	return nil
}
