package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/vango-dev/vtree/internal/config"
	"github.com/vango-dev/vtree/pkg/archive"
	"github.com/vango-dev/vtree/pkg/component"
	"github.com/vango-dev/vtree/pkg/inspector"
	"github.com/vango-dev/vtree/pkg/metrics"
)

func inspectCmd(load func() (*config.Config, error)) *cobra.Command {
	var (
		addr     string
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Serve the debug inspector over the demo screen",
		Long: `Run the demo screen on a timer and serve the debug inspector.

Endpoints:
  GET  /tree              latest tree snapshot
  GET  /passes            recent passes
  GET  /live              websocket stream of passes
  GET  /metrics           Prometheus metrics
  GET  /snapshots         archived snapshots
  POST /snapshots         archive the latest snapshot
  GET  /snapshots/{name}  an archived snapshot

The archive is configured with archive.dir (local) or archive.bucket
(S3, credentials from the default AWS configuration chain).

Examples:
  vtree inspect
  vtree inspect --addr=:7070 --interval=250ms`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Inspector.Addr = addr
			}
			if interval > 0 {
				cfg.Inspector.Interval = interval.String()
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runInspect(ctx, cfg)
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "a", "", "Listen address (default from config)")
	cmd.Flags().DurationVarP(&interval, "interval", "i", 0, "Time between scripted renders (default from config)")

	return cmd
}

func openStore(ctx context.Context, cfg *config.Config) (archive.Store, error) {
	switch {
	case cfg.Archive.Dir != "":
		return archive.NewDirStore(cfg.ArchivePath())
	case cfg.Archive.Bucket != "":
		client, err := archive.NewS3Client(ctx, cfg.Archive.Region, cfg.Archive.Endpoint)
		if err != nil {
			return nil, err
		}
		return archive.NewS3Store(client, cfg.Archive.Bucket, cfg.Archive.Prefix), nil
	default:
		return nil, nil
	}
}

func runInspect(ctx context.Context, cfg *config.Config) error {
	logger := cfg.Logger(os.Stderr)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(metrics.WithRegistry(reg), metrics.WithNamespace(cfg.Metrics.Namespace))

	store, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	opts := []inspector.Option{
		inspector.WithHistory(cfg.Inspector.History),
		inspector.WithGatherer(reg),
		inspector.WithLogger(logger.With("component", "inspector")),
	}
	if store != nil {
		opts = append(opts, inspector.WithStore(store))
	}
	insp := inspector.New(opts...)

	s := newDemoSession(cfg, logger, m.ObserveListUpdate,
		insp,
		component.ObserverFunc(func(r *component.Report) {
			m.ObservePass(r.Kind, r.Duration, r.Pass.Stats)
			m.SetViews(r.Live, r.Pooled)
		}),
	)

	serveErr := make(chan error, 1)
	go func() { serveErr <- insp.Serve(ctx, cfg.Inspector.Addr) }()

	w := os.Stdout
	success(w, "Inspector on http://%s", cfg.Inspector.Addr)
	info(w, "Rendering every %s, Ctrl+C to stop", cfg.InspectorInterval())

	// All renders happen on this goroutine.
	s.host.Mount(ctx)
	ticker := time.NewTicker(cfg.InspectorInterval())
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			fmt.Fprintln(w, "\n  Shutting down...")
			s.host.Unmount(context.Background())
			return <-serveErr
		case err := <-serveErr:
			return err
		case <-ticker.C:
			name := s.screen.advance()
			r := s.host.Render(ctx)
			logger.Debug("scripted render", "step", name, "pass_id", r.ID)
		}
	}
}
