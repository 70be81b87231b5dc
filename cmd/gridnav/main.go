// Command gridnav runs one replanning session against a grid layout with a
// simulated observer and motion executor.
//
// Usage:
//
//	gridnav [layout.yaml] [script.yaml]
//
// Arguments override GRIDNAV_LAYOUT and GRIDNAV_SCRIPT. Other settings come
// from the environment or a .env file in the working directory.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/s1"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/multierr"

	"github.com/katalvlaran/gridnav/config"
	"github.com/katalvlaran/gridnav/dijkstra"
	"github.com/katalvlaran/gridnav/gridgraph"
	"github.com/katalvlaran/gridnav/planlog"
	"github.com/katalvlaran/gridnav/projector"
	"github.com/katalvlaran/gridnav/replan"
	"github.com/katalvlaran/gridnav/sim"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridnav: %v\n", err)
		os.Exit(2)
	}
	if len(os.Args) > 1 && os.Args[1] != "" {
		cfg.LayoutPath = os.Args[1]
	}
	if len(os.Args) > 2 && os.Args[2] != "" {
		cfg.ScriptPath = os.Args[2]
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "gridnav: %v\n", err)
		os.Exit(2)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	// Context with signal handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\ngridnav: shutting down")
		cancel()
	}()

	rep, err := run(ctx, cfg, logger)
	printReport(rep)
	if err != nil {
		fmt.Fprintf(os.Stderr, "gridnav: %v\n", err)
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

// run wires the grid, the simulated collaborators, metrics and the event log
// into one replan.Loop and runs it.
func run(ctx context.Context, cfg config.Config, logger *slog.Logger) (rep replan.Report, err error) {
	layout, err := gridgraph.LoadLayoutFile(cfg.LayoutPath)
	if err != nil {
		return rep, err
	}
	grid, err := layout.Build()
	if err != nil {
		return rep, fmt.Errorf("%s: %w", cfg.LayoutPath, err)
	}
	start := grid.Start()
	reachable, _, err := dijkstra.Dijkstra(grid, dijkstra.Source(start))
	if err != nil {
		return rep, err
	}
	logger.Info("layout loaded", "name", layout.Name,
		"width", grid.Width(), "height", grid.Height(), "scale", grid.Scale(),
		"obstacles", grid.ObstacleCount(), "reachable", len(reachable),
		"components", len(grid.ConnectedComponents()),
		"goal_reachable", grid.Reachable(start, grid.Goal()))

	script := &sim.Script{}
	if cfg.ScriptPath != "" {
		if script, err = sim.LoadScriptFile(cfg.ScriptPath); err != nil {
			return rep, err
		}
	}
	obs, err := sim.NewObserver(script)
	if err != nil {
		return rep, err
	}
	exec := sim.NewExecutor(projector.Pose{Position: r2.Point{
		X: float64(start.X) * grid.Scale(),
		Y: float64(start.Y) * grid.Scale(),
	}})
	exec.FailAfter(script.FailAfterMoves)

	reg := prometheus.NewRegistry()
	metrics := replan.NewMetrics(reg)
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, logger)
		defer func() {
			sctx, scancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer scancel()
			err = multierr.Append(err, srv.Shutdown(sctx))
		}()
	}

	runID := uuid.NewString()
	var events *planlog.Registry
	if cfg.LogDir != "" {
		events = planlog.NewRegistry(cfg.LogDir)
	}

	loop, err := replan.New(grid, obs, exec,
		replan.WithRunID(runID),
		replan.WithPollTimeout(cfg.PollTimeout),
		replan.WithScanAngle(s1.Angle(cfg.ScanDegrees)*s1.Degree),
		replan.WithFootprint(cfg.Footprint),
		replan.WithMaxScans(cfg.MaxScans),
		replan.WithGoalConfirmed(len(layout.Goals) > 0),
		replan.WithLogger(logger),
		replan.WithMetrics(metrics),
		replan.WithEventLog(events.Open(runID, layout.Name)),
	)
	if err != nil {
		return rep, err
	}

	rep, err = loop.Run(ctx)
	err = multierr.Append(err, events.Close(runID, rep.State.String()))

	return rep, err
}

// serveMetrics exposes reg on addr/metrics until shut down.
func serveMetrics(addr string, reg *prometheus.Registry, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "addr", addr, "error", err)
		}
	}()
	logger.Info("serving metrics", "addr", addr)
	return srv
}

func printReport(r replan.Report) {
	if r.RunID == "" {
		return
	}
	fmt.Printf("run:        %s\n", r.RunID)
	fmt.Printf("state:      %s\n", r.State)
	fmt.Printf("position:   %v heading %.1f°\n", r.Position, r.Heading.Degrees())
	fmt.Printf("goal:       %v (confirmed=%t)\n", r.Goal, r.GoalConfirmed)
	fmt.Printf("plans:      %d (replans %d)\n", r.Plans, r.Replans)
	fmt.Printf("moves:      %d\n", r.Moves)
	fmt.Printf("scans:      %d\n", r.Scans)
	fmt.Printf("detections: %d\n", r.Detections)
}
