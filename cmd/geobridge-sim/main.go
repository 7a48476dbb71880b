// Command geobridge-sim runs a scripted region subscription against the
// in-memory backend and writes the event stream as tagged records.
//
// Usage:
//
//	geobridge-sim --scenario <file.yaml> [flags]
//
// Flags:
//
//	--scenario string      Scenario file (required)
//	--format string        Record format: jsonl, cbor (default "jsonl")
//	--output string        Record output file (default: stdout)
//	--capture string       Capture log file (.glog)
//	--metrics-addr string  Serve Prometheus metrics on this address
//	--log-level string     Log level: debug, info, warn, error (default "info")
//
// Examples:
//
//	# Stream records for a scenario to stdout
//	geobridge-sim --scenario examples/commute.yaml
//
//	# Write CBOR records and a capture log for geobridge-log
//	geobridge-sim --scenario commute.yaml --format cbor --output out.cbor --capture session.glog
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"github.com/geobridge/geobridge-go/pkg/log"
	"github.com/geobridge/geobridge-go/pkg/metrics"
	"github.com/geobridge/geobridge-go/pkg/subscription"
	"github.com/geobridge/geobridge-go/pkg/wire"
)

// Config holds the command-line configuration.
type Config struct {
	Scenario    string
	Format      string
	Output      string
	Capture     string
	MetricsAddr string
	LogLevel    string
}

func parseFlags(args []string) (Config, error) {
	var cfg Config
	fs := pflag.NewFlagSet("geobridge-sim", pflag.ContinueOnError)
	fs.StringVar(&cfg.Scenario, "scenario", "", "Scenario file (required)")
	fs.StringVar(&cfg.Format, "format", "jsonl", "Record format: jsonl, cbor")
	fs.StringVar(&cfg.Output, "output", "", "Record output file (default: stdout)")
	fs.StringVar(&cfg.Capture, "capture", "", "Capture log file (.glog)")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Scenario == "" {
		return cfg, errors.New("--scenario is required")
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger, err := setupLogging(os.Stderr, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("simulation failed", "error", err)
		os.Exit(1)
	}
}

// setupLogging builds the operational logger for level.
func setupLogging(w io.Writer, level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if lvl <= slog.LevelDebug {
		opts.AddSource = true
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func run(ctx context.Context, cfg Config, logger *slog.Logger) error {
	scenario, err := LoadScenario(cfg.Scenario)
	if err != nil {
		return err
	}
	format, err := wire.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}

	var out io.Writer = os.Stdout
	if cfg.Output != "" {
		f, err := os.Create(cfg.Output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	var capture log.Logger = log.NoopLogger{}
	if cfg.Capture != "" {
		fl, err := log.NewFileLogger(cfg.Capture)
		if err != nil {
			return fmt.Errorf("open capture log: %w", err)
		}
		defer func() {
			fl.Close()
			logger.Info("capture written", "path", fl.Path(), "events", fl.Written())
		}()
		capture = fl
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.NewBridgeCollector(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	sim := NewSimulator(scenario, SimulatorConfig{
		Writer:        wire.NewRecordWriter(out, format),
		Logger:        logger,
		Metrics:       collector,
		BridgeOptions: []subscription.Option{subscription.WithCaptureLogger(capture)},
	})

	logger.Info("simulation starting",
		"scenario", cfg.Scenario,
		"path", scenario.Path,
		"ticks", scenario.Ticks,
		"tick", scenario.Tick,
		"listeners", len(scenario.Listeners),
		"format", format.String())

	if cfg.MetricsAddr == "" {
		err = sim.Run(ctx)
	} else {
		err = runWithMetrics(ctx, cfg.MetricsAddr, collector, sim, logger)
	}

	logger.Info("simulation finished", "records", sim.Written(), "stream_errors", sim.StreamErrors())
	return err
}

// runWithMetrics serves the collector while the simulation runs.
func runWithMetrics(ctx context.Context, addr string, collector *metrics.BridgeCollector, sim *Simulator, logger *slog.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g, ctx := errgroup.WithContext(ctx)
	simDone := make(chan struct{})

	g.Go(func() error {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("metrics server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		select {
		case <-ctx.Done():
		case <-simDone:
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		defer close(simDone)
		return sim.Run(ctx)
	})

	return g.Wait()
}
