// Zetta Collector - RCS Zetta Station Status Collection
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/zetta-collector

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tomtom215/zetta-collector/internal/api"
	"github.com/tomtom215/zetta-collector/internal/collector"
	"github.com/tomtom215/zetta-collector/internal/config"
	"github.com/tomtom215/zetta-collector/internal/logging"
	"github.com/tomtom215/zetta-collector/internal/supervisor"
	"github.com/tomtom215/zetta-collector/internal/supervisor/services"
)

// options are the parsed command-line flags.
type options struct {
	configPath string
	once       bool
	format     string
	host       string
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := flag.NewFlagSet("zetta-collector", flag.ContinueOnError)
	fs.SetOutput(stderr)

	opts := &options{}
	fs.StringVar(&opts.configPath, "config", "", "config file path (default: CONFIG_PATH or ./config.yaml)")
	fs.BoolVar(&opts.once, "once", false, "poll once, print the document batch and exit")
	fs.StringVar(&opts.format, "format", formatJSON, "output format for -once: json or table")
	fs.StringVar(&opts.host, "host", "", "Zetta host (overrides ZETTA_HOST)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if opts.format != formatJSON && opts.format != formatTable {
		return nil, fmt.Errorf("unknown -format %q (want json or table)", opts.format)
	}
	return opts, nil
}

// loadConfig layers .env, koanf sources and the -host override, then
// validates the result.
func loadConfig(opts *options) (*config.Config, error) {
	// A missing .env is normal; real environment variables win over it.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg, err := config.LoadWithKoanf(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.host != "" {
		cfg.Zetta.Host = opts.host
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		os.Exit(2)
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(cfg.Logging.ToLoggingConfig())
	cfg.Zetta.LogSummary()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if opts.once {
		if err := runOnce(ctx, cfg, opts.format, os.Stdout); err != nil {
			stop()
			logging.Fatal().Err(err).Msg("One-shot poll failed")
		}
		return
	}

	if err := runService(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		stop()
		logging.Fatal().Err(err).Msg("Supervisor exited with error")
	}
	logging.Info().Msg("Shutdown complete")
}

// runOnce polls a single cycle and writes the batch to out.
func runOnce(ctx context.Context, cfg *config.Config, format string, out io.Writer) error {
	c, err := collector.New(ctx, cfg.Zetta, cfg.Poll)
	if err != nil {
		return err
	}

	docs := c.Poll(ctx)
	return writeDocuments(out, format, docs)
}

// runService runs the supervised poll loop and, when enabled, the HTTP API
// until ctx is cancelled.
func runService(ctx context.Context, cfg *config.Config) error {
	logging.Info().Msg("Starting Zetta collector with supervisor tree")

	c, err := collector.New(ctx, cfg.Zetta, cfg.Poll)
	if err != nil {
		return err
	}
	pollService := collector.NewService(c, cfg.Poll.Interval)

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	if err != nil {
		return fmt.Errorf("failed to create supervisor tree: %w", err)
	}

	tree.AddCollectionService(services.NewCollectorService(pollService))

	if cfg.Server.Enabled {
		router := api.NewRouter(
			api.NewHandler(pollService),
			api.NewChiMiddleware(api.ChiMiddlewareConfigFromServer(&cfg.Server)),
		)
		server := &http.Server{
			Addr:              cfg.Server.Address(),
			Handler:           router.SetupChi(),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.Server.Timeout,
			WriteTimeout:      cfg.Server.Timeout + cfg.Zetta.Timeout,
			IdleTimeout:       2 * cfg.Server.Timeout,
		}
		tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
		logging.Info().Str("address", server.Addr).Msg("HTTP API enabled")
	} else {
		logging.Info().Msg("HTTP API disabled")
	}

	err = tree.Serve(ctx)

	if report, reportErr := tree.UnstoppedServiceReport(); reportErr == nil && len(report) > 0 {
		for _, svc := range report {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop within timeout")
		}
	}
	return err
}
