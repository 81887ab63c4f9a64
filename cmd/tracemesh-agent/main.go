// Package main provides the entry point for tracemesh-agent.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/tracemesh-go/internal/agent/config"
	"github.com/yndnr/tracemesh-go/internal/core/service"
	"github.com/yndnr/tracemesh-go/internal/export"
	"github.com/yndnr/tracemesh-go/internal/infra/buildinfo"
	"github.com/yndnr/tracemesh-go/internal/infra/confloader"
	"github.com/yndnr/tracemesh-go/internal/infra/shutdown"
	"github.com/yndnr/tracemesh-go/internal/remoteconfig"
	"github.com/yndnr/tracemesh-go/internal/sampler"
	"github.com/yndnr/tracemesh-go/internal/server/httpserver"
	"github.com/yndnr/tracemesh-go/internal/telemetry/logger"
	"github.com/yndnr/tracemesh-go/internal/telemetry/metric"
)

func main() {
	app := &cli.App{
		Name:    "tracemesh-agent",
		Usage:   "TraceMesh host agent",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				EnvVars: []string{"TRACEMESH_CONFIG"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := initLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	log.Info("starting tracemesh-agent",
		"version", buildinfo.Version,
		"commit", buildinfo.Commit,
		"service", cfg.Service.Name,
		"env", cfg.Service.Env)

	// Metrics registry
	promReg := prometheus.NewRegistry()
	metrics := metric.NewRegistry(promReg)

	// Sampling state, adjusted live by the remote configuration
	samp, err := sampler.NewRateLimited(cfg.Sampling.Rate, cfg.Sampling.RateLimit)
	if err != nil {
		return fmt.Errorf("init sampler: %w", err)
	}

	// Span exporter
	sender := export.NewHTTPSender(cfg.Export.Endpoint,
		export.WithAPIKey(cfg.Export.APIKey))
	exporter := export.New(sender,
		export.WithLogger(log),
		export.WithMetrics(metrics),
		export.WithBatchSize(cfg.Export.BatchSize),
		export.WithFlushInterval(cfg.Export.FlushInterval),
		export.WithQueueSize(cfg.Export.QueueSize))
	go exporter.Start()

	// Tracer service
	tracer := service.NewTracerService(samp, exporter, log, metrics)

	shutdownHandler := shutdown.NewHandler(30 * time.Second)

	// Hooks run in reverse registration order. The exporter is registered
	// first so it stops last and flushes spans finished while the other
	// components were shutting down.
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down span exporter")
		return exporter.Shutdown(ctx)
	})

	// Span intake server
	if cfg.Intake.Enabled {
		router := httpserver.NewRouter(&httpserver.RouterConfig{
			Tracer:          tracer,
			Logger:          log,
			EnableAccessLog: cfg.Intake.AccessLog,
		})
		intakeServer := httpserver.New(cfg.Intake.Addr, router)
		go func() {
			log.Info("span intake listening", "addr", cfg.Intake.Addr)
			if err := intakeServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("span intake server error", "error", err)
			}
		}()

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down span intake server")
			return intakeServer.Shutdown(ctx)
		})
	}

	// Remote configuration poller
	if cfg.RemoteConfig.Enabled {
		fetcher := remoteconfig.NewHTTPFetcher(cfg.RemoteConfig.Endpoint,
			remoteconfig.WithAPIKey(cfg.RemoteConfig.APIKey))
		updater := remoteconfig.NewLiveUpdater(samp,
			remoteconfig.WithUpdaterLogger(log))
		poller := remoteconfig.NewPoller(fetcher, updater,
			remoteconfig.WithLogger(log),
			remoteconfig.WithMetrics(metrics),
			remoteconfig.WithPollInterval(cfg.RemoteConfig.PollInterval))
		go poller.Start()

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down configuration poller")
			poller.Shutdown()
			select {
			case <-poller.Done():
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}

	// Live reload of the local config file. Only the log level is
	// applied at runtime; everything else needs a restart.
	if configFile := c.String("config"); configFile != "" {
		watcher, err := confloader.NewWatcher(confloader.WithWatcherLogger(log))
		if err != nil {
			return fmt.Errorf("init config watcher: %w", err)
		}
		if err := watcher.Watch(configFile); err != nil {
			return fmt.Errorf("watch config file: %w", err)
		}
		watcher.OnChange(func(path string) {
			reloaded, err := loadConfig(path)
			if err != nil {
				log.Warn("config reload skipped", "path", path, "error", err)
				return
			}
			if reloaded.Log.Level != cfg.Log.Level {
				log.Info("log level changed", "from", cfg.Log.Level, "to", reloaded.Log.Level)
				logger.SetLevel(reloaded.Log.Level)
				cfg.Log.Level = reloaded.Log.Level
			}
		})
		watcher.StartAsync()

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			return watcher.Stop()
		})
	}

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		metricsServer := &http.Server{
			Addr:    cfg.Metrics.Addr,
			Handler: metricsMux(promReg),
		}
		go func() {
			log.Info("metrics server listening", "addr", cfg.Metrics.Addr)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server error", "error", err)
			}
		}()

		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			log.Info("shutting down metrics server")
			return metricsServer.Shutdown(ctx)
		})
	}

	log.Info("agent started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("agent stopped gracefully")
	return nil
}

// loadConfig loads configuration from file and environment.
func loadConfig(configFile string) (*config.AgentConfig, error) {
	cfg := config.Default()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}

	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// initLogger initializes the structured logger.
func initLogger(cfg *config.AgentConfig) (logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return nil, err
	}

	logger.SetDefault(log)
	return log, nil
}

// metricsMux serves /metrics plus a trivial health probe.
func metricsMux(g prometheus.Gatherer) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metric.HandlerFor(g))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}
