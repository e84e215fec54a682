package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/mercator-hq/routecore/pkg/capabilities"
	"github.com/mercator-hq/routecore/pkg/cli"
	"github.com/mercator-hq/routecore/pkg/config"
	"github.com/mercator-hq/routecore/pkg/conversation"
	"github.com/mercator-hq/routecore/pkg/providers"
	"github.com/mercator-hq/routecore/pkg/providers/aggregator"
	"github.com/mercator-hq/routecore/pkg/providers/custom"
	"github.com/mercator-hq/routecore/pkg/providers/hosted"
	"github.com/mercator-hq/routecore/pkg/providers/nativea"
	"github.com/mercator-hq/routecore/pkg/providers/nativeb"
	"github.com/mercator-hq/routecore/pkg/providers/nativec"
	"github.com/mercator-hq/routecore/pkg/registry"
	"github.com/mercator-hq/routecore/pkg/restriction"
	"github.com/mercator-hq/routecore/pkg/sandbox"
	"github.com/mercator-hq/routecore/pkg/telemetry/logging"
	"github.com/mercator-hq/routecore/pkg/telemetry/metrics"
	"github.com/mercator-hq/routecore/pkg/tooldriver"
	"github.com/mercator-hq/routecore/pkg/transport"
)

var serveFlags struct {
	logLevel string
	dryRun   bool
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the routecore stdio loop",
	Long: `Start routecore's stdio JSON-RPC loop with the specified configuration.

The loop resolves each incoming tool call to a concrete provider, enforces
the per-provider allow-list, assembles file/conversation context within the
configured token budget, and dispatches generation.

Examples:
  # Start with default config
  routecore serve

  # Start with a custom config
  routecore serve --config /etc/routecore/config.yaml

  # Validate config without serving
  routecore serve --dry-run`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	serveCmd.Flags().BoolVar(&serveFlags.dryRun, "dry-run", false, "validate config without serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := config.Initialize(cfgFile); err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}
	cfg := config.GetConfig()

	if serveFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = serveFlags.logLevel
	}

	logger, err := logging.New(logging.Config{
		Level:          cfg.Telemetry.Logging.Level,
		Format:         cfg.Telemetry.Logging.Format,
		AddSource:      cfg.Telemetry.Logging.AddSource,
		RedactPII:      cfg.Telemetry.Logging.RedactSecrets,
		BufferSize:     cfg.Telemetry.Logging.BufferSize,
		RedactPatterns: cfg.Telemetry.Logging.RedactPatterns,
	})
	if err != nil {
		return cli.NewCommandError("serve", fmt.Errorf("failed to initialize logging: %w", err))
	}
	defer logger.Shutdown()

	if serveFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	printServeBanner(cfg)

	serveCtx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	restrictionSvc := buildRestrictionService(cfg)

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, prometheus.NewRegistry())
		restrictionSvc.SetMetrics(collector)
		fmt.Fprintln(os.Stderr, "✓ Metrics collector initialized")
	}

	reg := registry.New()
	registered := registerProviders(serveCtx, reg, cfg, restrictionSvc, collector, logger)
	fmt.Fprintf(os.Stderr, "✓ Providers registered (%d of %d configured)\n", registered, len(cfg.Providers))

	backend, closeBackend, err := buildConversationBackend(cfg)
	if err != nil {
		return cli.NewCommandError("serve", fmt.Errorf("failed to initialize conversation backend: %w", err))
	}
	defer closeBackend()

	store := conversation.NewStoreWithTTL(backend, cfg.Conversation.ThreadTTL)
	if collector != nil {
		store.SetMetrics(collector)
	}

	sweeper, err := conversation.NewSweeperService(backend, fmt.Sprintf("@every %s", cfg.Conversation.CleanupInterval), logger)
	if err != nil {
		return cli.NewCommandError("serve", fmt.Errorf("failed to initialize conversation sweeper: %w", err))
	}
	if collector != nil {
		sweeper.SetMetrics(collector)
	}
	sweeper.Start()
	defer sweeper.Stop()
	fmt.Fprintf(os.Stderr, "✓ Conversation store initialized (backend=%s, ttl=%s)\n", cfg.Conversation.Backend, cfg.Conversation.ThreadTTL)

	validator := sandbox.NewValidator(cfg.Workspace.Root, cfg.Workspace.HomeOverride)

	driver := tooldriver.New(reg, restrictionSvc, store, validator)
	if collector != nil {
		driver.SetMetrics(collector)
	}

	rpc := transport.New(driver, reg, cfg.DefaultModel, "routecore", Version, logger)

	var metricsSrv *http.Server
	if collector != nil {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		metricsSrv = &http.Server{Addr: cfg.Telemetry.Metrics.ListenAddr, Handler: mux}
		go func() {
			if err := metricsSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
		fmt.Fprintf(os.Stderr, "✓ Metrics listening on %s\n", cfg.Telemetry.Metrics.ListenAddr)
	}

	watchPaths := []string{cfg.CustomModelsPath}
	if cfgFile != "" {
		watchPaths = append(watchPaths, cfgFile)
	}
	if fw, err := config.NewFileWatcher(config.DefaultWatcherConfig(watchPaths...), logger, func() error {
		return config.ReloadConfig(cfgFile)
	}); err != nil {
		logger.Warn("config hot-reload disabled", "error", err)
	} else {
		fw.Start()
		defer fw.Stop()
		fmt.Fprintln(os.Stderr, "✓ Config hot-reload enabled")
	}

	fmt.Fprintln(os.Stderr, "✓ routecore ready, serving on stdio")

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- rpc.Serve(serveCtx, os.Stdin, os.Stdout)
	}()

	sigChan := cli.WaitForShutdown()
	select {
	case sig := <-sigChan:
		fmt.Fprintf(os.Stderr, "\nReceived signal %s, shutting down\n", sig)
		cancel()
	case err := <-serveErr:
		if err != nil && err != context.Canceled {
			logger.Error("stdio loop stopped", "error", err)
		}
	}

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server did not shut down cleanly", "error", err)
		}
	}

	return nil
}

func printServeBanner(cfg *config.Config) {
	fmt.Fprintf(os.Stderr, "routecore v%s\n", Version)
	fmt.Fprintf(os.Stderr, "Loading configuration from: %s\n", cfgFile)
	fmt.Fprintln(os.Stderr, "✓ Configuration loaded")
	slog.Debug("workspace root", "root", cfg.Workspace.Root)
	slog.Debug("default model", "model", cfg.DefaultModel)
}

func buildRestrictionService(cfg *config.Config) *restriction.Service {
	allowLists := make(map[capabilities.ProviderKind]string, len(cfg.Providers))
	for name, p := range cfg.Providers {
		if p.AllowedModels != "" {
			allowLists[capabilities.ProviderKind(name)] = p.AllowedModels
		}
	}
	return restriction.New(allowLists)
}

// healthCheckStarter is satisfied by providers whose embedded
// *providers.Base carries a pooled HTTP transport with a background
// health checker.
type healthCheckStarter interface {
	StartHealthChecker(ctx context.Context)
}

// providerMetricsSink is the subset of providers.MetricsSink every
// concrete provider's embedded *providers.Base promotes, used here so
// registerProviders doesn't need to import pkg/telemetry/metrics.
type providerMetricsSink interface {
	SetMetrics(sink providers.MetricsSink)
}

func registerProviders(ctx context.Context, reg *registry.Registry, cfg *config.Config, restrictionSvc *restriction.Service, collector *metrics.Collector, logger *logging.Logger) int {
	count := 0
	for name, p := range cfg.Providers {
		if p.APIKey == "" {
			continue
		}

		pc := providers.ProviderConfig{
			Name:                name,
			Type:                name,
			BaseURL:             p.BaseURL,
			APIKey:              p.APIKey,
			Timeout:             p.Timeout,
			MaxRetries:          p.MaxRetries,
			HealthCheckInterval: 0,
			MaxIdleConns:        0,
		}

		var prov providers.Provider
		switch capabilities.ProviderKind(name) {
		case capabilities.NativeA:
			prov = nativea.New(pc, restrictionSvc)
		case capabilities.NativeB:
			prov = nativeb.New(pc, restrictionSvc)
		case capabilities.NativeC:
			prov = nativec.New(pc, restrictionSvc)
		case capabilities.Aggregator:
			agg, err := aggregator.New(pc, cfg.CustomModelsPath, restrictionSvc)
			if err != nil {
				logger.Warn("failed to initialize aggregator provider", "error", err)
				continue
			}
			prov = agg
		case capabilities.Custom:
			cust, err := custom.New(pc, cfg.CustomModelsPath, restrictionSvc)
			if err != nil {
				logger.Warn("failed to initialize custom provider", "error", err)
				continue
			}
			prov = cust
		case capabilities.Hosted:
			prov = hosted.New(pc, restrictionSvc)
		default:
			logger.Warn("skipping unknown provider kind", "kind", name)
			continue
		}

		if collector != nil {
			if sinkable, ok := prov.(providerMetricsSink); ok {
				sinkable.SetMetrics(collector)
			}
		}

		if hcs, ok := prov.(healthCheckStarter); ok {
			hcs.StartHealthChecker(ctx)
		}

		reg.Register(prov)
		count++
	}
	return count
}

func buildConversationBackend(cfg *config.Config) (conversation.Backend, func(), error) {
	switch cfg.Conversation.Backend {
	case "sqlite":
		backend, err := conversation.NewSQLiteBackend(cfg.Conversation.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return backend, func() { backend.Close() }, nil
	default:
		backend := conversation.NewMemoryBackend()
		return backend, func() { backend.Close() }, nil
	}
}
