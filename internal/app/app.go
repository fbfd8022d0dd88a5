package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/carbon"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/config"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/monitor"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/prefs"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/state"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/ui"
)

// Options configure the monitor application. Non-zero fields override the
// config file.
type Options struct {
	ConfigPath    string
	PrefsPath     string // empty uses default ~/.config/carbon-monitor/prefs.toml
	Printer       string
	PollEvery     time.Duration
	MetricsListen string
	LogLevel      string
	Headless      bool
}

// Run starts the telemetry client and blocks in the TUI (or the headless
// reporter) until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := applyOverrides(&cfg, opts); err != nil {
		return err
	}
	userPrefs, _ := prefs.Load(opts.PrefsPath)

	logger, closeLog, err := setupLogging(cfg, opts.Headless)
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	host := initialHost(opts.Printer, cfg.Printer, userPrefs.LastPrinter)
	logger.Info("starting monitor", "printer", host, "headless", opts.Headless, "poll", cfg.PollInterval())

	store := state.NewStore()
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), state.NewCollector(store))
	metrics := monitor.NewMetrics(reg)

	var metricsLn net.Listener
	if cfg.MetricsListen != "" {
		metricsLn, err = net.Listen("tcp", cfg.MetricsListen)
		if err != nil {
			return fmt.Errorf("listen for metrics: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)

	client := monitor.NewClient(gctx, monitor.Options{
		Target:                host,
		TelemetryPort:         cfg.TelemetryPort,
		VideoPort:             cfg.VideoPort,
		PollInterval:          cfg.PollInterval(),
		ReadTimeout:           cfg.ReadTimeout(),
		MaxBackoff:            cfg.MaxBackoff(),
		ForgetTargetOnFailure: cfg.ForgetTargetOnFailure,
		Store:                 store,
		Logger:                logger,
		Metrics:               metrics,
	})
	defer client.Close()

	if metricsLn != nil {
		g.Go(func() error {
			return serveMetrics(gctx, metricsLn, newMetricsHandler(reg), logger)
		})
	}

	g.Go(func() error {
		// The front end ending, for any reason, stops everything else.
		defer cancel()
		if opts.Headless {
			return RunReporter(gctx, client, cfg.PollInterval(), logger)
		}
		return ui.Run(ui.Options{
			Context:   gctx,
			Monitor:   client,
			ThemeName: userPrefs.Theme,
			PrefsPath: opts.PrefsPath,
			LogPath:   cfg.LogFile,
			Logger:    logger,
		})
	})

	err = g.Wait()
	logger.Info("monitor exiting")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func applyOverrides(cfg *config.Config, opts Options) error {
	if opts.PollEvery > 0 {
		cfg.PollSeconds = opts.PollEvery.Seconds()
	}
	if opts.MetricsListen != "" {
		cfg.MetricsListen = opts.MetricsListen
	}
	if opts.LogLevel != "" {
		if _, err := config.ParseLevel(opts.LogLevel); err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		cfg.LogLevel = opts.LogLevel
	}
	return nil
}

// initialHost picks the first non-empty host in precedence order.
func initialHost(candidates ...string) string {
	for _, c := range candidates {
		if host := carbon.NormalizeHost(c); host != "" {
			return host
		}
	}
	return ""
}
