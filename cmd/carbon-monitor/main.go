package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/app"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("carbon-monitor", flag.ContinueOnError)
	configPath := fs.String("config", "", "config file path (default ~/.config/carbon-monitor/config.toml)")
	printer := fs.StringP("printer", "p", "", "printer host or address")
	poll := fs.Duration("poll", 0, "status request interval (default from config, 2s)")
	metricsListen := fs.String("metrics-listen", "", "serve Prometheus metrics on this address")
	logLevel := fs.String("log-level", "", "debug, info, warn or error")
	headless := fs.Bool("headless", false, "log status lines instead of starting the TUI")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath:    *configPath,
		Printer:       *printer,
		MetricsListen: *metricsListen,
		LogLevel:      *logLevel,
		Headless:      *headless,
	}
	if *poll > 0 {
		opts.PollEvery = *poll
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "carbon-monitor: %v\n", err)
		return 1
	}
	return 0
}
