package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/carbon"
)

// Config holds the monitor settings read from config.toml.
type Config struct {
	Printer               string
	TelemetryPort         int
	VideoPort             int
	PollSeconds           float64
	ReadTimeoutSeconds    float64
	MaxBackoffSeconds     float64
	ForgetTargetOnFailure bool
	LogFile               string
	LogLevel              string
	MetricsListen         string
}

const (
	defaultConfigPath  = "~/.config/carbon-monitor/config.toml"
	defaultLogFile     = "~/.local/state/carbon-monitor/monitor.log"
	defaultLogLevel    = "info"
	defaultPollSeconds = 2
	defaultReadTimeout = 15
	defaultMaxBackoff  = 60
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		TelemetryPort:      carbon.DefaultTelemetryPort,
		VideoPort:          carbon.DefaultVideoPort,
		PollSeconds:        defaultPollSeconds,
		ReadTimeoutSeconds: defaultReadTimeout,
		MaxBackoffSeconds:  defaultMaxBackoff,
		LogFile:            mustExpand(defaultLogFile),
		LogLevel:           defaultLogLevel,
	}
}

// Load locates and parses config.toml, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Printer               string  `toml:"printer"`
		TelemetryPort         int     `toml:"telemetry_port"`
		VideoPort             int     `toml:"video_port"`
		PollSeconds           float64 `toml:"poll_seconds"`
		ReadTimeoutSeconds    float64 `toml:"read_timeout_seconds"`
		MaxBackoffSeconds     float64 `toml:"max_backoff_seconds"`
		ForgetTargetOnFailure bool    `toml:"forget_target_on_failure"`
		LogFile               string  `toml:"log_file"`
		LogLevel              string  `toml:"log_level"`
		MetricsListen         string  `toml:"metrics_listen"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.Printer = carbon.NormalizeHost(raw.Printer)
	if raw.TelemetryPort > 0 {
		cfg.TelemetryPort = raw.TelemetryPort
	}
	if raw.VideoPort > 0 {
		cfg.VideoPort = raw.VideoPort
	}
	if raw.PollSeconds > 0 {
		cfg.PollSeconds = raw.PollSeconds
	}
	if raw.ReadTimeoutSeconds > 0 {
		cfg.ReadTimeoutSeconds = raw.ReadTimeoutSeconds
	}
	if raw.MaxBackoffSeconds > 0 {
		cfg.MaxBackoffSeconds = raw.MaxBackoffSeconds
	}
	cfg.ForgetTargetOnFailure = raw.ForgetTargetOnFailure
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.ToLower(strings.TrimSpace(raw.LogLevel)); level != "" {
		cfg.LogLevel = level
	}
	cfg.MetricsListen = strings.TrimSpace(raw.MetricsListen)

	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// PollInterval is the delay between status requests.
func (c Config) PollInterval() time.Duration {
	return seconds(c.PollSeconds, defaultPollSeconds)
}

// ReadTimeout is how long a session may stay silent before it is dropped.
func (c Config) ReadTimeout() time.Duration {
	return seconds(c.ReadTimeoutSeconds, defaultReadTimeout)
}

// MaxBackoff caps the reconnect delay.
func (c Config) MaxBackoff() time.Duration {
	return seconds(c.MaxBackoffSeconds, defaultMaxBackoff)
}

// Level returns the configured slog level, or info when unset.
func (c Config) Level() slog.Level {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLevel accepts debug, info, warn and error. Empty means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// ExpandPath resolves "~" and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func seconds(v, fallback float64) time.Duration {
	if v <= 0 {
		v = fallback
	}
	return time.Duration(v * float64(time.Second))
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
