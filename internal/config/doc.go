// Package config loads the monitor's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/carbon-monitor/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing, zero or empty, use defaults
//
// # Default Values
//
//   - Config file: ~/.config/carbon-monitor/config.toml
//   - Telemetry port: 3030
//   - Video port: 3031
//   - Poll interval: 2s
//   - Read timeout: 15s
//   - Maximum reconnect backoff: 60s
//   - Log file: ~/.local/state/carbon-monitor/monitor.log
//   - Log level: info
//
// # TOML Format
//
//	printer = "192.168.1.50"
//	telemetry_port = 3030
//	video_port = 3031
//	poll_seconds = 2
//	read_timeout_seconds = 15
//	max_backoff_seconds = 60
//	forget_target_on_failure = false
//	log_file = "~/.local/state/carbon-monitor/monitor.log"
//	log_level = "info"
//	metrics_listen = "127.0.0.1:9108"
//
// Every field is optional. The printer value accepts a bare host, host:port
// or a full ws:// URL and is reduced to the host. Tilde expansion is
// performed for log_file.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures (e.g., cannot determine home directory)
//   - File read errors (except os.ErrNotExist, which triggers defaults)
//   - TOML parsing errors and unknown log levels
//
// Missing config files are NOT an error. The monitor runs without any
// configuration and waits for a printer address from the UI.
package config
