// Package app is the composition root of the monitor.
//
// # Overview
//
// Run loads configuration and preferences, installs logging, builds the
// telemetry client and hands it to a front end: the Bubble Tea UI by default,
// or a log-only reporter in headless mode.
//
// # Startup
//
//  1. Load ~/.config/carbon-monitor/config.toml (defaults when missing)
//  2. Apply command-line overrides (poll interval, metrics address, log level)
//  3. Load prefs for the theme and the last printer used
//  4. Open the log: JSON to the log file for the TUI, text to stderr headless
//  5. Pick the initial printer: flag, then config, then prefs
//  6. Create the state.Store, Prometheus registry and monitor.Client
//  7. Serve /metrics when metrics_listen is set
//  8. Run the UI or the reporter until it returns or ctx is cancelled
//
// The front end and the metrics server share an errgroup. Whichever ends
// first cancels the other, and the client is closed before Run returns so
// the websocket is released.
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()          settings
//	       ├─────> prefs.Load()           theme, last printer
//	       ├─────> state.NewStore()       snapshot shared by all readers
//	       ├─────> monitor.NewClient()    supervisor goroutine (websocket)
//	       ├─────> serveMetrics()         optional promhttp endpoint
//	       └─────> ui.Run() / RunReporter()
//
//	Supervisor goroutine:
//	┌─────────────────────────────────────────┐
//	│ poll every PollInterval                 │
//	│  ├─> carbon.Decode(frame)               │
//	│  └─> store.Apply(patch)                 │
//	│      └─> UI / reporter read Snapshot()  │
//	└─────────────────────────────────────────┘
//
// # Headless Reporter
//
// RunReporter logs one line per interval: a waiting message with no target,
// a warning with the last error while offline, or a status summary with
// temperatures, progress, layers and times once telemetry arrives.
//
// # Error Handling
//
// Configuration, log file and metrics listener errors abort startup.
// Connection failures never do; the supervisor keeps retrying and the UI
// shows the state. A cancelled context is a clean exit and Run returns nil.
package app
