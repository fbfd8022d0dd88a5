// Package ui provides the Bubble Tea terminal interface for the monitor.
//
// # Architecture Overview
//
// Model reads the telemetry client through the Monitor interface and never
// touches the websocket. Every refresh tick (one second by default) a
// command takes a consistent read of the client (snapshot, connected flag,
// state, target, last error, video URL) off the UI goroutine and delivers it
// as a statusMsg. A second command tails the JSON log file for the events
// panel.
//
// # Package Structure
//
//   - app.go: Model, Update loop, messages, commands and Run
//   - header.go: status bar, connection badge and command bar
//   - panels.go: temperature, fan, print, camera and events panels
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings (bubbles/key)
//   - theme.go: color palettes and Lip Gloss styles
//   - layout.go, strings.go: layout constants and formatting helpers
//
// # Layout
//
//	┌ carbon ● CONNECTED  Printer: 10.0.0.5  [Printing]  updated now ┐
//	│ /:Printer address  X:Disconnect  T:Cycle theme  ?:Help  q:Quit │
//	├──────────────────────────────┬─────────────────────────────────┤
//	│ Temperatures                 │ Print                           │
//	│ Fans                         │ Camera                          │
//	├──────────────────────────────┴─────────────────────────────────┤
//	│ Events                                                         │
//	└────────────────────────────────────────────────────────────────┘
//
// Terminals narrower than LayoutCompactWidth stack every panel.
//
// # Keyboard
//
//   - / or e: edit the printer address (enter connects, esc cancels, an
//     empty address disconnects)
//   - X: disconnect
//   - T: cycle theme (saved to prefs)
//   - ? or h: help
//   - q or ctrl+c: quit
//
// A submitted address is normalized (scheme, port and path are dropped),
// handed to Monitor.SetTarget and remembered in prefs as last_printer.
package ui
