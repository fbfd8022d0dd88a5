// Package monitor keeps a telemetry session open to one Centauri Carbon.
//
// # Lifecycle
//
// A Supervisor waits until a Target host is set, dials
// ws://<host>:3030/websocket, and then runs three goroutines under an
// errgroup for the life of the socket:
//
//   - a request loop that writes a status poll every PollInterval
//   - a receive loop that decodes each frame into a carbon.Patch and applies
//     it to the state.Store
//   - a release watcher that tears the socket down when the context is
//     cancelled or the target changes
//
// Connected is cleared before the socket is closed, so readers never see a
// connected flag for a dead session.
//
// # Failures
//
// Errors are classified as transport, cancelled or unexpected (see Kind).
// Transport and unexpected failures both back off before the next attempt;
// the delay squares from 2s and is capped at MaxBackoff. The backoff resets
// only after a session that applied at least one frame. Frames that fail to
// decode are counted and dropped without ending the session.
//
// By default the target survives a transport failure and is retried.
// ForgetTargetOnFailure clears it instead, leaving the supervisor idle until
// a new host is set.
//
// # Facade
//
// Client bundles a Target, a Store and a running Supervisor behind the small
// surface the UI needs.
package monitor
