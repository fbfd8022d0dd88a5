// Package state holds the monitor's best-known view of the printer.
//
// # Overview
//
// The Store sits between the websocket receive loop and everything that
// displays telemetry. The receive loop merges each decoded frame into the
// Store; the UI, the headless reporter and the Prometheus collector read
// copies of the result on their own schedules.
//
//	Writer (receive loop):          Readers:
//	┌──────────────────────┐       ┌──────────────────────┐
//	│ conn.ReadMessage()   │       │ ui tick              │
//	│ carbon.Decode()      │       │ headless reporter    │
//	│ store.Apply(patch)   │──────→│ Collector (scrape)   │
//	│ repeat...            │ mutex │ store.Snapshot()     │
//	└──────────────────────┘       └──────────────────────┘
//
// # Merge Semantics
//
// Apply never replaces the snapshot wholesale. Each carbon.Patch field is
// applied on its own:
//
//	Sticky field, zero value       → previous value kept
//	Sticky field, non-zero value   → overwritten
//	Authoritative field, any value → overwritten
//
// The split follows what the printer actually sends: heater readings and
// layer counts drop to 0 in partial frames, while progress, fan duty and the
// timers really are 0 between jobs.
//
// # Concurrency Model
//
// A sync.RWMutex guards the snapshot:
//
//   - Apply(): write lock, held only while copying fields
//   - Snapshot(): read lock, returns the struct by value
//
// Snapshot has no slices or maps, so the returned copy shares nothing with
// the Store and readers can never observe half of a frame.
//
// # Metrics
//
// Collector implements prometheus.Collector by reading a snapshot at scrape
// time. It reports nothing until the first frame has been applied so that a
// freshly started monitor does not export a printer at 0 °C.
//
// # Testing Considerations
//
// Use NewStore; it seeds the formatted timers with "0". A zero Store works but
// starts with empty timer strings.
package state
