// Package carbon implements the Centauri Carbon telemetry wire format.
//
// # Overview
//
// The printer mainboard exposes a websocket at ws://{host}:3030/websocket that
// carries JSON text frames in both directions. The monitor sends a status
// request every couple of seconds and the mainboard answers with a status
// document. This package knows the shape of both frames and nothing about the
// connection carrying them.
//
// # Outbound
//
// NewPollEnvelope builds the status request:
//
//	{"Id":"","Data":{"Cmd":0,"Data":{},"RequestID":"<32 hex>","MainboardID":"","TimeStamp":<epoch ms>,"From":1}}
//
// # Inbound
//
// Decode maps a status document onto a Patch:
//
//	Status
//	├── TempOfNozzle, TempOfHotbed, TempOfBox
//	├── TempTargetNozzle, TempTargetHotbed
//	├── ZOffset
//	├── CurrentFanSpeed { ModelFan, AuxiliaryFan, BoxFan }
//	└── PrintInfo { Status, Progress, CurrentLayer, TotalLayer,
//	                PrintSpeedPct, CurrentTicks, TotalTicks }
//
// Any field may be missing. Numbers are decoded leniently (see Number) and
// missing values read as zero.
//
// # Merge semantics
//
// Frames are frequently partial, and firmware reports an omitted reading as
// 0. Each Patch field is therefore tagged:
//
//   - Sticky: temperatures, setpoints, layer counts and print speed. A zero
//     update keeps the previous value.
//   - Authoritative: progress, print status, fan speeds and the timing fields.
//     These are legitimately zero and always overwrite.
//
// ZOffset is special: a missing value is replaced inside Decode by the caller's
// previous offset, so the patch is authoritative either way.
//
// # Errors
//
//   - ErrNoStatus: the frame had no (or an empty) Status object. Command
//     acknowledgements look like this; callers drop them quietly.
//   - ErrMalformed: the frame was not a JSON object or Status was not an
//     object.
package carbon
