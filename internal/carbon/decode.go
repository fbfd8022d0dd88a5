package carbon

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNoStatus reports a frame without status data, such as a command
	// acknowledgement. It is expected and safe to ignore.
	ErrNoStatus = errors.New("telemetry frame has no status")
	// ErrMalformed reports a frame that is not a JSON telemetry document.
	ErrMalformed = errors.New("malformed telemetry frame")
)

// Decode turns one raw telemetry frame into a merge-patch.
//
// prevZOffset is carried forward when the frame omits ZOffset; a present
// ZOffset (including 0) always wins.
func Decode(frame []byte, prevZOffset float64) (Patch, error) {
	var doc Document
	if err := json.Unmarshal(frame, &doc); err != nil {
		return Patch{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	raw := bytes.TrimSpace(doc.Status)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return Patch{}, ErrNoStatus
	}

	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return Patch{}, fmt.Errorf("%w: status: %v", ErrMalformed, err)
	}
	if len(keys) == 0 {
		return Patch{}, ErrNoStatus
	}

	var status StatusInfo
	if err := json.Unmarshal(raw, &status); err != nil {
		return Patch{}, fmt.Errorf("%w: status: %v", ErrMalformed, err)
	}
	return buildPatch(status, prevZOffset), nil
}

func buildPatch(status StatusInfo, prevZOffset float64) Patch {
	var info PrintInfo
	if status.PrintInfo != nil {
		info = *status.PrintInfo
	}
	fans := status.CurrentFanSpeed

	total := nonNegative(info.TotalTicks.Int64())
	elapsed := nonNegative(info.CurrentTicks.Int64())
	remaining := max(0, total-elapsed)

	zOffset := prevZOffset
	if status.ZOffset != nil {
		zOffset = status.ZOffset.Float()
	}

	return Patch{
		NozzleTemp:       sticky(status.TempOfNozzle.Float()),
		BedTemp:          sticky(status.TempOfHotbed.Float()),
		EnclosureTemp:    sticky(status.TempOfBox.Float()),
		TargetNozzleTemp: sticky(status.TempTargetNozzle.Float()),
		TargetBedTemp:    sticky(status.TempTargetHotbed.Float()),
		ZOffset:          authoritative(round(zOffset, 3)),

		ModelFanSpeed: authoritative(percent(fans.ModelFan.Int())),
		AuxFanSpeed:   authoritative(percent(fans.AuxiliaryFan.Int())),
		BoxFanSpeed:   authoritative(percent(fans.BoxFan.Int())),

		Progress:     authoritative(math.Min(100, math.Max(0, round(info.Progress.Float(), 1)))),
		PrintStatus:  authoritative(StatusFromCode(info.Status.Int())),
		CurrentLayer: sticky(max(0, info.CurrentLayer.Int())),
		TotalLayers:  sticky(max(0, info.TotalLayer.Int())),
		PrintSpeed:   sticky(max(0, info.PrintSpeedPct.Int())),

		ElapsedTimeRaw:   authoritative(elapsed),
		RemainingTimeRaw: authoritative(remaining),
		TotalTimeRaw:     authoritative(total),
		ElapsedTime:      authoritative(FormatDuration(elapsed)),
		RemainingTime:    authoritative(FormatDuration(remaining)),
		TotalTime:        authoritative(FormatDuration(total)),
	}
}

func round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

func percent(v int) int {
	return min(100, max(0, v))
}

func nonNegative(v int64) int64 {
	return max(0, v)
}
