package carbon

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Document mirrors a telemetry frame pushed by the printer. Only the status
// branch is decoded; everything else in the frame is ignored.
type Document struct {
	Status json.RawMessage `json:"Status"`
}

// StatusInfo mirrors the Status object of a telemetry frame.
type StatusInfo struct {
	TempOfHotbed     Number     `json:"TempOfHotbed"`
	TempOfBox        Number     `json:"TempOfBox"`
	TempOfNozzle     Number     `json:"TempOfNozzle"`
	TempTargetHotbed Number     `json:"TempTargetHotbed"`
	TempTargetNozzle Number     `json:"TempTargetNozzle"`
	ZOffset          *Number    `json:"ZOffset"`
	CurrentFanSpeed  FanSpeeds  `json:"CurrentFanSpeed"`
	PrintInfo        *PrintInfo `json:"PrintInfo"`
}

// FanSpeeds holds per-fan duty in percent.
type FanSpeeds struct {
	AuxiliaryFan Number `json:"AuxiliaryFan"`
	BoxFan       Number `json:"BoxFan"`
	ModelFan     Number `json:"ModelFan"`
}

// PrintInfo describes the active (or last) print job.
type PrintInfo struct {
	Status        Number `json:"Status"`
	TotalTicks    Number `json:"TotalTicks"`
	CurrentTicks  Number `json:"CurrentTicks"`
	Progress      Number `json:"Progress"`
	PrintSpeedPct Number `json:"PrintSpeedPct"`
	CurrentLayer  Number `json:"CurrentLayer"`
	TotalLayer    Number `json:"TotalLayer"`
}

// Number is a leniently decoded JSON number. Firmware revisions disagree on
// whether counters are sent as numbers or strings, so both are accepted.
// Booleans decode as 0/1; null, empty and unparsable values decode as 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	*n = 0
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case 'n':
		return nil
	case 't':
		*n = 1
		return nil
	case 'f':
		return nil
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			*n = finite(v)
		}
		return nil
	case '{', '[':
		return nil
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return nil
	}
	*n = finite(v)
	return nil
}

// finite maps NaN and ±Inf to 0.
func finite(v float64) Number {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Number(v)
}

// Float returns the value as float64.
func (n Number) Float() float64 { return float64(n) }

// Int returns the value truncated toward zero.
func (n Number) Int() int { return int(n) }

// Int64 returns the value truncated toward zero.
func (n Number) Int64() int64 { return int64(n) }
