package carbon

import "fmt"

// Phase is the normalized print state.
type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseIdle
	PhasePreparing
	PhasePrinting
	PhasePaused
	PhasePausing
	PhaseResuming
	PhaseComplete
)

var phaseNames = map[Phase]string{
	PhaseUnknown:   "Unknown",
	PhaseIdle:      "Idle",
	PhasePreparing: "Preparing",
	PhasePrinting:  "Printing",
	PhasePaused:    "Paused",
	PhasePausing:   "Pausing",
	PhaseResuming:  "Resuming",
	PhaseComplete:  "Complete",
}

// String returns the display name of the phase.
func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return phaseNames[PhaseUnknown]
}

// statusCodes maps PrintInfo.Status codes reported by the mainboard.
// Homing, heating and auto-leveling all report as preparing.
var statusCodes = map[int]Phase{
	0:  PhaseIdle,
	1:  PhasePreparing,
	5:  PhasePausing,
	6:  PhasePaused,
	9:  PhaseComplete,
	13: PhasePrinting,
	16: PhasePreparing,
	20: PhaseResuming,
	21: PhasePreparing,
}

// PrintStatus pairs a normalized phase with the raw code it was decoded from.
// The zero value is the "nothing reported yet" status.
type PrintStatus struct {
	Phase Phase
	Code  int
}

// StatusFromCode maps a raw status code. Codes outside the table keep
// PhaseUnknown and preserve the code for diagnostics.
func StatusFromCode(code int) PrintStatus {
	return PrintStatus{Phase: statusCodes[code], Code: code}
}

// Known reports whether the code mapped to a known phase.
func (s PrintStatus) Known() bool {
	return s.Phase != PhaseUnknown
}

func (s PrintStatus) String() string {
	if s.Phase == PhaseUnknown && s.Code != 0 {
		return fmt.Sprintf("Unknown (%d)", s.Code)
	}
	return s.Phase.String()
}
