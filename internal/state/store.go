package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/carbon"
)

// Snapshot is the best-known printer status.
type Snapshot struct {
	NozzleTemp       float64
	BedTemp          float64
	EnclosureTemp    float64
	TargetNozzleTemp float64
	TargetBedTemp    float64
	ZOffset          float64

	ModelFanSpeed int
	AuxFanSpeed   int
	BoxFanSpeed   int

	Progress     float64
	PrintStatus  carbon.PrintStatus
	CurrentLayer int
	TotalLayers  int
	PrintSpeed   int

	ElapsedTimeRaw   int64
	RemainingTimeRaw int64
	TotalTimeRaw     int64
	ElapsedTime      string
	RemainingTime    string
	TotalTime        string

	UpdatedAt time.Time // zero until the first frame is applied
	Frames    int
}

// PrintSpeedLabel renders the speed as "N%".
func (s Snapshot) PrintSpeedLabel() string {
	return fmt.Sprintf("%d%%", s.PrintSpeed)
}

// HasData reports whether any telemetry frame has been applied.
func (s Snapshot) HasData() bool {
	return s.Frames > 0
}

func initialSnapshot() Snapshot {
	return Snapshot{
		ElapsedTime:   "0",
		RemainingTime: "0",
		TotalTime:     "0",
	}
}

// Store coordinates concurrent access to the snapshot. The receive loop is
// the only writer; any number of readers may call Snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	now      func() time.Time
}

// NewStore returns a store holding the initial snapshot.
func NewStore() *Store {
	return &Store{snapshot: initialSnapshot(), now: time.Now}
}

// Apply merges patch into the stored snapshot field by field.
func (s *Store) Apply(patch carbon.Patch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := &s.snapshot
	patch.NozzleTemp.ApplyTo(&snap.NozzleTemp)
	patch.BedTemp.ApplyTo(&snap.BedTemp)
	patch.EnclosureTemp.ApplyTo(&snap.EnclosureTemp)
	patch.TargetNozzleTemp.ApplyTo(&snap.TargetNozzleTemp)
	patch.TargetBedTemp.ApplyTo(&snap.TargetBedTemp)
	patch.ZOffset.ApplyTo(&snap.ZOffset)

	patch.ModelFanSpeed.ApplyTo(&snap.ModelFanSpeed)
	patch.AuxFanSpeed.ApplyTo(&snap.AuxFanSpeed)
	patch.BoxFanSpeed.ApplyTo(&snap.BoxFanSpeed)

	patch.Progress.ApplyTo(&snap.Progress)
	patch.PrintStatus.ApplyTo(&snap.PrintStatus)
	patch.CurrentLayer.ApplyTo(&snap.CurrentLayer)
	patch.TotalLayers.ApplyTo(&snap.TotalLayers)
	patch.PrintSpeed.ApplyTo(&snap.PrintSpeed)

	patch.ElapsedTimeRaw.ApplyTo(&snap.ElapsedTimeRaw)
	patch.RemainingTimeRaw.ApplyTo(&snap.RemainingTimeRaw)
	patch.TotalTimeRaw.ApplyTo(&snap.TotalTimeRaw)
	patch.ElapsedTime.ApplyTo(&snap.ElapsedTime)
	patch.RemainingTime.ApplyTo(&snap.RemainingTime)
	patch.TotalTime.ApplyTo(&snap.TotalTime)

	if s.now != nil {
		snap.UpdatedAt = s.now()
	} else {
		snap.UpdatedAt = time.Now()
	}
	snap.Frames++
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}
