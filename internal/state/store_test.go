package state

import (
	"sync"
	"testing"
	"time"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/carbon"
)

func mustDecode(t *testing.T, s *Store, frame string) {
	t.Helper()
	patch, err := carbon.Decode([]byte(frame), s.Snapshot().ZOffset)
	if err != nil {
		t.Fatalf("Decode(%s) returned error: %v", frame, err)
	}
	s.Apply(patch)
}

func TestNewStore_InitialSnapshot(t *testing.T) {
	snap := NewStore().Snapshot()
	if snap.HasData() {
		t.Fatalf("HasData = true before any frame")
	}
	if snap.ElapsedTime != "0" || snap.RemainingTime != "0" || snap.TotalTime != "0" {
		t.Fatalf("initial times = %q/%q/%q, want \"0\"", snap.ElapsedTime, snap.RemainingTime, snap.TotalTime)
	}
	if snap.PrintStatus.String() != "Unknown" {
		t.Fatalf("initial status = %q, want Unknown", snap.PrintStatus.String())
	}
	if snap.PrintSpeedLabel() != "0%" {
		t.Fatalf("initial speed = %q, want 0%%", snap.PrintSpeedLabel())
	}
}

func TestStore_StickyFieldsSurviveZero(t *testing.T) {
	s := NewStore()
	mustDecode(t, s, `{"Status":{"TempOfHotbed":60,"TempOfNozzle":215,"TempTargetHotbed":60,
		"PrintInfo":{"Status":13,"Progress":45,"CurrentLayer":10,"TotalLayer":100,"PrintSpeedPct":120}}}`)
	mustDecode(t, s, `{"Status":{"TempOfBox":28,"PrintInfo":{"Status":13,"Progress":0}}}`)

	snap := s.Snapshot()
	if snap.BedTemp != 60 || snap.NozzleTemp != 215 || snap.TargetBedTemp != 60 {
		t.Fatalf("sticky temps = %v/%v/%v, want 60/215/60", snap.BedTemp, snap.NozzleTemp, snap.TargetBedTemp)
	}
	if snap.EnclosureTemp != 28 {
		t.Fatalf("EnclosureTemp = %v, want 28", snap.EnclosureTemp)
	}
	if snap.CurrentLayer != 10 || snap.TotalLayers != 100 {
		t.Fatalf("layers = %d/%d, want 10/100", snap.CurrentLayer, snap.TotalLayers)
	}
	if snap.PrintSpeedLabel() != "120%" {
		t.Fatalf("PrintSpeedLabel = %q, want 120%%", snap.PrintSpeedLabel())
	}
	if snap.Progress != 0 {
		t.Fatalf("Progress = %v, want authoritative 0", snap.Progress)
	}
	if snap.Frames != 2 {
		t.Fatalf("Frames = %d, want 2", snap.Frames)
	}
}

func TestStore_AuthoritativeFieldsOverwrite(t *testing.T) {
	s := NewStore()
	mustDecode(t, s, `{"Status":{"CurrentFanSpeed":{"ModelFan":100,"AuxiliaryFan":50,"BoxFan":30},
		"PrintInfo":{"Status":13,"TotalTicks":600,"CurrentTicks":100}}}`)
	mustDecode(t, s, `{"Status":{"TempOfNozzle":30,"PrintInfo":{"Status":9}}}`)

	snap := s.Snapshot()
	if snap.ModelFanSpeed != 0 || snap.AuxFanSpeed != 0 || snap.BoxFanSpeed != 0 {
		t.Fatalf("fans = %d/%d/%d, want zeros", snap.ModelFanSpeed, snap.AuxFanSpeed, snap.BoxFanSpeed)
	}
	if snap.PrintStatus.Phase != carbon.PhaseComplete {
		t.Fatalf("PrintStatus = %v, want Complete", snap.PrintStatus)
	}
	if snap.ElapsedTimeRaw != 0 || snap.TotalTimeRaw != 0 || snap.ElapsedTime != "0" {
		t.Fatalf("times = %d/%d/%q, want cleared", snap.ElapsedTimeRaw, snap.TotalTimeRaw, snap.ElapsedTime)
	}
}

func TestStore_ZOffsetCarriedAcrossFrames(t *testing.T) {
	s := NewStore()
	mustDecode(t, s, `{"Status":{"ZOffset":0.0456}}`)
	mustDecode(t, s, `{"Status":{"TempOfNozzle":200}}`)
	if got := s.Snapshot().ZOffset; got != 0.046 {
		t.Fatalf("ZOffset = %v, want 0.046", got)
	}
}

func TestStore_UpdatedAtUsesClock(t *testing.T) {
	s := NewStore()
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	mustDecode(t, s, `{"Status":{"TempOfNozzle":200}}`)
	if got := s.Snapshot().UpdatedAt; !got.Equal(fixed) {
		t.Fatalf("UpdatedAt = %v, want %v", got, fixed)
	}
}

func TestStore_ConcurrentReadersSeeWholeFrames(t *testing.T) {
	s := NewStore()
	patch, err := carbon.Decode([]byte(`{"Status":{"TempOfNozzle":200,"TempOfHotbed":60}}`), 0)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	var wg sync.WaitGroup
	stop := make(chan struct{})
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := s.Snapshot()
				if snap.HasData() && (snap.NozzleTemp != 200 || snap.BedTemp != 60) {
					t.Errorf("torn snapshot: %+v", snap)
					return
				}
			}
		}()
	}
	for i := 0; i < 200; i++ {
		s.Apply(patch)
	}
	close(stop)
	wg.Wait()

	if got := s.Snapshot().Frames; got != 200 {
		t.Fatalf("Frames = %d, want 200", got)
	}
}
