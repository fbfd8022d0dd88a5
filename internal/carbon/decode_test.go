package carbon

import (
	"errors"
	"testing"
)

func TestDecode_NoStatus(t *testing.T) {
	for _, frame := range []string{
		`{}`,
		`{"Status":{}}`,
		`{"Status":null}`,
		`{"Id":"abc","Data":{"Cmd":0,"Data":{"Ack":0}}}`,
	} {
		if _, err := Decode([]byte(frame), 0); !errors.Is(err, ErrNoStatus) {
			t.Fatalf("Decode(%s) error = %v, want ErrNoStatus", frame, err)
		}
	}
}

func TestDecode_Malformed(t *testing.T) {
	for _, frame := range []string{
		`not json`,
		`[1,2,3]`,
		`{"Status":42}`,
		`{"Status":{"PrintInfo":"x"}}`,
	} {
		_, err := Decode([]byte(frame), 0)
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("Decode(%s) error = %v, want ErrMalformed", frame, err)
		}
	}
}

func TestDecode_StatusWithoutPrintInfo(t *testing.T) {
	p, err := Decode([]byte(`{"Status":{"TempOfHotbed":60}}`), 0)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if p.BedTemp.Value != 60 || p.BedTemp.Merge != Sticky {
		t.Fatalf("BedTemp = %+v, want sticky 60", p.BedTemp)
	}
	if p.Progress.Value != 0 || p.Progress.Merge != Authoritative {
		t.Fatalf("Progress = %+v, want authoritative 0", p.Progress)
	}
	if p.PrintStatus.Value.Phase != PhaseIdle {
		t.Fatalf("PrintStatus = %v, want Idle for a missing code", p.PrintStatus.Value)
	}
}

func TestDecode_FullFrame(t *testing.T) {
	frame := `{
		"Status": {
			"TempOfHotbed": 59.7,
			"TempOfBox": 31,
			"TempOfNozzle": 219.4,
			"TempTargetHotbed": 60,
			"TempTargetNozzle": 220,
			"ZOffset": -0.12345,
			"CurrentFanSpeed": {"AuxiliaryFan": 40, "BoxFan": 20, "ModelFan": 100},
			"PrintInfo": {
				"Status": 13,
				"TotalTicks": 3725,
				"CurrentTicks": "125",
				"Progress": 45.26,
				"PrintSpeedPct": 100,
				"CurrentLayer": 12,
				"TotalLayer": 240
			}
		},
		"MainboardID": "abcdef",
		"TimeStamp": 1700000000
	}`
	p, err := Decode([]byte(frame), 0)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}

	if p.NozzleTemp.Value != 219.4 || p.EnclosureTemp.Value != 31 {
		t.Fatalf("temps = %v/%v, want 219.4/31", p.NozzleTemp.Value, p.EnclosureTemp.Value)
	}
	if p.TargetNozzleTemp.Value != 220 || p.TargetBedTemp.Value != 60 {
		t.Fatalf("targets = %v/%v, want 220/60", p.TargetNozzleTemp.Value, p.TargetBedTemp.Value)
	}
	if p.ZOffset.Value != -0.123 {
		t.Fatalf("ZOffset = %v, want -0.123", p.ZOffset.Value)
	}
	if p.ModelFanSpeed.Value != 100 || p.AuxFanSpeed.Value != 40 || p.BoxFanSpeed.Value != 20 {
		t.Fatalf("fans = %d/%d/%d, want 100/40/20", p.ModelFanSpeed.Value, p.AuxFanSpeed.Value, p.BoxFanSpeed.Value)
	}
	if p.Progress.Value != 45.3 {
		t.Fatalf("Progress = %v, want 45.3", p.Progress.Value)
	}
	if p.PrintStatus.Value.Phase != PhasePrinting || p.PrintStatus.Value.Code != 13 {
		t.Fatalf("PrintStatus = %+v, want Printing(13)", p.PrintStatus.Value)
	}
	if p.CurrentLayer.Value != 12 || p.TotalLayers.Value != 240 || p.PrintSpeed.Value != 100 {
		t.Fatalf("layers/speed = %d/%d/%d", p.CurrentLayer.Value, p.TotalLayers.Value, p.PrintSpeed.Value)
	}
	if p.ElapsedTimeRaw.Value != 125 || p.TotalTimeRaw.Value != 3725 || p.RemainingTimeRaw.Value != 3600 {
		t.Fatalf("raw times = %d/%d/%d, want 125/3725/3600",
			p.ElapsedTimeRaw.Value, p.TotalTimeRaw.Value, p.RemainingTimeRaw.Value)
	}
	if p.ElapsedTime.Value != "2m 5s" || p.TotalTime.Value != "1h 2m 5s" || p.RemainingTime.Value != "60m" {
		t.Fatalf("formatted times = %q/%q/%q", p.ElapsedTime.Value, p.TotalTime.Value, p.RemainingTime.Value)
	}
}

func TestDecode_RemainingNeverNegative(t *testing.T) {
	p, err := Decode([]byte(`{"Status":{"PrintInfo":{"TotalTicks":100,"CurrentTicks":250}}}`), 0)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if p.RemainingTimeRaw.Value != 0 {
		t.Fatalf("RemainingTimeRaw = %d, want 0", p.RemainingTimeRaw.Value)
	}
	if p.RemainingTime.Value != "0" {
		t.Fatalf("RemainingTime = %q, want \"0\"", p.RemainingTime.Value)
	}
}

func TestDecode_ZOffsetCarryForward(t *testing.T) {
	p, err := Decode([]byte(`{"Status":{"TempOfBox":30}}`), 0.25)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if p.ZOffset.Value != 0.25 {
		t.Fatalf("ZOffset = %v, want previous 0.25", p.ZOffset.Value)
	}

	p, err = Decode([]byte(`{"Status":{"ZOffset":0}}`), 0.25)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if p.ZOffset.Value != 0 {
		t.Fatalf("ZOffset = %v, want explicit 0", p.ZOffset.Value)
	}
}

func TestDecode_ClampsOutOfRange(t *testing.T) {
	p, err := Decode([]byte(`{"Status":{"CurrentFanSpeed":{"ModelFan":140,"BoxFan":-3},"PrintInfo":{"Progress":101.2}}}`), 0)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if p.ModelFanSpeed.Value != 100 || p.BoxFanSpeed.Value != 0 {
		t.Fatalf("fans = %d/%d, want 100/0", p.ModelFanSpeed.Value, p.BoxFanSpeed.Value)
	}
	if p.Progress.Value != 100 {
		t.Fatalf("Progress = %v, want 100", p.Progress.Value)
	}
}

func TestStatusFromCode(t *testing.T) {
	cases := []struct {
		code  int
		phase Phase
		label string
	}{
		{0, PhaseIdle, "Idle"},
		{1, PhasePreparing, "Preparing"},
		{16, PhasePreparing, "Preparing"},
		{21, PhasePreparing, "Preparing"},
		{13, PhasePrinting, "Printing"},
		{9, PhaseComplete, "Complete"},
		{6, PhasePaused, "Paused"},
		{999, PhaseUnknown, "Unknown (999)"},
	}
	for _, tc := range cases {
		got := StatusFromCode(tc.code)
		if got.Phase != tc.phase || got.Code != tc.code {
			t.Fatalf("StatusFromCode(%d) = %+v, want phase %v", tc.code, got, tc.phase)
		}
		if got.String() != tc.label {
			t.Fatalf("StatusFromCode(%d).String() = %q, want %q", tc.code, got.String(), tc.label)
		}
	}
	if (PrintStatus{}).String() != "Unknown" {
		t.Fatalf("zero PrintStatus = %q, want Unknown", PrintStatus{}.String())
	}
}

func TestNumber_Lenient(t *testing.T) {
	var p PrintInfo
	p.TotalTicks.UnmarshalJSON([]byte(`" 42 "`))
	p.CurrentTicks.UnmarshalJSON([]byte(`null`))
	p.Progress.UnmarshalJSON([]byte(`"n/a"`))
	p.Status.UnmarshalJSON([]byte(`true`))
	if p.TotalTicks != 42 || p.CurrentTicks != 0 || p.Progress != 0 || p.Status != 1 {
		t.Fatalf("lenient numbers = %+v", p)
	}

	for _, raw := range []string{`"NaN"`, `"Inf"`, `"-Inf"`, `"+Infinity"`} {
		n := Number(7)
		n.UnmarshalJSON([]byte(raw))
		if n != 0 {
			t.Fatalf("Number from %s = %v, want 0", raw, n)
		}
	}
}

func TestDecode_NonFiniteValuesDecodeAsZero(t *testing.T) {
	p, err := Decode([]byte(`{"Status":{"TempOfNozzle":"NaN","TempOfHotbed":"Inf","PrintInfo":{"Progress":"NaN","Status":13}}}`), 0)
	if err != nil {
		t.Fatalf("Decode returned error: %v", err)
	}
	if p.Progress.Value != 0 {
		t.Fatalf("Progress = %v, want 0", p.Progress.Value)
	}

	nozzle, bed := 215.0, 60.0
	p.NozzleTemp.ApplyTo(&nozzle)
	p.BedTemp.ApplyTo(&bed)
	if nozzle != 215 || bed != 60 {
		t.Fatalf("temps = %v/%v, want previous 215/60 kept", nozzle, bed)
	}
}

func TestFieldApplyTo(t *testing.T) {
	v := 60.0
	sticky(0.0).ApplyTo(&v)
	if v != 60 {
		t.Fatalf("sticky zero overwrote value: %v", v)
	}
	sticky(65.0).ApplyTo(&v)
	if v != 65 {
		t.Fatalf("sticky non-zero = %v, want 65", v)
	}
	authoritative(0.0).ApplyTo(&v)
	if v != 0 {
		t.Fatalf("authoritative zero = %v, want 0", v)
	}
}
