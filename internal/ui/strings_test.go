package ui

import (
	"math"
	"testing"
	"time"
)

func TestHumanizeSince(t *testing.T) {
	cases := []struct {
		name string
		in   time.Duration
		want string
	}{
		{"negative", -5 * time.Second, "now"},
		{"subsecond", 500 * time.Millisecond, "now"},
		{"seconds", 12 * time.Second, "12s ago"},
		{"minutes", 61 * time.Second, "1m ago"},
		{"hours_only", 2*time.Hour + 10*time.Second, "2h ago"},
		{"hours_minutes", 2*time.Hour + 3*time.Minute, "2h 3m ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := humanizeSince(tc.in); got != tc.want {
				t.Fatalf("humanizeSince(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("  abc  ", 10); got != "abc" {
		t.Fatalf("truncate trims = %q, want abc", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("truncate limit<=3 = %q, want abc", got)
	}
	if got := truncate("connection refused", 10); got != "connect..." {
		t.Fatalf("truncate = %q, want connect...", got)
	}
}

func TestFormatTemp(t *testing.T) {
	if got := formatTemp(215.46, 220); got != "215.5 / 220.0°C" {
		t.Fatalf("formatTemp with target = %q", got)
	}
	if got := formatTemp(31, 0); got != "31.0°C" {
		t.Fatalf("formatTemp without target = %q", got)
	}
}

func TestFormatLayers(t *testing.T) {
	if got := formatLayers(12, 200); got != "12 / 200" {
		t.Fatalf("formatLayers = %q", got)
	}
	if got := formatLayers(0, 0); got != "0" {
		t.Fatalf("formatLayers without total = %q", got)
	}
}

func TestClampRatio(t *testing.T) {
	for in, want := range map[float64]float64{-0.5: 0, 0.25: 0.25, 1.5: 1} {
		if got := clampRatio(in); got != want {
			t.Fatalf("clampRatio(%v) = %v, want %v", in, got, want)
		}
	}
	if got := clampRatio(math.NaN()); got != 0 {
		t.Fatalf("clampRatio(NaN) = %v, want 0", got)
	}
	if got := clampRatio(math.Inf(1)); got != 1 {
		t.Fatalf("clampRatio(+Inf) = %v, want 1", got)
	}
}
