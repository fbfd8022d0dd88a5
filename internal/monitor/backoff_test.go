package monitor

import (
	"testing"
	"time"
)

func TestBackoff_SquaringSequence(t *testing.T) {
	b := NewBackoff(time.Hour)
	want := []time.Duration{0, 2 * time.Second, 4 * time.Second, 16 * time.Second, 256 * time.Second, time.Hour, time.Hour}
	for i, w := range want {
		if got := b.Next(); got != w {
			t.Fatalf("Next() #%d = %v, want %v", i, got, w)
		}
	}
}

func TestBackoff_DefaultCap(t *testing.T) {
	tests := []struct {
		name  string
		steps int
		want  time.Duration
	}{
		{"first attempt immediate", 0, 0},
		{"one failure", 1, 2 * time.Second},
		{"two failures", 2, 4 * time.Second},
		{"three failures", 3, 16 * time.Second},
		{"four failures capped", 4, 60 * time.Second}, // Would be 256s, capped to 60s
		{"many failures capped", 10, 60 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackoff(0)
			for i := 0; i < tt.steps; i++ {
				b.Next()
			}
			if got := b.Next(); got != tt.want {
				t.Errorf("after %d steps Next() = %v, want %v", tt.steps, got, tt.want)
			}
		})
	}
}

func TestBackoff_NeverExceedsCap(t *testing.T) {
	b := NewBackoff(30 * time.Second)
	for i := 0; i <= 20; i++ {
		if got := b.Next(); got > 30*time.Second {
			t.Errorf("Next() #%d = %v, exceeds cap", i, got)
		}
	}
}

func TestBackoff_ResetAndPeek(t *testing.T) {
	b := NewBackoff(0)
	b.Next()
	b.Next()
	if b.Peek() != 4*time.Second {
		t.Fatalf("Peek = %v, want 4s", b.Peek())
	}
	b.Reset()
	if got := b.Next(); got != 0 {
		t.Fatalf("Next after Reset = %v, want 0", got)
	}
}
