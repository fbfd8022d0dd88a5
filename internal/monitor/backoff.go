package monitor

import "time"

const (
	minBackoff        = 2 * time.Second
	defaultMaxBackoff = 60 * time.Second
)

// Backoff yields reconnect delays. The first delay is zero; each later delay
// is the previous one squared (in seconds), at least two seconds and at most
// the configured cap: 0s, 2s, 4s, 16s, 60s, 60s...
type Backoff struct {
	current time.Duration
	max     time.Duration
}

// NewBackoff returns a Backoff capped at maxDelay. A non-positive cap uses
// the default of one minute.
func NewBackoff(maxDelay time.Duration) *Backoff {
	if maxDelay <= 0 {
		maxDelay = defaultMaxBackoff
	}
	return &Backoff{max: maxDelay}
}

// Next returns the delay to wait now and advances the sequence.
func (b *Backoff) Next() time.Duration {
	delay := b.current
	b.current = nextBackoff(b.current, b.max)
	return delay
}

// Peek returns the delay Next would return.
func (b *Backoff) Peek() time.Duration {
	return b.current
}

// Reset restarts the sequence at zero.
func (b *Backoff) Reset() {
	b.current = 0
}

func nextBackoff(current, maxDelay time.Duration) time.Duration {
	secs := current.Seconds()
	squared := secs * secs
	if squared >= maxDelay.Seconds() {
		return max(maxDelay, minBackoff)
	}
	next := time.Duration(squared * float64(time.Second))
	return min(max(next, minBackoff), max(maxDelay, minBackoff))
}
