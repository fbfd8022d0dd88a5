package monitor

import (
	"sync"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/carbon"
)

// Target is the printer host the supervisor should connect to. It is written
// by the UI and read by the supervisor.
type Target struct {
	mu      sync.RWMutex
	host    string
	changed chan struct{}
}

// NewTarget returns a Target holding host (normalized; may be empty).
func NewTarget(host string) *Target {
	return &Target{
		host:    carbon.NormalizeHost(host),
		changed: make(chan struct{}, 1),
	}
}

// Get returns the current host, or "" when none is set.
func (t *Target) Get() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.host
}

// Set replaces the host. Setting the same host again is a no-op.
func (t *Target) Set(host string) {
	host = carbon.NormalizeHost(host)
	t.mu.Lock()
	if host == t.host {
		t.mu.Unlock()
		return
	}
	t.host = host
	t.mu.Unlock()
	t.notify()
}

// clearIf empties the target only if it still names host, so a value typed
// in by the user while a connection was failing is not discarded.
func (t *Target) clearIf(host string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.host != host || host == "" {
		return false
	}
	t.host = ""
	return true
}

// Changed fires after Set changes the host. Notifications coalesce; there is
// a single consumer.
func (t *Target) Changed() <-chan struct{} {
	return t.changed
}

func (t *Target) notify() {
	select {
	case t.changed <- struct{}{}:
	default:
	}
}
