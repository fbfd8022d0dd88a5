package monitor

import (
	"context"
	"errors"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/state"
)

// Client is the monitor facade used by the UI. Creating one starts the
// supervisor; it keeps reconnecting on its own until Close.
type Client struct {
	target *Target
	store  *state.Store
	sup    *Supervisor

	cancel context.CancelFunc
	done   chan struct{}
}

// NewClient starts monitoring opts.Target (which may be empty; see
// SetTarget). The supervisor stops when ctx is cancelled or Close is called.
func NewClient(ctx context.Context, opts Options) *Client {
	opts = opts.withDefaults()
	target := NewTarget(opts.Target)
	runCtx, cancel := context.WithCancel(ctx)

	c := &Client{
		target: target,
		store:  opts.Store,
		sup:    NewSupervisor(target, opts),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	go func() {
		defer close(c.done)
		if err := c.sup.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
			opts.Logger.Error("supervisor exited", "error", err)
		}
	}()
	return c
}

// SetTarget points the monitor at host. An empty host disconnects and idles.
func (c *Client) SetTarget(host string) {
	c.target.Set(host)
}

// Target returns the host the monitor is (or will be) connecting to.
func (c *Client) Target() string {
	return c.target.Get()
}

// Snapshot returns the latest telemetry.
func (c *Client) Snapshot() state.Snapshot {
	return c.store.Snapshot()
}

// Connected reports whether a telemetry session is open.
func (c *Client) Connected() bool {
	return c.sup.Connected()
}

// State returns the connection lifecycle state.
func (c *Client) State() State {
	return c.sup.State()
}

// LastError returns why the previous connection attempt or session ended.
func (c *Client) LastError() error {
	return c.sup.LastError()
}

// VideoURL returns the camera stream URL while connected.
func (c *Client) VideoURL() (string, bool) {
	return c.sup.VideoURL()
}

// Done is closed once the supervisor has stopped.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close stops the supervisor and waits for the socket to be released.
func (c *Client) Close() {
	c.cancel()
	<-c.done
}
