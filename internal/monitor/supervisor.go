package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/carbon"
	"github.com/SomewhatDamaged/Centauri-Carbon-Monitor/internal/state"
)

// State is the supervisor's connection lifecycle state.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateReconnecting
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateReconnecting:
		return "reconnecting"
	default:
		return "unknown"
	}
}

const (
	defaultPollInterval = 2 * time.Second
	defaultIdleInterval = time.Second
	defaultReadTimeout  = 15 * time.Second
	handshakeTimeout    = 10 * time.Second
	writeTimeout        = 5 * time.Second
	closeGrace          = time.Second
)

var errTargetChanged = errors.New("target changed")

// Options configure a Supervisor or Client. Zero values use defaults.
type Options struct {
	Target        string
	TelemetryPort int
	VideoPort     int

	PollInterval time.Duration // between status requests
	IdleInterval time.Duration // between checks for a target while none is set
	ReadTimeout  time.Duration // silence after which the session is dropped
	MaxBackoff   time.Duration

	// ForgetTargetOnFailure clears the target after a transport failure so
	// the caller has to supply it again. By default the host is retried.
	ForgetTargetOnFailure bool

	Store   *state.Store
	Dialer  *websocket.Dialer
	Logger  *slog.Logger
	Metrics *Metrics
}

func (o Options) withDefaults() Options {
	if o.TelemetryPort <= 0 {
		o.TelemetryPort = carbon.DefaultTelemetryPort
	}
	if o.VideoPort <= 0 {
		o.VideoPort = carbon.DefaultVideoPort
	}
	if o.PollInterval <= 0 {
		o.PollInterval = defaultPollInterval
	}
	if o.IdleInterval <= 0 {
		o.IdleInterval = defaultIdleInterval
	}
	if o.ReadTimeout <= 0 {
		o.ReadTimeout = defaultReadTimeout
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = defaultMaxBackoff
	}
	if o.Store == nil {
		o.Store = state.NewStore()
	}
	if o.Dialer == nil {
		o.Dialer = &websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Metrics == nil {
		o.Metrics = NewMetrics(nil)
	}
	return o
}

// Supervisor owns the websocket lifecycle for one printer: wait for a target,
// connect, poll and receive until the socket fails, back off, repeat.
type Supervisor struct {
	opts    Options
	target  *Target
	store   *state.Store
	logger  *slog.Logger
	metrics *Metrics

	state     atomic.Int32
	connected atomic.Bool

	mu         sync.RWMutex
	activeHost string
	lastErr    error
}

// NewSupervisor builds a supervisor that follows target.
func NewSupervisor(target *Target, opts Options) *Supervisor {
	opts = opts.withDefaults()
	return &Supervisor{
		opts:    opts,
		target:  target,
		store:   opts.Store,
		logger:  opts.Logger.With("component", "supervisor"),
		metrics: opts.Metrics,
	}
}

// Connected reports whether a telemetry session is open.
func (s *Supervisor) Connected() bool {
	return s.connected.Load()
}

// State returns the lifecycle state.
func (s *Supervisor) State() State {
	return State(s.state.Load())
}

// LastError returns the error that ended the previous attempt or session.
// It is cleared when a connection succeeds.
func (s *Supervisor) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// VideoURL returns the camera stream of the connected printer.
func (s *Supervisor) VideoURL() (string, bool) {
	if !s.connected.Load() {
		return "", false
	}
	s.mu.RLock()
	host := s.activeHost
	s.mu.RUnlock()
	if host == "" {
		return "", false
	}
	return carbon.VideoURL(host, s.opts.VideoPort), true
}

// Run drives the connection until ctx is cancelled and returns ctx.Err().
// It never returns for any other reason.
func (s *Supervisor) Run(ctx context.Context) error {
	backoff := NewBackoff(s.opts.MaxBackoff)
	defer s.setState(StateDisconnected)

	for {
		s.setState(StateDisconnected)
		host, err := s.awaitTarget(ctx)
		if err != nil {
			return err
		}

		s.setState(StateConnecting)
		healthy, err := s.connectAndServe(ctx, host)
		if ctx.Err() != nil {
			s.logger.Info("monitor stopped", "host", host)
			return ctx.Err()
		}
		if healthy {
			backoff.Reset()
		}
		if errors.Is(err, errTargetChanged) {
			s.logger.Info("target changed, reconnecting", "previous", host, "target", s.target.Get())
			continue
		}

		failure := classify(ctx, "read", host, err)
		if failure == nil {
			failure = &Error{Kind: KindTransport, Op: "read", Host: host, Err: io.EOF}
		}
		s.setLastError(failure)
		if failure.Kind == KindTransport && s.opts.ForgetTargetOnFailure && s.target.clearIf(host) {
			s.logger.Warn("target cleared after transport failure", "host", host)
		}

		delay := backoff.Next()
		s.metrics.backoffSeconds.Set(delay.Seconds())
		s.metrics.reconnectAttempts.Inc()
		s.setState(StateReconnecting)
		s.logger.Info("reconnecting", "host", host, "delay", delay, "kind", failure.Kind.String())
		if err := s.wait(ctx, delay, host); err != nil {
			return err
		}
		s.metrics.backoffSeconds.Set(0)
	}
}

func (s *Supervisor) setState(st State) {
	s.state.Store(int32(st))
}

func (s *Supervisor) setLastError(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
}

// awaitTarget blocks until a non-empty target is set.
func (s *Supervisor) awaitTarget(ctx context.Context) (string, error) {
	ticker := time.NewTicker(s.opts.IdleInterval)
	defer ticker.Stop()

	for {
		if host := s.target.Get(); host != "" {
			return host, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		case <-s.target.Changed():
		}
	}
}

// wait sleeps for d after host failed. The sleep ends early only when the
// target moves away from host; a stale change token does not cut it short.
func (s *Supervisor) wait(ctx context.Context, d time.Duration, host string) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return nil
		case <-s.target.Changed():
			if target := s.target.Get(); target != host {
				s.logger.Debug("target changed during backoff", "target", target)
				return nil
			}
		}
	}
}

// connectAndServe dials host and, on success, runs a session until it ends.
// healthy reports whether the session applied at least one frame.
func (s *Supervisor) connectAndServe(ctx context.Context, host string) (healthy bool, err error) {
	conn, err := s.dial(ctx, host)
	if err != nil {
		kind := KindOf(err)
		s.metrics.connectFailures.WithLabelValues(kind.String()).Inc()
		switch kind {
		case KindCancelled:
		case KindTransport:
			s.logger.Warn("connect failed", "host", host, "error", err)
		default:
			s.logger.Error("connect failed", "host", host, "error", err)
		}
		return false, err
	}
	return s.serve(ctx, conn, host)
}

// dial opens the websocket. The underlying socket is closed as soon as ctx
// is cancelled, so a stalled handshake does not outlive the caller.
func (s *Supervisor) dial(ctx context.Context, host string) (*websocket.Conn, error) {
	var (
		mu   sync.Mutex
		stop func() bool
	)
	dialer := *s.opts.Dialer
	netDial := dialer.NetDialContext
	if netDial == nil {
		netDial = (&net.Dialer{}).DialContext
	}
	dialer.NetDialContext = func(dctx context.Context, network, addr string) (net.Conn, error) {
		c, err := netDial(dctx, network, addr)
		if err != nil {
			return nil, err
		}
		mu.Lock()
		stop = context.AfterFunc(ctx, func() { _ = c.Close() })
		mu.Unlock()
		return c, nil
	}

	url := carbon.TelemetryURL(host, s.opts.TelemetryPort)
	s.logger.Debug("dialing", "url", url)
	conn, resp, err := dialer.DialContext(ctx, url, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}

	mu.Lock()
	release := stop
	mu.Unlock()
	if err != nil {
		if release != nil {
			release()
		}
		if resp != nil {
			err = fmt.Errorf("%w: http status %d", err, resp.StatusCode)
		}
		return nil, classify(ctx, "dial", host, err)
	}
	if (release != nil && !release()) || ctx.Err() != nil {
		_ = conn.Close()
		return nil, classify(ctx, "dial", host, context.Cause(ctx))
	}
	return conn, nil
}

// serve runs one connected session: a request task, a receive loop and a
// release watcher that tears the socket down when either stops.
func (s *Supervisor) serve(ctx context.Context, conn *websocket.Conn, host string) (bool, error) {
	s.mu.Lock()
	s.activeHost = host
	s.lastErr = nil
	s.mu.Unlock()
	s.connected.Store(true)
	s.setState(StateConnected)
	s.metrics.connected.Set(1)
	s.metrics.connectionsTotal.Inc()
	s.logger.Info("connected", "host", host)

	var applied, targetChanged atomic.Bool
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.release(gctx, conn, host, &targetChanged)
	})
	g.Go(func() error {
		return s.requestLoop(gctx, conn, host)
	})
	g.Go(func() error {
		return s.receiveLoop(ctx, conn, host, &applied)
	})
	err := g.Wait()
	if targetChanged.Load() {
		err = errTargetChanged
	}

	s.mu.Lock()
	s.activeHost = ""
	s.mu.Unlock()

	reason := "target_changed"
	if !errors.Is(err, errTargetChanged) {
		reason = KindTransport.String()
		if failure := classify(ctx, "read", host, err); failure != nil {
			reason = failure.Kind.String()
		}
	}
	s.metrics.sessionsEnded.WithLabelValues(reason).Inc()
	s.logger.Info("disconnected", "host", host, "reason", reason, "error", err)
	return applied.Load(), err
}

// release waits for the session to end, then clears the connected flag
// before closing the socket.
func (s *Supervisor) release(ctx context.Context, conn *websocket.Conn, host string, targetChanged *atomic.Bool) error {
	defer func() {
		s.connected.Store(false)
		s.metrics.connected.Set(0)
		s.setState(StateDisconnected)
		msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
		_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(closeGrace))
		_ = conn.Close()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-s.target.Changed():
			if s.target.Get() != host {
				targetChanged.Store(true)
				return errTargetChanged
			}
		}
	}
}

// requestLoop sends a status request immediately and then every poll
// interval. It is the only writer of data frames on conn.
func (s *Supervisor) requestLoop(ctx context.Context, conn *websocket.Conn, host string) error {
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		if err := s.sendPoll(conn); err != nil {
			return classify(ctx, "write", host, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Supervisor) sendPoll(conn *websocket.Conn) error {
	payload, err := carbon.NewPollEnvelope(time.Now()).Marshal()
	if err != nil {
		return fmt.Errorf("encode poll: %w", err)
	}
	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return err
	}
	s.metrics.pollsSent.Inc()
	return nil
}

// receiveLoop reads frames until the socket fails. Frames that do not decode
// are dropped without ending the session.
func (s *Supervisor) receiveLoop(ctx context.Context, conn *websocket.Conn, host string, applied *atomic.Bool) error {
	for {
		if err := conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout)); err != nil {
			return classify(ctx, "read", host, err)
		}
		typ, frame, err := conn.ReadMessage()
		if err != nil {
			return classify(ctx, "read", host, err)
		}
		if typ != websocket.TextMessage {
			continue
		}
		s.metrics.framesReceived.Inc()

		patch, err := carbon.Decode(frame, s.store.Snapshot().ZOffset)
		if err != nil {
			if errors.Is(err, carbon.ErrNoStatus) {
				s.metrics.decodeFailures.WithLabelValues("no_status").Inc()
				s.logger.Debug("frame without status ignored", "host", host)
			} else {
				s.metrics.decodeFailures.WithLabelValues("malformed").Inc()
				s.logger.Warn("dropping malformed frame", "host", host, "error", err, "bytes", len(frame))
			}
			continue
		}
		s.store.Apply(patch)
		applied.Store(true)
	}
}
