package monitor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	"github.com/gorilla/websocket"
)

// Kind classifies why a connection attempt or session ended.
type Kind int

const (
	// KindTransport covers socket-level failures: refused or reset
	// connections, DNS failures, deadlines, and close frames. These trigger
	// backoff and reconnect.
	KindTransport Kind = iota + 1
	// KindCancelled means the supervisor's context was cancelled.
	KindCancelled
	// KindUnexpected is anything else, such as a failed websocket upgrade.
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindCancelled:
		return "cancelled"
	case KindUnexpected:
		return "unexpected"
	default:
		return "unknown"
	}
}

// Error is a classified connection failure.
type Error struct {
	Kind Kind
	Op   string // "dial", "read", "write"
	Host string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s (%s): %v", e.Op, e.Host, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or 0 when err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func classify(ctx context.Context, op, host string, err error) *Error {
	if err == nil {
		return nil
	}
	var existing *Error
	if errors.As(err, &existing) {
		return existing
	}
	kind := KindUnexpected
	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		kind = KindCancelled
	case isTransport(err):
		kind = KindTransport
	}
	return &Error{Kind: kind, Op: op, Host: host, Err: err}
}

func isTransport(err error) bool {
	if errors.Is(err, websocket.ErrBadHandshake) {
		return false
	}
	var netErr net.Error
	var closeErr *websocket.CloseError
	switch {
	case errors.As(err, &netErr), errors.As(err, &closeErr):
		return true
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, net.ErrClosed):
		return true
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE), errors.Is(err, syscall.EHOSTUNREACH), errors.Is(err, syscall.ENETUNREACH):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	}
	return false
}
