package carbon

import (
	"net"
	"net/url"
	"strconv"
	"strings"
)

const (
	// DefaultTelemetryPort is the mainboard websocket port.
	DefaultTelemetryPort = 3030
	// DefaultVideoPort serves the chamber camera MJPEG stream.
	DefaultVideoPort = 3031

	telemetryPath = "/websocket"
	videoPath     = "/video"
)

// NormalizeHost reduces user input to a bare host name or address.
// "ws://10.0.0.5:3030/websocket", " 10.0.0.5 " and "10.0.0.5:3030" all
// normalize to "10.0.0.5".
func NormalizeHost(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return ""
	}
	if strings.Contains(trimmed, "://") {
		u, err := url.Parse(trimmed)
		if err != nil {
			return ""
		}
		return u.Hostname()
	}
	if host, _, err := net.SplitHostPort(trimmed); err == nil {
		return host
	}
	if i := strings.IndexByte(trimmed, '/'); i >= 0 {
		trimmed = trimmed[:i]
	}
	return strings.Trim(trimmed, "[]")
}

// TelemetryURL returns the websocket endpoint for host.
func TelemetryURL(host string, port int) string {
	if port <= 0 {
		port = DefaultTelemetryPort
	}
	u := url.URL{Scheme: "ws", Host: net.JoinHostPort(host, strconv.Itoa(port)), Path: telemetryPath}
	return u.String()
}

// VideoURL returns the camera stream URL for host.
func VideoURL(host string, port int) string {
	if port <= 0 {
		port = DefaultVideoPort
	}
	u := url.URL{Scheme: "http", Host: net.JoinHostPort(host, strconv.Itoa(port)), Path: videoPath}
	return u.String()
}
