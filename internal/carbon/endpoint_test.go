package carbon

import "testing"

func TestNormalizeHost(t *testing.T) {
	cases := map[string]string{
		"":                              "",
		"   ":                           "",
		" 10.0.0.5 ":                    "10.0.0.5",
		"10.0.0.5:3030":                 "10.0.0.5",
		"ws://10.0.0.5:3030/websocket":  "10.0.0.5",
		"http://printer.lan:3031/video": "printer.lan",
		"printer.lan/websocket":         "printer.lan",
		"[fe80::1]:3030":                "fe80::1",
		"fe80::1":                       "fe80::1",
	}
	for in, want := range cases {
		if got := NormalizeHost(in); got != want {
			t.Fatalf("NormalizeHost(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEndpointURLs(t *testing.T) {
	if got := TelemetryURL("10.0.0.5", 0); got != "ws://10.0.0.5:3030/websocket" {
		t.Fatalf("TelemetryURL = %q", got)
	}
	if got := VideoURL("10.0.0.5", 0); got != "http://10.0.0.5:3031/video" {
		t.Fatalf("VideoURL = %q", got)
	}
	if got := TelemetryURL("fe80::1", 9000); got != "ws://[fe80::1]:9000/websocket" {
		t.Fatalf("TelemetryURL ipv6 = %q", got)
	}
}
