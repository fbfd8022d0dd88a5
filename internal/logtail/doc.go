// Package logtail reads the tail of the monitor's JSON log file.
//
// # Overview
//
// The TUI owns the terminal, so the monitor logs to a file. This package
// reads the last N records back so the UI can show recent connection events
// without keeping its own copy.
//
// # Reading
//
// Read scans the file once and keeps the last maxLines non-blank lines in a
// ring buffer, so memory stays O(maxLines) regardless of file size. Lines are
// returned oldest first. A missing file returns nil, nil.
//
// Tail wraps Read and parses each line with Parse:
//
//	entries, err := logtail.Tail(cfg.LogFile, 8)
//	for _, e := range entries {
//		fmt.Println(e)
//	}
//
// # Record Format
//
// Parse expects records written by slog's JSON handler:
//
//	{"time":"2026-03-01T10:15:30Z","level":"WARN","msg":"connect failed","host":"10.0.0.5"}
//
// time, level and msg populate the Entry fields. Every other key becomes an
// Attr; nested groups are flattened with dotted keys ("err.kind") and the
// attrs are sorted by key. Lines that are not JSON are kept verbatim as the
// Message.
package logtail
