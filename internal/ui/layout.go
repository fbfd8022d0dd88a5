package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which panels stack vertically.
	LayoutCompactWidth = 100

	// LayoutMinPanelWidth keeps gauges readable in narrow terminals.
	LayoutMinPanelWidth = 36
)

// Event pane limits.
const (
	// EventLimit is the number of log records shown in the events panel.
	EventLimit = 8
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI refresh interval.
	DefaultUIInterval = time.Second

	// StaleAfter marks telemetry as stale when no frame has arrived for this long.
	StaleAfter = 10 * time.Second
)
