package ui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// padRight pads a string with spaces to the given width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(r))
}

// formatTemp renders "215.5°C", or "215.5 / 220.0°C" when a target is set.
func formatTemp(current, target float64) string {
	if target > 0 {
		return fmt.Sprintf("%.1f / %.1f°C", current, target)
	}
	return fmt.Sprintf("%.1f°C", current)
}

func formatZOffset(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64) + " mm"
}

func formatLayers(current, total int) string {
	if total <= 0 {
		return strconv.Itoa(current)
	}
	return fmt.Sprintf("%d / %d", current, total)
}

// humanizeSince renders an age as "now", "12s ago" or "2h 5m ago".
func humanizeSince(d time.Duration) string {
	if d < time.Second {
		return "now"
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds ago", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	default:
		h := int(d.Hours())
		mins := int(d.Minutes()) % 60
		if mins == 0 {
			return fmt.Sprintf("%dh ago", h)
		}
		return fmt.Sprintf("%dh %dm ago", h, mins)
	}
}

func clampRatio(r float64) float64 {
	if math.IsNaN(r) {
		return 0
	}
	return min(1, max(0, r))
}
