package carbon

import (
	"strconv"
	"strings"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// FormatDuration renders seconds as a compact "1d 2h 3m 4s" string.
//
// Each unit is emitted only when the remaining value is strictly greater than
// the unit size, after which the remainder is taken modulo that unit. Exact
// multiples therefore fall through to the next smaller unit (3600 → "60m").
// Zero and negative inputs render as "0".
func FormatDuration(seconds int64) string {
	if seconds <= 0 {
		return "0"
	}
	parts := make([]string, 0, 4)
	if seconds > secondsPerDay {
		parts = append(parts, strconv.FormatInt(seconds/secondsPerDay, 10)+"d")
		seconds %= secondsPerDay
	}
	if seconds > secondsPerHour {
		parts = append(parts, strconv.FormatInt(seconds/secondsPerHour, 10)+"h")
		seconds %= secondsPerHour
	}
	if seconds > secondsPerMinute {
		parts = append(parts, strconv.FormatInt(seconds/secondsPerMinute, 10)+"m")
		seconds %= secondsPerMinute
	}
	if seconds > 0 {
		parts = append(parts, strconv.FormatInt(seconds, 10)+"s")
	}
	if len(parts) == 0 {
		return "0"
	}
	return strings.Join(parts, " ")
}
