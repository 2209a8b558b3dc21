package humanize

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// RelativeTime renders the distance between now and then as "<n> <unit>(s) ago", using the
// largest whole unit among days, hours, minutes and seconds. Values are truncated, never rounded.
// A then that lies after now is treated as zero elapsed time. Distances are not capped at the
// range of time.Duration.
func RelativeTime(now, then time.Time) string {
	delta := now.Unix() - then.Unix()
	if now.Nanosecond() < then.Nanosecond() {
		delta--
	}
	if delta < 0 {
		delta = 0
	}

	switch {
	case delta/secondsPerDay > 0:
		return Plural(delta/secondsPerDay, "day") + " ago"
	case delta/secondsPerHour > 0:
		return Plural(delta/secondsPerHour, "hour") + " ago"
	case delta/secondsPerMinute > 0:
		return Plural(delta/secondsPerMinute, "minute") + " ago"
	default:
		return Plural(delta, "second") + " ago"
	}
}

// Plural formats n with unit, adding an "s" unless n is exactly 1.
func Plural(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
