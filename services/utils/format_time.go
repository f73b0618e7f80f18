package utils

import (
	"math"
	"time"
)

// FormatMessageTime maps a message timestamp to the short label shown in
// conversation lists. Buckets are 24h windows counted back from now:
//
//	same day   -> clock time, e.g. "14:05"
//	1 day back -> "Yesterday"
//	under a week -> weekday, e.g. "Tue"
//	older      -> month and day, e.g. "Apr 3"
//
// Timestamps in the future clamp to the same-day branch.
func FormatMessageTime(ts, now time.Time) string {
	diffDays := int(math.Floor(now.Sub(ts).Hours() / 24))
	if diffDays < 0 {
		diffDays = 0
	}

	switch {
	case diffDays == 0:
		return ts.Format("15:04")
	case diffDays == 1:
		return "Yesterday"
	case diffDays < 7:
		return ts.Format("Mon")
	default:
		return ts.Format("Jan 2")
	}
}

// FormatMessageTimeNow is FormatMessageTime against the wall clock.
func FormatMessageTimeNow(ts time.Time) string {
	return FormatMessageTime(ts, time.Now())
}
