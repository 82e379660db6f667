package validators

import (
	"time"
)

const ClockLayout = "15:04"

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// IsClock accepts zero-padded 24h wall-clock strings, e.g. "09:30".
func IsClock(s string) bool {
	if len(s) != 5 {
		return false
	}
	_, err := time.Parse(ClockLayout, s)
	return err == nil
}

// ClockBefore reports a < b for two valid clock strings. Zero-padded clocks
// order lexically.
func ClockBefore(a, b string) bool {
	return a < b
}

func IsWeekday(name string) bool {
	_, ok := weekdays[name]
	return ok
}

// MaxLen counts runes, not bytes.
func MaxLen(s string, n int) bool {
	return len([]rune(s)) <= n
}

func OneOf(s string, allowed ...string) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}
