// Package timeutil provides minute-of-day arithmetic and clock formatting
// shared by the planning engines. Times inside the engine are plain minute
// counts from midnight; "HH:MM" strings only appear at the persistence
// boundary.
package timeutil

import (
	"fmt"
	"strconv"
)

// MinutesPerDay is the number of minutes in the planning day. A segment end
// of exactly MinutesPerDay denotes midnight at the close of the day.
const MinutesPerDay = 24 * 60

// ParseClock converts an "HH:MM" string to minutes since midnight. "24:00"
// is accepted as the end-of-day boundary.
func ParseClock(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("timeutil: malformed clock value %q", s)
	}
	hours, err := strconv.Atoi(s[:2])
	if err != nil {
		return 0, fmt.Errorf("timeutil: malformed clock value %q", s)
	}
	mins, err := strconv.Atoi(s[3:])
	if err != nil {
		return 0, fmt.Errorf("timeutil: malformed clock value %q", s)
	}
	if mins < 0 || mins > 59 || hours < 0 || hours > 24 || (hours == 24 && mins != 0) {
		return 0, fmt.Errorf("timeutil: clock value %q out of range", s)
	}
	return hours*60 + mins, nil
}

// FormatClock converts minutes since midnight to "HH:MM". Values outside
// [0, MinutesPerDay] are clamped so rendering is total.
func FormatClock(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	if minutes > MinutesPerDay {
		minutes = MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatDuration renders a minute count as decimal hours. Whole hours are
// printed without a fraction, everything else with two decimal places.
func FormatDuration(minutes int) string {
	if minutes%60 == 0 {
		return strconv.Itoa(minutes / 60)
	}
	return fmt.Sprintf("%.2f", float64(minutes)/60)
}

// FormatClockRange renders a half-open minute interval as "HH:MM–HH:MM".
func FormatClockRange(start, end int) string {
	return FormatClock(start) + "–" + FormatClock(end)
}
