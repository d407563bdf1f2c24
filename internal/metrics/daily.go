// Package metrics classifies the segments of an employee's day into work,
// break, and disposal time, checks statutory break rules, and aggregates the
// daily results into weekly discrepancies. The package operates on
// pre-resolved segments; mapping sub-categories to their effective category
// is the caller's job.
package metrics

import (
	"sort"
)

// Statutory thresholds of the German working-time rules, in minutes.
const (
	breakRequired30Above = 360
	breakRequired45Above = 540
	maxDailyWork         = 600
	requiredBreak30      = 30
	requiredBreak45      = 45
)

// Warning texts emitted by the daily calculator.
const (
	WarningBreak30Missing  = "30-minute break missing"
	WarningBreak45Missing  = "45-minute break missing"
	WarningMaxWorkExceeded = "maximum daily work time exceeded"
)

// Segment is one classified time span of an employee's day. CategoryKey
// identifies the effective category for per-category totals; Break and
// Disposal mark spans counting as break or disposal time.
type Segment struct {
	Start       int
	End         int
	CategoryKey string
	Break       bool
	Disposal    bool
}

// DailyResult summarises one employee-day.
type DailyResult struct {
	CategoryTotals  map[string]int
	WorkMinutes     int
	BreakMinutes    int
	DisposalMinutes int
	Warnings        []string
	// BreakDueMinute is the absolute minute at which cumulative work first
	// reaches six hours. Set only while the 30-minute break warning fires;
	// display-only.
	BreakDueMinute *int
}

// ComputeDaily classifies the given segments and evaluates break-time
// compliance. The input slice is not mutated; the three warnings are
// independent and can co-occur.
func ComputeDaily(segments []Segment) DailyResult {
	result := DailyResult{CategoryTotals: make(map[string]int)}

	for _, seg := range segments {
		duration := seg.End - seg.Start
		if duration <= 0 {
			continue
		}
		result.CategoryTotals[seg.CategoryKey] += duration
		if seg.Break {
			result.BreakMinutes += duration
		} else {
			result.WorkMinutes += duration
		}
		if seg.Disposal {
			result.DisposalMinutes += duration
		}
	}

	if result.WorkMinutes > breakRequired30Above && result.BreakMinutes < requiredBreak30 {
		result.Warnings = append(result.Warnings, WarningBreak30Missing)
		result.BreakDueMinute = breakDueMinute(segments)
	}
	if result.WorkMinutes > breakRequired45Above && result.BreakMinutes < requiredBreak45 {
		result.Warnings = append(result.Warnings, WarningBreak45Missing)
	}
	if result.WorkMinutes > maxDailyWork {
		result.Warnings = append(result.Warnings, WarningMaxWorkExceeded)
	}

	return result
}

// breakDueMinute walks the non-break segments in chronological start order
// and returns the absolute minute at which cumulative work reaches six
// hours.
func breakDueMinute(segments []Segment) *int {
	ordered := make([]Segment, 0, len(segments))
	for _, seg := range segments {
		if !seg.Break && seg.End > seg.Start {
			ordered = append(ordered, seg)
		}
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Start < ordered[j].Start })

	cumulative := 0
	for _, seg := range ordered {
		duration := seg.End - seg.Start
		if cumulative+duration >= breakRequired30Above {
			due := seg.Start + (breakRequired30Above - cumulative)
			return &due
		}
		cumulative += duration
	}
	return nil
}
