// Package coverage scans a group's day at minute resolution and extracts the
// sub-intervals where care staffing falls below the required minimum. The
// caller resolves which segments qualify (care category, effective group)
// and which opening and edge-time ranges apply.
package coverage

import (
	"fmt"

	"github.com/example/shift-planner/internal/timeutil"
)

// stepMinutes is the evaluation resolution over an opening range.
const stepMinutes = 15

// DefaultMinStaff is the staffing threshold used when a group does not
// configure its own.
const DefaultMinStaff = 2

// Range is a half-open [Start, End) minute span.
type Range struct {
	Start int
	End   int
}

// Params describes one group-day analysis.
type Params struct {
	// StaffSpans are the qualifying care segments counted into the timeline.
	StaffSpans []Range
	// OpeningRanges are the group's opening hours for the day.
	OpeningRanges []Range
	// EdgeRanges suppress warnings for steps starting inside them.
	EdgeRanges []Range
	// MinStaff is the required headcount; values below one fall back to
	// DefaultMinStaff.
	MinStaff int
}

// Result carries the extracted warning intervals, both machine readable and
// as display strings.
type Result struct {
	WarningRanges []Range
	TextWarnings  []string
}

// Analyze builds a minute timeline from the staff spans and walks every
// opening range in 15-minute steps, collecting maximal runs of understaffed
// steps. A step whose start lies inside an edge-time range never opens or
// extends a warning. A final step truncated by the range end counts as zero
// coverage; this understates true coverage but matches the established
// behavior.
func Analyze(params Params) Result {
	minStaff := params.MinStaff
	if minStaff < 1 {
		minStaff = DefaultMinStaff
	}

	var timeline [timeutil.MinutesPerDay]int
	for _, span := range params.StaffSpans {
		start := max(span.Start, 0)
		end := min(span.End, timeutil.MinutesPerDay)
		for minute := start; minute < end; minute++ {
			timeline[minute]++
		}
	}

	var result Result
	for _, opening := range params.OpeningRanges {
		openStart := -1
		for step := opening.Start; step < opening.End; step += stepMinutes {
			below := stepMinimum(&timeline, step, opening.End) < minStaff
			if below && !insideEdge(step, params.EdgeRanges) {
				if openStart < 0 {
					openStart = step
				}
				continue
			}
			if openStart >= 0 {
				result.append(Range{Start: openStart, End: step}, minStaff)
				openStart = -1
			}
		}
		if openStart >= 0 {
			result.append(Range{Start: openStart, End: opening.End}, minStaff)
		}
	}
	return result
}

func (r *Result) append(warning Range, minStaff int) {
	r.WarningRanges = append(r.WarningRanges, warning)
	r.TextWarnings = append(r.TextWarnings, fmt.Sprintf("fewer than %d in care (%s)", minStaff, timeutil.FormatClockRange(warning.Start, warning.End)))
}

// stepMinimum returns the lowest timeline value across one step. A step cut
// short by the range end is reported as zero staff.
func stepMinimum(timeline *[timeutil.MinutesPerDay]int, step, rangeEnd int) int {
	end := step + stepMinutes
	if end > rangeEnd {
		return 0
	}
	if step < 0 || end > timeutil.MinutesPerDay {
		return 0
	}
	lowest := timeline[step]
	for minute := step + 1; minute < end; minute++ {
		if timeline[minute] < lowest {
			lowest = timeline[minute]
		}
	}
	return lowest
}

func insideEdge(step int, edges []Range) bool {
	for _, edge := range edges {
		if step >= edge.Start && step < edge.End {
			return true
		}
	}
	return false
}
