package metrics

import (
	"fmt"
	"math"
	"strconv"
)

// workdaysPerWeek is the fixed span of the template week. The presence-day
// target divides contracted minutes by this value regardless of how many
// presence days an employee has; changing the roster span means changing
// this constant.
const workdaysPerWeek = 5

// discrepancyTolerance is the slack, in minutes, below which weekly totals
// count as on target.
const discrepancyTolerance = 0.1

// WeeklyParams carries one employee's daily results plus the resolved
// targets. TargetDisposalMinutes of zero disables the disposal comparison;
// TrackPresence enables the presence-day comparison for employee types with
// chosen presence days.
type WeeklyParams struct {
	Days                  []DailyResult
	ContractedMinutes     float64
	TargetDisposalMinutes float64
	TrackPresence         bool
	PresenceDayIndexes    []int
}

// WeeklyResult summarises one employee's week.
type WeeklyResult struct {
	WorkMinutes           int
	BreakMinutes          int
	DisposalMinutes       int
	TargetDisposalMinutes float64
	CategoryTotals        map[string]int
	Warnings              []string
}

// ComputeWeekly rolls the daily results up into weekly totals and
// discrepancy warnings.
func ComputeWeekly(params WeeklyParams) WeeklyResult {
	result := WeeklyResult{
		CategoryTotals:        make(map[string]int),
		TargetDisposalMinutes: params.TargetDisposalMinutes,
	}

	for _, day := range params.Days {
		result.WorkMinutes += day.WorkMinutes
		result.BreakMinutes += day.BreakMinutes
		result.DisposalMinutes += day.DisposalMinutes
		for key, minutes := range day.CategoryTotals {
			result.CategoryTotals[key] += minutes
		}
	}

	discrepancy := float64(result.WorkMinutes) - params.ContractedMinutes
	switch {
	case discrepancy > discrepancyTolerance:
		result.Warnings = append(result.Warnings, fmt.Sprintf("overtime: %s hours over contracted time", formatHours(discrepancy)))
	case discrepancy < -discrepancyTolerance:
		result.Warnings = append(result.Warnings, fmt.Sprintf("undertime: %s hours under contracted time", formatHours(-discrepancy)))
	}

	if params.TargetDisposalMinutes > 0 {
		disposalDiff := float64(result.DisposalMinutes) - params.TargetDisposalMinutes
		switch {
		case disposalDiff > discrepancyTolerance:
			result.Warnings = append(result.Warnings, fmt.Sprintf("disposal surplus: %s hours over target", formatHours(disposalDiff)))
		case disposalDiff < -discrepancyTolerance:
			result.Warnings = append(result.Warnings, fmt.Sprintf("disposal deficit: %s hours under target", formatHours(-disposalDiff)))
		}
	}

	if params.TrackPresence && len(params.PresenceDayIndexes) > 0 {
		expected := params.ContractedMinutes / workdaysPerWeek * float64(len(params.PresenceDayIndexes))
		actual := 0
		for _, idx := range params.PresenceDayIndexes {
			if idx < 0 || idx >= len(params.Days) {
				continue
			}
			actual += params.Days[idx].WorkMinutes
		}
		presenceDiff := float64(actual) - expected
		switch {
		case presenceDiff > discrepancyTolerance:
			result.Warnings = append(result.Warnings, fmt.Sprintf("presence days: %s hours over target", formatHours(presenceDiff)))
		case presenceDiff < -discrepancyTolerance:
			result.Warnings = append(result.Warnings, fmt.Sprintf("presence days: %s hours under target", formatHours(-presenceDiff)))
		}
	}

	return result
}

// formatHours renders a minute quantity as decimal hours, matching the
// duration formatting used elsewhere: whole hours without a fraction,
// everything else with two decimal places.
func formatHours(minutes float64) string {
	hours := minutes / 60
	if rounded := math.Round(hours); math.Abs(hours-rounded) < 1e-9 {
		return strconv.Itoa(int(rounded))
	}
	return strconv.FormatFloat(hours, 'f', 2, 64)
}
