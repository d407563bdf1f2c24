package application

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/shift-planner/internal/coverage"
	"github.com/example/shift-planner/internal/metrics"
)

// GroupDayWarnings pairs one group-day staffing analysis with its subject.
type GroupDayWarnings struct {
	GroupID string
	Day     Weekday
	Result  coverage.Result
}

// ReportService computes the daily, weekly, and staffing summaries over a
// snapshot. All methods are pure over their inputs and safe to re-run on
// every render.
type ReportService struct {
	logger *slog.Logger
}

// NewReportService constructs a report service.
func NewReportService() *ReportService {
	return NewReportServiceWithLogger(nil)
}

// NewReportServiceWithLogger constructs a report service with a specified
// logger.
func NewReportServiceWithLogger(logger *slog.Logger) *ReportService {
	return &ReportService{logger: defaultLogger(logger)}
}

func (s *ReportService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ReportService", operation, attrs...)
}

// DailyMetrics classifies one employee-day and evaluates the break rules.
func (s *ReportService) DailyMetrics(ctx context.Context, snap Snapshot, employeeID string, day Weekday) (metrics.DailyResult, error) {
	if s == nil {
		return metrics.DailyResult{}, fmt.Errorf("ReportService is nil")
	}
	if _, ok := snap.EmployeeByID(employeeID); !ok {
		return metrics.DailyResult{}, ErrNotFound
	}
	if !day.Valid() {
		return metrics.DailyResult{}, fmt.Errorf("%w: weekday %d", ErrNotFound, day)
	}
	return metrics.ComputeDaily(s.classify(&snap, snap.SegmentsFor(employeeID, day))), nil
}

// WeeklySummary aggregates one employee's week: totals, contracted-hours
// discrepancy, disposal-time target, and the presence-day comparison for
// employee types with chosen presence days.
func (s *ReportService) WeeklySummary(ctx context.Context, snap Snapshot, employeeID string) (metrics.WeeklyResult, error) {
	if s == nil {
		return metrics.WeeklyResult{}, fmt.Errorf("ReportService is nil")
	}
	employee, ok := snap.EmployeeByID(employeeID)
	if !ok {
		return metrics.WeeklyResult{}, ErrNotFound
	}

	days := make([]metrics.DailyResult, len(Workdays))
	for i, day := range Workdays {
		days[i] = metrics.ComputeDaily(s.classify(&snap, snap.SegmentsFor(employeeID, day)))
	}

	var presenceIndexes []int
	for i, day := range Workdays {
		if employee.PresenceDays[day] {
			presenceIndexes = append(presenceIndexes, i)
		}
	}

	return metrics.ComputeWeekly(metrics.WeeklyParams{
		Days:                  days,
		ContractedMinutes:     employee.ContractedHoursPerWeek * 60,
		TargetDisposalMinutes: targetDisposalMinutes(&snap, employee),
		TrackPresence:         employee.Type.TracksPresenceDays(),
		PresenceDayIndexes:    presenceIndexes,
	}), nil
}

// StaffingWarnings runs the minimum-staffing analysis for one group and
// weekday. When a precondition is not met (warnings disabled, day disabled,
// no opening hours, or no unambiguous care category) the analysis is
// skipped with a debug log entry and an empty result; this is a soft
// degrade, not an error.
func (s *ReportService) StaffingWarnings(ctx context.Context, snap Snapshot, groupID string, day Weekday) (coverage.Result, error) {
	if s == nil {
		return coverage.Result{}, fmt.Errorf("ReportService is nil")
	}
	group, ok := snap.GroupByID(groupID)
	if !ok {
		return coverage.Result{}, ErrNotFound
	}

	logger := s.loggerWith(ctx, "StaffingWarnings", "group_id", groupID, "day", day.String())

	if group.StaffingWarningDisabled {
		logger.DebugContext(ctx, "skipping staffing analysis", "reason", "warnings disabled")
		return coverage.Result{}, nil
	}
	if !group.DaysEnabled[day] {
		logger.DebugContext(ctx, "skipping staffing analysis", "reason", "day disabled")
		return coverage.Result{}, nil
	}
	openingRanges := group.OpeningHours[day]
	if len(openingRanges) == 0 {
		logger.DebugContext(ctx, "skipping staffing analysis", "reason", "no opening hours")
		return coverage.Result{}, nil
	}
	careCategory, ok := snap.CareCategory()
	if !ok {
		logger.DebugContext(ctx, "skipping staffing analysis", "reason", "no unambiguous care category")
		return coverage.Result{}, nil
	}

	careRef := UserCategory(careCategory.ID)
	var staffSpans []coverage.Range
	for _, shift := range snap.ShiftsForDay(day) {
		employee, _ := snap.EmployeeByID(shift.EmployeeID)
		for _, seg := range shift.Segments {
			if snap.EffectiveCategory(seg) != careRef {
				continue
			}
			if EffectiveGroupID(seg, employee) != groupID {
				continue
			}
			staffSpans = append(staffSpans, coverage.Range{Start: seg.Start, End: seg.End})
		}
	}

	return coverage.Analyze(coverage.Params{
		StaffSpans:    staffSpans,
		OpeningRanges: coverageRanges(openingRanges),
		EdgeRanges:    coverageRanges(group.EdgeTimes[day]),
		MinStaff:      group.MinStaffRequired,
	}), nil
}

// WeeklyStaffingReport runs the staffing analysis for every group in display
// order across all workdays, keeping only group-days with findings.
func (s *ReportService) WeeklyStaffingReport(ctx context.Context, snap Snapshot) ([]GroupDayWarnings, error) {
	if s == nil {
		return nil, fmt.Errorf("ReportService is nil")
	}

	var report []GroupDayWarnings
	for _, groupID := range snap.OrderedGroupIDs {
		for _, day := range Workdays {
			result, err := s.StaffingWarnings(ctx, snap, groupID, day)
			if err != nil {
				return nil, err
			}
			if len(result.WarningRanges) == 0 {
				continue
			}
			report = append(report, GroupDayWarnings{GroupID: groupID, Day: day, Result: result})
		}
	}
	return report, nil
}

// classify resolves each segment to its effective category and marks break
// and disposal time for the daily calculator.
func (s *ReportService) classify(snap *Snapshot, segments []Segment) []metrics.Segment {
	disposalCategory, hasDisposal := snap.DisposalCategory()

	classified := make([]metrics.Segment, 0, len(segments))
	for _, seg := range segments {
		effective := snap.EffectiveCategory(seg)
		entry := metrics.Segment{
			Start:       seg.Start,
			End:         seg.End,
			CategoryKey: effective.Key(),
			Break:       effective.IsPause(),
		}
		if hasDisposal {
			if id, ok := effective.UserID(); ok && id == disposalCategory.ID {
				entry.Disposal = true
			}
		}
		classified = append(classified, entry)
	}
	return classified
}

// targetDisposalMinutes resolves the weekly disposal target: the employee's
// override when set, else the rule matching the contracted hours, else zero.
func targetDisposalMinutes(snap *Snapshot, employee Employee) float64 {
	if employee.OverriddenDisposalHours != nil {
		return *employee.OverriddenDisposalHours * 60
	}
	for _, rule := range snap.DisposalRules {
		if rule.ContractedHours == employee.ContractedHoursPerWeek {
			return rule.DisposalHours * 60
		}
	}
	return 0
}

func coverageRanges(ranges []TimeRange) []coverage.Range {
	converted := make([]coverage.Range, 0, len(ranges))
	for _, r := range ranges {
		converted = append(converted, coverage.Range{Start: r.Start, End: r.End})
	}
	return converted
}
