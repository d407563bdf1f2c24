package persistence

import (
	"fmt"

	"github.com/example/shift-planner/internal/application"
	"github.com/example/shift-planner/internal/timeutil"
)

// FromSnapshot converts an in-memory roster snapshot into the persisted
// document shape.
func FromSnapshot(snap application.Snapshot) Document {
	doc := Document{
		Groups:            make([]GroupRecord, 0, len(snap.Groups)),
		Employees:         make([]EmployeeRecord, 0, len(snap.Employees)),
		Categories:        make([]CategoryRecord, 0, len(snap.Categories)),
		SubCategories:     make([]SubCategoryRecord, 0, len(snap.SubCategories)),
		DisposalTimeRules: make([]DisposalRuleRecord, 0, len(snap.DisposalRules)),
		OrderedGroupIDs:   append([]string(nil), snap.OrderedGroupIDs...),
	}

	for _, c := range snap.Categories {
		doc.Categories = append(doc.Categories, CategoryRecord{
			ID:                     c.ID,
			Name:                   c.Name,
			ColorToken:             c.ColorToken,
			IsDisposalTimeCategory: c.IsDisposalTime,
			IsCareCategory:         c.IsCare,
		})
	}
	for _, sub := range snap.SubCategories {
		doc.SubCategories = append(doc.SubCategories, SubCategoryRecord{
			ID:               sub.ID,
			Name:             sub.Name,
			ParentCategoryID: sub.Parent.Key(),
			ColorToken:       sub.ColorToken,
		})
	}
	for _, g := range snap.Groups {
		doc.Groups = append(doc.Groups, GroupRecord{
			ID:                      g.ID,
			Name:                    g.Name,
			ColorToken:              g.ColorToken,
			OpeningHours:            rangeMapToRecords(g.OpeningHours),
			DaysEnabled:             dayMapToRecords(g.DaysEnabled),
			EdgeTimes:               rangeMapToRecords(g.EdgeTimes),
			MinStaffRequired:        g.MinStaffRequired,
			StaffingWarningDisabled: g.StaffingWarningDisabled,
		})
	}
	for _, e := range snap.Employees {
		record := EmployeeRecord{
			ID:                     e.ID,
			Name:                   e.Name,
			ContractedHoursPerWeek: e.ContractedHoursPerWeek,
			GroupID:                e.GroupID,
			Type:                   string(e.Type),
			PresenceDays:           presenceDaysToRecords(e.PresenceDays),
		}
		if e.OverriddenDisposalHours != nil {
			hours := *e.OverriddenDisposalHours
			record.OverriddenDisposalHours = &hours
		}
		doc.Employees = append(doc.Employees, record)
	}
	for _, rule := range snap.DisposalRules {
		doc.DisposalTimeRules = append(doc.DisposalTimeRules, DisposalRuleRecord{
			ContractedHours: rule.ContractedHours,
			DisposalHours:   rule.DisposalHours,
		})
	}

	doc.MasterSchedule = MasterScheduleRecord{
		Shifts:           make([]ShiftRecord, 0, len(snap.Plan.Shifts)),
		DisplayStartTime: timeutil.FormatClock(snap.Plan.DisplayStart),
		DisplayEndTime:   timeutil.FormatClock(snap.Plan.DisplayEnd),
		Title:            snap.Plan.Title,
	}
	for _, shift := range snap.Plan.Shifts {
		record := ShiftRecord{
			ID:         shift.ID,
			EmployeeID: shift.EmployeeID,
			DayOfWeek:  shift.Day.String(),
			Segments:   make([]SegmentRecord, 0, len(shift.Segments)),
		}
		for _, seg := range shift.Segments {
			record.Segments = append(record.Segments, SegmentRecord{
				CategoryID:        seg.Category.Key(),
				SubCategoryID:     seg.SubCategoryID,
				StartTime:         timeutil.FormatClock(seg.Start),
				EndTime:           timeutil.FormatClock(seg.End),
				OverriddenGroupID: seg.OverriddenGroupID,
			})
		}
		doc.MasterSchedule.Shifts = append(doc.MasterSchedule.Shifts, record)
	}

	return doc
}

// ToSnapshot converts a persisted document back into a roster snapshot,
// parsing every clock string and weekday name. Unknown weekdays, employee
// types, and malformed times are decode errors.
func ToSnapshot(doc Document) (application.Snapshot, error) {
	snap := application.Snapshot{
		Categories:      make([]application.Category, 0, len(doc.Categories)),
		SubCategories:   make([]application.SubCategory, 0, len(doc.SubCategories)),
		Groups:          make([]application.Group, 0, len(doc.Groups)),
		OrderedGroupIDs: append([]string(nil), doc.OrderedGroupIDs...),
		Employees:       make([]application.Employee, 0, len(doc.Employees)),
		DisposalRules:   make([]application.DisposalRule, 0, len(doc.DisposalTimeRules)),
	}

	for _, c := range doc.Categories {
		snap.Categories = append(snap.Categories, application.Category{
			ID:             c.ID,
			Name:           c.Name,
			ColorToken:     c.ColorToken,
			IsDisposalTime: c.IsDisposalTimeCategory,
			IsCare:         c.IsCareCategory,
		})
	}
	for _, sub := range doc.SubCategories {
		snap.SubCategories = append(snap.SubCategories, application.SubCategory{
			ID:         sub.ID,
			Name:       sub.Name,
			Parent:     categoryRefFromID(sub.ParentCategoryID),
			ColorToken: sub.ColorToken,
		})
	}
	for _, g := range doc.Groups {
		openingHours, err := rangeMapFromRecords(g.OpeningHours)
		if err != nil {
			return application.Snapshot{}, fmt.Errorf("persistence: group %s opening hours: %w", g.ID, err)
		}
		edgeTimes, err := rangeMapFromRecords(g.EdgeTimes)
		if err != nil {
			return application.Snapshot{}, fmt.Errorf("persistence: group %s edge times: %w", g.ID, err)
		}
		daysEnabled, err := dayMapFromRecords(g.DaysEnabled)
		if err != nil {
			return application.Snapshot{}, fmt.Errorf("persistence: group %s enabled days: %w", g.ID, err)
		}
		snap.Groups = append(snap.Groups, application.Group{
			ID:                      g.ID,
			Name:                    g.Name,
			ColorToken:              g.ColorToken,
			OpeningHours:            openingHours,
			DaysEnabled:             daysEnabled,
			EdgeTimes:               edgeTimes,
			MinStaffRequired:        g.MinStaffRequired,
			StaffingWarningDisabled: g.StaffingWarningDisabled,
		})
	}
	for _, e := range doc.Employees {
		employeeType := application.EmployeeType(e.Type)
		if !employeeType.Valid() {
			return application.Snapshot{}, fmt.Errorf("persistence: employee %s: unknown type %q", e.ID, e.Type)
		}
		presenceDays, err := presenceDaysFromRecords(e.PresenceDays)
		if err != nil {
			return application.Snapshot{}, fmt.Errorf("persistence: employee %s presence days: %w", e.ID, err)
		}
		employee := application.Employee{
			ID:                     e.ID,
			Name:                   e.Name,
			ContractedHoursPerWeek: e.ContractedHoursPerWeek,
			GroupID:                e.GroupID,
			Type:                   employeeType,
			PresenceDays:           presenceDays,
		}
		if e.OverriddenDisposalHours != nil {
			hours := *e.OverriddenDisposalHours
			employee.OverriddenDisposalHours = &hours
		}
		snap.Employees = append(snap.Employees, employee)
	}
	for _, rule := range doc.DisposalTimeRules {
		snap.DisposalRules = append(snap.DisposalRules, application.DisposalRule{
			ContractedHours: rule.ContractedHours,
			DisposalHours:   rule.DisposalHours,
		})
	}

	displayStart, err := timeutil.ParseClock(doc.MasterSchedule.DisplayStartTime)
	if err != nil {
		return application.Snapshot{}, fmt.Errorf("persistence: display start: %w", err)
	}
	displayEnd, err := timeutil.ParseClock(doc.MasterSchedule.DisplayEndTime)
	if err != nil {
		return application.Snapshot{}, fmt.Errorf("persistence: display end: %w", err)
	}
	snap.Plan = application.WeekPlan{
		Title:        doc.MasterSchedule.Title,
		DisplayStart: displayStart,
		DisplayEnd:   displayEnd,
		Shifts:       make([]application.Shift, 0, len(doc.MasterSchedule.Shifts)),
	}
	for _, record := range doc.MasterSchedule.Shifts {
		day, ok := application.ParseWeekday(record.DayOfWeek)
		if !ok {
			return application.Snapshot{}, fmt.Errorf("persistence: shift %s: unknown weekday %q", record.ID, record.DayOfWeek)
		}
		shift := application.Shift{
			ID:         record.ID,
			EmployeeID: record.EmployeeID,
			Day:        day,
			Segments:   make([]application.Segment, 0, len(record.Segments)),
		}
		for i, seg := range record.Segments {
			start, err := timeutil.ParseClock(seg.StartTime)
			if err != nil {
				return application.Snapshot{}, fmt.Errorf("persistence: shift %s segment %d: %w", record.ID, i, err)
			}
			end, err := timeutil.ParseClock(seg.EndTime)
			if err != nil {
				return application.Snapshot{}, fmt.Errorf("persistence: shift %s segment %d: %w", record.ID, i, err)
			}
			shift.Segments = append(shift.Segments, application.Segment{
				Category:          categoryRefFromID(seg.CategoryID),
				SubCategoryID:     seg.SubCategoryID,
				Start:             start,
				End:               end,
				OverriddenGroupID: seg.OverriddenGroupID,
			})
		}
		snap.Plan.Shifts = append(snap.Plan.Shifts, shift)
	}

	return snap, nil
}

func categoryRefFromID(id string) application.CategoryRef {
	if id == application.PauseCategoryKey {
		return application.PauseCategory()
	}
	return application.UserCategory(id)
}

func rangeMapToRecords(ranges map[application.Weekday][]application.TimeRange) map[string][]TimeRangeRecord {
	if len(ranges) == 0 {
		return nil
	}
	records := make(map[string][]TimeRangeRecord, len(ranges))
	for day, dayRanges := range ranges {
		converted := make([]TimeRangeRecord, 0, len(dayRanges))
		for _, r := range dayRanges {
			converted = append(converted, TimeRangeRecord{
				StartTime: timeutil.FormatClock(r.Start),
				EndTime:   timeutil.FormatClock(r.End),
			})
		}
		records[day.String()] = converted
	}
	return records
}

func rangeMapFromRecords(records map[string][]TimeRangeRecord) (map[application.Weekday][]application.TimeRange, error) {
	if len(records) == 0 {
		return nil, nil
	}
	ranges := make(map[application.Weekday][]application.TimeRange, len(records))
	for name, dayRecords := range records {
		day, ok := application.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		converted := make([]application.TimeRange, 0, len(dayRecords))
		for _, r := range dayRecords {
			start, err := timeutil.ParseClock(r.StartTime)
			if err != nil {
				return nil, err
			}
			end, err := timeutil.ParseClock(r.EndTime)
			if err != nil {
				return nil, err
			}
			converted = append(converted, application.TimeRange{Start: start, End: end})
		}
		ranges[day] = converted
	}
	return ranges, nil
}

func dayMapToRecords(days map[application.Weekday]bool) map[string]bool {
	if len(days) == 0 {
		return nil
	}
	records := make(map[string]bool, len(days))
	for day, enabled := range days {
		records[day.String()] = enabled
	}
	return records
}

func dayMapFromRecords(records map[string]bool) (map[application.Weekday]bool, error) {
	if len(records) == 0 {
		return nil, nil
	}
	days := make(map[application.Weekday]bool, len(records))
	for name, enabled := range records {
		day, ok := application.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days[day] = enabled
	}
	return days, nil
}

func presenceDaysToRecords(days map[application.Weekday]bool) []string {
	names := make([]string, 0, len(days))
	for _, day := range application.Workdays {
		if days[day] {
			names = append(names, day.String())
		}
	}
	return names
}

func presenceDaysFromRecords(names []string) (map[application.Weekday]bool, error) {
	days := make(map[application.Weekday]bool, len(names))
	for _, name := range names {
		day, ok := application.ParseWeekday(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		days[day] = true
	}
	return days, nil
}
