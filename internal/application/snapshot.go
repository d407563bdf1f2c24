package application

// CategoryByID finds a user category.
func (s *Snapshot) CategoryByID(id string) (Category, bool) {
	for _, c := range s.Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// SubCategoryByID finds a sub-category.
func (s *Snapshot) SubCategoryByID(id string) (SubCategory, bool) {
	for _, sc := range s.SubCategories {
		if sc.ID == id {
			return sc, true
		}
	}
	return SubCategory{}, false
}

// GroupByID finds a group.
func (s *Snapshot) GroupByID(id string) (Group, bool) {
	for _, g := range s.Groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}

// EmployeeByID finds an employee.
func (s *Snapshot) EmployeeByID(id string) (Employee, bool) {
	for _, e := range s.Employees {
		if e.ID == id {
			return e, true
		}
	}
	return Employee{}, false
}

// ShiftByID finds a shift in the week plan.
func (s *Snapshot) ShiftByID(id string) (Shift, bool) {
	for _, sh := range s.Plan.Shifts {
		if sh.ID == id {
			return sh, true
		}
	}
	return Shift{}, false
}

// ShiftsForDay returns every shift scheduled on the given weekday.
func (s *Snapshot) ShiftsForDay(day Weekday) []Shift {
	var shifts []Shift
	for _, sh := range s.Plan.Shifts {
		if sh.Day == day {
			shifts = append(shifts, sh)
		}
	}
	return shifts
}

// SegmentsFor returns all segments booked for one employee on one weekday,
// across shifts.
func (s *Snapshot) SegmentsFor(employeeID string, day Weekday) []Segment {
	var segments []Segment
	for _, sh := range s.Plan.Shifts {
		if sh.EmployeeID != employeeID || sh.Day != day {
			continue
		}
		segments = append(segments, sh.Segments...)
	}
	return segments
}

// CareCategory returns the single category flagged as the care category.
// The second result is false when no category or more than one carries the
// flag; staffing analysis is skipped in that case.
func (s *Snapshot) CareCategory() (Category, bool) {
	var found Category
	count := 0
	for _, c := range s.Categories {
		if c.IsCare {
			found = c
			count++
		}
	}
	return found, count == 1
}

// DisposalCategory returns the category flagged for disposal time, if any.
func (s *Snapshot) DisposalCategory() (Category, bool) {
	for _, c := range s.Categories {
		if c.IsDisposalTime {
			return c, true
		}
	}
	return Category{}, false
}

// EffectiveCategory resolves the category a segment counts toward: the
// parent of its sub-category when one is set, else the segment's own
// category reference.
func (s *Snapshot) EffectiveCategory(seg Segment) CategoryRef {
	if seg.SubCategoryID != "" {
		if sub, ok := s.SubCategoryByID(seg.SubCategoryID); ok {
			return sub.Parent
		}
	}
	return seg.Category
}

// EffectiveGroupID resolves which group a segment staffs: the segment-level
// override when present, else the owning employee's default group. An empty
// result means no group.
func EffectiveGroupID(seg Segment, employee Employee) string {
	if seg.OverriddenGroupID != "" {
		return seg.OverriddenGroupID
	}
	return employee.GroupID
}

// Clone returns a deep copy; mutating the copy never affects the receiver.
func (s Snapshot) Clone() Snapshot {
	clone := Snapshot{
		Categories:      append([]Category(nil), s.Categories...),
		SubCategories:   append([]SubCategory(nil), s.SubCategories...),
		OrderedGroupIDs: append([]string(nil), s.OrderedGroupIDs...),
		DisposalRules:   append([]DisposalRule(nil), s.DisposalRules...),
		Plan: WeekPlan{
			Title:        s.Plan.Title,
			DisplayStart: s.Plan.DisplayStart,
			DisplayEnd:   s.Plan.DisplayEnd,
		},
	}

	clone.Groups = make([]Group, len(s.Groups))
	for i, g := range s.Groups {
		clone.Groups[i] = cloneGroup(g)
	}

	clone.Employees = make([]Employee, len(s.Employees))
	for i, e := range s.Employees {
		clone.Employees[i] = cloneEmployee(e)
	}

	clone.Plan.Shifts = make([]Shift, len(s.Plan.Shifts))
	for i, sh := range s.Plan.Shifts {
		clone.Plan.Shifts[i] = Shift{
			ID:         sh.ID,
			EmployeeID: sh.EmployeeID,
			Day:        sh.Day,
			Segments:   append([]Segment(nil), sh.Segments...),
		}
	}

	return clone
}

func cloneGroup(g Group) Group {
	clone := g
	clone.OpeningHours = cloneRangeMap(g.OpeningHours)
	clone.EdgeTimes = cloneRangeMap(g.EdgeTimes)
	if g.DaysEnabled != nil {
		clone.DaysEnabled = make(map[Weekday]bool, len(g.DaysEnabled))
		for day, enabled := range g.DaysEnabled {
			clone.DaysEnabled[day] = enabled
		}
	}
	return clone
}

func cloneEmployee(e Employee) Employee {
	clone := e
	if e.OverriddenDisposalHours != nil {
		hours := *e.OverriddenDisposalHours
		clone.OverriddenDisposalHours = &hours
	}
	if e.PresenceDays != nil {
		clone.PresenceDays = make(map[Weekday]bool, len(e.PresenceDays))
		for day, present := range e.PresenceDays {
			clone.PresenceDays[day] = present
		}
	}
	return clone
}

func cloneRangeMap(m map[Weekday][]TimeRange) map[Weekday][]TimeRange {
	if m == nil {
		return nil
	}
	clone := make(map[Weekday][]TimeRange, len(m))
	for day, ranges := range m {
		clone[day] = append([]TimeRange(nil), ranges...)
	}
	return clone
}
