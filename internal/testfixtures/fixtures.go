// Package testfixtures builds deterministic roster entities and snapshots
// for tests across the module.
package testfixtures

import (
	"fmt"
	"sync/atomic"

	"github.com/example/shift-planner/internal/application"
)

var (
	categoryCounter uint64
	groupCounter    uint64
	employeeCounter uint64
	shiftCounter    uint64
)

// CategoryOption configures a generated category fixture.
type CategoryOption func(*application.Category)

// NewCategoryFixture returns a deterministic category with optional
// overrides.
func NewCategoryFixture(opts ...CategoryOption) application.Category {
	idx := atomic.AddUint64(&categoryCounter, 1)
	fixture := application.Category{
		ID:         fmt.Sprintf("category-%03d", idx),
		Name:       fmt.Sprintf("Category %03d", idx),
		ColorToken: "slate",
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// AsCare marks the fixture as the care category.
func AsCare() CategoryOption {
	return func(c *application.Category) { c.IsCare = true }
}

// AsDisposalTime marks the fixture as the disposal-time category.
func AsDisposalTime() CategoryOption {
	return func(c *application.Category) { c.IsDisposalTime = true }
}

// WithCategoryID overrides the generated category id.
func WithCategoryID(id string) CategoryOption {
	return func(c *application.Category) { c.ID = id }
}

// GroupOption configures a generated group fixture.
type GroupOption func(*application.Group)

// NewGroupFixture returns a deterministic group open every workday from
// 08:00 to 16:00, with optional overrides.
func NewGroupFixture(opts ...GroupOption) application.Group {
	idx := atomic.AddUint64(&groupCounter, 1)
	fixture := application.Group{
		ID:           fmt.Sprintf("group-%03d", idx),
		Name:         fmt.Sprintf("Group %03d", idx),
		ColorToken:   "emerald",
		OpeningHours: make(map[application.Weekday][]application.TimeRange),
		DaysEnabled:  make(map[application.Weekday]bool),
		EdgeTimes:    make(map[application.Weekday][]application.TimeRange),
	}
	for _, day := range application.Workdays {
		fixture.DaysEnabled[day] = true
		fixture.OpeningHours[day] = []application.TimeRange{{Start: 480, End: 960}}
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithGroupID overrides the generated group id.
func WithGroupID(id string) GroupOption {
	return func(g *application.Group) { g.ID = id }
}

// WithOpeningHours replaces the opening hours of one day.
func WithOpeningHours(day application.Weekday, ranges ...application.TimeRange) GroupOption {
	return func(g *application.Group) { g.OpeningHours[day] = ranges }
}

// WithEdgeTimes sets the edge times of one day.
func WithEdgeTimes(day application.Weekday, ranges ...application.TimeRange) GroupOption {
	return func(g *application.Group) { g.EdgeTimes[day] = ranges }
}

// WithMinStaff sets the staffing threshold.
func WithMinStaff(n int) GroupOption {
	return func(g *application.Group) { g.MinStaffRequired = n }
}

// EmployeeOption configures a generated employee fixture.
type EmployeeOption func(*application.Employee)

// NewEmployeeFixture returns a deterministic full-time employee present on
// every workday, with optional overrides.
func NewEmployeeFixture(opts ...EmployeeOption) application.Employee {
	idx := atomic.AddUint64(&employeeCounter, 1)
	fixture := application.Employee{
		ID:                     fmt.Sprintf("employee-%03d", idx),
		Name:                   fmt.Sprintf("Employee %03d", idx),
		ContractedHoursPerWeek: 39,
		Type:                   application.EmployeeNormal,
		PresenceDays:           make(map[application.Weekday]bool),
	}
	for _, day := range application.Workdays {
		fixture.PresenceDays[day] = true
	}
	for _, opt := range opts {
		opt(&fixture)
	}
	return fixture
}

// WithEmployeeID overrides the generated employee id.
func WithEmployeeID(id string) EmployeeOption {
	return func(e *application.Employee) { e.ID = id }
}

// InGroup assigns the employee's default group.
func InGroup(groupID string) EmployeeOption {
	return func(e *application.Employee) { e.GroupID = groupID }
}

// OfType sets the employee type.
func OfType(t application.EmployeeType) EmployeeOption {
	return func(e *application.Employee) { e.Type = t }
}

// WithPresenceDays replaces the presence-day set.
func WithPresenceDays(days ...application.Weekday) EmployeeOption {
	return func(e *application.Employee) {
		e.PresenceDays = make(map[application.Weekday]bool, len(days))
		for _, day := range days {
			e.PresenceDays[day] = true
		}
	}
}

// NewShiftFixture returns a shift for the employee and day carrying the
// given segments.
func NewShiftFixture(employeeID string, day application.Weekday, segments ...application.Segment) application.Shift {
	idx := atomic.AddUint64(&shiftCounter, 1)
	return application.Shift{
		ID:         fmt.Sprintf("shift-%03d", idx),
		EmployeeID: employeeID,
		Day:        day,
		Segments:   segments,
	}
}

// CareSegment builds a segment booked to the given category spanning
// [start, end).
func CareSegment(categoryID string, start, end int) application.Segment {
	return application.Segment{
		Category: application.UserCategory(categoryID),
		Start:    start,
		End:      end,
	}
}

// PauseSegment builds a break segment spanning [start, end).
func PauseSegment(start, end int) application.Segment {
	return application.Segment{
		Category: application.PauseCategory(),
		Start:    start,
		End:      end,
	}
}

// NewSnapshotFixture assembles a snapshot from the given entities, deriving
// the group display order from the group slice.
func NewSnapshotFixture(categories []application.Category, groups []application.Group, employees []application.Employee, shifts []application.Shift) application.Snapshot {
	orderedIDs := make([]string, 0, len(groups))
	for _, g := range groups {
		orderedIDs = append(orderedIDs, g.ID)
	}
	return application.Snapshot{
		Categories:      categories,
		Groups:          groups,
		OrderedGroupIDs: orderedIDs,
		Employees:       employees,
		Plan: application.WeekPlan{
			Title:        "Template Week",
			DisplayStart: 360,
			DisplayEnd:   1080,
			Shifts:       shifts,
		},
	}
}
