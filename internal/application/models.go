package application

// Weekday identifies one of the five workdays of the template week.
type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Workdays lists the days of the template week in order.
var Workdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

var weekdayNames = [...]string{"monday", "tuesday", "wednesday", "thursday", "friday"}

// String returns the lowercase English day name used in the persisted form.
func (d Weekday) String() string {
	if d < Monday || d > Friday {
		return "unknown"
	}
	return weekdayNames[d]
}

// Valid reports whether d names a workday of the template week.
func (d Weekday) Valid() bool {
	return d >= Monday && d <= Friday
}

// ParseWeekday maps a lowercase day name back to its Weekday.
func ParseWeekday(name string) (Weekday, bool) {
	for i, candidate := range weekdayNames {
		if candidate == name {
			return Weekday(i), true
		}
	}
	return 0, false
}

// PauseCategoryKey is the stable key under which break time appears in
// per-category totals and in the persisted form.
const PauseCategoryKey = "PAUSE"

// CategoryRef identifies the category a segment is booked to: either the
// built-in pause category or a user-defined category by id. The zero value
// references nothing.
type CategoryRef struct {
	pause bool
	id    string
}

// PauseCategory returns the reference to the built-in break category.
func PauseCategory() CategoryRef {
	return CategoryRef{pause: true}
}

// UserCategory returns a reference to the user-defined category with the
// given id.
func UserCategory(id string) CategoryRef {
	return CategoryRef{id: id}
}

// IsPause reports whether the reference denotes the built-in break category.
func (r CategoryRef) IsPause() bool {
	return r.pause
}

// UserID returns the referenced user-category id, if any.
func (r CategoryRef) UserID() (string, bool) {
	if r.pause || r.id == "" {
		return "", false
	}
	return r.id, true
}

// IsZero reports whether the reference points at nothing.
func (r CategoryRef) IsZero() bool {
	return !r.pause && r.id == ""
}

// Key returns the stable string key for totals and serialization.
func (r CategoryRef) Key() string {
	if r.pause {
		return PauseCategoryKey
	}
	return r.id
}

// Category is a user-defined booking category. At most one category in a
// snapshot may be the disposal-time category and at most one the care
// category.
type Category struct {
	ID             string
	Name           string
	ColorToken     string
	IsDisposalTime bool
	IsCare         bool
}

// SubCategory refines a parent category; time booked to it is attributed to
// the parent for every aggregate computation.
type SubCategory struct {
	ID         string
	Name       string
	Parent     CategoryRef
	ColorToken string
}

// TimeRange is a half-open [Start, End) span in minutes since midnight.
type TimeRange struct {
	Start int
	End   int
}

// Group is an organisational unit with per-day opening hours, optional edge
// times that suppress staffing warnings, and a staffing threshold.
type Group struct {
	ID           string
	Name         string
	ColorToken   string
	OpeningHours map[Weekday][]TimeRange
	DaysEnabled  map[Weekday]bool
	EdgeTimes    map[Weekday][]TimeRange
	// MinStaffRequired below one falls back to the analyzer default.
	MinStaffRequired        int
	StaffingWarningDisabled bool
}

// EmployeeType distinguishes regular staff from the employment forms whose
// presence days are chosen explicitly.
type EmployeeType string

const (
	EmployeeNormal     EmployeeType = "normal"
	EmployeeAuxiliary  EmployeeType = "auxiliary"
	EmployeeApprentice EmployeeType = "apprentice"
	EmployeeFSJ        EmployeeType = "fsj"
	EmployeeIntern     EmployeeType = "intern"
)

// Valid reports whether t is a known employee type.
func (t EmployeeType) Valid() bool {
	switch t {
	case EmployeeNormal, EmployeeAuxiliary, EmployeeApprentice, EmployeeFSJ, EmployeeIntern:
		return true
	default:
		return false
	}
}

// TracksPresenceDays reports whether the weekly summary compares recorded
// work on the chosen presence days against the contracted target.
func (t EmployeeType) TracksPresenceDays() bool {
	switch t {
	case EmployeeApprentice, EmployeeFSJ, EmployeeIntern:
		return true
	default:
		return false
	}
}

// Employee is one roster member. GroupID is empty for employees without a
// default group.
type Employee struct {
	ID                      string
	Name                    string
	ContractedHoursPerWeek  float64
	GroupID                 string
	OverriddenDisposalHours *float64
	Type                    EmployeeType
	PresenceDays            map[Weekday]bool
}

// Segment is one contiguous booked span within a shift. OverriddenGroupID,
// when set, reassigns just this segment to another group for staffing
// coverage.
type Segment struct {
	Category          CategoryRef
	SubCategoryID     string
	Start             int
	End               int
	OverriddenGroupID string
}

// Shift collects the segments of one employee on one weekday. A shift whose
// last segment is removed is deleted.
type Shift struct {
	ID         string
	EmployeeID string
	Day        Weekday
	Segments   []Segment
}

// DisposalRule maps a contracted-hours figure to its weekly disposal-time
// target.
type DisposalRule struct {
	ContractedHours float64
	DisposalHours   float64
}

// WeekPlan is the template week: its shifts plus the displayed part of the
// day. Segments may lie outside the display window; they are clipped
// visually, never deleted.
type WeekPlan struct {
	Title        string
	DisplayStart int
	DisplayEnd   int
	Shifts       []Shift
}

// Snapshot is one immutable roster state. Services never mutate a snapshot
// they receive; every mutation clones first and returns the successor state.
type Snapshot struct {
	Categories      []Category
	SubCategories   []SubCategory
	Groups          []Group
	OrderedGroupIDs []string
	Employees       []Employee
	DisposalRules   []DisposalRule
	Plan            WeekPlan
}
