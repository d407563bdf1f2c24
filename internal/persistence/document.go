// Package persistence defines the JSON document exchanged with storage and
// the codec between it and the in-memory roster snapshot. All times are
// persisted as "HH:MM" strings and weekdays as lowercase names; the minute
// integers used everywhere else are a derived, non-persisted form.
package persistence

// Document is the persisted roster shape.
type Document struct {
	Groups            []GroupRecord        `json:"groups"`
	Employees         []EmployeeRecord     `json:"employees"`
	Categories        []CategoryRecord     `json:"categories"`
	SubCategories     []SubCategoryRecord  `json:"subCategories"`
	DisposalTimeRules []DisposalRuleRecord `json:"disposalTimeRules"`
	MasterSchedule    MasterScheduleRecord `json:"masterSchedule"`
	OrderedGroupIDs   []string             `json:"orderedGroupIds"`
}

// CategoryRecord is the persisted form of a category. The built-in pause
// category is never part of this list.
type CategoryRecord struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	ColorToken             string `json:"colorToken,omitempty"`
	IsDisposalTimeCategory bool   `json:"isDisposalTimeCategory"`
	IsCareCategory         bool   `json:"isCareCategory"`
}

// SubCategoryRecord is the persisted form of a sub-category.
// ParentCategoryID carries the fixed pause id when the parent is the
// built-in pause category.
type SubCategoryRecord struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	ParentCategoryID string `json:"parentCategoryId"`
	ColorToken       string `json:"colorToken,omitempty"`
}

// TimeRangeRecord is a persisted clock range.
type TimeRangeRecord struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// GroupRecord is the persisted form of a group. The per-day maps are keyed
// by lowercase weekday name.
type GroupRecord struct {
	ID                      string                       `json:"id"`
	Name                    string                       `json:"name"`
	ColorToken              string                       `json:"colorToken,omitempty"`
	OpeningHours            map[string][]TimeRangeRecord `json:"openingHours"`
	DaysEnabled             map[string]bool              `json:"daysEnabled"`
	EdgeTimes               map[string][]TimeRangeRecord `json:"edgeTimes,omitempty"`
	MinStaffRequired        int                          `json:"minStaffRequired,omitempty"`
	StaffingWarningDisabled bool                         `json:"staffingWarningDisabled"`
}

// EmployeeRecord is the persisted form of an employee.
type EmployeeRecord struct {
	ID                      string   `json:"id"`
	Name                    string   `json:"name"`
	ContractedHoursPerWeek  float64  `json:"contractedHoursPerWeek"`
	GroupID                 string   `json:"groupId,omitempty"`
	OverriddenDisposalHours *float64 `json:"overriddenDisposalHours,omitempty"`
	Type                    string   `json:"type"`
	PresenceDays            []string `json:"presenceDays"`
}

// DisposalRuleRecord maps contracted hours to a weekly disposal-time target.
type DisposalRuleRecord struct {
	ContractedHours float64 `json:"contractedHours"`
	DisposalHours   float64 `json:"disposalHours"`
}

// SegmentRecord is the persisted form of a segment. CategoryID carries the
// fixed pause id for break segments.
type SegmentRecord struct {
	CategoryID        string `json:"categoryId"`
	SubCategoryID     string `json:"subCategoryId,omitempty"`
	StartTime         string `json:"startTime"`
	EndTime           string `json:"endTime"`
	OverriddenGroupID string `json:"overriddenGroupId,omitempty"`
}

// ShiftRecord is the persisted form of a shift.
type ShiftRecord struct {
	ID         string          `json:"id"`
	EmployeeID string          `json:"employeeId"`
	DayOfWeek  string          `json:"dayOfWeek"`
	Segments   []SegmentRecord `json:"segments"`
}

// MasterScheduleRecord is the persisted week plan.
type MasterScheduleRecord struct {
	Shifts           []ShiftRecord `json:"shifts"`
	DisplayStartTime string        `json:"displayStartTime"`
	DisplayEndTime   string        `json:"displayEndTime"`
	Title            string        `json:"title"`
}
