package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/example/shift-planner/internal/interval"
	"github.com/example/shift-planner/internal/timeutil"
)

// PlaceSegmentParams describes a click-to-add placement.
type PlaceSegmentParams struct {
	EmployeeID    string
	Day           Weekday
	ClickedMinute int
	Category      CategoryRef
	SubCategoryID string
}

// EditSegmentParams describes one interactive drag gesture on a segment,
// addressed by its shift and position.
type EditSegmentParams struct {
	ShiftID      string
	SegmentIndex int
	Mode         interval.EditMode
	DeltaMinutes int
}

// UpdateSegmentParams re-tags a segment with a category, sub-category, or a
// group override without touching its times.
type UpdateSegmentParams struct {
	ShiftID           string
	SegmentIndex      int
	Category          CategoryRef
	SubCategoryID     string
	OverriddenGroupID string
}

// PlanService applies shift and segment mutations to roster snapshots. The
// interval engine guarantees that segments of the same employee and day
// never overlap.
type PlanService struct {
	idGenerator func() string
	logger      *slog.Logger
}

// NewPlanService constructs a plan service. A nil idGenerator falls back to
// random UUIDs.
func NewPlanService(idGenerator func() string) *PlanService {
	return NewPlanServiceWithLogger(idGenerator, nil)
}

// NewPlanServiceWithLogger constructs a plan service with a specified
// logger.
func NewPlanServiceWithLogger(idGenerator func() string, logger *slog.Logger) *PlanService {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	return &PlanService{idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *PlanService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PlanService", operation, attrs...)
}

// PlaceSegment inserts a new segment at the clicked minute with the default
// duration. Unlike interactive edits, a colliding candidate is rejected with
// ErrOverlap and the snapshot stays unchanged.
func (s *PlanService) PlaceSegment(ctx context.Context, snap Snapshot, params PlaceSegmentParams) (next Snapshot, shift Shift, err error) {
	if s == nil {
		err = fmt.Errorf("PlanService is nil")
		return
	}

	logger := s.loggerWith(ctx, "PlaceSegment", "employee_id", params.EmployeeID, "day", params.Day.String())
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to place segment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("shift_id", shift.ID).InfoContext(ctx, "segment placed")
	}()

	if _, ok := snap.EmployeeByID(params.EmployeeID); !ok {
		err = ErrNotFound
		return
	}

	vErr := validateSegmentTagging(&snap, params.Category, params.SubCategoryID)
	if !params.Day.Valid() {
		vErr.add("day", "unknown weekday")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	siblings := segmentIntervals(snap.SegmentsFor(params.EmployeeID, params.Day))
	candidate, placeErr := interval.Place(params.ClickedMinute, siblings)
	if placeErr != nil {
		if errors.Is(placeErr, interval.ErrOverlap) {
			err = fmt.Errorf("%w at %s", ErrOverlap, timeutil.FormatClock(params.ClickedMinute))
			return
		}
		err = placeErr
		return
	}

	segment := Segment{
		Category:      params.Category,
		SubCategoryID: params.SubCategoryID,
		Start:         candidate.Start,
		End:           candidate.End,
	}

	next = snap.Clone()
	for i := range next.Plan.Shifts {
		sh := &next.Plan.Shifts[i]
		if sh.EmployeeID == params.EmployeeID && sh.Day == params.Day {
			sh.Segments = append(sh.Segments, segment)
			shift = *sh
			return
		}
	}
	shift = Shift{
		ID:         s.idGenerator(),
		EmployeeID: params.EmployeeID,
		Day:        params.Day,
		Segments:   []Segment{segment},
	}
	next.Plan.Shifts = append(next.Plan.Shifts, shift)
	return
}

// ResolveSegmentEdit runs one drag gesture through the interval engine and
// applies the resolved times to the addressed segment. At most this one
// segment differs between snap and the returned snapshot.
func (s *PlanService) ResolveSegmentEdit(ctx context.Context, snap Snapshot, params EditSegmentParams) (next Snapshot, resolved interval.Interval, err error) {
	if s == nil {
		err = fmt.Errorf("PlanService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ResolveSegmentEdit", "shift_id", params.ShiftID, "mode", params.Mode.String())
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to resolve segment edit", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	shift, ok := snap.ShiftByID(params.ShiftID)
	if !ok {
		err = ErrNotFound
		return
	}
	if params.SegmentIndex < 0 || params.SegmentIndex >= len(shift.Segments) {
		err = fmt.Errorf("%w: segment index %d", ErrNotFound, params.SegmentIndex)
		return
	}

	edited := shift.Segments[params.SegmentIndex]
	siblings := siblingIntervals(&snap, shift, params.SegmentIndex)
	resolved = interval.ResolveEdit(interval.Interval{Start: edited.Start, End: edited.End}, params.Mode, params.DeltaMinutes, siblings)

	next = snap.Clone()
	for i := range next.Plan.Shifts {
		if next.Plan.Shifts[i].ID != params.ShiftID {
			continue
		}
		seg := &next.Plan.Shifts[i].Segments[params.SegmentIndex]
		seg.Start = resolved.Start
		seg.End = resolved.End
		break
	}
	return
}

// UpdateSegment re-tags the addressed segment.
func (s *PlanService) UpdateSegment(ctx context.Context, snap Snapshot, params UpdateSegmentParams) (next Snapshot, err error) {
	if s == nil {
		err = fmt.Errorf("PlanService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateSegment", "shift_id", params.ShiftID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update segment", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	shift, ok := snap.ShiftByID(params.ShiftID)
	if !ok {
		err = ErrNotFound
		return
	}
	if params.SegmentIndex < 0 || params.SegmentIndex >= len(shift.Segments) {
		err = fmt.Errorf("%w: segment index %d", ErrNotFound, params.SegmentIndex)
		return
	}

	vErr := validateSegmentTagging(&snap, params.Category, params.SubCategoryID)
	if params.OverriddenGroupID != "" {
		if _, exists := snap.GroupByID(params.OverriddenGroupID); !exists {
			vErr.add("group", "unknown group")
		}
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	next = snap.Clone()
	for i := range next.Plan.Shifts {
		if next.Plan.Shifts[i].ID != params.ShiftID {
			continue
		}
		seg := &next.Plan.Shifts[i].Segments[params.SegmentIndex]
		seg.Category = params.Category
		seg.SubCategoryID = params.SubCategoryID
		seg.OverriddenGroupID = params.OverriddenGroupID
		break
	}
	return
}

// DeleteSegment removes the addressed segment; a shift left without
// segments is deleted with it.
func (s *PlanService) DeleteSegment(ctx context.Context, snap Snapshot, shiftID string, segmentIndex int) (next Snapshot, err error) {
	if s == nil {
		err = fmt.Errorf("PlanService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteSegment", "shift_id", shiftID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete segment", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "segment deleted")
	}()

	shift, ok := snap.ShiftByID(shiftID)
	if !ok {
		err = ErrNotFound
		return
	}
	if segmentIndex < 0 || segmentIndex >= len(shift.Segments) {
		err = fmt.Errorf("%w: segment index %d", ErrNotFound, segmentIndex)
		return
	}

	next = snap.Clone()
	for i := range next.Plan.Shifts {
		sh := &next.Plan.Shifts[i]
		if sh.ID != shiftID {
			continue
		}
		sh.Segments = append(sh.Segments[:segmentIndex], sh.Segments[segmentIndex+1:]...)
		if len(sh.Segments) == 0 {
			next.Plan.Shifts = append(next.Plan.Shifts[:i], next.Plan.Shifts[i+1:]...)
		}
		break
	}
	return
}

// UpdatePlanInfo changes the plan title and display window. Segments outside
// the window are unaffected.
func (s *PlanService) UpdatePlanInfo(ctx context.Context, snap Snapshot, title string, displayStart, displayEnd int) (next Snapshot, err error) {
	if s == nil {
		err = fmt.Errorf("PlanService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdatePlanInfo")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update plan info", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	vErr := &ValidationError{}
	if displayStart < 0 || displayEnd > timeutil.MinutesPerDay || displayStart >= displayEnd {
		vErr.add("displayWindow", "must lie within the day and end after it starts")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	next = snap.Clone()
	next.Plan.Title = strings.TrimSpace(title)
	next.Plan.DisplayStart = displayStart
	next.Plan.DisplayEnd = displayEnd
	return
}

// validateSegmentTagging checks a segment's category reference and optional
// sub-category against the snapshot.
func validateSegmentTagging(snap *Snapshot, category CategoryRef, subCategoryID string) *ValidationError {
	vErr := &ValidationError{}

	if category.IsZero() {
		vErr.add("category", "must reference a category")
	} else if id, ok := category.UserID(); ok {
		if _, exists := snap.CategoryByID(id); !exists {
			vErr.add("category", "unknown category")
		}
	}
	if subCategoryID != "" {
		if _, exists := snap.SubCategoryByID(subCategoryID); !exists {
			vErr.add("subCategory", "unknown sub-category")
		}
	}

	return vErr
}

// siblingIntervals collects the intervals of every other segment for the
// same employee and day, across shifts.
func siblingIntervals(snap *Snapshot, shift Shift, editedIndex int) []interval.Interval {
	var siblings []interval.Interval
	for _, sh := range snap.Plan.Shifts {
		if sh.EmployeeID != shift.EmployeeID || sh.Day != shift.Day {
			continue
		}
		for i, seg := range sh.Segments {
			if sh.ID == shift.ID && i == editedIndex {
				continue
			}
			siblings = append(siblings, interval.Interval{Start: seg.Start, End: seg.End})
		}
	}
	return siblings
}

func segmentIntervals(segments []Segment) []interval.Interval {
	intervals := make([]interval.Interval, 0, len(segments))
	for _, seg := range segments {
		intervals = append(intervals, interval.Interval{Start: seg.Start, End: seg.End})
	}
	return intervals
}
