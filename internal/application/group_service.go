package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/example/shift-planner/internal/timeutil"
)

// GroupInput captures caller provided group fields.
type GroupInput struct {
	Name                    string
	ColorToken              string
	OpeningHours            map[Weekday][]TimeRange
	DaysEnabled             map[Weekday]bool
	EdgeTimes               map[Weekday][]TimeRange
	MinStaffRequired        int
	StaffingWarningDisabled bool
}

// GroupService applies group mutations to roster snapshots and maintains the
// display order of groups.
type GroupService struct {
	idGenerator func() string
	logger      *slog.Logger
}

// NewGroupService constructs a group service. A nil idGenerator falls back
// to random UUIDs.
func NewGroupService(idGenerator func() string) *GroupService {
	return NewGroupServiceWithLogger(idGenerator, nil)
}

// NewGroupServiceWithLogger constructs a group service with a specified
// logger.
func NewGroupServiceWithLogger(idGenerator func() string, logger *slog.Logger) *GroupService {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	return &GroupService{idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *GroupService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "GroupService", operation, attrs...)
}

// CreateGroup validates the input, appends the group, and records it at the
// end of the display order.
func (s *GroupService) CreateGroup(ctx context.Context, snap Snapshot, input GroupInput) (next Snapshot, group Group, err error) {
	if s == nil {
		err = fmt.Errorf("GroupService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateGroup")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create group", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("group_id", group.ID).InfoContext(ctx, "group created")
	}()

	vErr := validateGroupInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	group = groupFromInput(s.idGenerator(), input)
	next = snap.Clone()
	next.Groups = append(next.Groups, group)
	next.OrderedGroupIDs = append(next.OrderedGroupIDs, group.ID)
	return
}

// UpdateGroup validates the input and replaces the group's fields.
func (s *GroupService) UpdateGroup(ctx context.Context, snap Snapshot, groupID string, input GroupInput) (next Snapshot, group Group, err error) {
	if s == nil {
		err = fmt.Errorf("GroupService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateGroup", "group_id", groupID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update group", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if _, ok := snap.GroupByID(groupID); !ok {
		err = ErrNotFound
		return
	}

	vErr := validateGroupInput(input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	next = snap.Clone()
	for i := range next.Groups {
		if next.Groups[i].ID != groupID {
			continue
		}
		next.Groups[i] = groupFromInput(groupID, input)
		group = next.Groups[i]
		break
	}
	return
}

// DeleteGroup removes a group and its display-order entry. The delete is
// blocked while an employee or a segment override still references the
// group.
func (s *GroupService) DeleteGroup(ctx context.Context, snap Snapshot, groupID string) (next Snapshot, err error) {
	if s == nil {
		err = fmt.Errorf("GroupService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteGroup", "group_id", groupID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete group", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "group deleted")
	}()

	if _, ok := snap.GroupByID(groupID); !ok {
		err = ErrNotFound
		return
	}
	for _, e := range snap.Employees {
		if e.GroupID == groupID {
			err = fmt.Errorf("%w: group assigned to employee", ErrInUse)
			return
		}
	}
	for _, sh := range snap.Plan.Shifts {
		for _, seg := range sh.Segments {
			if seg.OverriddenGroupID == groupID {
				err = fmt.Errorf("%w: group referenced by a segment override", ErrInUse)
				return
			}
		}
	}

	next = snap.Clone()
	for i := range next.Groups {
		if next.Groups[i].ID == groupID {
			next.Groups = append(next.Groups[:i], next.Groups[i+1:]...)
			break
		}
	}
	for i, id := range next.OrderedGroupIDs {
		if id == groupID {
			next.OrderedGroupIDs = append(next.OrderedGroupIDs[:i], next.OrderedGroupIDs[i+1:]...)
			break
		}
	}
	return
}

// ReorderGroups replaces the display order. The new order must be a
// permutation of the existing group ids.
func (s *GroupService) ReorderGroups(ctx context.Context, snap Snapshot, orderedIDs []string) (next Snapshot, err error) {
	if s == nil {
		err = fmt.Errorf("GroupService is nil")
		return
	}

	logger := s.loggerWith(ctx, "ReorderGroups")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to reorder groups", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if len(orderedIDs) != len(snap.Groups) {
		vErr := &ValidationError{}
		vErr.add("order", "must list every group exactly once")
		err = vErr
		return
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if _, ok := snap.GroupByID(id); !ok || seen[id] {
			vErr := &ValidationError{}
			vErr.add("order", "must list every group exactly once")
			err = vErr
			return
		}
		seen[id] = true
	}

	next = snap.Clone()
	next.OrderedGroupIDs = append([]string(nil), orderedIDs...)
	return
}

func groupFromInput(id string, input GroupInput) Group {
	return Group{
		ID:                      id,
		Name:                    strings.TrimSpace(input.Name),
		ColorToken:              input.ColorToken,
		OpeningHours:            cloneRangeMap(input.OpeningHours),
		DaysEnabled:             cloneDayMap(input.DaysEnabled),
		EdgeTimes:               cloneRangeMap(input.EdgeTimes),
		MinStaffRequired:        input.MinStaffRequired,
		StaffingWarningDisabled: input.StaffingWarningDisabled,
	}
}

func validateGroupInput(input GroupInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "must not be empty")
	}
	if input.MinStaffRequired < 0 {
		vErr.add("minStaffRequired", "must not be negative")
	}
	validateRangeMap(vErr, "openingHours", input.OpeningHours)
	validateRangeMap(vErr, "edgeTimes", input.EdgeTimes)
	for day := range input.DaysEnabled {
		if !day.Valid() {
			vErr.add("daysEnabled", "unknown weekday")
			break
		}
	}

	return vErr
}

func validateRangeMap(vErr *ValidationError, field string, m map[Weekday][]TimeRange) {
	for day, ranges := range m {
		if !day.Valid() {
			vErr.add(field, "unknown weekday")
			return
		}
		for _, r := range ranges {
			if r.Start >= r.End || r.Start < 0 || r.End > timeutil.MinutesPerDay {
				vErr.add(field, "ranges must lie within the day and end after they start")
				return
			}
		}
	}
}

func cloneDayMap(m map[Weekday]bool) map[Weekday]bool {
	if m == nil {
		return nil
	}
	clone := make(map[Weekday]bool, len(m))
	for day, v := range m {
		clone[day] = v
	}
	return clone
}
