package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/shift-planner/internal/application"
	"github.com/example/shift-planner/internal/testfixtures"
)

func TestGroupService_CreateGroup_AppendsToOrder(t *testing.T) {
	t.Parallel()

	existing := testfixtures.NewGroupFixture()
	snap := testfixtures.NewSnapshotFixture(nil, []application.Group{existing}, nil, nil)
	svc := application.NewGroupService(testfixtures.NewIDGenerator("group").NextFunc())

	next, group, err := svc.CreateGroup(context.Background(), snap, application.GroupInput{
		Name: "Sonnenkinder",
		OpeningHours: map[application.Weekday][]application.TimeRange{
			application.Monday: {{Start: 420, End: 990}},
		},
		DaysEnabled: map[application.Weekday]bool{application.Monday: true},
	})
	if err != nil {
		t.Fatalf("CreateGroup: %v", err)
	}
	if len(next.OrderedGroupIDs) != 2 || next.OrderedGroupIDs[1] != group.ID {
		t.Fatalf("OrderedGroupIDs = %v, want new group appended", next.OrderedGroupIDs)
	}
	if len(snap.Groups) != 1 {
		t.Fatal("input snapshot was mutated")
	}
}

func TestGroupService_CreateGroup_RejectsBadRanges(t *testing.T) {
	t.Parallel()

	svc := application.NewGroupService(nil)
	_, _, err := svc.CreateGroup(context.Background(), application.Snapshot{}, application.GroupInput{
		Name: "X",
		OpeningHours: map[application.Weekday][]application.TimeRange{
			application.Monday: {{Start: 600, End: 480}},
		},
	})
	var vErr *application.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := vErr.FieldErrors["openingHours"]; !ok {
		t.Fatalf("FieldErrors = %v, want openingHours", vErr.FieldErrors)
	}
}

func TestGroupService_DeleteGroup_ReferentialIntegrity(t *testing.T) {
	t.Parallel()

	t.Run("blocked by employee assignment", func(t *testing.T) {
		t.Parallel()
		group := testfixtures.NewGroupFixture()
		employee := testfixtures.NewEmployeeFixture(testfixtures.InGroup(group.ID))
		snap := testfixtures.NewSnapshotFixture(nil, []application.Group{group}, []application.Employee{employee}, nil)

		svc := application.NewGroupService(nil)
		_, err := svc.DeleteGroup(context.Background(), snap, group.ID)
		if !errors.Is(err, application.ErrInUse) {
			t.Fatalf("expected ErrInUse, got %v", err)
		}
	})

	t.Run("blocked by segment override", func(t *testing.T) {
		t.Parallel()
		category := testfixtures.NewCategoryFixture()
		group := testfixtures.NewGroupFixture()
		employee := testfixtures.NewEmployeeFixture()
		segment := testfixtures.CareSegment(category.ID, 480, 600)
		segment.OverriddenGroupID = group.ID
		shift := testfixtures.NewShiftFixture(employee.ID, application.Tuesday, segment)
		snap := testfixtures.NewSnapshotFixture(
			[]application.Category{category}, []application.Group{group},
			[]application.Employee{employee}, []application.Shift{shift})

		svc := application.NewGroupService(nil)
		_, err := svc.DeleteGroup(context.Background(), snap, group.ID)
		if !errors.Is(err, application.ErrInUse) {
			t.Fatalf("expected ErrInUse, got %v", err)
		}
	})

	t.Run("unreferenced group deletes and leaves the order", func(t *testing.T) {
		t.Parallel()
		group := testfixtures.NewGroupFixture()
		other := testfixtures.NewGroupFixture()
		snap := testfixtures.NewSnapshotFixture(nil, []application.Group{group, other}, nil, nil)

		svc := application.NewGroupService(nil)
		next, err := svc.DeleteGroup(context.Background(), snap, group.ID)
		if err != nil {
			t.Fatalf("DeleteGroup: %v", err)
		}
		if len(next.Groups) != 1 || next.Groups[0].ID != other.ID {
			t.Fatalf("Groups = %v, want only %s", next.Groups, other.ID)
		}
		if len(next.OrderedGroupIDs) != 1 || next.OrderedGroupIDs[0] != other.ID {
			t.Fatalf("OrderedGroupIDs = %v, want only %s", next.OrderedGroupIDs, other.ID)
		}
	})
}

func TestGroupService_ReorderGroups(t *testing.T) {
	t.Parallel()

	first := testfixtures.NewGroupFixture()
	second := testfixtures.NewGroupFixture()
	snap := testfixtures.NewSnapshotFixture(nil, []application.Group{first, second}, nil, nil)
	svc := application.NewGroupService(nil)

	next, err := svc.ReorderGroups(context.Background(), snap, []string{second.ID, first.ID})
	if err != nil {
		t.Fatalf("ReorderGroups: %v", err)
	}
	if next.OrderedGroupIDs[0] != second.ID || next.OrderedGroupIDs[1] != first.ID {
		t.Fatalf("OrderedGroupIDs = %v", next.OrderedGroupIDs)
	}

	if _, err := svc.ReorderGroups(context.Background(), snap, []string{first.ID}); err == nil {
		t.Fatal("expected validation error for incomplete order")
	}
	if _, err := svc.ReorderGroups(context.Background(), snap, []string{first.ID, first.ID}); err == nil {
		t.Fatal("expected validation error for duplicate ids")
	}
}
