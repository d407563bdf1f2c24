package application_test

import (
	"context"
	"errors"
	"testing"

	"github.com/example/shift-planner/internal/application"
	"github.com/example/shift-planner/internal/testfixtures"
)

func TestEmployeeService_CreateEmployee(t *testing.T) {
	t.Parallel()

	group := testfixtures.NewGroupFixture()
	snap := testfixtures.NewSnapshotFixture(nil, []application.Group{group}, nil, nil)
	svc := application.NewEmployeeService(testfixtures.NewIDGenerator("employee").NextFunc())

	next, employee, err := svc.CreateEmployee(context.Background(), snap, application.EmployeeInput{
		Name:                   "Anna Fischer",
		ContractedHoursPerWeek: 39,
		GroupID:                group.ID,
		Type:                   application.EmployeeNormal,
	})
	if err != nil {
		t.Fatalf("CreateEmployee: %v", err)
	}
	if employee.ID == "" {
		t.Fatal("expected generated employee id")
	}
	if len(next.Employees) != 1 {
		t.Fatalf("Employees = %d, want 1", len(next.Employees))
	}
	if len(snap.Employees) != 0 {
		t.Fatal("input snapshot was mutated")
	}
	for _, day := range application.Workdays {
		if !employee.PresenceDays[day] {
			t.Errorf("presence day %v not defaulted", day)
		}
	}
}

func TestEmployeeService_CreateEmployee_Validation(t *testing.T) {
	t.Parallel()

	svc := application.NewEmployeeService(nil)

	cases := []struct {
		name  string
		input application.EmployeeInput
		field string
	}{
		{
			name:  "empty name",
			input: application.EmployeeInput{ContractedHoursPerWeek: 39, Type: application.EmployeeNormal},
			field: "name",
		},
		{
			name:  "non-positive hours",
			input: application.EmployeeInput{Name: "X", Type: application.EmployeeNormal},
			field: "contractedHours",
		},
		{
			name:  "unknown type",
			input: application.EmployeeInput{Name: "X", ContractedHoursPerWeek: 39, Type: "contractor"},
			field: "type",
		},
		{
			name:  "unknown group",
			input: application.EmployeeInput{Name: "X", ContractedHoursPerWeek: 39, Type: application.EmployeeNormal, GroupID: "missing"},
			field: "group",
		},
		{
			name:  "apprentice without presence days",
			input: application.EmployeeInput{Name: "X", ContractedHoursPerWeek: 39, Type: application.EmployeeApprentice},
			field: "presenceDays",
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, _, err := svc.CreateEmployee(context.Background(), application.Snapshot{}, tc.input)
			var vErr *application.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tc.field]; !ok {
				t.Fatalf("FieldErrors = %v, want %q", vErr.FieldErrors, tc.field)
			}
		})
	}
}

func TestEmployeeService_UpdateEmployee_NotFound(t *testing.T) {
	t.Parallel()

	svc := application.NewEmployeeService(nil)
	_, _, err := svc.UpdateEmployee(context.Background(), application.Snapshot{}, "missing", application.EmployeeInput{
		Name: "X", ContractedHoursPerWeek: 20, Type: application.EmployeeNormal,
	})
	if !errors.Is(err, application.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEmployeeService_DeleteEmployee_BlockedByShifts(t *testing.T) {
	t.Parallel()

	category := testfixtures.NewCategoryFixture()
	employee := testfixtures.NewEmployeeFixture()
	shift := testfixtures.NewShiftFixture(employee.ID, application.Monday,
		testfixtures.CareSegment(category.ID, 480, 720))
	snap := testfixtures.NewSnapshotFixture(
		[]application.Category{category}, nil,
		[]application.Employee{employee}, []application.Shift{shift})

	svc := application.NewEmployeeService(nil)
	_, err := svc.DeleteEmployee(context.Background(), snap, employee.ID)
	if !errors.Is(err, application.ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
}

func TestEmployeeService_DeleteEmployee(t *testing.T) {
	t.Parallel()

	employee := testfixtures.NewEmployeeFixture()
	snap := testfixtures.NewSnapshotFixture(nil, nil, []application.Employee{employee}, nil)

	svc := application.NewEmployeeService(nil)
	next, err := svc.DeleteEmployee(context.Background(), snap, employee.ID)
	if err != nil {
		t.Fatalf("DeleteEmployee: %v", err)
	}
	if len(next.Employees) != 0 {
		t.Fatalf("Employees = %d, want 0", len(next.Employees))
	}
	if len(snap.Employees) != 1 {
		t.Fatal("input snapshot was mutated")
	}
}
