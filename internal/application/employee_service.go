package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
)

// EmployeeInput captures caller provided employee fields.
type EmployeeInput struct {
	Name                    string
	ContractedHoursPerWeek  float64
	GroupID                 string
	OverriddenDisposalHours *float64
	Type                    EmployeeType
	// PresenceDays is required for apprentice, FSJ, and intern employees;
	// for the other types it defaults to all workdays.
	PresenceDays []Weekday
}

// EmployeeService applies employee mutations to roster snapshots.
type EmployeeService struct {
	idGenerator func() string
	logger      *slog.Logger
}

// NewEmployeeService constructs an employee service. A nil idGenerator falls
// back to random UUIDs.
func NewEmployeeService(idGenerator func() string) *EmployeeService {
	return NewEmployeeServiceWithLogger(idGenerator, nil)
}

// NewEmployeeServiceWithLogger constructs an employee service with a
// specified logger.
func NewEmployeeServiceWithLogger(idGenerator func() string, logger *slog.Logger) *EmployeeService {
	if idGenerator == nil {
		idGenerator = uuid.NewString
	}
	return &EmployeeService{idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *EmployeeService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "EmployeeService", operation, attrs...)
}

// CreateEmployee validates the input and returns the successor snapshot
// containing the new employee.
func (s *EmployeeService) CreateEmployee(ctx context.Context, snap Snapshot, input EmployeeInput) (next Snapshot, employee Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateEmployee")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create employee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("employee_id", employee.ID).InfoContext(ctx, "employee created")
	}()

	vErr := validateEmployeeInput(&snap, input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	employee = Employee{
		ID:                      s.idGenerator(),
		Name:                    strings.TrimSpace(input.Name),
		ContractedHoursPerWeek:  input.ContractedHoursPerWeek,
		GroupID:                 input.GroupID,
		OverriddenDisposalHours: cloneFloat(input.OverriddenDisposalHours),
		Type:                    input.Type,
		PresenceDays:            presenceDaySet(input),
	}

	next = snap.Clone()
	next.Employees = append(next.Employees, employee)
	return
}

// UpdateEmployee validates the input and replaces the employee's fields.
func (s *EmployeeService) UpdateEmployee(ctx context.Context, snap Snapshot, employeeID string, input EmployeeInput) (next Snapshot, employee Employee, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}

	logger := s.loggerWith(ctx, "UpdateEmployee", "employee_id", employeeID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update employee", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if _, ok := snap.EmployeeByID(employeeID); !ok {
		err = ErrNotFound
		return
	}

	vErr := validateEmployeeInput(&snap, input)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	next = snap.Clone()
	for i := range next.Employees {
		if next.Employees[i].ID != employeeID {
			continue
		}
		next.Employees[i] = Employee{
			ID:                      employeeID,
			Name:                    strings.TrimSpace(input.Name),
			ContractedHoursPerWeek:  input.ContractedHoursPerWeek,
			GroupID:                 input.GroupID,
			OverriddenDisposalHours: cloneFloat(input.OverriddenDisposalHours),
			Type:                    input.Type,
			PresenceDays:            presenceDaySet(input),
		}
		employee = next.Employees[i]
		break
	}
	return
}

// DeleteEmployee removes an employee. The delete is blocked while any shift
// still belongs to the employee.
func (s *EmployeeService) DeleteEmployee(ctx context.Context, snap Snapshot, employeeID string) (next Snapshot, err error) {
	if s == nil {
		err = fmt.Errorf("EmployeeService is nil")
		return
	}

	logger := s.loggerWith(ctx, "DeleteEmployee", "employee_id", employeeID)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete employee", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "employee deleted")
	}()

	if _, ok := snap.EmployeeByID(employeeID); !ok {
		err = ErrNotFound
		return
	}
	for _, sh := range snap.Plan.Shifts {
		if sh.EmployeeID == employeeID && len(sh.Segments) > 0 {
			err = fmt.Errorf("%w: employee has shifts", ErrInUse)
			return
		}
	}

	next = snap.Clone()
	for i := range next.Employees {
		if next.Employees[i].ID == employeeID {
			next.Employees = append(next.Employees[:i], next.Employees[i+1:]...)
			break
		}
	}
	return
}

func validateEmployeeInput(snap *Snapshot, input EmployeeInput) *ValidationError {
	vErr := &ValidationError{}

	if strings.TrimSpace(input.Name) == "" {
		vErr.add("name", "must not be empty")
	}
	if input.ContractedHoursPerWeek <= 0 {
		vErr.add("contractedHours", "must be positive")
	}
	if !input.Type.Valid() {
		vErr.add("type", "unknown employee type")
	}
	if input.GroupID != "" {
		if _, ok := snap.GroupByID(input.GroupID); !ok {
			vErr.add("group", "unknown group")
		}
	}
	if input.OverriddenDisposalHours != nil && *input.OverriddenDisposalHours < 0 {
		vErr.add("disposalHours", "must not be negative")
	}
	for _, day := range input.PresenceDays {
		if !day.Valid() {
			vErr.add("presenceDays", "unknown weekday")
			break
		}
	}
	if input.Type.TracksPresenceDays() && len(input.PresenceDays) == 0 {
		vErr.add("presenceDays", "required for this employee type")
	}

	return vErr
}

// presenceDaySet materialises the presence-day set, defaulting to all
// workdays for types without explicit presence days.
func presenceDaySet(input EmployeeInput) map[Weekday]bool {
	days := make(map[Weekday]bool, len(Workdays))
	if len(input.PresenceDays) == 0 && !input.Type.TracksPresenceDays() {
		for _, day := range Workdays {
			days[day] = true
		}
		return days
	}
	for _, day := range input.PresenceDays {
		if day.Valid() {
			days[day] = true
		}
	}
	return days
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
