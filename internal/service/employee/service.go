package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/staffdir/employee-backend-go/internal/domain/employee"
	"github.com/staffdir/employee-backend-go/internal/fixtures"
	"github.com/staffdir/employee-backend-go/internal/pkg/validator"
)

// managerChainLimit bounds the cycle walk; org charts deeper than this are a
// data problem, not a use case.
const managerChainLimit = 100

type EmployeeServiceImpl struct {
	employeeRepo employee.EmployeeRepository
}

func NewEmployeeService(employeeRepo employee.EmployeeRepository) employee.EmployeeService {
	return &EmployeeServiceImpl{employeeRepo: employeeRepo}
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	now := time.Now()

	validated, err := employee.ValidateCreate(req, now)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	// Uniqueness needs a fresh read against the store; the validator cannot
	// see other records.
	exists, err := s.employeeRepo.ExistsByEmail(ctx, validated.Email, nil)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return employee.EmployeeResponse{}, employee.ErrEmailExists
	}

	if validated.EmployeeID != "" {
		exists, err = s.employeeRepo.ExistsByEmployeeCode(ctx, validated.EmployeeID, nil)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check employee ID existence: %w", err)
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrEmployeeCodeExists
		}
	} else {
		codes, err := s.employeeRepo.ListEmployeeCodes(ctx)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to list employee codes: %w", err)
		}
		validated.EmployeeID = employee.NextEmployeeCode(codes)
	}

	if validated.ManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *validated.ManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check manager: %w", err)
		}
	}

	created, err := s.employeeRepo.Create(ctx, validated)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to create employee: %w", err)
	}

	slog.Info("employee created", "id", created.ID, "employee_id", created.EmployeeID)
	return employee.NewEmployeeResponse(created, now), nil
}

// CreateEmployeesBulk implements employee.EmployeeService. Entries are
// processed independently; one failure does not abort the rest.
func (s *EmployeeServiceImpl) CreateEmployeesBulk(ctx context.Context, reqs []employee.CreateEmployeeRequest) (employee.BulkCreateResponse, error) {
	resp := employee.BulkCreateResponse{Results: make([]employee.BulkCreateResult, 0, len(reqs))}

	for i, req := range reqs {
		created, err := s.CreateEmployee(ctx, req)
		if err != nil {
			result := employee.BulkCreateResult{Index: i, Error: err.Error()}
			var validationErrs validator.ValidationErrors
			if errors.As(err, &validationErrs) {
				result.Details = validationErrs.ToMap()
			}
			resp.Results = append(resp.Results, result)
			resp.Failed++
			continue
		}
		resp.Results = append(resp.Results, employee.BulkCreateResult{Index: i, Employee: &created})
		resp.Created++
	}

	return resp, nil
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	return employee.NewEmployeeResponse(emp, time.Now()), nil
}

// GetEmployeeByCode implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployeeByCode(ctx context.Context, code string) (employee.EmployeeResponse, error) {
	emp, err := s.employeeRepo.GetByEmployeeCode(ctx, code)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee by code: %w", err)
	}

	return employee.NewEmployeeResponse(emp, time.Now()), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	now := time.Now()

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.EmployeeResponse{}, employee.ErrEmployeeNotFound
		}
		return employee.EmployeeResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	merged, err := employee.ValidateUpdate(existing, req, now)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if merged.Email != existing.Email {
		exists, err := s.employeeRepo.ExistsByEmail(ctx, merged.Email, &existing.ID)
		if err != nil {
			return employee.EmployeeResponse{}, fmt.Errorf("failed to check email existence: %w", err)
		}
		if exists {
			return employee.EmployeeResponse{}, employee.ErrEmailExists
		}
	}

	if merged.ManagerID != nil {
		if err := s.checkManagerChain(ctx, merged.ID, *merged.ManagerID); err != nil {
			return employee.EmployeeResponse{}, err
		}
	}

	updated, err := s.employeeRepo.Update(ctx, merged)
	if err != nil {
		return employee.EmployeeResponse{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return employee.NewEmployeeResponse(updated, now), nil
}

// checkManagerChain verifies the manager exists and that following manager
// references from it never leads back to the employee being updated. The
// relational schema alone does not prevent cycles.
func (s *EmployeeServiceImpl) checkManagerChain(ctx context.Context, employeeID, managerID string) error {
	current := managerID
	for depth := 0; depth < managerChainLimit; depth++ {
		if current == employeeID {
			return employee.ErrManagerCycle
		}
		mgr, err := s.employeeRepo.GetByID(ctx, current)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				if current == managerID {
					return employee.ErrManagerNotFound
				}
				// Dangling reference further up the chain; not this
				// request's problem.
				return nil
			}
			return fmt.Errorf("failed to walk manager chain: %w", err)
		}
		if mgr.ManagerID == nil {
			return nil
		}
		current = *mgr.ManagerID
	}
	return employee.ErrManagerCycle
}

// DeleteEmployee implements employee.EmployeeService. Subordinates keep their
// records; their manager reference is cleared by the repository in the same
// transaction.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, id string) error {
	err := s.employeeRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return employee.ErrEmployeeNotFound
		}
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	slog.Info("employee deleted", "id", id)
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	now := time.Now()
	responses := make([]employee.EmployeeResponse, 0, len(employees))
	for _, emp := range employees {
		responses = append(responses, employee.NewEmployeeResponse(emp, now))
	}

	totalPages := int(math.Ceil(float64(total) / float64(filter.Limit)))

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
		Employees:  responses,
	}, nil
}

// GetDirectReports implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetDirectReports(ctx context.Context, managerID string) ([]employee.EmployeeResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, managerID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}

	reports, err := s.employeeRepo.ListByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list direct reports: %w", err)
	}

	now := time.Now()
	responses := make([]employee.EmployeeResponse, 0, len(reports))
	for _, emp := range reports {
		responses = append(responses, employee.NewEmployeeResponse(emp, now))
	}

	return responses, nil
}

// GetDepartmentStats implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetDepartmentStats(ctx context.Context) (employee.DepartmentStats, error) {
	counts, err := s.employeeRepo.DepartmentCounts(ctx)
	if err != nil {
		return employee.DepartmentStats{}, fmt.Errorf("failed to get department stats: %w", err)
	}

	return employee.DepartmentStats{Counts: counts}, nil
}

// GetSalaryStats implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetSalaryStats(ctx context.Context) (employee.SalaryStats, error) {
	stats, err := s.employeeRepo.SalaryStats(ctx)
	if err != nil {
		return employee.SalaryStats{}, fmt.Errorf("failed to get salary stats: %w", err)
	}

	return stats, nil
}

// SeedSampleData implements employee.EmployeeService. Samples that collide
// with existing records are skipped, so seeding is safe to repeat.
func (s *EmployeeServiceImpl) SeedSampleData(ctx context.Context) (int, error) {
	created := 0
	for _, req := range fixtures.SampleEmployees() {
		_, err := s.CreateEmployee(ctx, req)
		if err != nil {
			if errors.Is(err, employee.ErrEmailExists) || errors.Is(err, employee.ErrEmployeeCodeExists) {
				continue
			}
			return created, fmt.Errorf("failed to seed sample employee: %w", err)
		}
		created++
	}

	slog.Info("sample data seeded", "created", created)
	return created, nil
}

// ResetDatabase implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ResetDatabase(ctx context.Context) error {
	if err := s.employeeRepo.Truncate(ctx); err != nil {
		return fmt.Errorf("failed to reset employee table: %w", err)
	}

	slog.Warn("employee table reset")
	return nil
}
