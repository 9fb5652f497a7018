package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByEmployeeCode(ctx context.Context, code string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, updated Employee) (Employee, error)
	// Delete removes the employee and clears manager_id on direct reports in
	// the same transaction.
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListByManager(ctx context.Context, managerID string) ([]Employee, error)
	ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error)
	ExistsByEmployeeCode(ctx context.Context, code string, excludeID *string) (bool, error)
	ListEmployeeCodes(ctx context.Context) ([]string, error)
	DepartmentCounts(ctx context.Context) (map[string]int64, error)
	SalaryStats(ctx context.Context) (SalaryStats, error)
	Truncate(ctx context.Context) error
}
