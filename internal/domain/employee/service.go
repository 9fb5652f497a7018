package employee

import "context"

type EmployeeService interface {
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	CreateEmployeesBulk(ctx context.Context, reqs []CreateEmployeeRequest) (BulkCreateResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	GetEmployeeByCode(ctx context.Context, code string) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, id string) error
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
	GetDirectReports(ctx context.Context, managerID string) ([]EmployeeResponse, error)
	GetDepartmentStats(ctx context.Context) (DepartmentStats, error)
	GetSalaryStats(ctx context.Context) (SalaryStats, error)
	SeedSampleData(ctx context.Context) (int, error)
	ResetDatabase(ctx context.Context) error
}
