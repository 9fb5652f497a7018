package fixtures

import (
	"github.com/shopspring/decimal"

	"github.com/staffdir/employee-backend-go/internal/domain/employee"
)

func strPtr(s string) *string                     { return &s }
func decPtr(d decimal.Decimal) *decimal.Decimal   { return &d }
func dec(s string) *decimal.Decimal               { return decPtr(decimal.RequireFromString(s)) }

// SampleEmployees returns a deterministic set of employees for seeding a
// development or demo database. Codes are fixed so repeated seeding collides
// instead of multiplying records.
func SampleEmployees() []employee.CreateEmployeeRequest {
	return []employee.CreateEmployeeRequest{
		{
			FirstName:  "Alice",
			LastName:   "Johnson",
			Email:      "alice.johnson@company.com",
			Phone:      strPtr("+1-555-010-0001"),
			BirthDate:  strPtr("1988-03-12"),
			EmployeeID: strPtr("EMP001"),
			Department: string(employee.DepartmentEngineering),
			Position:   "Senior Software Engineer",
			HireDate:   strPtr("2019-02-11"),
			Salary:     dec("95000.00"),
			ManagerID:  nil,
			Skills:     []string{"Python", "Go", "PostgreSQL", "Docker"},
			Metadata:   map[string]any{"remote_eligible": true},
		},
		{
			FirstName:  "Bob",
			LastName:   "Smith",
			Email:      "bob.smith@company.com",
			Phone:      strPtr("+1-555-010-0002"),
			BirthDate:  strPtr("1992-07-30"),
			EmployeeID: strPtr("EMP002"),
			Department: string(employee.DepartmentMarketing),
			Position:   "Marketing Manager",
			HireDate:   strPtr("2020-06-01"),
			Salary:     dec("75000.00"),
			Skills:     []string{"SEO", "Content Strategy", "Analytics"},
			Metadata:   map[string]any{"performance_rating": "excellent"},
		},
		{
			FirstName:  "Carol",
			LastName:   "Davis",
			Email:      "carol.davis@company.com",
			BirthDate:  strPtr("1995-11-02"),
			EmployeeID: strPtr("EMP003"),
			Department: string(employee.DepartmentSales),
			Position:   "Account Executive",
			HireDate:   strPtr("2021-09-15"),
			Salary:     dec("60000.00"),
			Skills:     []string{"Negotiation", "CRM"},
		},
		{
			FirstName:  "David",
			LastName:   "Nguyen",
			Email:      "david.nguyen@company.com",
			Phone:      strPtr("(021) 555-0199"),
			EmployeeID: strPtr("EMP004"),
			Department: string(employee.DepartmentHR),
			Position:   "HR Generalist",
			HireDate:   strPtr("2022-01-10"),
			Salary:     dec("55000.00"),
			Status:     strPtr(string(employee.StatusOnLeave)),
			Skills:     []string{"Recruiting", "Onboarding"},
		},
		{
			FirstName:  "Erin",
			LastName:   "Kowalski",
			Email:      "erin.kowalski@company.com",
			BirthDate:  strPtr("1983-05-21"),
			EmployeeID: strPtr("EMP005"),
			Department: string(employee.DepartmentFinance),
			Position:   "Financial Analyst",
			HireDate:   strPtr("2018-04-02"),
			Salary:     dec("82000.00"),
			Skills:     []string{"Excel", "Forecasting", "SQL"},
			Metadata:   map[string]any{"cpa": true},
		},
		{
			FirstName:  "Frank",
			LastName:   "Okafor",
			Email:      "frank.okafor@company.com",
			EmployeeID: strPtr("EMP006"),
			Department: string(employee.DepartmentOperations),
			Position:   "Operations Coordinator",
			HireDate:   strPtr("2023-03-20"),
			Salary:     dec("48000.00"),
			Skills:     []string{"Logistics", "Scheduling"},
		},
	}
}
