package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

// Employee is the canonical validated record. Create and update requests are
// transformed into this one shape; there are no separate create/update/response
// variants of the entity itself.
type Employee struct {
	ID         string
	EmployeeID string // display code, e.g. EMP001
	FirstName  string
	LastName   string
	Email      string
	Phone      *string
	BirthDate  *time.Time
	Department Department
	Position   string
	HireDate   time.Time
	Salary     decimal.Decimal
	Status     EmploymentStatus
	ManagerID  *string
	Skills     []string
	Metadata   map[string]any
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Department string

const (
	DepartmentEngineering Department = "engineering"
	DepartmentMarketing   Department = "marketing"
	DepartmentSales       Department = "sales"
	DepartmentHR          Department = "hr"
	DepartmentFinance     Department = "finance"
	DepartmentOperations  Department = "operations"
)

func Departments() []string {
	return []string{
		string(DepartmentEngineering),
		string(DepartmentMarketing),
		string(DepartmentSales),
		string(DepartmentHR),
		string(DepartmentFinance),
		string(DepartmentOperations),
	}
}

type EmploymentStatus string

const (
	StatusActive     EmploymentStatus = "active"
	StatusInactive   EmploymentStatus = "inactive"
	StatusTerminated EmploymentStatus = "terminated"
	StatusOnLeave    EmploymentStatus = "on_leave"
)

func Statuses() []string {
	return []string{
		string(StatusActive),
		string(StatusInactive),
		string(StatusTerminated),
		string(StatusOnLeave),
	}
}

// FullName is derived, never stored.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

// YearsOfServiceAt returns whole days since the hire date divided by 365.25,
// rounded to one decimal.
func (e Employee) YearsOfServiceAt(now time.Time) float64 {
	days := dateOnly(now).Sub(dateOnly(e.HireDate)).Hours() / 24
	years := days / 365.25
	return float64(int(years*10+0.5)) / 10
}

// AgeAt returns the employee's age in full years, or nil when the birth date
// is unknown.
func (e Employee) AgeAt(now time.Time) *int {
	if e.BirthDate == nil {
		return nil
	}
	age := ageBetween(*e.BirthDate, now)
	return &age
}

func ageBetween(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() ||
		(at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
