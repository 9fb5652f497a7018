package employee

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdir/employee-backend-go/internal/pkg/validator"
)

// CreateEmployeeRequest carries raw field values for a full create. Optional
// fields are pointers so "not sent" can be told apart from the zero value.
type CreateEmployeeRequest struct {
	FirstName  string           `json:"first_name"`
	LastName   string           `json:"last_name"`
	Email      string           `json:"email"`
	Phone      *string          `json:"phone,omitempty"`
	BirthDate  *string          `json:"birth_date,omitempty"`
	EmployeeID *string          `json:"employee_id,omitempty"` // auto-generated when omitted
	Department string           `json:"department"`
	Position   string           `json:"position"`
	HireDate   *string          `json:"hire_date,omitempty"` // defaults to today
	Salary     *decimal.Decimal `json:"salary"`
	Status     *string          `json:"status,omitempty"` // defaults to active
	ManagerID  *string          `json:"manager_id,omitempty"`
	Skills     []string         `json:"skills,omitempty"`
	Metadata   map[string]any   `json:"metadata,omitempty"`
}

// UpdateEmployeeRequest is a sparse patch: nil means "leave unchanged", an
// empty string on an optional field (phone, birth_date, manager_id) means
// "clear it". employee_id and hire_date are listed only so that attempts to
// change them can be rejected as immutable.
type UpdateEmployeeRequest struct {
	ID         string            `json:"-"`
	FirstName  *string           `json:"first_name,omitempty"`
	LastName   *string           `json:"last_name,omitempty"`
	Email      *string           `json:"email,omitempty"`
	Phone      *string           `json:"phone,omitempty"`
	BirthDate  *string           `json:"birth_date,omitempty"`
	EmployeeID *string           `json:"employee_id,omitempty"`
	Department *string           `json:"department,omitempty"`
	Position   *string           `json:"position,omitempty"`
	HireDate   *string           `json:"hire_date,omitempty"`
	Salary     *decimal.Decimal  `json:"salary,omitempty"`
	Status     *string           `json:"status,omitempty"`
	ManagerID  *string           `json:"manager_id,omitempty"`
	Skills     *[]string         `json:"skills,omitempty"`
	Metadata   *map[string]any   `json:"metadata,omitempty"`
}

// EmployeeResponse is the wire shape: stored fields plus the derived ones.
type EmployeeResponse struct {
	ID             string           `json:"id"`
	EmployeeID     string           `json:"employee_id"`
	FirstName      string           `json:"first_name"`
	LastName       string           `json:"last_name"`
	FullName       string           `json:"full_name"`
	Email          string           `json:"email"`
	Phone          *string          `json:"phone,omitempty"`
	BirthDate      *string          `json:"birth_date,omitempty"`
	Age            *int             `json:"age,omitempty"`
	Department     string           `json:"department"`
	Position       string           `json:"position"`
	HireDate       string           `json:"hire_date"`
	YearsOfService float64          `json:"years_of_service"`
	Salary         decimal.Decimal  `json:"salary"`
	Status         string           `json:"status"`
	ManagerID      *string          `json:"manager_id,omitempty"`
	Skills         []string         `json:"skills"`
	Metadata       map[string]any   `json:"metadata"`
	CreatedAt      string           `json:"created_at"`
	UpdatedAt      string           `json:"updated_at"`
}

// NewEmployeeResponse maps an employee and its derived fields as of now.
func NewEmployeeResponse(e Employee, now time.Time) EmployeeResponse {
	var birthDate *string
	if e.BirthDate != nil {
		s := e.BirthDate.Format("2006-01-02")
		birthDate = &s
	}

	skills := e.Skills
	if skills == nil {
		skills = []string{}
	}
	metadata := e.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}

	return EmployeeResponse{
		ID:             e.ID,
		EmployeeID:     e.EmployeeID,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		FullName:       e.FullName(),
		Email:          e.Email,
		Phone:          e.Phone,
		BirthDate:      birthDate,
		Age:            e.AgeAt(now),
		Department:     string(e.Department),
		Position:       e.Position,
		HireDate:       e.HireDate.Format("2006-01-02"),
		YearsOfService: e.YearsOfServiceAt(now),
		Salary:         e.Salary,
		Status:         string(e.Status),
		ManagerID:      e.ManagerID,
		Skills:         skills,
		Metadata:       metadata,
		CreatedAt:      e.CreatedAt.Format("2006-01-02 15:04:05"),
		UpdatedAt:      e.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

type EmployeeFilter struct {
	Page       int
	Limit      int
	Department string
	Status     string
	Search     string
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = 20
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	if f.Department != "" && !validator.IsInSlice(f.Department, Departments()) {
		errs = errs.Add("department", validator.CodeInvalidEnum, "unknown department")
	}
	if f.Status != "" && !validator.IsInSlice(f.Status, Statuses()) {
		errs = errs.Add("status", validator.CodeInvalidEnum, "unknown employment status")
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	TotalPages int                `json:"total_pages"`
	Employees  []EmployeeResponse `json:"employees"`
}

// BulkCreateResult reports the outcome of one entry of a bulk create,
// positionally matched to the request slice.
type BulkCreateResult struct {
	Index    int               `json:"index"`
	Employee *EmployeeResponse `json:"employee,omitempty"`
	Error    string            `json:"error,omitempty"`
	Details  map[string]string `json:"details,omitempty"`
}

type BulkCreateResponse struct {
	Created int                `json:"created"`
	Failed  int                `json:"failed"`
	Results []BulkCreateResult `json:"results"`
}

type DepartmentStats struct {
	Counts map[string]int64 `json:"counts"`
}

type SalaryStats struct {
	Average float64 `json:"average"`
	Minimum float64 `json:"minimum"`
	Maximum float64 `json:"maximum"`
	Count   int64   `json:"count"`
}
