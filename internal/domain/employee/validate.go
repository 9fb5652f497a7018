package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/staffdir/employee-backend-go/internal/pkg/validator"
)

var (
	salaryMin = decimal.Zero
	salaryMax = decimal.NewFromInt(1_000_000)
)

const (
	minAge = 16
	maxAge = 100
)

// ValidateCreate transforms raw create fields into a normalized Employee or a
// list of every violation found. It performs no I/O; uniqueness of email and
// employee_id is the caller's job, as is assigning the employee code when the
// request omits one. ID and timestamps are left for the persistence layer.
func ValidateCreate(req CreateEmployeeRequest, now time.Time) (Employee, error) {
	var errs validator.ValidationErrors

	e := Employee{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Department: Department(req.Department),
		Position:   req.Position,
		Status:     StatusActive,
		Skills:     NormalizeSkills(req.Skills),
		Metadata:   req.Metadata,
	}

	if req.EmployeeID != nil && *req.EmployeeID != "" {
		e.EmployeeID = *req.EmployeeID
	}
	if req.Phone != nil && *req.Phone != "" {
		e.Phone = req.Phone
	}
	if req.BirthDate != nil && *req.BirthDate != "" {
		if d, ok := validator.IsValidDate(*req.BirthDate); ok {
			e.BirthDate = &d
		} else {
			errs = errs.Add("birth_date", validator.CodePattern, "birth date must be in YYYY-MM-DD format")
		}
	}
	if req.HireDate != nil && *req.HireDate != "" {
		if d, ok := validator.IsValidDate(*req.HireDate); ok {
			e.HireDate = d
		} else {
			errs = errs.Add("hire_date", validator.CodePattern, "hire date must be in YYYY-MM-DD format")
		}
	} else {
		e.HireDate = dateOnly(now)
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	} else {
		errs = errs.Add("salary", validator.CodeRequired, "salary is required")
	}
	if req.Status != nil && *req.Status != "" {
		e.Status = EmploymentStatus(*req.Status)
	}
	if req.ManagerID != nil && *req.ManagerID != "" {
		e.ManagerID = req.ManagerID
	}

	errs = append(errs, checkRecord(e, now)...)

	if len(errs) > 0 {
		return Employee{}, errs
	}
	return e, nil
}

// ValidateUpdate merges a sparse patch onto the existing record and
// re-validates the merged result. Only supplied fields change; the returned
// value is always a full Employee, never a patch. employee_id and hire_date
// are immutable after creation.
func ValidateUpdate(existing Employee, req UpdateEmployeeRequest, now time.Time) (Employee, error) {
	var errs validator.ValidationErrors

	e := existing

	if req.EmployeeID != nil && *req.EmployeeID != existing.EmployeeID {
		errs = errs.Add("employee_id", validator.CodeImmutable, "employee ID cannot be changed")
	}
	if req.HireDate != nil {
		if d, ok := validator.IsValidDate(*req.HireDate); !ok {
			errs = errs.Add("hire_date", validator.CodePattern, "hire date must be in YYYY-MM-DD format")
		} else if !d.Equal(dateOnly(existing.HireDate)) {
			errs = errs.Add("hire_date", validator.CodeImmutable, "hire date cannot be changed")
		}
	}

	if req.FirstName != nil {
		e.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		e.LastName = *req.LastName
	}
	if req.Email != nil {
		e.Email = *req.Email
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			e.Phone = nil
		} else {
			e.Phone = req.Phone
		}
	}
	if req.BirthDate != nil {
		if *req.BirthDate == "" {
			e.BirthDate = nil
		} else if d, ok := validator.IsValidDate(*req.BirthDate); ok {
			e.BirthDate = &d
		} else {
			errs = errs.Add("birth_date", validator.CodePattern, "birth date must be in YYYY-MM-DD format")
		}
	}
	if req.Department != nil {
		e.Department = Department(*req.Department)
	}
	if req.Position != nil {
		e.Position = *req.Position
	}
	if req.Salary != nil {
		e.Salary = *req.Salary
	}
	if req.Status != nil {
		e.Status = EmploymentStatus(*req.Status)
	}
	if req.ManagerID != nil {
		if *req.ManagerID == "" {
			e.ManagerID = nil
		} else {
			e.ManagerID = req.ManagerID
		}
	}
	if req.Skills != nil {
		e.Skills = NormalizeSkills(*req.Skills)
	}
	if req.Metadata != nil {
		e.Metadata = *req.Metadata
	}

	errs = append(errs, checkRecord(e, now)...)

	if len(errs) > 0 {
		return Employee{}, errs
	}
	return e, nil
}

// checkRecord applies every per-field and cross-field rule to a typed record.
// Date parsing happens before this point; a zero hire date means the raw value
// was unparseable and has already been reported.
func checkRecord(e Employee, now time.Time) validator.ValidationErrors {
	var errs validator.ValidationErrors
	today := dateOnly(now)

	errs = checkName(errs, "first_name", e.FirstName)
	errs = checkName(errs, "last_name", e.LastName)

	if validator.IsEmpty(e.Email) {
		errs = errs.Add("email", validator.CodeRequired, "email is required")
	} else if !validator.IsValidEmail(e.Email) {
		errs = errs.Add("email", validator.CodePattern, "invalid email address")
	}

	if e.Phone != nil && !validator.IsValidPhoneNumber(*e.Phone) {
		errs = errs.Add("phone", validator.CodePattern, "phone must be 10-20 characters of digits, spaces, dashes or parentheses")
	}

	if e.BirthDate != nil {
		if !e.BirthDate.Before(today) {
			errs = errs.Add("birth_date", validator.CodeOutOfRange, "birth date cannot be in the future")
		} else {
			age := ageBetween(*e.BirthDate, today)
			if age < minAge {
				errs = errs.Add("birth_date", validator.CodeOutOfRange, "employee must be at least 16 years old")
			} else if age > maxAge {
				errs = errs.Add("birth_date", validator.CodeOutOfRange, "employee age cannot exceed 100 years")
			}
		}
	}

	if e.EmployeeID != "" && !validator.IsValidEmployeeCode(e.EmployeeID) {
		errs = errs.Add("employee_id", validator.CodePattern, "employee ID must be 3-10 uppercase letters or digits")
	}

	if e.Department == "" {
		errs = errs.Add("department", validator.CodeRequired, "department is required")
	} else if !validator.IsInSlice(string(e.Department), Departments()) {
		errs = errs.Add("department", validator.CodeInvalidEnum, "unknown department")
	}

	if validator.IsEmpty(e.Position) {
		errs = errs.Add("position", validator.CodeRequired, "position is required")
	} else if n := len([]rune(e.Position)); n < 2 || n > 100 {
		errs = errs.Add("position", lengthCode(n, 2), "position must be 2-100 characters")
	}

	if !e.HireDate.IsZero() && dateOnly(e.HireDate).After(today) {
		errs = errs.Add("hire_date", validator.CodeOutOfRange, "hire date cannot be in the future")
	}

	if e.Salary.LessThan(salaryMin) || e.Salary.GreaterThan(salaryMax) {
		errs = errs.Add("salary", validator.CodeOutOfRange, "salary must be between 0 and 1,000,000")
	} else if e.Salary.Exponent() < -2 {
		errs = errs.Add("salary", validator.CodePattern, "salary cannot have more than 2 decimal places")
	}

	if !validator.IsInSlice(string(e.Status), Statuses()) {
		errs = errs.Add("status", validator.CodeInvalidEnum, "unknown employment status")
	}

	// Age at hire: an employee may be old enough today yet still have been
	// too young on the hire date.
	if e.BirthDate != nil && !e.HireDate.IsZero() {
		if ageBetween(*e.BirthDate, dateOnly(e.HireDate)) < minAge {
			errs = errs.Add("birth_date", validator.CodeCrossField, "employee was younger than 16 on the hire date")
		}
	}

	// Self-management is only checkable once the identity is assigned, so it
	// bites on update rather than create.
	if e.ID != "" && e.ManagerID != nil && *e.ManagerID == e.ID {
		errs = errs.Add("manager_id", validator.CodeCrossField, "employee cannot be their own manager")
	}

	return errs
}

func checkName(errs validator.ValidationErrors, field, value string) validator.ValidationErrors {
	if validator.IsEmpty(value) {
		return errs.Add(field, validator.CodeRequired, field+" is required")
	}
	if n := len([]rune(value)); n < 2 || n > 50 {
		return errs.Add(field, lengthCode(n, 2), field+" must be 2-50 characters")
	}
	return errs
}

func lengthCode(n, min int) string {
	if n < min {
		return validator.CodeTooShort
	}
	return validator.CodeTooLong
}

// NormalizeSkills trims entries, drops empty ones and removes duplicates under
// case-insensitive comparison, keeping the first-seen casing and order.
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(skills))
	normalized := make([]string, 0, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		if skill == "" {
			continue
		}
		key := strings.ToLower(skill)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		normalized = append(normalized, skill)
	}
	if len(normalized) == 0 {
		return nil
	}
	return normalized
}
