package employee

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdir/employee-backend-go/internal/pkg/validator"
)

// Fixed clock for every test: 2024-06-01.
var testNow = time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)

func strPtr(s string) *string                   { return &s }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func validCreateRequest() CreateEmployeeRequest {
	return CreateEmployeeRequest{
		FirstName:  "John",
		LastName:   "Doe",
		Email:      "john@co.com",
		EmployeeID: strPtr("EMP001"),
		Department: "engineering",
		Position:   "Engineer",
		HireDate:   strPtr("2020-01-01"),
		Salary:     decPtr(decimal.RequireFromString("85000.00")),
	}
}

func requireViolation(t *testing.T, err error, field, code string) {
	t.Helper()
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs), "expected ValidationErrors, got %v", err)
	for _, v := range errs {
		if v.Field == field && v.Code == code {
			return
		}
	}
	t.Fatalf("no violation with field %q code %q in %v", field, code, errs)
}

func TestValidateCreate_Success(t *testing.T) {
	emp, err := ValidateCreate(validCreateRequest(), testNow)
	require.NoError(t, err)

	assert.Equal(t, "John Doe", emp.FullName())
	assert.Equal(t, "EMP001", emp.EmployeeID)
	assert.Equal(t, DepartmentEngineering, emp.Department)
	assert.Equal(t, StatusActive, emp.Status)
	assert.True(t, emp.Salary.Equal(decimal.RequireFromString("85000.00")))

	// 2020-01-01 to 2024-06-01 is 1613 days: 1613/365.25 rounds to 4.4.
	assert.InDelta(t, 4.4, emp.YearsOfServiceAt(testNow), 0.001)
	assert.GreaterOrEqual(t, emp.YearsOfServiceAt(testNow), 0.0)
	assert.Nil(t, emp.AgeAt(testNow))
}

func TestValidateCreate_Defaults(t *testing.T) {
	req := validCreateRequest()
	req.HireDate = nil
	req.Status = nil
	req.EmployeeID = nil

	emp, err := ValidateCreate(req, testNow)
	require.NoError(t, err)

	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), emp.HireDate)
	assert.Equal(t, StatusActive, emp.Status)
	assert.Empty(t, emp.EmployeeID, "code assignment belongs to the caller")
	assert.Equal(t, 0.0, emp.YearsOfServiceAt(testNow))
}

func TestValidateCreate_RequiredFields(t *testing.T) {
	_, err := ValidateCreate(CreateEmployeeRequest{}, testNow)

	requireViolation(t, err, "first_name", validator.CodeRequired)
	requireViolation(t, err, "last_name", validator.CodeRequired)
	requireViolation(t, err, "email", validator.CodeRequired)
	requireViolation(t, err, "department", validator.CodeRequired)
	requireViolation(t, err, "position", validator.CodeRequired)
	requireViolation(t, err, "salary", validator.CodeRequired)
}

func TestValidateCreate_FieldConstraints(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateEmployeeRequest)
		field  string
		code   string
	}{
		{"first name too short", func(r *CreateEmployeeRequest) { r.FirstName = "J" }, "first_name", validator.CodeTooShort},
		{"bad email", func(r *CreateEmployeeRequest) { r.Email = "not-an-email" }, "email", validator.CodePattern},
		{"bad phone", func(r *CreateEmployeeRequest) { r.Phone = strPtr("555-1234") }, "phone", validator.CodePattern},
		{"bad employee code", func(r *CreateEmployeeRequest) { r.EmployeeID = strPtr("emp001") }, "employee_id", validator.CodePattern},
		{"unknown department", func(r *CreateEmployeeRequest) { r.Department = "legal" }, "department", validator.CodeInvalidEnum},
		{"position too short", func(r *CreateEmployeeRequest) { r.Position = "X" }, "position", validator.CodeTooShort},
		{"unknown status", func(r *CreateEmployeeRequest) { r.Status = strPtr("fired") }, "status", validator.CodeInvalidEnum},
		{"future hire date", func(r *CreateEmployeeRequest) { r.HireDate = strPtr("2030-01-01") }, "hire_date", validator.CodeOutOfRange},
		{"unparseable hire date", func(r *CreateEmployeeRequest) { r.HireDate = strPtr("01/01/2020") }, "hire_date", validator.CodePattern},
		{"unparseable birth date", func(r *CreateEmployeeRequest) { r.BirthDate = strPtr("yesterday") }, "birth_date", validator.CodePattern},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := validCreateRequest()
			c.mutate(&req)
			_, err := ValidateCreate(req, testNow)
			requireViolation(t, err, c.field, c.code)
		})
	}
}

func TestValidateCreate_LastNameLongNotRequired(t *testing.T) {
	req := validCreateRequest()
	long := make([]rune, 51)
	for i := range long {
		long[i] = 'a'
	}
	req.LastName = string(long)

	_, err := ValidateCreate(req, testNow)
	requireViolation(t, err, "last_name", validator.CodeTooLong)
}

func TestValidateCreate_SalaryBounds(t *testing.T) {
	req := validCreateRequest()
	req.Salary = decPtr(decimal.NewFromInt(-100))
	_, err := ValidateCreate(req, testNow)
	requireViolation(t, err, "salary", validator.CodeOutOfRange)

	req.Salary = decPtr(decimal.NewFromInt(2_000_000))
	_, err = ValidateCreate(req, testNow)
	requireViolation(t, err, "salary", validator.CodeOutOfRange)

	req.Salary = decPtr(decimal.RequireFromString("85000.123"))
	_, err = ValidateCreate(req, testNow)
	requireViolation(t, err, "salary", validator.CodePattern)

	// Both boundaries are inclusive.
	req.Salary = decPtr(decimal.Zero)
	_, err = ValidateCreate(req, testNow)
	require.NoError(t, err)

	req.Salary = decPtr(decimal.NewFromInt(1_000_000))
	_, err = ValidateCreate(req, testNow)
	require.NoError(t, err)
}

func TestValidateCreate_AgeBounds(t *testing.T) {
	req := validCreateRequest()
	req.HireDate = strPtr("2024-05-01")

	// Born 2010: 14 years old at testNow.
	req.BirthDate = strPtr("2010-03-01")
	_, err := ValidateCreate(req, testNow)
	requireViolation(t, err, "birth_date", validator.CodeOutOfRange)

	// Older than 100.
	req.BirthDate = strPtr("1920-01-01")
	_, err = ValidateCreate(req, testNow)
	requireViolation(t, err, "birth_date", validator.CodeOutOfRange)

	// Birth date in the future.
	req.BirthDate = strPtr("2030-01-01")
	_, err = ValidateCreate(req, testNow)
	requireViolation(t, err, "birth_date", validator.CodeOutOfRange)

	// Exactly 16 is fine.
	req.BirthDate = strPtr("2008-04-01")
	_, err = ValidateCreate(req, testNow)
	require.NoError(t, err)
}

func TestValidateCreate_AgeAtHire(t *testing.T) {
	// 18 years old at testNow, but only 15 when hired in 2021.
	req := validCreateRequest()
	req.BirthDate = strPtr("2006-01-15")
	req.HireDate = strPtr("2021-06-01")

	_, err := ValidateCreate(req, testNow)
	requireViolation(t, err, "birth_date", validator.CodeCrossField)

	// One year later they were 16: allowed.
	req.HireDate = strPtr("2022-06-01")
	_, err = ValidateCreate(req, testNow)
	require.NoError(t, err)
}

func TestValidateCreate_AllViolationsReported(t *testing.T) {
	req := validCreateRequest()
	req.FirstName = "J"
	req.Email = "broken"
	req.Salary = decPtr(decimal.NewFromInt(-1))

	_, err := ValidateCreate(req, testNow)

	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	assert.GreaterOrEqual(t, len(errs), 3, "every violation is reported, not just the first")
}

func TestValidateCreate_SkillNormalization(t *testing.T) {
	req := validCreateRequest()
	req.Skills = []string{"Python", "python ", "SQL", "python", "  ", ""}

	emp, err := ValidateCreate(req, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"Python", "SQL"}, emp.Skills)
}

func existingEmployee() Employee {
	birth := time.Date(1990, 3, 15, 0, 0, 0, 0, time.UTC)
	phone := "+1-555-123-4567"
	return Employee{
		ID:         "0190aaaa-0000-7000-8000-000000000007",
		EmployeeID: "EMP007",
		FirstName:  "Jane",
		LastName:   "Roe",
		Email:      "jane@co.com",
		Phone:      &phone,
		BirthDate:  &birth,
		Department: DepartmentFinance,
		Position:   "Analyst",
		HireDate:   time.Date(2019, 7, 1, 0, 0, 0, 0, time.UTC),
		Salary:     decimal.RequireFromString("72000.00"),
		Status:     StatusActive,
		Skills:     []string{"Excel", "SQL"},
		Metadata:   map[string]any{"badge": 42},
		CreatedAt:  time.Date(2019, 7, 1, 9, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2023, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestValidateUpdate_EmptyPatchIsIdentity(t *testing.T) {
	existing := existingEmployee()

	merged, err := ValidateUpdate(existing, UpdateEmployeeRequest{ID: existing.ID}, testNow)
	require.NoError(t, err)
	assert.Equal(t, existing, merged)
}

func TestValidateUpdate_PartialMerge(t *testing.T) {
	existing := existingEmployee()

	merged, err := ValidateUpdate(existing, UpdateEmployeeRequest{
		ID:     existing.ID,
		Status: strPtr("on_leave"),
	}, testNow)
	require.NoError(t, err)

	assert.Equal(t, StatusOnLeave, merged.Status)
	// Everything else carried over unchanged.
	assert.Equal(t, existing.Salary, merged.Salary)
	assert.Equal(t, existing.Email, merged.Email)
	assert.Equal(t, existing.HireDate, merged.HireDate)
}

func TestValidateUpdate_MergedRecordStillChecked(t *testing.T) {
	existing := existingEmployee()

	_, err := ValidateUpdate(existing, UpdateEmployeeRequest{
		ID:     existing.ID,
		Salary: decPtr(decimal.NewFromInt(9_000_000)),
	}, testNow)
	requireViolation(t, err, "salary", validator.CodeOutOfRange)
}

func TestValidateUpdate_ImmutableEmployeeID(t *testing.T) {
	existing := existingEmployee()

	_, err := ValidateUpdate(existing, UpdateEmployeeRequest{
		ID:         existing.ID,
		EmployeeID: strPtr("EMP999"),
		Position:   strPtr("Senior Analyst"),
	}, testNow)
	requireViolation(t, err, "employee_id", validator.CodeImmutable)
}

func TestValidateUpdate_ImmutableHireDate(t *testing.T) {
	existing := existingEmployee()

	_, err := ValidateUpdate(existing, UpdateEmployeeRequest{
		ID:       existing.ID,
		HireDate: strPtr("2020-01-01"),
	}, testNow)
	requireViolation(t, err, "hire_date", validator.CodeImmutable)

	// Re-sending the current value is not a change.
	merged, err := ValidateUpdate(existing, UpdateEmployeeRequest{
		ID:       existing.ID,
		HireDate: strPtr("2019-07-01"),
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, existing.HireDate, merged.HireDate)

	// An unparseable value is a format problem, not an immutability one.
	_, err = ValidateUpdate(existing, UpdateEmployeeRequest{
		ID:       existing.ID,
		HireDate: strPtr("01/07/2019"),
	}, testNow)
	requireViolation(t, err, "hire_date", validator.CodePattern)
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	for _, v := range errs {
		assert.NotEqual(t, validator.CodeImmutable, v.Code)
	}
}

func TestValidateUpdate_SelfManager(t *testing.T) {
	existing := existingEmployee()

	_, err := ValidateUpdate(existing, UpdateEmployeeRequest{
		ID:        existing.ID,
		ManagerID: strPtr(existing.ID),
	}, testNow)
	requireViolation(t, err, "manager_id", validator.CodeCrossField)
}

func TestValidateUpdate_ClearOptionalFields(t *testing.T) {
	existing := existingEmployee()

	merged, err := ValidateUpdate(existing, UpdateEmployeeRequest{
		ID:        existing.ID,
		Phone:     strPtr(""),
		BirthDate: strPtr(""),
	}, testNow)
	require.NoError(t, err)

	assert.Nil(t, merged.Phone)
	assert.Nil(t, merged.BirthDate)
}

func TestValidateUpdate_SkillsReplacedAndNormalized(t *testing.T) {
	existing := existingEmployee()

	merged, err := ValidateUpdate(existing, UpdateEmployeeRequest{
		ID:     existing.ID,
		Skills: &[]string{"Go", "go", " Terraform "},
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, []string{"Go", "Terraform"}, merged.Skills)
}

func TestDerivedFields(t *testing.T) {
	existing := existingEmployee()

	resp := NewEmployeeResponse(existing, testNow)
	assert.Equal(t, "Jane Roe", resp.FullName)
	require.NotNil(t, resp.Age)
	assert.Equal(t, 34, *resp.Age) // born 1990-03-15, birthday passed by 2024-06-01
	assert.Equal(t, "2019-07-01", resp.HireDate)
	// 2019-07-01 to 2024-06-01 is 1797 days: 1797/365.25 rounds to 4.9.
	assert.InDelta(t, 4.9, resp.YearsOfService, 0.001)
}
