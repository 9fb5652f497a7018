package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/staffdir/employee-backend-go/internal/domain/employee"
	"github.com/staffdir/employee-backend-go/internal/pkg/database"
)

const employeeColumns = `id, employee_id, first_name, last_name, email, phone, birth_date,
	department, position, hire_date, salary, status, manager_id, skills, metadata,
	created_at, updated_at`

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var emp employee.Employee
	err := row.Scan(
		&emp.ID, &emp.EmployeeID, &emp.FirstName, &emp.LastName, &emp.Email,
		&emp.Phone, &emp.BirthDate, &emp.Department, &emp.Position, &emp.HireDate,
		&emp.Salary, &emp.Status, &emp.ManagerID, &emp.Skills, &emp.Metadata,
		&emp.CreatedAt, &emp.UpdatedAt,
	)
	return emp, err
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE id = $1`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// GetByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE employee_id = $1`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// Create implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		INSERT INTO employees (
			id, employee_id, first_name, last_name, email, phone, birth_date,
			department, position, hire_date, salary, status, manager_id, skills, metadata
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12, $13, $14, $15
		)
		RETURNING %s
	`, employeeColumns)

	id := uuid.Must(uuid.NewV7()).String()

	created, err := scanEmployee(q.QueryRow(ctx, query,
		id, newEmployee.EmployeeID, newEmployee.FirstName, newEmployee.LastName,
		newEmployee.Email, newEmployee.Phone, newEmployee.BirthDate,
		newEmployee.Department, newEmployee.Position, newEmployee.HireDate,
		newEmployee.Salary, newEmployee.Status, newEmployee.ManagerID,
		newEmployee.Skills, newEmployee.Metadata,
	))
	if err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// Update implements employee.EmployeeRepository. The merged record is written
// wholesale; partial-update semantics were resolved by the validator.
func (e *employeeRepositoryImpl) Update(ctx context.Context, updated employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`
		UPDATE employees SET
			first_name = $2, last_name = $3, email = $4, phone = $5, birth_date = $6,
			department = $7, position = $8, salary = $9, status = $10, manager_id = $11,
			skills = $12, metadata = $13, updated_at = NOW()
		WHERE id = $1
		RETURNING %s
	`, employeeColumns)

	emp, err := scanEmployee(q.QueryRow(ctx, query,
		updated.ID, updated.FirstName, updated.LastName, updated.Email,
		updated.Phone, updated.BirthDate, updated.Department, updated.Position,
		updated.Salary, updated.Status, updated.ManagerID, updated.Skills,
		updated.Metadata,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return emp, nil
}

// Delete implements employee.EmployeeRepository. Subordinates are unlinked
// from the deleted manager inside the same transaction.
func (e *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	return WithTransaction(ctx, e.db, func(txCtx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(txCtx, `UPDATE employees SET manager_id = NULL, updated_at = NOW() WHERE manager_id = $1`, id); err != nil {
			return fmt.Errorf("failed to unlink direct reports: %w", err)
		}

		tag, err := tx.Exec(txCtx, `DELETE FROM employees WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("failed to delete employee: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return employee.ErrEmployeeNotFound
		}
		return nil
	})
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	conditions := []string{"1=1"}
	args := []interface{}{}
	argPos := 1

	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", argPos))
		args = append(args, filter.Department)
		argPos++
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, filter.Status)
		argPos++
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(first_name ILIKE $%d OR last_name ILIKE $%d OR email ILIKE $%d OR employee_id ILIKE $%d)",
			argPos, argPos, argPos, argPos))
		args = append(args, "%"+filter.Search+"%")
		argPos++
	}

	where := strings.Join(conditions, " AND ")

	var total int64
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM employees WHERE %s`, where)
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s FROM employees
		WHERE %s
		ORDER BY employee_id
		LIMIT $%d OFFSET $%d
	`, employeeColumns, where, argPos, argPos+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// ListByManager implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListByManager(ctx context.Context, managerID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := fmt.Sprintf(`SELECT %s FROM employees WHERE manager_id = $1 ORDER BY employee_id`, employeeColumns)

	rows, err := q.Query(ctx, query, managerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// ExistsByEmail implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByEmail(ctx context.Context, email string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE email = $1 AND ($2::uuid IS NULL OR id != $2))`,
		email, excludeID,
	).Scan(&exists)
	return exists, err
}

// ExistsByEmployeeCode implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ExistsByEmployeeCode(ctx context.Context, code string, excludeID *string) (bool, error) {
	q := GetQuerier(ctx, e.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM employees WHERE employee_id = $1 AND ($2::uuid IS NULL OR id != $2))`,
		code, excludeID,
	).Scan(&exists)
	return exists, err
}

// ListEmployeeCodes implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListEmployeeCodes(ctx context.Context) ([]string, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT employee_id FROM employees`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var codes []string
	for rows.Next() {
		var code string
		if err := rows.Scan(&code); err != nil {
			return nil, err
		}
		codes = append(codes, code)
	}
	return codes, rows.Err()
}

// DepartmentCounts implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) DepartmentCounts(ctx context.Context) (map[string]int64, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, `SELECT department, COUNT(*) FROM employees GROUP BY department`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var department string
		var count int64
		if err := rows.Scan(&department, &count); err != nil {
			return nil, err
		}
		counts[department] = count
	}
	return counts, rows.Err()
}

// SalaryStats implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SalaryStats(ctx context.Context) (employee.SalaryStats, error) {
	q := GetQuerier(ctx, e.db)

	var stats employee.SalaryStats
	err := q.QueryRow(ctx, `
		SELECT COALESCE(AVG(salary), 0), COALESCE(MIN(salary), 0), COALESCE(MAX(salary), 0), COUNT(*)
		FROM employees
	`).Scan(&stats.Average, &stats.Minimum, &stats.Maximum, &stats.Count)
	if err != nil {
		return employee.SalaryStats{}, err
	}
	return stats, nil
}

// Truncate implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Truncate(ctx context.Context) error {
	q := GetQuerier(ctx, e.db)

	_, err := q.Exec(ctx, `TRUNCATE TABLE employees`)
	return err
}
