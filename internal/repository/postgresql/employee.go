package postgresql

import (
	"context"
	"fmt"

	"github.com/cadencehr/payroll-backend-go/internal/domain/employee"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/database"
)

type employeeRepository struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) GetActiveWithSalaryStructure(ctx context.Context, companyID string) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT e.id, e.company_id, e.full_name, e.email, e.is_active, e.created_at, e.updated_at
		FROM employees e
		INNER JOIN salary_structures ss ON ss.employee_id = e.id AND ss.is_active = true
		WHERE e.company_id = $1 AND e.is_active = true
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees with salary structure: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var e employee.Employee
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.FullName, &e.Email, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}

	return employees, rows.Err()
}
