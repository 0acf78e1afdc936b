package postgresql

import (
	"context"
	"fmt"

	"github.com/cadencehr/payroll-backend-go/internal/domain/salary"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryRepository struct {
	db *database.DB
}

func NewSalaryRepository(db *database.DB) salary.SalaryRepository {
	return &salaryRepository{db: db}
}

// CreateStructure deactivates any prior structure for the employee, inserts
// the new one and its components. Runs inside the caller's transaction.
func (r *salaryRepository) CreateStructure(ctx context.Context, structure salary.Structure, components []salary.Component) (string, error) {
	q := GetQuerier(ctx, r.db)

	deactivate := `
		UPDATE salary_structures
		SET is_active = false, updated_at = NOW()
		WHERE employee_id = $1 AND is_active = true
	`
	if _, err := q.Exec(ctx, deactivate, structure.EmployeeID); err != nil {
		return "", fmt.Errorf("failed to deactivate salary structures: %w", err)
	}

	insert := `
		INSERT INTO salary_structures (
			employee_id, monthly_wage, yearly_wage, working_days_per_week,
			break_time_hours, effective_from, is_active
		) VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id
	`

	var structureID string
	err := q.QueryRow(ctx, insert,
		structure.EmployeeID, structure.MonthlyWage, structure.YearlyWage,
		structure.WorkingDaysPerWeek, structure.BreakTimeHours, structure.EffectiveFrom,
	).Scan(&structureID)
	if err != nil {
		return "", fmt.Errorf("failed to create salary structure: %w", err)
	}

	insertComponent := `
		INSERT INTO salary_components (structure_id, name, type, calculation_kind, value, is_basic)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, c := range components {
		if _, err := q.Exec(ctx, insertComponent, structureID, c.Name, c.Type, c.Kind, c.Value, c.IsBasic); err != nil {
			return "", fmt.Errorf("failed to create salary component: %w", err)
		}
	}

	return structureID, nil
}

func (r *salaryRepository) GetActiveByEmployee(ctx context.Context, employeeID string, companyID string) (salary.Structure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ss.id, ss.employee_id, ss.monthly_wage, ss.yearly_wage,
			   ss.working_days_per_week, ss.break_time_hours, ss.effective_from,
			   ss.is_active, ss.created_at, ss.updated_at,
			   e.full_name, e.email
		FROM salary_structures ss
		INNER JOIN employees e ON e.id = ss.employee_id
		WHERE ss.employee_id = $1 AND e.company_id = $2 AND ss.is_active = true
	`

	var s salary.Structure
	err := q.QueryRow(ctx, query, employeeID, companyID).Scan(
		&s.ID, &s.EmployeeID, &s.MonthlyWage, &s.YearlyWage,
		&s.WorkingDaysPerWeek, &s.BreakTimeHours, &s.EffectiveFrom,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
		&s.EmployeeName, &s.EmployeeEmail,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return salary.Structure{}, salary.ErrStructureNotFound
		}
		return salary.Structure{}, fmt.Errorf("failed to get salary structure: %w", err)
	}

	return s, nil
}

func (r *salaryRepository) GetComponents(ctx context.Context, structureID string) ([]salary.Component, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, structure_id, name, type, calculation_kind, value, is_basic, created_at
		FROM salary_components
		WHERE structure_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, structureID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	var components []salary.Component
	for rows.Next() {
		var c salary.Component
		if err := rows.Scan(&c.ID, &c.StructureID, &c.Name, &c.Type, &c.Kind, &c.Value, &c.IsBasic, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		components = append(components, c)
	}

	return components, rows.Err()
}

func (r *salaryRepository) ListActiveByCompany(ctx context.Context, companyID string) ([]salary.Structure, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ss.id, ss.employee_id, ss.monthly_wage, ss.yearly_wage,
			   ss.working_days_per_week, ss.break_time_hours, ss.effective_from,
			   ss.is_active, ss.created_at, ss.updated_at,
			   e.full_name, e.email
		FROM salary_structures ss
		INNER JOIN employees e ON e.id = ss.employee_id
		WHERE e.company_id = $1 AND ss.is_active = true
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary structures: %w", err)
	}
	defer rows.Close()

	var structures []salary.Structure
	for rows.Next() {
		var s salary.Structure
		if err := rows.Scan(
			&s.ID, &s.EmployeeID, &s.MonthlyWage, &s.YearlyWage,
			&s.WorkingDaysPerWeek, &s.BreakTimeHours, &s.EffectiveFrom,
			&s.IsActive, &s.CreatedAt, &s.UpdatedAt,
			&s.EmployeeName, &s.EmployeeEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan salary structure: %w", err)
		}
		structures = append(structures, s)
	}

	return structures, rows.Err()
}
