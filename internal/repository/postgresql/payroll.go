package postgresql

import (
	"context"
	"fmt"

	"github.com/cadencehr/payroll-backend-go/internal/domain/payroll"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

// ========== SETTINGS ==========

func (r *payrollRepository) GetSettings(ctx context.Context, companyID string) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, pf_rate_employee, pf_rate_employer, professional_tax,
			   created_at, updated_at
		FROM payroll_settings
		WHERE company_id = $1
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query, companyID).Scan(
		&s.ID, &s.CompanyID, &s.PFRateEmployee, &s.PFRateEmployer, &s.ProfessionalTax,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Settings{}, payroll.ErrSettingsNotFound
		}
		return payroll.Settings{}, fmt.Errorf("failed to get payroll settings: %w", err)
	}

	return s, nil
}

func (r *payrollRepository) UpsertSettings(ctx context.Context, settings payroll.Settings) (payroll.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_settings (company_id, pf_rate_employee, pf_rate_employer, professional_tax)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (company_id) DO UPDATE SET
			pf_rate_employee = EXCLUDED.pf_rate_employee,
			pf_rate_employer = EXCLUDED.pf_rate_employer,
			professional_tax = EXCLUDED.professional_tax,
			updated_at = NOW()
		RETURNING id, company_id, pf_rate_employee, pf_rate_employer, professional_tax,
				  created_at, updated_at
	`

	var s payroll.Settings
	err := q.QueryRow(ctx, query,
		settings.CompanyID, settings.PFRateEmployee, settings.PFRateEmployer, settings.ProfessionalTax,
	).Scan(
		&s.ID, &s.CompanyID, &s.PFRateEmployee, &s.PFRateEmployer, &s.ProfessionalTax,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return payroll.Settings{}, fmt.Errorf("failed to upsert payroll settings: %w", err)
	}

	return s, nil
}

// ========== PAYRUNS ==========

func (r *payrollRepository) CreatePayrun(ctx context.Context, payrun payroll.Payrun) (string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payruns (company_id, name, period_start, period_end, created_by, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		payrun.CompanyID, payrun.Name, payrun.PeriodStart, payrun.PeriodEnd,
		payrun.CreatedBy, payrun.Status,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("failed to create payrun: %w", err)
	}

	return id, nil
}

func (r *payrollRepository) GetPayrunByID(ctx context.Context, id string, companyID string) (payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.company_id, p.name, p.period_start, p.period_end,
			   p.created_by, p.status, p.created_at, p.updated_at,
			   u.first_name || ' ' || u.last_name AS creator_name,
			   COUNT(ps.id) AS employee_count,
			   COALESCE(SUM(ps.net_salary), 0) AS total_net_salary
		FROM payruns p
		LEFT JOIN users u ON u.id = p.created_by
		LEFT JOIN payslips ps ON ps.payrun_id = p.id
		WHERE p.id = $1 AND p.company_id = $2
		GROUP BY p.id, u.first_name, u.last_name
	`

	var p payroll.Payrun
	err := q.QueryRow(ctx, query, id, companyID).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.PeriodStart, &p.PeriodEnd,
		&p.CreatedBy, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&p.CreatorName, &p.EmployeeCount, &p.TotalNetSalary,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payrun{}, payroll.ErrPayrunNotFound
		}
		return payroll.Payrun{}, fmt.Errorf("failed to get payrun: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPayruns(ctx context.Context, companyID string, status *string) ([]payroll.Payrun, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.company_id, p.name, p.period_start, p.period_end,
			   p.created_by, p.status, p.created_at, p.updated_at,
			   u.first_name || ' ' || u.last_name AS creator_name,
			   COUNT(ps.id) AS employee_count,
			   COALESCE(SUM(ps.net_salary), 0) AS total_net_salary
		FROM payruns p
		LEFT JOIN users u ON u.id = p.created_by
		LEFT JOIN payslips ps ON ps.payrun_id = p.id
		WHERE p.company_id = $1 AND ($2::text IS NULL OR p.status = $2)
		GROUP BY p.id, u.first_name, u.last_name
		ORDER BY p.period_start DESC, p.created_at DESC
	`

	rows, err := q.Query(ctx, query, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list payruns: %w", err)
	}
	defer rows.Close()

	var payruns []payroll.Payrun
	for rows.Next() {
		var p payroll.Payrun
		if err := rows.Scan(
			&p.ID, &p.CompanyID, &p.Name, &p.PeriodStart, &p.PeriodEnd,
			&p.CreatedBy, &p.Status, &p.CreatedAt, &p.UpdatedAt,
			&p.CreatorName, &p.EmployeeCount, &p.TotalNetSalary,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payrun: %w", err)
		}
		payruns = append(payruns, p)
	}

	return payruns, rows.Err()
}

func (r *payrollRepository) UpdatePayrunStatus(ctx context.Context, id string, status payroll.PayrunStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payruns
		SET status = $2, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, status)
	if err != nil {
		return fmt.Errorf("failed to update payrun status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayrunNotFound
	}

	return nil
}

// LockPayrun takes a transaction-scoped advisory lock keyed on the payrun ID.
// Released automatically at commit or rollback.
func (r *payrollRepository) LockPayrun(ctx context.Context, payrunID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1::text, 0))`, payrunID); err != nil {
		return fmt.Errorf("failed to lock payrun: %w", err)
	}

	return nil
}

// ========== PAYSLIPS ==========

func (r *payrollRepository) DeletePayslipsByPayrun(ctx context.Context, payrunID string) error {
	q := GetQuerier(ctx, r.db)

	// payslip_lines go with them via ON DELETE CASCADE.
	if _, err := q.Exec(ctx, `DELETE FROM payslips WHERE payrun_id = $1`, payrunID); err != nil {
		return fmt.Errorf("failed to delete payslips: %w", err)
	}

	return nil
}

func (r *payrollRepository) CreatePayslip(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			payrun_id, employee_id, total_working_days, paid_days,
			basic_salary, gross_salary, total_deductions, net_salary, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		payslip.PayrunID, payslip.EmployeeID, payslip.TotalWorkingDays, payslip.PaidDays,
		payslip.BasicSalary, payslip.GrossSalary, payslip.TotalDeductions, payslip.NetSalary,
		payslip.Status,
	).Scan(&payslip.ID, &payslip.CreatedAt)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return payslip, nil
}

func (r *payrollRepository) CreatePayslipLines(ctx context.Context, payslipID string, lines []payroll.PayslipLine) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslip_lines (payslip_id, name, amount, type)
		VALUES ($1, $2, $3, $4)
	`
	for _, line := range lines {
		if _, err := q.Exec(ctx, query, payslipID, line.Name, line.Amount, line.Type); err != nil {
			return fmt.Errorf("failed to create payslip line: %w", err)
		}
	}

	return nil
}

const payslipSelect = `
	SELECT ps.id, ps.payrun_id, ps.employee_id, ps.total_working_days, ps.paid_days,
		   ps.basic_salary, ps.gross_salary, ps.total_deductions, ps.net_salary,
		   ps.status, ps.created_at,
		   e.full_name, e.email,
		   p.name, p.period_start, p.period_end
	FROM payslips ps
	INNER JOIN employees e ON e.id = ps.employee_id
	INNER JOIN payruns p ON p.id = ps.payrun_id
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var ps payroll.Payslip
	err := row.Scan(
		&ps.ID, &ps.PayrunID, &ps.EmployeeID, &ps.TotalWorkingDays, &ps.PaidDays,
		&ps.BasicSalary, &ps.GrossSalary, &ps.TotalDeductions, &ps.NetSalary,
		&ps.Status, &ps.CreatedAt,
		&ps.EmployeeName, &ps.EmployeeEmail,
		&ps.PayrunName, &ps.PeriodStart, &ps.PeriodEnd,
	)
	return ps, err
}

func (r *payrollRepository) GetPayslipsByPayrun(ctx context.Context, payrunID string, companyID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := payslipSelect + `
		WHERE ps.payrun_id = $1 AND p.company_id = $2
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, payrunID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		ps, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, ps)
	}

	return payslips, rows.Err()
}

func (r *payrollRepository) GetPayslipsByEmployee(ctx context.Context, employeeID string, companyID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := payslipSelect + `
		WHERE ps.employee_id = $1 AND p.company_id = $2
		ORDER BY p.period_start DESC
	`

	rows, err := q.Query(ctx, query, employeeID, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		ps, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, ps)
	}

	return payslips, rows.Err()
}

func (r *payrollRepository) GetPayslipByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := payslipSelect + `
		WHERE ps.id = $1 AND p.company_id = $2
	`

	ps, err := scanPayslip(q.QueryRow(ctx, query, id, companyID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	return ps, nil
}

func (r *payrollRepository) GetPayslipLines(ctx context.Context, payslipID string) ([]payroll.PayslipLine, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payslip_id, name, amount, type, created_at
		FROM payslip_lines
		WHERE payslip_id = $1
		ORDER BY created_at, id
	`

	rows, err := q.Query(ctx, query, payslipID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslip lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.PayslipLine
	for rows.Next() {
		var l payroll.PayslipLine
		if err := rows.Scan(&l.ID, &l.PayslipID, &l.Name, &l.Amount, &l.Type, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payslip line: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

func (r *payrollRepository) UpdatePayslipStatusByPayrun(ctx context.Context, payrunID string, status payroll.PayrunStatus) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = $2
		WHERE payrun_id = $1
	`

	if _, err := q.Exec(ctx, query, payrunID, status); err != nil {
		return fmt.Errorf("failed to update payslip status: %w", err)
	}

	return nil
}
