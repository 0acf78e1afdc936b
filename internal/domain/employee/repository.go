package employee

import "context"

type EmployeeRepository interface {
	// GetActiveWithSalaryStructure returns the distinct set of active
	// employees in the company that have an active salary structure.
	// Employees without one are simply not part of a payroll run.
	GetActiveWithSalaryStructure(ctx context.Context, companyID string) ([]Employee, error)
}
