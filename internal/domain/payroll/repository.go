package payroll

import "context"

// PayrollRepository defines data access for payruns, payslips and settings.
// Methods that read company data take companyID to prevent cross-company
// access.
type PayrollRepository interface {
	// Settings
	GetSettings(ctx context.Context, companyID string) (Settings, error)
	UpsertSettings(ctx context.Context, settings Settings) (Settings, error)

	// Payruns
	CreatePayrun(ctx context.Context, payrun Payrun) (string, error)
	GetPayrunByID(ctx context.Context, id string, companyID string) (Payrun, error)
	ListPayruns(ctx context.Context, companyID string, status *string) ([]Payrun, error)
	UpdatePayrunStatus(ctx context.Context, id string, status PayrunStatus) error

	// LockPayrun serializes computation per payrun for the duration of the
	// surrounding transaction. Concurrent compute calls on the same payrun
	// queue behind the lock instead of racing the delete-and-regenerate.
	LockPayrun(ctx context.Context, payrunID string) error

	// Payslips
	DeletePayslipsByPayrun(ctx context.Context, payrunID string) error
	CreatePayslip(ctx context.Context, payslip Payslip) (Payslip, error)
	CreatePayslipLines(ctx context.Context, payslipID string, lines []PayslipLine) error
	GetPayslipsByPayrun(ctx context.Context, payrunID string, companyID string) ([]Payslip, error)
	GetPayslipsByEmployee(ctx context.Context, employeeID string, companyID string) ([]Payslip, error)
	GetPayslipByID(ctx context.Context, id string, companyID string) (Payslip, error)
	GetPayslipLines(ctx context.Context, payslipID string) ([]PayslipLine, error)
	UpdatePayslipStatusByPayrun(ctx context.Context, payrunID string, status PayrunStatus) error
}
