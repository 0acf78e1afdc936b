package payroll

import "context"

// PayrollService is the payroll use-case surface. Mutating operations take
// the acting user explicitly; handlers resolve actorID and companyID from
// the verified token before calling in.
type PayrollService interface {
	CreatePayrun(ctx context.Context, req CreatePayrunRequest, actorID, companyID string) (CreatePayrunResponse, error)
	ListPayruns(ctx context.Context, companyID string, status *string) ([]PayrunResponse, error)
	ComputePayroll(ctx context.Context, payrunID, actorID, companyID string) (ComputePayrollResponse, error)
	ValidatePayrun(ctx context.Context, payrunID, actorID, companyID string) error

	GetPayslipsForPayrun(ctx context.Context, payrunID, companyID string) ([]PayslipResponse, error)
	GetPayslipDetail(ctx context.Context, payslipID, companyID string) (PayslipDetailResponse, error)
	GetPayslipsForEmployee(ctx context.Context, employeeID, actorID, companyID string) ([]PayslipResponse, error)

	GetSettings(ctx context.Context, companyID string) (SettingsResponse, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest, actorID, companyID string) (SettingsResponse, error)
}
