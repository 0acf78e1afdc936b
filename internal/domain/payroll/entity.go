package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayrunStatus enum. The lifecycle is a strict state machine:
// draft -> computed (repeatable) -> validated (terminal).
type PayrunStatus string

const (
	PayrunStatusDraft     PayrunStatus = "draft"
	PayrunStatusComputed  PayrunStatus = "computed"
	PayrunStatusValidated PayrunStatus = "validated"
)

// CanCompute reports whether a payrun in this status may be (re)computed.
func (s PayrunStatus) CanCompute() bool {
	return s == PayrunStatusDraft || s == PayrunStatusComputed
}

// CanValidate reports whether a payrun in this status may be validated.
func (s PayrunStatus) CanValidate() bool {
	return s == PayrunStatusComputed
}

// Payrun - one payroll computation cycle for a company over a pay period.
type Payrun struct {
	ID          string
	CompanyID   string
	Name        string
	PeriodStart time.Time
	PeriodEnd   time.Time
	CreatedBy   string
	Status      PayrunStatus
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	CreatorName    *string
	EmployeeCount  int
	TotalNetSalary decimal.Decimal
}

// Settings - per-company statutory rates, one typed row per company.
// A missing row falls back to DefaultSettings.
type Settings struct {
	ID              string
	CompanyID       string
	PFRateEmployee  decimal.Decimal
	PFRateEmployer  decimal.Decimal
	ProfessionalTax decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DefaultSettings returns the documented statutory defaults: 12% employee PF,
// 12% employer PF, 200 professional tax.
func DefaultSettings(companyID string) Settings {
	return Settings{
		CompanyID:       companyID,
		PFRateEmployee:  decimal.NewFromInt(12),
		PFRateEmployer:  decimal.NewFromInt(12),
		ProfessionalTax: decimal.NewFromInt(200),
	}
}

// Payslip - one employee's computed pay outcome for a payrun. Payslips are
// deleted and regenerated wholesale on every computation pass.
type Payslip struct {
	ID               string
	PayrunID         string
	EmployeeID       string
	TotalWorkingDays int
	PaidDays         int
	BasicSalary      decimal.Decimal
	GrossSalary      decimal.Decimal
	TotalDeductions  decimal.Decimal
	NetSalary        decimal.Decimal
	Status           PayrunStatus
	CreatedAt        time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
	PayrunName    *string
	PeriodStart   *time.Time
	PeriodEnd     *time.Time
}

// LineType enum
type LineType string

const (
	LineTypeEarning   LineType = "earning"
	LineTypeDeduction LineType = "deduction"
)

// PayslipLine - one resolved component or synthesized statutory deduction on
// a payslip. Immutable once created.
type PayslipLine struct {
	ID        string
	PayslipID string
	Name      string
	Amount    decimal.Decimal
	Type      LineType
	CreatedAt time.Time
}
