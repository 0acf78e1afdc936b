package payroll

import (
	"github.com/cadencehr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PAYRUN DTOs ==========

type CreatePayrunRequest struct {
	Name        string `json:"name"`
	PeriodStart string `json:"period_start"`
	PeriodEnd   string `json:"period_end"`
}

func (r *CreatePayrunRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	start, startOK := validator.IsValidDate(r.PeriodStart)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "period_start", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	end, endOK := validator.IsValidDate(r.PeriodEnd)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{Field: "period_end", Message: "must not be before period_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreatePayrunResponse struct {
	PayrunID string `json:"payrun_id"`
}

type ComputePayrollResponse struct {
	EmployeeCount int `json:"employee_count"`
}

type PayrunResponse struct {
	ID             string          `json:"id"`
	CompanyID      string          `json:"company_id"`
	Name           string          `json:"name"`
	PeriodStart    string          `json:"period_start"`
	PeriodEnd      string          `json:"period_end"`
	CreatedBy      string          `json:"created_by"`
	CreatorName    *string         `json:"creator_name,omitempty"`
	Status         string          `json:"status"`
	EmployeeCount  int             `json:"employee_count"`
	TotalNetSalary decimal.Decimal `json:"total_net_salary"`
}

// ========== PAYSLIP DTOs ==========

type PayslipResponse struct {
	ID               string          `json:"id"`
	PayrunID         string          `json:"payrun_id"`
	EmployeeID       string          `json:"employee_id"`
	EmployeeName     *string         `json:"employee_name,omitempty"`
	EmployeeEmail    *string         `json:"employee_email,omitempty"`
	PayrunName       *string         `json:"payrun_name,omitempty"`
	PeriodStart      *string         `json:"period_start,omitempty"`
	PeriodEnd        *string         `json:"period_end,omitempty"`
	TotalWorkingDays int             `json:"total_working_days"`
	PaidDays         int             `json:"paid_days"`
	BasicSalary      decimal.Decimal `json:"basic_salary"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	Status           string          `json:"status"`
}

type PayslipLineResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

type PayslipDetailResponse struct {
	Payslip PayslipResponse       `json:"payslip"`
	Lines   []PayslipLineResponse `json:"lines"`
}

// ========== SETTINGS DTOs ==========

type SettingsResponse struct {
	CompanyID       string          `json:"company_id"`
	PFRateEmployee  decimal.Decimal `json:"pf_rate_employee"`
	PFRateEmployer  decimal.Decimal `json:"pf_rate_employer"`
	ProfessionalTax decimal.Decimal `json:"professional_tax"`
}

type UpdateSettingsRequest struct {
	PFRateEmployee  *decimal.Decimal `json:"pf_rate_employee,omitempty"`
	PFRateEmployer  *decimal.Decimal `json:"pf_rate_employer,omitempty"`
	ProfessionalTax *decimal.Decimal `json:"professional_tax,omitempty"`
}

var hundred = decimal.NewFromInt(100)

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PFRateEmployee != nil && (r.PFRateEmployee.IsNegative() || r.PFRateEmployee.GreaterThan(hundred)) {
		errs = append(errs, validator.ValidationError{Field: "pf_rate_employee", Message: "must be between 0 and 100"})
	}
	if r.PFRateEmployer != nil && (r.PFRateEmployer.IsNegative() || r.PFRateEmployer.GreaterThan(hundred)) {
		errs = append(errs, validator.ValidationError{Field: "pf_rate_employer", Message: "must be between 0 and 100"})
	}
	if r.ProfessionalTax != nil && r.ProfessionalTax.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "professional_tax", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
