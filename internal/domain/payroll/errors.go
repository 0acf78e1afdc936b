package payroll

import "errors"

var (
	ErrPayrunNotFound    = errors.New("payrun not found")
	ErrPayslipNotFound   = errors.New("payslip not found")
	ErrSettingsNotFound  = errors.New("payroll settings not found")
	ErrPayrunValidated   = errors.New("payrun already validated, no further changes allowed")
	ErrPayrunNotComputed = errors.New("payrun must be computed before it can be validated")
)
