package user

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrPayrollAccessRequired = errors.New("admin or payroll officer role required")
)
