package response

import (
	"errors"
	"net/http"

	"github.com/cadencehr/payroll-backend-go/internal/domain/payroll"
	"github.com/cadencehr/payroll-backend-go/internal/domain/salary"
	"github.com/cadencehr/payroll-backend-go/internal/domain/user"
	"github.com/cadencehr/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrPayrollAccessRequired):
		Forbidden(w, "Admin or payroll officer role required")

	// Salary domain errors
	case errors.Is(err, salary.ErrStructureNotFound):
		NotFound(w, "Salary structure not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayrunNotFound):
		NotFound(w, "Payrun not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayrunValidated):
		Conflict(w, "Payrun is already validated")
	case errors.Is(err, payroll.ErrPayrunNotComputed):
		Conflict(w, "Payrun must be computed before validation")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
