package audit

import "time"

const ModulePayroll = "payroll"

const (
	ActionPayrunCreated          = "PAYRUN_CREATED"
	ActionPayrollComputed        = "PAYROLL_COMPUTED"
	ActionPayrollValidated       = "PAYROLL_VALIDATED"
	ActionSalaryStructureCreated = "SALARY_STRUCTURE_CREATED"
	ActionPayrollSettingsUpdated = "PAYROLL_SETTINGS_UPDATED"
)

type Entry struct {
	ID          string
	ActorID     string
	CompanyID   string
	Action      string
	Description string
	Module      string
	CreatedAt   time.Time
}
