package salary

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComponentType enum
type ComponentType string

const (
	ComponentTypeEarning   ComponentType = "earning"
	ComponentTypeDeduction ComponentType = "deduction"
)

// CalculationKind enum
type CalculationKind string

const (
	CalculationFixed             CalculationKind = "fixed"
	CalculationPercentageOfWage  CalculationKind = "percentage_of_wage"
	CalculationPercentageOfBasic CalculationKind = "percentage_of_basic"
)

// Structure - an employee's active wage baseline. At most one structure is
// active per employee; creating a new one deactivates all prior structures
// (soft supersession, rows are never deleted).
type Structure struct {
	ID                 string
	EmployeeID         string
	MonthlyWage        decimal.Decimal
	YearlyWage         decimal.Decimal
	WorkingDaysPerWeek int
	BreakTimeHours     decimal.Decimal
	EffectiveFrom      time.Time
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time

	// Joined fields
	EmployeeName  *string
	EmployeeEmail *string
}

// Component - one named earning or deduction rule attached to a structure.
// Value is a currency amount for fixed components, a percentage (0-100)
// otherwise. The basic earning carries an explicit IsBasic flag; structure
// validation guarantees exactly one earning is flagged. Components are
// replaced wholesale whenever the structure's set is edited.
type Component struct {
	ID          string
	StructureID string
	Name        string
	Type        ComponentType
	Kind        CalculationKind
	Value       decimal.Decimal
	IsBasic     bool
	CreatedAt   time.Time
}
