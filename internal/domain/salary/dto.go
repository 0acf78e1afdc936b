package salary

import (
	"github.com/cadencehr/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type ComponentInput struct {
	Name    string          `json:"name"`
	Type    string          `json:"type"`             // "earning" or "deduction"
	Kind    string          `json:"calculation_kind"` // "fixed", "percentage_of_wage", "percentage_of_basic"
	Value   decimal.Decimal `json:"value"`
	IsBasic bool            `json:"is_basic,omitempty"`
}

type UpsertStructureRequest struct {
	EmployeeID         string           `json:"-"`
	MonthlyWage        decimal.Decimal  `json:"monthly_wage"`
	YearlyWage         decimal.Decimal  `json:"yearly_wage"`
	WorkingDaysPerWeek *int             `json:"working_days_per_week,omitempty"`
	BreakTimeHours     *decimal.Decimal `json:"break_time_hours,omitempty"`
	EffectiveFrom      string           `json:"effective_from"`
	Components         []ComponentInput `json:"components"`
}

var (
	componentTypes   = []string{string(ComponentTypeEarning), string(ComponentTypeDeduction)}
	calculationKinds = []string{string(CalculationFixed), string(CalculationPercentageOfWage), string(CalculationPercentageOfBasic)}
)

func (r *UpsertStructureRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.MonthlyWage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "monthly_wage", Message: "must be positive"})
	}
	if !r.YearlyWage.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "yearly_wage", Message: "must be positive"})
	}
	if r.WorkingDaysPerWeek != nil && (*r.WorkingDaysPerWeek < 1 || *r.WorkingDaysPerWeek > 7) {
		errs = append(errs, validator.ValidationError{Field: "working_days_per_week", Message: "must be between 1 and 7"})
	}
	if r.BreakTimeHours != nil && r.BreakTimeHours.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "break_time_hours", Message: "must be non-negative"})
	}
	if _, ok := validator.IsValidDate(r.EffectiveFrom); !ok {
		errs = append(errs, validator.ValidationError{Field: "effective_from", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if len(r.Components) == 0 {
		errs = append(errs, validator.ValidationError{Field: "components", Message: "at least one component is required"})
	}

	basicCount := 0
	for _, c := range r.Components {
		if validator.IsEmpty(c.Name) {
			errs = append(errs, validator.ValidationError{Field: "components.name", Message: "is required"})
		}
		if !validator.IsInSlice(c.Type, componentTypes) {
			errs = append(errs, validator.ValidationError{Field: "components.type", Message: "must be 'earning' or 'deduction'"})
		}
		if !validator.IsInSlice(c.Kind, calculationKinds) {
			errs = append(errs, validator.ValidationError{Field: "components.calculation_kind", Message: "must be 'fixed', 'percentage_of_wage' or 'percentage_of_basic'"})
		}
		if c.Value.IsNegative() {
			errs = append(errs, validator.ValidationError{Field: "components.value", Message: "must be non-negative"})
		}
		if c.Kind != string(CalculationFixed) && c.Value.GreaterThan(hundred) {
			errs = append(errs, validator.ValidationError{Field: "components.value", Message: "percentage must be between 0 and 100"})
		}
		if c.IsBasic && c.Type == string(ComponentTypeEarning) {
			basicCount++
		}
	}
	if basicCount != 1 {
		errs = append(errs, validator.ValidationError{Field: "components", Message: "exactly one earning component must be flagged as basic"})
	}

	// Wage-relative earnings plus fixed earnings must fit inside the monthly
	// wage. percentage_of_basic earnings are deliberately excluded from this
	// pre-check; they resolve against basic, not the wage.
	if r.MonthlyWage.IsPositive() {
		totalPercentage := decimal.Zero
		totalFixed := decimal.Zero
		for _, c := range r.Components {
			if c.Type != string(ComponentTypeEarning) {
				continue
			}
			switch c.Kind {
			case string(CalculationPercentageOfWage):
				totalPercentage = totalPercentage.Add(c.Value)
			case string(CalculationFixed):
				totalFixed = totalFixed.Add(c.Value)
			}
		}
		percentageAmount := r.MonthlyWage.Mul(totalPercentage).Div(hundred)
		if percentageAmount.Add(totalFixed).GreaterThan(r.MonthlyWage) {
			errs = append(errs, validator.ValidationError{Field: "components", Message: "total salary components exceed the defined wage"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComponentResponse struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Kind    string          `json:"calculation_kind"`
	Value   decimal.Decimal `json:"value"`
	IsBasic bool            `json:"is_basic"`
}

type StructureResponse struct {
	ID                 string              `json:"id"`
	EmployeeID         string              `json:"employee_id"`
	EmployeeName       *string             `json:"employee_name,omitempty"`
	EmployeeEmail      *string             `json:"employee_email,omitempty"`
	MonthlyWage        decimal.Decimal     `json:"monthly_wage"`
	YearlyWage         decimal.Decimal     `json:"yearly_wage"`
	WorkingDaysPerWeek int                 `json:"working_days_per_week"`
	BreakTimeHours     decimal.Decimal     `json:"break_time_hours"`
	EffectiveFrom      string              `json:"effective_from"`
	IsActive           bool                `json:"is_active"`
	Components         []ComponentResponse `json:"components"`
}

type UpsertStructureResponse struct {
	StructureID string `json:"structure_id"`
}
