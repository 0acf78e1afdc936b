package payroll

import (
	"github.com/cadencehr/payroll-backend-go/internal/domain/salary"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// NamedAmount is one resolved component line.
type NamedAmount struct {
	Name   string
	Amount decimal.Decimal
}

// Resolution is the outcome of resolving a component set against a monthly
// wage. Amounts are full-period values, before attendance proration and
// before statutory deductions.
type Resolution struct {
	BasicSalary     decimal.Decimal
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	Earnings        []NamedAmount
	Deductions      []NamedAmount
}

// ResolveComponents resolves a structure's components in two passes.
//
// Pass 1 resolves earnings whose value does not depend on basic (fixed and
// percentage_of_wage) and pins down the basic salary from the flagged basic
// component. Pass 2 resolves percentage_of_basic earnings against that basic,
// then all deduction components. A percentage_of_basic component flagged as
// basic would be self-referential and resolves to zero.
func ResolveComponents(monthlyWage decimal.Decimal, components []salary.Component) Resolution {
	res := Resolution{
		BasicSalary:     decimal.Zero,
		GrossSalary:     decimal.Zero,
		TotalDeductions: decimal.Zero,
	}

	// Pass 1: basic-independent earnings.
	for _, c := range components {
		if c.Type != salary.ComponentTypeEarning || c.Kind == salary.CalculationPercentageOfBasic {
			continue
		}
		amount := resolveValue(c.Kind, c.Value, monthlyWage, decimal.Zero)
		if c.IsBasic {
			res.BasicSalary = amount
		}
		res.Earnings = append(res.Earnings, NamedAmount{Name: c.Name, Amount: amount})
		res.GrossSalary = res.GrossSalary.Add(amount)
	}

	// Pass 2: basic-dependent earnings, then deductions.
	for _, c := range components {
		if c.Type != salary.ComponentTypeEarning || c.Kind != salary.CalculationPercentageOfBasic {
			continue
		}
		amount := resolveValue(c.Kind, c.Value, monthlyWage, res.BasicSalary)
		res.Earnings = append(res.Earnings, NamedAmount{Name: c.Name, Amount: amount})
		res.GrossSalary = res.GrossSalary.Add(amount)
	}
	for _, c := range components {
		if c.Type != salary.ComponentTypeDeduction {
			continue
		}
		amount := resolveValue(c.Kind, c.Value, monthlyWage, res.BasicSalary)
		res.Deductions = append(res.Deductions, NamedAmount{Name: c.Name, Amount: amount})
		res.TotalDeductions = res.TotalDeductions.Add(amount)
	}

	return res
}

func resolveValue(kind salary.CalculationKind, value, monthlyWage, basic decimal.Decimal) decimal.Decimal {
	switch kind {
	case salary.CalculationPercentageOfWage:
		return monthlyWage.Mul(value).Div(hundred)
	case salary.CalculationPercentageOfBasic:
		return basic.Mul(value).Div(hundred)
	default:
		return value
	}
}
