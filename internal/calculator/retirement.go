package calculator

import (
	"github.com/shopspring/decimal"
)

// withdrawalMultiple sizes the nest egg for a 4% withdrawal rate.
var withdrawalMultiple = decimal.NewFromInt(25)

type RetirementInput struct {
	CurrentAge         int             `json:"current_age"`
	RetirementAge      int             `json:"retirement_age"`
	LifeExpectancy     int             `json:"life_expectancy"`
	Savings            decimal.Decimal `json:"savings"`
	AnnualContribution decimal.Decimal `json:"annual_contribution"`
	DesiredIncome      decimal.Decimal `json:"desired_income"`
	Inflation          decimal.Decimal `json:"inflation"`
	Return             decimal.Decimal `json:"return"`
}

type RetirementResult struct {
	YearsToRetirement int               `json:"years_to_retirement"`
	RetirementYears   int               `json:"retirement_years"`
	FutureSavings     decimal.Decimal   `json:"future_savings"`
	RequiredSavings   decimal.Decimal   `json:"required_savings"`
	Gap               decimal.Decimal   `json:"gap"`
	Readiness         decimal.Decimal   `json:"readiness"`
	OnTrack           bool              `json:"on_track"`
	Projection        []decimal.Decimal `json:"projection"`
}

// PlanRetirement compares projected savings with the nest egg needed to fund
// the desired income, inflated over the retirement years.
func PlanRetirement(in RetirementInput) (*RetirementResult, error) {
	if in.CurrentAge < 0 || in.RetirementAge <= in.CurrentAge {
		return nil, invalid("retirement age must be greater than current age")
	}
	if in.LifeExpectancy < in.RetirementAge {
		return nil, invalid("life expectancy must not be before retirement")
	}
	for name, v := range map[string]decimal.Decimal{
		"savings":        in.Savings,
		"contribution":   in.AnnualContribution,
		"desired income": in.DesiredIncome,
		"inflation":      in.Inflation,
		"return":         in.Return,
	} {
		if err := requireNonNegative(name, v); err != nil {
			return nil, err
		}
	}

	years := in.RetirementAge - in.CurrentAge
	retirementYears := in.LifeExpectancy - in.RetirementAge
	growth := one.Add(rate(in.Return, 1))

	future := in.Savings
	projection := make([]decimal.Decimal, 0, years+1)
	projection = append(projection, money(future))
	for i := 0; i < years; i++ {
		future = future.Mul(growth).Add(in.AnnualContribution).Round(workPlaces)
		projection = append(projection, money(future))
	}

	inflated := in.DesiredIncome.Mul(pow(one.Add(rate(in.Inflation, 1)), retirementYears))
	required := inflated.Mul(withdrawalMultiple)
	gap := required.Sub(future)

	readiness := hundred
	if required.IsPositive() {
		readiness = future.Div(required).Mul(hundred)
		readiness = decimal.Min(hundred, decimal.Max(decimal.Zero, readiness))
	}

	return &RetirementResult{
		YearsToRetirement: years,
		RetirementYears:   retirementYears,
		FutureSavings:     money(future),
		RequiredSavings:   money(required),
		Gap:               money(gap),
		Readiness:         readiness.Round(1),
		OnTrack:           !gap.IsPositive(),
		Projection:        projection,
	}, nil
}
