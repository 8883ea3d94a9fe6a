package calculator

import (
	"github.com/shopspring/decimal"
)

const maxInvestmentYears = 50

// InvestmentInput describes a savings plan. Rates are annual percentages.
type InvestmentInput struct {
	Initial              decimal.Decimal `json:"initial"`
	Monthly              decimal.Decimal `json:"monthly"`
	Years                int             `json:"years"`
	AnnualReturn         decimal.Decimal `json:"annual_return"`
	Inflation            decimal.Decimal `json:"inflation"`
	ContributionIncrease decimal.Decimal `json:"contribution_increase"`
	TaxRate              decimal.Decimal `json:"tax_rate"`
}

// YearProjection is the portfolio at the end of a year.
type YearProjection struct {
	Year          int             `json:"year"`
	Value         decimal.Decimal `json:"value"`
	Contributions decimal.Decimal `json:"contributions"`
}

type InvestmentResult struct {
	FutureValue   decimal.Decimal  `json:"future_value"`
	Contributions decimal.Decimal  `json:"contributions"`
	Gains         decimal.Decimal  `json:"gains"`
	Taxes         decimal.Decimal  `json:"taxes"`
	AfterTax      decimal.Decimal  `json:"after_tax"`
	RealValue     decimal.Decimal  `json:"real_value"`
	Projection    []YearProjection `json:"projection"`
}

func (in InvestmentInput) validate() error {
	if in.Years < 1 || in.Years > maxInvestmentYears {
		return invalid("years must be between 1 and %d", maxInvestmentYears)
	}
	for name, v := range map[string]decimal.Decimal{
		"initial":               in.Initial,
		"monthly":               in.Monthly,
		"annual return":         in.AnnualReturn,
		"inflation":             in.Inflation,
		"contribution increase": in.ContributionIncrease,
	} {
		if err := requireNonNegative(name, v); err != nil {
			return err
		}
	}
	return requirePercent("tax rate", in.TaxRate)
}

// ProjectInvestment compounds monthly. Each month's contribution is added
// before growth, and the monthly contribution steps up once a year.
// Tax applies to gains only; the real value discounts inflation over the
// whole period.
func ProjectInvestment(in InvestmentInput) (*InvestmentResult, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	growth := one.Add(rate(in.AnnualReturn, 12))
	step := one.Add(rate(in.ContributionIncrease, 1))

	value := in.Initial
	contributed := in.Initial
	monthly := in.Monthly

	projection := make([]YearProjection, 0, in.Years)
	for year := 1; year <= in.Years; year++ {
		for month := 0; month < 12; month++ {
			value = value.Add(monthly).Mul(growth).Round(workPlaces)
			contributed = contributed.Add(monthly)
		}

		projection = append(projection, YearProjection{
			Year:          year,
			Value:         money(value),
			Contributions: money(contributed),
		})

		monthly = monthly.Mul(step).Round(workPlaces)
	}

	gains := value.Sub(contributed)
	taxes := decimal.Zero
	if gains.IsPositive() {
		taxes = gains.Mul(rate(in.TaxRate, 1))
	}
	afterTax := value.Sub(taxes)
	realValue := afterTax.Div(pow(one.Add(rate(in.Inflation, 1)), in.Years))

	return &InvestmentResult{
		FutureValue:   money(value),
		Contributions: money(contributed),
		Gains:         money(gains),
		Taxes:         money(taxes),
		AfterTax:      money(afterTax),
		RealValue:     money(realValue),
		Projection:    projection,
	}, nil
}
