package calculator

import (
	"github.com/shopspring/decimal"
)

// pmiThreshold is the down payment percentage below which PMI is charged.
var pmiThreshold = decimal.NewFromInt(20)

type MortgageInput struct {
	HomePrice      decimal.Decimal `json:"home_price"`
	DownPaymentPct decimal.Decimal `json:"down_payment_pct"`
	RatePct        decimal.Decimal `json:"rate_pct"`
	Years          int             `json:"years"`
	PropertyTax    decimal.Decimal `json:"property_tax"` // annual
	Insurance      decimal.Decimal `json:"insurance"`    // annual
	PMIRate        decimal.Decimal `json:"pmi_rate"`     // annual percentage of the loan
	HOA            decimal.Decimal `json:"hoa"`          // monthly
}

type MortgageResult struct {
	Loan          decimal.Decimal `json:"loan"`
	DownPayment   decimal.Decimal `json:"down_payment"`
	Payment       decimal.Decimal `json:"payment"`
	PMI           decimal.Decimal `json:"pmi"`
	PropertyTax   decimal.Decimal `json:"property_tax"`
	Insurance     decimal.Decimal `json:"insurance"`
	HOA           decimal.Decimal `json:"hoa"`
	TotalMonthly  decimal.Decimal `json:"total_monthly"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
}

// AmortizationRow is one month of a repayment schedule.
type AmortizationRow struct {
	Month     int             `json:"month"`
	Payment   decimal.Decimal `json:"payment"`
	Principal decimal.Decimal `json:"principal"`
	Interest  decimal.Decimal `json:"interest"`
	Balance   decimal.Decimal `json:"balance"`
}

func validateLoan(principal, ratePct decimal.Decimal, years int) error {
	if !principal.IsPositive() {
		return invalid("principal must be positive")
	}
	if years < 1 {
		return invalid("term must be at least one year")
	}
	return requireNonNegative("rate", ratePct)
}

// monthlyPayment returns the unrounded level payment.
func monthlyPayment(principal, ratePct decimal.Decimal, years int) decimal.Decimal {
	n := years * 12
	r := rate(ratePct, 12)
	if r.IsZero() {
		return principal.Div(decimal.NewFromInt(int64(n))).Round(workPlaces)
	}

	f := pow(one.Add(r), n)
	return principal.Mul(r).Mul(f).Div(f.Sub(one)).Round(workPlaces)
}

// MonthlyPayment returns the principal and interest payment of a fixed-rate loan.
func MonthlyPayment(principal, ratePct decimal.Decimal, years int) (decimal.Decimal, error) {
	if err := validateLoan(principal, ratePct, years); err != nil {
		return decimal.Zero, err
	}
	return money(monthlyPayment(principal, ratePct, years)), nil
}

// Amortize returns the full monthly schedule of a fixed-rate loan.
func Amortize(principal, ratePct decimal.Decimal, years int) ([]AmortizationRow, error) {
	if err := validateLoan(principal, ratePct, years); err != nil {
		return nil, err
	}

	payment := monthlyPayment(principal, ratePct, years)
	r := rate(ratePct, 12)
	balance := principal

	rows := make([]AmortizationRow, 0, years*12)
	for month := 1; month <= years*12; month++ {
		interest := balance.Mul(r).Round(workPlaces)
		part := payment.Sub(interest)
		balance = balance.Sub(part)

		rows = append(rows, AmortizationRow{
			Month:     month,
			Payment:   money(payment),
			Principal: money(part),
			Interest:  money(interest),
			Balance:   money(decimal.Max(balance, decimal.Zero)),
		})
	}

	return rows, nil
}

// MortgageQuote prices a home purchase: loan, level payment, escrow items,
// PMI when the down payment is under 20% and the lifetime interest.
func MortgageQuote(in MortgageInput) (*MortgageResult, error) {
	if !in.HomePrice.IsPositive() {
		return nil, invalid("home price must be positive")
	}
	if err := requirePercent("down payment", in.DownPaymentPct); err != nil {
		return nil, err
	}
	for name, v := range map[string]decimal.Decimal{
		"property tax": in.PropertyTax,
		"insurance":    in.Insurance,
		"pmi rate":     in.PMIRate,
		"hoa":          in.HOA,
	} {
		if err := requireNonNegative(name, v); err != nil {
			return nil, err
		}
	}

	loan := in.HomePrice.Mul(one.Sub(rate(in.DownPaymentPct, 1)))
	if err := validateLoan(loan, in.RatePct, in.Years); err != nil {
		return nil, err
	}

	payment := monthlyPayment(loan, in.RatePct, in.Years)

	pmi := decimal.Zero
	if in.DownPaymentPct.LessThan(pmiThreshold) {
		pmi = loan.Mul(rate(in.PMIRate, 1)).Div(twelve)
	}
	tax := in.PropertyTax.Div(twelve)
	insurance := in.Insurance.Div(twelve)

	months := decimal.NewFromInt(int64(in.Years * 12))
	totalPaid := payment.Mul(months)

	return &MortgageResult{
		Loan:          money(loan),
		DownPayment:   money(in.HomePrice.Sub(loan)),
		Payment:       money(payment),
		PMI:           money(pmi),
		PropertyTax:   money(tax),
		Insurance:     money(insurance),
		HOA:           money(in.HOA),
		TotalMonthly:  money(payment.Add(pmi).Add(tax).Add(insurance).Add(in.HOA)),
		TotalInterest: money(totalPaid.Sub(loan)),
		TotalPaid:     money(totalPaid),
	}, nil
}
