package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, name string, got decimal.Decimal, want string) {
	t.Helper()
	if !got.Equal(d(want)) {
		t.Fatalf("%s = %s, want %s", name, got.StringFixed(2), want)
	}
}

func TestMonthlyPayment(t *testing.T) {
	tests := []struct {
		name      string
		principal string
		rate      string
		years     int
		want      string
	}{
		{name: "thirty year at six percent", principal: "200000", rate: "6", years: 30, want: "1199.10"},
		{name: "zero rate", principal: "120000", rate: "0", years: 10, want: "1000.00"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := MonthlyPayment(d(tc.principal), d(tc.rate), tc.years)
			if err != nil {
				t.Fatalf("monthly payment: %v", err)
			}
			assertMoney(t, "payment", got, tc.want)
		})
	}
}

func TestAmortize(t *testing.T) {
	rows, err := Amortize(d("200000"), d("6"), 30)
	if err != nil {
		t.Fatalf("amortize: %v", err)
	}
	if len(rows) != 360 {
		t.Fatalf("rows = %d, want 360", len(rows))
	}

	first := rows[0]
	assertMoney(t, "first interest", first.Interest, "1000.00")
	assertMoney(t, "first principal", first.Principal, "199.10")

	last := rows[len(rows)-1]
	assertMoney(t, "final balance", last.Balance, "0.00")

	for i := 1; i < len(rows); i++ {
		if rows[i].Interest.GreaterThan(rows[i-1].Interest) {
			t.Fatalf("interest grew in month %d", rows[i].Month)
		}
	}
}

func TestMortgageQuote(t *testing.T) {
	t.Run("twenty percent down has no pmi", func(t *testing.T) {
		q, err := MortgageQuote(MortgageInput{
			HomePrice:      d("250000"),
			DownPaymentPct: d("20"),
			RatePct:        d("6"),
			Years:          30,
			PropertyTax:    d("1200"),
			Insurance:      d("600"),
			PMIRate:        d("0.5"),
			HOA:            d("50"),
		})
		if err != nil {
			t.Fatalf("quote: %v", err)
		}
		assertMoney(t, "loan", q.Loan, "200000.00")
		assertMoney(t, "down payment", q.DownPayment, "50000.00")
		assertMoney(t, "payment", q.Payment, "1199.10")
		assertMoney(t, "pmi", q.PMI, "0.00")
		assertMoney(t, "total monthly", q.TotalMonthly, "1399.10")
	})

	t.Run("ten percent down adds pmi", func(t *testing.T) {
		q, err := MortgageQuote(MortgageInput{
			HomePrice:      d("100000"),
			DownPaymentPct: d("10"),
			RatePct:        d("0"),
			Years:          10,
			PMIRate:        d("1.2"),
		})
		if err != nil {
			t.Fatalf("quote: %v", err)
		}
		assertMoney(t, "loan", q.Loan, "90000.00")
		assertMoney(t, "payment", q.Payment, "750.00")
		assertMoney(t, "pmi", q.PMI, "90.00")
		assertMoney(t, "total monthly", q.TotalMonthly, "840.00")
		assertMoney(t, "total interest", q.TotalInterest, "0.00")
	})
}

func TestProjectInvestment(t *testing.T) {
	t.Run("monthly compounding and tax on gains", func(t *testing.T) {
		res, err := ProjectInvestment(InvestmentInput{
			Initial:      d("1000"),
			Years:        1,
			AnnualReturn: d("12"),
			TaxRate:      d("20"),
		})
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		assertMoney(t, "future value", res.FutureValue, "1126.83")
		assertMoney(t, "gains", res.Gains, "126.83")
		assertMoney(t, "after tax", res.AfterTax, "1101.46")
		assertMoney(t, "real value", res.RealValue, "1101.46")
	})

	t.Run("contribution steps up yearly", func(t *testing.T) {
		res, err := ProjectInvestment(InvestmentInput{
			Monthly:              d("100"),
			Years:                2,
			ContributionIncrease: d("10"),
		})
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		if len(res.Projection) != 2 {
			t.Fatalf("projection years = %d, want 2", len(res.Projection))
		}
		assertMoney(t, "year one contributions", res.Projection[0].Contributions, "1200.00")
		assertMoney(t, "total contributions", res.Contributions, "2520.00")
		assertMoney(t, "future value", res.FutureValue, "2520.00")
	})

	t.Run("inflation lowers real value", func(t *testing.T) {
		res, err := ProjectInvestment(InvestmentInput{
			Initial:   d("1100"),
			Years:     1,
			Inflation: d("10"),
		})
		if err != nil {
			t.Fatalf("project: %v", err)
		}
		assertMoney(t, "real value", res.RealValue, "1000.00")
	})
}

func TestPlanRetirement(t *testing.T) {
	t.Run("short of target", func(t *testing.T) {
		res, err := PlanRetirement(RetirementInput{
			CurrentAge:         55,
			RetirementAge:      65,
			LifeExpectancy:     85,
			AnnualContribution: d("1000"),
			DesiredIncome:      d("40000"),
		})
		if err != nil {
			t.Fatalf("plan: %v", err)
		}
		assertMoney(t, "future savings", res.FutureSavings, "10000.00")
		assertMoney(t, "required", res.RequiredSavings, "1000000.00")
		assertMoney(t, "gap", res.Gap, "990000.00")
		if !res.Readiness.Equal(d("1")) || res.OnTrack {
			t.Fatalf("readiness = %s, on track = %v", res.Readiness, res.OnTrack)
		}
		if len(res.Projection) != 11 {
			t.Fatalf("projection = %d points, want 11", len(res.Projection))
		}
	})

	t.Run("readiness is clamped", func(t *testing.T) {
		res, err := PlanRetirement(RetirementInput{
			CurrentAge:     64,
			RetirementAge:  65,
			LifeExpectancy: 65,
			Savings:        d("100000"),
			Return:         d("10"),
			DesiredIncome:  d("4000"),
		})
		if err != nil {
			t.Fatalf("plan: %v", err)
		}
		assertMoney(t, "future savings", res.FutureSavings, "110000.00")
		if !res.Readiness.Equal(d("100")) || !res.OnTrack {
			t.Fatalf("readiness = %s, on track = %v", res.Readiness, res.OnTrack)
		}
	})

	t.Run("income inflates over retirement", func(t *testing.T) {
		res, err := PlanRetirement(RetirementInput{
			CurrentAge:     60,
			RetirementAge:  61,
			LifeExpectancy: 63,
			DesiredIncome:  d("1000"),
			Inflation:      d("10"),
		})
		if err != nil {
			t.Fatalf("plan: %v", err)
		}
		assertMoney(t, "required", res.RequiredSavings, "30250.00")
	})
}

func TestInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		run  func() error
	}{
		{"zero principal", func() error { _, err := MonthlyPayment(decimal.Zero, d("5"), 30); return err }},
		{"zero term", func() error { _, err := Amortize(d("1000"), d("5"), 0); return err }},
		{"negative rate", func() error { _, err := MonthlyPayment(d("1000"), d("-1"), 30); return err }},
		{"full down payment", func() error {
			_, err := MortgageQuote(MortgageInput{HomePrice: d("1000"), DownPaymentPct: d("100"), Years: 30})
			return err
		}},
		{"too many years", func() error { _, err := ProjectInvestment(InvestmentInput{Years: 51}); return err }},
		{"tax over 100", func() error { _, err := ProjectInvestment(InvestmentInput{Years: 1, TaxRate: d("101")}); return err }},
		{"retire before now", func() error {
			_, err := PlanRetirement(RetirementInput{CurrentAge: 40, RetirementAge: 40, LifeExpectancy: 80})
			return err
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want %v", err, ErrInvalidInput)
			}
		})
	}
}
