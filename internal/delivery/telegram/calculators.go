package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aliskhannn/finance-trivia-bot/internal/calculator"
	"github.com/aliskhannn/finance-trivia-bot/internal/domain/entities"
)

var errBadArgs = errors.New("bad command arguments")

// Assumptions for the short command forms.
var (
	defaultInflation      = decimal.NewFromInt(3)
	defaultLifeExpectancy = 90
	defaultPMIRate        = decimal.RequireFromString("0.5")
)

// commandArgs splits command arguments. Thousands separators and a
// trailing percent sign are accepted.
type commandArgs []string

func parseArgs(s string, want int) (commandArgs, error) {
	fields := strings.Fields(s)
	if len(fields) != want {
		return nil, errBadArgs
	}
	for i, f := range fields {
		fields[i] = strings.TrimSuffix(strings.ReplaceAll(f, ",", ""), "%")
	}
	return fields, nil
}

func (a commandArgs) dec(i int) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(a[i])
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", errBadArgs, a[i])
	}
	return d, nil
}

func (a commandArgs) integer(i int) (int, error) {
	n, err := strconv.Atoi(a[i])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errBadArgs, a[i])
	}
	return n, nil
}

// parseMortgage reads "PRICE DOWN% RATE% YEARS".
func parseMortgage(s string) (calculator.MortgageInput, error) {
	a, err := parseArgs(s, 4)
	if err != nil {
		return calculator.MortgageInput{}, err
	}

	in := calculator.MortgageInput{PMIRate: defaultPMIRate}
	if in.HomePrice, err = a.dec(0); err != nil {
		return in, err
	}
	if in.DownPaymentPct, err = a.dec(1); err != nil {
		return in, err
	}
	if in.RatePct, err = a.dec(2); err != nil {
		return in, err
	}
	in.Years, err = a.integer(3)
	return in, err
}

// parseInvestment reads "INITIAL MONTHLY RATE% YEARS".
func parseInvestment(s string) (calculator.InvestmentInput, error) {
	a, err := parseArgs(s, 4)
	if err != nil {
		return calculator.InvestmentInput{}, err
	}

	in := calculator.InvestmentInput{Inflation: defaultInflation}
	if in.Initial, err = a.dec(0); err != nil {
		return in, err
	}
	if in.Monthly, err = a.dec(1); err != nil {
		return in, err
	}
	if in.AnnualReturn, err = a.dec(2); err != nil {
		return in, err
	}
	in.Years, err = a.integer(3)
	return in, err
}

// parseRetirement reads "AGE RETIRE_AT SAVINGS ANNUAL RATE% INCOME".
func parseRetirement(s string) (calculator.RetirementInput, error) {
	a, err := parseArgs(s, 6)
	if err != nil {
		return calculator.RetirementInput{}, err
	}

	in := calculator.RetirementInput{
		LifeExpectancy: defaultLifeExpectancy,
		Inflation:      defaultInflation,
	}
	if in.CurrentAge, err = a.integer(0); err != nil {
		return in, err
	}
	if in.RetirementAge, err = a.integer(1); err != nil {
		return in, err
	}
	if in.Savings, err = a.dec(2); err != nil {
		return in, err
	}
	if in.AnnualContribution, err = a.dec(3); err != nil {
		return in, err
	}
	if in.Return, err = a.dec(4); err != nil {
		return in, err
	}
	in.DesiredIncome, err = a.dec(5)
	return in, err
}

// calcHandler parses args, runs a calculator and renders its result.
// Bad arguments get the usage line, invalid values get a hint.
func calcHandler[In, Out any](
	h *Handler,
	args, usageID string,
	parse func(string) (In, error),
	run func(In) (Out, error),
	render func(entities.Language, Out) string,
) HandlerFunc {
	return func(ctx context.Context, chatID int64) error {
		lang := h.quiz.Language(playerID(chatID))

		in, err := parse(args)
		if err != nil {
			h.send(newHTMLMessage(chatID, h.tr.T(lang, usageID, nil)))
			return nil
		}

		out, err := run(in)
		if errors.Is(err, calculator.ErrInvalidInput) {
			h.send(newHTMLMessage(chatID, h.tr.T(lang, "calc_invalid", nil)+"\n"+h.tr.T(lang, usageID, nil)))
			return nil
		}
		if err != nil {
			return err
		}

		h.send(newHTMLMessage(chatID, render(lang, out)))
		return nil
	}
}

func (h *Handler) mortgageHandler(args string) HandlerFunc {
	return calcHandler(h, args, "calc_usage_mortgage", parseMortgage, calculator.MortgageQuote, h.formatMortgage)
}

func (h *Handler) investHandler(args string) HandlerFunc {
	return calcHandler(h, args, "calc_usage_invest", parseInvestment, calculator.ProjectInvestment, h.formatInvestment)
}

func (h *Handler) retireHandler(args string) HandlerFunc {
	return calcHandler(h, args, "calc_usage_retire", parseRetirement, calculator.PlanRetirement, h.formatRetirement)
}

func (h *Handler) formatMortgage(lang entities.Language, r *calculator.MortgageResult) string {
	return h.tr.T(lang, "mortgage_result", map[string]any{
		"Loan":     formatMoney(r.Loan),
		"Payment":  formatMoney(r.Payment),
		"PMI":      formatMoney(r.PMI),
		"Total":    formatMoney(r.TotalMonthly),
		"Interest": formatMoney(r.TotalInterest),
	})
}

func (h *Handler) formatInvestment(lang entities.Language, r *calculator.InvestmentResult) string {
	return h.tr.T(lang, "invest_result", map[string]any{
		"Final":         formatMoney(r.FutureValue),
		"Contributions": formatMoney(r.Contributions),
		"Gains":         formatMoney(r.Gains),
	})
}

func (h *Handler) formatRetirement(lang entities.Language, r *calculator.RetirementResult) string {
	return h.tr.T(lang, "retire_result", map[string]any{
		"Future":   formatMoney(r.FutureSavings),
		"Required": formatMoney(r.RequiredSavings),
		"Gap":      formatMoney(r.Gap),
		"Score":    r.Readiness.StringFixed(1),
	})
}

// formatMoney renders d with two decimals and comma thousands separators.
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	return sign + "$" + b.String() + "." + frac
}
