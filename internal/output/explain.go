package output

import (
	"bytes"
	"fmt"

	"github.com/rgehrsitz/earlypension/internal/calculation"
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/shopspring/decimal"
)

// AgeBreakdown holds every figure needed to show how one age's assets were derived
type AgeBreakdown struct {
	Age           int             `json:"age"`
	EarlyAssets   decimal.Decimal `json:"early_assets"`
	RegularAssets decimal.Decimal `json:"regular_assets"`
	Delta         decimal.Decimal `json:"delta"`

	AnnualReturnRate    decimal.Decimal `json:"annual_return_rate"`
	QuarterlyReturnRate decimal.Decimal `json:"quarterly_return_rate"`
	IncreaseRate        decimal.Decimal `json:"increase_rate"`

	EarlyClaim          bool            `json:"early_claim"`
	ReductionFactor     decimal.Decimal `json:"reduction_factor"`
	EarlyStartAge       int             `json:"early_start_age"`
	EarlyStartMonthly   decimal.Decimal `json:"early_start_monthly"`
	EarlyMonthlyAtAge   decimal.Decimal `json:"early_monthly_at_age"`
	RegularStartAge     int             `json:"regular_start_age"`
	RegularStartMonthly decimal.Decimal `json:"regular_start_monthly"`
	RegularMonthlyAtAge decimal.Decimal `json:"regular_monthly_at_age"`
	RegularStarted      bool            `json:"regular_started"`
}

// Explain collects the breakdown for age, which must lie inside the comparison's rows
func Explain(result *domain.ComparisonResult, age int) (*AgeBreakdown, error) {
	if result == nil {
		return nil, fmt.Errorf("no comparison result to explain")
	}
	row, ok := result.Row(age)
	if !ok {
		first, last := 0, 0
		if n := len(result.Rows); n > 0 {
			first, last = result.Rows[0].Age, result.Rows[n-1].Age
		}
		return nil, fmt.Errorf("%w: age %d is outside the comparison range %d-%d", domain.ErrOutOfRange, age, first, last)
	}

	plan := result.Plan
	earlyStartMonthly := calculation.StartingMonthlyPension(plan, domain.StrategyEarly)
	regularStartMonthly := calculation.StartingMonthlyPension(plan, domain.StrategyRegular)

	return &AgeBreakdown{
		Age:                 age,
		EarlyAssets:         row.EarlyAssets,
		RegularAssets:       row.RegularAssets,
		Delta:               row.Delta,
		AnnualReturnRate:    result.Assumptions.AnnualReturnRate,
		QuarterlyReturnRate: decimal.NewFromFloat(calculation.QuarterlyReturnRate(result.Assumptions.AnnualReturnRate)),
		IncreaseRate:        plan.AnnualIncreaseRate,
		EarlyClaim:          plan.IsEarlyClaim(),
		ReductionFactor:     calculation.ReductionFactor(plan.EarlyYearsBeforeRegular),
		EarlyStartAge:       plan.EarlyStartAge(),
		EarlyStartMonthly:   earlyStartMonthly,
		EarlyMonthlyAtAge:   calculation.AdjustedMonthlyPension(earlyStartMonthly, plan.EarlyStartAge(), age, plan.AnnualIncreaseRate),
		RegularStartAge:     plan.RegularStartAge,
		RegularStartMonthly: regularStartMonthly,
		RegularMonthlyAtAge: calculation.AdjustedMonthlyPension(regularStartMonthly, plan.RegularStartAge, age, plan.AnnualIncreaseRate),
		RegularStarted:      age >= plan.RegularStartAge,
	}, nil
}

// Render writes the step-by-step derivation with the actual numbers substituted
func (b *AgeBreakdown) Render() string {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "Selected age: %d\n", b.Age)
	fmt.Fprintf(&buf, "  Early claiming assets:         %s\n", FormatCurrency(b.EarlyAssets))
	fmt.Fprintf(&buf, "  Regular claiming assets:       %s\n", FormatCurrency(b.RegularAssets))
	fmt.Fprintf(&buf, "  Difference (early - regular):  %s %s\n", FormatSignedAmount(b.Delta), CurrencyCode)
	buf.WriteString("\n")

	returnText := fmt.Sprintf("%s a year (quarterly %s)",
		FormatPercent(b.AnnualReturnRate, 1), FormatPercent(b.QuarterlyReturnRate, 2))

	buf.WriteString("Early claiming\n")
	if b.EarlyClaim {
		fmt.Fprintf(&buf, "  From age %d to %d the reduced pension of %s a month (%s of the full amount)\n",
			b.EarlyStartAge, b.Age, FormatCurrency(b.EarlyStartMonthly), FormatPercent(b.ReductionFactor, 1))
	} else {
		fmt.Fprintf(&buf, "  No early years selected: early claiming starts at %d with the full %s a month\n",
			b.EarlyStartAge, FormatCurrency(b.EarlyStartMonthly))
		fmt.Fprintf(&buf, "  From age %d to %d the pension\n", b.EarlyStartAge, b.Age)
	}
	fmt.Fprintf(&buf, "  rises %s a year and is invested at %s.\n", FormatPercent(b.IncreaseRate, 1), returnText)
	buf.WriteString("  Adjusted monthly pension = starting monthly pension x (1 + increase rate)^(age - early start age)\n")
	fmt.Fprintf(&buf, "                           = %s x (1 + %s)^(%d - %d) = %s\n",
		FormatCurrency(b.EarlyStartMonthly), b.IncreaseRate.StringFixed(4), b.Age, b.EarlyStartAge,
		FormatCurrency(b.EarlyMonthlyAtAge))
	buf.WriteString("\n")

	buf.WriteString("Quarterly compounding\n")
	buf.WriteString("  assets = (assets at end of previous quarter + three months of pension) x (1 + quarterly rate)\n")
	buf.WriteString("  repeated every quarter, so the total accumulates from the first payment.\n")
	buf.WriteString("\n")

	buf.WriteString("Regular claiming\n")
	if !b.RegularStarted {
		fmt.Fprintf(&buf, "  Age %d is before the regular start age (%d), so regular claiming assets are %s.\n",
			b.Age, b.RegularStartAge, FormatCurrency(decimal.Zero))
		return buf.String()
	}
	fmt.Fprintf(&buf, "  From age %d to %d the full pension of %s a month rises %s a year\n",
		b.RegularStartAge, b.Age, FormatCurrency(b.RegularStartMonthly), FormatPercent(b.IncreaseRate, 1))
	fmt.Fprintf(&buf, "  and is invested at %s.\n", returnText)
	buf.WriteString("  Adjusted monthly pension = base monthly pension x (1 + increase rate)^(age - regular start age)\n")
	fmt.Fprintf(&buf, "                           = %s x (1 + %s)^(%d - %d) = %s\n",
		FormatCurrency(b.RegularStartMonthly), b.IncreaseRate.StringFixed(4), b.Age, b.RegularStartAge,
		FormatCurrency(b.RegularMonthlyAtAge))

	return buf.String()
}
