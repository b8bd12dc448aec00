package calculation

import (
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/shopspring/decimal"
)

var (
	one    = decimal.NewFromInt(1)
	twelve = decimal.NewFromInt(12)
)

// ReductionFactor returns the multiplier applied to the base pension when claiming
// yearsEarly years before the regular age: 1 - 0.06 * yearsEarly.
// Callers validate the 0..5 range; the formula itself is total.
func ReductionFactor(yearsEarly int) decimal.Decimal {
	return one.Sub(domain.EarlyClaimPenaltyPerYear.Mul(decimal.NewFromInt(int64(yearsEarly))))
}

// AdjustedMonthlyPension returns the monthly pension payable at currentAge when payments
// began at startAge with baseMonthly and rise by increaseRate each year.
// Nothing is payable before startAge. The result is not rounded.
func AdjustedMonthlyPension(baseMonthly decimal.Decimal, startAge, currentAge int, increaseRate decimal.Decimal) decimal.Decimal {
	if currentAge < startAge {
		return decimal.Zero
	}
	yearsSinceStart := decimal.NewFromInt(int64(currentAge - startAge))
	return baseMonthly.Mul(one.Add(increaseRate).Pow(yearsSinceStart))
}

// AnnualPension is AdjustedMonthlyPension for a full age-year
func AnnualPension(baseMonthly decimal.Decimal, startAge, currentAge int, increaseRate decimal.Decimal) decimal.Decimal {
	return AdjustedMonthlyPension(baseMonthly, startAge, currentAge, increaseRate).Mul(twelve)
}

// StartingMonthlyPension returns the monthly amount paid in the first year of the strategy.
// Each strategy compounds its increases off this amount, not off a shared base.
func StartingMonthlyPension(plan domain.PensionPlan, strategy domain.Strategy) decimal.Decimal {
	if strategy == domain.StrategyEarly {
		return plan.BaseMonthlyAmount.Mul(ReductionFactor(plan.EarlyYearsBeforeRegular))
	}
	return plan.BaseMonthlyAmount
}
