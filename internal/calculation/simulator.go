package calculation

import (
	"math"

	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/shopspring/decimal"
)

// QuartersPerYear is the number of compounding periods in an age-year
const QuartersPerYear = 4

// QuarterlyReturnRate converts an annual return into the equivalent quarterly rate,
// (1 + annual)^(1/4) - 1, so that four quarters compound back to the annual figure exactly.
func QuarterlyReturnRate(annualReturnRate decimal.Decimal) float64 {
	return math.Pow(1+annualReturnRate.InexactFloat64(), 1.0/QuartersPerYear) - 1
}

// Simulate projects the cumulative assets built by investing a pension stream.
//
// The stream pays pensionSourceAmount per month from pensionSourceStartAge, rising by
// params.PensionIncreaseRate each age-year. For every age from params.StartAge to
// params.EndAge the annual pension is spread flat over the year and deposited in
// quarterly lumps of three months, each followed by one quarter of growth. Capital starts
// at zero and is carried at full precision; only the recorded snapshot is rounded to the
// whole currency unit (round half to even).
func Simulate(params domain.SimulationParams, pensionSourceAmount decimal.Decimal, pensionSourceStartAge int) domain.AssetSeries {
	series := domain.AssetSeries{
		Strategy:           params.Strategy,
		StartMonthlyAmount: pensionSourceAmount,
	}
	if params.EndAge < params.StartAge {
		return series
	}

	growth := 1 + QuarterlyReturnRate(params.AnnualReturnRate)
	series.Points = make([]domain.AgeAssets, 0, params.EndAge-params.StartAge+1)

	capital := 0.0
	for age := params.StartAge; age <= params.EndAge; age++ {
		monthly := AdjustedMonthlyPension(pensionSourceAmount, pensionSourceStartAge, age, params.PensionIncreaseRate).InexactFloat64()

		for q := 0; q < QuartersPerYear; q++ {
			capital += monthly * 3
			capital *= growth
		}

		series.Points = append(series.Points, domain.AgeAssets{
			Age:    age,
			Assets: decimal.NewFromFloat(capital).RoundBank(0),
		})
	}

	return series
}

// SimulateStrategy runs Simulate for one claiming strategy of plan
func SimulateStrategy(plan domain.PensionPlan, assumptions domain.Assumptions, strategy domain.Strategy) domain.AssetSeries {
	startAge := plan.StartAge(strategy)
	params := domain.SimulationParams{
		StartAge:            startAge,
		EndAge:              assumptions.InvestmentEndAge,
		AnnualReturnRate:    assumptions.AnnualReturnRate,
		PensionIncreaseRate: plan.AnnualIncreaseRate,
		Strategy:            strategy,
	}
	return Simulate(params, StartingMonthlyPension(plan, strategy), startAge)
}
