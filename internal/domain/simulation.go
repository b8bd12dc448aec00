package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// SimulationParams drives a single asset simulation run
type SimulationParams struct {
	StartAge            int             `json:"start_age"`
	EndAge              int             `json:"end_age"`
	AnnualReturnRate    decimal.Decimal `json:"annual_return_rate"`
	PensionIncreaseRate decimal.Decimal `json:"pension_increase_rate"`
	Strategy            Strategy        `json:"strategy"`
}

// Validate checks the run parameters
func (p SimulationParams) Validate() error {
	if !p.Strategy.IsValid() {
		return newOutOfRange("strategy", string(p.Strategy), "must be early or regular")
	}
	if p.StartAge < 0 {
		return newOutOfRange("start_age", fmt.Sprint(p.StartAge), "cannot be negative")
	}
	if p.EndAge < p.StartAge {
		return newOutOfRange("end_age", fmt.Sprint(p.EndAge), fmt.Sprintf("must be at least start age %d", p.StartAge))
	}
	if p.AnnualReturnRate.IsNegative() {
		return newOutOfRange("annual_return_rate", p.AnnualReturnRate.String(), "cannot be negative")
	}
	if p.PensionIncreaseRate.IsNegative() {
		return newOutOfRange("pension_increase_rate", p.PensionIncreaseRate.String(), "cannot be negative")
	}
	return nil
}

// AgeAssets is the cumulative asset snapshot recorded at the end of an age-year
type AgeAssets struct {
	Age    int             `json:"age"`
	Assets decimal.Decimal `json:"assets"`
}

// AssetSeries is the year-indexed output of one simulation run
type AssetSeries struct {
	Strategy           Strategy        `json:"strategy"`
	StartMonthlyAmount decimal.Decimal `json:"start_monthly_amount"`
	Points             []AgeAssets     `json:"points"`
}

// Len returns the number of recorded ages
func (s AssetSeries) Len() int {
	return len(s.Points)
}

// At returns the assets recorded for age
func (s AssetSeries) At(age int) (decimal.Decimal, bool) {
	if len(s.Points) == 0 {
		return decimal.Zero, false
	}
	// one point per integer age, no gaps
	idx := age - s.Points[0].Age
	if idx < 0 || idx >= len(s.Points) {
		return decimal.Zero, false
	}
	return s.Points[idx].Assets, true
}

// Final returns the last recorded snapshot
func (s AssetSeries) Final() (AgeAssets, bool) {
	if len(s.Points) == 0 {
		return AgeAssets{}, false
	}
	return s.Points[len(s.Points)-1], true
}
