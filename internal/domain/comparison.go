package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Assumptions holds the market and horizon inputs shared by both strategies
type Assumptions struct {
	AnnualReturnRate decimal.Decimal `yaml:"annual_return_rate" json:"annual_return_rate"`
	InvestmentEndAge int             `yaml:"investment_end_age" json:"investment_end_age"`
}

// Validate checks the assumptions against the plan they will be run with
func (a Assumptions) Validate(plan PensionPlan) error {
	if a.AnnualReturnRate.IsNegative() {
		return newOutOfRange("annual_return_rate", a.AnnualReturnRate.String(), "cannot be negative")
	}
	if a.InvestmentEndAge <= plan.RegularStartAge {
		return newOutOfRange("investment_end_age", fmt.Sprint(a.InvestmentEndAge),
			fmt.Sprintf("must be greater than regular start age %d", plan.RegularStartAge))
	}
	return nil
}

// ComparisonRow aligns both strategies at a single age
type ComparisonRow struct {
	Age           int             `json:"age"`
	EarlyAssets   decimal.Decimal `json:"early_assets"`
	RegularAssets decimal.Decimal `json:"regular_assets"`
	Delta         decimal.Decimal `json:"delta"` // early minus regular
}

// RegularLeads reports whether regular claiming has caught up with early claiming at this age
func (r ComparisonRow) RegularLeads() bool {
	return r.Delta.LessThanOrEqual(decimal.Zero)
}

// ComparisonResult is the merged, analyzed outcome of both simulations
type ComparisonResult struct {
	Plan          PensionPlan     `json:"plan"`
	Assumptions   Assumptions     `json:"assumptions"`
	EarlySeries   AssetSeries     `json:"early_series"`
	RegularSeries AssetSeries     `json:"regular_series"`
	Rows          []ComparisonRow `json:"rows"`
	CrossoverAge  *int            `json:"crossover_age"`
}

// HasCrossover reports whether the strategies swap ranking within the horizon
func (r *ComparisonResult) HasCrossover() bool {
	return r.CrossoverAge != nil
}

// Row returns the merged row for age
func (r *ComparisonResult) Row(age int) (ComparisonRow, bool) {
	if len(r.Rows) == 0 {
		return ComparisonRow{}, false
	}
	idx := age - r.Rows[0].Age
	if idx < 0 || idx >= len(r.Rows) {
		return ComparisonRow{}, false
	}
	return r.Rows[idx], true
}

// Ages returns every age covered by the comparison
func (r *ComparisonResult) Ages() []int {
	ages := make([]int, len(r.Rows))
	for i, row := range r.Rows {
		ages[i] = row.Age
	}
	return ages
}

// FinalRow returns the row for the investment end age
func (r *ComparisonResult) FinalRow() (ComparisonRow, bool) {
	if len(r.Rows) == 0 {
		return ComparisonRow{}, false
	}
	return r.Rows[len(r.Rows)-1], true
}
