package compare

import (
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/shopspring/decimal"
)

// Merge aligns both series on every age from fromAge to toAge inclusive.
// An age missing from a series counts as zero assets, which is how the years
// before the regular pension starts show up on the regular side.
func Merge(early, regular domain.AssetSeries, fromAge, toAge int) []domain.ComparisonRow {
	if toAge < fromAge {
		return nil
	}

	rows := make([]domain.ComparisonRow, 0, toAge-fromAge+1)
	for age := fromAge; age <= toAge; age++ {
		earlyAssets, ok := early.At(age)
		if !ok {
			earlyAssets = decimal.Zero
		}
		regularAssets, ok := regular.At(age)
		if !ok {
			regularAssets = decimal.Zero
		}
		rows = append(rows, domain.ComparisonRow{
			Age:           age,
			EarlyAssets:   earlyAssets,
			RegularAssets: regularAssets,
			Delta:         earlyAssets.Sub(regularAssets),
		})
	}
	return rows
}

// DetectCrossover returns the first age at which the delta changes sign.
//
// A move from positive to zero-or-negative counts, as does a move from negative
// to zero-or-positive. A row whose predecessor is exactly zero never triggers,
// so a run that starts tied is only reported once the sign actually flips.
func DetectCrossover(rows []domain.ComparisonRow) (int, bool) {
	for i := 1; i < len(rows); i++ {
		prev, curr := rows[i-1].Delta, rows[i].Delta
		if prev.IsPositive() && !curr.IsPositive() {
			return rows[i].Age, true
		}
		if prev.IsNegative() && !curr.IsNegative() {
			return rows[i].Age, true
		}
	}
	return 0, false
}

// Aggregate merges both series over the early start age through the
// investment end age and locates the crossover.
func Aggregate(plan domain.PensionPlan, assumptions domain.Assumptions, early, regular domain.AssetSeries) domain.ComparisonResult {
	rows := Merge(early, regular, plan.EarlyStartAge(), assumptions.InvestmentEndAge)

	result := domain.ComparisonResult{
		Plan:          plan,
		Assumptions:   assumptions,
		EarlySeries:   early,
		RegularSeries: regular,
		Rows:          rows,
	}
	if age, ok := DetectCrossover(rows); ok {
		result.CrossoverAge = &age
	}
	return result
}
