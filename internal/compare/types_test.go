package compare

import (
	"testing"

	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCalculator_CalculateMetrics(t *testing.T) {
	calc := NewMetricsCalculator()
	crossover := 62
	result := &domain.ComparisonResult{
		Plan: domain.PensionPlan{
			BaseMonthlyAmount:       decimal.NewFromInt(1000),
			RegularStartAge:         61,
			EarlyYearsBeforeRegular: 1,
		},
		Rows: []domain.ComparisonRow{
			{Age: 60, EarlyAssets: decimal.NewFromInt(100), Delta: decimal.NewFromInt(100)},
			{Age: 61, EarlyAssets: decimal.NewFromInt(200), RegularAssets: decimal.NewFromInt(60), Delta: decimal.NewFromInt(140)},
			{Age: 62, EarlyAssets: decimal.NewFromInt(300), RegularAssets: decimal.NewFromInt(320), Delta: decimal.NewFromInt(-20)},
		},
		CrossoverAge: &crossover,
	}

	m := calc.CalculateMetrics(result)

	assert.Equal(t, 60, m.EarlyStartAge)
	assert.Equal(t, 61, m.RegularStartAge)
	assert.True(t, m.ReductionFactor.Equal(decimal.NewFromFloat(0.94)))
	assert.True(t, m.EarlyStartMonthly.Equal(decimal.NewFromInt(940)))
	assert.True(t, m.RegularStartMonthly.Equal(decimal.NewFromInt(1000)))
	assert.Equal(t, 62, m.FinalAge)
	assert.True(t, m.FinalDelta.Equal(decimal.NewFromInt(-20)))
	assert.Equal(t, domain.StrategyRegular, m.LeaderAtEnd)
	assert.True(t, m.MaxEarlyLead.Equal(decimal.NewFromInt(140)))
	assert.Equal(t, 61, m.MaxEarlyLeadAge)
	require.NotNil(t, m.CrossoverAge)
	assert.Equal(t, 62, *m.CrossoverAge)
}

func TestMetricsCalculator_EarlyNeverLeads(t *testing.T) {
	result := &domain.ComparisonResult{
		Plan: domain.PensionPlan{BaseMonthlyAmount: decimal.NewFromInt(1), RegularStartAge: 65},
		Rows: []domain.ComparisonRow{
			{Age: 65, Delta: decimal.Zero},
			{Age: 66, Delta: decimal.NewFromInt(-1)},
		},
	}

	m := NewMetricsCalculator().CalculateMetrics(result)

	assert.True(t, m.MaxEarlyLead.IsZero())
	assert.Equal(t, 0, m.MaxEarlyLeadAge)
	assert.Nil(t, m.CrossoverAge)
}

func TestGenerateRecommendations(t *testing.T) {
	crossover := 96
	compSet := &ComparisonSet{
		Comparisons: []ScenarioComparison{
			{
				ScenarioName: "short",
				Metrics: ComparisonMetrics{
					EarlyStartAge:   60,
					RegularStartAge: 65,
					FinalAge:        80,
					FinalDelta:      decimal.NewFromInt(47975220),
					LeaderAtEnd:     domain.StrategyEarly,
				},
			},
			{
				ScenarioName: "long",
				Metrics: ComparisonMetrics{
					EarlyStartAge:   60,
					RegularStartAge: 65,
					FinalAge:        100,
					FinalDelta:      decimal.NewFromInt(-32618978),
					LeaderAtEnd:     domain.StrategyRegular,
					CrossoverAge:    &crossover,
				},
			},
		},
	}

	recs := GenerateRecommendations(compSet)

	assert.Equal(t, []string{
		"short: early claiming at 60 ends ahead by 47975220 at age 80",
		"short: no crossover before age 80",
		"long: regular claiming at 65 ends ahead by 32618978 at age 100",
		"long: the strategies cross over at age 96",
		"Strongest case for early claiming: short",
	}, recs)
}

func TestGenerateRecommendations_Empty(t *testing.T) {
	assert.Empty(t, GenerateRecommendations(&ComparisonSet{}))
}

func TestGenerateRecommendations_Level(t *testing.T) {
	compSet := &ComparisonSet{
		Comparisons: []ScenarioComparison{
			{ScenarioName: "same", Metrics: ComparisonMetrics{FinalAge: 80, FinalDelta: decimal.Zero, LeaderAtEnd: domain.StrategyRegular}},
		},
	}

	recs := GenerateRecommendations(compSet)

	require.Len(t, recs, 2)
	assert.Equal(t, "same: both strategies end level at age 80", recs[0])
}
