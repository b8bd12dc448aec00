package compare

import (
	"fmt"

	"github.com/rgehrsitz/earlypension/internal/calculation"
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/shopspring/decimal"
)

// ScenarioComparison represents a single scenario comparison with calculated metrics
type ScenarioComparison struct {
	ScenarioName string                   `json:"scenario_name"`
	Result       *domain.ComparisonResult `json:"result"`
	Metrics      ComparisonMetrics        `json:"metrics"`
}

// ComparisonMetrics summarizes a comparison for headers, cards and recommendations
type ComparisonMetrics struct {
	EarlyStartAge       int             `json:"early_start_age"`
	RegularStartAge     int             `json:"regular_start_age"`
	ReductionFactor     decimal.Decimal `json:"reduction_factor"`
	EarlyStartMonthly   decimal.Decimal `json:"early_start_monthly"`
	RegularStartMonthly decimal.Decimal `json:"regular_start_monthly"`

	FinalAge     int             `json:"final_age"`
	FinalEarly   decimal.Decimal `json:"final_early"`
	FinalRegular decimal.Decimal `json:"final_regular"`
	FinalDelta   decimal.Decimal `json:"final_delta"`
	LeaderAtEnd  domain.Strategy `json:"leader_at_end"`

	// Largest positive delta over the horizon; zero when early never leads
	MaxEarlyLead    decimal.Decimal `json:"max_early_lead"`
	MaxEarlyLeadAge int             `json:"max_early_lead_age,omitempty"`

	CrossoverAge *int `json:"crossover_age"`
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	ConfigPath      string               `json:"config_path,omitempty"`
	Comparisons     []ScenarioComparison `json:"comparisons"`
	Recommendations []string             `json:"recommendations"`
}

// MetricsCalculator extracts key metrics from comparison results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes all summary metrics for a comparison result
func (mc *MetricsCalculator) CalculateMetrics(result *domain.ComparisonResult) ComparisonMetrics {
	plan := result.Plan
	metrics := ComparisonMetrics{
		EarlyStartAge:       plan.EarlyStartAge(),
		RegularStartAge:     plan.RegularStartAge,
		ReductionFactor:     calculation.ReductionFactor(plan.EarlyYearsBeforeRegular),
		EarlyStartMonthly:   calculation.StartingMonthlyPension(plan, domain.StrategyEarly),
		RegularStartMonthly: calculation.StartingMonthlyPension(plan, domain.StrategyRegular),
		MaxEarlyLead:        decimal.Zero,
		CrossoverAge:        result.CrossoverAge,
	}

	if final, ok := result.FinalRow(); ok {
		metrics.FinalAge = final.Age
		metrics.FinalEarly = final.EarlyAssets
		metrics.FinalRegular = final.RegularAssets
		metrics.FinalDelta = final.Delta
		metrics.LeaderAtEnd = leader(final)
	}

	for _, row := range result.Rows {
		if row.Delta.GreaterThan(metrics.MaxEarlyLead) {
			metrics.MaxEarlyLead = row.Delta
			metrics.MaxEarlyLeadAge = row.Age
		}
	}

	return metrics
}

// leader names the strategy ahead at a row; a tie goes to regular, matching the highlight rule
func leader(row domain.ComparisonRow) domain.Strategy {
	if row.RegularLeads() {
		return domain.StrategyRegular
	}
	return domain.StrategyEarly
}

// GenerateRecommendations creates plain-language findings for each comparison
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	for _, comp := range compSet.Comparisons {
		m := comp.Metrics
		if m.FinalAge == 0 {
			continue
		}

		switch {
		case m.FinalDelta.IsZero():
			recommendations = append(recommendations,
				fmt.Sprintf("%s: both strategies end level at age %d", comp.ScenarioName, m.FinalAge))
		case m.LeaderAtEnd == domain.StrategyEarly:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: early claiming at %d ends ahead by %s at age %d",
					comp.ScenarioName, m.EarlyStartAge, m.FinalDelta.StringFixed(0), m.FinalAge))
		default:
			recommendations = append(recommendations,
				fmt.Sprintf("%s: regular claiming at %d ends ahead by %s at age %d",
					comp.ScenarioName, m.RegularStartAge, m.FinalDelta.Neg().StringFixed(0), m.FinalAge))
		}

		if m.CrossoverAge != nil {
			recommendations = append(recommendations,
				fmt.Sprintf("%s: the strategies cross over at age %d", comp.ScenarioName, *m.CrossoverAge))
		} else {
			recommendations = append(recommendations,
				fmt.Sprintf("%s: no crossover before age %d", comp.ScenarioName, m.FinalAge))
		}
	}

	// Across scenarios, point out the one where early claiming holds up best
	if len(compSet.Comparisons) > 1 {
		best := -1
		for i, comp := range compSet.Comparisons {
			if comp.Metrics.FinalAge == 0 {
				continue
			}
			if best < 0 || comp.Metrics.FinalDelta.GreaterThan(compSet.Comparisons[best].Metrics.FinalDelta) {
				best = i
			}
		}
		if best >= 0 {
			recommendations = append(recommendations,
				fmt.Sprintf("Strongest case for early claiming: %s", compSet.Comparisons[best].ScenarioName))
		}
	}

	return recommendations
}
