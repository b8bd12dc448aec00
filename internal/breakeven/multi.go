package breakeven

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/rgehrsitz/earlypension/internal/output"
)

// SolveAll searches every target for one scenario. Targets without a break-even
// in their default interval are reported as failures rather than errors.
func (s *Solver) SolveAll(ctx context.Context, scenario domain.Scenario) (*MultiResult, error) {
	multi := &MultiResult{ScenarioName: scenario.Name}

	for _, target := range AllTargets {
		result, err := s.Solve(ctx, Request{Scenario: scenario, Target: target})
		if err != nil {
			if errors.Is(err, ErrNoBreakEven) {
				multi.Failures = append(multi.Failures, err.Error())
				continue
			}
			return nil, err
		}
		multi.Results = append(multi.Results, *result)
	}

	multi.Recommendations = generateRecommendations(multi)
	return multi, nil
}

func generateRecommendations(multi *MultiResult) []string {
	recommendations := []string{}

	for _, res := range multi.Results {
		favoured, other := "regular", "early"
		if res.EarlyAheadAbove {
			favoured, other = "early", "regular"
		}
		rec := fmt.Sprintf("%s above %s favors %s claiming at age %d; below it %s claiming ends ahead",
			res.Target.Label(), output.FormatPercent(res.Rate, 2), favoured, res.EndAge, other)
		recommendations = append(recommendations, rec)

		assumedAbove := res.BaseRate.GreaterThan(res.Rate)
		margin := res.BaseRate.Sub(res.Rate).Abs()
		recommendations = append(recommendations,
			fmt.Sprintf("The assumed %s of %s is %s percentage points %s the break-even",
				strings.ToLower(res.Target.Label()), output.FormatPercent(res.BaseRate, 2),
				margin.Shift(2).StringFixed(2), aboveOrBelow(assumedAbove)))
	}

	if len(multi.Results) == 0 {
		recommendations = append(recommendations,
			fmt.Sprintf("%s: no rate in the searched ranges changes which strategy ends ahead", multi.ScenarioName))
	}
	return recommendations
}

func aboveOrBelow(above bool) string {
	if above {
		return "above"
	}
	return "below"
}
