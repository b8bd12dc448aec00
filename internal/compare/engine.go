package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/earlypension/internal/calculation"
	"github.com/rgehrsitz/earlypension/internal/domain"
)

// CompareEngine orchestrates scenario comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	if calcEngine == nil {
		calcEngine = calculation.NewCalculationEngine()
	}
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareError reports a failure while orchestrating a comparison
type CompareError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *CompareError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *CompareError) Unwrap() error {
	return e.Cause
}

// Run projects both strategies for plan and assumptions and merges them.
// Inputs are validated first; nothing is computed for an invalid request.
func (ce *CompareEngine) Run(plan domain.PensionPlan, assumptions domain.Assumptions) (*domain.ComparisonResult, error) {
	early, regular, err := ce.CalcEngine.ProjectBoth(plan, assumptions)
	if err != nil {
		return nil, err
	}

	result := Aggregate(plan, assumptions, early, regular)
	if result.HasCrossover() {
		ce.CalcEngine.Log().Infof("crossover at age %d", *result.CrossoverAge)
	} else {
		ce.CalcEngine.Log().Infof("no crossover through age %d", assumptions.InvestmentEndAge)
	}
	return &result, nil
}

// Compare runs a single named scenario
func (ce *CompareEngine) Compare(ctx context.Context, scenario domain.Scenario) (*ScenarioComparison, error) {
	if err := ctx.Err(); err != nil {
		return nil, &CompareError{Operation: "compare", Message: "cancelled before scenario " + scenario.Name, Cause: err}
	}

	result, err := ce.Run(scenario.Plan, scenario.Assumptions)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate scenario %s: %w", scenario.Name, err)
	}

	return &ScenarioComparison{
		ScenarioName: scenario.Name,
		Result:       result,
		Metrics:      ce.MetricsCalculator.CalculateMetrics(result),
	}, nil
}

// CompareAll runs every scenario in the configuration, in file order
func (ce *CompareEngine) CompareAll(ctx context.Context, config *domain.Configuration) (*ComparisonSet, error) {
	if config == nil || len(config.Scenarios) == 0 {
		return nil, &CompareError{Operation: "compare_all", Message: "configuration has no scenarios"}
	}

	compSet := &ComparisonSet{
		Comparisons: make([]ScenarioComparison, 0, len(config.Scenarios)),
	}
	for _, scenario := range config.Scenarios {
		comp, err := ce.Compare(ctx, scenario)
		if err != nil {
			return nil, err
		}
		compSet.Comparisons = append(compSet.Comparisons, *comp)
	}

	compSet.Recommendations = GenerateRecommendations(compSet)
	return compSet, nil
}

// CompareScenarios runs only the named scenarios, in the order given
func (ce *CompareEngine) CompareScenarios(ctx context.Context, config *domain.Configuration, names []string) (*ComparisonSet, error) {
	if len(names) == 0 {
		return ce.CompareAll(ctx, config)
	}

	selected := &domain.Configuration{}
	for _, name := range names {
		scenario, ok := config.FindScenario(name)
		if !ok {
			return nil, &CompareError{Operation: "compare_scenarios", Message: fmt.Sprintf("scenario %s not found", name)}
		}
		selected.Scenarios = append(selected.Scenarios, *scenario)
	}
	return ce.CompareAll(ctx, selected)
}
