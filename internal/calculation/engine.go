package calculation

import (
	"fmt"

	"github.com/rgehrsitz/earlypension/internal/domain"
)

// CalculationEngine validates inputs and runs the per-strategy asset projections
type CalculationEngine struct {
	Logger Logger
	Debug  bool // log every simulated age-year
}

// NewCalculationEngine creates a new calculation engine
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		Logger: NopLogger{},
	}
}

// SetLogger installs l, or a no-op logger when l is nil
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// Log returns the installed logger, or a no-op logger when none is set
func (ce *CalculationEngine) Log() Logger {
	if ce.Logger == nil {
		return NopLogger{}
	}
	return ce.Logger
}

// ProjectStrategy validates the plan and assumptions and simulates one claiming strategy
func (ce *CalculationEngine) ProjectStrategy(plan domain.PensionPlan, assumptions domain.Assumptions, strategy domain.Strategy) (domain.AssetSeries, error) {
	if err := plan.Validate(); err != nil {
		return domain.AssetSeries{}, fmt.Errorf("invalid pension plan: %w", err)
	}
	if err := assumptions.Validate(plan); err != nil {
		return domain.AssetSeries{}, fmt.Errorf("invalid assumptions: %w", err)
	}
	if !strategy.IsValid() {
		return domain.AssetSeries{}, fmt.Errorf("unknown strategy %q", strategy)
	}

	log := ce.Log()
	series := SimulateStrategy(plan, assumptions, strategy)
	log.Infof("%s: simulated ages %d-%d from monthly %s",
		strategy, plan.StartAge(strategy), assumptions.InvestmentEndAge, series.StartMonthlyAmount.StringFixed(0))

	if ce.Debug {
		for _, point := range series.Points {
			monthly := AdjustedMonthlyPension(series.StartMonthlyAmount, plan.StartAge(strategy), point.Age, plan.AnnualIncreaseRate)
			log.Debugf("%s age %d: monthly pension %s, assets %s",
				strategy, point.Age, monthly.StringFixed(0), point.Assets.String())
		}
	}

	return series, nil
}

// ProjectBoth runs both claiming strategies, early first
func (ce *CalculationEngine) ProjectBoth(plan domain.PensionPlan, assumptions domain.Assumptions) (early, regular domain.AssetSeries, err error) {
	early, err = ce.ProjectStrategy(plan, assumptions, domain.StrategyEarly)
	if err != nil {
		return domain.AssetSeries{}, domain.AssetSeries{}, err
	}
	regular, err = ce.ProjectStrategy(plan, assumptions, domain.StrategyRegular)
	if err != nil {
		return domain.AssetSeries{}, domain.AssetSeries{}, err
	}
	return early, regular, nil
}
