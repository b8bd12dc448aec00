package breakeven

import (
	"context"
	"errors"
	"fmt"

	"github.com/rgehrsitz/earlypension/internal/compare"
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrNoBreakEven means the final difference keeps its sign across the whole interval
var ErrNoBreakEven = errors.New("no break-even rate in range")

var two = decimal.NewFromInt(2)

// Solver finds the rate at which early and regular claiming end level
type Solver struct {
	Engine  *compare.CompareEngine
	Options SolverOptions
}

// NewSolver creates a new break-even solver
func NewSolver(engine *compare.CompareEngine, options SolverOptions) *Solver {
	if engine == nil {
		engine = compare.NewCompareEngine(nil)
	}
	return &Solver{
		Engine:  engine,
		Options: options,
	}
}

// NewDefaultSolver creates a solver with default options
func NewDefaultSolver(engine *compare.CompareEngine) *Solver {
	return NewSolver(engine, DefaultSolverOptions())
}

// Solve bisects the target rate between the request bounds until the interval
// is narrower than the tolerance or the final difference is exactly zero.
func (s *Solver) Solve(ctx context.Context, req Request) (*Result, error) {
	if req.Target != TargetReturnRate && req.Target != TargetIncreaseRate {
		return nil, &BreakEvenError{
			Operation: "solve",
			Message:   fmt.Sprintf("unsupported target: %s", req.Target),
		}
	}
	if req.Min.IsZero() && req.Max.IsZero() {
		req.Min, req.Max = req.Target.Bounds()
	}
	if req.MaxIterations == 0 {
		req.MaxIterations = s.Options.MaxIterations
	}
	if req.Tolerance.IsZero() {
		req.Tolerance = s.Options.Tolerance
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := req.Scenario.Validate(); err != nil {
		return nil, &BreakEvenError{Operation: "solve", Message: "invalid scenario " + req.Scenario.Name, Cause: err}
	}

	result := &Result{
		ScenarioName: req.Scenario.Name,
		Target:       req.Target,
		BaseRate:     baseRate(req.Scenario, req.Target),
		EndAge:       req.Scenario.Assumptions.InvestmentEndAge,
	}

	lo, hi := req.Min, req.Max
	loDelta, err := s.finalDelta(req.Scenario, req.Target, lo)
	if err != nil {
		return nil, err
	}
	hiDelta, err := s.finalDelta(req.Scenario, req.Target, hi)
	if err != nil {
		return nil, err
	}

	result.EarlyAheadAbove = hiDelta.IsPositive() || (hiDelta.IsZero() && loDelta.IsNegative())

	switch {
	case loDelta.IsZero():
		return s.finish(result, lo, loDelta, "level at the lower bound"), nil
	case hiDelta.IsZero():
		return s.finish(result, hi, hiDelta, "level at the upper bound"), nil
	case loDelta.Sign() == hiDelta.Sign():
		leader := "early"
		if loDelta.IsNegative() {
			leader = "regular"
		}
		return nil, &BreakEvenError{
			Operation: "solve",
			Message: fmt.Sprintf("%s claiming leads at age %d for every %s between %s and %s",
				leader, result.EndAge, req.Target, lo.String(), hi.String()),
			Cause: ErrNoBreakEven,
		}
	}

	for result.Iterations < req.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		result.Iterations++

		mid := lo.Add(hi).Div(two)
		midDelta, err := s.finalDelta(req.Scenario, req.Target, mid)
		if err != nil {
			return nil, err
		}
		if midDelta.IsZero() {
			return s.finish(result, mid, midDelta, "exactly level"), nil
		}

		if midDelta.Sign() == loDelta.Sign() {
			lo, loDelta = mid, midDelta
		} else {
			hi, hiDelta = mid, midDelta
		}

		if hi.Sub(lo).LessThan(req.Tolerance) {
			rate, delta := lo, loDelta
			if hiDelta.Abs().LessThan(loDelta.Abs()) {
				rate, delta = hi, hiDelta
			}
			return s.finish(result, rate, delta, "bisection converged"), nil
		}
	}

	rate := lo.Add(hi).Div(two)
	delta, err := s.finalDelta(req.Scenario, req.Target, rate)
	if err != nil {
		return nil, err
	}
	result.Rate = rate.Round(6)
	result.FinalDelta = delta
	result.ConvergenceInfo = fmt.Sprintf("max iterations (%d) reached", req.MaxIterations)
	return result, nil
}

func (s *Solver) finish(result *Result, rate, delta decimal.Decimal, info string) *Result {
	result.Rate = rate.Round(6)
	result.FinalDelta = delta
	result.Converged = true
	result.ConvergenceInfo = info
	s.Engine.CalcEngine.Log().Infof("%s break-even %s = %s after %d iterations",
		result.ScenarioName, result.Target, result.Rate.String(), result.Iterations)
	return result
}

// finalDelta runs the scenario with the target rate replaced and returns early minus regular at the end age
func (s *Solver) finalDelta(scenario domain.Scenario, target Target, rate decimal.Decimal) (decimal.Decimal, error) {
	plan, assumptions := scenario.Plan, scenario.Assumptions
	switch target {
	case TargetReturnRate:
		assumptions.AnnualReturnRate = rate
	case TargetIncreaseRate:
		plan.AnnualIncreaseRate = rate
	}

	result, err := s.Engine.Run(plan, assumptions)
	if err != nil {
		return decimal.Zero, &BreakEvenError{
			Operation: "evaluate",
			Message:   fmt.Sprintf("failed to run %s at %s", target, rate.String()),
			Cause:     err,
		}
	}
	final, ok := result.FinalRow()
	if !ok {
		return decimal.Zero, &BreakEvenError{Operation: "evaluate", Message: "comparison produced no rows"}
	}
	return final.Delta, nil
}

func baseRate(scenario domain.Scenario, target Target) decimal.Decimal {
	if target == TargetIncreaseRate {
		return scenario.Plan.AnnualIncreaseRate
	}
	return scenario.Assumptions.AnnualReturnRate
}
