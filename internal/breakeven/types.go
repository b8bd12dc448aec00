package breakeven

import (
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/shopspring/decimal"
)

// Target names the rate the solver varies
type Target string

const (
	TargetReturnRate   Target = "return_rate"
	TargetIncreaseRate Target = "increase_rate"
)

// AllTargets lists every supported target in reporting order
var AllTargets = []Target{TargetReturnRate, TargetIncreaseRate}

// ParseTarget accepts the target names and their short forms
func ParseTarget(name string) (Target, error) {
	switch name {
	case "return", "return_rate", "return-rate":
		return TargetReturnRate, nil
	case "increase", "increase_rate", "increase-rate":
		return TargetIncreaseRate, nil
	default:
		return "", &BreakEvenError{Operation: "parse_target", Message: "unsupported target: " + name}
	}
}

// Label is the human name of the target
func (t Target) Label() string {
	switch t {
	case TargetReturnRate:
		return "Annual return rate"
	case TargetIncreaseRate:
		return "Annual pension increase rate"
	default:
		return string(t)
	}
}

// Bounds returns the default search interval for the target
func (t Target) Bounds() (decimal.Decimal, decimal.Decimal) {
	if t == TargetIncreaseRate {
		return decimal.Zero, decimal.NewFromFloat(0.10)
	}
	return decimal.Zero, decimal.NewFromFloat(0.20)
}

// Request describes one break-even search. Zero Min and Max use the target's bounds.
type Request struct {
	Scenario      domain.Scenario
	Target        Target
	Min           decimal.Decimal
	Max           decimal.Decimal
	MaxIterations int
	Tolerance     decimal.Decimal // width of the final rate interval
}

// Result is the rate at which both strategies end level at the investment end age
type Result struct {
	ScenarioName    string          `json:"scenario_name"`
	Target          Target          `json:"target"`
	Rate            decimal.Decimal `json:"rate"`
	BaseRate        decimal.Decimal `json:"base_rate"`
	EndAge          int             `json:"end_age"`
	FinalDelta      decimal.Decimal `json:"final_delta"`
	EarlyAheadAbove bool            `json:"early_ahead_above"` // early ends ahead for rates above Rate
	Iterations      int             `json:"iterations"`
	Converged       bool            `json:"converged"`
	ConvergenceInfo string          `json:"convergence_info"`
}

// MultiResult collects the break-even rates of one scenario across targets
type MultiResult struct {
	ScenarioName    string   `json:"scenario_name"`
	Results         []Result `json:"results"`
	Failures        []string `json:"failures,omitempty"`
	Recommendations []string `json:"recommendations"`
}

// SolverOptions configures the bisection
type SolverOptions struct {
	Tolerance     decimal.Decimal
	MaxIterations int
}

// DefaultSolverOptions narrows the rate to a thousandth of a percent
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		Tolerance:     decimal.NewFromFloat(0.00001),
		MaxIterations: 60,
	}
}

// Validate checks that the search interval is usable
func (r Request) Validate() error {
	if r.Min.IsNegative() {
		return &BreakEvenError{Operation: "validate_request", Message: "minimum rate cannot be negative"}
	}
	if !r.Min.LessThan(r.Max) {
		return &BreakEvenError{Operation: "validate_request", Message: "minimum rate must be below maximum rate"}
	}
	return nil
}

// BreakEvenError represents errors from break-even solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
