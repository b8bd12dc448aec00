package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultRegularStartAge is the statutory age at which the full pension starts
	DefaultRegularStartAge = 65

	// MaxEarlyYears caps how many years before the regular age a pension may be claimed
	MaxEarlyYears = 5
)

// EarlyClaimPenaltyPerYear is the permanent reduction applied for each year claimed early
var EarlyClaimPenaltyPerYear = decimal.NewFromFloat(0.06)

// Strategy identifies a pension claiming strategy
type Strategy string

const (
	StrategyEarly   Strategy = "early"
	StrategyRegular Strategy = "regular"
)

// Strategies lists both claiming strategies in display order
var Strategies = []Strategy{StrategyEarly, StrategyRegular}

func (s Strategy) String() string {
	return string(s)
}

// Label returns a human-readable strategy name
func (s Strategy) Label() string {
	switch s {
	case StrategyEarly:
		return "Early claiming"
	case StrategyRegular:
		return "Regular claiming"
	default:
		return "Unknown"
	}
}

// IsValid reports whether s is one of the known strategies
func (s Strategy) IsValid() bool {
	return s == StrategyEarly || s == StrategyRegular
}

// ParseStrategy converts a user-supplied tag into a Strategy
func ParseStrategy(value string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(value)))
	if !s.IsValid() {
		return "", fmt.Errorf("unknown strategy %q (valid: early, regular)", value)
	}
	return s, nil
}

// PensionPlan describes the pension entitlement being compared
type PensionPlan struct {
	BaseMonthlyAmount       decimal.Decimal `yaml:"base_monthly_amount" json:"base_monthly_amount"`
	RegularStartAge         int             `yaml:"regular_start_age" json:"regular_start_age"`
	EarlyYearsBeforeRegular int             `yaml:"early_years_before_regular" json:"early_years_before_regular"`
	AnnualIncreaseRate      decimal.Decimal `yaml:"annual_increase_rate" json:"annual_increase_rate"`
}

// EarlyStartAge returns the age at which early claiming begins
func (p PensionPlan) EarlyStartAge() int {
	return p.RegularStartAge - p.EarlyYearsBeforeRegular
}

// StartAge returns the first payable age for the given strategy
func (p PensionPlan) StartAge(strategy Strategy) int {
	if strategy == StrategyEarly {
		return p.EarlyStartAge()
	}
	return p.RegularStartAge
}

// IsEarlyClaim reports whether the plan actually claims before the regular age
func (p PensionPlan) IsEarlyClaim() bool {
	return p.EarlyYearsBeforeRegular > 0
}

// Validate checks the plan against its documented bounds
func (p PensionPlan) Validate() error {
	if !p.BaseMonthlyAmount.IsPositive() {
		return newOutOfRange("base_monthly_amount", p.BaseMonthlyAmount.String(), "must be positive")
	}
	if p.RegularStartAge <= 0 {
		return newOutOfRange("regular_start_age", fmt.Sprint(p.RegularStartAge), "must be positive")
	}
	if p.EarlyYearsBeforeRegular < 0 || p.EarlyYearsBeforeRegular > MaxEarlyYears {
		return newOutOfRange("early_years_before_regular", fmt.Sprint(p.EarlyYearsBeforeRegular),
			fmt.Sprintf("must be between 0 and %d", MaxEarlyYears))
	}
	if p.EarlyStartAge() < 0 {
		return newOutOfRange("early_years_before_regular", fmt.Sprint(p.EarlyYearsBeforeRegular),
			"early start age cannot be negative")
	}
	if p.AnnualIncreaseRate.IsNegative() {
		return newOutOfRange("annual_increase_rate", p.AnnualIncreaseRate.String(), "cannot be negative")
	}
	return nil
}
