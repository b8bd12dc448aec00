package server

import (
	"github.com/rgehrsitz/earlypension/internal/breakeven"
	"github.com/rgehrsitz/earlypension/internal/compare"
	"github.com/rgehrsitz/earlypension/internal/config"
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/rgehrsitz/earlypension/internal/output"
	"github.com/shopspring/decimal"
)

// CompareRequest carries the six scalar inputs of one comparison.
// Rates are fractions; omitted ages fall back to the usual defaults.
type CompareRequest struct {
	BaseMonthlyAmount       decimal.Decimal `json:"base_monthly_amount"`
	RegularStartAge         int             `json:"regular_start_age"`
	EarlyYearsBeforeRegular int             `json:"early_years_before_regular"`
	AnnualIncreaseRate      decimal.Decimal `json:"annual_increase_rate"`
	AnnualReturnRate        decimal.Decimal `json:"annual_return_rate"`
	InvestmentEndAge        int             `json:"investment_end_age"`
}

// Scenario converts the request into a validated-on-run scenario
func (r *CompareRequest) Scenario() domain.Scenario {
	regularAge := r.RegularStartAge
	if regularAge == 0 {
		regularAge = domain.DefaultRegularStartAge
	}
	endAge := r.InvestmentEndAge
	if endAge == 0 {
		endAge = config.DefaultInvestmentEndAge
	}
	return domain.Scenario{
		Name: "request",
		Plan: domain.PensionPlan{
			BaseMonthlyAmount:       r.BaseMonthlyAmount,
			RegularStartAge:         regularAge,
			EarlyYearsBeforeRegular: r.EarlyYearsBeforeRegular,
			AnnualIncreaseRate:      r.AnnualIncreaseRate,
		},
		Assumptions: domain.Assumptions{
			AnnualReturnRate: r.AnnualReturnRate,
			InvestmentEndAge: endAge,
		},
	}
}

type CalculationMetadata struct {
	CalculationID          string `json:"calculation_id"`
	CalculationStartedAt   string `json:"calculation_started_at"`
	CalculationCompletedAt string `json:"calculation_completed_at"`
	CalculationDurationMs  int64  `json:"calculation_duration_ms"`
}

type CompareResponse struct {
	CalculationMetadata CalculationMetadata       `json:"calculation_metadata"`
	Summary             compare.ComparisonMetrics `json:"summary"`
	Result              *domain.ComparisonResult  `json:"result"`
}

type ExplainResponse struct {
	CalculationMetadata CalculationMetadata  `json:"calculation_metadata"`
	Breakdown           *output.AgeBreakdown `json:"breakdown"`
	Narration           string               `json:"narration"`
}

type BreakevenResponse struct {
	CalculationMetadata CalculationMetadata    `json:"calculation_metadata"`
	Breakeven           *breakeven.MultiResult `json:"breakeven"`
}

type ErrorResponse struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}
