package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/rgehrsitz/earlypension/internal/compare"
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/rgehrsitz/earlypension/internal/output"
	"github.com/rgehrsitz/earlypension/internal/tui/components"
)

// Slider order on screen
const (
	sliderBase = iota
	sliderEarlyYears
	sliderEndAge
	sliderReturn
	sliderIncrease
)

const (
	maxEndAge      = 100
	maxReturnPct   = 20
	maxIncreasePct = 10
)

var hundred = decimal.NewFromInt(100)

// Model represents the entire application state
type Model struct {
	// Terminal dimensions
	width  int
	height int

	scenarioName string
	regularAge   int

	sliders []*components.ParameterSlider
	focused int

	engine *compare.CompareEngine

	// seq increments on every recomputation request
	seq         int
	calculating bool
	result      *domain.ComparisonResult
	metrics     compare.ComparisonMetrics
	selectedAge int

	panel Panel
	keys  keyMap
	help  help.Model

	err error
}

// NewModel creates the application model with sliders seeded from scenario.
// Seed values snap to the slider steps. A nil engine gets the default one.
func NewModel(scenario domain.Scenario, engine *compare.CompareEngine) Model {
	if engine == nil {
		engine = compare.NewCompareEngine(nil)
	}

	regularAge := scenario.Plan.RegularStartAge
	if regularAge == 0 {
		regularAge = domain.DefaultRegularStartAge
	}

	m := Model{
		width:        100,
		height:       40,
		scenarioName: scenario.Name,
		regularAge:   regularAge,
		engine:       engine,
		seq:          1,
		calculating:  true,
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
	m.sliders = newSliders(scenario, regularAge)
	m.sliders[m.focused].SetFocused(true)
	return m
}

func newSliders(scenario domain.Scenario, regularAge int) []*components.ParameterSlider {
	amount := func(v float64) string {
		return output.FormatAmount(decimal.NewFromFloat(v))
	}

	return []*components.ParameterSlider{
		sliderBase: components.NewParameterSlider("Monthly pension", scenario.Plan.BaseMonthlyAmount.InexactFloat64(), 100000, 5000000, 100000).
			WithFormatter(amount).
			WithUnit(" " + output.CurrencyCode).
			WithDescription(fmt.Sprintf("Full pension when claimed at %d", regularAge)),
		sliderEarlyYears: components.NewParameterSlider("Years claimed early", float64(scenario.Plan.EarlyYearsBeforeRegular), 0, domain.MaxEarlyYears, 1).
			WithFormat("%.0f").
			WithUnit(" years").
			WithDescription("Each year early reduces the pension by 6% for life"),
		sliderEndAge: components.NewParameterSlider("Compare through age", float64(scenario.Assumptions.InvestmentEndAge), float64(regularAge+1), maxEndAge, 1).
			WithFormat("%.0f"),
		sliderReturn: components.NewParameterSlider("Annual return", rateToPercent(scenario.Assumptions.AnnualReturnRate), 0, maxReturnPct, 0.1).
			WithFormat("%.1f").
			WithUnit("%").
			WithDescription("Compounded quarterly on every payment received"),
		sliderIncrease: components.NewParameterSlider("Pension increase", rateToPercent(scenario.Plan.AnnualIncreaseRate), 0, maxIncreasePct, 0.1).
			WithFormat("%.1f").
			WithUnit("%").
			WithDescription("Yearly cost-of-living increase"),
	}
}

func rateToPercent(rate decimal.Decimal) float64 {
	return rate.Mul(hundred).InexactFloat64()
}

// percentToRate converts a slider percentage back into an exact fractional rate
func percentToRate(pct float64) decimal.Decimal {
	return decimal.NewFromFloat(pct).Round(1).Div(hundred)
}

// Init starts the first calculation (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return recalculateCmd(m.engine, m.seq, m.Scenario())
}

// Scenario builds the scenario described by the current slider positions
func (m Model) Scenario() domain.Scenario {
	return domain.Scenario{
		Name: m.scenarioName,
		Plan: domain.PensionPlan{
			BaseMonthlyAmount:       decimal.NewFromFloat(m.sliders[sliderBase].Value).Round(0),
			RegularStartAge:         m.regularAge,
			EarlyYearsBeforeRegular: m.sliders[sliderEarlyYears].Int(),
			AnnualIncreaseRate:      percentToRate(m.sliders[sliderIncrease].Value),
		},
		Assumptions: domain.Assumptions{
			AnnualReturnRate: percentToRate(m.sliders[sliderReturn].Value),
			InvestmentEndAge: m.sliders[sliderEndAge].Int(),
		},
	}
}

// Result returns the latest comparison, nil before the first one completes
func (m Model) Result() *domain.ComparisonResult {
	return m.result
}

// SelectedAge is the age narrated in the explain panel
func (m Model) SelectedAge() int {
	return m.selectedAge
}

// recalculate issues a new calculation request, superseding any in flight
func (m Model) recalculate() (Model, tea.Cmd) {
	m.seq++
	m.calculating = true
	return m, recalculateCmd(m.engine, m.seq, m.Scenario())
}

// recalculateCmd returns a command that runs the full comparison
func recalculateCmd(engine *compare.CompareEngine, seq int, scenario domain.Scenario) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.Run(scenario.Plan, scenario.Assumptions)
		return CalculationCompleteMsg{
			Seq:    seq,
			Result: result,
			Err:    err,
		}
	}
}

// clampSelectedAge keeps the narrated age inside the current result
func (m *Model) clampSelectedAge() {
	if m.result == nil || len(m.result.Rows) == 0 {
		return
	}
	first := m.result.Rows[0].Age
	last := m.result.Rows[len(m.result.Rows)-1].Age
	if m.selectedAge < first {
		m.selectedAge = first
	}
	if m.selectedAge > last {
		m.selectedAge = last
	}
}
