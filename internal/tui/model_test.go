package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/earlypension/internal/domain"
)

func referenceScenario(endAge int) domain.Scenario {
	return domain.Scenario{
		Name: "Reference",
		Plan: domain.PensionPlan{
			BaseMonthlyAmount:       decimal.NewFromInt(1000000),
			RegularStartAge:         65,
			EarlyYearsBeforeRegular: 5,
			AnnualIncreaseRate:      decimal.NewFromFloat(0.034),
		},
		Assumptions: domain.Assumptions{
			AnnualReturnRate: decimal.NewFromFloat(0.05),
			InvestmentEndAge: endAge,
		},
	}
}

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyPrev  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'['}}
	keyNext  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{']'}}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

// initialized runs the model's first calculation to completion
func initialized(t *testing.T, m Model) Model {
	t.Helper()
	cmd := m.Init()
	require.NotNil(t, cmd)
	updated, _ := m.Update(cmd())
	return updated.(Model)
}

// press sends a key and, if it triggers a recomputation, completes it
func press(t *testing.T, m Model, msg tea.KeyMsg) Model {
	t.Helper()
	updated, cmd := m.Update(msg)
	m = updated.(Model)
	if cmd != nil {
		if calc, ok := cmd().(CalculationCompleteMsg); ok {
			updated, _ = m.Update(calc)
			m = updated.(Model)
		}
	}
	return m
}

func TestNewModel_SeedsSlidersFromScenario(t *testing.T) {
	m := NewModel(referenceScenario(80), nil)

	s := m.Scenario()
	assert.Equal(t, "Reference", s.Name)
	assert.True(t, s.Plan.BaseMonthlyAmount.Equal(decimal.NewFromInt(1000000)))
	assert.Equal(t, 65, s.Plan.RegularStartAge)
	assert.Equal(t, 5, s.Plan.EarlyYearsBeforeRegular)
	assert.True(t, s.Plan.AnnualIncreaseRate.Equal(decimal.NewFromFloat(0.034)), "got %s", s.Plan.AnnualIncreaseRate)
	assert.True(t, s.Assumptions.AnnualReturnRate.Equal(decimal.NewFromFloat(0.05)), "got %s", s.Assumptions.AnnualReturnRate)
	assert.Equal(t, 80, s.Assumptions.InvestmentEndAge)

	assert.Nil(t, m.Result())
	assert.True(t, m.sliders[sliderBase].IsFocused)
}

func TestNewModel_DefaultsRegularAge(t *testing.T) {
	s := referenceScenario(80)
	s.Plan.RegularStartAge = 0

	m := NewModel(s, nil)

	assert.Equal(t, domain.DefaultRegularStartAge, m.Scenario().Plan.RegularStartAge)
	assert.Equal(t, float64(domain.DefaultRegularStartAge+1), m.sliders[sliderEndAge].Min)
}

func TestModel_Init_ComputesReferenceScenario(t *testing.T) {
	m := initialized(t, NewModel(referenceScenario(80), nil))

	require.NotNil(t, m.Result())
	assert.Len(t, m.Result().Rows, 21)
	assert.Nil(t, m.Result().CrossoverAge)
	assert.Equal(t, 60, m.SelectedAge())
	assert.False(t, m.calculating)
	assert.Equal(t, 80, m.metrics.FinalAge)
}

func TestModel_SliderChangeRecomputes(t *testing.T) {
	m := NewModel(referenceScenario(80), nil)
	initMsg := m.Init()()

	updated, cmd := m.Update(keyRight)
	m = updated.(Model)
	require.NotNil(t, cmd, "a slider change should trigger a recomputation")
	assert.True(t, m.calculating)

	// the first result was superseded by the slider change
	updated, _ = m.Update(initMsg)
	m = updated.(Model)
	assert.Nil(t, m.Result())

	updated, _ = m.Update(cmd())
	m = updated.(Model)
	require.NotNil(t, m.Result())
	assert.True(t, m.Result().Plan.BaseMonthlyAmount.Equal(decimal.NewFromInt(1100000)))
}

func TestModel_SliderAtBoundDoesNotRecompute(t *testing.T) {
	m := initialized(t, NewModel(referenceScenario(80), nil))

	m = press(t, m, keyDown) // early years, already at the maximum of 5
	_, cmd := m.Update(keyRight)

	assert.Nil(t, cmd)
}

func TestModel_FocusStopsAtEnds(t *testing.T) {
	m := NewModel(referenceScenario(80), nil)

	m = press(t, m, keyUp)
	assert.Equal(t, sliderBase, m.focused)

	for i := 0; i < 10; i++ {
		m = press(t, m, keyDown)
	}
	assert.Equal(t, sliderIncrease, m.focused)
	assert.True(t, m.sliders[sliderIncrease].IsFocused)
	assert.False(t, m.sliders[sliderBase].IsFocused)
}

func TestModel_ZeroEarlyYearsMatchesRegular(t *testing.T) {
	m := initialized(t, NewModel(referenceScenario(80), nil))

	m = press(t, m, keyDown)
	for i := 0; i < 5; i++ {
		m = press(t, m, keyLeft)
	}

	require.NotNil(t, m.Result())
	assert.Equal(t, 0, m.Scenario().Plan.EarlyYearsBeforeRegular)
	for _, row := range m.Result().Rows {
		assert.True(t, row.Delta.IsZero(), "age %d", row.Age)
	}
	assert.Equal(t, 65, m.SelectedAge(), "selected age follows the new first row")
}

func TestModel_SelectedAgeNavigation(t *testing.T) {
	m := initialized(t, NewModel(referenceScenario(80), nil))

	m = press(t, m, keyPrev)
	assert.Equal(t, 60, m.SelectedAge())

	for i := 0; i < 3; i++ {
		m = press(t, m, keyNext)
	}
	assert.Equal(t, 63, m.SelectedAge())

	for i := 0; i < 30; i++ {
		m = press(t, m, keyNext)
	}
	assert.Equal(t, 80, m.SelectedAge())

	// shorten the horizon to 70; the selected age is pulled back inside it
	m = press(t, m, keyDown)
	m = press(t, m, keyDown)
	for i := 0; i < 10; i++ {
		m = press(t, m, keyLeft)
	}
	assert.Equal(t, 70, m.Scenario().Assumptions.InvestmentEndAge)
	assert.Equal(t, 70, m.SelectedAge())
}

func TestModel_CalculationError(t *testing.T) {
	m := initialized(t, NewModel(referenceScenario(80), nil))

	updated, _ := m.Update(CalculationCompleteMsg{Seq: m.seq, Err: errors.New("boom")})
	m = updated.(Model)

	assert.Nil(t, m.Result())
	assert.Contains(t, m.View(), "Error: boom")
}

func TestModel_Panels(t *testing.T) {
	m := initialized(t, NewModel(referenceScenario(80), nil))
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 60})
	m = updated.(Model)

	assert.Equal(t, PanelChart, m.panel)
	chart := m.View()
	assert.Contains(t, chart, "Legend:")
	assert.Contains(t, chart, "No crossover through age 80: early claiming stays ahead.")

	m = press(t, m, keyTab)
	assert.Equal(t, PanelTable, m.panel)
	table := m.View()
	assert.Contains(t, table, "8,660,899")
	assert.Contains(t, table, "> ")

	m = press(t, m, keyTab)
	assert.Equal(t, PanelExplain, m.panel)
	assert.Contains(t, m.View(), "Selected age: 60")

	m = press(t, m, keyTab)
	assert.Equal(t, PanelChart, m.panel)
}

func TestModel_ChartMarksCrossover(t *testing.T) {
	m := initialized(t, NewModel(referenceScenario(100), nil))

	require.NotNil(t, m.Result().CrossoverAge)
	assert.Contains(t, m.View(), "crossover at 96")
}

func TestModel_MetricCards(t *testing.T) {
	m := initialized(t, NewModel(referenceScenario(80), nil))

	view := m.View()
	assert.Contains(t, view, "Early from 60")
	assert.Contains(t, view, "700,000 KRW")
	assert.Contains(t, view, "Regular from 65")
	assert.Contains(t, view, "1,000,000 KRW")
	assert.Contains(t, view, "Difference at 80")
}

func TestModel_Quit(t *testing.T) {
	m := NewModel(referenceScenario(80), nil)

	_, cmd := m.Update(keyQuit)

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_HelpToggle(t *testing.T) {
	m := NewModel(referenceScenario(80), nil)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'?'}})
	assert.True(t, m.help.ShowAll)
	assert.Contains(t, m.View(), "previous age")
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name     string
		selected int
		total    int
		height   int
		start    int
		end      int
	}{
		{"fits", 3, 10, 20, 0, 10},
		{"top", 0, 40, 10, 0, 10},
		{"middle", 20, 40, 10, 15, 25},
		{"bottom", 39, 40, 10, 30, 40},
		{"no height", 5, 40, 0, 0, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := visibleRange(tt.selected, tt.total, tt.height)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.end, end)
		})
	}
}

func TestPercentToRate(t *testing.T) {
	assert.Equal(t, "0.034", percentToRate(3.4000000000000004).String())
	assert.Equal(t, "0", percentToRate(0).String())
	assert.Equal(t, "0.2", percentToRate(20).String())
}
