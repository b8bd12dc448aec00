package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case CalculationCompleteMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.calculating = false
		if msg.Err != nil {
			m.err = msg.Err
			m.result = nil
			return m, nil
		}
		m.err = nil
		m.result = msg.Result
		m.metrics = m.engine.MetricsCalculator.CalculateMetrics(msg.Result)
		m.clampSelectedAge()
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Up):
		m.moveFocus(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveFocus(1)

	case key.Matches(msg, m.keys.Left):
		if m.sliders[m.focused].Decrement() {
			return m.recalculate()
		}

	case key.Matches(msg, m.keys.Right):
		if m.sliders[m.focused].Increment() {
			return m.recalculate()
		}

	case key.Matches(msg, m.keys.PrevAge):
		m.selectedAge--
		m.clampSelectedAge()

	case key.Matches(msg, m.keys.NextAge):
		m.selectedAge++
		m.clampSelectedAge()

	case key.Matches(msg, m.keys.Panel):
		m.panel = (m.panel + 1) % panelCount
	}

	return m, nil
}

// moveFocus shifts slider focus by delta, stopping at either end
func (m *Model) moveFocus(delta int) {
	next := m.focused + delta
	if next < 0 || next >= len(m.sliders) {
		return
	}
	m.sliders[m.focused].SetFocused(false)
	m.focused = next
	m.sliders[m.focused].SetFocused(true)
}
