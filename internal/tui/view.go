package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/earlypension/internal/compare"
	"github.com/rgehrsitz/earlypension/internal/output"
	"github.com/rgehrsitz/earlypension/internal/tui/components"
)

// View renders the current state of the application
func (m Model) View() string {
	top := lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.renderInputs(),
		"  ",
		m.renderMetrics(),
	)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderTitleBar(),
		top,
		m.renderTabs(),
		m.renderPanel(),
		"",
		m.help.View(m.keys),
	)
}

// renderTitleBar renders the application title and scenario line
func (m Model) renderTitleBar() string {
	title := TitleStyle.Render("Early vs Regular Pension")

	subtitle := fmt.Sprintf("Regular pension starts at age %d", m.regularAge)
	if m.scenarioName != "" {
		subtitle = m.scenarioName + " · " + subtitle
	}
	if m.calculating {
		subtitle += " · calculating..."
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, SubtitleStyle.Render(subtitle))
}

// renderInputs shows the focused slider in full and the rest on one line each
func (m Model) renderInputs() string {
	lines := make([]string, 0, len(m.sliders))
	for i, s := range m.sliders {
		if i == m.focused {
			lines = append(lines, s.Render())
			continue
		}
		lines = append(lines, s.RenderCompact())
	}
	return ActiveBorderStyle.Width(50).Render(strings.Join(lines, "\n"))
}

func (m Model) renderMetrics() string {
	if m.result == nil {
		return ""
	}
	mt := m.metrics

	early := components.NewMetricCard(
		fmt.Sprintf("Early from %d", mt.EarlyStartAge),
		output.FormatCurrency(mt.EarlyStartMonthly),
	).WithDescription(output.FormatPercent(mt.ReductionFactor, 0) + " of full, monthly")

	regular := components.NewMetricCard(
		fmt.Sprintf("Regular from %d", mt.RegularStartAge),
		output.FormatCurrency(mt.RegularStartMonthly),
	).WithDescription("monthly")

	crossoverValue := "none"
	if mt.CrossoverAge != nil {
		crossoverValue = "age " + strconv.Itoa(*mt.CrossoverAge)
	}
	crossover := components.NewMetricCard("Crossover", crossoverValue).
		WithDescription(fmt.Sprintf("through age %d", mt.FinalAge))

	final := components.NewMetricCard(
		fmt.Sprintf("Difference at %d", mt.FinalAge),
		output.FormatSignedAmount(mt.FinalDelta)+" "+output.CurrencyCode,
	).WithDescription("early minus regular")
	if !mt.FinalDelta.IsZero() {
		final.WithTrend(mt.FinalDelta.IsPositive(), mt.LeaderAtEnd.Label()+" ahead")
	}

	return components.MetricGrid([]*components.MetricCard{early, regular, crossover, final}, 2)
}

func (m Model) renderTabs() string {
	tabs := make([]string, 0, panelCount)
	for p := Panel(0); p < panelCount; p++ {
		if p == m.panel {
			tabs = append(tabs, TitleStyle.Render("["+p.String()+"]"))
			continue
		}
		tabs = append(tabs, SubtitleStyle.Render(" "+p.String()+" "))
	}
	return strings.Join(tabs, " ") + SubtitleStyle.Render(fmt.Sprintf("   selected age %d", m.selectedAge))
}

func (m Model) renderPanel() string {
	if m.err != nil {
		return ErrorStyle.Render("Error: " + m.err.Error())
	}
	if m.result == nil {
		return InfoStyle.Render("Calculating...")
	}

	var content string
	switch m.panel {
	case PanelChart:
		content = m.renderChart()
	case PanelTable:
		content = m.renderTable()
	case PanelExplain:
		content = m.renderExplain()
	}

	return content + "\n" + InfoStyle.Render(strings.TrimSpace(compare.CrossoverSummary(m.result)))
}

// panelHeight is the number of lines left for the chart or table
func (m Model) panelHeight() int {
	h := m.height - 28
	if h < 8 {
		h = 8
	}
	return h
}

func (m Model) renderChart() string {
	width := m.width - 2
	if width < 40 {
		width = 40
	}
	return components.NewComparisonChart(m.result, width, m.panelHeight()).Render()
}

// visibleRange returns the window of rows to draw so that selected stays on screen
func visibleRange(selected, total, height int) (int, int) {
	if height <= 0 || total <= height {
		return 0, total
	}
	start := selected - height/2
	if start < 0 {
		start = 0
	}
	if start+height > total {
		start = total - height
	}
	return start, start + height
}

func (m Model) renderTable() string {
	rows := m.result.Rows
	if len(rows) == 0 {
		return InfoStyle.Render("No ages to compare")
	}

	var sb strings.Builder
	sb.WriteString(TableHeaderStyle.Render(fmt.Sprintf("  %4s  %16s  %16s  %16s", "Age", "Early", "Regular", "Difference")))
	sb.WriteString("\n")

	start, end := visibleRange(m.selectedAge-rows[0].Age, len(rows), m.panelHeight())
	for _, row := range rows[start:end] {
		line := fmt.Sprintf("%4d  %16s  %16s  %16s",
			row.Age,
			output.FormatAmount(row.EarlyAssets),
			output.FormatAmount(row.RegularAssets),
			output.FormatSignedAmount(row.Delta))

		style := TableCellStyle
		if row.RegularLeads() {
			style = TableCaughtUpStyle
			line += " *"
		}
		prefix := "  "
		if row.Age == m.selectedAge {
			prefix = "> "
			style = style.Inherit(TableSelectedStyle)
		}
		sb.WriteString(prefix + style.Render(line) + "\n")
	}

	sb.WriteString(SubtitleStyle.Render("Rows in red (*): regular claiming has caught up"))
	return sb.String()
}

func (m Model) renderExplain() string {
	breakdown, err := output.Explain(m.result, m.selectedAge)
	if err != nil {
		return ErrorStyle.Render(err.Error())
	}
	return BorderStyle.Render(strings.TrimRight(breakdown.Render(), "\n"))
}
