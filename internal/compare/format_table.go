package compare

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/rgehrsitz/earlypension/internal/output"
)

// caughtUpMarker flags rows where regular claiming has caught up (delta <= 0)
const caughtUpMarker = "*"

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Name returns the formatter identifier
func (tf *TableFormatter) Name() string { return "table" }

// Format generates a per-age table for every scenario in the set
func (tf *TableFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder

	// Header
	sb.WriteString("EARLY VS REGULAR PENSION COMPARISON\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	if compSet.ConfigPath != "" {
		sb.WriteString(fmt.Sprintf("Configuration: %s\n", compSet.ConfigPath))
	}

	for _, comp := range compSet.Comparisons {
		sb.WriteString("\n")
		sb.WriteString(tf.FormatScenario(&comp))
	}

	// Recommendations
	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nFINDINGS\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
	}

	return sb.String(), nil
}

// FormatScenario renders the pension header, the per-age table and the crossover line for one scenario
func (tf *TableFormatter) FormatScenario(comp *ScenarioComparison) string {
	var sb strings.Builder
	result := comp.Result
	m := comp.Metrics

	sb.WriteString(fmt.Sprintf("Scenario: %s\n", comp.ScenarioName))
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(tf.pensionInfo(result, m))
	sb.WriteString("\n")

	// Column widths
	ageWidth := 5
	numWidth := 20

	sb.WriteString(fmt.Sprintf("%-*s %*s %*s %*s\n",
		ageWidth, "Age",
		numWidth, "Early assets",
		numWidth, "Regular assets",
		numWidth, "Early - Regular"))
	sb.WriteString(strings.Repeat("-", ageWidth+3*(numWidth+1)+2) + "\n")

	for _, row := range result.Rows {
		sb.WriteString(tf.formatRow(row, ageWidth, numWidth))
	}
	sb.WriteString(fmt.Sprintf("%s regular claiming has caught up (difference <= 0)\n", caughtUpMarker))
	sb.WriteString("\n")

	sb.WriteString(CrossoverSummary(result))
	sb.WriteString("\n")

	return sb.String()
}

func (tf *TableFormatter) pensionInfo(result *domain.ComparisonResult, m ComparisonMetrics) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Regular claiming: from age %d, %s a month\n",
		m.RegularStartAge, output.FormatCurrency(m.RegularStartMonthly)))
	if result.Plan.IsEarlyClaim() {
		reduction := one.Sub(m.ReductionFactor)
		sb.WriteString(fmt.Sprintf("Early claiming:   from age %d, %s a month (reduced by %s)\n",
			m.EarlyStartAge, output.FormatCurrency(m.EarlyStartMonthly), output.FormatPercent(reduction, 1)))
	} else {
		sb.WriteString("Early claiming:   not selected\n")
	}
	sb.WriteString(fmt.Sprintf("Annual return:    %s, pension increase: %s, through age %d\n",
		output.FormatPercent(result.Assumptions.AnnualReturnRate, 1),
		output.FormatPercent(result.Plan.AnnualIncreaseRate, 1),
		result.Assumptions.InvestmentEndAge))

	return sb.String()
}

// formatRow formats a single age row
func (tf *TableFormatter) formatRow(row domain.ComparisonRow, ageWidth, numWidth int) string {
	line := fmt.Sprintf("%-*d %*s %*s %*s",
		ageWidth, row.Age,
		numWidth, output.FormatAmount(row.EarlyAssets),
		numWidth, output.FormatAmount(row.RegularAssets),
		numWidth, output.FormatSignedAmount(row.Delta))
	if row.RegularLeads() {
		line += " " + caughtUpMarker
	}
	return line + "\n"
}

// CrossoverSummary returns the informational line describing when, if ever, the strategies swap
func CrossoverSummary(result *domain.ComparisonResult) string {
	if result.HasCrossover() {
		return fmt.Sprintf("Regular claiming overtakes early claiming at about age %d.\n", *result.CrossoverAge)
	}
	final, ok := result.FinalRow()
	if !ok {
		return "No ages to compare.\n"
	}
	switch {
	case final.Delta.IsPositive():
		return fmt.Sprintf("No crossover through age %d: early claiming stays ahead.\n", final.Age)
	case final.Delta.IsNegative():
		return fmt.Sprintf("No crossover through age %d: regular claiming stays ahead.\n", final.Age)
	default:
		return fmt.Sprintf("No crossover through age %d: both strategies are identical.\n", final.Age)
	}
}

// FormatCompact creates a compact single-line summary for each scenario
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	for i, comp := range compSet.Comparisons {
		if i > 0 {
			sb.WriteString(" | ")
		}
		crossover := "no crossover"
		if comp.Metrics.CrossoverAge != nil {
			crossover = fmt.Sprintf("crossover %d", *comp.Metrics.CrossoverAge)
		}
		sb.WriteString(fmt.Sprintf("%s: %s at %d, %s",
			comp.ScenarioName, output.FormatSignedAmount(comp.Metrics.FinalDelta), comp.Metrics.FinalAge, crossover))
	}

	return sb.String()
}
