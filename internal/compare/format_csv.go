package compare

import (
	"encoding/csv"
	"strconv"
	"strings"
)

// CSVFormatter formats comparison results as CSV, one line per scenario and age
type CSVFormatter struct{}

// Name returns the formatter identifier
func (cf *CSVFormatter) Name() string { return "csv" }

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	// Write header
	header := []string{
		"Scenario",
		"Age",
		"Early Assets",
		"Regular Assets",
		"Delta",
		"Regular Caught Up",
		"Crossover",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for _, comp := range compSet.Comparisons {
		for _, record := range cf.formatRows(&comp) {
			if err := writer.Write(record); err != nil {
				return "", err
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// formatRows formats every age of a comparison as CSV records
func (cf *CSVFormatter) formatRows(comp *ScenarioComparison) [][]string {
	result := comp.Result
	records := make([][]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		crossover := result.CrossoverAge != nil && *result.CrossoverAge == row.Age
		records = append(records, []string{
			comp.ScenarioName,
			strconv.Itoa(row.Age),
			row.EarlyAssets.StringFixed(0),
			row.RegularAssets.StringFixed(0),
			row.Delta.StringFixed(0),
			strconv.FormatBool(row.RegularLeads()),
			strconv.FormatBool(crossover),
		})
	}
	return records
}
