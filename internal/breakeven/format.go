package breakeven

import (
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/rgehrsitz/earlypension/internal/output"
)

// TableFormatter formats break-even results as a console table
type TableFormatter struct{}

// Format renders every result of one scenario
func (tf *TableFormatter) Format(multi *MultiResult) string {
	var sb strings.Builder

	sb.WriteString("BREAK-EVEN RATES\n")
	sb.WriteString(strings.Repeat("=", 72) + "\n")
	sb.WriteString(fmt.Sprintf("Scenario: %s\n\n", multi.ScenarioName))

	if len(multi.Results) > 0 {
		sb.WriteString(fmt.Sprintf("%-30s %10s %10s %8s  %s\n", "Target", "Assumed", "Break-even", "End age", "Status"))
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, res := range multi.Results {
			sb.WriteString(fmt.Sprintf("%-30s %10s %10s %8d  %s\n",
				res.Target.Label(),
				output.FormatPercent(res.BaseRate, 2),
				output.FormatPercent(res.Rate, 2),
				res.EndAge,
				tf.formatStatus(res.Converged)))
		}
		sb.WriteString("\n")
	}

	if len(multi.Failures) > 0 {
		sb.WriteString("NOT FOUND\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, failure := range multi.Failures {
			sb.WriteString(fmt.Sprintf("• %s\n", failure))
		}
		sb.WriteString("\n")
	}

	if len(multi.Recommendations) > 0 {
		sb.WriteString("FINDINGS\n")
		sb.WriteString(strings.Repeat("-", 72) + "\n")
		for _, rec := range multi.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatStatus(converged bool) string {
	if converged {
		return "✓ converged"
	}
	return "⚠ did not converge"
}

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format generates JSON output
func (jf *JSONFormatter) Format(results []*MultiResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(results, "", "  ")
	} else {
		data, err = json.Marshal(results)
	}

	if err != nil {
		return "", err
	}

	return string(data) + "\n", nil
}
