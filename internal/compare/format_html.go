package compare

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/rgehrsitz/earlypension/internal/output"
	"github.com/shopspring/decimal"
)

// HTMLFormatter renders the comparison set as a standalone HTML report
type HTMLFormatter struct{}

func (h *HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   output.FormatCurrency,
	"amount": output.FormatAmount,
	"signed": output.FormatSignedAmount,
	"pct":    func(rate decimal.Decimal) string { return output.FormatPercent(rate, 0) },
	"summary": func(result *domain.ComparisonResult) string {
		return strings.TrimSpace(CrossoverSummary(result))
	},
	"isCrossover": func(crossover *int, age int) bool {
		return crossover != nil && *crossover == age
	},
}).Parse(htmlTemplateSource))

func (h *HTMLFormatter) Format(compSet *ComparisonSet) (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, compSet); err != nil {
		return "", err
	}
	return buf.String(), nil
}
