package compare

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Formatter renders a comparison set in one output format
type Formatter interface {
	Name() string
	Format(compSet *ComparisonSet) (string, error)
}

// FormatterFunc adapts a plain function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(compSet *ComparisonSet) (string, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(compSet *ComparisonSet) (string, error) { return f.F(compSet) }

var formatters = map[string]func() Formatter{
	"table": func() Formatter { return &TableFormatter{} },
	"csv":   func() Formatter { return &CSVFormatter{} },
	"json":  func() Formatter { return &JSONFormatter{Pretty: true} },
	"html":  func() Formatter { return &HTMLFormatter{} },
}

var formatAliases = map[string]string{
	"console": "table",
	"text":    "table",
	"htm":     "html",
}

// GetFormatterByName resolves a format name or alias, case-insensitively
func GetFormatterByName(name string) (Formatter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	build, ok := formatters[key]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
	}
	return build(), nil
}

// AvailableFormatterNames lists the canonical format names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
