package components

import (
	"fmt"
	"strconv"

	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/rgehrsitz/earlypension/internal/tui/tuistyles"
)

// NewComparisonChart plots both strategies' assets by age, marking the crossover age when there is one
func NewComparisonChart(result *domain.ComparisonResult, width, height int) *ASCIIChart {
	rows := result.Rows
	early := make([]float64, len(rows))
	regular := make([]float64, len(rows))
	labels := make([]string, len(rows))
	for i, row := range rows {
		early[i] = row.EarlyAssets.InexactFloat64()
		regular[i] = row.RegularAssets.InexactFloat64()
		labels[i] = strconv.Itoa(row.Age)
	}

	chart := NewASCIIChart("").
		AddSeries(domain.StrategyEarly.Label(), early, tuistyles.ColorEarly).
		AddSeries(domain.StrategyRegular.Label(), regular, tuistyles.ColorRegular).
		WithLabels(labels).
		WithSize(width, height).
		WithXAxisLabel("Age")

	if result.HasCrossover() && len(rows) > 0 {
		age := *result.CrossoverAge
		chart.WithMarker(age-rows[0].Age, fmt.Sprintf("crossover at %d", age))
	}
	return chart
}
