package tui

import (
	"github.com/rgehrsitz/earlypension/internal/domain"
)

// Panel selects what the lower half of the screen shows
type Panel int

const (
	PanelChart Panel = iota
	PanelTable
	PanelExplain
	panelCount
)

func (p Panel) String() string {
	switch p {
	case PanelChart:
		return "Chart"
	case PanelTable:
		return "Table"
	case PanelExplain:
		return "Explain"
	default:
		return "Unknown"
	}
}

// Message types for the Bubble Tea update cycle

// CalculationCompleteMsg carries the outcome of one recomputation.
// Seq identifies the request; results for superseded requests are dropped.
type CalculationCompleteMsg struct {
	Seq    int
	Result *domain.ComparisonResult
	Err    error
}
