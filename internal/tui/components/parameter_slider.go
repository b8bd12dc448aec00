package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/earlypension/internal/tui/tuistyles"
)

const (
	sliderBarWidth  = 30
	compactBarWidth = 10
)

// ParameterSlider is one numeric input moved in fixed steps between Min and Max
type ParameterSlider struct {
	Label       string
	Description string
	Value       float64
	Min         float64
	Max         float64
	Step        float64
	Unit        string // appended to every rendered value
	Format      string // fmt verb for the value, unless Formatter is set
	Formatter   func(float64) string
	IsFocused   bool
}

// NewParameterSlider creates a slider; value is snapped and clamped like any later SetValue
func NewParameterSlider(label string, value, min, max, step float64) *ParameterSlider {
	p := &ParameterSlider{
		Label:  label,
		Min:    min,
		Max:    max,
		Step:   step,
		Format: "%.2f",
	}
	p.SetValue(value)
	return p
}

func (p *ParameterSlider) WithUnit(unit string) *ParameterSlider {
	p.Unit = unit
	return p
}

func (p *ParameterSlider) WithFormat(format string) *ParameterSlider {
	p.Format = format
	return p
}

func (p *ParameterSlider) WithFormatter(f func(float64) string) *ParameterSlider {
	p.Formatter = f
	return p
}

func (p *ParameterSlider) WithDescription(desc string) *ParameterSlider {
	p.Description = desc
	return p
}

func (p *ParameterSlider) SetFocused(focused bool) *ParameterSlider {
	p.IsFocused = focused
	return p
}

// Increment moves one step up; false when already at Max
func (p *ParameterSlider) Increment() bool {
	return p.SetValue(p.Value + p.Step)
}

// Decrement moves one step down; false when already at Min
func (p *ParameterSlider) Decrement() bool {
	return p.SetValue(p.Value - p.Step)
}

// SetValue puts value on the Min + k*Step grid, clamps it to the range,
// and reports whether the stored value changed.
func (p *ParameterSlider) SetValue(value float64) bool {
	if p.Step > 0 {
		value = p.Min + math.Round((value-p.Min)/p.Step)*p.Step
	}
	value = math.Max(p.Min, math.Min(p.Max, value))
	changed := value != p.Value
	p.Value = value
	return changed
}

// SetRange changes the bounds and re-clamps the current value
func (p *ParameterSlider) SetRange(min, max float64) {
	p.Min, p.Max = min, max
	p.SetValue(p.Value)
}

// Percentage is the position of Value within the range, from 0 to 1
func (p *ParameterSlider) Percentage() float64 {
	if p.Max == p.Min {
		return 0
	}
	return (p.Value - p.Min) / (p.Max - p.Min)
}

func (p *ParameterSlider) Int() int {
	return int(math.Round(p.Value))
}

func (p *ParameterSlider) text(v float64) string {
	if p.Formatter != nil {
		return p.Formatter(v) + p.Unit
	}
	return fmt.Sprintf(p.Format, v) + p.Unit
}

// styles returns the label and value styles, highlighted when focused
func (p *ParameterSlider) styles() (lipgloss.Style, lipgloss.Style) {
	label, value := tuistyles.ParameterLabelStyle, tuistyles.ParameterValueStyle
	if p.IsFocused {
		label = label.Foreground(tuistyles.ColorPrimary)
		value = value.Foreground(tuistyles.ColorAccent)
	}
	return label, value
}

// Render shows label, value, bar, the range and the description on separate lines
func (p *ParameterSlider) Render() string {
	labelStyle, valueStyle := p.styles()
	muted := lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)

	lines := []string{
		labelStyle.Render(p.Label),
		valueStyle.Render(p.text(p.Value)),
		p.bar(sliderBarWidth),
		muted.Render(p.text(p.Min) + "  ─  " + p.text(p.Max)),
	}
	if p.Description != "" {
		lines = append(lines, muted.Italic(true).Render(p.Description))
	}
	return strings.Join(lines, "\n")
}

// RenderCompact fits the slider on one line
func (p *ParameterSlider) RenderCompact() string {
	labelStyle, valueStyle := p.styles()
	return labelStyle.Render(p.Label+":") + " " + valueStyle.Render(p.text(p.Value)) + " " + p.bar(compactBarWidth)
}

// bar draws width cells: filled track up to the thumb, empty track after it
func (p *ParameterSlider) bar(width int) string {
	thumb := int(math.Round(float64(width-1) * p.Percentage()))
	thumb = max(0, min(width-1, thumb))

	filled := tuistyles.SliderThumbStyle
	if p.IsFocused {
		filled = filled.Foreground(tuistyles.ColorAccent)
	}

	return "[" +
		filled.Render(strings.Repeat("━", thumb)+"●") +
		tuistyles.SliderTrackStyle.Render(strings.Repeat("─", width-1-thumb)) +
		"]"
}
