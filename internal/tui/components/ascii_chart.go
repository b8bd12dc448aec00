package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/earlypension/internal/tui/tuistyles"
)

const (
	yAxisWidth = 10
	markerChar = '┃'
)

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// Marker is a vertical line drawn at one point index
type Marker struct {
	Index int
	Label string
}

// ASCIIChart displays a simple line chart
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels, one per point
	Marker     *Marker
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string

	// Plain disables colour, for output that is written to files or pipes
	Plain bool
}

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:      title,
		Width:      72,
		Height:     15,
		ShowLegend: true,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithMarker draws a vertical line through the point at index
func (c *ASCIIChart) WithMarker(index int, label string) *ASCIIChart {
	c.Marker = &Marker{Index: index, Label: label}
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxisLabel sets the caption under the X axis
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// WithPlain toggles colour output
func (c *ASCIIChart) WithPlain(plain bool) *ASCIIChart {
	c.Plain = plain
	return c
}

func (c *ASCIIChart) style(s lipgloss.Style) lipgloss.Style {
	if c.Plain {
		return lipgloss.NewStyle()
	}
	return s
}

func (c *ASCIIChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		if len(s.Points) > n {
			n = len(s.Points)
		}
	}
	return n
}

func (c *ASCIIChart) plotWidth() int {
	w := c.Width - yAxisWidth - 3
	if w < 2 {
		w = 2
	}
	return w
}

// column maps a point index onto the plot area
func (c *ASCIIChart) column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if c.pointCount() == 0 {
		return c.style(tuistyles.InfoStyle).Render("No data to display")
	}
	if c.Height < 2 {
		c.Height = 2
	}

	var content strings.Builder

	if c.Title != "" {
		content.WriteString(c.style(tuistyles.TitleStyle).Render(c.Title))
		content.WriteString("\n\n")
	}

	minVal, maxVal := c.getGlobalMinMax()
	content.WriteString(c.renderGrid(minVal, maxVal))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(c.style(tuistyles.SubtitleStyle.Italic(true)).Render(c.XAxisLabel))
	}

	if c.ShowLegend {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

// getGlobalMinMax finds the min and max values across all series
func (c *ASCIIChart) getGlobalMinMax() (float64, float64) {
	globalMin := math.Inf(1)
	globalMax := math.Inf(-1)

	for _, series := range c.Series {
		for _, point := range series.Points {
			globalMin = math.Min(globalMin, point)
			globalMax = math.Max(globalMax, point)
		}
	}

	// asset curves start at zero, keep the floor there
	if globalMin > 0 {
		globalMin = 0
	}
	if globalMax <= globalMin {
		globalMax = globalMin + 1
	}
	globalMax += (globalMax - globalMin) * 0.05

	return globalMin, globalMax
}

func (c *ASCIIChart) row(value, minVal, maxVal float64) int {
	return c.Height - 1 - int(math.Round((value-minVal)/(maxVal-minVal)*float64(c.Height-1)))
}

// renderGrid renders the chart grid with data points
func (c *ASCIIChart) renderGrid(minVal, maxVal float64) string {
	width := c.plotWidth()
	n := c.pointCount()

	grid := make([][]rune, c.Height)
	owner := make([][]int, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
		owner[i] = make([]int, width)
		for j := range owner[i] {
			owner[i][j] = -1
		}
	}

	for seriesIdx, series := range c.Series {
		pointChar := c.getSeriesChar(seriesIdx)
		for i, point := range series.Points {
			x := c.column(i, n, width)
			y := c.row(point, minVal, maxVal)
			if i > 0 {
				prevX := c.column(i-1, n, width)
				prevY := c.row(series.Points[i-1], minVal, maxVal)
				c.drawLine(grid, owner, prevX, prevY, x, y, pointChar, seriesIdx)
			} else {
				c.set(grid, owner, x, y, pointChar, seriesIdx)
			}
		}
	}

	if c.Marker != nil && c.Marker.Index >= 0 && c.Marker.Index < n {
		col := c.column(c.Marker.Index, n, width)
		for y := range grid {
			if grid[y][col] == ' ' {
				grid[y][col] = markerChar
				owner[y][col] = len(c.Series)
			}
		}
	}

	var output strings.Builder
	axisStyle := c.style(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted))

	for i, line := range grid {
		yValue := maxVal - (float64(i)/float64(c.Height-1))*(maxVal-minVal)
		label := ""
		if i%3 == 0 || i == c.Height-1 {
			label = formatChartValue(yValue)
		}
		output.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yAxisWidth, label)))
		output.WriteString(" │ ")
		output.WriteString(c.renderLine(line, owner[i]))
		output.WriteString("\n")
	}

	output.WriteString(strings.Repeat(" ", yAxisWidth))
	output.WriteString(" └─")
	output.WriteString(strings.Repeat("─", width))

	if len(c.Labels) > 0 {
		output.WriteString("\n")
		output.WriteString(c.renderXAxisLabels(width, n))
	}

	return output.String()
}

// renderLine colours each cell by the series that drew it
func (c *ASCIIChart) renderLine(line []rune, owner []int) string {
	var sb strings.Builder
	for i, r := range line {
		switch {
		case owner[i] < 0:
			sb.WriteRune(r)
		case owner[i] == len(c.Series):
			sb.WriteString(c.style(lipgloss.NewStyle().Foreground(tuistyles.ColorMarker)).Render(string(r)))
		default:
			sb.WriteString(c.style(lipgloss.NewStyle().Foreground(c.Series[owner[i]].Color)).Render(string(r)))
		}
	}
	return sb.String()
}

func (c *ASCIIChart) set(grid [][]rune, owner [][]int, x, y int, char rune, series int) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	if grid[y][x] == ' ' {
		grid[y][x] = char
		owner[y][x] = series
	}
}

// getSeriesChar returns the character to use for a series
func (c *ASCIIChart) getSeriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine connects two points using Bresenham's algorithm
func (c *ASCIIChart) drawLine(grid [][]rune, owner [][]int, x0, y0, x1, y1 int, char rune, series int) {
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)

	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}

	err := dx - dy
	x, y := x0, y0

	for {
		c.set(grid, owner, x, y, char, series)

		if x == x1 && y == y1 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// renderXAxisLabels places up to six labels under their points
func (c *ASCIIChart) renderXAxisLabels(width, n int) string {
	const maxLabels = 6

	line := []rune(strings.Repeat(" ", width+8))
	step := (n + maxLabels - 1) / maxLabels
	if step == 0 {
		step = 1
	}

	place := func(i int) {
		if i >= len(c.Labels) {
			return
		}
		col := c.column(i, n, width)
		label := []rune(c.Labels[i])
		if col > 0 && line[col-1] != ' ' {
			return
		}
		for j := col; j < col+len(label) && j < len(line); j++ {
			if line[j] != ' ' {
				return
			}
		}
		copy(line[col:], label)
	}

	for i := 0; i < n; i += step {
		place(i)
	}
	place(n - 1)

	return strings.Repeat(" ", yAxisWidth+3) +
		c.style(lipgloss.NewStyle().Foreground(tuistyles.ColorMuted)).Render(strings.TrimRight(string(line), " "))
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	var items []string

	for i, series := range c.Series {
		symbol := c.style(lipgloss.NewStyle().Foreground(series.Color)).Render(string(c.getSeriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, series.Name))
	}
	if c.Marker != nil && c.Marker.Label != "" {
		symbol := c.style(lipgloss.NewStyle().Foreground(tuistyles.ColorMarker)).Render(string(markerChar))
		items = append(items, fmt.Sprintf("%s %s", symbol, c.Marker.Label))
	}

	return "Legend: " + strings.Join(items, " • ")
}

// formatChartValue abbreviates an amount for the Y axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1e9:
		return fmt.Sprintf("%.1fB", value/1e9)
	case math.Abs(value) >= 1e6:
		return fmt.Sprintf("%.0fM", value/1e6)
	case math.Abs(value) >= 1e3:
		return fmt.Sprintf("%.0fK", value/1e3)
	}
	return fmt.Sprintf("%.0f", value)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
