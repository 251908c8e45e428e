package components

import (
	"github.com/charmbracelet/lipgloss"
)

// ChartPanel frames one rendered chart, under a title when one is set
type ChartPanel struct {
	Title string
	Body  string
	Width int
	Color bool
}

// NewChartPanel creates a chart panel
func NewChartPanel(title, body string, width int) *ChartPanel {
	return &ChartPanel{Title: title, Body: body, Width: width, Color: true}
}

// Render renders the panel
func (p *ChartPanel) Render() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	if p.Color {
		titleStyle = titleStyle.Foreground(lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"})
		boxStyle = boxStyle.BorderForeground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	}
	if p.Width > 2 {
		boxStyle = boxStyle.Width(p.Width - 2)
	}

	if p.Title == "" {
		return boxStyle.Render(p.Body)
	}
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(p.Title), p.Body))
}

// ChartRow renders panels side by side
func ChartRow(panels ...*ChartPanel) string {
	rendered := make([]string, 0, len(panels))
	for _, p := range panels {
		rendered = append(rendered, p.Render())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}
