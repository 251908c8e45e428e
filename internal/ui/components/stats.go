package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/textlens/internal/formatter"
	"github.com/yildizm/textlens/internal/stats"
)

// Water ratio above which the water card is highlighted
const waterWarnRatio = 0.3

// StatsCard represents one statistics metric
type StatsCard struct {
	Title  string
	Value  string
	Status string // "success", "warning", "error", "info"
	Width  int
	Color  bool
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value string) *StatsCard {
	return &StatsCard{
		Title:  title,
		Value:  value,
		Status: "info",
		Width:  22,
		Color:  true,
	}
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetWidth sets the outer width of the card
func (s *StatsCard) SetWidth(width int) *StatsCard {
	s.Width = width
	return s
}

// SetColor toggles colored output
func (s *StatsCard) SetColor(color bool) *StatsCard {
	s.Color = color
	return s
}

// Render renders the stats card
func (s *StatsCard) Render() string {
	successColor := lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	warningColor := lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	errorColor := lipgloss.AdaptiveColor{Light: "#EF4444", Dark: "#F87171"}
	infoColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	bodyColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	titleStyle := lipgloss.NewStyle()
	valueStyle := lipgloss.NewStyle().Bold(true)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)

	if s.Color {
		var valueColor lipgloss.AdaptiveColor
		switch s.Status {
		case "success":
			valueColor = successColor
		case "warning":
			valueColor = warningColor
		case "error":
			valueColor = errorColor
		default:
			valueColor = infoColor
		}
		titleStyle = titleStyle.Foreground(bodyColor)
		valueStyle = valueStyle.Foreground(valueColor)
		boxStyle = boxStyle.BorderForeground(bodyColor)
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(s.Title),
		valueStyle.Render(s.Value),
	)

	// Width excludes the border in lipgloss
	return boxStyle.Width(max(s.Width-2, 1)).Render(content)
}

// StatsGrid lays cards out in rows
type StatsGrid struct {
	cards   []*StatsCard
	columns int
}

// NewStatsGrid creates a grid with the given number of columns
func NewStatsGrid(columns int) *StatsGrid {
	if columns < 1 {
		columns = 1
	}
	return &StatsGrid{columns: columns}
}

// AddCard adds a card to the grid
func (g *StatsGrid) AddCard(card *StatsCard) {
	g.cards = append(g.cards, card)
}

// Cards returns the cards in insertion order
func (g *StatsGrid) Cards() []*StatsCard {
	return g.cards
}

// Render renders the grid
func (g *StatsGrid) Render() string {
	if len(g.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(g.cards); i += g.columns {
		end := min(i+g.columns, len(g.cards))
		rendered := make([]string, 0, end-i)
		for _, card := range g.cards[i:end] {
			rendered = append(rendered, card.Render())
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rendered...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// SummaryGrid builds one card per summary metric of result. Cards share
// width so that columns line up inside totalWidth.
func SummaryGrid(result *stats.AnalysisResult, totalWidth int, color bool) *StatsGrid {
	columns := 3
	if totalWidth > 0 && totalWidth < 60 {
		columns = 2
	}
	grid := NewStatsGrid(columns)

	cardWidth := 22
	if totalWidth > 0 {
		cardWidth = max(totalWidth/columns, 16)
	}

	metrics := formatter.SummaryMetrics(result)
	for i, m := range metrics {
		card := NewStatsCard(m.Label, m.Value).SetWidth(cardWidth).SetColor(color)
		// water is the last metric
		if i == len(metrics)-1 && result.WaterPercentage > waterWarnRatio {
			card.SetStatus("warning")
		}
		grid.AddCard(card)
	}
	return grid
}
