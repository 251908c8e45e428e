package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Handle is a live rendering of one chart. A handle must be disposed
// before another rendering takes its place.
type Handle interface {
	// View returns what the host displays: terminal text, or the image path
	View() string
	Dispose() error
}

// Renderer turns a dataset into a rendering handle
type Renderer interface {
	Render(split Split) (Handle, error)
}

// TerminalRenderer draws a split as a proportional bar with a legend
type TerminalRenderer struct {
	Width int
}

// NewTerminalRenderer creates a terminal renderer with the given bar width
func NewTerminalRenderer(width int) *TerminalRenderer {
	if width < 10 {
		width = 10
	}
	return &TerminalRenderer{Width: width}
}

// Render draws split
func (r *TerminalRenderer) Render(split Split) (Handle, error) {
	if split.Empty() {
		return nil, fmt.Errorf("chart %s has no data", split.Name)
	}

	first := int(math.Round(split.Share(0) * float64(r.Width)))
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(split.Colors[0].Hex())).Render(strings.Repeat("█", first)) +
		lipgloss.NewStyle().Foreground(lipgloss.Color(split.Colors[1].Hex())).Render(strings.Repeat("█", r.Width-first))

	lines := []string{
		lipgloss.NewStyle().Bold(true).Render(split.Title),
		bar,
	}
	for i := range split.Labels {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(split.Colors[i].Hex())).Render("■")
		legend := swatch + " " + split.Tooltip(i)
		if !split.Percent {
			legend += fmt.Sprintf(" (%.1f%%)", split.Share(i)*100)
		}
		lines = append(lines, legend)
	}

	return &terminalHandle{view: strings.Join(lines, "\n")}, nil
}

type terminalHandle struct {
	view     string
	disposed bool
}

func (h *terminalHandle) View() string {
	if h.disposed {
		return ""
	}
	return h.view
}

func (h *terminalHandle) Dispose() error {
	if h.disposed {
		return fmt.Errorf("chart handle already disposed")
	}
	h.disposed = true
	h.view = ""
	return nil
}
