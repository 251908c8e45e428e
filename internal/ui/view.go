package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/textlens/internal/coordinator"
	"github.com/yildizm/textlens/internal/dashboard"
	"github.com/yildizm/textlens/internal/emoji"
	"github.com/yildizm/textlens/internal/formatter"
	"github.com/yildizm/textlens/internal/ui/components"
)

const (
	appTitle         = "Статистический анализ больших текстов"
	analyzeTextLabel = "Анализировать текст"
	analyzeFileLabel = "Проанализировать файл"

	minChartPanelWidth = 30
)

// View renders the dashboard
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.dash.Snapshot()
	sections := []string{
		m.styles.Title.Render(emoji.GetEmoji("statistics") + " " + appTitle),
		m.panel(focusText, m.text.View()),
		m.panel(focusPath, emoji.GetEmoji("file")+" "+m.path.View()),
		m.renderTriggers(snap.Phase),
	}
	if snap.ErrorMessage != "" {
		sections = append(sections, m.styles.Error.Render(emoji.GetEmoji("error")+" "+snap.ErrorMessage))
	}

	if snap.HasResult() {
		sections = append(sections,
			m.styles.Label.Render(formatter.HeadingStats),
			components.SummaryGrid(snap.Result, m.width, m.color).Render(),
		)
		if charts := m.renderCharts(snap); charts != "" {
			sections = append(sections, charts)
		}
		sections = append(sections, m.renderTables(snap))
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) panel(area focusArea, body string) string {
	if m.focus == area {
		return m.styles.FocusedPanel.Render(body)
	}
	return m.styles.Panel.Render(body)
}

// renderTriggers shows both actions; the running one carries the spinner
// and both are dimmed while a request is in flight.
func (m *Model) renderTriggers(phase coordinator.Phase) string {
	textLabel := m.keys.AnalyzeText.Help().Key + " " + analyzeTextLabel
	fileLabel := m.keys.AnalyzeFile.Help().Key + " " + analyzeFileLabel

	switch phase {
	case coordinator.PhaseRunningText:
		textLabel += " " + m.spinner.View()
	case coordinator.PhaseRunningFile:
		fileLabel += " " + m.spinner.View()
	}

	style := m.styles.Label
	if phase != coordinator.PhaseIdle {
		style = m.styles.Muted
	}
	return style.Render(textLabel) + "   " + style.Render(fileLabel)
}

func (m *Model) renderCharts(snap *dashboard.Snapshot) string {
	panels := m.chartPanels(snap)
	if len(panels) == 0 {
		return ""
	}

	// panels sit side by side only when each gets a usable width
	if m.width/len(panels) < minChartPanelWidth {
		rendered := make([]string, 0, len(panels))
		for _, p := range panels {
			rendered = append(rendered, p.Render())
		}
		return lipgloss.JoinVertical(lipgloss.Left, rendered...)
	}

	width := m.width / len(panels)
	for _, p := range panels {
		p.Width = width
	}
	return components.ChartRow(panels...)
}

// chartPanels frames every rendered chart. Slots left empty by a zero
// split get no panel. The chart view carries its own title.
func (m *Model) chartPanels(snap *dashboard.Snapshot) []*components.ChartPanel {
	panels := make([]*components.ChartPanel, 0, len(snap.Charts))
	for _, c := range snap.Charts {
		if c.View == "" {
			continue
		}
		p := components.NewChartPanel("", c.View, 0)
		p.Color = m.color
		panels = append(panels, p)
	}
	return panels
}

// renderTables shows the unique-words table, or a placeholder when it is
// empty; the stop-words table only appears when it has rows.
func (m *Model) renderTables(snap *dashboard.Snapshot) string {
	uniqueBody := formatter.NoData
	if len(snap.UniqueRows) > 0 {
		uniqueBody = m.unique.View()
	}
	tables := []string{m.panel(focusUnique, m.styles.Label.Render(formatter.HeadingUnique)+"\n"+uniqueBody)}

	if len(snap.StopRows) > 0 {
		tables = append(tables, m.panel(focusStop, m.styles.Label.Render(formatter.HeadingStopwords)+"\n"+m.stop.View()))
	}

	if m.width >= 2*defaultWidth {
		return lipgloss.JoinHorizontal(lipgloss.Top, tables...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, tables...)
}
