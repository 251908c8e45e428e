package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/textlens/internal/dashboard"
	"github.com/yildizm/textlens/internal/stats"
	"github.com/yildizm/textlens/internal/table"
)

// terminalFormatter renders a snapshot for terminal display
type terminalFormatter struct {
	opts    *termfmt.TerminalOptions
	maxRows int
}

// NewTerminal creates a terminal formatter
func NewTerminal(o Options) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = o.Color
	opts.Emoji = o.Emoji
	return &terminalFormatter{opts: opts, maxRows: o.MaxRows}
}

func (f *terminalFormatter) Format(snap *dashboard.Snapshot) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)

	if snap.ErrorMessage != "" {
		fmt.Fprintf(&b, "%s %s\n\n", termfmt.GetEmoji("error", f.opts), snap.ErrorMessage)
	}

	if !snap.HasResult() {
		b.WriteString(NoData + "\n")
		return []byte(b.String()), nil
	}

	f.writeStatistics(&b, snap.Result)
	f.writeCharts(&b, snap.Charts)
	f.writeTable(&b, HeadingUnique, snap.UniqueRows, snap.UniqueSort, true)
	f.writeTable(&b, HeadingStopwords, snap.StopRows, snap.StopSort, false)

	return []byte(b.String()), nil
}

// writeHeader draws a box sized by display width, not bytes
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Статистический анализ текста"
	width := lipgloss.Width(header)

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

func (f *terminalFormatter) writeStatistics(b *strings.Builder, r *stats.AnalysisResult) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " " + HeadingStats + "\n")

	metrics := SummaryMetrics(r)
	items := make([]termfmt.TreeItem, 0, len(metrics))
	for i, m := range metrics {
		items = append(items, termfmt.TreeItem{Label: m.Label, Value: m.Value, Last: i == len(metrics)-1})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeCharts(b *strings.Builder, views []dashboard.ChartView) {
	for _, v := range views {
		if v.View == "" {
			continue
		}
		b.WriteString(v.View + "\n\n")
	}
}

// writeTable renders one word table. An empty stop-word table is omitted;
// an empty unique-word table shows a placeholder.
func (f *terminalFormatter) writeTable(b *strings.Builder, heading string, rows []stats.WordStat, state table.SortState, required bool) {
	if len(rows) == 0 {
		if required {
			b.WriteString(heading + "\n" + NoData + "\n\n")
		}
		return
	}

	b.WriteString(heading + "\n")

	shown := limitRows(rows, f.maxRows)
	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		Headers(ColumnHeaders(state)...)

	if f.opts.Color {
		headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1E3A8A", Dark: "#93C5FD"}).Padding(0, 1)
		cellStyle := lipgloss.NewStyle().Padding(0, 1)
		t = t.BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#4B5563"})).
			StyleFunc(func(row, col int) lipgloss.Style {
				if row == lgtable.HeaderRow {
					return headerStyle
				}
				if col > 0 {
					return cellStyle.Align(lipgloss.Right)
				}
				return cellStyle
			})
	} else {
		plain := lipgloss.NewStyle().Padding(0, 1)
		t = t.StyleFunc(func(row, col int) lipgloss.Style { return plain })
	}

	for _, w := range shown {
		t.Row(RowCells(w)...)
	}

	b.WriteString(t.Render() + "\n")
	if hidden := len(rows) - len(shown); hidden > 0 {
		fmt.Fprintf(b, "… и ещё %d\n", hidden)
	}
	b.WriteString("\n")
}
