package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/textlens/internal/dashboard"
	"github.com/yildizm/textlens/internal/stats"
	"github.com/yildizm/textlens/internal/table"
)

// markdownFormatter formats a snapshot as a Markdown report
type markdownFormatter struct {
	maxRows int
	now     func() time.Time
}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown(o Options) Formatter {
	return &markdownFormatter{maxRows: o.MaxRows, now: time.Now}
}

func (f *markdownFormatter) Format(snap *dashboard.Snapshot) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Статистический анализ текста\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", f.now().Format("2006-01-02 15:04:05"))

	if snap.ErrorMessage != "" {
		fmt.Fprintf(&b, "> **Ошибка:** %s\n\n", snap.ErrorMessage)
	}

	if !snap.HasResult() {
		b.WriteString(NoData + "\n")
		return []byte(b.String()), nil
	}

	f.writeSummaryTable(&b, snap.Result)
	f.writeCharts(&b, snap.Charts)
	f.writeWordTable(&b, HeadingUnique, snap.UniqueRows, snap.UniqueSort, true)
	f.writeWordTable(&b, HeadingStopwords, snap.StopRows, snap.StopSort, false)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, r *stats.AnalysisResult) {
	fmt.Fprintf(b, "## %s\n\n", strings.TrimSuffix(HeadingStats, ":"))
	b.WriteString("| Показатель | Значение |\n")
	b.WriteString("|------------|----------|\n")
	for _, m := range SummaryMetrics(r) {
		fmt.Fprintf(b, "| %s | %s |\n", m.Label, m.Value)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeCharts(b *strings.Builder, views []dashboard.ChartView) {
	if len(views) == 0 {
		return
	}
	b.WriteString("## Диаграммы\n\n")
	for _, v := range views {
		if v.Path != "" {
			fmt.Fprintf(b, "![%s](%s)\n\n", v.Title, v.Path)
			continue
		}
		fmt.Fprintf(b, "**%s**: %s; %s\n\n", v.Title, v.Split.Tooltip(0), v.Split.Tooltip(1))
	}
}

func (f *markdownFormatter) writeWordTable(b *strings.Builder, heading string, rows []stats.WordStat, state table.SortState, required bool) {
	if len(rows) == 0 {
		if required {
			fmt.Fprintf(b, "## %s\n\n%s\n\n", strings.TrimSuffix(heading, ":"), NoData)
		}
		return
	}

	fmt.Fprintf(b, "## %s\n\n", strings.TrimSuffix(heading, ":"))
	b.WriteString("| " + strings.Join(ColumnHeaders(state), " | ") + " |\n")
	b.WriteString("|-------|-----------:|--------:|\n")

	shown := limitRows(rows, f.maxRows)
	for _, w := range shown {
		cells := RowCells(w)
		cells[0] = escapeMarkdownCell(cells[0])
		b.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}
	if hidden := len(rows) - len(shown); hidden > 0 {
		fmt.Fprintf(b, "\n*… и ещё %d*\n", hidden)
	}
	b.WriteString("\n")
}

func escapeMarkdownCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
