package formatter

import (
	"strconv"

	"github.com/yildizm/textlens/internal/stats"
	"github.com/yildizm/textlens/internal/table"
)

const (
	HeadingStats     = "Статистика текста:"
	HeadingUnique    = "Уникальные слова:"
	HeadingStopwords = "Стоп-слова:"
	NoData           = "Нет данных для отображения."
)

var columnTitles = map[table.Column]string{
	table.ColumnWord:      "Слово",
	table.ColumnCount:     "Количество",
	table.ColumnFrequency: "Частота",
}

// Metric is one line of the statistics summary
type Metric struct {
	Label string
	Value string
}

// SummaryMetrics returns the labelled statistics lines of r
func SummaryMetrics(r *stats.AnalysisResult) []Metric {
	return []Metric{
		{"Количество символов", stats.FormatNumber(r.Characters)},
		{"Количество символов без пробелов", stats.FormatNumber(r.CharactersNoSpaces)},
		{"Количество слов", stats.FormatNumber(r.Words)},
		{"Количество уникальных слов", stats.FormatNumber(r.UniqueWordsCount)},
		{"Количество предложений", stats.FormatNumber(r.Sentences)},
		{"Вода", stats.FormatWater(r.WaterPercentage)},
	}
}

// ColumnHeaders returns the column titles with the sort arrow of state
func ColumnHeaders(state table.SortState) []string {
	cols := []table.Column{table.ColumnWord, table.ColumnCount, table.ColumnFrequency}
	out := make([]string, len(cols))
	for i, col := range cols {
		out[i] = columnTitles[col]
		if arrow := table.Indicator(state, col); arrow != "" {
			out[i] += " " + arrow
		}
	}
	return out
}

func limitRows(rows []stats.WordStat, max int) []stats.WordStat {
	if max > 0 && len(rows) > max {
		return rows[:max]
	}
	return rows
}

// RowCells returns the word, count and formatted frequency of w
func RowCells(w stats.WordStat) []string {
	return []string{w.Word, strconv.Itoa(w.Count), stats.FormatFrequency(w.Frequency)}
}
