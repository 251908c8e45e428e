package formatter

import (
	"encoding/json"

	"github.com/yildizm/textlens/internal/dashboard"
	"github.com/yildizm/textlens/internal/stats"
	"github.com/yildizm/textlens/internal/table"
)

// jsonFormatter formats a snapshot as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	Summary     *stats.AnalysisResult `json:"summary,omitempty"`
	UniqueWords *TableOutput          `json:"unique_words,omitempty"`
	Stopwords   *TableOutput          `json:"stopwords,omitempty"`
	Charts      []*ChartOutput        `json:"charts,omitempty"`
	Busy        bool                  `json:"busy"`
	Error       string                `json:"error,omitempty"`
}

// TableOutput is one sorted word table
type TableOutput struct {
	SortColumn    string           `json:"sort_column"`
	SortDirection string           `json:"sort_direction"`
	Rows          []stats.WordStat `json:"rows"`
}

// ChartOutput is one chart dataset and, for image renderers, its file
type ChartOutput struct {
	Name   string    `json:"name"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	File   string    `json:"file,omitempty"`
}

func (f *jsonFormatter) Format(snap *dashboard.Snapshot) ([]byte, error) {
	output := &JSONOutput{
		Busy:  snap.Busy(),
		Error: snap.ErrorMessage,
	}

	if snap.HasResult() {
		summary := *snap.Result
		summary.UniqueWords = nil
		summary.Stopwords = nil
		output.Summary = &summary
		output.UniqueWords = createTableOutput(snap.UniqueRows, snap.UniqueSort)
		output.Stopwords = createTableOutput(snap.StopRows, snap.StopSort)
		output.Charts = createChartOutputs(snap.Charts)
	}

	return json.MarshalIndent(output, "", "  ")
}

func createTableOutput(rows []stats.WordStat, state table.SortState) *TableOutput {
	if rows == nil {
		rows = []stats.WordStat{}
	}
	return &TableOutput{
		SortColumn:    state.Column.String(),
		SortDirection: state.Direction.String(),
		Rows:          rows,
	}
}

func createChartOutputs(views []dashboard.ChartView) []*ChartOutput {
	outputs := make([]*ChartOutput, 0, len(views))
	for _, v := range views {
		outputs = append(outputs, &ChartOutput{
			Name:   v.Name,
			Labels: v.Split.Labels[:],
			Values: v.Split.Values[:],
			File:   v.Path,
		})
	}
	return outputs
}
