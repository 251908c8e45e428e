package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/yildizm/textlens/internal/dashboard"
	"github.com/yildizm/textlens/internal/stats"
)

// csvFormatter writes both word tables as CSV rows, in display order
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(snap *dashboard.Snapshot) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	if err := writer.Write([]string{"table", "rank", "word", "count", "frequency"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	if snap.HasResult() {
		if err := writeCSVRows(writer, "unique_words", snap.UniqueRows); err != nil {
			return nil, err
		}
		if err := writeCSVRows(writer, "stopwords", snap.StopRows); err != nil {
			return nil, err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}

func writeCSVRows(writer *csv.Writer, name string, rows []stats.WordStat) error {
	for i, w := range rows {
		record := []string{
			name,
			strconv.Itoa(i + 1),
			w.Word,
			strconv.Itoa(w.Count),
			strconv.FormatFloat(w.Frequency, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	return nil
}
