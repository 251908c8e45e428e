package dashboard

import (
	"github.com/yildizm/textlens/internal/charts"
	"github.com/yildizm/textlens/internal/coordinator"
	"github.com/yildizm/textlens/internal/stats"
	"github.com/yildizm/textlens/internal/table"
)

// ChartView is the rendered form of one chart
type ChartView struct {
	Name  string
	Title string
	View  string
	Path  string
	Split charts.Split
}

// Snapshot is a point-in-time copy of what the dashboard displays
type Snapshot struct {
	Result       *stats.AnalysisResult
	Projection   charts.Projection
	UniqueRows   []stats.WordStat
	StopRows     []stats.WordStat
	UniqueSort   table.SortState
	StopSort     table.SortState
	Charts       []ChartView
	Phase        coordinator.Phase
	ErrorMessage string
}

// HasResult reports whether a successful analysis has been recorded
func (s *Snapshot) HasResult() bool {
	return s.Result != nil
}

// Busy reports whether an analysis was in flight when the snapshot was taken
func (s *Snapshot) Busy() bool {
	return s.Phase != coordinator.PhaseIdle
}

// Snapshot captures the current display state
func (d *Dashboard) Snapshot() *Snapshot {
	snap := &Snapshot{
		Result:       d.result,
		UniqueSort:   d.uniqueSort,
		StopSort:     d.stopSort,
		Phase:        d.coord.Phase(),
		ErrorMessage: d.coord.ErrorMessage(),
	}
	if d.result == nil {
		return snap
	}

	snap.Projection = d.projection
	snap.UniqueRows = d.UniqueRows()
	snap.StopRows = d.StopRows()

	splits := d.projection.Splits()
	for i, slot := range d.board.Slots() {
		snap.Charts = append(snap.Charts, ChartView{
			Name:  slot.Name(),
			Title: splits[i].Title,
			View:  slot.View(),
			Path:  slot.Path(),
			Split: splits[i],
		})
	}
	return snap
}
