package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yildizm/textlens/internal/charts"
	"github.com/yildizm/textlens/internal/client"
	"github.com/yildizm/textlens/internal/coordinator"
	"github.com/yildizm/textlens/internal/stats"
	"github.com/yildizm/textlens/internal/table"
)

type stubAnalyzer struct {
	result *stats.AnalysisResult
	err    error
	calls  int
}

func (s *stubAnalyzer) AnalyzeText(context.Context, string, string) (*stats.AnalysisResult, error) {
	s.calls++
	return s.result, s.err
}

func (s *stubAnalyzer) AnalyzeFile(context.Context, string, *client.File) (*stats.AnalysisResult, error) {
	s.calls++
	return s.result, s.err
}

// countingRenderer tracks live handles so leaks show up as a non-zero balance
type countingRenderer struct {
	rendered int
	disposed int
}

func (r *countingRenderer) live() int { return r.rendered - r.disposed }

func (r *countingRenderer) Render(split charts.Split) (charts.Handle, error) {
	r.rendered++
	return &countingHandle{r: r, view: fmt.Sprintf("%s:%v", split.Name, split.Values)}, nil
}

type countingHandle struct {
	r    *countingRenderer
	view string
}

func (h *countingHandle) View() string { return h.view }

func (h *countingHandle) Dispose() error {
	h.r.disposed++
	return nil
}

func exampleResult() *stats.AnalysisResult {
	return &stats.AnalysisResult{
		Characters:         100,
		CharactersNoSpaces: 80,
		Words:              20,
		UniqueWordsCount:   15,
		Sentences:          5,
		WaterPercentage:    0.1,
		UniqueWords: []stats.WordStat{
			{Word: "a", Count: 5, Frequency: 0.25},
			{Word: "b", Count: 3, Frequency: 0.15},
		},
		Stopwords: []stats.WordStat{},
	}
}

func words(items []stats.WordStat) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Word
	}
	return out
}

func TestAnalyzeTextExample(t *testing.T) {
	renderer := &countingRenderer{}
	d := New(&stubAnalyzer{result: exampleResult()}, WithRenderer(renderer))
	defer func() { _ = d.Close() }()

	if err := d.AnalyzeText(context.Background(), "text"); err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}

	snap := d.Snapshot()
	if !snap.HasResult() {
		t.Fatal("expected a result")
	}
	if got := snap.Projection.CharacterSplit.Values; got != [2]float64{80, 20} {
		t.Errorf("characterSplit = %v", got)
	}
	if got := snap.Projection.WordSplit.Values; got != [2]float64{15, 5} {
		t.Errorf("wordSplit = %v", got)
	}
	if got := snap.Projection.WaterSplit.Values; got != [2]float64{10, 90} {
		t.Errorf("waterSplit = %v", got)
	}
	if got := strings.Join(words(snap.UniqueRows), ","); got != "a,b" {
		t.Errorf("default unique order = %s, want a,b", got)
	}
	if len(snap.Charts) != 3 {
		t.Fatalf("expected 3 chart views, got %d", len(snap.Charts))
	}
	if renderer.live() != 3 {
		t.Errorf("expected 3 live renderings, got %d", renderer.live())
	}
}

func TestFailureKeepsPreviousResult(t *testing.T) {
	analyzer := &stubAnalyzer{result: exampleResult()}
	d := New(analyzer, WithRenderer(&countingRenderer{}))

	if err := d.AnalyzeText(context.Background(), "first"); err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	previous := d.Result()

	analyzer.result = nil
	analyzer.err = &client.AnalysisError{Kind: client.ErrKindServerRejected, Message: "bad text", StatusCode: 500}

	err := d.AnalyzeText(context.Background(), "second")
	if err == nil {
		t.Fatal("expected an error")
	}
	if d.Result() != previous {
		t.Error("a failed request must not replace the previous result")
	}
	if d.ErrorMessage() != "bad text" {
		t.Errorf("ErrorMessage() = %q, want %q", d.ErrorMessage(), "bad text")
	}
	if d.Busy() {
		t.Error("dashboard should be idle")
	}
}

func TestEmptyObjectResponseKeepsPreviousResult(t *testing.T) {
	bodies := []string{
		`{"characters": 100, "characters_no_spaces": 80, "words": 20, "unique_words_count": 15,
		  "sentences": 5, "water_percentage": 0.1,
		  "unique_words": [{"word": "a", "count": 5, "frequency": 0.25}], "stopwords": []}`,
		`{}`,
	}
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, bodies[min(calls, len(bodies)-1)])
		calls++
	}))
	defer server.Close()

	c, err := client.New(&client.Config{BaseURL: server.URL}, nil)
	if err != nil {
		t.Fatalf("client.New() error = %v", err)
	}
	d := New(c, WithRenderer(&countingRenderer{}))
	defer func() { _ = d.Close() }()

	if err := d.AnalyzeText(context.Background(), "first"); err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}
	previous := d.Result()

	err = d.AnalyzeText(context.Background(), "second")
	if !client.IsMalformedResponse(err) {
		t.Fatalf("expected malformed response error, got %v", err)
	}
	if d.Result() != previous || d.Result().Characters != 100 {
		t.Errorf("a malformed response must not replace the previous result, got %+v", d.Result())
	}
	if d.ErrorMessage() != client.MsgMalformedResponse {
		t.Errorf("ErrorMessage() = %q, want %q", d.ErrorMessage(), client.MsgMalformedResponse)
	}
}

func TestAnalyzeFileWithoutFile(t *testing.T) {
	analyzer := &stubAnalyzer{result: exampleResult()}
	d := New(analyzer)

	err := d.AnalyzeFile(context.Background(), nil)
	if !client.IsNoFileSelected(err) {
		t.Fatalf("expected no-file error, got %v", err)
	}
	if analyzer.calls != 0 {
		t.Error("no request should be issued")
	}
	if d.ErrorMessage() != client.MsgNoFileSelected {
		t.Errorf("ErrorMessage() = %q", d.ErrorMessage())
	}

	if _, ok := d.PrepareFile(nil); ok {
		t.Error("PrepareFile(nil) must not start a job")
	}
	if d.Busy() {
		t.Error("in-flight must never be set for a missing file")
	}
}

func TestPrepareWhileBusy(t *testing.T) {
	d := New(&stubAnalyzer{result: exampleResult()})

	job, ok := d.PrepareText("one")
	if !ok {
		t.Fatal("PrepareText() should succeed when idle")
	}
	if d.Phase() != coordinator.PhaseRunningText {
		t.Fatalf("unexpected phase %s", d.Phase())
	}

	if _, ok := d.PrepareText("two"); ok {
		t.Error("second text job must not start while busy")
	}
	if _, ok := d.PrepareFile(&client.File{Name: "a.txt", Reader: strings.NewReader("a")}); ok {
		t.Error("file job must not start while a text job is in flight")
	}
	if err := d.AnalyzeText(context.Background(), "three"); !errors.Is(err, coordinator.ErrBusy) {
		t.Errorf("expected ErrBusy, got %v", err)
	}

	if _, ok := d.Apply(job.Run(context.Background())); !ok {
		t.Fatal("completion should be applied")
	}
	if d.Busy() {
		t.Error("dashboard should be idle after apply")
	}
}

func TestApplyIgnoresStaleCompletion(t *testing.T) {
	d := New(&stubAnalyzer{result: exampleResult()})

	job, _ := d.PrepareText("one")
	completion := job.Run(context.Background())

	stale := completion
	stale.Ticket.ID = "someone-else"
	if _, ok := d.Apply(stale); ok {
		t.Error("stale completion must be ignored")
	}
	if d.Result() != nil {
		t.Error("stale completion must not store a result")
	}

	if _, ok := d.Apply(completion); !ok {
		t.Error("current completion should be applied")
	}
	if d.Result() == nil {
		t.Error("expected result after apply")
	}
}

func TestChartsDisposedBeforeReplace(t *testing.T) {
	renderer := &countingRenderer{}
	d := New(&stubAnalyzer{result: exampleResult()}, WithRenderer(renderer))

	for i := 0; i < 3; i++ {
		if err := d.AnalyzeText(context.Background(), "text"); err != nil {
			t.Fatalf("AnalyzeText() error = %v", err)
		}
		if renderer.live() != 3 {
			t.Fatalf("iteration %d: expected 3 live renderings, got %d", i, renderer.live())
		}
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if renderer.live() != 0 {
		t.Errorf("expected all renderings disposed, %d live", renderer.live())
	}
}

func TestIndependentSortStates(t *testing.T) {
	result := exampleResult()
	result.Stopwords = []stats.WordStat{
		{Word: "и", Count: 4, Frequency: 0.2},
		{Word: "в", Count: 6, Frequency: 0.3},
	}
	d := New(&stubAnalyzer{result: result})
	if err := d.AnalyzeText(context.Background(), "text"); err != nil {
		t.Fatalf("AnalyzeText() error = %v", err)
	}

	d.ClickUnique(table.ColumnCount)
	if d.UniqueSort() != (table.SortState{Column: table.ColumnCount, Direction: table.Asc}) {
		t.Errorf("unique sort = %+v", d.UniqueSort())
	}
	if d.StopSort() != table.DefaultSortState() {
		t.Error("stop-word sort must not follow unique-word clicks")
	}

	if got := strings.Join(words(d.UniqueRows()), ","); got != "b,a" {
		t.Errorf("unique rows = %s, want b,a", got)
	}
	if got := strings.Join(words(d.StopRows()), ","); got != "в,и" {
		t.Errorf("stop rows = %s, want в,и", got)
	}

	d.ClickStop(table.ColumnWord)
	if got := strings.Join(words(d.StopRows()), ","); got != "в,и" {
		t.Errorf("stop rows by word = %s, want в,и", got)
	}

	if d.Result().UniqueWords[0].Word != "a" {
		t.Error("sorting must not reorder the stored result")
	}
}

func TestSnapshotWithoutResult(t *testing.T) {
	d := New(&stubAnalyzer{})
	snap := d.Snapshot()
	if snap.HasResult() || snap.Busy() {
		t.Errorf("unexpected snapshot %+v", snap)
	}
	if len(snap.Charts) != 0 || snap.UniqueRows != nil {
		t.Error("empty dashboard should have no rows or charts")
	}
	if snap.UniqueSort != table.DefaultSortState() {
		t.Error("default sort state expected")
	}
}

func TestJobRunRecoversPanic(t *testing.T) {
	d := New(panicAnalyzer{})

	job, _ := d.PrepareFile(&client.File{Name: "a.txt", Reader: strings.NewReader("a")})
	done, ok := d.Apply(job.Run(context.Background()))
	if !ok {
		t.Fatal("completion should be applied")
	}
	if done.Err == nil {
		t.Fatal("expected an error")
	}
	if d.ErrorMessage() != client.MsgFileFailed {
		t.Errorf("ErrorMessage() = %q", d.ErrorMessage())
	}
	if d.Busy() {
		t.Error("dashboard should be idle")
	}
}

type panicAnalyzer struct{}

func (panicAnalyzer) AnalyzeText(context.Context, string, string) (*stats.AnalysisResult, error) {
	panic("boom")
}

func (panicAnalyzer) AnalyzeFile(context.Context, string, *client.File) (*stats.AnalysisResult, error) {
	panic("boom")
}
