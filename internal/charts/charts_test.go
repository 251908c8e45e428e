package charts

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/textlens/internal/stats"
)

func sampleResult() *stats.AnalysisResult {
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
	}
}

func TestProjectExample(t *testing.T) {
	p, ok := Project(sampleResult())
	if !ok {
		t.Fatal("Project() returned ok=false for a result")
	}

	if p.CharacterSplit.Values != [2]float64{80, 20} {
		t.Errorf("characterSplit = %v, want [80 20]", p.CharacterSplit.Values)
	}
	if p.WordSplit.Values != [2]float64{15, 5} {
		t.Errorf("wordSplit = %v, want [15 5]", p.WordSplit.Values)
	}
	if p.WaterSplit.Values != [2]float64{10, 90} {
		t.Errorf("waterSplit = %v, want [10 90]", p.WaterSplit.Values)
	}
	if !p.WaterSplit.Percent || p.CharacterSplit.Percent {
		t.Error("only the water split is a percentage split")
	}
}

func TestProjectSumsMatchSource(t *testing.T) {
	results := []*stats.AnalysisResult{
		{Characters: 0, CharactersNoSpaces: 0, Words: 0, UniqueWordsCount: 0},
		{Characters: 7, CharactersNoSpaces: 7, Words: 1, UniqueWordsCount: 1},
		{Characters: 12345, CharactersNoSpaces: 10001, Words: 2000, UniqueWordsCount: 3},
	}
	for _, r := range results {
		p, _ := Project(r)
		if got := p.CharacterSplit.Total(); got != float64(r.Characters) {
			t.Errorf("characterSplit total = %v, want %d", got, r.Characters)
		}
		if got := p.WordSplit.Total(); got != float64(r.Words) {
			t.Errorf("wordSplit total = %v, want %d", got, r.Words)
		}
	}
}

func TestProjectWaterRounding(t *testing.T) {
	tests := []struct {
		water float64
		want  [2]float64
	}{
		{0.12346, [2]float64{12.35, 87.65}},
		{0, [2]float64{0, 100}},
		{1, [2]float64{100, 0}},
		{1.7, [2]float64{100, 0}},
	}
	for _, tt := range tests {
		p, _ := Project(&stats.AnalysisResult{WaterPercentage: tt.water})
		if p.WaterSplit.Values != tt.want {
			t.Errorf("water %v -> %v, want %v", tt.water, p.WaterSplit.Values, tt.want)
		}
	}
}

func TestProjectNil(t *testing.T) {
	if _, ok := Project(nil); ok {
		t.Error("Project(nil) should report ok=false")
	}
}

func TestProjectDoesNotMutate(t *testing.T) {
	r := sampleResult()
	before := *r
	_, _ = Project(r)
	if r.Characters != before.Characters || r.WaterPercentage != before.WaterPercentage || len(r.UniqueWords) != 2 {
		t.Error("Project mutated its input")
	}
}

func TestTooltip(t *testing.T) {
	p, _ := Project(sampleResult())
	if got := p.WaterSplit.Tooltip(0); got != "Вода: 10%" {
		t.Errorf("water tooltip = %q", got)
	}
	if got := p.WaterSplit.Tooltip(1); got != "Полезное содержание: 90%" {
		t.Errorf("content tooltip = %q", got)
	}
	if got := p.CharacterSplit.Tooltip(1); got != "Пробелы: 20" {
		t.Errorf("space tooltip = %q", got)
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{54, 162, 235}).Hex(); got != "#36a2eb" {
		t.Errorf("Hex() = %q", got)
	}
}

// recordingRenderer records the order of renders and disposals
type recordingRenderer struct {
	events []string
	fail   string
}

type recordingHandle struct {
	name string
	r    *recordingRenderer
}

func (h *recordingHandle) View() string { return h.name }

func (h *recordingHandle) Dispose() error {
	h.r.events = append(h.r.events, "dispose:"+h.name)
	return nil
}

func (r *recordingRenderer) Render(split Split) (Handle, error) {
	if split.Name == r.fail {
		return nil, errors.New("render failed")
	}
	r.events = append(r.events, "render:"+split.Name)
	return &recordingHandle{name: split.Name, r: r}, nil
}

func TestBoardDisposesBeforeReplace(t *testing.T) {
	r := &recordingRenderer{}
	board := NewBoard(r, nil)

	p, _ := Project(sampleResult())
	if err := board.Show(p); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if err := board.Show(p); err != nil {
		t.Fatalf("Show() error = %v", err)
	}

	want := []string{
		"render:characters", "render:words", "render:water",
		"dispose:characters", "render:characters",
		"dispose:words", "render:words",
		"dispose:water", "render:water",
	}
	if strings.Join(r.events, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v\nwant %v", r.events, want)
	}

	if err := board.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(board.Views()) != 0 {
		t.Errorf("Views() after Close = %v", board.Views())
	}
}

func TestBoardSkipsEmptySplits(t *testing.T) {
	r := &recordingRenderer{}
	board := NewBoard(r, nil)

	p, _ := Project(&stats.AnalysisResult{WaterPercentage: 0.2})
	if err := board.Show(p); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if got := board.Views(); len(got) != 1 || got[0] != NameWater {
		t.Errorf("Views() = %v, want only water", got)
	}
}

func TestBoardFailureLeavesSlotEmpty(t *testing.T) {
	r := &recordingRenderer{}
	board := NewBoard(r, nil)
	p, _ := Project(sampleResult())
	_ = board.Show(p)

	r.fail = NameWords
	if err := board.Show(p); err == nil {
		t.Fatal("expected error from failing renderer")
	}
	for _, slot := range board.Slots() {
		if slot.Name() == NameWords && slot.View() != "" {
			t.Errorf("failed slot still shows stale chart %q", slot.View())
		}
	}
}

func TestTerminalRenderer(t *testing.T) {
	p, _ := Project(sampleResult())
	h, err := NewTerminalRenderer(20).Render(p.CharacterSplit)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	view := h.View()
	for _, want := range []string{"Символы", "Символы без пробелов: 80", "Пробелы: 20", "(80.0%)"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if err := h.Dispose(); err != nil {
		t.Fatalf("Dispose() error = %v", err)
	}
	if h.View() != "" {
		t.Error("disposed handle should render nothing")
	}
	if err := h.Dispose(); err == nil {
		t.Error("second Dispose should fail")
	}
}

func TestImageRendererLifecycle(t *testing.T) {
	dir := t.TempDir()
	r, err := NewImageRenderer(dir, FormatPNG, 300, 300)
	if err != nil {
		t.Fatalf("NewImageRenderer() error = %v", err)
	}

	p, _ := Project(sampleResult())
	h, err := r.Render(p.WaterSplit)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	path := filepath.Join(dir, "water.png")
	if h.View() != path {
		t.Errorf("View() = %q, want %q", h.View(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart file not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "\x89PNG") {
		t.Error("chart file is not a PNG")
	}

	if err := h.Dispose(); err != nil {
		t.Fatalf("Dispose() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("chart file should be removed after Dispose, stat err = %v", err)
	}
}

func TestNewImageRendererValidation(t *testing.T) {
	if _, err := NewImageRenderer(t.TempDir(), "gif", 100, 100); err == nil {
		t.Error("expected error for unsupported format")
	}
	if _, err := NewImageRenderer(t.TempDir(), FormatSVG, 0, 100); err == nil {
		t.Error("expected error for zero width")
	}
}
