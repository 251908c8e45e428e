package table

import (
	"slices"
	"testing"

	"github.com/yildizm/textlens/internal/stats"
)

func words(items []stats.WordStat) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Word
	}
	return out
}

func TestSortByWordIgnoresDirection(t *testing.T) {
	items := []stats.WordStat{
		{Word: "яблоко", Count: 1, Frequency: 0.1},
		{Word: "арбуз", Count: 3, Frequency: 0.3},
		{Word: "Банан", Count: 2, Frequency: 0.2},
	}
	want := []string{"арбуз", "Банан", "яблоко"}
	sorter := DefaultSorter()

	for _, dir := range []Direction{Asc, Desc} {
		got := words(sorter.Sort(items, SortState{Column: ColumnWord, Direction: dir}))
		if !slices.Equal(got, want) {
			t.Errorf("Sort(word, %s) = %v, want %v", dir, got, want)
		}
	}
}

func TestSortNumericColumns(t *testing.T) {
	items := []stats.WordStat{
		{Word: "b", Count: 3, Frequency: 0.15},
		{Word: "a", Count: 5, Frequency: 0.25},
		{Word: "c", Count: 1, Frequency: 0.05},
	}
	sorter := DefaultSorter()

	tests := []struct {
		name  string
		state SortState
		want  []string
	}{
		{"count desc", SortState{ColumnCount, Desc}, []string{"a", "b", "c"}},
		{"count asc", SortState{ColumnCount, Asc}, []string{"c", "b", "a"}},
		{"frequency desc", SortState{ColumnFrequency, Desc}, []string{"a", "b", "c"}},
		{"frequency asc", SortState{ColumnFrequency, Asc}, []string{"c", "b", "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := words(sorter.Sort(items, tt.state))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Sort() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortIsStable(t *testing.T) {
	items := []stats.WordStat{
		{Word: "x", Count: 2, Frequency: 0.2},
		{Word: "y", Count: 1, Frequency: 0.1},
		{Word: "z", Count: 2, Frequency: 0.2},
		{Word: "w", Count: 1, Frequency: 0.1},
	}
	sorter := DefaultSorter()

	desc := words(sorter.Sort(items, SortState{ColumnCount, Desc}))
	if want := []string{"x", "z", "y", "w"}; !slices.Equal(desc, want) {
		t.Errorf("desc = %v, want %v", desc, want)
	}
	asc := words(sorter.Sort(items, SortState{ColumnFrequency, Asc}))
	if want := []string{"y", "w", "x", "z"}; !slices.Equal(asc, want) {
		t.Errorf("asc = %v, want %v", asc, want)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	items := []stats.WordStat{
		{Word: "b", Count: 1, Frequency: 0.5},
		{Word: "a", Count: 1, Frequency: 0.5},
	}
	original := slices.Clone(items)

	_ = DefaultSorter().Sort(items, SortState{Column: ColumnWord})
	if !slices.Equal(items, original) {
		t.Errorf("input mutated: %v", items)
	}
}

func TestSortDefaultStateExample(t *testing.T) {
	items := []stats.WordStat{
		{Word: "a", Count: 5, Frequency: 0.25},
		{Word: "b", Count: 3, Frequency: 0.15},
	}
	got := words(DefaultSorter().Sort(items, DefaultSortState()))
	if want := []string{"a", "b"}; !slices.Equal(got, want) {
		t.Errorf("default sort = %v, want %v", got, want)
	}
}

func TestClick(t *testing.T) {
	tests := []struct {
		name   string
		state  SortState
		column Column
		want   SortState
	}{
		{"same numeric column flips", SortState{ColumnCount, Desc}, ColumnCount, SortState{ColumnCount, Asc}},
		{"flip back", SortState{ColumnCount, Asc}, ColumnCount, SortState{ColumnCount, Desc}},
		{"other numeric column resets to desc", SortState{ColumnCount, Asc}, ColumnFrequency, SortState{ColumnFrequency, Desc}},
		{"word always ascending", SortState{ColumnCount, Desc}, ColumnWord, SortState{ColumnWord, Asc}},
		{"word twice stays ascending", SortState{ColumnWord, Asc}, ColumnWord, SortState{ColumnWord, Asc}},
		{"numeric from word is desc", SortState{ColumnWord, Asc}, ColumnFrequency, SortState{ColumnFrequency, Desc}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Click(tt.state, tt.column); got != tt.want {
				t.Errorf("Click() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestIndicator(t *testing.T) {
	state := SortState{Column: ColumnCount, Direction: Desc}
	if got := Indicator(state, ColumnCount); got != "↓" {
		t.Errorf("Indicator(count desc) = %q", got)
	}
	if got := Indicator(state, ColumnFrequency); got != "" {
		t.Errorf("inactive column should have no indicator, got %q", got)
	}
	if got := Indicator(SortState{ColumnFrequency, Asc}, ColumnFrequency); got != "↑" {
		t.Errorf("Indicator(frequency asc) = %q", got)
	}
	if got := Indicator(SortState{ColumnWord, Asc}, ColumnWord); got != "" {
		t.Errorf("word column should have no indicator, got %q", got)
	}
}

func TestParseColumn(t *testing.T) {
	for _, name := range []string{"word", "count", "frequency"} {
		col, err := ParseColumn(name)
		if err != nil {
			t.Fatalf("ParseColumn(%q) error = %v", name, err)
		}
		if col.String() != name {
			t.Errorf("round trip %q -> %q", name, col.String())
		}
	}
	if _, err := ParseColumn("rank"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestNewSorterInvalidLocale(t *testing.T) {
	if _, err := NewSorter("!!"); err == nil {
		t.Error("expected error for invalid locale")
	}
	if _, err := NewSorter(""); err != nil {
		t.Errorf("empty locale should fall back to default: %v", err)
	}
}
