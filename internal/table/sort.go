package table

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/yildizm/textlens/internal/stats"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is the collation locale used when none is configured
const DefaultLocale = "ru"

// Sorter orders word statistics for display. The collator keeps internal
// buffers, so comparisons are serialized.
type Sorter struct {
	mu       sync.Mutex
	collator *collate.Collator
}

// NewSorter creates a sorter that compares words using the given BCP 47 locale
func NewSorter(locale string) (*Sorter, error) {
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid locale %q: %w", locale, err)
	}
	return &Sorter{collator: collate.New(tag)}, nil
}

// DefaultSorter returns a sorter for DefaultLocale
func DefaultSorter() *Sorter {
	return &Sorter{collator: collate.New(language.Russian)}
}

// Sort returns a new slice holding items ordered by state. items is not
// modified. Equal keys keep their input order.
func (s *Sorter) Sort(items []stats.WordStat, state SortState) []stats.WordStat {
	sorted := slices.Clone(items)
	if len(sorted) < 2 {
		return sorted
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	slices.SortStableFunc(sorted, s.compareFunc(state))
	return sorted
}

func (s *Sorter) compareFunc(state SortState) func(a, b stats.WordStat) int {
	switch state.Column {
	case ColumnWord:
		return func(a, b stats.WordStat) int {
			return s.collator.CompareString(a.Word, b.Word)
		}
	case ColumnFrequency:
		return directed(state.Direction, func(a, b stats.WordStat) int {
			return cmp.Compare(a.Frequency, b.Frequency)
		})
	default:
		return directed(state.Direction, func(a, b stats.WordStat) int {
			return cmp.Compare(a.Count, b.Count)
		})
	}
}

func directed(d Direction, compare func(a, b stats.WordStat) int) func(a, b stats.WordStat) int {
	if d == Asc {
		return compare
	}
	return func(a, b stats.WordStat) int {
		return compare(b, a)
	}
}
