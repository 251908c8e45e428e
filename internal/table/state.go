package table

import (
	"fmt"
	"strings"
)

// Column identifies a sortable word-table column
type Column int

const (
	ColumnWord Column = iota
	ColumnCount
	ColumnFrequency
)

// Direction is the order applied to numeric columns
type Direction int

const (
	Desc Direction = iota
	Asc
)

// SortState is the sort configuration of one table.
// Each table owns its own value; states are never shared.
type SortState struct {
	Column    Column
	Direction Direction
}

// DefaultSortState sorts by count, largest first
func DefaultSortState() SortState {
	return SortState{Column: ColumnCount, Direction: Desc}
}

// Click returns the state after the header of column is activated.
// WORD always becomes active with fixed ascending order. A numeric column
// flips direction when already active, otherwise it becomes active as DESC.
func Click(state SortState, column Column) SortState {
	switch column {
	case ColumnWord:
		return SortState{Column: ColumnWord, Direction: Asc}
	case ColumnCount, ColumnFrequency:
		if state.Column == column {
			return SortState{Column: column, Direction: state.Direction.Flip()}
		}
		return SortState{Column: column, Direction: Desc}
	default:
		return state
	}
}

// Indicator returns the arrow shown next to a column header: only the
// active numeric column has one.
func Indicator(state SortState, column Column) string {
	if column == ColumnWord || state.Column != column {
		return ""
	}
	if state.Direction == Desc {
		return "↓"
	}
	return "↑"
}

// Flip returns the opposite direction
func (d Direction) Flip() Direction {
	if d == Desc {
		return Asc
	}
	return Desc
}

func (d Direction) String() string {
	if d == Asc {
		return "asc"
	}
	return "desc"
}

func (c Column) String() string {
	switch c {
	case ColumnWord:
		return "word"
	case ColumnCount:
		return "count"
	case ColumnFrequency:
		return "frequency"
	default:
		return fmt.Sprintf("column(%d)", int(c))
	}
}

// ParseColumn parses a column name as used by flags and config
func ParseColumn(s string) (Column, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "word":
		return ColumnWord, nil
	case "count":
		return ColumnCount, nil
	case "frequency", "freq":
		return ColumnFrequency, nil
	default:
		return 0, fmt.Errorf("unknown column %q (must be one of: word, count, frequency)", s)
	}
}

// ParseDirection parses "asc" or "desc"
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "desc", "":
		return Desc, nil
	case "asc":
		return Asc, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (must be asc or desc)", s)
	}
}
