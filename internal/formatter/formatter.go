package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/textlens/internal/dashboard"
)

// Formatter renders a dashboard snapshot
type Formatter interface {
	Format(snap *dashboard.Snapshot) ([]byte, error)
}

// Options controls presentation details shared by the formatters
type Options struct {
	Color bool
	Emoji bool
	// MaxRows limits each word table; zero shows every row
	MaxRows int
}

// DefaultOptions returns colorful, emoji-enabled output with all rows
func DefaultOptions() Options {
	return Options{Color: true, Emoji: true}
}

// Formats lists the accepted output format names
var Formats = []string{"terminal", "json", "markdown", "csv"}

// New returns the formatter for format
func New(format string, opts Options) (Formatter, error) {
	switch strings.ToLower(format) {
	case "", "terminal", "text":
		return NewTerminal(opts), nil
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(opts), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}
