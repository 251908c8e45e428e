package cli

import (
	"fmt"
	"io"

	"github.com/yildizm/textlens/internal/emoji"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// printStatus writes one status line prefixed with the glyph for key
func printStatus(w io.Writer, key, format string, args ...interface{}) {
	fmt.Fprintf(w, GetEmoji(key)+" "+format+"\n", args...)
}
