// Package terminal wraps the small set of console primitives the table
// renderer needs: querying the terminal width, erasing previously printed
// lines, and truncating a line to a column limit.
package terminal

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// ANSI control sequences used to erase a printed line
const (
	escCursorPrevLine = "\033[F" // CPL: move cursor to start of previous line
	escEraseLine      = "\033[K" // EL: erase from cursor to end of line
)

// DefaultColumns is used when no terminal is attached or the size query fails
const DefaultColumns = 160

// WidthFunc returns the current console width in columns. The collector
// takes one as a configuration seam so tests can pin the width.
type WidthFunc func() int

// Columns returns the current width of the terminal attached to stdout,
// or DefaultColumns when stdout is not a terminal or the query fails.
func Columns() int {
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return DefaultColumns
	}
	cols, _, err := term.GetSize(int(fd))
	if err != nil || cols <= 0 {
		return DefaultColumns
	}
	return cols
}

// EraseLines moves the cursor up and clears n previously printed lines.
func EraseLines(w io.Writer, n int) {
	for i := 0; i < n; i++ {
		fmt.Fprint(w, escCursorPrevLine+escEraseLine)
	}
}

// Truncate cuts s to at most limit characters. Widths are character
// counts, not display cells. A non-positive limit leaves s intact.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
