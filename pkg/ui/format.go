package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Mode represents how table updates are written to the console
type Mode int

const (
	// ModeAuto automatically picks a mode based on terminal capabilities
	ModeAuto Mode = iota
	// ModeShort redraws the table in place (erase-then-reprint)
	ModeShort
	// ModeAppend writes every update as new lines, log style
	ModeAppend
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeAuto:
		return "auto"
	case ModeShort:
		return "short"
	case ModeAppend:
		return "append"
	default:
		return "unknown"
	}
}

// ParseMode parses a string into a Mode value
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ModeAuto, nil
	case "short", "inplace":
		return ModeShort, nil
	case "append", "log":
		return ModeAppend, nil
	default:
		return ModeAuto, fmt.Errorf("unknown output mode: %s", s)
	}
}

// DetectMode determines the appropriate output mode for the given stream.
// In-place redraw needs a terminal that honors cursor movement sequences;
// anything piped, redirected, or dumb gets append-only output.
func DetectMode(output *os.File) Mode {
	// Check if we're being piped or redirected
	if !isatty.IsTerminal(output.Fd()) && !isatty.IsCygwinTerminal(output.Fd()) {
		return ModeAppend
	}

	// Dumb terminals (TERM=dumb reports the Ascii profile) don't handle
	// cursor movement sequences
	if termenv.ColorProfile() == termenv.Ascii {
		return ModeAppend
	}

	return ModeShort
}

// Resolve maps ModeAuto to a concrete mode for the given stream
func (m Mode) Resolve(output *os.File) Mode {
	if m != ModeAuto {
		return m
	}
	return DetectMode(output)
}
