package stattab

import (
	"io"
	"os"

	"github.com/arthur-debert/stattab/pkg/errors"
	"github.com/arthur-debert/stattab/pkg/terminal"
)

// FileMode controls how the export file is written
type FileMode string

const (
	// FileOverwrite rewrites the export file from scratch on every row
	FileOverwrite FileMode = "overwrite"
	// FileAppend appends printed blocks to the export file
	FileAppend FileMode = "append"
)

// ResetMode selects the policy that decides when a terminal-width change
// forces a full table repaint
type ResetMode string

const (
	// OnTerminalChange resets whenever the terminal width changes at all
	OnTerminalChange ResetMode = "terminal_change"
	// OnTerminalShrink resets only when the terminal gets narrower
	OnTerminalShrink ResetMode = "terminal_shrink"
	// OnTableShrink resets when the terminal no longer fits the widest
	// stat line printed so far. This is the default.
	OnTableShrink ResetMode = "table_shrink"
)

// DefaultFilePath is where the table export lands when none is configured
const DefaultFilePath = "statistics.log"

// ParseResetMode parses a configuration string into a ResetMode
func ParseResetMode(s string) (ResetMode, error) {
	switch s {
	case "", string(OnTableShrink):
		return OnTableShrink, nil
	case string(OnTerminalChange):
		return OnTerminalChange, nil
	case string(OnTerminalShrink):
		return OnTerminalShrink, nil
	default:
		return OnTableShrink, errors.Newf(errors.ErrConfigValid, "unknown reset mode %q", s)
	}
}

// ParseFileMode parses a configuration string into a FileMode
func ParseFileMode(s string) (FileMode, error) {
	switch s {
	case "", string(FileOverwrite), "w":
		return FileOverwrite, nil
	case string(FileAppend), "a":
		return FileAppend, nil
	default:
		return FileOverwrite, errors.Newf(errors.ErrConfigValid, "unknown file mode %q", s)
	}
}

// Config holds the immutable collector options. The zero value is not
// usable; start from DefaultConfig and override fields as needed.
type Config struct {
	// PrintTitle includes the title block in console and file output
	PrintTitle bool
	// ShortFormat redraws the table in place. When false, every update
	// is appended log-style and nothing is ever erased.
	ShortFormat bool
	// PrintStats enables console output entirely
	PrintStats bool
	// WriteFile mirrors printed output to FilePath
	WriteFile bool
	// FileMode selects overwrite-per-row or append behavior
	FileMode FileMode
	// FilePath is the export file location
	FilePath string
	// ResetMode selects the full-repaint policy
	ResetMode ResetMode

	// Out receives console output. Defaults to os.Stdout.
	Out io.Writer
	// Width queries the terminal width. Defaults to terminal.Columns.
	Width terminal.WidthFunc
}

// DefaultConfig returns the documented defaults
func DefaultConfig() Config {
	return Config{
		PrintTitle:  true,
		ShortFormat: true,
		PrintStats:  true,
		WriteFile:   false,
		FileMode:    FileOverwrite,
		FilePath:    DefaultFilePath,
		ResetMode:   OnTableShrink,
		Out:         os.Stdout,
		Width:       terminal.Columns,
	}
}

// normalize fills the seams a caller may have left unset
func (c Config) normalize() Config {
	if c.Out == nil {
		c.Out = os.Stdout
	}
	if c.Width == nil {
		c.Width = terminal.Columns
	}
	if c.FilePath == "" {
		c.FilePath = DefaultFilePath
	}
	if c.FileMode == "" {
		c.FileMode = FileOverwrite
	}
	if c.ResetMode == "" {
		c.ResetMode = OnTableShrink
	}
	return c
}
