package stattab

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/stattab/pkg/errors"
)

// Export renders the full logical table as one multi-line block: title,
// headers, and every stored row with its info lines. It is the
// authoritative, untruncated representation at current header widths,
// regardless of what is on screen.
func (c *Collector) Export() string {
	return c.export(false)
}

// ExportLast renders the table with only the most recent row
func (c *Collector) ExportLast() string {
	return c.export(true)
}

func (c *Collector) export(lastOnly bool) string {
	var sb strings.Builder

	titleStr := ""
	if c.cfg.PrintTitle && c.title != "" {
		titleStr = "| " + c.title + " |"
		sb.WriteString(strings.Repeat("-", runeLen(titleStr)))
		sb.WriteString("\n")
		sb.WriteString(titleStr)
		sb.WriteString("\n")
	}

	headerStr := c.renderHeaderRow()
	rule := strings.Repeat("-", runeLen(headerStr))
	topRule := strings.Repeat("-", max(runeLen(headerStr), runeLen(titleStr)))
	sb.WriteString(topRule)
	sb.WriteString("\n")
	sb.WriteString(headerStr)
	sb.WriteString("\n")
	sb.WriteString(rule)

	stats := c.stats
	if lastOnly {
		stats = nil
		if c.last != nil {
			stats = []*Stat{c.last}
		}
	}
	for _, st := range stats {
		sb.WriteString("\n")
		sb.WriteString(c.renderStatRow(st))
		sb.WriteString("\n")
		sb.WriteString(rule)
		if len(st.info) > 0 {
			sb.WriteString("\n")
			sb.WriteString(strings.Join(st.info, "\n"))
			sb.WriteString("\n")
			sb.WriteString(rule)
		}
	}
	return sb.String()
}

// ShowTable prints the full export to the console and returns it. With
// eraseLive, the in-place short-format table is erased first so the
// export replaces it instead of stacking below.
func (c *Collector) ShowTable(eraseLive bool) string {
	table := c.export(false)
	if eraseLive {
		c.deleteTable()
	}
	fmt.Fprintln(c.cfg.Out, table)
	return table
}

// deleteTable erases everything currently on screen and schedules a
// full repaint for the next print
func (c *Collector) deleteTable() {
	c.table.updateTitle = true
	c.table.updateHeaders = true
	c.clearConsole()
}

// WriteFile writes the table export plus a trailing newline to path
func (c *Collector) WriteFile(path string, mode FileMode, lastOnly bool) error {
	flags := os.O_CREATE | os.O_WRONLY
	if mode == FileAppend {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "opening export file %s", path)
	}
	defer f.Close()

	if _, err := f.WriteString(c.export(lastOnly) + "\n"); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "writing export file %s", path)
	}
	return nil
}

// PrintParams dumps the collector's title and column set for debugging
func (c *Collector) PrintParams(w io.Writer) {
	fmt.Fprintf(w, "title: %s\n", c.title)
	fmt.Fprint(w, "headers:")
	for _, e := range c.headers.entries {
		fmt.Fprintf(w, " %s=%q(%d)", e.key, e.name, e.minWidth)
	}
	fmt.Fprintln(w)
}

func (c *Collector) shouldRewriteFile() bool {
	return c.cfg.WriteFile && c.cfg.FileMode == FileOverwrite
}

// rewriteFile re-exports the whole table to the configured file before
// a new row lands, so the file stays in sync even if the process dies
// before the next flush
func (c *Collector) rewriteFile() error {
	if !c.shouldRewriteFile() {
		return nil
	}
	return c.WriteFile(c.cfg.FilePath, FileOverwrite, false)
}

// appendFileLine mirrors one printed block to the export file
func (c *Collector) appendFileLine(block string) error {
	if !c.cfg.WriteFile {
		return nil
	}
	f, err := os.OpenFile(c.cfg.FilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileCreate, "opening export file %s", c.cfg.FilePath)
	}
	defer f.Close()

	if _, err := f.WriteString(block + "\n"); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "writing export file %s", c.cfg.FilePath)
	}
	return nil
}
