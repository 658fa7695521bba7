// Package stattab renders an incrementally updated statistics table on a
// text console, redrawing it in place as new rows arrive. A Collector
// owns the column set, the row history, and the render state that tracks
// what is currently on screen so updates erase exactly the lines they
// previously printed.
//
// A Collector is not safe for concurrent use; callers embedding it in a
// multi-threaded context must serialize access themselves.
package stattab

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/stattab/pkg/errors"
	"github.com/arthur-debert/stattab/pkg/logging"
	"github.com/arthur-debert/stattab/pkg/terminal"
)

// Collector accumulates stat rows and keeps the console table current
type Collector struct {
	cfg     Config
	title   string
	headers *headerRegistry
	refs    referenceSet
	stats   []*Stat
	last    *Stat
	table   renderState
	logger  zerolog.Logger
}

// New creates a collector for the given ordered columns. In overwrite
// file mode any pre-existing export file is removed up front.
func New(headers []Header, title string, cfg Config) (*Collector, error) {
	cfg = cfg.normalize()
	registry, err := newHeaderRegistry(headers)
	if err != nil {
		return nil, err
	}
	c := &Collector{
		cfg:     cfg,
		headers: registry,
		refs:    make(referenceSet),
		table:   newRenderState(),
		logger:  logging.GetLogger("collector"),
	}
	c.SetTitle(title)
	if c.shouldRewriteFile() {
		if err := os.Remove(cfg.FilePath); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, errors.ErrFileCreate, "removing stale export file %s", cfg.FilePath)
		}
	}
	return c, nil
}

// Title returns the current table title
func (c *Collector) Title() string {
	return c.title
}

// Headers returns the ordered column definitions
func (c *Collector) Headers() []Header {
	return c.headers.headers()
}

// Stats returns the stored row history, oldest first
func (c *Collector) Stats() []*Stat {
	out := make([]*Stat, len(c.stats))
	copy(out, c.stats)
	return out
}

// LastStat returns the most recently stored row, or nil
func (c *Collector) LastStat() *Stat {
	return c.last
}

// SetTitle replaces the table title and schedules a title reprint
func (c *Collector) SetTitle(title string) {
	c.title = title
	c.table.updateTitle = true
	if title == "" {
		c.table.titleWidth = 0
	}
}

// RenameHeaders updates column display names, growing widths as needed.
// An unknown key resets the table, prints a diagnostic, and returns the
// error; the header set is left unchanged.
func (c *Collector) RenameHeaders(names map[string]string) error {
	if err := c.headers.rename(names); err != nil {
		return c.resetAndReport(err)
	}
	c.table.updateHeaders = true
	return nil
}

// Bind links a header to a field inside an external mutable target.
// Every Add or Update that omits the header pulls the target's current
// value. Unlike the row operations, bind errors surface directly: this
// is a setup-time call, not part of the per-row path.
func (c *Collector) Bind(header string, target any, sel FieldSelector, force bool) error {
	if _, ok := c.headers.get(header); !ok {
		return errors.Newf(errors.ErrUnknownHeader, "wrong header key %q", header)
	}
	if _, exists := c.refs[header]; exists && !force {
		return errors.Newf(errors.ErrDuplicateBinding, "header key %q already has a binding", header)
	}
	if err := sel.checkTarget(target); err != nil {
		return err
	}
	c.refs[header] = binding{target: target, sel: sel}
	return nil
}

// Add stores a new row and repaints the table. The row's key set must
// match the header set exactly once reference bindings are resolved;
// any integrity violation resets the table, prints a diagnostic, and
// returns the typed error with history untouched.
func (c *Collector) Add(row Row) (*Stat, error) {
	if err := c.rewriteFile(); err != nil {
		return nil, err
	}
	merged, err := c.refs.resolveInto(row)
	if err != nil {
		return nil, c.resetAndReport(err)
	}
	info := popInfo(merged)
	if len(merged) != c.headers.len() {
		return nil, c.resetAndReport(errors.Newf(errors.ErrRowArity,
			"incorrect stat quantity (%d != %d)", len(merged), c.headers.len()))
	}
	values, err := c.resize(merged, true)
	if err != nil {
		return nil, c.resetAndReport(err)
	}

	st := &Stat{values: make([]string, c.headers.len()), info: info}
	for i, v := range values {
		st.values[i] = v
	}
	c.stats = append(c.stats, st)
	c.last = st
	c.logger.Debug().Int("rows", len(c.stats)).Msg("stat added")
	return st, c.printTable()
}

// Update merges a partial row into the most recent one and repaints.
// Keys absent from the row keep their previous value; an info entry is
// appended to the row's existing info lines.
func (c *Collector) Update(row Row) (*Stat, error) {
	if c.last == nil {
		return nil, c.resetAndReport(errors.New(errors.ErrNoCurrentRow, "no stat available"))
	}
	merged, err := c.refs.resolveInto(row)
	if err != nil {
		return nil, c.resetAndReport(err)
	}
	info := popInfo(merged)
	if len(merged) > c.headers.len() {
		return nil, c.resetAndReport(errors.Newf(errors.ErrRowArity,
			"incorrect stat quantity (%d > %d)", len(merged), c.headers.len()))
	}
	values, err := c.resize(merged, true)
	if err != nil {
		return nil, c.resetAndReport(err)
	}

	st := c.last.clone()
	st.info = append(st.info, info...)
	for i, v := range values {
		st.values[i] = v
	}
	c.last = st
	c.stats[len(c.stats)-1] = st
	c.logger.Debug().Msg("stat updated")
	return st, c.printTable()
}

// ResizeByRow grows column widths to fit a row's values without marking
// headers for reprint. Useful to pre-widen columns before the first
// print so early rows don't trigger a repaint per row.
func (c *Collector) ResizeByRow(row Row) error {
	if _, err := c.resize(row, false); err != nil {
		return c.resetAndReport(err)
	}
	return nil
}

// resize converts row values to display text keyed by column index,
// growing column widths to fit. markDirty propagates growth into a
// pending header reprint.
func (c *Collector) resize(row Row, markDirty bool) (map[int]string, error) {
	values := make(map[int]string, len(row))
	for key, value := range row {
		entry, ok := c.headers.get(key)
		if !ok {
			return nil, errors.Newf(errors.ErrUnknownHeader, "wrong stat key %q", key)
		}
		text := displayText(value)
		values[entry.index] = text
		if entry.growToFit(text) && markDirty {
			c.table.updateHeaders = true
		}
	}
	return values, nil
}

// resetAndReport is the uniform recovery action for integrity
// violations inside the row operations: clear render state, print a
// one-line diagnostic, hand the typed error back to the caller. The
// next print repaints the whole table, keeping the console well-formed.
func (c *Collector) resetAndReport(err error) error {
	reason := err.Error()
	var statErr *errors.StatError
	if e, ok := err.(*errors.StatError); ok {
		statErr = e
		reason = e.Message
	}
	if statErr != nil {
		c.logger.Warn().Str("code", string(statErr.Code)).Msg(reason)
	} else {
		c.logger.Warn().Msg(reason)
	}
	c.resetTable(reason, true)
	return err
}

// resetTable clears render state only; headers and history survive
func (c *Collector) resetTable(reason string, printText bool) {
	c.table = newRenderState()
	if printText {
		text := "Reset table"
		if reason != "" {
			text += ": " + reason
		}
		fmt.Fprintln(c.cfg.Out, text)
	}
}

// printTable runs the render pipeline: decide on a reset, erase what
// must be repainted, then emit title, headers, and the current row.
func (c *Collector) printTable() error {
	if !c.cfg.PrintStats {
		return nil
	}
	newLimit := c.cfg.Width()
	if c.table.shouldReset(newLimit, c.cfg.ResetMode) {
		c.resetTable("", false)
	} else {
		c.table.markTitleDirtyIfOverflow(newLimit)
		c.table.markHeadersDirtyIfOverflow(newLimit)
	}
	c.table.lineLimit = newLimit

	c.clearConsole()
	if err := c.printTitle(); err != nil {
		return err
	}
	if err := c.printHeaders(); err != nil {
		return err
	}
	return c.printStat()
}

// clearConsole erases exactly the lines the previous print left on
// screen, zeroing their counters. Only short format ever erases.
func (c *Collector) clearConsole() int {
	if !c.cfg.ShortFormat {
		return 0
	}
	count := 0
	if c.table.statLines > 0 {
		count += 1 + c.table.statLines
	}
	if c.table.infoLines > 0 {
		count += 1 + c.table.infoLines
	}
	c.table.statLines = 0
	c.table.infoLines = 0
	if c.table.updateTitle && c.table.titleLines > 0 {
		count += 1 + c.table.titleLines
		c.table.titleLines = 0
	}
	if (c.table.updateHeaders || c.table.updateTitle) && c.table.headerLines > 0 {
		count += 2 + c.table.headerLines
		c.table.headerLines = 0
	}
	terminal.EraseLines(c.cfg.Out, count)
	return count
}

// printTitle emits the framed title block when it is not on screen
func (c *Collector) printTitle() error {
	if !c.cfg.PrintTitle || c.table.titleLines != 0 || c.title == "" {
		return nil
	}
	titleStr := "| " + c.title + " |"
	c.table.titleWidth = runeLen(titleStr)
	titleStr = terminal.Truncate(titleStr, c.table.lineLimit)
	rule := strings.Repeat("-", runeLen(titleStr))
	c.table.titleLines = 1
	c.table.updateTitle = false
	return c.printLine(rule + "\n" + titleStr)
}

// printHeaders emits the header block when it is not on screen. The top
// rule spans whichever is wider, the title or the header row, so the
// blocks visually join.
func (c *Collector) printHeaders() error {
	if c.table.headerLines != 0 {
		return nil
	}
	headerStr := c.renderHeaderRow()
	c.table.tableWidth = runeLen(headerStr)
	headerStr = terminal.Truncate(headerStr, c.table.lineLimit)
	rule := strings.Repeat("-", runeLen(headerStr))
	topRule := terminal.Truncate(
		strings.Repeat("-", max(c.table.tableWidth, c.table.titleWidth)),
		c.table.lineLimit,
	)
	c.table.headerLines = 1
	c.table.updateHeaders = false
	return c.printLine(topRule + "\n" + headerStr + "\n" + rule)
}

// printStat emits the current row, its info lines, and the closing rule
func (c *Collector) printStat() error {
	if c.last == nil {
		return nil
	}
	statStr := terminal.Truncate(c.renderStatRow(c.last), c.table.lineLimit)
	c.table.maxStatWidth = runeLen(statStr)
	rule := strings.Repeat("-", runeLen(statStr))
	block := statStr + "\n" + rule

	if len(c.last.info) > 0 {
		var infoBlock strings.Builder
		for _, item := range c.last.info {
			if w := runeLen(item); w > c.table.maxStatWidth {
				c.table.maxStatWidth = w
			}
			infoBlock.WriteString(terminal.Truncate(item, c.table.lineLimit))
			infoBlock.WriteString("\n")
		}
		block = block + "\n" + infoBlock.String() + rule
	}

	c.table.infoLines = len(c.last.info)
	c.table.statLines = 1
	return c.printLine(block)
}

// renderHeaderRow renders "| name1 | name2 | ... |" at current widths
func (c *Collector) renderHeaderRow() string {
	var b strings.Builder
	b.WriteString("|")
	for _, e := range c.headers.entries {
		b.WriteString(" ")
		b.WriteString(pad(e.name, e.minWidth))
		b.WriteString(" |")
	}
	return b.String()
}

// renderStatRow renders "| v1 | v2 | ... |" at current widths
func (c *Collector) renderStatRow(st *Stat) string {
	var b strings.Builder
	b.WriteString("|")
	for _, e := range c.headers.entries {
		value := ""
		if e.index < len(st.values) {
			value = st.values[e.index]
		}
		b.WriteString(" ")
		b.WriteString(pad(value, e.minWidth))
		b.WriteString(" |")
	}
	return b.String()
}

// printLine writes a rendered block to the console and, when file
// mirroring is on, appends it to the export file.
func (c *Collector) printLine(block string) error {
	fmt.Fprintln(c.cfg.Out, block)
	return c.appendFileLine(block)
}

// pad left-justifies s to width characters; wider values are left
// intact, the column grows to fit instead
func pad(s string, width int) string {
	if n := width - runeLen(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

func runeLen(s string) int {
	return len([]rune(s))
}
