package stattab

// renderState tracks exactly what is on the console so the next redraw
// can erase it line for line. It is derived state: a table reset throws
// it away and the pipeline repaints from headers and history.
type renderState struct {
	// pending reprints
	updateTitle   bool
	updateHeaders bool

	// printed block counters; zero means "not currently on screen"
	titleLines  int
	headerLines int
	statLines   int
	infoLines   int

	// active whole-line truncation limit
	lineLimit int

	// pristine (untruncated) widths of the last rendered title and
	// header row
	titleWidth int
	tableWidth int

	// widest stat or info line printed since the last header reprint
	maxStatWidth int
}

// newRenderState returns the construction default: nothing printed,
// title and headers pending
func newRenderState() renderState {
	return renderState{
		updateTitle:   true,
		updateHeaders: true,
	}
}

// shouldReset decides whether a width change forces a full repaint.
// Pure function of the state, the incoming limit, and the policy.
func (t *renderState) shouldReset(newLimit int, mode ResetMode) bool {
	switch mode {
	case OnTerminalChange:
		return newLimit != t.lineLimit
	case OnTerminalShrink:
		return newLimit < t.lineLimit
	default: // OnTableShrink
		return newLimit < t.maxStatWidth
	}
}

// markTitleDirtyIfOverflow flags a title reprint when the pristine title
// does not fit the incoming limit, i.e. the printed copy is truncated.
// Handles terminal growth revealing previously hidden content.
func (t *renderState) markTitleDirtyIfOverflow(newLimit int) {
	if t.titleWidth > newLimit {
		t.updateTitle = true
	}
}

// markHeadersDirtyIfOverflow is the header-row counterpart
func (t *renderState) markHeadersDirtyIfOverflow(newLimit int) {
	if t.tableWidth > newLimit {
		t.updateHeaders = true
	}
}
