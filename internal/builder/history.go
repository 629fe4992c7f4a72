package builder

// historyLimit bounds how many snapshots one editing session retains. Past the
// limit the oldest snapshot is evicted, so very long sessions keep the 50 most
// recent states.
const historyLimit = 50

// History is a bounded linear undo/redo stack of document snapshots for one
// editing session. It is single-owner and not internally locked; every Push
// must be driven by exactly one completed document operation.
type History struct {
	snapshots []Document
	cursor    int
}

// NewHistory returns an empty history with the cursor before the first entry.
func NewHistory() *History {
	return &History{cursor: -1}
}

// Push records a new snapshot. Any redo branch beyond the cursor is discarded
// (linear history, not a tree). When the stack exceeds the cap the oldest
// entry is evicted and the cursor shifts down so relative position holds.
func (h *History) Push(doc Document) {
	h.snapshots = append(h.snapshots[:h.cursor+1], doc)
	h.cursor = len(h.snapshots) - 1
	if len(h.snapshots) > historyLimit {
		h.snapshots = h.snapshots[1:]
		h.cursor--
	}
}

// Undo steps the cursor back and returns that snapshot. The second return is
// false when there is nothing to undo.
func (h *History) Undo() (Document, bool) {
	if h.cursor <= 0 {
		return Document{}, false
	}
	h.cursor--
	return h.snapshots[h.cursor], true
}

// Redo steps the cursor forward and returns that snapshot. The second return
// is false when there is nothing to redo.
func (h *History) Redo() (Document, bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return Document{}, false
	}
	h.cursor++
	return h.snapshots[h.cursor], true
}

// CanUndo reports whether an earlier snapshot exists.
func (h *History) CanUndo() bool {
	return h.cursor > 0
}

// CanRedo reports whether a later snapshot exists.
func (h *History) CanRedo() bool {
	return h.cursor < len(h.snapshots)-1
}

// Len returns how many snapshots are retained.
func (h *History) Len() int {
	return len(h.snapshots)
}
