package paper

// history is a bounded linear undo stack of element-list snapshots.
// snapshots[index] always matches the live element list as of the last
// committed mutation.
//
// When the stack is full the oldest snapshot is evicted and the index is
// held steady instead of advanced, so the effective undo depth becomes
// capacity-1 once full. That asymmetry is kept on purpose; see DESIGN.md.
type history struct {
	snapshots [][]Element
	index     int
	capacity  int
}

func newHistory(capacity int, els []Element) *history {
	h := &history{capacity: capacity}
	h.reset(els)
	return h
}

func (h *history) reset(els []Element) {
	h.snapshots = [][]Element{cloneElements(els)}
	h.index = 0
}

// push records a new snapshot, discarding any redo entries beyond the
// current index first.
func (h *history) push(els []Element) {
	h.snapshots = append(h.snapshots[:h.index+1], cloneElements(els))
	if len(h.snapshots) > h.capacity {
		h.snapshots = h.snapshots[1:]
	} else {
		h.index++
	}
}

func (h *history) canUndo() bool { return h.index > 0 }
func (h *history) canRedo() bool { return h.index < len(h.snapshots)-1 }

// undo steps back one snapshot and returns a deep copy of it.
func (h *history) undo() ([]Element, bool) {
	if !h.canUndo() {
		return nil, false
	}
	h.index--
	return cloneElements(h.snapshots[h.index]), true
}

// redo steps forward one snapshot and returns a deep copy of it.
func (h *history) redo() ([]Element, bool) {
	if !h.canRedo() {
		return nil, false
	}
	h.index++
	return cloneElements(h.snapshots[h.index]), true
}
