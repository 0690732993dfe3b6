package plan

import "github.com/cwbudde/algo-trackgeo/track"

// DefaultHistoryCap is the number of snapshots kept by a History.
const DefaultHistoryCap = 100

// History is a bounded ring buffer of immutable plan-line snapshots with an
// undo/redo cursor. Pushing beyond the capacity evicts the oldest snapshot.
type History struct {
	buf    []track.PlanLine
	start  int // ring index of the oldest snapshot
	size   int
	cursor int // logical index of the current snapshot, -1 when empty
}

// NewHistory creates a history holding at most capacity snapshots
// (<= 0 selects [DefaultHistoryCap]).
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCap
	}
	return &History{buf: make([]track.PlanLine, capacity), cursor: -1}
}

// Cap returns the capacity.
func (h *History) Cap() int { return len(h.buf) }

// Len returns the number of stored snapshots, including redoable ones.
func (h *History) Len() int { return h.size }

// Cursor returns the logical index of the current snapshot.
func (h *History) Cursor() int { return h.cursor }

func (h *History) at(k int) track.PlanLine {
	return h.buf[(h.start+k)%len(h.buf)]
}

// Push records line as the new current snapshot and discards any redoable
// snapshots after the cursor.
func (h *History) Push(line track.PlanLine) {
	for k := h.cursor + 1; k < h.size; k++ {
		h.buf[(h.start+k)%len(h.buf)] = nil
	}
	h.size = h.cursor + 1

	if h.size == len(h.buf) {
		h.buf[h.start] = nil
		h.start = (h.start + 1) % len(h.buf)
		h.size--
		h.cursor--
	}

	h.buf[(h.start+h.size)%len(h.buf)] = line.Clone()
	h.size++
	h.cursor = h.size - 1
}

// Current returns a copy of the current snapshot.
func (h *History) Current() (track.PlanLine, bool) {
	if h.cursor < 0 {
		return nil, false
	}
	return h.at(h.cursor).Clone(), true
}

// CanUndo reports whether an older snapshot exists.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether a newer snapshot exists.
func (h *History) CanRedo() bool { return h.cursor >= 0 && h.cursor < h.size-1 }

// Undo moves the cursor back and returns that snapshot.
func (h *History) Undo() (track.PlanLine, bool) {
	if !h.CanUndo() {
		return nil, false
	}
	h.cursor--
	return h.at(h.cursor).Clone(), true
}

// Redo moves the cursor forward and returns that snapshot.
func (h *History) Redo() (track.PlanLine, bool) {
	if !h.CanRedo() {
		return nil, false
	}
	h.cursor++
	return h.at(h.cursor).Clone(), true
}
