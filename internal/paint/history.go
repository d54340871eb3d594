package paint

// History is the list of committed strokes together with a redo stack.
// It is not safe for concurrent use; Board serialises access.
type History struct {
	done   []Stroke
	undone []Stroke
}

// Commit appends s and invalidates the redo stack.
func (h *History) Commit(s Stroke) {
	h.done = append(h.done, s)
	h.undone = nil
}

// Undo moves the most recent stroke to the redo stack. It reports false
// when there is nothing to undo.
func (h *History) Undo() bool {
	n := len(h.done)
	if n == 0 {
		return false
	}
	h.undone = append(h.undone, h.done[n-1])
	h.done = h.done[:n-1]
	return true
}

// Redo restores the most recently undone stroke. It reports false when the
// redo stack is empty.
func (h *History) Redo() bool {
	n := len(h.undone)
	if n == 0 {
		return false
	}
	h.done = append(h.done, h.undone[n-1])
	h.undone = h.undone[:n-1]
	return true
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.done = nil
	h.undone = nil
}

// Reset replaces the committed strokes with copies of strokes and empties
// the redo stack.
func (h *History) Reset(strokes []Stroke) {
	h.done = cloneStrokes(strokes)
	h.undone = nil
}

// Strokes returns deep copies of the committed strokes in drawing order.
func (h *History) Strokes() []Stroke { return cloneStrokes(h.done) }

// Len returns the number of committed strokes.
func (h *History) Len() int { return len(h.done) }

func (h *History) CanUndo() bool { return len(h.done) > 0 }
func (h *History) CanRedo() bool { return len(h.undone) > 0 }

func cloneStrokes(in []Stroke) []Stroke {
	if len(in) == 0 {
		return nil
	}
	out := make([]Stroke, len(in))
	for i, s := range in {
		out[i] = s.Clone()
	}
	return out
}
