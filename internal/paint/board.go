package paint

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/example/paintboard/internal/palette"
)

// Action is the phase of a touch event.
type Action int

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
	ActionCancel
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	case ActionCancel:
		return "cancel"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// TouchEvent is a single pointer sample in canvas coordinates.
type TouchEvent struct {
	Action Action
	X, Y   float64
}

// Listener is notified after every change that alters what the board shows.
type Listener func()

// Board receives touch input and setter calls and maintains the drawing.
// It is safe for concurrent use.
type Board struct {
	mu        sync.RWMutex
	history   History
	tool      Tool
	active    bool
	mode      Mode
	brush     Brush
	version   uint64
	listeners []Listener
}

// Option configures a Board.
type Option func(*Board)

// WithBrush sets the initial brush.
func WithBrush(b Brush) Option {
	return func(bd *Board) {
		b.Thickness = palette.ClampThickness(b.Thickness)
		bd.brush = b
	}
}

// WithMode sets the initial drawing mode.
func WithMode(m Mode) Option {
	return func(bd *Board) { bd.mode = m }
}

// WithListener registers l at construction time.
func WithListener(l Listener) Option {
	return func(bd *Board) { bd.listeners = append(bd.listeners, l) }
}

// WithStrokes preloads committed strokes.
func WithStrokes(strokes []Stroke) Option {
	return func(bd *Board) { bd.history.Reset(strokes) }
}

// NewBoard creates an empty board in pen mode with the default brush.
func NewBoard(opts ...Option) *Board {
	b := &Board{mode: ModePen, brush: DefaultBrush()}
	for _, o := range opts {
		o(b)
	}
	return b
}

// AddListener registers l to be called after every visible change.
func (b *Board) AddListener(l Listener) {
	b.mu.Lock()
	b.listeners = append(b.listeners, l)
	b.mu.Unlock()
}

// Handle dispatches ev to the matching touch method.
func (b *Board) Handle(ev TouchEvent) {
	switch ev.Action {
	case ActionDown:
		b.TouchDown(ev.X, ev.Y)
	case ActionMove:
		b.TouchMove(ev.X, ev.Y)
	case ActionUp:
		b.TouchUp()
	case ActionCancel:
		b.TouchCancel()
	}
}

// TouchDown starts a gesture at (x, y) with a fresh tool for the current
// mode and brush. An unfinished gesture is discarded.
func (b *Board) TouchDown(x, y float64) {
	b.update(func() bool {
		b.tool = NewTool(b.mode, b.brush)
		b.tool.Prepare(x, y)
		b.active = true
		return true
	})
}

// TouchMove extends the active gesture. It is ignored when no gesture is
// in progress.
func (b *Board) TouchMove(x, y float64) {
	b.update(func() bool {
		if !b.active {
			return false
		}
		b.tool.Use(x, y)
		return true
	})
}

// TouchUp ends the active gesture and commits its stroke.
func (b *Board) TouchUp() { b.update(b.finish) }

// TouchCancel ends the active gesture like TouchUp. A cancelled gesture
// keeps what was drawn so far.
func (b *Board) TouchCancel() { b.update(b.finish) }

func (b *Board) finish() bool {
	if !b.active {
		return false
	}
	s := b.tool.Stroke()
	b.tool = nil
	b.active = false
	if s.Path.Empty() {
		// a tap without movement draws nothing
		return true
	}
	b.history.Commit(s.Clone())
	return true
}

// SetColor changes the colour used from the next gesture on.
func (b *Board) SetColor(c color.RGBA) {
	b.mu.Lock()
	b.brush.Color = c
	b.mu.Unlock()
}

// SetThickness changes the thickness used from the next gesture on. The
// value is clamped to the palette bounds.
func (b *Board) SetThickness(t float64) {
	b.mu.Lock()
	b.brush.Thickness = palette.ClampThickness(t)
	b.mu.Unlock()
}

// SetBrush replaces colour and thickness together.
func (b *Board) SetBrush(br Brush) {
	br.Thickness = palette.ClampThickness(br.Thickness)
	b.mu.Lock()
	b.brush = br
	b.mu.Unlock()
}

// SetMode switches the drawing tool, discarding any unfinished gesture.
func (b *Board) SetMode(m Mode) {
	b.update(func() bool {
		changed := b.mode != m || b.active
		b.mode = m
		b.discard()
		return changed
	})
}

// Undo removes the last committed stroke. Any unfinished gesture is
// discarded. It reports whether anything changed.
func (b *Board) Undo() bool {
	var changed bool
	b.update(func() bool {
		hadActive := b.discard()
		changed = b.history.Undo() || hadActive
		return changed
	})
	return changed
}

// Redo restores the last undone stroke. It reports whether anything changed.
func (b *Board) Redo() bool {
	var changed bool
	b.update(func() bool {
		changed = b.history.Redo()
		return changed
	})
	return changed
}

// Clear removes every stroke along with the redo history and any
// unfinished gesture.
func (b *Board) Clear() {
	b.update(func() bool {
		b.discard()
		b.history.Clear()
		return true
	})
}

// SetStrokes replaces the committed strokes with copies of strokes.
func (b *Board) SetStrokes(strokes []Stroke) {
	b.update(func() bool {
		b.discard()
		b.history.Reset(strokes)
		return true
	})
}

// Strokes returns deep copies of the committed strokes in drawing order.
func (b *Board) Strokes() []Stroke {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.Strokes()
}

// Current returns a copy of the stroke of the gesture in progress.
func (b *Board) Current() (Stroke, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.active {
		return Stroke{}, false
	}
	return b.tool.Stroke().Clone(), true
}

// Snapshot returns the committed strokes followed by the in-progress one,
// if any, together with the version they belong to.
func (b *Board) Snapshot() ([]Stroke, uint64) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := b.history.Strokes()
	if b.active {
		out = append(out, b.tool.Stroke().Clone())
	}
	return out, b.version
}

// View returns the committed strokes and, while a gesture is in progress,
// a copy of its stroke. Both are read under the same lock.
func (b *Board) View() ([]Stroke, *Stroke) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	committed := b.history.Strokes()
	if !b.active {
		return committed, nil
	}
	cur := b.tool.Stroke().Clone()
	return committed, &cur
}

func (b *Board) Mode() Mode {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.mode
}

func (b *Board) Brush() Brush {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.brush
}

// Drawing reports whether a gesture is in progress.
func (b *Board) Drawing() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.active
}

func (b *Board) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanUndo()
}

func (b *Board) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanRedo()
}

// Version increases with every visible change.
func (b *Board) Version() uint64 {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.version
}

// discard drops the unfinished gesture and reports whether there was one.
// The caller holds mu.
func (b *Board) discard() bool {
	had := b.active
	b.tool = nil
	b.active = false
	return had
}

// update runs fn under the write lock and, when fn reports a change, bumps
// the version and notifies listeners after releasing the lock.
func (b *Board) update(fn func() bool) {
	b.mu.Lock()
	changed := fn()
	var ls []Listener
	if changed {
		b.version++
		ls = make([]Listener, len(b.listeners))
		copy(ls, b.listeners)
	}
	b.mu.Unlock()
	for _, l := range ls {
		l()
	}
}
