package paint

import (
	"image/color"
	"sync"
	"testing"

	"github.com/example/paintboard/internal/palette"
)

func drawLine(b *Board, x0, y0, x1, y1 float64) {
	b.Handle(TouchEvent{Action: ActionDown, X: x0, Y: y0})
	b.Handle(TouchEvent{Action: ActionMove, X: x1, Y: y1})
	b.Handle(TouchEvent{Action: ActionUp})
}

func TestNewBoardDefaults(t *testing.T) {
	b := NewBoard()
	if b.Mode() != ModePen {
		t.Errorf("mode %v", b.Mode())
	}
	br := b.Brush()
	if br.Thickness != palette.DefaultThickness || br.Color != palette.DefaultColor() {
		t.Errorf("brush %+v", br)
	}
	if len(b.Strokes()) != 0 || b.CanUndo() || b.CanRedo() {
		t.Error("new board is not empty")
	}
}

func TestBoardCommitsOnUp(t *testing.T) {
	b := NewBoard()
	b.TouchDown(0, 0)
	b.TouchMove(10, 10)
	if _, ok := b.Current(); !ok {
		t.Fatal("expected an in-progress stroke")
	}
	if len(b.Strokes()) != 0 {
		t.Fatal("stroke committed before touch up")
	}
	b.TouchUp()
	if _, ok := b.Current(); ok {
		t.Error("in-progress stroke left after touch up")
	}
	if n := len(b.Strokes()); n != 1 {
		t.Fatalf("expected 1 stroke, got %d", n)
	}
}

func TestBoardTapDrawsNothing(t *testing.T) {
	b := NewBoard()
	b.TouchDown(5, 5)
	b.TouchUp()
	if len(b.Strokes()) != 0 {
		t.Error("tap committed a stroke")
	}
	b.SetMode(ModeRectangle)
	b.TouchDown(5, 5)
	b.TouchUp()
	if len(b.Strokes()) != 0 {
		t.Error("rectangle tap committed a stroke")
	}
}

func TestBoardMoveWithoutDownIgnored(t *testing.T) {
	b := NewBoard()
	v := b.Version()
	b.TouchMove(1, 1)
	b.TouchUp()
	b.TouchCancel()
	if b.Version() != v || len(b.Strokes()) != 0 {
		t.Error("events without a gesture changed the board")
	}
}

func TestBoardCancelCommits(t *testing.T) {
	b := NewBoard()
	b.TouchDown(0, 0)
	b.TouchMove(3, 4)
	b.TouchCancel()
	if len(b.Strokes()) != 1 {
		t.Error("cancelled gesture was not kept")
	}
}

func TestBoardUndoRedo(t *testing.T) {
	b := NewBoard()
	drawLine(b, 0, 0, 1, 1)
	drawLine(b, 2, 2, 3, 3)
	before := b.Strokes()
	if !b.Undo() {
		t.Fatal("undo reported no change")
	}
	if len(b.Strokes()) != 1 {
		t.Fatalf("expected 1 stroke after undo, got %d", len(b.Strokes()))
	}
	if !b.Redo() {
		t.Fatal("redo reported no change")
	}
	after := b.Strokes()
	if ids(after)[1] != ids(before)[1] {
		t.Errorf("redo restored %v, want %v", ids(after), ids(before))
	}
	if b.Redo() {
		t.Error("redo with empty stack reported a change")
	}
}

func TestBoardNewStrokeAfterUndoDropsRedo(t *testing.T) {
	b := NewBoard()
	drawLine(b, 0, 0, 1, 1)
	b.Undo()
	drawLine(b, 5, 5, 6, 6)
	if b.CanRedo() {
		t.Error("redo survived a new stroke")
	}
}

func TestBoardUndoDiscardsGesture(t *testing.T) {
	b := NewBoard()
	drawLine(b, 0, 0, 1, 1)
	b.TouchDown(5, 5)
	b.TouchMove(6, 6)
	b.Undo()
	if b.Drawing() {
		t.Error("gesture survived undo")
	}
	if len(b.Strokes()) != 0 {
		t.Errorf("expected no strokes, got %d", len(b.Strokes()))
	}
	b.TouchUp()
	if len(b.Strokes()) != 0 {
		t.Error("touch up after undo committed the discarded gesture")
	}
}

func TestBoardClear(t *testing.T) {
	b := NewBoard()
	drawLine(b, 0, 0, 1, 1)
	drawLine(b, 2, 2, 3, 3)
	b.Undo()
	b.TouchDown(9, 9)
	b.Clear()
	if len(b.Strokes()) != 0 || b.CanRedo() || b.Drawing() {
		t.Error("clear left state behind")
	}
}

func TestBoardSetModeDiscardsGesture(t *testing.T) {
	b := NewBoard()
	b.TouchDown(0, 0)
	b.TouchMove(10, 10)
	b.SetMode(ModeOval)
	b.TouchUp()
	if len(b.Strokes()) != 0 {
		t.Error("gesture survived mode switch")
	}
	drawLine(b, 0, 0, 10, 10)
	s := b.Strokes()
	if len(s) != 1 || s[0].Paint.Style != StyleFill {
		t.Errorf("expected one filled stroke, got %+v", s)
	}
}

func TestBoardSettersApplyToNextGesture(t *testing.T) {
	b := NewBoard()
	blue := color.RGBA{B: 255, A: 255}
	b.TouchDown(0, 0)
	b.SetColor(blue)
	b.SetThickness(33)
	b.TouchMove(1, 1)
	b.TouchUp()
	drawLine(b, 2, 2, 3, 3)
	s := b.Strokes()
	if s[0].Paint.Color == blue || s[0].Paint.Width == 33 {
		t.Errorf("setter changed the gesture in progress: %+v", s[0].Paint)
	}
	if s[1].Paint.Color != blue || s[1].Paint.Width != 33 {
		t.Errorf("setter not applied to next gesture: %+v", s[1].Paint)
	}
}

func TestBoardThicknessClamped(t *testing.T) {
	b := NewBoard()
	b.SetThickness(0)
	if got := b.Brush().Thickness; got != palette.MinThickness {
		t.Errorf("thickness %v", got)
	}
	b.SetThickness(1000)
	if got := b.Brush().Thickness; got != palette.MaxThickness {
		t.Errorf("thickness %v", got)
	}
}

func TestBoardSetStrokes(t *testing.T) {
	b := NewBoard()
	drawLine(b, 0, 0, 1, 1)
	b.Undo()
	b.SetStrokes([]Stroke{lineStroke("x", 1), lineStroke("y", 2)})
	if got := ids(b.Strokes()); len(got) != 2 || got[0] != "x" {
		t.Errorf("strokes %v", got)
	}
	if b.CanRedo() {
		t.Error("set strokes kept redo history")
	}
}

func TestBoardListeners(t *testing.T) {
	calls := 0
	b := NewBoard(WithListener(func() { calls++ }))
	drawLine(b, 0, 0, 1, 1)
	if calls != 3 {
		t.Errorf("expected 3 notifications, got %d", calls)
	}
	b.Redo()
	if calls != 3 {
		t.Error("no-op redo notified listeners")
	}
	b.Undo()
	if calls != 4 {
		t.Errorf("expected 4 notifications, got %d", calls)
	}
}

func TestBoardListenerMayReadBoard(t *testing.T) {
	b := NewBoard()
	var seen int
	b.AddListener(func() { seen = len(b.Strokes()) })
	drawLine(b, 0, 0, 1, 1)
	if seen != 1 {
		t.Errorf("listener saw %d strokes", seen)
	}
}

func TestBoardSnapshotIncludesCurrent(t *testing.T) {
	b := NewBoard()
	drawLine(b, 0, 0, 1, 1)
	b.TouchDown(2, 2)
	b.TouchMove(4, 4)
	s, v := b.Snapshot()
	if len(s) != 2 {
		t.Errorf("snapshot has %d strokes", len(s))
	}
	if v != b.Version() {
		t.Errorf("snapshot version %d, board %d", v, b.Version())
	}
}

func TestBoardConcurrentReaders(t *testing.T) {
	b := NewBoard()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			b.Snapshot()
		}
	}()
	for i := 0; i < 100; i++ {
		drawLine(b, float64(i), 0, float64(i), 10)
	}
	wg.Wait()
	if len(b.Strokes()) != 100 {
		t.Errorf("expected 100 strokes, got %d", len(b.Strokes()))
	}
}

func TestBoardView(t *testing.T) {
	b := NewBoard()
	drawLine(b, 0, 0, 5, 5)
	committed, cur := b.View()
	if len(committed) != 1 || cur != nil {
		t.Fatalf("view %d strokes, current %v", len(committed), cur)
	}
	b.TouchDown(1, 1)
	b.TouchMove(2, 2)
	committed, cur = b.View()
	if len(committed) != 1 || cur == nil || cur.Path.Len() != 2 {
		t.Fatalf("view during gesture: %d strokes, current %+v", len(committed), cur)
	}
}
