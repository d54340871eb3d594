package paint

import (
	"image/color"
	"testing"
)

var testBrush = Brush{Color: color.RGBA{R: 10, G: 20, B: 30, A: 255}, Thickness: 7}

func TestNewToolPaint(t *testing.T) {
	tests := []struct {
		mode  Mode
		paint Paint
	}{
		{ModePen, Paint{Color: testBrush.Color, Width: 7, Style: StyleStroke, Blend: BlendNormal}},
		{ModeRectangle, Paint{Color: testBrush.Color, Style: StyleFill, Blend: BlendNormal}},
		{ModeOval, Paint{Color: testBrush.Color, Style: StyleFill, Blend: BlendNormal}},
		{ModeEraser, Paint{Width: 7, Style: StyleStroke, Blend: BlendClear}},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			tool := NewTool(tt.mode, testBrush)
			if tool.Mode() != tt.mode {
				t.Errorf("mode %v, want %v", tool.Mode(), tt.mode)
			}
			if got := tool.Stroke().Paint; got != tt.paint {
				t.Errorf("paint %+v, want %+v", got, tt.paint)
			}
			if tool.Stroke().ID == "" {
				t.Error("stroke without id")
			}
		})
	}
}

func TestNewToolFreshStroke(t *testing.T) {
	a := NewTool(ModePen, testBrush)
	b := NewTool(ModePen, testBrush)
	if a.Stroke() == b.Stroke() || a.Stroke().ID == b.Stroke().ID {
		t.Error("tools share a stroke")
	}
}

func TestPenAccumulates(t *testing.T) {
	tool := NewTool(ModePen, testBrush)
	tool.Prepare(0, 0)
	tool.Use(1, 1)
	tool.Use(2, 3)
	segs := tool.Stroke().Path.Segments()
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if segs[0].Op != OpMove || segs[1].Op != OpLine || segs[2].Op != OpLine {
		t.Errorf("unexpected ops %+v", segs)
	}
	if segs[2].Pts[0] != Pt(2, 3) {
		t.Errorf("last point %v", segs[2].Pts[0])
	}
}

func TestRectangleReplacesGeometry(t *testing.T) {
	tool := NewTool(ModeRectangle, testBrush)
	tool.Prepare(10, 10)
	tool.Use(50, 50)
	tool.Use(20, 30)
	r, ok := tool.Stroke().Path.Bounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	want := Rect{Min: Pt(10, 10), Max: Pt(20, 30)}
	if r != want {
		t.Errorf("bounds %+v, want %+v", r, want)
	}
	if n := tool.Stroke().Path.Len(); n != 5 {
		t.Errorf("geometry accumulated: %d segments", n)
	}
}

func TestRectangleDragUpLeft(t *testing.T) {
	tool := NewTool(ModeRectangle, testBrush)
	tool.Prepare(50, 50)
	tool.Use(10, 20)
	r, _ := tool.Stroke().Path.Bounds()
	if r != (Rect{Min: Pt(10, 20), Max: Pt(50, 50)}) {
		t.Errorf("bounds %+v", r)
	}
}

func TestOvalReplacesGeometry(t *testing.T) {
	tool := NewTool(ModeOval, testBrush)
	tool.Prepare(0, 0)
	tool.Use(100, 100)
	first := tool.Stroke().Path.Len()
	tool.Use(40, 20)
	if tool.Stroke().Path.Len() != first {
		t.Errorf("segment count changed from %d to %d", first, tool.Stroke().Path.Len())
	}
	r, _ := tool.Stroke().Path.Bounds()
	if r.Max.X > 40+1e-9 || r.Max.Y > 20+1e-9 {
		t.Errorf("oval exceeds drag rectangle: %+v", r)
	}
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes() {
		got, err := ParseMode(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMode(%q) = %v, %v", m.String(), got, err)
		}
	}
	if got, err := ParseMode("Rectangle"); err != nil || got != ModeRectangle {
		t.Errorf("ParseMode(Rectangle) = %v, %v", got, err)
	}
	if _, err := ParseMode("spray"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
