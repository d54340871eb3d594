package paint

import (
	"image/color"

	"github.com/example/paintboard/internal/palette"
)

// Brush is the palette selection a tool is created with.
type Brush struct {
	Color     color.RGBA
	Thickness float64
}

// DefaultBrush returns the palette's default colour and thickness.
func DefaultBrush() Brush {
	return Brush{Color: palette.DefaultColor(), Thickness: palette.DefaultThickness}
}

// Tool turns the points of a single gesture into a stroke.
type Tool interface {
	Mode() Mode
	// Stroke returns the stroke being built. It is owned by the tool until
	// the gesture ends.
	Stroke() *Stroke
	// Prepare begins a gesture at (x, y).
	Prepare(x, y float64)
	// Use extends the gesture to (x, y).
	Use(x, y float64)
}

// NewTool returns a fresh tool for mode owning a fresh stroke painted with b.
func NewTool(mode Mode, b Brush) Tool {
	switch mode {
	case ModeRectangle:
		return &Rectangle{shape: newShape(b)}
	case ModeOval:
		return &Oval{shape: newShape(b)}
	case ModeEraser:
		return &Eraser{Pen: Pen{stroke: newStroke(Paint{
			Color: color.RGBA{},
			Width: b.Thickness,
			Style: StyleStroke,
			Blend: BlendClear,
		})}}
	default:
		return &Pen{stroke: newStroke(Paint{
			Color: b.Color,
			Width: b.Thickness,
			Style: StyleStroke,
		})}
	}
}

// Pen draws freehand lines.
type Pen struct {
	stroke *Stroke
}

func (p *Pen) Mode() Mode      { return ModePen }
func (p *Pen) Stroke() *Stroke { return p.stroke }

func (p *Pen) Prepare(x, y float64) { p.stroke.Path.MoveTo(Pt(x, y)) }

func (p *Pen) Use(x, y float64) { p.stroke.Path.LineTo(Pt(x, y)) }

// Eraser clears whatever lies under its freehand path.
type Eraser struct {
	Pen
}

func (e *Eraser) Mode() Mode { return ModeEraser }

// shape is the common part of the filled tools. Each Use replaces the
// geometry with the shape spanned by the start point and (x, y).
type shape struct {
	stroke *Stroke
	start  Point
}

func newShape(b Brush) shape {
	// thickness does not apply to filled shapes
	return shape{stroke: newStroke(Paint{Color: b.Color, Style: StyleFill})}
}

func (s *shape) Stroke() *Stroke { return s.stroke }

func (s *shape) Prepare(x, y float64) {
	s.start = Pt(x, y)
	s.stroke.Path.MoveTo(s.start)
}

// Rectangle draws filled axis aligned rectangles.
type Rectangle struct {
	shape
}

func (r *Rectangle) Mode() Mode { return ModeRectangle }

func (r *Rectangle) Use(x, y float64) {
	r.stroke.Path.Reset()
	r.stroke.Path.AddRect(RectOf(r.start, Pt(x, y)))
}

// Oval draws filled ellipses inscribed in the dragged rectangle.
type Oval struct {
	shape
}

func (o *Oval) Mode() Mode { return ModeOval }

func (o *Oval) Use(x, y float64) {
	o.stroke.Path.Reset()
	o.stroke.Path.AddOval(RectOf(o.start, Pt(x, y)))
}
