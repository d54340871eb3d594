package paint

import (
	"image/color"

	"github.com/google/uuid"
)

// Style selects whether a stroke's path is outlined or filled.
type Style int

const (
	StyleStroke Style = iota
	StyleFill
)

func (s Style) String() string {
	if s == StyleFill {
		return "fill"
	}
	return "stroke"
}

// Blend selects how a stroke combines with what is already drawn.
type Blend int

const (
	// BlendNormal paints the stroke colour over existing content.
	BlendNormal Blend = iota
	// BlendClear removes existing content wherever the stroke covers it.
	BlendClear
)

func (b Blend) String() string {
	if b == BlendClear {
		return "clear"
	}
	return "normal"
}

// Paint holds the rendering attributes of a stroke. Stroked paints are
// drawn with round caps and joins.
type Paint struct {
	Color color.RGBA
	Width float64
	Style Style
	Blend Blend
}

// Stroke is a unit of drawn geometry together with its paint.
type Stroke struct {
	ID    string
	Path  Path
	Paint Paint
}

func newStroke(p Paint) *Stroke {
	return &Stroke{ID: uuid.NewString(), Paint: p}
}

// Clone returns a deep copy of s.
func (s Stroke) Clone() Stroke {
	return Stroke{ID: s.ID, Path: s.Path.Clone(), Paint: s.Paint}
}

// Bounds returns the area the stroke may touch, including half the line
// width for stroked paths.
func (s Stroke) Bounds() (Rect, bool) {
	r, ok := s.Path.Bounds()
	if !ok {
		return Rect{}, false
	}
	if s.Paint.Style == StyleStroke {
		h := s.Paint.Width / 2
		r.Min.X -= h
		r.Min.Y -= h
		r.Max.X += h
		r.Max.Y += h
	}
	return r, true
}
