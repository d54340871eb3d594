package paint

import "math"

// Point is a location on the drawing surface in canvas coordinates.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Rect is an axis aligned rectangle. Rectangles built with RectOf are
// normalised so that Min is the top-left corner.
type Rect struct {
	Min, Max Point
}

// RectOf returns the rectangle spanned by two corner points in any order.
func RectOf(a, b Point) Rect {
	return Rect{
		Min: Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// Dx returns the width of r.
func (r Rect) Dx() float64 { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.Dx() <= 0 || r.Dy() <= 0 }

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, s.Min.X), Y: math.Min(r.Min.Y, s.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, s.Max.X), Y: math.Max(r.Max.Y, s.Max.Y)},
	}
}

// Op identifies the kind of a path segment.
type Op int

const (
	OpMove Op = iota
	OpLine
	// OpCube is a cubic Bézier; Pts holds two control points and the end point.
	OpCube
	OpClose
)

// Segment is one element of a Path. Only the first len(Pts) entries used
// by Op are meaningful: one for move and line, three for cube, none for close.
type Segment struct {
	Op  Op
	Pts [3]Point
}

// kappa places cubic control points so four curves approximate an ellipse.
const kappa = 0.5522847498307936

// Path accumulates vector geometry for a stroke.
type Path struct {
	segs []Segment
}

// MoveTo starts a new sub-path at pt.
func (p *Path) MoveTo(pt Point) {
	p.segs = append(p.segs, Segment{Op: OpMove, Pts: [3]Point{pt}})
}

// LineTo adds a straight segment to pt. A path without a current point
// starts at pt instead.
func (p *Path) LineTo(pt Point) {
	if len(p.segs) == 0 {
		p.MoveTo(pt)
		return
	}
	p.segs = append(p.segs, Segment{Op: OpLine, Pts: [3]Point{pt}})
}

// CubeTo adds a cubic Bézier through control points c1 and c2 ending at pt.
func (p *Path) CubeTo(c1, c2, pt Point) {
	if len(p.segs) == 0 {
		p.MoveTo(c1)
	}
	p.segs = append(p.segs, Segment{Op: OpCube, Pts: [3]Point{c1, c2, pt}})
}

// Close closes the current sub-path.
func (p *Path) Close() {
	if len(p.segs) == 0 {
		return
	}
	p.segs = append(p.segs, Segment{Op: OpClose})
}

// Reset drops all geometry while keeping the allocated storage.
func (p *Path) Reset() {
	p.segs = p.segs[:0]
}

// AddRect appends r as a closed clockwise sub-path.
func (p *Path) AddRect(r Rect) {
	p.MoveTo(r.Min)
	p.LineTo(Point{X: r.Max.X, Y: r.Min.Y})
	p.LineTo(r.Max)
	p.LineTo(Point{X: r.Min.X, Y: r.Max.Y})
	p.Close()
}

// AddOval appends the ellipse inscribed in r as a closed clockwise sub-path.
func (p *Path) AddOval(r Rect) {
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	rx := r.Dx() / 2
	ry := r.Dy() / 2
	kx := rx * kappa
	ky := ry * kappa

	p.MoveTo(Pt(cx+rx, cy))
	p.CubeTo(Pt(cx+rx, cy+ky), Pt(cx+kx, cy+ry), Pt(cx, cy+ry))
	p.CubeTo(Pt(cx-kx, cy+ry), Pt(cx-rx, cy+ky), Pt(cx-rx, cy))
	p.CubeTo(Pt(cx-rx, cy-ky), Pt(cx-kx, cy-ry), Pt(cx, cy-ry))
	p.CubeTo(Pt(cx+kx, cy-ry), Pt(cx+rx, cy-ky), Pt(cx+rx, cy))
	p.Close()
}

// Segments returns a copy of the path's segments.
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segs))
	copy(out, p.segs)
	return out
}

// Len returns the number of segments.
func (p Path) Len() int { return len(p.segs) }

// Empty reports whether the path contains nothing that would be drawn,
// that is no line, curve or close segment.
func (p Path) Empty() bool {
	for _, s := range p.segs {
		if s.Op != OpMove {
			return false
		}
	}
	return true
}

// Bounds returns the bounding box of all points in the path, control points
// included. The second result is false for a path without points.
func (p Path) Bounds() (Rect, bool) {
	var (
		r     Rect
		found bool
	)
	for _, s := range p.segs {
		n := pointCount(s.Op)
		for i := 0; i < n; i++ {
			pt := s.Pts[i]
			if !found {
				r = Rect{Min: pt, Max: pt}
				found = true
				continue
			}
			r = r.Union(Rect{Min: pt, Max: pt})
		}
	}
	return r, found
}

// Clone returns a deep copy of p.
func (p Path) Clone() Path {
	if p.segs == nil {
		return Path{}
	}
	return Path{segs: p.Segments()}
}

func pointCount(op Op) int {
	switch op {
	case OpMove, OpLine:
		return 1
	case OpCube:
		return 3
	default:
		return 0
	}
}
