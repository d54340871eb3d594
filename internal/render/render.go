// Package render rasterises strokes and exports drawings.
package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"

	"github.com/example/paintboard/internal/paint"
)

// Layer returns a transparent w×h image with strokes drawn in order.
func Layer(w, h int, strokes []paint.Stroke) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	for _, s := range strokes {
		DrawStroke(dst, s)
	}
	return dst
}

// Flatten composites layer over a solid background.
func Flatten(layer *image.RGBA, bg color.Color) *image.RGBA {
	b := layer.Bounds()
	out := image.NewRGBA(b)
	draw.Draw(out, b, image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, b, layer, b.Min, draw.Over)
	return out
}

// Image renders strokes over bg in one step.
func Image(w, h int, bg color.Color, strokes []paint.Stroke) *image.RGBA {
	return Flatten(Layer(w, h, strokes), bg)
}

// DrawStroke draws s onto dst. Strokes with BlendClear erase the pixels they
// cover instead of painting.
func DrawStroke(dst *image.RGBA, s paint.Stroke) {
	if s.Path.Empty() {
		return
	}
	b := dst.Bounds()
	if s.Paint.Blend == paint.BlendClear {
		mask := image.NewAlpha(b)
		rasterise(mask, s, color.Opaque)
		clearUnder(dst, mask)
		return
	}
	rasterise(dst, s, s.Paint.Color)
}

// clearUnder scales every pixel of dst by the inverse of the mask coverage,
// leaving pixels outside the mask untouched.
func clearUnder(dst *image.RGBA, mask *image.Alpha) {
	b := dst.Bounds().Intersect(mask.Bounds())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			m := uint32(mask.Pix[mask.PixOffset(x, y)])
			if m == 0 {
				continue
			}
			keep := 0xff - m
			i := dst.PixOffset(x, y)
			for c := 0; c < 4; c++ {
				dst.Pix[i+c] = uint8((uint32(dst.Pix[i+c])*keep + 0x7f) / 0xff)
			}
		}
	}
}

// rasterise scans s into dst using clr. Path coordinates are absolute, the
// scanner's mask starts at the origin of dst's bounds.
func rasterise(dst draw.Image, s paint.Stroke, clr color.Color) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return
	}
	scanner := rasterx.NewScannerGV(w, h, dst, b)
	var adder interface {
		rasterx.Adder
		Draw()
	}
	switch s.Paint.Style {
	case paint.StyleFill:
		f := rasterx.NewFiller(w, h, scanner)
		f.SetWinding(true)
		adder = f
	default:
		d := rasterx.NewDasher(w, h, scanner)
		d.SetStroke(toFixed(s.Paint.Width), toFixed(4), rasterx.RoundCap, rasterx.RoundCap,
			rasterx.RoundGap, rasterx.Round, nil, 0)
		adder = d
	}
	scanner.SetColor(clr)
	tracePath(adder, s.Path, paint.Pt(float64(b.Min.X), float64(b.Min.Y)))
	adder.Draw()
}

// tracePath feeds the segments of p, translated by -origin, to a rasterx
// adder.
func tracePath(a rasterx.Adder, p paint.Path, origin paint.Point) {
	pt := func(q paint.Point) fixed.Point26_6 { return toPoint(paint.Pt(q.X-origin.X, q.Y-origin.Y)) }
	open := false
	for _, seg := range p.Segments() {
		switch seg.Op {
		case paint.OpMove:
			if open {
				a.Stop(false)
			}
			a.Start(pt(seg.Pts[0]))
			open = true
		case paint.OpLine:
			a.Line(pt(seg.Pts[0]))
		case paint.OpCube:
			a.CubeBezier(pt(seg.Pts[0]), pt(seg.Pts[1]), pt(seg.Pts[2]))
		case paint.OpClose:
			if open {
				a.Stop(true)
				open = false
			}
		}
	}
	if open {
		a.Stop(false)
	}
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(v * 64)
}

func toPoint(p paint.Point) fixed.Point26_6 {
	return fixed.Point26_6{X: toFixed(p.X), Y: toFixed(p.Y)}
}
