package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
)

// ShadowOptions configures the drop shadow drawn beneath the canvas page.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult captures the output of PageShadow.
type ShadowResult struct {
	// Image holds the blurred shadow with a zero origin.
	Image *image.NRGBA
	// Offset is where the page's top-left corner lies inside Image. Draw
	// Image at pageMin.Sub(Offset) to place the shadow.
	Offset image.Point
}

// DefaultShadowOptions returns a soft shadow that suits a light backdrop.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  8,
		Offset:  image.Pt(4, 4),
		Opacity: 0.35,
	}
}

// PageShadow builds the shadow cast by an opaque page of the given size.
// An empty size or a non-positive opacity yields an empty result.
func PageShadow(size image.Point, opts ShadowOptions) ShadowResult {
	if size.X <= 0 || size.Y <= 0 || opts.Opacity <= 0 {
		return ShadowResult{}
	}
	opacity := opts.Opacity
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	page := image.Rectangle{Max: size}
	shadow := page.Add(opts.Offset)
	padded := shadow.Inset(-2 * radius)
	bounds := padded.Union(page)

	img := image.NewNRGBA(bounds.Sub(bounds.Min))
	alpha := uint8(opacity*255 + 0.5)
	draw.Draw(img, shadow.Sub(bounds.Min), image.NewUniform(color.NRGBA{A: alpha}), image.Point{}, draw.Src)
	if radius > 0 {
		img = imaging.Blur(img, float64(radius)/2)
	}
	return ShadowResult{Image: img, Offset: page.Min.Sub(bounds.Min)}
}
