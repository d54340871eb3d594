package appstate

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

const (
	statusHeight = 24
	bottomHeight = 24
	buttonHeight = 24
	swatchSize   = 16
	swatchStep   = 18
	widthHeight  = 16
	pageMargin   = 16
)

var toolbarWidth = 88

// target identifies the UI element under a point.
type target int

const (
	targetNone target = iota
	targetButton
	targetSwatch
	targetWidth
	targetShortcut
	targetPage
)

// layout holds the window geometry for one window size. All rectangles are
// in window coordinates.
type layout struct {
	width, height int
	page          image.Rectangle
	buttons       []image.Rectangle
	swatches      []image.Rectangle
	widths        []image.Rectangle
	shortcuts     []image.Rectangle
}

// newLayout arranges the toolbar, shortcut bar and page for a window of
// width×height showing a page of pageSize.
func newLayout(width, height int, pageSize image.Point, buttons, swatches, widths int, shortcutLabels []string) layout {
	l := layout{width: width, height: height}

	y := statusHeight
	for i := 0; i < buttons; i++ {
		l.buttons = append(l.buttons, image.Rect(0, y, toolbarWidth, y+buttonHeight))
		y += buttonHeight
	}

	y += 4
	x := 4
	for i := 0; i < swatches; i++ {
		l.swatches = append(l.swatches, image.Rect(x, y, x+swatchSize, y+swatchSize))
		x += swatchStep
		if x+swatchSize > toolbarWidth && i < swatches-1 {
			x = 4
			y += swatchStep
		}
	}
	if swatches > 0 {
		y += swatchStep
	}

	y += 4
	for i := 0; i < widths; i++ {
		l.widths = append(l.widths, image.Rect(0, y, toolbarWidth, y+widthHeight))
		y += widthHeight
	}

	meas := &font.Drawer{Face: basicfont.Face7x13}
	x = toolbarWidth + 4
	for _, lbl := range shortcutLabels {
		w := meas.MeasureString(lbl).Ceil()
		r := image.Rect(x-2, height-bottomHeight+2, x+w+2, height-bottomHeight+20)
		l.shortcuts = append(l.shortcuts, r)
		x = r.Max.X + 8
	}

	area := l.canvas()
	origin := area.Min.Add(image.Pt(pageMargin, pageMargin))
	if free := area.Dx() - pageSize.X; free > 2*pageMargin {
		origin.X = area.Min.X + free/2
	}
	if free := area.Dy() - pageSize.Y; free > 2*pageMargin {
		origin.Y = area.Min.Y + free/2
	}
	l.page = image.Rectangle{Min: origin, Max: origin.Add(pageSize)}
	return l
}

// canvas returns the area right of the toolbar between the status and
// shortcut bars.
func (l layout) canvas() image.Rectangle {
	return image.Rect(toolbarWidth, statusHeight, l.width, l.height-bottomHeight)
}

func (l layout) toolbar() image.Rectangle {
	return image.Rect(0, statusHeight, toolbarWidth, l.height-bottomHeight)
}

// hit reports which element contains p and its index within its group.
func (l layout) hit(p image.Point) (target, int) {
	if p.Y >= l.height-bottomHeight {
		for i, r := range l.shortcuts {
			if p.In(r) {
				return targetShortcut, i
			}
		}
		return targetNone, -1
	}
	if p.In(l.toolbar()) {
		for i, r := range l.buttons {
			if p.In(r) {
				return targetButton, i
			}
		}
		for i, r := range l.swatches {
			if p.In(r) {
				return targetSwatch, i
			}
		}
		for i, r := range l.widths {
			if p.In(r) {
				return targetWidth, i
			}
		}
		return targetNone, -1
	}
	if p.In(l.page.Intersect(l.canvas())) {
		return targetPage, 0
	}
	return targetNone, -1
}

// toPage converts window coordinates to page coordinates.
func (l layout) toPage(x, y float32) (float64, float64) {
	return float64(x) - float64(l.page.Min.X), float64(y) - float64(l.page.Min.Y)
}

// windowSize returns the window size that shows pageSize without clipping
// the toolbar.
func windowSize(pageSize image.Point, buttons, swatches, widths int) image.Point {
	l := newLayout(0, 0, image.Point{}, buttons, swatches, widths, nil)
	toolbarBottom := statusHeight
	for _, group := range [][]image.Rectangle{l.buttons, l.swatches, l.widths} {
		for _, r := range group {
			if r.Max.Y > toolbarBottom {
				toolbarBottom = r.Max.Y
			}
		}
	}
	w := toolbarWidth + pageSize.X + 2*pageMargin
	h := statusHeight + pageSize.Y + 2*pageMargin + bottomHeight
	if min := toolbarBottom + 4 + bottomHeight; h < min {
		h = min
	}
	return image.Pt(w, h)
}
