package appstate

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/paintboard/internal/paint"
	"github.com/example/paintboard/internal/palette"
	"github.com/example/paintboard/internal/render"
	"github.com/example/paintboard/internal/theme"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var statusFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	statusFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 14, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// toolbarItem is a button in the toolbar. Mode buttons use the mode name
// as their action.
type toolbarItem struct {
	label  string
	action string
}

var toolbarItems = []toolbarItem{
	{"P:Pen", paint.ModePen.String()},
	{"X:Rect", paint.ModeRectangle.String()},
	{"O:Oval", paint.ModeOval.String()},
	{"E:Erase", paint.ModeEraser.String()},
	{"^Z:Undo", "undo"},
	{"^Y:Redo", "redo"},
	{"Del:Clear", "clear"},
}

var shortcutItems = []toolbarItem{
	{"^S:save", "save"},
	{"^C:copy", "copy"},
	{"[:thinner", "thinner"},
	{"]:thicker", "thicker"},
	{"Q:quit", "quit"},
}

func labels(items []toolbarItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.label
	}
	return out
}

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
	StateActive
	StateDisabled
	buttonStates
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
// It delegates all interface methods to the wrapped Button while
// caching the result of Draw for each state.
type CacheButton struct {
	Button
	cache [buttonStates]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [buttonStates]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// Shortcut is a labelled entry of the shortcut bar.
type Shortcut struct {
	label  string
	action func()
	rect   image.Rectangle
	theme  *theme.Theme
}

func (s *Shortcut) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, s.rect, &image.Uniform{buttonBackground(s.theme, state)}, image.Point{}, draw.Src)
	drawRect(dst, s.rect, s.theme.ButtonBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(s.theme.ButtonText), Face: basicfont.Face7x13,
		Dot: fixed.P(s.rect.Min.X+2, s.rect.Min.Y+14)}
	d.DrawString(s.label)
}

func (s *Shortcut) Rect() image.Rectangle { return s.rect }

func (s *Shortcut) SetRect(r image.Rectangle) {
	if r != s.rect {
		s.rect = r
	}
}

func (s *Shortcut) Activate() {
	if s.action != nil {
		s.action()
	}
}

// ToolButton represents a toolbar button that selects a mode or runs a
// board action.
type ToolButton struct {
	label string
	rect  image.Rectangle
	theme *theme.Theme
	// onSelect is called when the button is activated.
	onSelect func()
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	draw.Draw(dst, tb.rect, &image.Uniform{buttonBackground(tb.theme, state)}, image.Point{}, draw.Src)
	text := tb.theme.ButtonText
	if state == StateDisabled {
		text = tb.theme.ButtonTextDisabled
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(text), Face: basicfont.Face7x13,
		Dot: fixed.P(tb.rect.Min.X+4, tb.rect.Min.Y+16)}
	d.DrawString(tb.label)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}

func buttonBackground(t *theme.Theme, state ButtonState) color.RGBA {
	switch state {
	case StateHover:
		return t.ButtonBackgroundHover
	case StatePressed:
		return t.ButtonBackgroundPress
	case StateActive:
		return t.ButtonActive
	case StateDisabled:
		return t.ButtonDisabled
	}
	return t.ButtonBackground
}

// chrome owns the cached toolbar and shortcut buttons. Drawing happens on
// the paint goroutine; the event loop only activates buttons.
type chrome struct {
	theme     *theme.Theme
	buttons   []*CacheButton
	shortcuts []*CacheButton
}

// newChrome builds the buttons. bind returns the callback run when the
// button for an action is activated.
func newChrome(t *theme.Theme, bind func(action string) func()) *chrome {
	c := &chrome{theme: t}
	for _, it := range toolbarItems {
		tb := &ToolButton{label: it.label, theme: t, onSelect: bind(it.action)}
		c.buttons = append(c.buttons, &CacheButton{Button: tb})
	}
	for _, it := range shortcutItems {
		sc := &Shortcut{label: it.label, theme: t, action: bind(it.action)}
		c.shortcuts = append(c.shortcuts, &CacheButton{Button: sc})
	}
	return c
}

// button returns the toolbar or shortcut button at idx, or nil.
func (c *chrome) button(tgt target, idx int) Button {
	var list []*CacheButton
	switch tgt {
	case targetButton:
		list = c.buttons
	case targetShortcut:
		list = c.shortcuts
	}
	if idx < 0 || idx >= len(list) {
		return nil
	}
	return list[idx]
}

// paintState is the immutable input of one frame.
type paintState struct {
	layout    layout
	committed []paint.Stroke
	current   *paint.Stroke
	mode      paint.Mode
	brush     paint.Brush
	canUndo   bool
	canRedo   bool
	hover     target
	hoverIdx  int
	// pressed is the button held down by the pointer, if any.
	pressed    target
	pressedIdx int
	message    string
	until      time.Time
}

// buttonState returns the state of toolbar button i.
func (st paintState) buttonState(i int) ButtonState {
	action := toolbarItems[i].action
	switch {
	case action == st.mode.String():
		return StateActive
	case action == "undo" && !st.canUndo, action == "redo" && !st.canRedo:
		return StateDisabled
	}
	return st.pointerState(targetButton, i)
}

// pointerState returns the pressed or hover state of the button at idx.
func (st paintState) pointerState(tgt target, idx int) ButtonState {
	switch {
	case st.pressed == tgt && st.pressedIdx == idx:
		return StatePressed
	case st.hover == tgt && st.hoverIdx == idx:
		return StateHover
	}
	return StateDefault
}

// statusText describes the board for the status bar.
func (st paintState) statusText(now time.Time) string {
	s := fmt.Sprintf("%s  %s  %gpx  %d strokes", st.mode, palette.NameOf(st.brush.Color), st.brush.Thickness, len(st.committed))
	if st.message != "" && now.Before(st.until) {
		s += "  " + st.message
	}
	return s
}

func (c *chrome) drawToolbar(dst *image.RGBA, st paintState) {
	l := st.layout
	draw.Draw(dst, l.toolbar(), &image.Uniform{c.theme.ToolbarBackground}, image.Point{}, draw.Src)
	for i, cb := range c.buttons {
		if i >= len(l.buttons) {
			break
		}
		cb.SetRect(l.buttons[i])
		cb.Draw(dst, st.buttonState(i))
	}

	for i, box := range palette.Boxes(st.brush.Color) {
		if i >= len(l.swatches) {
			break
		}
		rect := l.swatches[i]
		draw.Draw(dst, rect, &image.Uniform{box.Color.Color}, image.Point{}, draw.Src)
		drawRect(dst, rect, c.theme.SwatchBorder, 1)
		if st.hover == targetSwatch && st.hoverIdx == i {
			draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if box.Selected {
			drawRect(dst, rect.Inset(-2), c.theme.SwatchSelected, 2)
		}
	}

	// The preview line is drawn with the real rasteriser so the preset shows
	// the width strokes will have, clipped to the row.
	for i, w := range palette.Thicknesses() {
		if i >= len(l.widths) {
			break
		}
		rect := l.widths[i]
		bg := c.theme.ButtonBackground
		if w == st.brush.Thickness {
			bg = c.theme.ButtonBackgroundPress
		} else if st.hover == targetWidth && st.hoverIdx == i {
			bg = c.theme.ButtonBackgroundHover
		}
		draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(c.theme.ButtonText), Face: basicfont.Face7x13,
			Dot: fixed.P(rect.Min.X+4, rect.Min.Y+12)}
		d.DrawString(fmt.Sprintf("%g", w))
		row := dst.SubImage(rect).(*image.RGBA)
		render.DrawStroke(row, previewStroke(rect, w, st.brush.Color))
	}
}

func previewStroke(rect image.Rectangle, width float64, col color.RGBA) paint.Stroke {
	var p paint.Path
	mid := float64(rect.Min.Y+rect.Max.Y) / 2
	p.MoveTo(paint.Pt(float64(rect.Min.X+34), mid))
	p.LineTo(paint.Pt(float64(rect.Max.X-6), mid))
	return paint.Stroke{Path: p, Paint: paint.Paint{Color: col, Width: width, Style: paint.StyleStroke}}
}

func (c *chrome) drawStatus(dst *image.RGBA, st paintState) {
	rect := image.Rect(0, 0, st.layout.width, statusHeight)
	draw.Draw(dst, rect, &image.Uniform{c.theme.StatusBackground}, image.Point{}, draw.Src)
	swatch := image.Rect(4, 4, 20, 20)
	draw.Draw(dst, swatch, &image.Uniform{st.brush.Color}, image.Point{}, draw.Src)
	drawRect(dst, swatch, c.theme.SwatchBorder, 1)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c.theme.StatusText), Face: statusFace,
		Dot: fixed.P(26, 17)}
	d.DrawString(st.statusText(time.Now()))
}

func (c *chrome) drawShortcuts(dst *image.RGBA, st paintState) {
	l := st.layout
	rect := image.Rect(0, l.height-bottomHeight, l.width, l.height)
	draw.Draw(dst, rect, &image.Uniform{c.theme.ToolbarBackground}, image.Point{}, draw.Src)
	for i, sc := range c.shortcuts {
		if i >= len(l.shortcuts) {
			break
		}
		sc.SetRect(l.shortcuts[i])
		sc.Draw(dst, st.pointerState(targetShortcut, i))
	}
}

// drawPage draws the page, its shadow and the strokes into the canvas area.
func drawPage(ctx context.Context, dst *image.RGBA, st paintState, t *theme.Theme, shadow render.ShadowResult, cache *render.Cache) {
	area := st.layout.canvas()
	canvas := dst.SubImage(area).(*image.RGBA)
	draw.Draw(canvas, area, &image.Uniform{t.Background}, image.Point{}, draw.Src)
	page := st.layout.page
	if shadow.Image != nil {
		at := page.Min.Sub(shadow.Offset)
		draw.Draw(canvas, shadow.Image.Bounds().Add(at), shadow.Image, image.Point{}, draw.Over)
	}
	draw.Draw(canvas, page, &image.Uniform{t.Page}, image.Point{}, draw.Src)
	if ctx.Err() != nil {
		return
	}
	layer := cache.Compose(page.Dx(), page.Dy(), st.committed, st.current)
	draw.Draw(canvas, page, layer, image.Point{}, draw.Over)
}

func drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState, c *chrome, shadow render.ShadowResult, cache *render.Cache) {
	size := image.Pt(st.layout.width, st.layout.height)
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	b, err := s.NewBuffer(size)
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	drawPage(ctx, b.RGBA(), st, c.theme, shadow, cache)
	if ctx.Err() != nil {
		return
	}

	c.drawToolbar(b.RGBA(), st)
	c.drawStatus(b.RGBA(), st)
	c.drawShortcuts(b.RGBA(), st)

	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func drawRect(img *image.RGBA, rect image.Rectangle, col color.Color, thick int) {
	u := &image.Uniform{col}
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Max.X, rect.Min.Y+thick), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Max.Y-thick, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Min.X, rect.Min.Y, rect.Min.X+thick, rect.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(rect.Max.X-thick, rect.Min.Y, rect.Max.X, rect.Max.Y), u, image.Point{}, draw.Src)
}
