package appstate

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"
	"golang.org/x/mobile/event/touch"

	"github.com/example/paintboard/internal/clipboard"
	"github.com/example/paintboard/internal/notify"
	board "github.com/example/paintboard/internal/paint"
	"github.com/example/paintboard/internal/palette"
	"github.com/example/paintboard/internal/render"
	"github.com/example/paintboard/internal/theme"
)

// DefaultSize is the page size used when none is configured.
var DefaultSize = image.Pt(800, 600)

const messageDuration = 2 * time.Second

// AppState holds application configuration for the UI.
type AppState struct {
	Board   *board.Board
	Size    image.Point
	Output  string
	SaveDir string
	Theme   *theme.Theme
	Shadow  render.ShadowOptions

	notifier *notify.Notifier
	copyFn   func(image.Image) error

	updateCh chan struct{}
	onClose  func()

	closeOnce sync.Once
	err       error
}

// Option modifies an AppState during creation.
type Option func(*AppState)

// WithBoard sets the board the window edits.
func WithBoard(b *board.Board) Option { return func(a *AppState) { a.Board = b } }

// WithSize sets the page size in pixels.
func WithSize(w, h int) Option { return func(a *AppState) { a.Size = image.Pt(w, h) } }

// WithOutput sets the file written by the save action.
func WithOutput(out string) Option { return func(a *AppState) { a.Output = out } }

// WithSaveDir sets the directory for timestamped saves when no output is set.
func WithSaveDir(dir string) Option { return func(a *AppState) { a.SaveDir = dir } }

// WithTheme sets the UI colours. The page colour is also the export
// background.
func WithTheme(t *theme.Theme) Option { return func(a *AppState) { a.Theme = t } }

// WithNotifier sets the notifier used after saving and copying.
func WithNotifier(n *notify.Notifier) Option { return func(a *AppState) { a.notifier = n } }

// WithBackground overrides the page colour of the theme.
func WithBackground(hex string) Option {
	return func(a *AppState) {
		col, err := palette.Lookup(hex)
		if err != nil {
			log.Printf("background %q: %v", hex, err)
			return
		}
		t := *a.theme()
		t.Page = col
		a.Theme = &t
	}
}

// WithShadow sets the page shadow. A zero opacity disables it.
func WithShadow(opts render.ShadowOptions) Option { return func(a *AppState) { a.Shadow = opts } }

// WithOnClose registers fn to run once the window has closed.
func WithOnClose(fn func()) Option { return func(a *AppState) { a.onClose = fn } }

func New(opts ...Option) *AppState {
	a := &AppState{
		Size:     DefaultSize,
		Shadow:   render.DefaultShadowOptions(),
		copyFn:   clipboard.WriteImage,
		updateCh: make(chan struct{}, 1),
	}
	for _, o := range opts {
		o(a)
	}
	if a.Board == nil {
		a.Board = board.NewBoard()
	}
	if a.Size.X <= 0 || a.Size.Y <= 0 {
		a.Size = DefaultSize
	}
	a.Theme = a.theme()
	a.Board.AddListener(a.NotifyChanged)
	return a
}

func (a *AppState) theme() *theme.Theme {
	if a.Theme == nil {
		return theme.Default()
	}
	return a.Theme
}

// NotifyChanged requests a repaint of the UI when the board mutates.
func (a *AppState) NotifyChanged() {
	if a.updateCh == nil {
		return
	}
	select {
	case a.updateCh <- struct{}{}:
	default:
	}
}

func (a *AppState) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver and returns once the window
// is closed.
func (a *AppState) Run() error {
	driver.Main(a.Main)
	return a.err
}

// Export writes the board to path with the page size and page colour.
func (a *AppState) Export(path string) error {
	opts := render.ExportOptions{Width: a.Size.X, Height: a.Size.Y, Background: a.Theme.Page}
	return render.Export(path, opts, a.Board.Strokes())
}

// savePath returns the file the save action writes to.
func (a *AppState) savePath(now time.Time) string {
	if a.Output != "" {
		return a.Output
	}
	name := fmt.Sprintf("paintboard-%s.png", now.Format("20060102-150405"))
	if a.SaveDir == "" {
		return name
	}
	return filepath.Join(a.SaveDir, name)
}

// runAction performs a named window action and returns the status message.
// It reports quit for the quit action.
func (a *AppState) runAction(action string) (msg string, quit bool) {
	b := a.Board
	if m, err := board.ParseMode(action); err == nil {
		b.SetMode(m)
		return "", false
	}
	switch action {
	case "undo":
		if !b.Undo() {
			return "nothing to undo", false
		}
	case "redo":
		if !b.Redo() {
			return "nothing to redo", false
		}
	case "clear":
		b.Clear()
		return "cleared", false
	case "thinner":
		b.SetThickness(palette.Thinner(b.Brush().Thickness))
	case "thicker":
		b.SetThickness(palette.Thicker(b.Brush().Thickness))
	case "save":
		path := a.savePath(time.Now())
		if err := a.Export(path); err != nil {
			log.Printf("save: %v", err)
			return "save failed", false
		}
		log.Printf("saved %s", path)
		a.notifier.Save(path)
		return "saved " + filepath.Base(path), false
	case "copy":
		img := render.Image(a.Size.X, a.Size.Y, a.Theme.Page, b.Strokes())
		if err := a.copyFn(img); err != nil {
			log.Printf("copy: %v", err)
			return "copy failed", false
		}
		a.notifier.Copy("", img)
		return "drawing copied to clipboard", false
	case "quit":
		return "", true
	default:
		log.Printf("unknown action %q", action)
	}
	return "", false
}

// clearPrompt asks for the confirming second clear request.
const clearPrompt = "press Del again to clear"

// clearGuard arms on a first clear request. A second request before the
// prompt expires confirms it.
type clearGuard struct {
	until time.Time
}

// confirm reports whether a clear requested at now is confirmed. An
// unconfirmed request arms the guard.
func (g *clearGuard) confirm(now time.Time) bool {
	if !g.until.IsZero() && now.Before(g.until) {
		g.until = time.Time{}
		return true
	}
	g.until = now.Add(messageDuration)
	return false
}

func (g *clearGuard) disarm() { g.until = time.Time{} }

// request runs action through the clear confirmation. Any other action
// disarms a pending clear.
func (a *AppState) request(action string, now time.Time, g *clearGuard) (msg string, quit bool) {
	if action == "clear" {
		if !g.confirm(now) {
			return clearPrompt, false
		}
	} else {
		g.disarm()
	}
	return a.runAction(action)
}

// selectPreset applies the palette swatch or thickness preset at idx and
// reports whether the brush was changed. Setting the brush does not notify
// board listeners, so callers repaint themselves.
func (a *AppState) selectPreset(tgt target, idx int) bool {
	switch tgt {
	case targetSwatch:
		if idx < 0 || idx >= palette.Len() {
			return false
		}
		a.Board.SetColor(palette.ColorAt(idx))
	case targetWidth:
		ws := palette.Thicknesses()
		if idx < 0 || idx >= len(ws) {
			return false
		}
		a.Board.SetThickness(ws[idx])
	default:
		return false
	}
	return true
}

func (a *AppState) Main(s screen.Screen) {
	defer a.notifyClose()
	b := a.Board
	th := a.Theme
	pageSize := a.Size

	d := windowSize(pageSize, len(toolbarItems), palette.Len(), len(palette.Thicknesses()))
	width, height := d.X, d.Y
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: "Paintboard"})
	if err != nil {
		a.err = fmt.Errorf("new window: %w", err)
		log.Print(a.err)
		return
	}
	defer w.Release()

	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-a.updateCh:
				w.Send(paint.Event{})
			case <-done:
				return
			}
		}
	}()
	defer close(done)

	relayout := func() layout {
		return newLayout(width, height, pageSize, len(toolbarItems), palette.Len(), len(palette.Thicknesses()), labels(shortcutItems))
	}
	l := relayout()

	var message string
	var messageUntil time.Time
	var guard clearGuard
	quit := false

	// handleShortcut runs action and reports whether the window should close.
	handleShortcut := func(action string) bool {
		now := time.Now()
		msg, q := a.request(action, now, &guard)
		if msg != "" {
			message = msg
			messageUntil = now.Add(messageDuration)
			time.AfterFunc(messageDuration, a.NotifyChanged)
		}
		w.Send(paint.Event{})
		return q
	}
	c := newChrome(th, func(action string) func() {
		return func() {
			if handleShortcut(action) {
				quit = true
			}
		}
	})

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		shadow := render.PageShadow(pageSize, a.Shadow)
		var cache render.Cache
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			drawFrame(ctx, s, w, st, c, shadow, &cache)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
			cancel()
		}
	}()
	defer close(paintCh)

	stopPainting := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}

	keys := defaultKeymap()
	var hover, pressed target
	hoverIdx, pressedIdx := -1, -1
	mouseDrawing := false
	var touchSeq touch.Sequence
	touchDrawing, touchPressing := false, false

	// press handles a primary press at p and reports whether it started a
	// gesture on the page. Buttons activate on release.
	press := func(p image.Point, x, y float32) bool {
		tgt, idx := l.hit(p)
		switch tgt {
		case targetButton, targetShortcut:
			pressed, pressedIdx = tgt, idx
		case targetSwatch, targetWidth:
			guard.disarm()
			if !a.selectPreset(tgt, idx) {
				return false
			}
		case targetPage:
			guard.disarm()
			px, py := l.toPage(x, y)
			b.TouchDown(px, py)
			return true
		default:
			return false
		}
		w.Send(paint.Event{})
		return false
	}

	// release activates the pressed button when the pointer is still over it.
	release := func(p image.Point) {
		if pressed == targetNone {
			return
		}
		tgt, idx := l.hit(p)
		held, heldIdx := pressed, pressedIdx
		pressed, pressedIdx = targetNone, -1
		if tgt == held && idx == heldIdx {
			if btn := c.button(held, heldIdx); btn != nil {
				btn.Activate()
			}
		}
		w.Send(paint.Event{})
	}

	for !quit {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				stopPainting()
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff && (mouseDrawing || touchDrawing) {
				b.TouchCancel()
				mouseDrawing, touchDrawing = false, false
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			l = relayout()
			w.Send(paint.Event{})
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil {
				if dropCount < frameDropThreshold {
					paintCancel()
					dropCount++
				}
			}
			paintMu.Unlock()
			committed, current := b.View()
			st := paintState{
				layout:     l,
				committed:  committed,
				current:    current,
				mode:       b.Mode(),
				brush:      b.Brush(),
				canUndo:    b.CanUndo(),
				canRedo:    b.CanRedo(),
				hover:      hover,
				hoverIdx:   hoverIdx,
				pressed:    pressed,
				pressedIdx: pressedIdx,
				message:    message,
				until:      messageUntil,
			}
			select {
			case paintCh <- st:
			default:
				select {
				case <-paintCh:
				default:
				}
				paintCh <- st
			}
		case mouse.Event:
			p := image.Pt(int(e.X), int(e.Y))
			if mouseDrawing {
				switch {
				case e.Button == mouse.ButtonLeft && e.Direction == mouse.DirRelease:
					px, py := l.toPage(e.X, e.Y)
					b.TouchMove(px, py)
					b.TouchUp()
					mouseDrawing = false
				case e.Direction == mouse.DirNone:
					px, py := l.toPage(e.X, e.Y)
					b.TouchMove(px, py)
				}
				continue
			}
			switch {
			case e.Direction == mouse.DirNone:
				tgt, idx := l.hit(p)
				if tgt != hover || idx != hoverIdx {
					hover, hoverIdx = tgt, idx
					w.Send(paint.Event{})
				}
			case e.Button != mouse.ButtonLeft:
			case e.Direction == mouse.DirPress:
				mouseDrawing = press(p, e.X, e.Y)
			case e.Direction == mouse.DirRelease:
				release(p)
			}
		case touch.Event:
			p := image.Pt(int(e.X), int(e.Y))
			switch e.Type {
			case touch.TypeBegin:
				if touchDrawing || touchPressing || mouseDrawing {
					continue
				}
				touchSeq = e.Sequence
				touchDrawing = press(p, e.X, e.Y)
				touchPressing = pressed != targetNone
			case touch.TypeMove:
				if touchDrawing && e.Sequence == touchSeq {
					px, py := l.toPage(e.X, e.Y)
					b.TouchMove(px, py)
				}
			case touch.TypeEnd:
				if e.Sequence != touchSeq {
					continue
				}
				switch {
				case touchDrawing:
					px, py := l.toPage(e.X, e.Y)
					b.TouchMove(px, py)
					b.TouchUp()
					touchDrawing = false
				case touchPressing:
					release(p)
					touchPressing = false
				}
			}
		case key.Event:
			if e.Direction == key.DirRelease {
				continue
			}
			action, ok := keys.lookup(e)
			if !ok {
				guard.disarm()
				continue
			}
			if e.Direction == key.DirNone && !repeatable(action) {
				continue
			}
			if handleShortcut(action) {
				quit = true
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
	stopPainting()
}

// repeatable reports whether holding the key down should repeat action.
func repeatable(action string) bool {
	switch action {
	case "thinner", "thicker", "undo", "redo":
		return true
	}
	return false
}
