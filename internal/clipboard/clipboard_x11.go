//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce sync.Once
	initErr  error
	backend  *x11Clipboard
)

func ensureInit() error {
	initOnce.Do(func() {
		if !hasDisplay() {
			initErr = ErrNoDisplay
			return
		}
		clip := &x11Clipboard{}
		if err := clip.initialize(); err != nil {
			initErr = err
			return
		}
		backend = clip
	})
	return initErr
}

func writePNG(data []byte) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return backend.writeImage(data)
}

// x11Clipboard owns the CLIPBOARD selection and serves image/png to
// requestors until another client takes ownership.
type x11Clipboard struct {
	conn      *xgb.Conn
	window    xproto.Window
	atoms     atomSet
	mu        sync.RWMutex
	imageData []byte

	// chunk is the largest payload sent in one property change; larger
	// images are sent with the INCR protocol.
	chunk int
	// transfers is owned by the event loop.
	transfers map[incrKey]*incrTransfer
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	incr      xproto.Atom
}

const (
	minChunkSize = 4 << 10
	maxChunkSize = 256 << 10
)

// chunkLimit returns the payload size that fits in one request when the
// server accepts requests of maxRequest four-byte units.
func chunkLimit(maxRequest uint16) int {
	n := int(maxRequest)*4 - 64
	if n > maxChunkSize {
		n = maxChunkSize
	}
	if n < minChunkSize {
		n = minChunkSize
	}
	return n
}

type incrKey struct {
	requestor xproto.Window
	property  xproto.Atom
}

// incrTransfer is an INCR transfer to one requestor property.
type incrTransfer struct {
	data  []byte
	chunk int
	done  bool
}

// next returns the next piece of data. The empty piece that ends the
// transfer marks it done.
func (t *incrTransfer) next() []byte {
	n := t.chunk
	if n > len(t.data) {
		n = len(t.data)
	}
	out := t.data[:n]
	t.data = t.data[n:]
	if n == 0 {
		t.done = true
	}
	return out
}

func (c *x11Clipboard) initialize() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		conn.Close()
		return err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return err
	}
	c.conn = conn
	c.window = window
	c.atoms = atoms
	c.chunk = chunkLimit(setup.MaximumRequestLength)
	c.transfers = make(map[incrKey]*incrTransfer)
	go c.eventLoop()
	return nil
}

func internAtoms(conn *xgb.Conn) (atomSet, error) {
	var out atomSet
	for _, a := range []struct {
		name string
		dst  *xproto.Atom
	}{
		{"CLIPBOARD", &out.clipboard},
		{"TARGETS", &out.targets},
		{"image/png", &out.png},
		{"INCR", &out.incr},
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(a.name)), a.name).Reply()
		if err != nil {
			return atomSet{}, err
		}
		*a.dst = reply.Atom
	}
	return out, nil
}

func (c *x11Clipboard) writeImage(data []byte) error {
	c.mu.Lock()
	c.imageData = append([]byte(nil), data...)
	c.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(c.conn, c.window, c.atoms.clipboard, xproto.TimeCurrentTime).Check()
}

func (c *x11Clipboard) eventLoop() {
	for {
		ev, err := c.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			c.handleSelectionRequest(e)
		case xproto.PropertyNotifyEvent:
			if e.State == xproto.PropertyDelete {
				c.continueTransfer(incrKey{requestor: e.Window, property: e.Atom})
			}
		case xproto.SelectionClearEvent:
			c.mu.Lock()
			c.imageData = nil
			c.mu.Unlock()
		}
	}
}

func (c *x11Clipboard) handleSelectionRequest(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	c.mu.RLock()
	data := c.imageData
	c.mu.RUnlock()

	switch {
	case e.Target == c.atoms.targets:
		targets := []xproto.Atom{c.atoms.targets}
		if len(data) > 0 {
			targets = append(targets, c.atoms.png)
		}
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property,
			xproto.AtomAtom, 32, uint32(len(targets)), atomsToBytes(targets))
	case e.Target == c.atoms.png && len(data) > c.chunk:
		c.startTransfer(e.Requestor, property, data)
	case e.Target == c.atoms.png && len(data) > 0:
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property,
			c.atoms.png, 8, uint32(len(data)), data)
	default:
		property = xproto.AtomNone
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(c.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// startTransfer announces an INCR transfer of data. The requestor deleting
// the property asks for each following piece.
func (c *x11Clipboard) startTransfer(requestor xproto.Window, property xproto.Atom, data []byte) {
	xproto.ChangeWindowAttributes(c.conn, requestor, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange})
	size := make([]byte, 4)
	xgb.Put32(size, uint32(len(data)))
	xproto.ChangeProperty(c.conn, xproto.PropModeReplace, requestor, property, c.atoms.incr, 32, 1, size)
	c.transfers[incrKey{requestor: requestor, property: property}] = &incrTransfer{data: data, chunk: c.chunk}
}

func (c *x11Clipboard) continueTransfer(k incrKey) {
	t, ok := c.transfers[k]
	if !ok {
		return
	}
	piece := t.next()
	xproto.ChangeProperty(c.conn, xproto.PropModeReplace, k.requestor, k.property,
		c.atoms.png, 8, uint32(len(piece)), piece)
	if t.done {
		delete(c.transfers, k)
	}
}

func atomsToBytes(atoms []xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, atom := range atoms {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
