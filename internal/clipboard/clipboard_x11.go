//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"errors"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	owner        *selectionOwner
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		o := &selectionOwner{}
		if err := o.open(); err != nil {
			initErr = err
			return
		}
		owner = o
	})
	return initErr
}

// writePNG takes ownership of CLIPBOARD and serves data as image/png until
// another client claims the selection.
func writePNG(data []byte) (<-chan struct{}, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	return owner.publish(data)
}

// selectionOwner answers selection requests from an unmapped window.
type selectionOwner struct {
	conn   *xgb.Conn
	window xproto.Window
	atoms  atomSet

	mu      sync.Mutex
	data    []byte
	changed chan struct{}

	// chunk and transfers are used by the serve goroutine only.
	chunk     int
	transfers map[transferKey]*incrTransfer
}

type atomSet struct {
	clipboard xproto.Atom
	targets   xproto.Atom
	png       xproto.Atom
	incr      xproto.Atom
}

func (o *selectionOwner) open() error {
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
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		conn.Close()
		return err
	}
	atoms, err := internAtoms(conn)
	if err != nil {
		xproto.DestroyWindow(conn, window)
		conn.Close()
		return err
	}
	o.conn = conn
	o.window = window
	o.atoms = atoms
	o.chunk = chunkLimit(setup.MaximumRequestLength)
	o.transfers = make(map[transferKey]*incrTransfer)
	go o.serve()
	return nil
}

func internAtoms(conn *xgb.Conn) (atomSet, error) {
	var atoms atomSet
	for name, dst := range map[string]*xproto.Atom{
		"CLIPBOARD": &atoms.clipboard,
		"TARGETS":   &atoms.targets,
		"image/png": &atoms.png,
		"INCR":      &atoms.incr,
	} {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return atomSet{}, err
		}
		*dst = reply.Atom
	}
	return atoms, nil
}

func (o *selectionOwner) publish(data []byte) (<-chan struct{}, error) {
	changed := make(chan struct{})
	o.mu.Lock()
	o.release()
	o.data = append([]byte(nil), data...)
	o.changed = changed
	o.mu.Unlock()
	if err := xproto.SetSelectionOwnerChecked(o.conn, o.window, o.atoms.clipboard, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}
	return changed, nil
}

// release drops the current data. o.mu must be held.
func (o *selectionOwner) release() {
	o.data = nil
	if o.changed != nil {
		close(o.changed)
		o.changed = nil
	}
}

func (o *selectionOwner) serve() {
	for {
		ev, err := o.conn.WaitForEvent()
		if err != nil {
			return
		}
		if ev == nil {
			continue
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			o.answer(e)
		case xproto.PropertyNotifyEvent:
			o.continueTransfer(e)
		case xproto.SelectionClearEvent:
			o.mu.Lock()
			o.release()
			o.mu.Unlock()
		}
	}
}

func (o *selectionOwner) answer(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	o.mu.Lock()
	data := o.data
	o.mu.Unlock()

	switch {
	case e.Target == o.atoms.targets:
		payload := atomsToBytes([]xproto.Atom{o.atoms.targets, o.atoms.png})
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, xproto.AtomAtom, 32, uint32(len(payload)/4), payload)
	case e.Target == o.atoms.png && len(data) > o.chunk:
		o.startTransfer(e.Requestor, property, data)
	case e.Target == o.atoms.png && len(data) > 0:
		xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Requestor, property, o.atoms.png, 8, uint32(len(data)), data)
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
	xproto.SendEvent(o.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

// startTransfer announces data with an INCR property. The chunks follow each
// time the requestor deletes the property.
func (o *selectionOwner) startTransfer(requestor xproto.Window, property xproto.Atom, data []byte) {
	xproto.ChangeWindowAttributes(o.conn, requestor, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange})
	size := make([]byte, 4)
	xgb.Put32(size, uint32(len(data)))
	xproto.ChangeProperty(o.conn, xproto.PropModeReplace, requestor, property, o.atoms.incr, 32, 1, size)
	o.transfers[transferKey{requestor, property}] = &incrTransfer{data: data}
}

func (o *selectionOwner) continueTransfer(e xproto.PropertyNotifyEvent) {
	if e.State != xproto.PropertyDelete {
		return
	}
	key := transferKey{e.Window, e.Atom}
	t, ok := o.transfers[key]
	if !ok {
		return
	}
	chunk, ok := t.next(o.chunk)
	if !ok {
		return
	}
	xproto.ChangeProperty(o.conn, xproto.PropModeReplace, e.Window, e.Atom, o.atoms.png, 8, uint32(len(chunk)), chunk)
	if len(chunk) == 0 {
		delete(o.transfers, key)
		xproto.ChangeWindowAttributes(o.conn, e.Window, xproto.CwEventMask, []uint32{0})
	}
}

func atomsToBytes(atoms []xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, atom := range atoms {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
