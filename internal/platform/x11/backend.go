// Package x11 presents frames to an X server through the core protocol.
package x11

import (
	"encoding/binary"
	"errors"
	"fmt"
	"iter"
	"log/slog"

	"xsurf/internal/logx"
	"xsurf/internal/platform"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

const eventMask = xproto.EventMaskExposure |
	xproto.EventMaskKeyPress |
	xproto.EventMaskKeyRelease |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease |
	xproto.EventMaskButtonMotion |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskStructureNotify

// putImageHeader is the fixed size of a PutImage request in bytes.
const putImageHeader = 24

var ErrUnsupportedVisual = errors.New("unsupported visual")

type Backend struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Backend {
	return &Backend{log: logx.OrNop(log)}
}

func (b *Backend) Name() string { return "x11" }

func (b *Backend) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}
	w, err := newWindow(conn, cfg, b.log)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return w, nil
}

type Window struct {
	conn   *xgb.Conn
	log    *slog.Logger
	setup  *xproto.SetupInfo
	screen *xproto.ScreenInfo
	id     xproto.Window
	gc     xproto.Gcontext
	depth  byte
	order  binary.ByteOrder

	deleteAtom xproto.Atom
	keymap     keymap

	w       int
	h       int
	scratch []byte
}

func newWindow(conn *xgb.Conn, cfg platform.WindowConfig, log *slog.Logger) (*Window, error) {
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	if !supportsDepth(setup, screen.RootDepth) {
		return nil, fmt.Errorf("%w: depth %d", ErrUnsupportedVisual, screen.RootDepth)
	}

	w := &Window{
		conn:   conn,
		log:    log,
		setup:  setup,
		screen: screen,
		depth:  screen.RootDepth,
		order:  binary.LittleEndian,
		w:      max(cfg.WidthPx, 1),
		h:      max(cfg.HeightPx, 1),
	}
	if setup.ImageByteOrder == xproto.ImageOrderMSBFirst {
		w.order = binary.BigEndian
	}

	id, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, fmt.Errorf("allocate window id: %w", err)
	}
	w.id = id
	err = xproto.CreateWindowChecked(conn, screen.RootDepth, id, screen.Root,
		0, 0, uint16(w.w), uint16(w.h), 0,
		xproto.WindowClassInputOutput, screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{screen.BlackPixel, uint32(eventMask)}).Check()
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, fmt.Errorf("allocate gc id: %w", err)
	}
	if err := xproto.CreateGCChecked(conn, gc, xproto.Drawable(id), 0, nil).Check(); err != nil {
		return nil, fmt.Errorf("create gc: %w", err)
	}
	w.gc = gc

	if err := w.keymap.load(conn, setup); err != nil {
		return nil, err
	}
	w.watchDelete()
	w.SetTitle(cfg.Title)

	if err := xproto.MapWindowChecked(conn, id).Check(); err != nil {
		return nil, fmt.Errorf("map window: %w", err)
	}
	w.refreshSize()
	return w, nil
}

func supportsDepth(setup *xproto.SetupInfo, depth byte) bool {
	if depth != 24 && depth != 32 {
		return false
	}
	for _, f := range setup.PixmapFormats {
		if f.Depth == depth {
			return f.BitsPerPixel == 32
		}
	}
	return false
}

// watchDelete asks the window manager to send WM_DELETE_WINDOW instead of
// killing the connection when the user closes the window.
func (w *Window) watchDelete() {
	protocols, err := internAtom(w.conn, "WM_PROTOCOLS")
	if err != nil {
		w.log.Warn("intern WM_PROTOCOLS", "error", err)
		return
	}
	del, err := internAtom(w.conn, "WM_DELETE_WINDOW")
	if err != nil {
		w.log.Warn("intern WM_DELETE_WINDOW", "error", err)
		return
	}
	data := make([]byte, 4)
	xgb.Put32(data, uint32(del))
	xproto.ChangeProperty(w.conn, xproto.PropModeReplace, w.id, protocols, xproto.AtomAtom, 32, 1, data)
	w.deleteAtom = del
}

func internAtom(conn *xgb.Conn, name string) (xproto.Atom, error) {
	reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
	if err != nil {
		return 0, err
	}
	return reply.Atom, nil
}

func (w *Window) refreshSize() {
	geo, err := xproto.GetGeometry(w.conn, xproto.Drawable(w.id)).Reply()
	if err != nil {
		w.log.Warn("query window geometry", "error", err)
		return
	}
	w.w, w.h = int(geo.Width), int(geo.Height)
}

// Events drains whatever the connection has already read. PollForEvent
// never blocks.
func (w *Window) Events() iter.Seq[platform.Event] {
	return func(yield func(platform.Event) bool) {
		for {
			ev, xerr := w.conn.PollForEvent()
			if ev == nil && xerr == nil {
				return
			}
			if xerr != nil {
				w.log.Warn("x11 error", "error", xerr)
				continue
			}
			out, ok := w.translate(ev)
			if !ok {
				continue
			}
			if !yield(out) {
				return
			}
		}
	}
}

func (w *Window) translate(ev xgb.Event) (platform.Event, bool) {
	switch e := ev.(type) {
	case xproto.KeyPressEvent:
		return platform.Event{Type: platform.EventKeyDown, Keysym: w.keymap.lookup(e.Detail, e.State), X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.KeyReleaseEvent:
		return platform.Event{Type: platform.EventKeyUp, Keysym: w.keymap.lookup(e.Detail, e.State), X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.ButtonPressEvent:
		return platform.Event{Type: platform.EventMouseDown, Button: int(e.Detail), X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.ButtonReleaseEvent:
		return platform.Event{Type: platform.EventMouseUp, Button: int(e.Detail), X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.MotionNotifyEvent:
		return platform.Event{Type: platform.EventMouseMove, X: int(e.EventX), Y: int(e.EventY)}, true
	case xproto.ExposeEvent:
		w.refreshSize()
		return platform.Event{Type: platform.EventExpose, Width: w.w, Height: w.h}, true
	case xproto.ConfigureNotifyEvent:
		if int(e.Width) == w.w && int(e.Height) == w.h {
			return platform.Event{}, false
		}
		w.w, w.h = int(e.Width), int(e.Height)
		return platform.Event{Type: platform.EventResize, Width: w.w, Height: w.h}, true
	case xproto.MappingNotifyEvent:
		if err := w.keymap.load(w.conn, w.setup); err != nil {
			w.log.Warn("reload keyboard mapping", "error", err)
		}
		return platform.Event{}, false
	case xproto.ClientMessageEvent:
		if w.deleteAtom != 0 && e.Format == 32 && len(e.Data.Data32) > 0 && xproto.Atom(e.Data.Data32[0]) == w.deleteAtom {
			return platform.Event{Type: platform.EventClose}, true
		}
		return platform.Event{}, false
	default:
		return platform.Event{}, false
	}
}

func (w *Window) SizePx() (int, int) { return w.w, w.h }

// Blit sends the region as ZPixmap strips small enough for the server's
// maximum request length.
func (w *Window) Blit(pix []uint32, stride, width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	maxBytes := int(w.setup.MaximumRequestLength)*4 - putImageHeader
	rows := max(maxBytes/(width*4), 1)
	if need := min(rows, height) * width * 4; cap(w.scratch) < need {
		w.scratch = make([]byte, need)
	}
	for y0 := 0; y0 < height; y0 += rows {
		n := min(rows, height-y0)
		buf := w.scratch[:n*width*4]
		for y := 0; y < n; y++ {
			src := pix[(y0+y)*stride : (y0+y)*stride+width]
			dst := buf[y*width*4:]
			for x, p := range src {
				w.order.PutUint32(dst[x*4:], p)
			}
		}
		xproto.PutImage(w.conn, xproto.ImageFormatZPixmap, xproto.Drawable(w.id), w.gc,
			uint16(width), uint16(n), 0, int16(y0), 0, w.depth, buf)
	}
	return nil
}

// Flush waits for the server to process everything sent so far.
func (w *Window) Flush() error {
	if _, err := xproto.GetInputFocus(w.conn).Reply(); err != nil {
		return fmt.Errorf("sync with X server: %w", err)
	}
	return nil
}

func (w *Window) SetTitle(title string) {
	xproto.ChangeProperty(w.conn, xproto.PropModeReplace, w.id, xproto.AtomWmName, xproto.AtomString, 8, uint32(len(title)), []byte(title))
}

func (w *Window) Close() {
	xproto.FreeGC(w.conn, w.gc)
	xproto.UnmapWindow(w.conn, w.id)
	xproto.DestroyWindow(w.conn, w.id)
	w.conn.Close()
}
