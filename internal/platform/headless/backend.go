// Package headless is an in-memory window used for tests and smoke runs.
package headless

import (
	"iter"
	"sync"

	"xsurf/internal/platform"
)

type Backend struct{}

func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "headless" }

func (b *Backend) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	return NewWindow(cfg), nil
}

// Window queues scripted events and keeps a copy of the last presented
// frame. Push may be called from another goroutine.
type Window struct {
	mu      sync.Mutex
	title   string
	w       int
	h       int
	queue   []platform.Event
	frame   []uint32
	frameW  int
	frameH  int
	blits   int
	flushes int
	closed  bool
}

func NewWindow(cfg platform.WindowConfig) *Window {
	w, h := cfg.WidthPx, cfg.HeightPx
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Window{title: cfg.Title, w: w, h: h}
}

// Push queues events for the next drain. Resize events also update the
// reported window size, as a window manager would.
func (w *Window) Push(evs ...platform.Event) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, ev := range evs {
		if ev.Type == platform.EventResize && ev.Width > 0 && ev.Height > 0 {
			w.w, w.h = ev.Width, ev.Height
		}
		w.queue = append(w.queue, ev)
	}
}

// Events yields the events queued before the call. Events pushed while
// draining wait for the next frame.
func (w *Window) Events() iter.Seq[platform.Event] {
	return func(yield func(platform.Event) bool) {
		w.mu.Lock()
		pending := w.queue
		w.queue = nil
		closed := w.closed
		w.mu.Unlock()
		if closed {
			yield(platform.Event{Type: platform.EventClose})
			return
		}
		for i, ev := range pending {
			if !yield(ev) {
				w.mu.Lock()
				w.queue = append(pending[i+1:], w.queue...)
				w.mu.Unlock()
				return
			}
		}
	}
}

func (w *Window) SizePx() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w, w.h
}

func (w *Window) Blit(pix []uint32, stride, width, height int) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := width * height
	if cap(w.frame) < n {
		w.frame = make([]uint32, n)
	}
	w.frame = w.frame[:n]
	for y := 0; y < height; y++ {
		copy(w.frame[y*width:(y+1)*width], pix[y*stride:y*stride+width])
	}
	w.frameW, w.frameH = width, height
	w.blits++
	return nil
}

func (w *Window) Flush() error {
	w.mu.Lock()
	w.flushes++
	w.mu.Unlock()
	return nil
}

func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *Window) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}

// PixelAt returns the presented pixel at x, y, or 0 outside the frame.
func (w *Window) PixelAt(x, y int) uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	if x < 0 || y < 0 || x >= w.frameW || y >= w.frameH {
		return 0
	}
	return w.frame[y*w.frameW+x]
}

func (w *Window) FrameSize() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frameW, w.frameH
}

// Stats reports how many frames were blitted and flushed.
func (w *Window) Stats() (blits, flushes int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.blits, w.flushes
}
