// Package ebitenhost runs the frame loop inside an ebiten game, for hosts
// where talking to the X server directly is not an option.
package ebitenhost

import (
	"errors"
	"image"
	"iter"
	"time"

	"xsurf/internal/platform"

	"github.com/hajimehoshi/ebiten/v2"
)

type Backend struct{}

func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "ebiten" }

func (b *Backend) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	w := max(cfg.WidthPx, 1)
	h := max(cfg.HeightPx, 1)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetScreenClearedEveryFrame(false)
	tps := ebiten.DefaultTPS
	if cfg.FrameBudget > 0 {
		tps = max(int(time.Second/cfg.FrameBudget), 1)
	}
	ebiten.SetTPS(tps)
	return &Window{w: w, h: h}, nil
}

// Window buffers ebiten input state as native events and holds the last
// presented frame until ebiten asks for a Draw.
type Window struct {
	w     int
	h     int
	queue []platform.Event
	keys  keyPoller

	cursor    image.Point
	hasCursor bool

	frame  *image.RGBA
	tex    *ebiten.Image
	dirty  bool
	closed bool
}

// Run hands control to ebiten. step runs once per tick; returning false
// ends the game.
func (w *Window) Run(step func() (bool, error)) error {
	err := ebiten.RunGame(&game{win: w, step: step})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (w *Window) Events() iter.Seq[platform.Event] {
	return func(yield func(platform.Event) bool) {
		for len(w.queue) > 0 {
			ev := w.queue[0]
			w.queue = w.queue[1:]
			if !yield(ev) {
				return
			}
		}
	}
}

func (w *Window) SizePx() (int, int) { return w.w, w.h }

func (w *Window) Blit(pix []uint32, stride, width, height int) error {
	if w.frame == nil || w.frame.Rect.Dx() != width || w.frame.Rect.Dy() != height {
		w.frame = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	dst := w.frame.Pix
	for y := 0; y < height; y++ {
		row := pix[y*stride : y*stride+width]
		off := y * w.frame.Stride
		for x, p := range row {
			j := off + x*4
			dst[j+0] = uint8(p >> 16)
			dst[j+1] = uint8(p >> 8)
			dst[j+2] = uint8(p)
			dst[j+3] = 0xFF
		}
	}
	w.dirty = true
	return nil
}

func (w *Window) Flush() error { return nil }

func (w *Window) SetTitle(title string) { ebiten.SetWindowTitle(title) }

func (w *Window) Close() {
	if w.tex != nil {
		w.tex.Deallocate()
		w.tex = nil
	}
	w.frame = nil
	w.closed = true
}

// poll converts this tick's ebiten input into queued events.
func (w *Window) poll() {
	if ebiten.IsWindowBeingClosed() {
		w.queue = append(w.queue, platform.Event{Type: platform.EventClose})
	}
	w.queue = w.keys.poll(w.queue)

	x, y := ebiten.CursorPosition()
	if !w.hasCursor || x != w.cursor.X || y != w.cursor.Y {
		w.cursor = image.Pt(x, y)
		w.hasCursor = true
		w.queue = append(w.queue, platform.Event{Type: platform.EventMouseMove, X: x, Y: y})
	}
	w.queue = pollButtons(w.queue, x, y)
}

type game struct {
	win  *Window
	step func() (bool, error)
}

func (g *game) Update() error {
	g.win.poll()
	running, err := g.step()
	if err != nil {
		return err
	}
	if !running {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	w := g.win
	if w.frame == nil {
		return
	}
	b := w.frame.Rect
	if w.tex == nil || w.tex.Bounds().Dx() != b.Dx() || w.tex.Bounds().Dy() != b.Dy() {
		if w.tex != nil {
			w.tex.Deallocate()
		}
		w.tex = ebiten.NewImage(b.Dx(), b.Dy())
		w.dirty = true
	}
	if w.dirty {
		w.tex.WritePixels(w.frame.Pix)
		w.dirty = false
	}
	screen.DrawImage(w.tex, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := g.win
	if outsideWidth != w.w || outsideHeight != w.h {
		w.w, w.h = max(outsideWidth, 1), max(outsideHeight, 1)
		w.queue = append(w.queue, platform.Event{Type: platform.EventResize, Width: w.w, Height: w.h})
	}
	return w.w, w.h
}
