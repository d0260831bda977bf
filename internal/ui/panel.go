// Package ui is a small immediate-mode panel that drives the renderer: it
// records draw commands from the current input frame and keeps only the
// widget state between frames.
package ui

import (
	"log/slog"

	"xsurf/internal/command"
	"xsurf/internal/font"
	"xsurf/internal/geom"
	"xsurf/internal/input"
	"xsurf/internal/logx"
)

const (
	panelTitle = "Demo"
	editMax    = 64
)

// Difficulty is the radio option shown in the panel.
type Difficulty int

const (
	Easy Difficulty = iota
	Hard
)

// Panel is a moveable, closeable window with a handful of widgets.
type Panel struct {
	theme   Theme
	font    *font.Handle
	measure font.Measurer
	log     *slog.Logger

	bounds    geom.Rect
	minimized bool
	closed    bool
	dragging  bool
	sliding   bool

	presses    int
	checked    bool
	difficulty Difficulty
	value      float32

	edit       []byte
	editActive bool
	submitted  string
}

func NewPanel(theme Theme, f *font.Handle, log *slog.Logger) *Panel {
	return &Panel{
		theme:   theme,
		font:    f,
		measure: f,
		log:     logx.OrNop(log),
		bounds:  geom.R(50, 50, 230, 250),
		value:   0.4,
		edit:    make([]byte, 0, editMax),
	}
}

func (p *Panel) Bounds() geom.Rect  { return p.bounds }
func (p *Panel) Closed() bool       { return p.closed }
func (p *Panel) Minimized() bool    { return p.minimized }
func (p *Panel) Presses() int       { return p.presses }
func (p *Panel) Checked() bool      { return p.checked }
func (p *Panel) Option() Difficulty { return p.difficulty }
func (p *Panel) Value() float32     { return p.value }
func (p *Panel) EditText() string   { return string(p.edit) }
func (p *Panel) Submitted() string  { return p.submitted }

func (p *Panel) lineHeight() float32 {
	return float32(p.font.Height()) + 2*p.theme.PaddingPx
}

func (p *Panel) headerRect() geom.Rect {
	return geom.R(p.bounds.X, p.bounds.Y, p.bounds.W, p.lineHeight())
}

func (p *Panel) minimizeRect() geom.Rect {
	h := p.headerRect()
	sz := h.H - 2*p.theme.PaddingPx
	return geom.R(h.X+p.theme.PaddingPx, h.Y+p.theme.PaddingPx, sz, sz)
}

func (p *Panel) closeRect() geom.Rect {
	h := p.headerRect()
	sz := h.H - 2*p.theme.PaddingPx
	return geom.R(h.X+h.W-p.theme.PaddingPx-sz, h.Y+p.theme.PaddingPx, sz, sz)
}

// Update records one frame of the panel and reports whether it is still
// open.
func (p *Panel) Update(c *command.Canvas, in *input.Frame) bool {
	if p.closed {
		return false
	}
	full := geom.R(0, 0, c.Width(), c.Height())
	c.Scissor(full)

	p.header(c, in)
	if p.closed {
		return false
	}
	if !p.minimized {
		rows := rowLayout{
			x:   p.bounds.X + p.theme.PaddingPx,
			y:   p.bounds.Y + p.lineHeight() + p.theme.RowGapPx,
			w:   p.bounds.W - 2*p.theme.PaddingPx,
			h:   p.lineHeight(),
			gap: p.theme.RowGapPx,
		}
		body := geom.R(p.bounds.X, p.bounds.Y+p.lineHeight(), p.bounds.W, p.bounds.H-p.lineHeight())
		c.Rect(body, p.theme.Window)

		p.button(c, in, rows.next(), "button")
		p.checkbox(c, in, rows.next(), "checkbox")
		p.options(c, in, rows.next())
		p.slider(c, in, rows.next())
		p.progress(c, rows.next())
		p.editBox(c, in, rows.next(), full)
	}
	return true
}

type rowLayout struct {
	x, y, w, h, gap float32
}

func (l *rowLayout) next() geom.Rect {
	r := geom.R(l.x, l.y, l.w, l.h)
	l.y += l.h + l.gap
	return r
}

func (p *Panel) header(c *command.Canvas, in *input.Frame) {
	hdr := p.headerRect()

	// Drag with the delta accumulated while the button stayed down.
	if p.dragging {
		if in.MouseDown() {
			d := in.MouseDelta()
			p.bounds.X += float32(d.X)
			p.bounds.Y += float32(d.Y)
			hdr = p.headerRect()
		} else {
			p.dragging = false
		}
	}

	minR, closeR := p.minimizeRect(), p.closeRect()
	switch {
	case in.MousePressed(closeR.Image()):
		p.closed = true
		p.log.Debug("panel closed")
		return
	case in.MousePressed(minR.Image()):
		p.minimized = !p.minimized
	case in.MousePressed(hdr.Image()):
		p.dragging = true
	}

	c.Rect(hdr, p.theme.Header)
	c.Line(hdr.X, hdr.Y+hdr.H-1, hdr.X+hdr.W-1, hdr.Y+hdr.H-1, p.theme.Border)

	if p.minimized {
		c.Triangle(
			geom.Pt(minR.X, minR.Y),
			geom.Pt(minR.X+minR.W, minR.Y+minR.H/2),
			geom.Pt(minR.X, minR.Y+minR.H),
			p.theme.Text)
	} else {
		c.Triangle(
			geom.Pt(minR.X, minR.Y),
			geom.Pt(minR.X+minR.W, minR.Y),
			geom.Pt(minR.X+minR.W/2, minR.Y+minR.H),
			p.theme.Text)
	}

	title := []byte(panelTitle)
	tx := minR.X + minR.W + 2*p.theme.PaddingPx
	tw := float32(p.measure.Measure(title))
	c.Text(geom.R(tx, hdr.Y, tw, hdr.H), title, p.font, p.theme.Header, p.theme.Text)
	c.Circle(closeR, p.theme.Close)
}

func (p *Panel) button(c *command.Canvas, in *input.Frame, r geom.Rect, label string) {
	bg := p.theme.Button
	if in.Mouse().In(r.Image()) {
		bg = p.theme.ButtonHover
	}
	if in.MouseReleased(r.Image()) {
		p.presses++
		p.log.Info("button pressed", "count", p.presses)
	}
	c.Rect(r, p.theme.Border)
	inner := geom.R(r.X+1, r.Y+1, r.W-2, r.H-2)
	c.Rect(inner, bg)
	p.label(c, inner, label, bg, true)
}

func (p *Panel) checkbox(c *command.Canvas, in *input.Frame, r geom.Rect, label string) {
	if in.MousePressed(r.Image()) {
		p.checked = !p.checked
	}
	sz := r.H - 2*p.theme.PaddingPx
	box := geom.R(r.X, r.Y+p.theme.PaddingPx, sz, sz)
	c.Rect(box, p.theme.Toggle)
	if p.checked {
		c.Rect(geom.R(box.X+2, box.Y+2, box.W-4, box.H-4), p.theme.ToggleCursor)
	}
	p.label(c, geom.R(box.X+box.W+p.theme.PaddingPx, r.Y, r.W-box.W-p.theme.PaddingPx, r.H), label, p.theme.Window, false)
}

func (p *Panel) options(c *command.Canvas, in *input.Frame, r geom.Rect) {
	half := r.W / 2
	for i, name := range []string{"easy", "hard"} {
		cell := geom.R(r.X+float32(i)*half, r.Y, half, r.H)
		if in.MousePressed(cell.Image()) {
			p.difficulty = Difficulty(i)
		}
		sz := r.H - 2*p.theme.PaddingPx
		knob := geom.R(cell.X, cell.Y+p.theme.PaddingPx, sz, sz)
		c.Circle(knob, p.theme.Toggle)
		if p.difficulty == Difficulty(i) {
			c.Circle(geom.R(knob.X+3, knob.Y+3, knob.W-6, knob.H-6), p.theme.ToggleCursor)
		}
		p.label(c, geom.R(knob.X+knob.W+p.theme.PaddingPx, cell.Y, cell.W-knob.W-p.theme.PaddingPx, cell.H), name, p.theme.Window, false)
	}
}

func (p *Panel) slider(c *command.Canvas, in *input.Frame, r geom.Rect) {
	knobW := r.H - 2*p.theme.PaddingPx
	track := geom.R(r.X+knobW/2, r.Y, r.W-knobW, r.H)

	if in.MousePressed(r.Image()) {
		p.sliding = true
	}
	if !in.MouseDown() {
		p.sliding = false
	}
	if p.sliding && track.W > 0 {
		v := (float32(in.Mouse().X) - track.X) / track.W
		p.value = min(max(v, 0), 1)
	}

	mid := r.Y + r.H/2
	c.Line(track.X, mid, track.X+track.W, mid, p.theme.Slider)
	kx := track.X + p.value*track.W - knobW/2
	c.Circle(geom.R(kx, r.Y+p.theme.PaddingPx, knobW, knobW), p.theme.SliderCursor)
}

func (p *Panel) progress(c *command.Canvas, r geom.Rect) {
	bar := geom.R(r.X, r.Y+p.theme.PaddingPx, r.W, r.H-2*p.theme.PaddingPx)
	c.Rect(bar, p.theme.Progress)
	c.Rect(geom.R(bar.X, bar.Y, bar.W*p.value, bar.H), p.theme.ProgressBar)
}

// editBox is a single-line field. It takes keyboard input while active and
// submits its contents on Enter.
func (p *Panel) editBox(c *command.Canvas, in *input.Frame, r geom.Rect, full geom.Rect) {
	if in.MouseClicked() {
		p.editActive = in.MouseClickPos().In(r.Image())
	}
	if p.editActive {
		for _, ch := range in.Text() {
			if len(p.edit) >= editMax || ch > 0x7e {
				continue
			}
			p.edit = append(p.edit, byte(ch))
		}
		if in.KeyPressed(input.KeySpace) && len(p.edit) < editMax {
			p.edit = append(p.edit, ' ')
		}
		if in.KeyPressed(input.KeyBackspace) && len(p.edit) > 0 {
			p.edit = p.edit[:len(p.edit)-1]
		}
		if in.KeyPressed(input.KeyEnter) {
			p.submitted = string(p.edit)
			p.edit = p.edit[:0]
			p.log.Info("text submitted", "text", p.submitted)
		}
	}

	bg := p.theme.Edit
	if p.editActive {
		bg = p.theme.EditActive
	}
	c.Rect(r, p.theme.Border)
	inner := geom.R(r.X+1, r.Y+1, r.W-2, r.H-2)
	c.Scissor(inner)
	c.Rect(inner, bg)
	p.label(c, inner, string(p.edit), bg, false)
	if p.editActive {
		cx := inner.X + p.theme.PaddingPx + float32(p.measure.Measure(p.edit))
		c.Line(cx, inner.Y+2, cx, inner.Y+inner.H-3, p.theme.Text)
	}
	c.Scissor(full)
}

func (p *Panel) label(c *command.Canvas, r geom.Rect, s string, bg geom.Color, centered bool) {
	if s == "" {
		return
	}
	text := []byte(s)
	w := float32(p.measure.Measure(text))
	x := r.X + p.theme.PaddingPx
	if centered {
		x = r.X + (r.W-w)/2
	}
	c.Text(geom.R(x, r.Y, w, r.H), text, p.font, bg, p.theme.Text)
}
