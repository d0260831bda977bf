// Package input holds the toolkit-side input model and the translation of
// native window events into it.
package input

import "image"

type Key int

const (
	KeyCtrl Key = iota
	KeyShift
	KeyDel
	KeyEnter
	KeySpace
	KeyBackspace
	KeyCount
)

func (k Key) String() string {
	switch k {
	case KeyCtrl:
		return "ctrl"
	case KeyShift:
		return "shift"
	case KeyDel:
		return "del"
	case KeyEnter:
		return "enter"
	case KeySpace:
		return "space"
	case KeyBackspace:
		return "backspace"
	default:
		return "invalid"
	}
}

// MaxText bounds the characters accepted in a single frame.
const MaxText = 16

// Sink receives translated input. Frame is the production implementation.
type Sink interface {
	Key(k Key, down bool)
	Char(r rune)
	Motion(x, y int)
	Button(x, y int, down bool)
}

type keyState struct {
	down    bool
	clicked int
}

// Frame accumulates one frame of input. Held state (keys, button, pointer
// position) carries over between frames; everything else is reset by Begin.
type Frame struct {
	keys [KeyCount]keyState
	text []rune

	pos      image.Point
	prev     image.Point
	delta    image.Point
	down     bool
	clicked  bool
	clickPos image.Point

	active bool
}

func NewFrame() *Frame {
	return &Frame{text: make([]rune, 0, MaxText)}
}

func (f *Frame) Begin() {
	for i := range f.keys {
		f.keys[i].clicked = 0
	}
	f.text = f.text[:0]
	f.clicked = false
	f.delta = image.Point{}
	f.prev = f.pos
	f.active = true
}

func (f *Frame) End() {
	f.delta = f.pos.Sub(f.prev)
	f.active = false
}

func (f *Frame) Key(k Key, down bool) {
	if k < 0 || k >= KeyCount {
		return
	}
	st := &f.keys[k]
	if st.down == down {
		return
	}
	st.down = down
	st.clicked++
}

func (f *Frame) Char(r rune) {
	if len(f.text) >= MaxText {
		return
	}
	f.text = append(f.text, r)
}

func (f *Frame) Motion(x, y int) {
	f.pos = image.Pt(x, y)
}

func (f *Frame) Button(x, y int, down bool) {
	if f.down == down {
		return
	}
	f.pos = image.Pt(x, y)
	f.down = down
	f.clicked = true
	f.clickPos = f.pos
}

func (f *Frame) KeyDown(k Key) bool {
	if k < 0 || k >= KeyCount {
		return false
	}
	return f.keys[k].down
}

// KeyPressed reports a transition to down during this frame.
func (f *Frame) KeyPressed(k Key) bool {
	if k < 0 || k >= KeyCount {
		return false
	}
	return f.keys[k].down && f.keys[k].clicked > 0
}

func (f *Frame) KeyReleased(k Key) bool {
	if k < 0 || k >= KeyCount {
		return false
	}
	return !f.keys[k].down && f.keys[k].clicked > 0
}

// Text returns the characters entered this frame.
func (f *Frame) Text() []rune { return f.text }

func (f *Frame) Mouse() image.Point      { return f.pos }
func (f *Frame) MouseDelta() image.Point { return f.delta }
func (f *Frame) MouseDown() bool         { return f.down }
func (f *Frame) MouseClickPos() image.Point {
	return f.clickPos
}

// MouseClicked reports a button press anywhere during this frame.
func (f *Frame) MouseClicked() bool { return f.clicked && f.down }

// MousePressed reports a button press inside r during this frame.
func (f *Frame) MousePressed(r image.Rectangle) bool {
	return f.clicked && f.down && f.clickPos.In(r)
}

// MouseReleased reports a button release inside r during this frame.
func (f *Frame) MouseReleased(r image.Rectangle) bool {
	return f.clicked && !f.down && f.clickPos.In(r)
}

func (f *Frame) Active() bool { return f.active }
