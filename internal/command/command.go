// Package command defines the draw commands produced by the toolkit each
// frame and the fixed-capacity buffer they are recorded into.
package command

import (
	"iter"

	"xsurf/internal/font"
	"xsurf/internal/geom"
)

type Kind uint8

const (
	KindNop Kind = iota
	KindScissor
	KindLine
	KindRect
	KindCircle
	KindTriangle
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindNop:
		return "nop"
	case KindScissor:
		return "scissor"
	case KindLine:
		return "line"
	case KindRect:
		return "rect"
	case KindCircle:
		return "circle"
	case KindTriangle:
		return "triangle"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Command is one recorded draw operation. Interpreters switch on the
// concrete type and ignore kinds they do not know.
type Command interface {
	Kind() Kind
}

type Nop struct{}

type Scissor struct {
	Rect geom.Rect
}

type Line struct {
	Begin geom.Point
	End   geom.Point
	Color geom.Color
}

type Rect struct {
	Rect  geom.Rect
	Color geom.Color
}

// Circle is a filled ellipse inscribed in Rect.
type Circle struct {
	Rect  geom.Rect
	Color geom.Color
}

type Triangle struct {
	A     geom.Point
	B     geom.Point
	C     geom.Point
	Color geom.Color
}

type Text struct {
	Rect       geom.Rect
	String     []byte
	Font       *font.Handle
	Background geom.Color
	Foreground geom.Color
}

func (Nop) Kind() Kind      { return KindNop }
func (Scissor) Kind() Kind  { return KindScissor }
func (Line) Kind() Kind     { return KindLine }
func (Rect) Kind() Kind     { return KindRect }
func (Circle) Kind() Kind   { return KindCircle }
func (Triangle) Kind() Kind { return KindTriangle }
func (Text) Kind() Kind     { return KindText }

// List is the ordered output of one frame. It is never modified after
// Buffer.End returns it.
type List struct {
	cmds []Command
}

func NewList(cmds ...Command) List {
	return List{cmds: cmds}
}

func (l List) Len() int { return len(l.cmds) }

func (l List) At(i int) Command { return l.cmds[i] }

func (l List) All() iter.Seq2[int, Command] {
	return func(yield func(int, Command) bool) {
		for i, c := range l.cmds {
			if !yield(i, c) {
				return
			}
		}
	}
}
