package command

import (
	"xsurf/internal/font"
	"xsurf/internal/geom"
)

// DefaultCapacity matches the fixed working memory the toolkit was
// originally tuned for.
const DefaultCapacity = 8 * 1024

type Flags uint8

const (
	// FlagClip drops draw commands that lie entirely outside the current
	// scissor rectangle.
	FlagClip Flags = 1 << iota
)

type Status uint8

const (
	StatusOK Status = iota
	StatusOutOfMemory
)

func (s Status) String() string {
	if s == StatusOutOfMemory {
		return "out of memory"
	}
	return "ok"
}

// Memory reports how a frame used the buffer. Needed keeps counting after
// the buffer is exhausted so callers can size the next run.
type Memory struct {
	Status    Status
	Size      int
	Allocated int
	Needed    int
	Clipped   int
}

type Result struct {
	List   List
	Memory Memory
}

// record sizes mirror a packed C layout: a 16 byte header followed by the
// payload, text bytes rounded up to 4.
const (
	headerSize   = 16
	pointSize    = 4
	rectSize     = 8
	colorSize    = 4
	textOverhead = rectSize + 2*colorSize + 8
)

func sizeOf(c Command) int {
	switch c := c.(type) {
	case Nop:
		return headerSize
	case Scissor:
		return headerSize + rectSize
	case Line:
		return headerSize + 2*pointSize + colorSize
	case Rect, Circle:
		return headerSize + rectSize + colorSize
	case Triangle:
		return headerSize + 3*pointSize + colorSize
	case Text:
		return headerSize + textOverhead + (len(c.String)+3)&^3
	default:
		return headerSize
	}
}

// Buffer is the per-frame arena. It is reused across frames; a List
// returned by End is valid until the next Begin.
type Buffer struct {
	capacity int
	flags    Flags

	cmds []Command
	text []byte

	used    int
	needed  int
	clipped int
	status  Status
	clip    geom.Rect
	canvas  Canvas
}

func NewBuffer(capacity int, flags Flags) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Buffer{
		capacity: capacity,
		flags:    flags,
		cmds:     make([]Command, 0, capacity/headerSize),
		text:     make([]byte, 0, capacity),
	}
}

func (b *Buffer) Capacity() int { return b.capacity }

// Begin resets the arena and returns a canvas of the given size.
func (b *Buffer) Begin(width, height float32) *Canvas {
	b.cmds = b.cmds[:0]
	b.text = b.text[:0]
	b.used = 0
	b.needed = 0
	b.clipped = 0
	b.status = StatusOK
	b.clip = geom.R(0, 0, width, height)
	b.canvas = Canvas{buf: b, width: width, height: height}
	return &b.canvas
}

func (b *Buffer) End() Result {
	return Result{
		List: List{cmds: b.cmds[:len(b.cmds):len(b.cmds)]},
		Memory: Memory{
			Status:    b.status,
			Size:      b.capacity,
			Allocated: b.used,
			Needed:    b.needed,
			Clipped:   b.clipped,
		},
	}
}

func (b *Buffer) push(c Command) bool {
	size := sizeOf(c)
	b.needed += size
	if b.status == StatusOutOfMemory || b.used+size > b.capacity {
		b.status = StatusOutOfMemory
		return false
	}
	b.used += size
	b.cmds = append(b.cmds, c)
	return true
}

func (b *Buffer) culled(bounds geom.Rect) bool {
	if b.flags&FlagClip == 0 {
		return false
	}
	if bounds.Intersects(b.clip) {
		return false
	}
	b.clipped++
	return true
}

// Canvas is the drawing API handed to the toolkit for one frame.
type Canvas struct {
	buf    *Buffer
	width  float32
	height float32
}

func (c *Canvas) Width() float32  { return c.width }
func (c *Canvas) Height() float32 { return c.height }

// Clip returns the scissor currently in effect for culling.
func (c *Canvas) Clip() geom.Rect { return c.buf.clip }

func (c *Canvas) Scissor(r geom.Rect) {
	c.buf.clip = r
	c.buf.push(Scissor{Rect: r})
}

func (c *Canvas) Line(x0, y0, x1, y1 float32, col geom.Color) {
	bounds := geom.R(min(x0, x1), min(y0, y1), abs(x1-x0)+1, abs(y1-y0)+1)
	if c.buf.culled(bounds) {
		return
	}
	c.buf.push(Line{Begin: geom.Pt(x0, y0), End: geom.Pt(x1, y1), Color: col})
}

func (c *Canvas) Rect(r geom.Rect, col geom.Color) {
	if r.W <= 0 || r.H <= 0 || c.buf.culled(r) {
		return
	}
	c.buf.push(Rect{Rect: r, Color: col})
}

func (c *Canvas) Circle(r geom.Rect, col geom.Color) {
	if r.W <= 0 || r.H <= 0 || c.buf.culled(r) {
		return
	}
	c.buf.push(Circle{Rect: r, Color: col})
}

func (c *Canvas) Triangle(a, b, p geom.Point, col geom.Color) {
	x0 := min(a.X, b.X, p.X)
	y0 := min(a.Y, b.Y, p.Y)
	bounds := geom.R(x0, y0, max(a.X, b.X, p.X)-x0+1, max(a.Y, b.Y, p.Y)-y0+1)
	if c.buf.culled(bounds) {
		return
	}
	c.buf.push(Triangle{A: a, B: b, C: p, Color: col})
}

// Text records s by copying it into the arena, so callers may reuse their
// slice after the call.
func (c *Canvas) Text(r geom.Rect, s []byte, f *font.Handle, bg, fg geom.Color) {
	if r.W <= 0 || r.H <= 0 || c.buf.culled(r) {
		return
	}
	b := c.buf
	var str []byte
	if len(s) > 0 && len(b.text)+len(s) <= cap(b.text) {
		start := len(b.text)
		b.text = append(b.text, s...)
		str = b.text[start:len(b.text):len(b.text)]
	} else if len(s) > 0 {
		str = append([]byte(nil), s...)
	}
	b.push(Text{Rect: r, String: str, Font: f, Background: bg, Foreground: fg})
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
