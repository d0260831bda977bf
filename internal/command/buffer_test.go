package command

import (
	"testing"

	"xsurf/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = geom.RGB(255, 0, 0)

func TestBufferRecordsInOrder(t *testing.T) {
	b := NewBuffer(DefaultCapacity, 0)
	c := b.Begin(800, 600)
	assert.Equal(t, float32(800), c.Width())
	assert.Equal(t, float32(600), c.Height())

	c.Scissor(geom.R(0, 0, 100, 50))
	c.Rect(geom.R(10, 10, 20, 20), red)
	c.Line(0, 0, 10, 10, red)
	c.Circle(geom.R(5, 5, 10, 10), red)
	c.Triangle(geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(5, 5), red)
	c.Text(geom.R(5, 5, 40, 20), []byte("Hi"), nil, geom.RGB(0, 0, 0), geom.RGB(255, 255, 255))

	res := b.End()
	require.Equal(t, StatusOK, res.Memory.Status)
	require.Equal(t, 6, res.List.Len())

	want := []Kind{KindScissor, KindRect, KindLine, KindCircle, KindTriangle, KindText}
	for i, cmd := range res.List.All() {
		assert.Equal(t, want[i], cmd.Kind(), "command %d", i)
	}
	assert.Equal(t, res.Memory.Allocated, res.Memory.Needed)
}

func TestBufferTextIsCopied(t *testing.T) {
	b := NewBuffer(DefaultCapacity, 0)
	c := b.Begin(100, 100)
	s := []byte("abc")
	c.Text(geom.R(0, 0, 50, 20), s, nil, red, red)
	s[0] = 'z'

	res := b.End()
	txt, ok := res.List.At(0).(Text)
	require.True(t, ok)
	assert.Equal(t, "abc", string(txt.String))
}

func TestBufferOutOfMemory(t *testing.T) {
	b := NewBuffer(64, 0)
	c := b.Begin(100, 100)
	for i := 0; i < 10; i++ {
		c.Rect(geom.R(0, 0, 10, 10), red)
	}
	res := b.End()

	assert.Equal(t, StatusOutOfMemory, res.Memory.Status)
	assert.Equal(t, 2, res.List.Len())
	assert.LessOrEqual(t, res.Memory.Allocated, res.Memory.Size)
	assert.Equal(t, 10*sizeOf(Rect{}), res.Memory.Needed)
}

func TestBufferBeginResets(t *testing.T) {
	b := NewBuffer(64, 0)
	c := b.Begin(100, 100)
	for i := 0; i < 10; i++ {
		c.Rect(geom.R(0, 0, 10, 10), red)
	}
	require.Equal(t, StatusOutOfMemory, b.End().Memory.Status)

	b.Begin(100, 100)
	res := b.End()
	assert.Equal(t, StatusOK, res.Memory.Status)
	assert.Equal(t, 0, res.List.Len())
	assert.Equal(t, 0, res.Memory.Needed)
}

func TestBufferClipCulling(t *testing.T) {
	b := NewBuffer(DefaultCapacity, FlagClip)
	c := b.Begin(800, 600)
	c.Scissor(geom.R(0, 0, 100, 100))
	c.Rect(geom.R(200, 200, 10, 10), red)
	c.Rect(geom.R(90, 90, 20, 20), red)
	c.Line(300, 300, 400, 400, red)
	c.Circle(geom.R(50, 50, 10, 10), red)

	res := b.End()
	assert.Equal(t, 3, res.List.Len())
	assert.Equal(t, 2, res.Memory.Clipped)
	assert.Equal(t, geom.R(0, 0, 100, 100), c.Clip())
}

func TestBufferWithoutClipFlagKeepsEverything(t *testing.T) {
	b := NewBuffer(DefaultCapacity, 0)
	c := b.Begin(800, 600)
	c.Scissor(geom.R(0, 0, 100, 100))
	c.Rect(geom.R(200, 200, 10, 10), red)
	res := b.End()
	assert.Equal(t, 2, res.List.Len())
	assert.Equal(t, 0, res.Memory.Clipped)
}

func TestBufferSkipsEmptyShapes(t *testing.T) {
	b := NewBuffer(DefaultCapacity, 0)
	c := b.Begin(800, 600)
	c.Rect(geom.R(0, 0, 0, 10), red)
	c.Circle(geom.R(0, 0, 10, -1), red)
	assert.Equal(t, 0, b.End().List.Len())
}
