package render

import (
	"testing"

	"xsurf/internal/font"
	"xsurf/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	gray  = geom.RGB(100, 100, 100)
	red   = geom.RGB(255, 0, 0)
	black = geom.RGB(0, 0, 0)
	white = geom.RGB(255, 255, 255)
)

type captureTarget struct {
	pix    []uint32
	stride int
	w, h   int
	calls  int
}

func (c *captureTarget) Blit(pix []uint32, stride, w, h int) error {
	c.pix = append(c.pix[:0], pix...)
	c.stride, c.w, c.h = stride, w, h
	c.calls++
	return nil
}

func (c *captureTarget) at(x, y int) Pixel { return Pixel(c.pix[y*c.stride+x]) }

func TestPackIgnoresAlpha(t *testing.T) {
	assert.Equal(t, Pixel(0x00646464), Pack(geom.Color{R: 100, G: 100, B: 100, A: 3}))
	assert.Equal(t, Pixel(0x00FF0000), Pack(red))
	assert.Equal(t, red, Pack(red).Color())
}

func TestNewSurfaceClampsSize(t *testing.T) {
	s := NewSurface(0, -4)
	assert.Equal(t, 1, s.W)
	assert.Equal(t, 1, s.H)
	assert.Len(t, s.Pix, 1)
}

func TestResizeSameSizeDoesNotReallocate(t *testing.T) {
	s := NewSurface(800, 600)
	s.Resize(640, 480)
	allocs := s.allocs
	first := &s.Pix[0]

	s.Resize(640, 480)
	assert.Equal(t, allocs, s.allocs)
	assert.Same(t, first, &s.Pix[0])

	s.Resize(1024, 768)
	assert.Equal(t, allocs+1, s.allocs)
	assert.Equal(t, 1024, s.W)
	assert.Equal(t, 768, s.H)
	assert.Len(t, s.Pix, 1024*768)
}

func TestResizeResetsClip(t *testing.T) {
	s := NewSurface(100, 100)
	s.SetClip(geom.R(0, 0, 10, 10))
	s.Resize(200, 50)
	assert.Equal(t, s.Bounds(), s.Clip())
	assert.Equal(t, 0, s.ClipDepth())
}

func TestSetClipNeverExceedsBounds(t *testing.T) {
	s := NewSurface(320, 200)
	rects := []geom.Rect{
		geom.R(0, 0, 100, 50),
		geom.R(0, 0, 5000, 5000),
		geom.R(-50, -50, 100, 100),
		geom.R(300, 190, 100, 100),
		geom.R(400, 400, 10, 10),
		geom.R(10.9, 10.9, 0.5, 0.5),
		geom.R(10, 10, -20, 30),
	}
	for _, r := range rects {
		s.SetClip(r)
		clip := s.Clip()
		assert.LessOrEqual(t, clip.Dx(), s.W, "%+v", r)
		assert.LessOrEqual(t, clip.Dy(), s.H, "%+v", r)
		assert.True(t, clip.In(s.Bounds()) || clip.Empty(), "%+v -> %v", r, clip)
		assert.Equal(t, 1, s.ClipDepth())
	}
}

func TestClipRestrictsDrawing(t *testing.T) {
	s := NewSurface(100, 100)
	s.Clear(gray)
	s.SetClip(geom.R(0, 0, 10, 10))
	s.DrawRect(geom.R(0, 0, 50, 50), red)

	assert.Equal(t, Pack(red), s.At(5, 5))
	assert.Equal(t, Pack(gray), s.At(20, 20))

	s.Clear(gray)
	assert.Equal(t, 0, s.ClipDepth())
	s.DrawRect(geom.R(0, 0, 50, 50), red)
	assert.Equal(t, Pack(red), s.At(20, 20))
}

func TestDrawRectTruncatesCoordinates(t *testing.T) {
	s := NewSurface(20, 20)
	s.Clear(black)
	s.DrawRect(geom.R(2.9, 2.9, 3.7, 3.7), red)

	assert.Equal(t, Pack(red), s.At(2, 2))
	assert.Equal(t, Pack(red), s.At(4, 4))
	assert.Equal(t, Pack(black), s.At(5, 5))
}

func TestDrawLineIncludesEndpoints(t *testing.T) {
	s := NewSurface(20, 20)
	s.Clear(black)
	s.DrawLine(geom.Pt(0, 5), geom.Pt(9, 5), red)
	for x := 0; x <= 9; x++ {
		assert.Equal(t, Pack(red), s.At(x, 5), "x=%d", x)
	}
	assert.Equal(t, Pack(black), s.At(10, 5))
	assert.Equal(t, Pack(black), s.At(5, 4))

	s.DrawLine(geom.Pt(15, 15), geom.Pt(10, 10), white)
	for i := 10; i <= 15; i++ {
		assert.Equal(t, Pack(white), s.At(i, i))
	}
}

func TestDrawTriangleFills(t *testing.T) {
	s := NewSurface(40, 40)
	s.Clear(black)
	s.DrawTriangle(geom.Pt(0, 0), geom.Pt(20, 0), geom.Pt(0, 20), red)

	assert.Equal(t, Pack(red), s.At(2, 2))
	assert.Equal(t, Pack(red), s.At(8, 8))
	assert.Equal(t, Pack(black), s.At(18, 18))
	assert.Equal(t, Pack(black), s.At(30, 5))
}

func TestDrawCircleFillsInscribedEllipse(t *testing.T) {
	s := NewSurface(40, 40)
	s.Clear(black)
	s.DrawCircle(geom.R(10, 10, 20, 20), red)

	assert.Equal(t, Pack(red), s.At(20, 20))
	assert.Equal(t, Pack(red), s.At(11, 20))
	assert.Equal(t, Pack(red), s.At(20, 28))
	assert.Equal(t, Pack(black), s.At(10, 10))
	assert.Equal(t, Pack(black), s.At(29, 29))
	assert.Equal(t, Pack(black), s.At(35, 20))
}

func TestDrawCircleRespectsClip(t *testing.T) {
	s := NewSurface(40, 40)
	s.Clear(black)
	s.SetClip(geom.R(0, 0, 20, 40))
	s.DrawCircle(geom.R(10, 10, 20, 20), red)

	assert.Equal(t, Pack(red), s.At(15, 20))
	assert.Equal(t, Pack(black), s.At(25, 20))
}

func TestDrawTextEmptyMatchesRect(t *testing.T) {
	f, err := font.Load(font.Fixed, 0)
	require.NoError(t, err)
	defer f.Destroy()

	r := geom.R(5, 5, 40, 20)
	a := NewSurface(64, 64)
	b := NewSurface(64, 64)
	a.Clear(gray)
	b.Clear(gray)

	a.DrawText(r, nil, f, black, white)
	b.DrawRect(r, black)
	assert.Equal(t, b.Pix, a.Pix)

	a.DrawText(r, []byte("Hi"), nil, red, white)
	b.DrawRect(r, red)
	assert.Equal(t, b.Pix, a.Pix)
}

func TestDrawTextDrawsGlyphs(t *testing.T) {
	f, err := font.Load(font.Fixed, 0)
	require.NoError(t, err)
	defer f.Destroy()

	s := NewSurface(64, 64)
	s.Clear(gray)
	s.DrawText(geom.R(5, 5, 40, 20), []byte("Hi"), f, black, white)

	glyph := 0
	for y := 5; y < 25; y++ {
		for x := 5; x < 45; x++ {
			switch s.At(x, y) {
			case Pack(white):
				glyph++
			case Pack(black):
			default:
				t.Fatalf("unexpected pixel at %d,%d: %06x", x, y, s.At(x, y))
			}
		}
	}
	assert.Greater(t, glyph, 0)
	assert.Equal(t, Pack(black), s.At(44, 24))
	assert.Equal(t, Pack(gray), s.At(50, 50))
}

func TestPresentClampsToBuffer(t *testing.T) {
	s := NewSurface(100, 50)
	s.Clear(red)
	var tgt captureTarget

	require.NoError(t, s.Present(&tgt, 200, 20))
	assert.Equal(t, 100, tgt.w)
	assert.Equal(t, 20, tgt.h)
	assert.Equal(t, 100, tgt.stride)
	assert.Equal(t, Pack(red), tgt.at(99, 19))

	require.NoError(t, s.Present(&tgt, 0, 20))
	assert.Equal(t, 1, tgt.calls)
}
