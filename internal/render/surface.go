package render

import (
	"image"

	"xsurf/internal/geom"

	"golang.org/x/image/vector"
)

// Pixel is a color packed the way a 24-bit TrueColor visual stores it.
type Pixel uint32

func Pack(c geom.Color) Pixel {
	return Pixel(c.R)<<16 | Pixel(c.G)<<8 | Pixel(c.B)
}

func (p Pixel) Color() geom.Color {
	return geom.RGB(uint8(p>>16), uint8(p>>8), uint8(p))
}

// Target receives the off-screen buffer on Present.
type Target interface {
	Blit(pix []uint32, stride, width, height int) error
}

// Surface is an off-screen buffer plus the clip and foreground state that
// every primitive draws with. It is owned by a single goroutine.
type Surface struct {
	W   int
	H   int
	Pix []uint32

	clip      image.Rectangle
	clipDepth int
	fg        Pixel
	allocs    int

	ras  vector.Rasterizer
	mask image.Alpha
}

func NewSurface(w, h int) *Surface {
	s := &Surface{}
	s.alloc(w, h)
	return s
}

func (s *Surface) alloc(w, h int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	s.Pix = nil
	s.W = w
	s.H = h
	s.Pix = make([]uint32, w*h)
	s.allocs++
	s.resetClip()
}

// Resize reallocates the buffer when the size changed. Contents are not
// preserved; the surface is repainted every frame.
func (s *Surface) Resize(w, h int) {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	if w == s.W && h == s.H {
		return
	}
	s.alloc(w, h)
}

func (s *Surface) Bounds() image.Rectangle { return image.Rect(0, 0, s.W, s.H) }

func (s *Surface) Clip() image.Rectangle { return s.clip }

// ClipDepth is 1 while a scissor installed by SetClip is active.
func (s *Surface) ClipDepth() int { return s.clipDepth }

func (s *Surface) resetClip() {
	s.clip = s.Bounds()
	s.clipDepth = 0
}

// SetClip replaces the active clip with r intersected with the surface
// bounds. There is no clip stack.
func (s *Surface) SetClip(r geom.Rect) {
	s.clip = r.Image().Intersect(s.Bounds())
	s.clipDepth = 1
}

func (s *Surface) At(x, y int) Pixel {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return 0
	}
	return Pixel(s.Pix[y*s.W+x])
}

func (s *Surface) setForeground(c geom.Color) {
	s.fg = Pack(c)
}

// Clear fills the whole surface and drops any scissor.
func (s *Surface) Clear(c geom.Color) {
	s.resetClip()
	p := uint32(Pack(c))
	for i := range s.Pix {
		s.Pix[i] = p
	}
}

func (s *Surface) fill(r image.Rectangle) {
	r = r.Intersect(s.clip)
	if r.Empty() {
		return
	}
	p := uint32(s.fg)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := s.Pix[y*s.W+r.Min.X : y*s.W+r.Max.X]
		for i := range row {
			row[i] = p
		}
	}
}

func (s *Surface) plot(x, y int) {
	if !(image.Point{X: x, Y: y}).In(s.clip) {
		return
	}
	s.Pix[y*s.W+x] = uint32(s.fg)
}

func (s *Surface) DrawRect(r geom.Rect, c geom.Color) {
	s.setForeground(c)
	s.fill(r.Image())
}

// Present copies the top-left w×h region of the buffer to t.
func (s *Surface) Present(t Target, w, h int) error {
	w = min(max(w, 0), s.W)
	h = min(max(h, 0), s.H)
	if w == 0 || h == 0 {
		return nil
	}
	return t.Blit(s.Pix, s.W, w, h)
}

// Destroy releases the buffer. The surface must not be used afterwards.
func (s *Surface) Destroy() {
	s.Pix = nil
	s.mask.Pix = nil
	s.W, s.H = 0, 0
	s.clip = image.Rectangle{}
}
