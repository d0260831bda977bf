package render

import (
	"image"

	"xsurf/internal/font"
	"xsurf/internal/geom"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// DrawText clears r to bg and draws text left-aligned with its baseline
// centred vertically. Empty text or a missing font degrade to the fill.
func (s *Surface) DrawText(r geom.Rect, text []byte, f *font.Handle, bg, fg geom.Color) {
	s.DrawRect(r, bg)
	if len(text) == 0 || f == nil || f.Face() == nil {
		return
	}
	ir := r.Image()
	ascent, descent := f.Ascent(), f.Descent()
	tx := ir.Min.X
	ty := ir.Min.Y + ir.Dy()/2 - (ascent+descent)/2 + ascent

	width := f.Measure(text)
	bounds := image.Rect(tx, ty-ascent, tx+width+1, ty+descent).Intersect(s.clip)
	if bounds.Empty() {
		return
	}
	s.setForeground(fg)
	m := s.maskFor(bounds)
	d := xfont.Drawer{
		Dst:  m,
		Src:  image.Opaque,
		Face: f.Face(),
		Dot:  fixed.P(tx, ty),
	}
	d.DrawBytes(text)
	s.fillMask(m)
}
