package render

import (
	"image"

	"xsurf/internal/geom"
)

// kappa places cubic control points so four curves approximate a quarter
// ellipse each.
const kappa = 0.5522847498

// coverageThreshold turns antialiased coverage into a hard edge.
const coverageThreshold = 0x80

// DrawLine draws a 1px solid line including both endpoints. Only the steps
// that land inside the clip are walked.
func (s *Surface) DrawLine(p0, p1 geom.Point, c geom.Color) {
	if s.clip.Empty() {
		return
	}
	s.setForeground(c)
	a, b := p0.Image(), p1.Image()
	dx, dy := b.X-a.X, b.Y-a.Y
	sx, sy := sign(dx), sign(dy)
	adx, ady := abs(dx), abs(dy)
	if adx >= ady {
		lo, hi := stepRange(a.X, sx, adx, s.clip.Min.X, s.clip.Max.X-1)
		for i := lo; i <= hi; i++ {
			s.plot(a.X+sx*i, a.Y+sy*minorStep(i, ady, adx))
		}
		return
	}
	lo, hi := stepRange(a.Y, sy, ady, s.clip.Min.Y, s.clip.Max.Y-1)
	for i := lo; i <= hi; i++ {
		s.plot(a.X+sx*minorStep(i, adx, ady), a.Y+sy*i)
	}
}

// minorStep is the minor-axis offset at major step i, rounding half up.
func minorStep(i, minor, major int) int {
	if major == 0 {
		return 0
	}
	return int((2*int64(i)*int64(minor) + int64(major)) / (2 * int64(major)))
}

// stepRange returns the steps in [0, n] for which start+dir*step lies in
// [lo, hi]. The range is empty when from > to.
func stepRange(start, dir, n, lo, hi int) (from, to int) {
	if dir < 0 {
		from, to = start-hi, start-lo
	} else {
		from, to = lo-start, hi-start
	}
	return max(from, 0), min(to, n)
}

func (s *Surface) DrawTriangle(a, b, c geom.Point, col geom.Color) {
	s.setForeground(col)
	p := [3]image.Point{a.Image(), b.Image(), c.Image()}
	bounds := image.Rect(
		min(p[0].X, p[1].X, p[2].X), min(p[0].Y, p[1].Y, p[2].Y),
		max(p[0].X, p[1].X, p[2].X)+1, max(p[0].Y, p[1].Y, p[2].Y)+1,
	)
	area := bounds.Intersect(s.clip)
	if area.Empty() {
		return
	}
	// Vertices sit on pixel centres.
	ox := float64(area.Min.X) - 0.5
	oy := float64(area.Min.Y) - 0.5
	path := s.beginPath(area)
	path.moveTo(float64(p[0].X)-ox, float64(p[0].Y)-oy)
	path.lineTo(float64(p[1].X)-ox, float64(p[1].Y)-oy)
	path.lineTo(float64(p[2].X)-ox, float64(p[2].Y)-oy)
	path.close()
	s.rasterize(area)
}

// DrawCircle fills the ellipse inscribed in r.
func (s *Surface) DrawCircle(r geom.Rect, c geom.Color) {
	s.setForeground(c)
	bounds := r.Image()
	if bounds.Empty() {
		return
	}
	area := bounds.Intersect(s.clip)
	if area.Empty() {
		return
	}
	rx := float64(bounds.Dx()) / 2
	ry := float64(bounds.Dy()) / 2
	cx := float64(bounds.Min.X-area.Min.X) + rx
	cy := float64(bounds.Min.Y-area.Min.Y) + ry
	kx, ky := kappa*rx, kappa*ry

	path := s.beginPath(area)
	path.moveTo(cx+rx, cy)
	path.cubeTo(cx+rx, cy+ky, cx+kx, cy+ry, cx, cy+ry)
	path.cubeTo(cx-kx, cy+ry, cx-rx, cy+ky, cx-rx, cy)
	path.cubeTo(cx-rx, cy-ky, cx-kx, cy-ry, cx, cy-ry)
	path.cubeTo(cx+kx, cy-ry, cx+rx, cy-ky, cx+rx, cy)
	path.close()
	s.rasterize(area)
}

func (s *Surface) beginPath(area image.Rectangle) *clipPath {
	s.ras.Reset(area.Dx(), area.Dy())
	return &clipPath{ras: &s.ras, w: float64(area.Dx()), h: float64(area.Dy())}
}

// rasterize resolves the path accumulated in s.ras, which covers area, and
// fills the covered pixels inside the clip.
func (s *Surface) rasterize(area image.Rectangle) {
	m := s.maskFor(area)
	s.ras.Draw(m, m.Rect, image.Opaque, image.Point{})
	s.fillMask(m)
}

// maskFor returns the scratch coverage mask sized to r, zeroed.
func (s *Surface) maskFor(r image.Rectangle) *image.Alpha {
	n := r.Dx() * r.Dy()
	if cap(s.mask.Pix) < n {
		s.mask.Pix = make([]uint8, n)
	} else {
		s.mask.Pix = s.mask.Pix[:n]
		clear(s.mask.Pix)
	}
	s.mask.Stride = r.Dx()
	s.mask.Rect = r
	return &s.mask
}

func (s *Surface) fillMask(m *image.Alpha) {
	r := m.Rect.Intersect(s.clip)
	p := uint32(s.fg)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		src := m.Pix[(y-m.Rect.Min.Y)*m.Stride:]
		dst := s.Pix[y*s.W:]
		for x := r.Min.X; x < r.Max.X; x++ {
			if src[x-m.Rect.Min.X] >= coverageThreshold {
				dst[x] = p
			}
		}
	}
}

func sign(v int) int {
	if v < 0 {
		return -1
	}
	return 1
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
