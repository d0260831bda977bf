package render

import (
	"slices"

	"golang.org/x/image/vector"
)

const (
	// flatness is the squared control point deviation, in pixels, below
	// which a cubic segment is drawn as its chord.
	flatness = 0.01
	// maxSubdivide bounds cubic subdivision for shapes far larger than the
	// surface.
	maxSubdivide = 24
)

// clipPath feeds a rasterizer of size w×h in raster space. Segment parts
// above or below the raster are dropped and parts left or right of it are
// flattened onto x = -1 or x = w+1. Neither changes coverage inside the
// raster: rows outside are never stored, and the rasterizer folds every
// column outside into the edge cells. Work is therefore bounded by the
// raster, not by the shape.
type clipPath struct {
	ras *vector.Rasterizer
	w   float64
	h   float64

	penX, penY     float64
	firstX, firstY float64
}

func (p *clipPath) moveTo(x, y float64) {
	p.penX, p.penY = x, y
	p.firstX, p.firstY = x, y
}

func (p *clipPath) close() {
	p.lineTo(p.firstX, p.firstY)
}

func (p *clipPath) lineTo(x, y float64) {
	ax, ay, bx, by := p.penX, p.penY, x, y
	p.penX, p.penY = x, y
	if ay == by {
		return
	}
	if (ay < 0 && by < 0) || (ay > p.h && by > p.h) {
		return
	}
	ax, ay = clampRow(ax, ay, bx, by, p.h)
	bx, by = clampRow(bx, by, ax, ay, p.h)
	p.emit(ax, ay, bx, by)
}

// clampRow moves (ax, ay) along the segment towards (bx, by) until its y
// lies in [0, h].
func clampRow(ax, ay, bx, by, h float64) (float64, float64) {
	switch {
	case ay < 0:
		return ax + (bx-ax)*(0-ay)/(by-ay), 0
	case ay > h:
		return ax + (bx-ax)*(h-ay)/(by-ay), h
	}
	return ax, ay
}

// emit splits the segment where it crosses x = -1 and x = w+1 and sends
// each piece with x clamped to that band.
func (p *clipPath) emit(ax, ay, bx, by float64) {
	lo, hi := -1.0, p.w+1
	ts := make([]float64, 2, 4)
	ts[0], ts[1] = 0, 1
	for _, edge := range [2]float64{lo, hi} {
		if (ax < edge) != (bx < edge) {
			ts = append(ts, (edge-ax)/(bx-ax))
		}
	}
	slices.Sort(ts)
	for i := 1; i < len(ts); i++ {
		t0, t1 := ts[i-1], ts[i]
		if t1 <= t0 {
			continue
		}
		x0 := min(max(ax+(bx-ax)*t0, lo), hi)
		x1 := min(max(ax+(bx-ax)*t1, lo), hi)
		y0 := ay + (by-ay)*t0
		y1 := ay + (by-ay)*t1
		p.ras.MoveTo(float32(x0), float32(y0))
		p.ras.LineTo(float32(x1), float32(y1))
	}
}

func (p *clipPath) cubeTo(bx, by, cx, cy, dx, dy float64) {
	p.cube(p.penX, p.penY, bx, by, cx, cy, dx, dy, 0)
}

// cube subdivides until a piece is flat or lies wholly outside the raster.
// An outside piece is replaced by its chord, which crosses the same rows in
// the same direction.
func (p *clipPath) cube(ax, ay, bx, by, cx, cy, dx, dy float64, depth int) {
	outside := max(ay, by, cy, dy) < 0 || min(ay, by, cy, dy) > p.h ||
		max(ax, bx, cx, dx) < -1 || min(ax, bx, cx, dx) > p.w+1
	if outside || depth >= maxSubdivide || flat(ax, ay, bx, by, cx, cy, dx, dy) {
		p.lineTo(dx, dy)
		return
	}
	abx, aby := (ax+bx)/2, (ay+by)/2
	bcx, bcy := (bx+cx)/2, (by+cy)/2
	cdx, cdy := (cx+dx)/2, (cy+dy)/2
	abcx, abcy := (abx+bcx)/2, (aby+bcy)/2
	bcdx, bcdy := (bcx+cdx)/2, (bcy+cdy)/2
	mx, my := (abcx+bcdx)/2, (abcy+bcdy)/2
	p.cube(ax, ay, abx, aby, abcx, abcy, mx, my, depth+1)
	p.cube(mx, my, bcdx, bcdy, cdx, cdy, dx, dy, depth+1)
}

func flat(ax, ay, bx, by, cx, cy, dx, dy float64) bool {
	ux, uy := bx-(2*ax+dx)/3, by-(2*ay+dy)/3
	vx, vy := cx-(ax+2*dx)/3, cy-(ay+2*dy)/3
	return ux*ux+uy*uy < flatness && vx*vx+vy*vy < flatness
}
