package geom

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// CoordLimit bounds pixel coordinates. Values beyond it are clamped when
// converted, which keeps raster arithmetic in range.
const CoordLimit = 1 << 29

// Point is a toolkit-space position. Coordinates are truncated to whole
// pixels when drawn.
type Point struct {
	X float32
	Y float32
}

func Pt(x, y float32) Point { return Point{X: x, Y: y} }

func (p Point) Image() image.Point {
	return image.Pt(pixel(p.X), pixel(p.Y))
}

// pixel truncates v and clamps it to ±CoordLimit. NaN maps to 0.
func pixel(v float32) int {
	switch {
	case v != v:
		return 0
	case v >= CoordLimit:
		return CoordLimit
	case v <= -CoordLimit:
		return -CoordLimit
	}
	return int(v)
}

// Rect is an origin plus extent in toolkit space.
type Rect struct {
	X float32
	Y float32
	W float32
	H float32
}

func R(x, y, w, h float32) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && y >= r.Y && x < r.X+r.W && y < r.Y+r.H
}

func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && o.X < r.X+r.W && r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Image truncates the rectangle to integer pixel bounds. Negative extents
// yield an empty rectangle.
func (r Rect) Image() image.Rectangle {
	x, y := pixel(r.X), pixel(r.Y)
	w, h := pixel(r.W), pixel(r.H)
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return image.Rect(x, y, x+w, y+h)
}

// Color is a byte tuple. Alpha is carried for the toolkit's benefit only;
// the backend never blends.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 0xFF} }

func (c Color) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xFF}
}

// ParseHex accepts "#rrggbb" or "rrggbb".
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
}
