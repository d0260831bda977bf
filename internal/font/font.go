// Package font loads the faces used for text measurement and drawing.
//
// A Handle owns its face for the lifetime of the program. Load always tries
// the built-in "fixed" face before giving up, since every layout decision in
// the toolkit is driven by text measurement.
package font

import (
	"errors"
	"fmt"
	"os"
	"strings"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomedium"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/gofont/gosmallcaps"
	"golang.org/x/image/font/opentype"
)

// Fixed names the bitmap face that is always available.
const Fixed = "fixed"

var (
	ErrLoadFailed  = errors.New("cannot load font")
	ErrUnknownFont = errors.New("unknown font")
)

// fallbackName is a variable so tests can exercise the total-failure path.
var fallbackName = Fixed

var builtin = map[string][]byte{
	"goregular":    goregular.TTF,
	"gobold":       gobold.TTF,
	"goitalic":     goitalic.TTF,
	"gobolditalic": gobolditalic.TTF,
	"gomedium":     gomedium.TTF,
	"gomono":       gomono.TTF,
	"gomonobold":   gomonobold.TTF,
	"gomonoitalic": gomonoitalic.TTF,
	"gosmallcaps":  gosmallcaps.TTF,
}

// Measurer is the capability the toolkit needs for layout.
type Measurer interface {
	Measure(text []byte) int
}

type Handle struct {
	name     string
	face     xfont.Face
	ascent   int
	descent  int
	height   int
	fallback bool
}

// Load opens name at size pixels, falling back to the fixed face. The
// returned error wraps ErrLoadFailed only when both attempts fail.
func Load(name string, size float64) (*Handle, error) {
	h, err := open(name, size)
	if err == nil {
		return h, nil
	}
	fb, fbErr := open(fallbackName, size)
	if fbErr != nil {
		return nil, fmt.Errorf("%w: %q (%v), fallback %q (%v)", ErrLoadFailed, name, err, fallbackName, fbErr)
	}
	fb.fallback = true
	return fb, nil
}

func open(name string, size float64) (*Handle, error) {
	face, err := openFace(name, size)
	if err != nil {
		return nil, err
	}
	m := face.Metrics()
	h := &Handle{
		name:    name,
		face:    face,
		ascent:  m.Ascent.Ceil(),
		descent: m.Descent.Ceil(),
	}
	h.height = h.ascent + h.descent
	if h.height <= 0 {
		_ = face.Close()
		return nil, fmt.Errorf("font %q: non-positive line height %d", name, h.height)
	}
	return h, nil
}

func openFace(name string, size float64) (xfont.Face, error) {
	if name == Fixed {
		return basicfont.Face7x13, nil
	}
	if size <= 0 {
		return nil, fmt.Errorf("font %q: invalid size %v", name, size)
	}
	data, ok := builtin[strings.ToLower(name)]
	if !ok {
		if !isFontFile(name) {
			return nil, fmt.Errorf("%w: %q", ErrUnknownFont, name)
		}
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %q: %w", name, err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: xfont.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face %q: %w", name, err)
	}
	return face, nil
}

func isFontFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".ttf") || strings.HasSuffix(lower, ".otf")
}

func (h *Handle) Name() string    { return h.name }
func (h *Handle) Face() xfont.Face { return h.face }
func (h *Handle) Ascent() int      { return h.ascent }
func (h *Handle) Descent() int     { return h.descent }
func (h *Handle) Height() int      { return h.height }

// Fallback reports whether Load had to substitute the fixed face.
func (h *Handle) Fallback() bool { return h.fallback }

// Measure returns the advance width of text in pixels. A nil or destroyed
// handle and empty text both measure 0.
func (h *Handle) Measure(text []byte) int {
	if h == nil || h.face == nil || len(text) == 0 {
		return 0
	}
	adv := xfont.MeasureBytes(h.face, text)
	px := (int(adv) + 32) >> 6
	if px < 0 {
		px = 0
	}
	return px
}

// Destroy releases the face. The owner calls it once at shutdown.
func (h *Handle) Destroy() error {
	face := h.face
	h.face = nil
	if face == nil {
		return nil
	}
	return face.Close()
}
