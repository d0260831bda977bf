package ebitenhost

import (
	"strings"

	"xsurf/internal/platform"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// keysyms maps ebiten keys to unshifted X keysyms; shifted holds the US
// layout's shift column for printable keys.
var (
	keysyms = map[ebiten.Key]platform.Keysym{
		ebiten.KeyControlLeft:  platform.KeyControlL,
		ebiten.KeyControlRight: platform.KeyControlR,
		ebiten.KeyShiftLeft:    platform.KeyShiftL,
		ebiten.KeyShiftRight:   platform.KeyShiftR,
		ebiten.KeyDelete:       platform.KeyDelete,
		ebiten.KeyEnter:        platform.KeyReturn,
		ebiten.KeyNumpadEnter:  platform.KeyReturn,
		ebiten.KeySpace:        platform.KeySpace,
		ebiten.KeyBackspace:    platform.KeyBackSpace,
		ebiten.KeyTab:          platform.KeyTab,
		ebiten.KeyEscape:       platform.KeyEscape,
		ebiten.KeyComma:        ',',
		ebiten.KeyPeriod:       '.',
		ebiten.KeyMinus:        '-',
		ebiten.KeyEqual:        '=',
		ebiten.KeySlash:        '/',
		ebiten.KeyBackslash:    '\\',
		ebiten.KeySemicolon:    ';',
		ebiten.KeyQuote:        '\'',
		ebiten.KeyBracketLeft:  '[',
		ebiten.KeyBracketRight: ']',
		ebiten.KeyBackquote:    '`',
	}
	shifted = map[platform.Keysym]platform.Keysym{
		'1': '!', '2': '@', '3': '#', '4': '$', '5': '%',
		'6': '^', '7': '&', '8': '*', '9': '(', '0': ')',
		'-': '_', '=': '+', '[': '{', ']': '}', '\\': '|',
		';': ':', '\'': '"', ',': '<', '.': '>', '/': '?', '`': '~',
	}
)

func init() {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		name := k.String()
		switch {
		case len(name) == 1 && name[0] >= 'A' && name[0] <= 'Z':
			keysyms[k] = platform.Keysym(name[0] - 'A' + 'a')
		case strings.HasPrefix(name, "Digit") && len(name) == len("Digit0"):
			keysyms[k] = platform.Keysym(name[len(name)-1])
		}
	}
}

func keysymFor(k ebiten.Key, shift bool) platform.Keysym {
	sym, ok := keysyms[k]
	if !ok {
		return platform.KeyNone
	}
	if !shift {
		return sym
	}
	if sym >= 'a' && sym <= 'z' {
		return sym - 'a' + 'A'
	}
	if s, ok := shifted[sym]; ok {
		return s
	}
	return sym
}

type keyPoller struct {
	pressed  []ebiten.Key
	released []ebiten.Key
}

// poll appends key transitions that happened since the previous tick.
func (p *keyPoller) poll(queue []platform.Event) []platform.Event {
	shift := ebiten.IsKeyPressed(ebiten.KeyShift)
	p.pressed = inpututil.AppendJustPressedKeys(p.pressed[:0])
	p.released = inpututil.AppendJustReleasedKeys(p.released[:0])
	for _, k := range p.pressed {
		queue = append(queue, platform.Event{Type: platform.EventKeyDown, Keysym: keysymFor(k, shift)})
	}
	for _, k := range p.released {
		queue = append(queue, platform.Event{Type: platform.EventKeyUp, Keysym: keysymFor(k, shift)})
	}
	return queue
}

var buttons = []struct {
	b  ebiten.MouseButton
	id int
}{
	{ebiten.MouseButtonLeft, 1},
	{ebiten.MouseButtonMiddle, 2},
	{ebiten.MouseButtonRight, 3},
}

func pollButtons(queue []platform.Event, x, y int) []platform.Event {
	for _, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(b.b) {
			queue = append(queue, platform.Event{Type: platform.EventMouseDown, Button: b.id, X: x, Y: y})
		}
		if inpututil.IsMouseButtonJustReleased(b.b) {
			queue = append(queue, platform.Event{Type: platform.EventMouseUp, Button: b.id, X: x, Y: y})
		}
	}
	return queue
}
