package input

import (
	"log/slog"

	"xsurf/internal/logx"
	"xsurf/internal/platform"
)

// Clipboard supplies text for Ctrl+V.
type Clipboard interface {
	ReadAll() (string, error)
}

// Translator maps native window events onto a Sink.
//
// Characters are inserted on key release only. Native auto-repeat delivers
// repeated presses, and inserting on press duplicated characters; this is
// kept until repeat handling is revisited.
type Translator struct {
	clipboard Clipboard
	log       *slog.Logger
	ctrl      [2]bool
}

type Option func(*Translator)

func WithClipboard(c Clipboard) Option {
	return func(t *Translator) { t.clipboard = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Translator) { t.log = logx.OrNop(l) }
}

func NewTranslator(opts ...Option) *Translator {
	t := &Translator{log: logx.Nop()}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Translate dispatches ev by class. Window notifications are not input and
// are ignored here.
func (t *Translator) Translate(ev platform.Event, in Sink) {
	switch ev.Type {
	case platform.EventKeyDown:
		t.KeyEvent(ev.Keysym, true, in)
	case platform.EventKeyUp:
		t.KeyEvent(ev.Keysym, false, in)
	case platform.EventMouseMove:
		t.MotionEvent(ev.X, ev.Y, in)
	case platform.EventMouseDown:
		t.ButtonEvent(ev.Button, ev.X, ev.Y, true, in)
	case platform.EventMouseUp:
		t.ButtonEvent(ev.Button, ev.X, ev.Y, false, in)
	}
}

func (t *Translator) KeyEvent(sym platform.Keysym, down bool, in Sink) {
	switch sym {
	case platform.KeyNone:
		return
	case platform.KeyControlL, platform.KeyControlR:
		t.ctrl[sym-platform.KeyControlL] = down
		in.Key(KeyCtrl, down)
	case platform.KeyShiftL, platform.KeyShiftR:
		in.Key(KeyShift, down)
	case platform.KeyDelete:
		in.Key(KeyDel, down)
	case platform.KeyReturn:
		in.Key(KeyEnter, down)
	case platform.KeySpace:
		in.Key(KeySpace, down)
	case platform.KeyBackSpace:
		in.Key(KeyBackspace, down)
	default:
		if down || !sym.Printable() {
			return
		}
		if t.ctrlHeld() && (sym == 'v' || sym == 'V') {
			t.paste(in)
			return
		}
		in.Char(rune(sym))
	}
}

// MotionEvent reports the absolute pointer position.
func (t *Translator) MotionEvent(x, y int, in Sink) {
	in.Motion(x, y)
}

// ButtonEvent forwards the primary button only.
func (t *Translator) ButtonEvent(button, x, y int, down bool, in Sink) {
	if button != 1 {
		return
	}
	in.Button(x, y, down)
}

func (t *Translator) ctrlHeld() bool { return t.ctrl[0] || t.ctrl[1] }

// paste forwards the clipboard's printable text. A Frame keeps at most
// MaxText characters per frame, so longer pastes are cut short.
func (t *Translator) paste(in Sink) {
	if t.clipboard == nil {
		return
	}
	s, err := t.clipboard.ReadAll()
	if err != nil {
		t.log.Debug("clipboard read failed", "error", err)
		return
	}
	n := 0
	for _, r := range s {
		if platform.Keysym(r).Printable() || r == ' ' {
			in.Char(r)
			n++
		}
	}
	if n > MaxText {
		t.log.Debug("paste truncated to frame text limit", "chars", n, "limit", MaxText)
	}
}
