package platform

import (
	"iter"
	"time"
)

type WindowConfig struct {
	Title    string
	WidthPx  int
	HeightPx int
	// FrameBudget is the target frame time. Hosts that drive their own loop
	// use it to pick a tick rate.
	FrameBudget time.Duration
}

type EventType int

const (
	EventUnknown EventType = iota
	EventClose
	EventExpose
	EventResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
)

func (t EventType) String() string {
	switch t {
	case EventClose:
		return "close"
	case EventExpose:
		return "expose"
	case EventResize:
		return "resize"
	case EventKeyDown:
		return "key-down"
	case EventKeyUp:
		return "key-up"
	case EventMouseMove:
		return "mouse-move"
	case EventMouseDown:
		return "mouse-down"
	case EventMouseUp:
		return "mouse-up"
	default:
		return "unknown"
	}
}

// Event is a native input or window notification. Keysym is 0 when the
// backend could not map the hardware key.
type Event struct {
	Type   EventType
	Keysym Keysym
	Button int
	X      int
	Y      int
	Width  int
	Height int
}

type Platform interface {
	Name() string
	CreateWindow(cfg WindowConfig) (Window, error)
}

type Window interface {
	// Events yields the events already queued and stops when the queue is
	// empty. It never waits for new input.
	Events() iter.Seq[Event]
	SizePx() (int, int)
	// Blit copies the top-left width×height pixels of a packed 0x00RRGGBB
	// buffer with the given stride to the visible window.
	Blit(pix []uint32, stride, width, height int) error
	Flush() error
	SetTitle(title string)
	Close()
}

// Runner is implemented by hosts that own the main loop. Run calls step
// once per tick until it reports false or fails.
type Runner interface {
	Run(step func() (bool, error)) error
}
