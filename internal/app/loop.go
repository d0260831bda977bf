package app

import (
	"fmt"
	"log/slog"
	"time"

	"xsurf/internal/command"
	"xsurf/internal/geom"
	"xsurf/internal/input"
	"xsurf/internal/logx"
	"xsurf/internal/platform"
	"xsurf/internal/render"
)

// Toolkit is the immediate-mode GUI driven by the loop. Update records the
// frame's draw commands on c and reports whether the GUI is still running.
type Toolkit interface {
	Update(c *command.Canvas, in *input.Frame) bool
}

// ToolkitFunc adapts a function to Toolkit.
type ToolkitFunc func(c *command.Canvas, in *input.Frame) bool

func (f ToolkitFunc) Update(c *command.Canvas, in *input.Frame) bool { return f(c, in) }

// WindowState is the window size as last reported by the platform.
type WindowState struct {
	Width  int
	Height int
}

type LoopOptions struct {
	Background  geom.Color
	FrameBudget time.Duration
	MemoryBytes int
	Clip        bool
	// MaxFrames stops the loop after that many frames; 0 runs until the
	// toolkit stops.
	MaxFrames int
	Clipboard input.Clipboard
}

// Loop owns the surface, input frame and command buffer for its lifetime.
// Everything runs on the calling goroutine.
type Loop struct {
	win     platform.Window
	surf    *render.Surface
	toolkit Toolkit
	log     *slog.Logger

	in    *input.Frame
	tr    *input.Translator
	buf   *command.Buffer
	pacer Pacer
	bg    geom.Color
	state WindowState

	maxFrames  int
	frames     int
	lastMemory command.Status
}

func NewLoop(win platform.Window, surf *render.Surface, tk Toolkit, opts LoopOptions, log *slog.Logger) *Loop {
	log = logx.OrNop(log)
	var flags command.Flags
	if opts.Clip {
		flags |= command.FlagClip
	}
	trOpts := []input.Option{input.WithLogger(log)}
	if opts.Clipboard != nil {
		trOpts = append(trOpts, input.WithClipboard(opts.Clipboard))
	}
	w, h := win.SizePx()
	return &Loop{
		win:       win,
		surf:      surf,
		toolkit:   tk,
		log:       log,
		in:        input.NewFrame(),
		tr:        input.NewTranslator(trOpts...),
		buf:       command.NewBuffer(opts.MemoryBytes, flags),
		pacer:     NewPacer(opts.FrameBudget),
		bg:        opts.Background,
		state:     WindowState{Width: w, Height: h},
		maxFrames: opts.MaxFrames,
	}
}

func (l *Loop) State() WindowState { return l.state }

func (l *Loop) Frames() int { return l.frames }

// Run steps until the toolkit stops. Hosts that own their main loop pace
// the frames themselves.
func (l *Loop) Run() error {
	if r, ok := l.win.(platform.Runner); ok {
		return r.Run(l.Step)
	}
	for {
		start := l.pacer.Now()
		running, err := l.Step()
		if err != nil {
			return err
		}
		if !running {
			return nil
		}
		l.pacer.Pace(start)
	}
}

// Step runs one frame: drain events, update the toolkit, render, present.
func (l *Loop) Step() (bool, error) {
	running := l.drain()

	canvas := l.buf.Begin(float32(l.state.Width), float32(l.state.Height))
	if !l.toolkit.Update(canvas, l.in) {
		running = false
	}
	res := l.buf.End()
	l.checkMemory(res.Memory)

	l.surf.Clear(l.bg)
	render.Replay(l.surf, res.List)

	if err := l.surf.Present(l.win, l.state.Width, l.state.Height); err != nil {
		return false, fmt.Errorf("present frame: %w", err)
	}
	if err := l.win.Flush(); err != nil {
		return false, fmt.Errorf("flush display: %w", err)
	}

	l.frames++
	if l.maxFrames > 0 && l.frames >= l.maxFrames {
		running = false
	}
	return running, nil
}

func (l *Loop) drain() bool {
	running := true
	l.in.Begin()
	for ev := range l.win.Events() {
		switch ev.Type {
		case platform.EventExpose, platform.EventResize:
			l.resize()
		case platform.EventClose:
			running = false
		default:
			l.tr.Translate(ev, l.in)
		}
	}
	l.in.End()
	return running
}

func (l *Loop) resize() {
	w, h := l.win.SizePx()
	l.state = WindowState{Width: w, Height: h}
	l.surf.Resize(w, h)
}

func (l *Loop) checkMemory(m command.Memory) {
	if m.Status == l.lastMemory {
		return
	}
	l.lastMemory = m.Status
	if m.Status == command.StatusOutOfMemory {
		l.log.Warn("command buffer exhausted", "size", m.Size, "needed", m.Needed, "allocated", m.Allocated)
		return
	}
	l.log.Info("command buffer recovered", "size", m.Size, "allocated", m.Allocated)
}
