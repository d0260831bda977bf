// Package app wires a native window, the software surface and the toolkit
// into the frame loop.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"xsurf/internal/config"
	"xsurf/internal/font"
	"xsurf/internal/input"
	"xsurf/internal/logx"
	"xsurf/internal/platform"
	"xsurf/internal/platform/ebitenhost"
	"xsurf/internal/platform/headless"
	"xsurf/internal/platform/x11"
	"xsurf/internal/render"
	"xsurf/internal/ui"
)

var ErrUnknownBackend = errors.New("unknown backend")

type App struct {
	cfg       config.Config
	log       *slog.Logger
	platforms map[string]platform.Platform
	clipboard input.Clipboard
	toolkit   func(f *font.Handle) Toolkit
}

type Option func(*App)

// WithPlatform registers p under its name, replacing any earlier entry.
func WithPlatform(p platform.Platform) Option {
	return func(a *App) { a.platforms[p.Name()] = p }
}

func WithClipboard(c input.Clipboard) Option {
	return func(a *App) { a.clipboard = c }
}

// WithToolkit replaces the demo panel.
func WithToolkit(build func(f *font.Handle) Toolkit) Option {
	return func(a *App) { a.toolkit = build }
}

func New(cfg config.Config, log *slog.Logger, opts ...Option) *App {
	log = logx.OrNop(log)
	a := &App{
		cfg:       cfg,
		log:       log,
		platforms: map[string]platform.Platform{},
		clipboard: input.SystemClipboard{},
	}
	for _, p := range []platform.Platform{x11.New(log), ebitenhost.New(), headless.New()} {
		a.platforms[p.Name()] = p
	}
	a.toolkit = func(f *font.Handle) Toolkit {
		return ui.NewPanel(ui.DefaultTheme(), f, log)
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *App) platform() (platform.Platform, error) {
	name := strings.ToLower(a.cfg.Backend)
	if p, ok := a.platforms[name]; ok {
		return p, nil
	}
	names := make([]string, 0, len(a.platforms))
	for n := range a.platforms {
		names = append(names, n)
	}
	sort.Strings(names)
	return nil, fmt.Errorf("%w %q (have %s)", ErrUnknownBackend, a.cfg.Backend, strings.Join(names, ", "))
}

// Run opens the window, surface and font in that order, runs the loop and
// releases them in reverse.
func (a *App) Run() error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	p, err := a.platform()
	if err != nil {
		return err
	}

	win, err := p.CreateWindow(platform.WindowConfig{
		Title:       a.cfg.Window.Title,
		WidthPx:     a.cfg.Window.Width,
		HeightPx:    a.cfg.Window.Height,
		FrameBudget: a.cfg.FrameBudget(),
	})
	if err != nil {
		return fmt.Errorf("open %s window: %w", p.Name(), err)
	}
	defer win.Close()

	w, h := win.SizePx()
	surf := render.NewSurface(w, h)
	defer surf.Destroy()

	f, err := font.Load(a.cfg.Font.Name, a.cfg.Font.Size)
	if err != nil {
		return err
	}
	defer func() {
		if err := f.Destroy(); err != nil {
			a.log.Warn("release font", "error", err)
		}
	}()
	if f.Fallback() {
		a.log.Warn("font unavailable, using fallback", "font", a.cfg.Font.Name, "fallback", f.Name())
	}

	a.log.Info("window opened", "backend", p.Name(), "width", w, "height", h, "font", f.Name())

	loop := NewLoop(win, surf, a.toolkit(f), LoopOptions{
		Background:  a.cfg.Background(),
		FrameBudget: a.cfg.FrameBudget(),
		MemoryBytes: a.cfg.Frame.MemoryBytes,
		Clip:        a.cfg.Frame.Clip,
		MaxFrames:   a.cfg.MaxFrames,
		Clipboard:   a.clipboard,
	}, a.log)
	if err := loop.Run(); err != nil {
		return err
	}
	a.log.Info("shutting down", "frames", loop.Frames())
	return nil
}
