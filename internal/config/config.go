package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"xsurf/internal/geom"

	"github.com/pelletier/go-toml/v2"
)

const (
	// EnvPath names an optional TOML file overriding the defaults.
	EnvPath = "XSURF_CONFIG"
	// EnvBackend overrides the backend from the file.
	EnvBackend = "XSURF_BACKEND"
)

var ErrInvalid = errors.New("invalid config")

type Config struct {
	Window    WindowConfig `toml:"window"`
	Backend   string       `toml:"backend"`
	Font      FontConfig   `toml:"font"`
	Frame     FrameConfig  `toml:"frame"`
	LogLevel  string       `toml:"log_level"`
	MaxFrames int          `toml:"max_frames"`
}

type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
}

type FontConfig struct {
	Name string  `toml:"name"`
	Size float64 `toml:"size"`
}

type FrameConfig struct {
	BudgetMs    int    `toml:"budget_ms"`
	MemoryBytes int    `toml:"memory_bytes"`
	Background  string `toml:"background"`
	Clip        bool   `toml:"clip"`
}

func Default() Config {
	return Config{
		Window: WindowConfig{
			Title:  "X11",
			Width:  800,
			Height: 600,
		},
		Backend: "x11",
		Font: FontConfig{
			Name: "fixed",
			Size: 13,
		},
		Frame: FrameConfig{
			BudgetMs:    16,
			MemoryBytes: 8 * 1024,
			Background:  "#646464",
			Clip:        true,
		},
		LogLevel: "info",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv loads the file named by XSURF_CONFIG and applies XSURF_BACKEND.
func FromEnv() (Config, error) {
	cfg, err := Load(os.Getenv(EnvPath))
	if err != nil {
		return cfg, err
	}
	if b := strings.TrimSpace(os.Getenv(EnvBackend)); b != "" {
		cfg.Backend = strings.ToLower(b)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.Frame.BudgetMs <= 0:
		return fmt.Errorf("%w: frame budget %dms", ErrInvalid, c.Frame.BudgetMs)
	case c.Frame.MemoryBytes <= 0:
		return fmt.Errorf("%w: frame memory %d bytes", ErrInvalid, c.Frame.MemoryBytes)
	case c.Font.Name == "":
		return fmt.Errorf("%w: empty font name", ErrInvalid)
	case c.MaxFrames < 0:
		return fmt.Errorf("%w: max frames %d", ErrInvalid, c.MaxFrames)
	}
	if _, err := geom.ParseHex(c.Frame.Background); err != nil {
		return fmt.Errorf("%w: background: %v", ErrInvalid, err)
	}
	return nil
}

func (c Config) FrameBudget() time.Duration {
	return time.Duration(c.Frame.BudgetMs) * time.Millisecond
}

// Background returns the clear color. Validate has already checked it.
func (c Config) Background() geom.Color {
	col, err := geom.ParseHex(c.Frame.Background)
	if err != nil {
		return geom.RGB(0x64, 0x64, 0x64)
	}
	return col
}
