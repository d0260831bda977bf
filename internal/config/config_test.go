package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"xsurf/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 16*time.Millisecond, cfg.FrameBudget())
	assert.Equal(t, geom.RGB(0x64, 0x64, 0x64), cfg.Background())
	assert.Equal(t, 8192, cfg.Frame.MemoryBytes)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xsurf.toml")
	data := `
backend = "headless"
max_frames = 3

[window]
title = "demo"
width = 640

[font]
name = "goregular"
size = 14

[frame]
budget_ms = 33
background = "#102030"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "headless", cfg.Backend)
	assert.Equal(t, 3, cfg.MaxFrames)
	assert.Equal(t, "demo", cfg.Window.Title)
	assert.Equal(t, 640, cfg.Window.Width)
	assert.Equal(t, 600, cfg.Window.Height)
	assert.Equal(t, "goregular", cfg.Font.Name)
	assert.Equal(t, 33*time.Millisecond, cfg.FrameBudget())
	assert.Equal(t, geom.RGB(0x10, 0x20, 0x30), cfg.Background())
	assert.Equal(t, 8192, cfg.Frame.MemoryBytes)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[frame]\nbudget_ms = 0\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalid))
}

func TestLoadRejectsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte("backend = \n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidateBackground(t *testing.T) {
	cfg := Default()
	cfg.Frame.Background = "#zzz"
	assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvPath, "")
	t.Setenv(EnvBackend, " Ebiten ")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "ebiten", cfg.Backend)
}
