package render

import (
	"testing"

	"xsurf/internal/command"
	"xsurf/internal/font"
	"xsurf/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type futureCommand struct{}

func (futureCommand) Kind() command.Kind { return command.Kind(200) }

func TestReplayEmptyListIsNoOp(t *testing.T) {
	s := NewSurface(32, 32)
	s.Clear(gray)
	before := append([]uint32(nil), s.Pix...)

	Replay(s, command.List{})
	Replay(s, command.NewList())

	assert.Equal(t, before, s.Pix)
	assert.Equal(t, 0, s.ClipDepth())
}

func TestReplayScenario(t *testing.T) {
	f, err := font.Load(font.Fixed, 0)
	require.NoError(t, err)
	defer f.Destroy()

	s := NewSurface(800, 600)
	list := command.NewList(
		command.Scissor{Rect: geom.R(0, 0, 100, 50)},
		command.Rect{Rect: geom.R(10, 10, 20, 20), Color: red},
		command.Text{Rect: geom.R(5, 5, 40, 20), String: []byte("Hi"), Font: f, Background: black, Foreground: white},
	)
	s.Clear(gray)
	Replay(s, list)

	var win captureTarget
	require.NoError(t, s.Present(&win, 800, 600))

	assert.Equal(t, Pack(gray), win.at(200, 200))
	assert.Equal(t, Pack(red), win.at(29, 29))
	assert.Equal(t, 1, s.ClipDepth())
}

func TestReplayScenarioWithoutTextOverlap(t *testing.T) {
	s := NewSurface(800, 600)
	list := command.NewList(
		command.Scissor{Rect: geom.R(0, 0, 100, 50)},
		command.Rect{Rect: geom.R(10, 10, 20, 20), Color: red},
	)
	s.Clear(gray)
	Replay(s, list)

	var win captureTarget
	require.NoError(t, s.Present(&win, 800, 600))
	assert.Equal(t, Pack(red), win.at(15, 15))
	assert.Equal(t, Pack(gray), win.at(200, 200))
}

func TestReplaySkipsUnknownCommands(t *testing.T) {
	s := NewSurface(32, 32)
	s.Clear(gray)
	list := command.NewList(
		futureCommand{},
		command.Nop{},
		command.Rect{Rect: geom.R(0, 0, 4, 4), Color: red},
		futureCommand{},
	)
	Replay(s, list)

	assert.Equal(t, Pack(red), s.At(1, 1))
	assert.Equal(t, Pack(gray), s.At(10, 10))
}

func TestReplayOrderMatters(t *testing.T) {
	s := NewSurface(64, 64)
	s.Clear(gray)
	list := command.NewList(
		command.Scissor{Rect: geom.R(0, 0, 10, 10)},
		command.Rect{Rect: geom.R(0, 0, 64, 64), Color: red},
		command.Scissor{Rect: geom.R(0, 0, 64, 64)},
		command.Circle{Rect: geom.R(30, 30, 20, 20), Color: white},
		command.Line{Begin: geom.Pt(0, 60), End: geom.Pt(63, 60), Color: black},
		command.Triangle{A: geom.Pt(40, 0), B: geom.Pt(60, 0), C: geom.Pt(40, 20), Color: white},
	)
	Replay(s, list)

	assert.Equal(t, Pack(red), s.At(5, 5))
	assert.Equal(t, Pack(gray), s.At(20, 20))
	assert.Equal(t, Pack(white), s.At(40, 40))
	assert.Equal(t, Pack(black), s.At(10, 60))
	assert.Equal(t, Pack(white), s.At(42, 2))
}
