package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/render"
)

type fakeEngine struct {
	width, height int
	title         string
	tps           int
	captured      bool
	frames        int
	input         *fakeInput
}

func (e *fakeEngine) SetWindowSize(w, h int)          { e.width, e.height = w, h }
func (e *fakeEngine) SetWindowTitle(title string)     { e.title = title }
func (e *fakeEngine) SetTPS(tps int)                  { e.tps = tps }
func (e *fakeEngine) SetCursorCaptured(captured bool) { e.captured = captured }

// RunGame pauses on the second frame and quits on the fourth
func (e *fakeEngine) RunGame(g render.Game) error {
	for {
		e.frames++
		switch e.frames {
		case 2:
			e.input.pressed[render.KeyEscape] = true
		case 4:
			e.input.pressed[render.KeyQ] = true
		}
		err := g.Update()
		e.input.frame()
		if err != nil {
			return err
		}
	}
}

func newTestManager(t *testing.T) (*Manager, *fakeEngine, *fakeInput) {
	t.Helper()
	in := newFakeInput()
	engine := &fakeEngine{input: in}
	m, err := NewManager(engine, &fakeRenderer{}, in, config.DefaultConfig(), []*level.Level{room("one"), room("two"), room("three")})
	require.NoError(t, err)
	return m, engine, in
}

func TestRunQuitsCleanly(t *testing.T) {
	m, engine, _ := newTestManager(t)

	require.NoError(t, m.Run())
	assert.Equal(t, 500, engine.width)
	assert.Equal(t, 550, engine.height)
	assert.Equal(t, "Sightline", engine.title)
	assert.Equal(t, 60, engine.tps)
	assert.False(t, engine.captured, "paused releases the cursor")
	assert.Equal(t, 4, engine.frames)
}

func TestPauseMenu(t *testing.T) {
	m, engine, in := newTestManager(t)
	engine.captured = true

	in.pressed[render.KeyEscape] = true
	require.NoError(t, m.Update())
	in.frame()
	assert.Equal(t, StatePaused, m.State)
	assert.False(t, engine.captured)

	in.held[render.KeyW] = true
	require.NoError(t, m.Update())
	pos, _ := m.Game.Session.Player()
	assert.Equal(t, 250.0, pos.X, "no movement while paused")
	in.held[render.KeyW] = false

	in.pressed[render.KeyN] = true
	require.NoError(t, m.Update())
	in.frame()
	assert.Equal(t, 1, m.Game.Session.LevelIndex())

	in.pressed[render.KeyN] = true
	require.NoError(t, m.Update())
	in.frame()
	in.pressed[render.KeyN] = true
	require.NoError(t, m.Update())
	in.frame()
	assert.Equal(t, 2, m.Game.Session.LevelIndex(), "skipping stops at the last level")
	assert.False(t, m.Game.Session.Finished())

	in.pressed[render.KeyP] = true
	require.NoError(t, m.Update())
	in.frame()
	assert.Equal(t, 1, m.Game.Session.LevelIndex())

	in.released = true
	require.NoError(t, m.Update())
	in.frame()
	assert.Equal(t, StatePlaying, m.State)
	assert.True(t, engine.captured)
	assert.Empty(t, m.Game.Session.Markers(), "the resume click does not place a marker")

	in.pressed[render.KeyEscape] = true
	require.NoError(t, m.Update())
	in.frame()
	in.pressed[render.KeyQ] = true
	assert.ErrorIs(t, m.Update(), ErrQuit)
}

func TestLayoutIsFixed(t *testing.T) {
	m, _, _ := newTestManager(t)
	w, h := m.Layout(1920, 1080)
	assert.Equal(t, 500, w)
	assert.Equal(t, 550, h)
}
