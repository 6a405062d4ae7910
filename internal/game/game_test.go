package game

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightline/internal/config"
	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/core/palette"
	"chosenoffset.com/sightline/internal/render"
)

type fakeInput struct {
	held     map[render.Key]bool
	pressed  map[render.Key]bool
	released bool
	cursorX  int
}

func newFakeInput() *fakeInput {
	return &fakeInput{held: map[render.Key]bool{}, pressed: map[render.Key]bool{}}
}

func (f *fakeInput) IsKeyPressed(key render.Key) bool     { return f.held[key] }
func (f *fakeInput) IsKeyJustPressed(key render.Key) bool { return f.pressed[key] }
func (f *fakeInput) CursorPosition() (int, int)           { return f.cursorX, 0 }
func (f *fakeInput) IsMouseButtonJustReleased(b render.MouseButton) bool {
	return b == render.MouseButtonLeft && f.released
}

// frame clears the one-shot inputs after a tick
func (f *fakeInput) frame() {
	f.pressed = map[render.Key]bool{}
	f.released = false
}

type fakeImage struct {
	fills []color.Color
}

func (i *fakeImage) Bounds() image.Rectangle  { return image.Rect(0, 0, 500, 550) }
func (i *fakeImage) Size() (int, int)         { return 500, 550 }
func (i *fakeImage) Fill(clr color.Color)     { i.fills = append(i.fills, clr) }

type fakeRenderer struct {
	rects   int
	lines   int
	filled  []color.Color
	stroked []color.Color
	texts   []string
}

func (r *fakeRenderer) FillRect(dst render.Image, x, y, w, h float32, clr color.Color) { r.rects++ }
func (r *fakeRenderer) StrokeLine(dst render.Image, x0, y0, x1, y1, w float32, clr color.Color) {
	r.lines++
}
func (r *fakeRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.filled = append(r.filled, clr)
}
func (r *fakeRenderer) StrokeCircle(dst render.Image, x, y, radius, w float32, clr color.Color) {
	r.stroked = append(r.stroked, clr)
}
func (r *fakeRenderer) DrawText(dst render.Image, text string, x, y int) {
	r.texts = append(r.texts, text)
}

// room is a four-colour square room whose single goal covers the start
func room(name string) *level.Level {
	walls := geometry.NewPolygon([]geometry.Point{{X: 100, Y: 100}, {X: 400, Y: 100}, {X: 400, Y: 400}, {X: 100, Y: 400}}, true)
	if err := walls.SetColors([]color.RGBA{palette.Red, palette.Green, palette.Blue, palette.Cyan}); err != nil {
		panic(err)
	}
	goal := geometry.NewPolygon([]geometry.Point{{X: 200, Y: 200}, {X: 300, Y: 200}, {X: 300, Y: 300}, {X: 200, Y: 300}}, true)
	goal.Color = palette.PaleOrange

	lvl := level.FromPolygons([]*geometry.Polygon{walls}, []*geometry.Polygon{goal}, geometry.Point{X: 250, Y: 250}, 0, level.DefaultClearance)
	lvl.Name = name
	return lvl
}

func newTestGame(t *testing.T) (*Game, *fakeInput, *fakeRenderer) {
	t.Helper()
	in := newFakeInput()
	r := &fakeRenderer{}
	g, err := NewGame(config.DefaultConfig(), []*level.Level{room("one"), room("two")}, r, in)
	require.NoError(t, err)
	return g, in, r
}

func TestNewGameCastsRays(t *testing.T) {
	g, _, _ := newTestGame(t)
	require.NotEmpty(t, g.Spans())

	total := 0
	for _, s := range g.Spans() {
		total += s.Width
	}
	assert.Equal(t, 500, total, "a closed room fills the whole strip")
}

func TestUpdateMovesAndTurns(t *testing.T) {
	g, in, _ := newTestGame(t)

	in.cursorX = 100
	in.held[render.KeyW] = true
	require.NoError(t, g.Update())
	pos, angle := g.Session.Player()
	assert.InDelta(t, 251.0, pos.X, 1e-6)
	assert.InDelta(t, 0.0, angle, 1e-5, "the first cursor reading only sets the reference")

	in.held[render.KeyW] = false
	in.cursorX = 150
	require.NoError(t, g.Update())
	_, angle = g.Session.Player()
	assert.InDelta(t, 0.5, angle, 1e-5)

	g.ResetMouse()
	in.cursorX = 400
	require.NoError(t, g.Update())
	_, angle = g.Session.Player()
	assert.InDelta(t, 0.5, angle, 1e-5)
}

func TestClickWinsAndAdvances(t *testing.T) {
	g, in, _ := newTestGame(t)

	in.released = true
	require.NoError(t, g.Update())
	in.frame()
	require.True(t, g.Session.Won())
	require.Len(t, g.Session.Markers(), 1)
	assert.Equal(t, palette.Orange, g.Session.Markers()[0].Color)

	for i := 0; i < WinDelay; i++ {
		require.NoError(t, g.Update())
	}
	assert.Equal(t, 1, g.Session.LevelIndex())
	assert.False(t, g.Session.Won())

	in.released = true
	require.NoError(t, g.Update())
	in.frame()
	for i := 0; i < WinDelay; i++ {
		require.NoError(t, g.Update())
	}
	assert.True(t, g.Session.Finished())
	assert.Empty(t, g.Spans())
}

func TestClearAndMapKeys(t *testing.T) {
	g, in, _ := newTestGame(t)

	in.released = true
	require.NoError(t, g.Update())
	in.frame()
	require.True(t, g.Session.Won())

	in.pressed[render.KeyC] = true
	in.pressed[render.KeyM] = true
	require.NoError(t, g.Update())
	assert.False(t, g.Session.Won())
	assert.Empty(t, g.Session.Markers())
	assert.True(t, g.ShowMap)
}

func TestDraw(t *testing.T) {
	g, in, r := newTestGame(t)
	screen := &fakeImage{}

	g.Draw(screen)
	require.Len(t, screen.fills, 1)
	assert.Equal(t, palette.White, screen.fills[0])
	assert.Equal(t, len(g.Spans())+1, r.rects, "one rect per span plus the name backdrop")
	assert.Equal(t, []color.Color{palette.Black}, r.stroked, "one empty slot")
	assert.Contains(t, r.texts, "one")
	assert.Zero(t, r.lines)

	in.released = true
	require.NoError(t, g.Update())
	g.ShowMap = true
	*r = fakeRenderer{}
	g.Draw(screen)
	assert.Contains(t, r.filled, color.Color(palette.Orange), "a won level shows marker colours")
	assert.NotZero(t, r.lines)
}

func TestClearingAWinStopsTheAdvance(t *testing.T) {
	g, in, _ := newTestGame(t)

	in.released = true
	require.NoError(t, g.Update())
	in.frame()
	in.pressed[render.KeyC] = true
	require.NoError(t, g.Update())
	in.frame()

	for i := 0; i < 2*WinDelay; i++ {
		require.NoError(t, g.Update())
	}
	assert.Equal(t, 0, g.Session.LevelIndex())
}
