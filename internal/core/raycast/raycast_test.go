package raycast

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/core/palette"
)

const viewFOV = math.Pi * 3 / 5

func colouredRoom(t *testing.T) *level.Level {
	t.Helper()
	room := geometry.NewPolygon([]geometry.Point{{X: 100, Y: 100}, {X: 400, Y: 100}, {X: 400, Y: 400}, {X: 100, Y: 400}}, true)
	require.NoError(t, room.SetColors([]color.RGBA{palette.Red, palette.Green, palette.Blue, palette.Cyan}))
	return level.FromPolygons([]*geometry.Polygon{room}, nil, geometry.Point{X: 250, Y: 250}, 0, level.DefaultClearance)
}

func singleWall(t *testing.T, a, b geometry.Point) *level.Level {
	t.Helper()
	wall := geometry.NewPolygon([]geometry.Point{a, b}, false)
	require.NoError(t, wall.SetColors([]color.RGBA{palette.Red}))
	return level.FromPolygons([]*geometry.Polygon{wall}, nil, geometry.Point{}, 0, level.DefaultClearance)
}

func assertContiguous(t *testing.T, spans []Span, width int) {
	t.Helper()
	require.NotEmpty(t, spans)
	assert.Equal(t, 0, spans[0].XStart)
	for i := 1; i < len(spans); i++ {
		assert.Equal(t, spans[i-1].XStart+spans[i-1].Width, spans[i].XStart)
	}
	last := spans[len(spans)-1]
	assert.Equal(t, width, last.XStart+last.Width)
}

func TestRaysAreSortedAndStraddleVertices(t *testing.T) {
	lvl := colouredRoom(t)
	rays := Rays(Viewer{Position: geometry.Point{X: 250, Y: 250}}, lvl, geometry.VertexStraddle)

	assert.Len(t, rays, len(lvl.Vertices())*3)
	for i := 1; i < len(rays); i++ {
		assert.LessOrEqual(t, rays[i-1].Angle, rays[i].Angle)
	}
	for _, r := range rays {
		assert.True(t, r.Hit, "every ray inside a closed room hits a wall")
	}
}

func TestRenderRoomFacingRightWall(t *testing.T) {
	lvl := colouredRoom(t)
	spans := Render(Viewer{Position: geometry.Point{X: 250, Y: 250}, Angle: 0}, lvl, viewFOV, 600)

	require.Len(t, spans, 3)
	assert.Equal(t, palette.Red, spans[0].Color)
	assert.Equal(t, palette.Green, spans[1].Color)
	assert.Equal(t, palette.Blue, spans[2].Color)
	assert.InDelta(t, 50, spans[1].XStart, 1)
	assert.InDelta(t, 550, spans[2].XStart, 1)
	assertContiguous(t, spans, 600)
}

func TestRenderIsIdempotent(t *testing.T) {
	lvl := colouredRoom(t)
	v := Viewer{Position: geometry.Point{X: 180, Y: 320}, Angle: 2.1}

	first := Render(v, lvl, viewFOV, 640)
	second := Render(v, lvl, viewFOV, 640)
	assert.Equal(t, first, second)
	assertContiguous(t, first, 640)
}

func TestRenderSingleWallInFront(t *testing.T) {
	lvl := singleWall(t, geometry.Point{X: 100, Y: -10}, geometry.Point{X: 100, Y: 10})
	spans := Render(Viewer{Angle: 0}, lvl, math.Pi/2, 900)

	require.Len(t, spans, 1)
	assert.Equal(t, palette.Red, spans[0].Color)
	assert.InDelta(t, 392, spans[0].XStart, 1)
	assert.InDelta(t, 115, spans[0].Width, 2)
}

func TestRenderAcrossAngleSeam(t *testing.T) {
	lvl := singleWall(t, geometry.Point{X: -100, Y: 10}, geometry.Point{X: -100, Y: -10})
	spans := Render(Viewer{Angle: math.Pi}, lvl, math.Pi/2, 900)

	require.Len(t, spans, 1)
	assert.Equal(t, palette.Red, spans[0].Color)
	assert.InDelta(t, 392, spans[0].XStart, 1)
	assert.InDelta(t, 115, spans[0].Width, 2)
}

func TestRenderWallBehindViewer(t *testing.T) {
	lvl := singleWall(t, geometry.Point{X: -100, Y: -10}, geometry.Point{X: -100, Y: 10})
	assert.Empty(t, Render(Viewer{Angle: 0}, lvl, math.Pi/2, 900))
}

func TestRenderEmptyLevel(t *testing.T) {
	lvl := level.FromPolygons(nil, nil, geometry.Point{}, 0, level.DefaultClearance)
	assert.Empty(t, Render(Viewer{}, lvl, viewFOV, 600))
	assert.Empty(t, Render(Viewer{}, nil, viewFOV, 600))
	assert.Empty(t, Render(Viewer{}, colouredRoom(t), viewFOV, 0))
	assert.Empty(t, Render(Viewer{}, colouredRoom(t), 0, 600))
}

func TestIterationCapFillsWithLastColour(t *testing.T) {
	lvl := colouredRoom(t)
	opts := DefaultOptions()
	opts.MaxIterations = 2

	spans := RenderWith(Viewer{Position: geometry.Point{X: 250, Y: 250}}, lvl, viewFOV, 600, opts)
	assertContiguous(t, spans, 600)
	assert.LessOrEqual(t, len(spans), 2)
}

func TestOffsetWrapsIntoOneTurn(t *testing.T) {
	assert.InDelta(t, 0.5, offset(0, -0.5), 1e-12)
	assert.InDelta(t, 2*math.Pi-0.5, offset(-0.5, 0), 1e-12)
	assert.InDelta(t, 0.25, offset(-math.Pi+0.1, math.Pi-0.15), 1e-9)
}
