package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/level"
)

func horizontalWall() *level.Level {
	wall := geometry.NewPolygon([]geometry.Point{{X: 0, Y: 200}, {X: 1000, Y: 200}}, false)
	return level.FromPolygons([]*geometry.Polygon{wall}, nil, geometry.Point{}, 0, level.DefaultClearance)
}

func room() *level.Level {
	walls := geometry.NewPolygon([]geometry.Point{{X: 100, Y: 100}, {X: 400, Y: 100}, {X: 400, Y: 400}, {X: 100, Y: 400}}, true)
	return level.FromPolygons([]*geometry.Polygon{walls}, nil, geometry.Point{X: 250, Y: 250}, 0, level.DefaultClearance)
}

func TestKeySet(t *testing.T) {
	s := NewKeySet(KeyW, KeyD)
	assert.True(t, s.Has(KeyW))
	assert.True(t, s.Has(KeyD))
	assert.False(t, s.Has(KeyA))
	assert.False(t, s.Has(KeyS))
	assert.True(t, s.With(KeyS).Has(KeyS))
}

func TestHeading(t *testing.T) {
	p := New(DefaultSettings())
	p.GoTo(geometry.Point{}, 0.3)

	cases := []struct {
		name string
		keys KeySet
		want float64
		ok   bool
	}{
		{"forward", NewKeySet(KeyW), 0.3, true},
		{"back", NewKeySet(KeyS), 0.3 - math.Pi, true},
		{"left", NewKeySet(KeyA), 0.3 - math.Pi/2, true},
		{"right", NewKeySet(KeyD), 0.3 + math.Pi/2, true},
		{"forward right", NewKeySet(KeyW, KeyD), 0.3 + math.Pi/4, true},
		{"back left", NewKeySet(KeyS, KeyA), 0.3 - 3*math.Pi/4, true},
		{"opposed", NewKeySet(KeyW, KeyS), 0, false},
		{"opposed with side", NewKeySet(KeyW, KeyS, KeyD), 0.3 + math.Pi/2, true},
		{"none", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := p.Heading(tc.keys)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.True(t, geometry.AnglesClose(tc.want, got, 1e-9), "want %f got %f", tc.want, got)
			}
		})
	}
}

func TestMouseTurnsBeforeMoving(t *testing.T) {
	p := New(DefaultSettings())
	p.GoTo(geometry.Point{X: 10, Y: 10}, 0)

	p.UpdateMovement(Input{MouseDeltaX: 100}, nil)
	assert.InDelta(t, 1.0, p.Angle, 1e-12)
	assert.Equal(t, geometry.Point{X: 10, Y: 10}, p.Position)

	p.UpdateMovement(Input{MouseDeltaX: 400}, nil)
	assert.InDelta(t, 5-2*math.Pi, p.Angle, 1e-12)
}

func TestDiagonalStepKeepsSpeed(t *testing.T) {
	p := New(DefaultSettings())
	p.GoTo(geometry.Point{X: 250, Y: 250}, 0)
	p.UpdateMovement(Input{Held: NewKeySet(KeyW, KeyD)}, room())

	assert.InDelta(t, 1.0, geometry.Distance(geometry.Point{X: 250, Y: 250}, p.Position), 1e-12)
	assert.InDelta(t, 250+math.Sqrt2/2, p.Position.X, 1e-12)
	assert.InDelta(t, 250+math.Sqrt2/2, p.Position.Y, 1e-12)
}

func TestShallowApproachSlidesAlongWall(t *testing.T) {
	lvl := horizontalWall()
	wall := lvl.Walls[0].Segments[0]
	p := New(DefaultSettings())
	p.GoTo(geometry.Point{X: 100, Y: 180}, math.Atan2(1, 10))

	boundaryY := 200 - lvl.Clearance
	for frame := 0; frame < 400; frame++ {
		p.UpdateMovement(Input{Held: NewKeySet(KeyW)}, lvl)
		require.Lessf(t, p.Position.Y, boundaryY, "frame %d crossed the boundary", frame)
		require.GreaterOrEqual(t, geometry.DistanceToSegment(p.Position, wall), lvl.Clearance)
	}
	assert.Greater(t, p.Position.X, 450.0, "the player keeps sliding along the wall")
	assert.Greater(t, p.Position.Y, boundaryY-2)
}

func TestPushingIntoCornerStaysInside(t *testing.T) {
	lvl := room()
	p := New(DefaultSettings())
	p.GoTo(geometry.Point{X: 300, Y: 300}, math.Pi/4)

	for frame := 0; frame < 300; frame++ {
		p.UpdateMovement(Input{Held: NewKeySet(KeyW)}, lvl)
		require.Greater(t, p.Position.X, 106.0)
		require.Less(t, p.Position.X, 394.0)
		require.Greater(t, p.Position.Y, 106.0)
		require.Less(t, p.Position.Y, 394.0)
	}
	assert.Greater(t, p.Position.X, 380.0)
	assert.Greater(t, p.Position.Y, 380.0)
}

func TestStepOntoBoundaryLinePicksClearSide(t *testing.T) {
	lvl := horizontalWall()
	p := New(Settings{Speed: 0.5, Sensitivity: 0.01})
	p.GoTo(geometry.Point{X: 100, Y: 193.5}, math.Pi/2)

	p.UpdateMovement(Input{Held: NewKeySet(KeyW)}, lvl)
	assert.InDelta(t, 100.0, p.Position.X, 1e-9)
	assert.InDelta(t, 193.0, p.Position.Y, 1e-9)
}

func TestSlideDegenerateCases(t *testing.T) {
	wall := geometry.NewSegment(geometry.Point{X: 0, Y: 0}, geometry.Point{X: 10, Y: 0})

	got, ok := slide(geometry.Point{X: 5, Y: -0.5}, geometry.Point{X: 5, Y: 0}, wall)
	require.True(t, ok)
	assert.InDelta(t, -1.0, got.Y, 1e-12)

	got, ok = slide(geometry.Point{X: 5, Y: -0.5}, geometry.Point{X: 6, Y: 2}, wall)
	require.True(t, ok)
	assert.InDelta(t, 6.0, got.X, 1e-12)
	assert.InDelta(t, -1.0, got.Y, 1e-12)

	_, ok = slide(geometry.Point{}, geometry.Point{}, geometry.NewSegment(geometry.Point{}, geometry.Point{}))
	assert.False(t, ok)
}

func TestStepWithoutLevelAlwaysMoves(t *testing.T) {
	p := New(DefaultSettings())
	assert.True(t, p.Step(geometry.Point{X: 3, Y: 4}, nil))
	assert.Equal(t, geometry.Point{X: 3, Y: 4}, p.Position)
}
