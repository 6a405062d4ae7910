// Package player moves the viewer through a level, sliding along the
// buffered boundary instead of passing through it.
package player

import (
	"math"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/level"
)

// PushOut is how far a blocked move is pushed back off the boundary line.
const PushOut = 1.0

// Settings holds the per-frame movement tuning.
type Settings struct {
	// Speed is the distance covered per frame, the same for diagonals.
	Speed float64
	// Sensitivity turns mouse pixels into radians.
	Sensitivity float64
}

// DefaultSettings returns one unit per frame and 1/100 radian per pixel.
func DefaultSettings() Settings {
	return Settings{Speed: 1.0, Sensitivity: 0.01}
}

// Player is the viewer's position and facing. It keeps no velocity.
type Player struct {
	Position geometry.Point
	Angle    float64

	settings Settings
}

// New creates a player at the origin.
func New(settings Settings) *Player {
	return &Player{settings: settings}
}

// Settings returns the movement tuning.
func (p *Player) Settings() Settings {
	return p.settings
}

// GoTo places the player without any collision check.
func (p *Player) GoTo(position geometry.Point, angle float64) {
	p.Position = position
	p.Angle = geometry.NormalizeAngle(angle)
}

// Heading returns the direction of travel for the held keys. Opposing keys
// cancel; ok is false when nothing is left to move along.
func (p *Player) Heading(keys KeySet) (float64, bool) {
	forward := axis(keys.Has(KeyW), keys.Has(KeyS))
	side := axis(keys.Has(KeyD), keys.Has(KeyA))
	if forward == 0 && side == 0 {
		return 0, false
	}
	return geometry.NormalizeAngle(p.Angle + math.Atan2(side, forward)), true
}

func axis(positive, negative bool) float64 {
	switch {
	case positive && !negative:
		return 1
	case negative && !positive:
		return -1
	}
	return 0
}

// UpdateMovement applies one frame of input: turn first, then step.
func (p *Player) UpdateMovement(in Input, lvl *level.Level) {
	p.Angle = geometry.NormalizeAngle(p.Angle + in.MouseDeltaX*p.settings.Sensitivity)

	heading, ok := p.Heading(in.Held)
	if !ok {
		return
	}
	next := p.Position.Add(geometry.VectorToDifference(heading, p.settings.Speed))
	p.Step(next, lvl)
}

// Step moves towards next, sliding along the first boundary segment the
// move would cross. It reports whether the player moved; a slide that would
// still cross the boundary leaves the player where it was.
func (p *Player) Step(next geometry.Point, lvl *level.Level) bool {
	if lvl == nil {
		p.Position = next
		return true
	}

	contacts := lvl.BoundaryHits(geometry.NewSegment(p.Position, next))
	if len(contacts) == 0 {
		p.Position = next
		return true
	}

	corrected, ok := slide(p.Position, next, *contacts[0].Segment)
	if !ok || lvl.Collides(geometry.NewSegment(p.Position, corrected)) {
		return false
	}
	p.Position = corrected
	return true
}

// slide projects next onto the wall's line and backs off PushOut towards
// the side the move came from.
func slide(from, next geometry.Point, wall geometry.Segment) (geometry.Point, bool) {
	if c, ok := geometry.ClosestPointOnLine(next, wall); ok {
		away := c.Sub(next)
		length := math.Hypot(away.X, away.Y)
		return c.Add(away.Scale(PushOut / length)), true
	}

	// next sits on the wall's line: try both perpendiculars, keep the one
	// that does not cross this wall.
	if wall.Length == 0 {
		return geometry.Point{}, false
	}
	d := wall.Point2.Sub(wall.Point1).Scale(PushOut / wall.Length)
	perp := geometry.Point{X: -d.Y, Y: d.X}
	for _, candidate := range [2]geometry.Point{next.Add(perp), next.Sub(perp)} {
		if !geometry.SegmentsCollide(geometry.NewSegment(from, candidate), wall) {
			return candidate, true
		}
	}
	return geometry.Point{}, false
}
