// Package level turns wall and goal polygons into a playable level: the
// visual walls the sightline sees, the buffered boundary that blocks movement
// and the goal regions markers are scored against.
package level

import (
	"fmt"
	"image/color"

	"github.com/dhconnelly/rtreego"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/logging"
)

// DefaultClearance is the stand-off between a visual wall and the boundary.
const DefaultClearance = 6.0

// Level is built once at load time and read-only afterwards.
type Level struct {
	Name       string
	Walls      []*geometry.Polygon
	Goals      []*geometry.Polygon
	Start      geometry.Point
	StartAngle float64
	Clearance  float64

	boundary Boundary
	segments []geometry.Segment
	index    *rtreego.Rtree
}

// FromPolygons derives the movement boundary from walls and indexes it.
func FromPolygons(walls, goals []*geometry.Polygon, start geometry.Point, startAngle, clearance float64) *Level {
	l := &Level{
		Walls:      walls,
		Goals:      goals,
		Start:      start,
		StartAngle: startAngle,
		Clearance:  clearance,
	}
	l.boundary = BuildBoundary(walls, clearance)
	l.segments = l.boundary.Segments()
	l.index = buildIndex(l.segments)

	logging.For("level").WithFields(logrus.Fields{
		"walls":    len(walls),
		"goals":    len(goals),
		"boundary": len(l.segments),
	}).Debug("level built")
	return l
}

// Boundary returns the movement boundary.
func (l *Level) Boundary() Boundary {
	return l.boundary
}

// BoundarySegments returns the flattened boundary.
func (l *Level) BoundarySegments() []geometry.Segment {
	return l.segments
}

// Vertices returns every endpoint of every visual wall segment.
func (l *Level) Vertices() []geometry.Point {
	var out []geometry.Point
	for _, w := range l.Walls {
		for _, s := range w.Segments {
			out = append(out, s.Point1, s.Point2)
		}
	}
	return out
}

// ClosestWall casts a ray against the visual walls.
func (l *Level) ClosestWall(position geometry.Point, angle float64) (geometry.Hit, bool) {
	return geometry.ClosestWallHit(position, l.Walls, angle)
}

// FarthestWall is ClosestWall picking the most distant visual wall.
func (l *Level) FarthestWall(position geometry.Point, angle float64) (geometry.Hit, bool) {
	return geometry.FarthestWallHit(position, l.Walls, angle)
}

// SetGoalColors assigns one fill colour per goal, in goal order.
func (l *Level) SetGoalColors(colors []color.RGBA) error {
	if len(colors) != len(l.Goals) {
		return fmt.Errorf("%w: got %d colours for %d goals", geometry.ErrColorCount, len(colors), len(l.Goals))
	}
	for i, c := range colors {
		l.Goals[i].Color = c
	}
	return nil
}

// GoalAt returns the index of the first goal containing p.
func (l *Level) GoalAt(p geometry.Point) (int, bool) {
	for i, g := range l.Goals {
		if geometry.PointInPolygon(p, g) {
			return i, true
		}
	}
	return -1, false
}

// CheckWin reports whether every goal contains at least one marker.
// A level without goals is never won.
func (l *Level) CheckWin(markers []geometry.Point) bool {
	if len(l.Goals) == 0 {
		return false
	}
	for _, g := range l.Goals {
		covered := false
		for _, m := range markers {
			if geometry.PointInPolygon(m, g) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
