package level

import (
	"fmt"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/sirupsen/logrus"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/logging"
)

// overlapArea is the shared area under which two goals only touch.
const overlapArea = 0.5

// Issue is a validation warning. Levels with issues still load and play.
type Issue struct {
	Kind    string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Kind, i.Message)
}

// Validate looks for authoring mistakes: empty polygons, open goals,
// overlapping goals and a start position inside a wall's clearance band.
func (l *Level) Validate() []Issue {
	var issues []Issue

	for i, w := range l.Walls {
		if w == nil || len(w.Segments) == 0 {
			issues = append(issues, Issue{"empty-wall", fmt.Sprintf("wall %d has no segments", i)})
		}
	}
	for i, g := range l.Goals {
		if g == nil || len(g.Segments) == 0 {
			issues = append(issues, Issue{"empty-goal", fmt.Sprintf("goal %d has no segments", i)})
			continue
		}
		if !g.IsRing() {
			issues = append(issues, Issue{"open-goal", fmt.Sprintf("goal %d does not enclose an area", i)})
		}
	}

	for i := 0; i < len(l.Goals); i++ {
		for j := i + 1; j < len(l.Goals); j++ {
			if area := goalOverlap(l.Goals[i], l.Goals[j]); area > overlapArea {
				issues = append(issues, Issue{"goal-overlap", fmt.Sprintf("goals %d and %d share %.1f square units", i, j, area)})
			}
		}
	}

	for i, w := range l.Walls {
		if w == nil {
			continue
		}
		for _, s := range w.Segments {
			if d := geometry.DistanceToSegment(l.Start, s); d < l.Clearance {
				issues = append(issues, Issue{"start-in-wall", fmt.Sprintf("start is %.2f from wall %d, clearance is %.2f", d, i, l.Clearance)})
				break
			}
		}
	}

	if len(issues) > 0 {
		logging.For("level").WithFields(logrus.Fields{
			"level":  l.Name,
			"issues": len(issues),
		}).Warn("level has validation issues")
	}
	return issues
}

func contour(p *geometry.Polygon) polyclip.Contour {
	c := make(polyclip.Contour, len(p.Points))
	for i, pt := range p.Points {
		c[i] = polyclip.Point{X: pt.X, Y: pt.Y}
	}
	return c
}

// goalOverlap returns the area two goal regions have in common.
func goalOverlap(a, b *geometry.Polygon) float64 {
	if a == nil || b == nil || !a.IsRing() || !b.IsRing() {
		return 0
	}
	subject := polyclip.Polygon{contour(a)}
	clipping := polyclip.Polygon{contour(b)}
	result := subject.Construct(polyclip.INTERSECTION, clipping)

	area := 0.0
	for _, c := range result {
		pts := make([]geometry.Point, len(c))
		for i, p := range c {
			pts[i] = geometry.Point{X: p.X, Y: p.Y}
		}
		area += geometry.PolygonArea(pts)
	}
	return area
}
