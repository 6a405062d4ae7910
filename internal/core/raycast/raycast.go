// Package raycast renders the sightline: the single row of colour a viewer
// sees across its field of view.
//
// Rather than casting one ray per pixel it casts three rays at every wall
// vertex, one exactly at the vertex and one either side of it. Colour can only
// change at a vertex, so sorting those samples by angle and walking them from
// the left edge of the view is enough to find every colour boundary.
package raycast

import (
	"image/color"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"chosenoffset.com/sightline/internal/core/geometry"
	"chosenoffset.com/sightline/internal/core/level"
	"chosenoffset.com/sightline/internal/core/palette"
	"chosenoffset.com/sightline/internal/logging"
)

// DefaultMaxIterations bounds the walk over the sorted rays.
const DefaultMaxIterations = 1000

// Background is the colour of rays that leave the level. Spans of this colour
// are never emitted.
var Background = palette.White

// Viewer is the eye the sightline is rendered from.
type Viewer struct {
	Position geometry.Point
	Angle    float64
}

// Span is a horizontal run of one colour, in screen pixels.
type Span struct {
	XStart int
	Width  int
	Color  color.RGBA
}

// Ray is one angular sample.
type Ray struct {
	Angle float64
	Color color.RGBA
	Hit   bool
}

// Options tunes the renderer.
type Options struct {
	// Straddle is the angular offset of the side rays at each vertex.
	Straddle float64
	// MaxIterations caps how many rays the span walk may visit.
	MaxIterations int
}

// DefaultOptions returns the options Render uses.
func DefaultOptions() Options {
	return Options{
		Straddle:      geometry.VertexStraddle,
		MaxIterations: DefaultMaxIterations,
	}
}

// Rays samples the level at every wall vertex and returns the rays sorted by angle.
func Rays(v Viewer, lvl *level.Level, straddle float64) []Ray {
	if lvl == nil {
		return nil
	}
	vertices := lvl.Vertices()
	rays := make([]Ray, 0, len(vertices)*3)
	for _, vertex := range vertices {
		base := geometry.AngleBetween(v.Position, vertex)
		for _, d := range [3]float64{-straddle, 0, straddle} {
			angle := geometry.NormalizeAngle(base + d)
			r := Ray{Angle: angle, Color: Background}
			if hit, ok := lvl.ClosestWall(v.Position, angle); ok {
				r.Color = hit.Segment.Color
				r.Hit = true
			}
			rays = append(rays, r)
		}
	}
	sort.SliceStable(rays, func(i, j int) bool {
		return rays[i].Angle < rays[j].Angle
	})
	return rays
}

// Render returns the coloured spans of a width-pixel sightline covering fov
// radians centred on the viewer's angle.
func Render(v Viewer, lvl *level.Level, fov float64, width int) []Span {
	return RenderWith(v, lvl, fov, width, DefaultOptions())
}

// RenderWith is Render with explicit options.
func RenderWith(v Viewer, lvl *level.Level, fov float64, width int, opts Options) []Span {
	if lvl == nil || width <= 0 || !(fov > 0) {
		return nil
	}
	if opts.Straddle <= 0 {
		opts.Straddle = geometry.VertexStraddle
	}
	if opts.MaxIterations <= 0 {
		opts.MaxIterations = DefaultMaxIterations
	}

	rays := Rays(v, lvl, opts.Straddle)
	n := len(rays)
	if n == 0 {
		return nil
	}

	left := v.Angle - fov/2
	first := 0
	best := math.Inf(1)
	for i, r := range rays {
		if o := offset(r.Angle, left); o < best {
			best = o
			first = i
		}
	}

	step := fov / float64(width)
	toX := func(o float64) int {
		x := int(o / step)
		if x < 0 {
			return 0
		}
		if x > width {
			return width
		}
		return x
	}

	var spans []Span
	emit := func(from, to int, c color.RGBA) {
		if to > from && c != Background {
			spans = append(spans, Span{XStart: from, Width: to - from, Color: c})
		}
	}

	// The view opens on whatever the ray before the left edge saw.
	current := rays[(first+n-1)%n].Color
	x := 0
	prevOffset := 0.0
	for k := 0; k < n; k++ {
		if k >= opts.MaxIterations {
			logging.For("raycast").WithFields(logrus.Fields{
				"rays":  n,
				"limit": opts.MaxIterations,
			}).Warn("ray walk hit its iteration cap")
			break
		}
		r := rays[(first+k)%n]
		o := offset(r.Angle, left)
		if o > fov {
			break
		}
		if r.Color != current {
			boundary := toX(prevOffset)
			emit(x, boundary, current)
			x = boundary
			current = r.Color
		}
		prevOffset = o
	}
	emit(x, width, current)
	return spans
}

// offset returns how far past left the angle lies, in [0, 2π).
func offset(angle, left float64) float64 {
	o := math.Mod(angle-left, 2*math.Pi)
	if o < 0 {
		o += 2 * math.Pi
	}
	return o
}
