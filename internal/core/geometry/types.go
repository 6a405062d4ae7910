package geometry

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"chosenoffset.com/sightline/internal/core/palette"
)

// ErrColorCount is returned when a colour list does not match the segment count.
var ErrColorCount = errors.New("colour count does not match segment count")

// Point represents a 2D point in space
type Point struct {
	X, Y float64
}

// Add returns p + q.
func (p Point) Add(q Point) Point {
	return Point{p.X + q.X, p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{p.X - q.X, p.Y - q.Y}
}

// Scale returns p multiplied by k.
func (p Point) Scale(k float64) Point {
	return Point{p.X * k, p.Y * k}
}

// Lerp returns the point a fraction t of the way from a to b.
func Lerp(a, b Point, t float64) Point {
	return Point{a.X + (b.X-a.X)*t, a.Y + (b.Y-a.Y)*t}
}

// Segment is a finite wall edge with its line parameters cached at construction.
//
// YIntercept is only meaningful when the segment is not vertical. XIntercept
// holds the x of a vertical segment, the x-axis crossing of a sloped one and
// NaN for a horizontal one.
type Segment struct {
	Point1, Point2 Point
	Length         float64
	Slope          float64
	YIntercept     float64
	XIntercept     float64
	Color          color.RGBA
}

// NewSegment builds a segment from point1 to point2 with the default black colour.
func NewSegment(point1, point2 Point) Segment {
	s := Segment{
		Point1: point1,
		Point2: point2,
		Length: Distance(point1, point2),
		Slope:  TwoPointSlope(point1, point2),
		Color:  palette.Black,
	}
	switch {
	case math.IsInf(s.Slope, 0):
		s.YIntercept = math.NaN()
		s.XIntercept = point1.X
	case s.Slope == 0:
		s.YIntercept = point1.Y
		s.XIntercept = math.NaN()
	default:
		s.YIntercept = point1.Y - s.Slope*point1.X
		s.XIntercept = -s.YIntercept / s.Slope
	}
	return s
}

// Vertical reports whether the segment has infinite slope.
func (s Segment) Vertical() bool {
	return math.IsInf(s.Slope, 0)
}

// Angle returns the direction from Point1 to Point2.
func (s Segment) Angle() float64 {
	return AngleBetween(s.Point1, s.Point2)
}

// Midpoint returns the point halfway along the segment.
func (s Segment) Midpoint() Point {
	return Lerp(s.Point1, s.Point2, 0.5)
}

func (s Segment) String() string {
	return fmt.Sprintf("(%.2f, %.2f)-(%.2f, %.2f)", s.Point1.X, s.Point1.Y, s.Point2.X, s.Point2.Y)
}

// Line is an infinite line in slope/intercept form.
type Line struct {
	Slope      float64
	YIntercept float64
	XIntercept float64
}

// NewLine returns the line through p with the given slope.
func NewLine(p Point, slope float64) Line {
	l := Line{Slope: slope}
	switch {
	case math.IsInf(slope, 0):
		l.YIntercept = math.NaN()
		l.XIntercept = p.X
	case slope == 0:
		l.YIntercept = p.Y
		l.XIntercept = math.NaN()
	default:
		l.YIntercept = p.Y - slope*p.X
		l.XIntercept = -l.YIntercept / slope
	}
	return l
}

// LineFromAngle returns the line through p heading in direction angle.
// Directions within VerticalCosine of straight up or down produce an exactly
// vertical line, since tan() there is finite but useless.
func LineFromAngle(p Point, angle float64) Line {
	if math.Abs(math.Cos(angle)) < VerticalCosine {
		return NewLine(p, math.Inf(1))
	}
	return NewLine(p, AngleToSlope(angle))
}

// Vertical reports whether the line has infinite slope.
func (l Line) Vertical() bool {
	return math.IsInf(l.Slope, 0)
}

// Polygon is an ordered point list joined into segments. Point order is the
// winding order and decides which colour index lands on which edge.
type Polygon struct {
	Points   []Point
	Segments []Segment
	Closed   bool
	Color    color.RGBA
}

// NewPolygon connects consecutive points into segments, adding a closing
// segment from the last point back to the first when closed is true.
// Fewer than two points give no segments; exactly two give one segment
// whatever closed says.
func NewPolygon(points []Point, closed bool) *Polygon {
	pts := make([]Point, len(points))
	copy(pts, points)
	return &Polygon{
		Points:   pts,
		Segments: PointsToSegments(pts, closed),
		Closed:   closed,
		Color:    palette.Black,
	}
}

// PointsToSegments implements the NewPolygon edge rule.
func PointsToSegments(points []Point, closed bool) []Segment {
	last := len(points) - 1
	if last <= 0 {
		return nil
	}
	if last == 1 {
		return []Segment{NewSegment(points[0], points[1])}
	}

	segments := make([]Segment, 0, len(points))
	for i := 0; i < last; i++ {
		segments = append(segments, NewSegment(points[i], points[i+1]))
	}
	if closed {
		segments = append(segments, NewSegment(points[last], points[0]))
	}
	return segments
}

// IsRing reports whether the polygon really encloses an area: it was built
// closed and has at least three points.
func (p *Polygon) IsRing() bool {
	return p.Closed && len(p.Points) >= 3
}

// SetColors assigns one colour per segment, in segment order.
func (p *Polygon) SetColors(colors []color.RGBA) error {
	if len(colors) != len(p.Segments) {
		return fmt.Errorf("%w: got %d colours for %d segments", ErrColorCount, len(colors), len(p.Segments))
	}
	for i, c := range colors {
		p.Segments[i].Color = c
	}
	return nil
}

// Vertices returns the distinct segment endpoints in segment order.
func (p *Polygon) Vertices() []Point {
	seen := make(map[Point]bool, len(p.Points))
	var out []Point
	for _, s := range p.Segments {
		for _, v := range [2]Point{s.Point1, s.Point2} {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Centroid returns the mean of the polygon's points.
func (p *Polygon) Centroid() Point {
	if len(p.Points) == 0 {
		return Point{}
	}
	var c Point
	for _, pt := range p.Points {
		c = c.Add(pt)
	}
	return c.Scale(1 / float64(len(p.Points)))
}

// Area returns the absolute shoelace area of the point loop.
func (p *Polygon) Area() float64 {
	return PolygonArea(p.Points)
}

// PolygonArea returns the absolute shoelace area of a point loop.
func PolygonArea(points []Point) float64 {
	n := len(points)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		a := points[i]
		b := points[(i+1)%n]
		sum += a.X*b.Y - b.X*a.Y
	}
	return math.Abs(sum) / 2
}
