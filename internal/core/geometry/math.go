// Package geometry holds the value types and pure math the sightline engine is
// built on: segments, polygons, line intersection, containment and ray hits.
//
// Nothing here fails. Operations without a geometric answer (parallel lines,
// points off a segment, rays that leave the level) return ok == false.
package geometry

import "math"

// Tolerances used across the engine. Tune them here and nowhere else.
const (
	// SlopeTolerance is the relative difference under which two slopes count
	// as parallel.
	SlopeTolerance = 1e-9

	// OnSegmentTolerance is the absolute slack allowed in the
	// dist(p, a) + dist(p, b) == length test.
	OnSegmentTolerance = 1e-4

	// AngleTolerance decides whether a hit lies in front of a ray origin.
	AngleTolerance = 1e-3

	// VertexStraddle is the angular offset used to sample either side of a
	// wall vertex when raycasting.
	VertexStraddle = 1e-5

	// VerticalCosine is the |cos(angle)| under which a ray is treated as
	// exactly vertical.
	VerticalCosine = 1e-12

	// OnLineDistance is the distance under which a point counts as lying on
	// an infinite line.
	OnLineDistance = 1e-9

	// ContainmentRayAngle is the fixed direction of the point-in-polygon ray.
	// Any direction works; this one avoids the axis and diagonal directions
	// hand-authored levels are made of.
	ContainmentRayAngle = 1.0
)

// NormalizeAngle maps any finite angle into (-π, π].
func NormalizeAngle(angle float64) float64 {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return 0
	}
	if angle > 4*math.Pi || angle < -4*math.Pi {
		angle = math.Mod(angle, 2*math.Pi)
	}
	for angle <= -math.Pi {
		angle += 2 * math.Pi
	}
	for angle > math.Pi {
		angle -= 2 * math.Pi
	}
	return angle
}

// AnglesClose compares two angles on the circle, so values either side of the
// ±π seam are still recognised as close.
func AnglesClose(a, b, tolerance float64) bool {
	diff := math.Abs(a - b)
	if diff < tolerance {
		return true
	}
	return math.Abs(diff-2*math.Pi) < tolerance
}

// AngleToSlope converts a direction into a line slope.
func AngleToSlope(angle float64) float64 {
	return math.Tan(angle)
}

// AngleBetween returns the direction from one point to another.
func AngleBetween(from, to Point) float64 {
	return math.Atan2(to.Y-from.Y, to.X-from.X)
}

// Distance returns the Euclidean distance between two points.
func Distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// TwoPointSlope returns the slope through two points, +Inf when they share an x.
func TwoPointSlope(a, b Point) float64 {
	if a.X == b.X {
		return math.Inf(1)
	}
	return (b.Y - a.Y) / (b.X - a.X)
}

// VectorToDifference converts an (angle, magnitude) vector into a delta point.
func VectorToDifference(angle, magnitude float64) Point {
	return Point{math.Cos(angle) * magnitude, math.Sin(angle) * magnitude}
}

// DifferenceToVector converts a delta point into (angle, magnitude).
func DifferenceToVector(d Point) (angle, magnitude float64) {
	return math.Atan2(d.Y, d.X), math.Hypot(d.X, d.Y)
}

// slopesClose reports whether two slopes describe parallel lines.
func slopesClose(a, b float64) bool {
	if math.IsInf(a, 0) || math.IsInf(b, 0) {
		return math.IsInf(a, 0) && math.IsInf(b, 0)
	}
	if a == b {
		return true
	}
	return math.Abs(a-b) <= SlopeTolerance*math.Max(math.Abs(a), math.Abs(b))
}
