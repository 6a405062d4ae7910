package geometry

import "math"

// Hit is the result of a ray query against a set of walls.
type Hit struct {
	Segment  *Segment
	Point    Point
	Distance float64
	Angle    float64
}

// OnSegment reports whether point lies on segment, using the additive
// distance test dist(p, a) + dist(p, b) ≈ length. It needs no branching on
// slope sign or verticality.
func OnSegment(point Point, segment Segment) bool {
	sum := Distance(point, segment.Point1) + Distance(point, segment.Point2)
	return math.Abs(sum-segment.Length) <= OnSegmentTolerance
}

// solveLines intersects two infinite lines given in slope/intercept form.
// xi is only read for vertical lines.
func solveLines(m1, b1, xi1, m2, b2, xi2 float64) (Point, bool) {
	if slopesClose(m1, m2) {
		return Point{}, false
	}

	var x, y float64
	switch {
	case math.IsInf(m1, 0):
		x = xi1
		y = m2*x + b2
	case math.IsInf(m2, 0):
		x = xi2
		y = m1*x + b1
	default:
		x = (b2 - b1) / (m1 - m2)
		// Evaluate on the shallower line: steep lines carry huge intercepts.
		if math.Abs(m1) <= math.Abs(m2) {
			y = m1*x + b1
		} else {
			y = m2*x + b2
		}
	}

	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return Point{}, false
	}
	return Point{x, y}, true
}

// LineSegmentIntersection intersects an infinite line with a finite segment.
// Parallel lines, including identical ones, have no result.
func LineSegmentIntersection(line Line, segment Segment) (Point, bool) {
	p, ok := solveLines(line.Slope, line.YIntercept, line.XIntercept,
		segment.Slope, segment.YIntercept, segment.XIntercept)
	if !ok || !OnSegment(p, segment) {
		return Point{}, false
	}
	return p, true
}

// SegmentExtendedIntersection intersects the infinite lines through two
// segments, whether or not the point lies on either of them.
func SegmentExtendedIntersection(s1, s2 Segment) (Point, bool) {
	return solveLines(s1.Slope, s1.YIntercept, s1.XIntercept,
		s2.Slope, s2.YIntercept, s2.XIntercept)
}

// SegmentIntersection returns the point where two finite segments cross.
func SegmentIntersection(s1, s2 Segment) (Point, bool) {
	p, ok := SegmentExtendedIntersection(s1, s2)
	if !ok || !OnSegment(p, s1) || !OnSegment(p, s2) {
		return Point{}, false
	}
	return p, true
}

// SegmentsCollide reports whether two finite segments cross.
func SegmentsCollide(s1, s2 Segment) bool {
	_, ok := SegmentIntersection(s1, s2)
	return ok
}

// ClosestPointOnLine projects p onto the infinite line through segment.
// It returns false when p already lies on that line.
func ClosestPointOnLine(p Point, segment Segment) (Point, bool) {
	d := segment.Point2.Sub(segment.Point1)
	lengthSq := d.X*d.X + d.Y*d.Y
	if lengthSq == 0 {
		if Distance(p, segment.Point1) < OnLineDistance {
			return Point{}, false
		}
		return segment.Point1, true
	}
	t := ((p.X-segment.Point1.X)*d.X + (p.Y-segment.Point1.Y)*d.Y) / lengthSq
	q := segment.Point1.Add(d.Scale(t))
	if Distance(p, q) < OnLineDistance {
		return Point{}, false
	}
	return q, true
}

// DistanceToSegment returns the shortest distance from p to the finite segment.
func DistanceToSegment(p Point, segment Segment) float64 {
	d := segment.Point2.Sub(segment.Point1)
	lengthSq := d.X*d.X + d.Y*d.Y
	if lengthSq == 0 {
		return Distance(p, segment.Point1)
	}
	t := ((p.X-segment.Point1.X)*d.X + (p.Y-segment.Point1.Y)*d.Y) / lengthSq
	t = math.Max(0, math.Min(1, t))
	return Distance(p, segment.Point1.Add(d.Scale(t)))
}

// cross returns the z component of a × b.
func cross(a, b Point) float64 {
	return a.X*b.Y - a.Y*b.X
}

// PointInPolygon tests containment with an even-odd ray cast along
// ContainmentRayAngle. Only crossings in front of point are counted. A crossing
// at a segment endpoint counts only when the segment's other endpoint lies on
// the positive side of the ray, so a vertex the ray passes through is counted
// once. Points exactly on the boundary get no guaranteed answer.
func PointInPolygon(point Point, polygon *Polygon) bool {
	if polygon == nil {
		return false
	}

	line := LineFromAngle(point, ContainmentRayAngle)
	dir := VectorToDifference(ContainmentRayAngle, 1)

	crossings := 0
	for _, seg := range polygon.Segments {
		hit, ok := LineSegmentIntersection(line, seg)
		if !ok {
			continue
		}
		if !AnglesClose(AngleBetween(point, hit), ContainmentRayAngle, AngleTolerance) {
			continue
		}

		var other Point
		switch {
		case Distance(hit, seg.Point1) <= OnSegmentTolerance:
			other = seg.Point2
		case Distance(hit, seg.Point2) <= OnSegmentTolerance:
			other = seg.Point1
		default:
			crossings++
			continue
		}
		if cross(dir, other.Sub(point)) > 0 {
			crossings++
		}
	}
	return crossings%2 == 1
}

// ClosestWallHit casts a ray from position in direction angle and returns the
// nearest wall segment it meets. ok is false when the ray leaves the level.
func ClosestWallHit(position Point, polygons []*Polygon, angle float64) (Hit, bool) {
	return wallHit(position, polygons, angle, true)
}

// FarthestWallHit is ClosestWallHit selecting the most distant wall instead.
func FarthestWallHit(position Point, polygons []*Polygon, angle float64) (Hit, bool) {
	return wallHit(position, polygons, angle, false)
}

func wallHit(position Point, polygons []*Polygon, angle float64, closest bool) (Hit, bool) {
	angle = NormalizeAngle(angle)
	line := LineFromAngle(position, angle)

	var best Hit
	found := false
	for _, poly := range polygons {
		if poly == nil {
			continue
		}
		for i := range poly.Segments {
			seg := &poly.Segments[i]
			p, ok := LineSegmentIntersection(line, *seg)
			if !ok {
				continue
			}
			d := Distance(position, p)
			if found {
				if closest && d >= best.Distance {
					continue
				}
				if !closest && d <= best.Distance {
					continue
				}
			}
			// The line runs both ways; keep only hits in front of the origin.
			if !AnglesClose(angle, AngleBetween(position, p), AngleTolerance) {
				continue
			}
			best = Hit{Segment: seg, Point: p, Distance: d, Angle: angle}
			found = true
		}
	}
	return best, found
}
