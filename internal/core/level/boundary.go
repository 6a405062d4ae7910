package level

import (
	"math"

	"chosenoffset.com/sightline/internal/core/geometry"
)

// PieceKind identifies how a boundary piece was produced
type PieceKind int

const (
	// Ring is one side of a closed wall, mitred at every corner
	Ring PieceKind = iota
	// Strip is one side of an open wall, left unjoined at both ends
	Strip
	// Cap closes the end of an open wall with a three-point fan
	Cap
)

func (k PieceKind) String() string {
	switch k {
	case Ring:
		return "ring"
	case Strip:
		return "strip"
	case Cap:
		return "cap"
	}
	return "unknown"
}

// Piece is a connected run of boundary segments
type Piece struct {
	Kind     PieceKind
	Segments []geometry.Segment
}

// Boundary is the clearance-buffered copy of a level's visual walls. It only
// ever blocks movement; nothing reads its colours.
type Boundary struct {
	Pieces []Piece
}

// Segments flattens every piece into one list.
func (b Boundary) Segments() []geometry.Segment {
	var out []geometry.Segment
	for _, p := range b.Pieces {
		out = append(out, p.Segments...)
	}
	return out
}

// Count returns how many pieces of the given kind the boundary holds.
func (b Boundary) Count(kind PieceKind) int {
	n := 0
	for _, p := range b.Pieces {
		if p.Kind == kind {
			n++
		}
	}
	return n
}

// BuildBoundary offsets every wall by clearance on both of its sides.
// Closed polygons give two mitred rings. Open polylines give two strips and a
// cap at each end.
func BuildBoundary(polygons []*geometry.Polygon, clearance float64) Boundary {
	var b Boundary
	for _, poly := range polygons {
		if poly == nil {
			continue
		}

		// Step 1: drop zero-length edges, they have no normal
		edges := make([]geometry.Segment, 0, len(poly.Segments))
		for _, s := range poly.Segments {
			if s.Length > 0 {
				edges = append(edges, s)
			}
		}
		if len(edges) == 0 {
			continue
		}

		// Step 2: one loop or strip per side
		ring := poly.Closed && len(edges) >= 3
		for _, side := range [2]float64{1, -1} {
			offsets := offsetEdges(edges, side*clearance)
			if ring {
				b.Pieces = append(b.Pieces, Piece{Kind: Ring, Segments: mitreRing(offsets)})
			} else {
				b.Pieces = append(b.Pieces, Piece{Kind: Strip, Segments: mitreStrip(offsets)})
			}
		}

		// Step 3: cap the two loose ends of an open wall
		if !ring {
			first := edges[0]
			last := edges[len(edges)-1]
			b.Pieces = append(b.Pieces,
				Piece{Kind: Cap, Segments: capFan(first.Point1, first.Angle()+math.Pi, clearance)},
				Piece{Kind: Cap, Segments: capFan(last.Point2, last.Angle(), clearance)},
			)
		}
	}
	return b
}

// normal returns the unit vector 90° counter-clockwise from the edge direction.
func normal(s geometry.Segment) geometry.Point {
	d := s.Point2.Sub(s.Point1)
	return geometry.Point{X: -d.Y, Y: d.X}.Scale(1 / s.Length)
}

func offsetEdges(edges []geometry.Segment, distance float64) []geometry.Segment {
	out := make([]geometry.Segment, len(edges))
	for i, e := range edges {
		shift := normal(e).Scale(distance)
		out[i] = geometry.NewSegment(e.Point1.Add(shift), e.Point2.Add(shift))
	}
	return out
}

// corner joins two consecutive offset edges at the crossing of their lines.
// Parallel neighbours have no crossing and keep the second edge's start.
func corner(prev, next geometry.Segment) geometry.Point {
	if p, ok := geometry.SegmentExtendedIntersection(prev, next); ok {
		return p
	}
	return next.Point1
}

func mitreRing(offsets []geometry.Segment) []geometry.Segment {
	n := len(offsets)
	points := make([]geometry.Point, n)
	for i := range offsets {
		points[i] = corner(offsets[(i+n-1)%n], offsets[i])
	}
	return geometry.PointsToSegments(points, true)
}

func mitreStrip(offsets []geometry.Segment) []geometry.Segment {
	n := len(offsets)
	points := make([]geometry.Point, 0, n+1)
	points = append(points, offsets[0].Point1)
	for i := 1; i < n; i++ {
		points = append(points, corner(offsets[i-1], offsets[i]))
	}
	points = append(points, offsets[n-1].Point2)
	return geometry.PointsToSegments(points, false)
}

// capFan returns the two segments joining the points at distance clearance
// from end in directions outward-90°, outward and outward+90°.
func capFan(end geometry.Point, outward, clearance float64) []geometry.Segment {
	points := []geometry.Point{
		end.Add(geometry.VectorToDifference(outward-math.Pi/2, clearance)),
		end.Add(geometry.VectorToDifference(outward, clearance)),
		end.Add(geometry.VectorToDifference(outward+math.Pi/2, clearance)),
	}
	return geometry.PointsToSegments(points, false)
}
