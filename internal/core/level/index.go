package level

import (
	"errors"
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"chosenoffset.com/sightline/internal/core/geometry"
)

// rectPadding keeps axis-aligned segments from producing zero-width rectangles,
// which the tree rejects.
const rectPadding = 0.005

var errNonFinite = errors.New("segment has non-finite coordinates")

// Contact is a boundary segment crossed by a move.
type Contact struct {
	Segment  *geometry.Segment
	Point    geometry.Point
	Distance float64
}

// boundaryItem wraps a boundary segment for the R-tree.
type boundaryItem struct {
	segment *geometry.Segment
	rect    rtreego.Rect
}

func (b *boundaryItem) Bounds() rtreego.Rect {
	return b.rect
}

func segmentRect(a, b geometry.Point) (rtreego.Rect, error) {
	for _, v := range [4]float64{a.X, a.Y, b.X, b.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return rtreego.Rect{}, errNonFinite
		}
	}
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return rtreego.NewRect(
		rtreego.Point{minX - rectPadding, minY - rectPadding},
		[]float64{maxX - minX + 2*rectPadding, maxY - minY + 2*rectPadding},
	)
}

// buildIndex inserts every boundary segment into a 2D R-tree. Segments with
// non-finite coordinates are left out; they could never be crossed anyway.
func buildIndex(segments []geometry.Segment) *rtreego.Rtree {
	spatials := make([]rtreego.Spatial, 0, len(segments))
	for i := range segments {
		rect, err := segmentRect(segments[i].Point1, segments[i].Point2)
		if err != nil {
			continue
		}
		spatials = append(spatials, &boundaryItem{segment: &segments[i], rect: rect})
	}
	return rtreego.NewTree(2, 25, 50, spatials...)
}

// BoundaryHits returns every boundary segment the move crosses, nearest
// crossing first.
func (l *Level) BoundaryHits(move geometry.Segment) []Contact {
	if l.index == nil {
		return nil
	}
	bb, err := segmentRect(move.Point1, move.Point2)
	if err != nil {
		return nil
	}

	var contacts []Contact
	for _, spatial := range l.index.SearchIntersect(bb) {
		item := spatial.(*boundaryItem)
		p, ok := geometry.SegmentIntersection(move, *item.segment)
		if !ok {
			continue
		}
		contacts = append(contacts, Contact{
			Segment:  item.segment,
			Point:    p,
			Distance: geometry.Distance(move.Point1, p),
		})
	}
	sort.SliceStable(contacts, func(i, j int) bool {
		return contacts[i].Distance < contacts[j].Distance
	})
	return contacts
}

// Collides reports whether the move crosses any boundary segment.
func (l *Level) Collides(move geometry.Segment) bool {
	return len(l.BoundaryHits(move)) > 0
}
