// Package geom is the planar geometry kernel used by the placement engine.
//
// Polygons are closed orb.Rings (the first point is repeated at the end).
// Every predicate treats a shared edge or vertex as contact, not overlap:
// two rectangles that touch along a side do not intersect, and a rectangle
// lying flush against a wall is still contained in the room.
package geom

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Epsilon is the distance (in mm) below which two coordinates are considered equal.
const Epsilon = 1e-6

// Segment is a straight line segment from A to B.
type Segment struct {
	A orb.Point `json:"a"`
	B orb.Point `json:"b"`
}

// Length returns the Euclidean length of the segment.
func (s Segment) Length() float64 {
	return planar.Distance(s.A, s.B)
}

// Direction returns the unit vector from A to B, or the zero vector for a degenerate segment.
func (s Segment) Direction() orb.Point {
	l := s.Length()
	if l < Epsilon {
		return orb.Point{}
	}
	return orb.Point{(s.B[0] - s.A[0]) / l, (s.B[1] - s.A[1]) / l}
}

// LeftNormal returns the unit normal pointing to the left of A->B.
// For a counter-clockwise ring this is the interior side.
func (s Segment) LeftNormal() orb.Point {
	d := s.Direction()
	return orb.Point{-d[1], d[0]}
}

// At returns the point at distance d from A along the segment.
func (s Segment) At(d float64) orb.Point {
	dir := s.Direction()
	return orb.Point{s.A[0] + dir[0]*d, s.A[1] + dir[1]*d}
}

// Midpoint returns the middle of the segment.
func (s Segment) Midpoint() orb.Point {
	return orb.Point{(s.A[0] + s.B[0]) / 2, (s.A[1] + s.B[1]) / 2}
}

// Close returns a copy of pts as a closed ring.
func Close(pts []orb.Point) orb.Ring {
	r := make(orb.Ring, len(pts), len(pts)+1)
	copy(r, pts)
	if len(r) > 0 && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}

// Box returns the axis-aligned rectangle spanning the given corners, counter-clockwise.
func Box(minX, minY, maxX, maxY float64) orb.Ring {
	return orb.Ring{
		{minX, minY},
		{maxX, minY},
		{maxX, maxY},
		{minX, maxY},
		{minX, minY},
	}
}

// Rectangle builds the footprint of a length x width item centred on center.
// Unrotated, the length runs along x; rotated by 90 degrees the extents swap.
func Rectangle(center orb.Point, length, width float64, rotated bool) orb.Ring {
	hx, hy := length/2, width/2
	if rotated {
		hx, hy = hy, hx
	}
	return Box(center[0]-hx, center[1]-hy, center[0]+hx, center[1]+hy)
}

// Edges returns the ring's edges in order. Open rings are treated as closed.
func Edges(r orb.Ring) []Segment {
	n := len(r)
	if n < 2 {
		return nil
	}
	edges := make([]Segment, 0, n)
	for i := 0; i < n-1; i++ {
		if r[i] == r[i+1] {
			continue
		}
		edges = append(edges, Segment{A: r[i], B: r[i+1]})
	}
	if r[0] != r[n-1] {
		edges = append(edges, Segment{A: r[n-1], B: r[0]})
	}
	return edges
}

// SignedArea returns the shoelace area: positive for counter-clockwise rings.
func SignedArea(r orb.Ring) float64 {
	var sum float64
	for _, e := range Edges(r) {
		sum += e.A[0]*e.B[1] - e.B[0]*e.A[1]
	}
	return sum / 2
}

// Area returns the absolute area enclosed by the ring.
func Area(r orb.Ring) float64 {
	return math.Abs(SignedArea(r))
}

// IsCCW reports whether the ring winds counter-clockwise.
func IsCCW(r orb.Ring) bool {
	return SignedArea(r) > 0
}

// Bound returns the axis-aligned bounding box of the ring.
func Bound(r orb.Ring) orb.Bound {
	return r.Bound()
}

// ContainsPoint reports whether p lies inside the ring or on its boundary.
func ContainsPoint(r orb.Ring, p orb.Point) bool {
	if onBoundary(r, p) {
		return true
	}
	return planar.RingContains(r, p)
}

// strictlyInside reports whether p lies inside the ring and away from its boundary.
func strictlyInside(r orb.Ring, p orb.Point) bool {
	if onBoundary(r, p) {
		return false
	}
	return planar.RingContains(r, p)
}

func onBoundary(r orb.Ring, p orb.Point) bool {
	for _, e := range Edges(r) {
		if planar.DistanceFromSegment(e.A, e.B, p) <= Epsilon {
			return true
		}
	}
	return false
}

// Contains reports whether inner lies entirely within outer. Boundaries may touch.
// outer may be non-convex (e.g. an L-shaped room).
func Contains(outer, inner orb.Ring) bool {
	ob, ib := outer.Bound(), inner.Bound()
	if ib.Min[0] < ob.Min[0]-Epsilon || ib.Min[1] < ob.Min[1]-Epsilon ||
		ib.Max[0] > ob.Max[0]+Epsilon || ib.Max[1] > ob.Max[1]+Epsilon {
		return false
	}

	innerEdges := Edges(inner)
	for _, e := range innerEdges {
		if !ContainsPoint(outer, e.A) || !ContainsPoint(outer, e.Midpoint()) {
			return false
		}
	}

	outerEdges := Edges(outer)
	for _, ie := range innerEdges {
		for _, oe := range outerEdges {
			if segmentsCross(ie, oe) {
				return false
			}
		}
	}

	// A reflex corner of outer poking into inner means inner straddles a notch.
	for _, oe := range outerEdges {
		if strictlyInside(inner, oe.A) {
			return false
		}
	}
	return true
}

// Intersects reports whether the interiors of two convex rings overlap.
// Rings that only share an edge or a vertex do not intersect.
func Intersects(a, b orb.Ring) bool {
	ab, bb := a.Bound(), b.Bound()
	if ab.Max[0] <= bb.Min[0]+Epsilon || bb.Max[0] <= ab.Min[0]+Epsilon ||
		ab.Max[1] <= bb.Min[1]+Epsilon || bb.Max[1] <= ab.Min[1]+Epsilon {
		return false
	}

	for _, ring := range []orb.Ring{a, b} {
		for _, e := range Edges(ring) {
			axis := e.LeftNormal()
			minA, maxA := project(a, axis)
			minB, maxB := project(b, axis)
			if maxA <= minB+Epsilon || maxB <= minA+Epsilon {
				return false
			}
		}
	}
	return true
}

func project(r orb.Ring, axis orb.Point) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range r {
		v := p[0]*axis[0] + p[1]*axis[1]
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}

// Distance returns the shortest distance between the ring (as a filled
// polygon) and the segment. It is zero when they touch or overlap.
func Distance(r orb.Ring, s Segment) float64 {
	if ContainsPoint(r, s.A) || ContainsPoint(r, s.B) {
		return 0
	}
	best := math.Inf(1)
	for _, e := range Edges(r) {
		best = math.Min(best, segmentDistance(e, s))
		if best == 0 {
			return 0
		}
	}
	return best
}

func segmentDistance(a, b Segment) float64 {
	if segmentsIntersect(a, b) {
		return 0
	}
	return math.Min(
		math.Min(planar.DistanceFromSegment(a.A, a.B, b.A), planar.DistanceFromSegment(a.A, a.B, b.B)),
		math.Min(planar.DistanceFromSegment(b.A, b.B, a.A), planar.DistanceFromSegment(b.A, b.B, a.B)),
	)
}

// side returns the signed distance of p from the line through s.
func side(s Segment, p orb.Point) float64 {
	l := s.Length()
	if l < Epsilon {
		return 0
	}
	return ((s.B[0]-s.A[0])*(p[1]-s.A[1]) - (s.B[1]-s.A[1])*(p[0]-s.A[0])) / l
}

// segmentsCross reports a proper crossing: each segment has its endpoints
// strictly on opposite sides of the other.
func segmentsCross(a, b Segment) bool {
	d1, d2 := side(b, a.A), side(b, a.B)
	d3, d4 := side(a, b.A), side(a, b.B)
	return ((d1 > Epsilon && d2 < -Epsilon) || (d1 < -Epsilon && d2 > Epsilon)) &&
		((d3 > Epsilon && d4 < -Epsilon) || (d3 < -Epsilon && d4 > Epsilon))
}

// segmentsIntersect reports any contact between two segments, including touching endpoints.
func segmentsIntersect(a, b Segment) bool {
	if segmentsCross(a, b) {
		return true
	}
	return planar.DistanceFromSegment(b.A, b.B, a.A) <= Epsilon ||
		planar.DistanceFromSegment(b.A, b.B, a.B) <= Epsilon ||
		planar.DistanceFromSegment(a.A, a.B, b.A) <= Epsilon ||
		planar.DistanceFromSegment(a.A, a.B, b.B) <= Epsilon
}

// Buffer expands the segment by d in every direction, producing a
// counter-clockwise capsule. quadSegs is the number of chords per quarter circle.
func Buffer(s Segment, d float64, quadSegs int) orb.Ring {
	if quadSegs < 1 {
		quadSegs = 1
	}
	if s.Length() < Epsilon {
		return circle(s.A, d, 4*quadSegs)
	}

	dir := s.Direction()
	phi := math.Atan2(dir[1], dir[0])
	steps := 2 * quadSegs

	ring := make(orb.Ring, 0, 2*steps+3)
	ring = append(ring, arc(s.B, d, phi-math.Pi/2, steps)...)
	ring = append(ring, arc(s.A, d, phi+math.Pi/2, steps)...)
	return Close(ring)
}

// arc returns steps+1 points on a half circle starting at angle start, turning counter-clockwise.
func arc(c orb.Point, r, start float64, steps int) []orb.Point {
	pts := make([]orb.Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		a := start + math.Pi*float64(i)/float64(steps)
		pts = append(pts, orb.Point{c[0] + r*math.Cos(a), c[1] + r*math.Sin(a)})
	}
	return pts
}

func circle(c orb.Point, r float64, n int) orb.Ring {
	pts := make([]orb.Point, n)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = orb.Point{c[0] + r*math.Cos(a), c[1] + r*math.Sin(a)}
	}
	return Close(pts)
}
