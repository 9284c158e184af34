package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/RoomPlan/internal/geom"
	"github.com/piwi3910/RoomPlan/internal/model"
)

// chainTolerance is the maximum gap (mm) between endpoints that are joined
// into one outline, and between a door endpoint and the boundary.
const chainTolerance = 0.01

// RoomImportResult holds the room read from a DXF drawing.
type RoomImportResult struct {
	Room     model.Room
	Errors   []string
	Warnings []string
}

// segment is a line between two points, used for chaining loose LINE and
// ARC entities into closed outlines.
type segment struct {
	start orb.Point
	end   orb.Point
}

// ImportRoomDXF reads a room from a DXF file. The largest closed shape
// (an LWPOLYLINE or a chain of LINEs/ARCs) becomes the boundary. A LINE whose
// endpoints both lie on that boundary, without being one of its edges, is
// taken as the door. DXF has no notion of swing direction, so the caller
// supplies it.
func ImportRoomDXF(path string, doorOpensInward bool) RoomImportResult {
	result := RoomImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]orb.Point
	var segments []segment
	var lines []geom.Segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline := lwPolylineToOutline(e)
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings, "Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Arc:
			pts := arcToPoints(e, 32)
			if len(pts) >= 2 {
				segments = append(segments, pointsToSegments(pts)...)
			}

		case *entity.Line:
			seg := segment{
				start: orb.Point{e.Start[0], e.Start[1]},
				end:   orb.Point{e.End[0], e.End[1]},
			}
			segments = append(segments, seg)
			lines = append(lines, geom.Segment{A: seg.start, B: seg.end})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	outlines = append(outlines, chainSegments(segments, chainTolerance)...)
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed shapes found in DXF file")
		return result
	}

	sort.SliceStable(outlines, func(i, j int) bool {
		return geom.Area(geom.Close(outlines[i])) > geom.Area(geom.Close(outlines[j]))
	})
	if len(outlines) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d closed shapes, using the largest as the room", len(outlines)))
	}

	boundary := geom.Close(outlines[0])
	if geom.Area(boundary) < chainTolerance {
		result.Errors = append(result.Errors, "Room outline encloses no area")
		return result
	}

	door := findDoor(boundary, lines)
	if door == nil {
		result.Warnings = append(result.Warnings, "No door line found on the room outline")
	} else {
		door.OpensInward = doorOpensInward
	}

	result.Room = model.Room{Boundary: boundary, Door: door}
	return result
}

// findDoor returns the first line lying on the boundary that is not itself a
// boundary edge.
func findDoor(boundary orb.Ring, lines []geom.Segment) *model.Door {
	edges := geom.Edges(boundary)
	for _, l := range lines {
		if l.Length() < chainTolerance || isEdge(l, edges) {
			continue
		}
		if onOutline(l.A, edges) && onOutline(l.B, edges) {
			return &model.Door{Segment: l}
		}
	}
	return nil
}

func isEdge(l geom.Segment, edges []geom.Segment) bool {
	for _, e := range edges {
		if (pointsClose(l.A, e.A, chainTolerance) && pointsClose(l.B, e.B, chainTolerance)) ||
			(pointsClose(l.A, e.B, chainTolerance) && pointsClose(l.B, e.A, chainTolerance)) {
			return true
		}
	}
	return false
}

func onOutline(p orb.Point, edges []geom.Segment) bool {
	for _, e := range edges {
		if planar.DistanceFromSegment(e.A, e.B, p) <= chainTolerance {
			return true
		}
	}
	return false
}

// lwPolylineToOutline converts a DXF LWPOLYLINE entity to an outline.
// Bulge values on vertices produce interpolated arc segments.
func lwPolylineToOutline(lw *entity.LwPolyline) []orb.Point {
	var outline []orb.Point

	for i := 0; i < len(lw.Vertices); i++ {
		v := lw.Vertices[i]
		current := orb.Point{v[0], v[1]}

		bulge := 0.0
		if i < len(lw.Bulges) {
			bulge = lw.Bulges[i]
		}

		if math.Abs(bulge) > 1e-9 {
			nextIdx := (i + 1) % len(lw.Vertices)
			next := orb.Point{lw.Vertices[nextIdx][0], lw.Vertices[nextIdx][1]}
			arcPts := bulgeArcPoints(current, next, bulge, 32)
			// The next vertex is added by the following iteration.
			outline = append(outline, arcPts[:len(arcPts)-1]...)
		} else {
			outline = append(outline, current)
		}
	}

	return outline
}

// bulgeArcPoints generates points along an arc defined by two endpoints and a
// DXF bulge factor. The bulge is the tangent of 1/4 the included angle.
func bulgeArcPoints(p1, p2 orb.Point, bulge float64, numSegments int) []orb.Point {
	mx := (p1[0] + p2[0]) / 2
	my := (p1[1] + p2[1]) / 2
	dx := p2[0] - p1[0]
	dy := p2[1] - p1[1]
	chordLen := math.Hypot(dx, dy)
	if chordLen < 1e-9 {
		return []orb.Point{p1, p2}
	}

	sagitta := math.Abs(bulge) * chordLen / 2
	radius := (chordLen*chordLen/(4*sagitta) + sagitta) / 2

	perpX := -dy / chordLen
	perpY := dx / chordLen
	dist := radius - sagitta
	if bulge > 0 {
		perpX, perpY = -perpX, -perpY
	}
	cx := mx + perpX*dist
	cy := my + perpY*dist

	startAngle := math.Atan2(p1[1]-cy, p1[0]-cx)
	endAngle := math.Atan2(p2[1]-cy, p2[0]-cx)

	if bulge < 0 {
		if endAngle > startAngle {
			endAngle -= 2 * math.Pi
		}
	} else if endAngle < startAngle {
		endAngle += 2 * math.Pi
	}

	pts := make([]orb.Point, 0, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startAngle + t*(endAngle-startAngle)
		pts = append(pts, orb.Point{cx + radius*math.Cos(angle), cy + radius*math.Sin(angle)})
	}
	return pts
}

// arcToPoints converts a DXF ARC entity to a series of line points.
func arcToPoints(a *entity.Arc, numSegments int) []orb.Point {
	cx, cy := a.Circle.Center[0], a.Circle.Center[1]
	r := a.Circle.Radius

	startRad := a.Angle[0] * math.Pi / 180
	endRad := a.Angle[1] * math.Pi / 180
	if endRad <= startRad {
		endRad += 2 * math.Pi
	}

	pts := make([]orb.Point, numSegments+1)
	for i := 0; i <= numSegments; i++ {
		t := float64(i) / float64(numSegments)
		angle := startRad + t*(endRad-startRad)
		pts[i] = orb.Point{cx + r*math.Cos(angle), cy + r*math.Sin(angle)}
	}
	return pts
}

// pointsToSegments converts a point sequence to a slice of connected segments.
func pointsToSegments(pts []orb.Point) []segment {
	segs := make([]segment, 0, len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		segs = append(segs, segment{start: pts[i], end: pts[i+1]})
	}
	return segs
}

// chainSegments connects individual segments into closed outlines. Chains
// that do not close (such as a lone door line) are dropped.
func chainSegments(segs []segment, tolerance float64) [][]orb.Point {
	if len(segs) == 0 {
		return nil
	}

	used := make([]bool, len(segs))
	var outlines [][]orb.Point

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []orb.Point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			outlines = append(outlines, chain[:len(chain)-1])
		}
	}

	return outlines
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b orb.Point, tolerance float64) bool {
	return planar.Distance(a, b) <= tolerance
}
