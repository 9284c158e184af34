package engine

import (
	"math"

	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomPlan/internal/geom"
	"github.com/piwi3910/RoomPlan/internal/model"
)

// Source tells which sampling strategy produced a candidate.
type Source int

const (
	SourceWall Source = iota
	SourceGrid
)

func (s Source) String() string {
	if s == SourceGrid {
		return "grid"
	}
	return "wall"
}

// Candidate is a proposed center and rotation for one item.
type Candidate struct {
	Center   orb.Point
	Rotation model.Rotation
	Source   Source
}

// Candidates returns every position tried for item: wall samples in
// boundary order followed by the interior grid. The order is stable so
// that first-seen tie breaking is reproducible.
func Candidates(room model.Room, item model.Item, settings model.Settings) []Candidate {
	return append(WallCandidates(room, item, settings), GridCandidates(room, settings)...)
}

// wallStride is the distance between samples along a wall: dense on short
// walls, capped on long ones.
func wallStride(length float64, settings model.Settings) float64 {
	return math.Max(settings.MinWallStride, math.Min(settings.WallStrideCap, length/settings.WallSubdivisions))
}

// WallCandidates samples positions flush against each wall. The sample
// point is the footprint's center along the wall; the center is pushed
// into the room by half the footprint's thickness across the wall.
// Samples whose footprint would overhang either end of the wall are skipped.
func WallCandidates(room model.Room, item model.Item, settings model.Settings) []Candidate {
	// Left normals point inward on a counter-clockwise boundary.
	inward := 1.0
	if !geom.IsCCW(room.Boundary) {
		inward = -1.0
	}

	var out []Candidate
	for _, wall := range room.Walls() {
		length := wall.Length()
		if length < geom.Epsilon {
			continue
		}
		dir := wall.Direction()
		n := wall.LeftNormal()
		n = orb.Point{n[0] * inward, n[1] * inward}
		stride := wallStride(length, settings)

		for i := 0; ; i++ {
			d := float64(i) * stride
			if d >= length {
				break
			}
			at := wall.At(d)
			for _, rot := range model.Rotations {
				ex, ey := rot.Extents(item)
				along := (math.Abs(dir[0])*ex + math.Abs(dir[1])*ey) / 2
				if d+along > length+geom.Epsilon || d-along < -geom.Epsilon {
					continue
				}
				offset := (math.Abs(n[0])*ex + math.Abs(n[1])*ey) / 2
				out = append(out, Candidate{
					Center:   orb.Point{at[0] + n[0]*offset, at[1] + n[1]*offset},
					Rotation: rot,
					Source:   SourceWall,
				})
			}
		}
	}
	return out
}

// GridCandidates returns both rotations at every grid point inside the
// room, scanning x-major over the bounding box with GridSpacing steps.
func GridCandidates(room model.Room, settings model.Settings) []Candidate {
	b := room.Bound()
	step := settings.GridSpacing

	var out []Candidate
	for i := 0; ; i++ {
		x := b.Min[0] + float64(i)*step
		if x >= b.Max[0] {
			break
		}
		for j := 0; ; j++ {
			y := b.Min[1] + float64(j)*step
			if y >= b.Max[1] {
				break
			}
			p := orb.Point{x, y}
			if !geom.ContainsPoint(room.Boundary, p) {
				continue
			}
			for _, rot := range model.Rotations {
				out = append(out, Candidate{Center: p, Rotation: rot, Source: SourceGrid})
			}
		}
	}
	return out
}
