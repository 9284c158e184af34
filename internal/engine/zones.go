package engine

import (
	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomPlan/internal/geom"
	"github.com/piwi3910/RoomPlan/internal/model"
)

// DoorZone returns the floor area that must stay free for the door, or nil
// when the room has no door.
//
// An inward door sweeps a square of side equal to its width on the room
// side of the opening. An outward door only needs the opening itself kept
// clear, so the door line is buffered by OutwardDoorClearance.
func DoorZone(room model.Room, settings model.Settings) orb.Ring {
	door := room.Door
	if door.IsZero() {
		return nil
	}
	if !door.OpensInward {
		return geom.Buffer(door.Segment, settings.OutwardDoorClearance, settings.BufferSegments)
	}
	return swingSquare(room.Boundary, door.Segment)
}

// swingSquare builds the door square on whichever side of the segment lies
// inside the boundary. If neither side probes inside (door not on the
// boundary), the left side of the segment is used.
func swingSquare(boundary orb.Ring, door geom.Segment) orb.Ring {
	w := door.Length()
	n := door.LeftNormal()
	mid := door.Midpoint()

	inside := func(n orb.Point) bool {
		return geom.ContainsPoint(boundary, orb.Point{mid[0] + n[0]*w/2, mid[1] + n[1]*w/2})
	}
	if flipped := (orb.Point{-n[0], -n[1]}); !inside(n) && inside(flipped) {
		n = flipped
	}

	a, b := door.A, door.B
	ring := geom.Close([]orb.Point{
		a,
		b,
		{b[0] + n[0]*w, b[1] + n[1]*w},
		{a[0] + n[0]*w, a[1] + n[1]*w},
	})
	if !geom.IsCCW(ring) {
		ring.Reverse()
	}
	return ring
}

// ClearanceZone returns the access area in front of a placed item, or nil
// when the item's category needs none. The zone is flush against the +x side
// of an unrotated footprint and turns with the item, so a 90 degree
// placement keeps its zone on the +y side. Its depth is
// ClearanceDepthFactor times the item width.
func ClearanceZone(p model.Placement, settings model.Settings) orb.Ring {
	if !p.Item.Category.Traits().Clearance {
		return nil
	}
	depth := settings.ClearanceDepthFactor * p.Item.Width
	ex, ey := p.Rotation.Extents(p.Item)
	cx, cy := p.Center[0], p.Center[1]

	if p.Rotation.Rotated() {
		return geom.Box(cx-ex/2, cy+ey/2, cx+ex/2, cy+ey/2+depth)
	}
	return geom.Box(cx+ex/2, cy-ey/2, cx+ex/2+depth, cy+ey/2)
}
