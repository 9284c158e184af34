package engine

import (
	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomPlan/internal/geom"
	"github.com/piwi3910/RoomPlan/internal/model"
)

// Reason is the first constraint a candidate footprint violates.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonBoundary
	ReasonDoor
	ReasonOccupied
	ReasonClearance
)

func (r Reason) String() string {
	switch r {
	case ReasonBoundary:
		return "outside boundary"
	case ReasonDoor:
		return "blocks door"
	case ReasonOccupied:
		return "overlaps item"
	case ReasonClearance:
		return "in clearance zone"
	default:
		return "valid"
	}
}

// layout is the occupancy state of one solve. Footprints and clearance
// zones are only appended between items, never while candidates are
// being evaluated.
type layout struct {
	room       model.Room
	doorZone   orb.Ring
	footprints []orb.Ring
	clearance  []orb.Ring
}

func newLayout(room model.Room, settings model.Settings) *layout {
	return &layout{room: room, doorZone: DoorZone(room, settings)}
}

// check tests rect against the boundary, the door zone, placed footprints
// and clearance zones, in that order. Touching edges are allowed.
func (l *layout) check(rect orb.Ring) Reason {
	if !geom.Contains(l.room.Boundary, rect) {
		return ReasonBoundary
	}
	if l.doorZone != nil && geom.Intersects(rect, l.doorZone) {
		return ReasonDoor
	}
	for _, f := range l.footprints {
		if geom.Intersects(rect, f) {
			return ReasonOccupied
		}
	}
	for _, z := range l.clearance {
		if geom.Intersects(rect, z) {
			return ReasonClearance
		}
	}
	return ReasonNone
}

func (l *layout) commit(p model.Placement, settings model.Settings) {
	l.footprints = append(l.footprints, p.Footprint())
	if zone := ClearanceZone(p, settings); zone != nil {
		l.clearance = append(l.clearance, zone)
	}
}

func tally(rej *model.Rejections, r Reason) {
	switch r {
	case ReasonBoundary:
		rej.Boundary++
	case ReasonDoor:
		rej.Door++
	case ReasonOccupied:
		rej.Occupied++
	case ReasonClearance:
		rej.Clearance++
	}
}
