package export

import (
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/piwi3910/RoomPlan/internal/model"
)

// Feature kinds stored in the "kind" property.
const (
	KindRoom      = "room"
	KindDoor      = "door"
	KindDoorZone  = "doorZone"
	KindItem      = "item"
	KindClearance = "clearance"
)

// FeatureCollection builds a GeoJSON view of the layout in room coordinates.
// Items carry their name, category, center and rotation as properties.
func FeatureCollection(room model.Room, res model.Result) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	roomFeature := geojson.NewFeature(orb.Polygon{room.Boundary})
	roomFeature.Properties["kind"] = KindRoom
	roomFeature.Properties["area"] = room.Area()
	roomFeature.Properties["feasible"] = res.Feasible
	if res.Message != "" {
		roomFeature.Properties["message"] = res.Message
	}
	fc.Append(roomFeature)

	if room.Door != nil {
		door := geojson.NewFeature(orb.LineString{room.Door.Segment.A, room.Door.Segment.B})
		door.Properties["kind"] = KindDoor
		door.Properties["opensInward"] = room.Door.OpensInward
		door.Properties["width"] = room.Door.Width()
		fc.Append(door)
	}

	if res.DoorZone != nil {
		zone := geojson.NewFeature(orb.Polygon{res.DoorZone})
		zone.Properties["kind"] = KindDoorZone
		fc.Append(zone)
	}

	for i, p := range res.Placements {
		f := geojson.NewFeature(orb.Polygon{p.Footprint()})
		f.ID = p.Item.Name
		f.Properties["kind"] = KindItem
		f.Properties["order"] = i + 1
		f.Properties["name"] = p.Item.Name
		f.Properties["category"] = p.Item.Category.String()
		f.Properties["center"] = []float64{p.Center[0], p.Center[1]}
		f.Properties["rotation"] = int(p.Rotation)
		fc.Append(f)
	}

	for _, z := range res.ClearanceZones {
		f := geojson.NewFeature(orb.Polygon{z})
		f.Properties["kind"] = KindClearance
		fc.Append(f)
	}

	return fc
}

// ExportGeoJSON writes the layout feature collection to path.
func ExportGeoJSON(path string, room model.Room, res model.Result) error {
	data, err := FeatureCollection(room, res).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode GeoJSON: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write GeoJSON: %w", err)
	}
	return nil
}
