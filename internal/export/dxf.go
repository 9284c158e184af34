package export

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/piwi3910/RoomPlan/internal/model"
)

// DXF layer names. CAD users toggle these independently.
const (
	LayerBoundary  = "ROOM"
	LayerDoor      = "DOOR"
	LayerDoorZone  = "DOOR_ZONE"
	LayerItems     = "ITEMS"
	LayerClearance = "CLEARANCE"
	LayerLabels    = "LABELS"
)

// ExportDXF writes the layout as a DXF drawing in room coordinates (mm).
// The output round-trips through the DXF room importer: the boundary is a
// closed polyline and the door a LINE on it.
func ExportDXF(path string, room model.Room, res model.Result) error {
	if len(room.Boundary) < 3 {
		return fmt.Errorf("room has no boundary to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(LayerBoundary, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerBoundary, err)
	}
	if err := polyline(d, room.Boundary); err != nil {
		return err
	}

	if room.Door != nil {
		if _, err := d.AddLayer(LayerDoor, color.Red, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", LayerDoor, err)
		}
		a, b := room.Door.Segment.A, room.Door.Segment.B
		if _, err := d.Line(a[0], a[1], 0, b[0], b[1], 0); err != nil {
			return fmt.Errorf("failed to draw door: %w", err)
		}
	}

	if res.DoorZone != nil {
		if _, err := d.AddLayer(LayerDoorZone, color.Red, table.LT_HIDDEN, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", LayerDoorZone, err)
		}
		if err := polyline(d, res.DoorZone); err != nil {
			return err
		}
	}

	if len(res.ClearanceZones) > 0 {
		if _, err := d.AddLayer(LayerClearance, color.Blue, table.LT_HIDDEN, true); err != nil {
			return fmt.Errorf("failed to add layer %s: %w", LayerClearance, err)
		}
		for _, z := range res.ClearanceZones {
			if err := polyline(d, z); err != nil {
				return err
			}
		}
	}

	if _, err := d.AddLayer(LayerItems, color.Green, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerItems, err)
	}
	for _, p := range res.Placements {
		if err := polyline(d, p.Footprint()); err != nil {
			return fmt.Errorf("failed to draw %q: %w", p.Item.Name, err)
		}
	}

	if _, err := d.AddLayer(LayerLabels, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add layer %s: %w", LayerLabels, err)
	}
	for _, p := range res.Placements {
		_, ey := p.Rotation.Extents(p.Item)
		if _, err := d.Text(p.Item.Name, p.Center[0], p.Center[1], 0, ey/8); err != nil {
			return fmt.Errorf("failed to label %q: %w", p.Item.Name, err)
		}
	}

	return d.SaveAs(path)
}

// polyline adds a closed LWPOLYLINE for the ring on the current layer.
func polyline(d *drawing.Drawing, r orb.Ring) error {
	pts := open(r)
	vertices := make([][]float64, len(pts))
	for i, p := range pts {
		vertices[i] = []float64{p[0], p[1]}
	}
	if _, err := d.LwPolyline(true, vertices...); err != nil {
		return fmt.Errorf("failed to draw polyline: %w", err)
	}
	return nil
}
