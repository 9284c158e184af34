// Package export renders room layouts to drawings (PDF, SVG, DXF), reports
// (XLSX, QR-coded labels) and GeoJSON.
package export

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomPlan/internal/geom"
	"github.com/piwi3910/RoomPlan/internal/model"
)

// rgb is a fill colour for a category.
type rgb struct {
	R, G, B int
}

// Hex returns the colour as #rrggbb.
func (c rgb) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var categoryColors = [...]rgb{
	model.CategoryFridge:    {R: 33, G: 150, B: 243},  // blue
	model.CategoryIceMaker:  {R: 0, G: 188, B: 212},   // cyan
	model.CategoryShelf:     {R: 121, G: 85, B: 72},   // brown
	model.CategoryOverShelf: {R: 255, G: 152, B: 0},   // orange
	model.CategoryOther:     {R: 158, G: 158, B: 158}, // grey
}

var (
	doorZoneColor  = rgb{R: 255, G: 200, B: 200}
	clearanceColor = rgb{R: 200, G: 230, B: 255}
	doorColor      = rgb{R: 200, G: 0, B: 0}
)

func colorFor(c model.Category) rgb {
	if c < 0 || int(c) >= len(categoryColors) {
		return categoryColors[model.CategoryOther]
	}
	return categoryColors[c]
}

// Title is the heading shared by every drawing.
func Title(res model.Result) string {
	if res.Feasible {
		return fmt.Sprintf("Feasible layout: %d items placed", len(res.Placements))
	}
	return fmt.Sprintf("Infeasible layout: %s (%d placed)", res.Message, len(res.Placements))
}

// frame maps room coordinates (mm, y up) onto a page area (y down).
type frame struct {
	bound   orb.Bound
	scale   float64
	offsetX float64
	offsetY float64
}

// newFrame fits the room and its door zone into a w×h area at (x, y).
func newFrame(room model.Room, res model.Result, x, y, w, h float64) frame {
	b := geom.Bound(room.Boundary)
	if res.DoorZone != nil {
		b = b.Union(geom.Bound(res.DoorZone))
	}

	dx, dy := b.Max[0]-b.Min[0], b.Max[1]-b.Min[1]
	scale := 1.0
	if dx > 0 && dy > 0 {
		scale = math.Min(w/dx, h/dy)
	}

	return frame{
		bound:   b,
		scale:   scale,
		offsetX: x + (w-dx*scale)/2,
		offsetY: y,
	}
}

// Map converts a room point to page coordinates.
func (f frame) Map(p orb.Point) (float64, float64) {
	return f.offsetX + (p[0]-f.bound.Min[0])*f.scale, f.offsetY + (f.bound.Max[1]-p[1])*f.scale
}

// Size returns the scaled drawing extent.
func (f frame) Size() (float64, float64) {
	return (f.bound.Max[0] - f.bound.Min[0]) * f.scale, (f.bound.Max[1] - f.bound.Min[1]) * f.scale
}

// open returns the ring without its closing point.
func open(r orb.Ring) orb.Ring {
	if len(r) > 1 && r[0] == r[len(r)-1] {
		return r[:len(r)-1]
	}
	return r
}
