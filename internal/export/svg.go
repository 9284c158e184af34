package export

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomPlan/internal/model"
)

const (
	svgDrawWidth  = 1000
	svgDrawHeight = 700
	svgMargin     = 40
	svgTitleSpace = 30
	svgLegendRow  = 30
)

// WriteSVG renders the layout drawing as SVG.
func WriteSVG(w io.Writer, room model.Room, res model.Result) error {
	if len(room.Boundary) < 3 {
		return fmt.Errorf("room has no boundary to draw")
	}

	f := newFrame(room, res, svgMargin, svgMargin+svgTitleSpace, svgDrawWidth, svgDrawHeight)
	canvasW, canvasH := f.Size()
	width := svgDrawWidth + 2*svgMargin
	height := int(math.Ceil(canvasH)) + 2*svgMargin + svgTitleSpace + svgLegendRow

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	titleColor := "#000"
	if !res.Feasible {
		titleColor = "#c00"
	}
	canvas.Text(svgMargin, svgMargin, Title(res), "font-family:Helvetica,Arial;font-size:18px;font-weight:bold;fill:"+titleColor)

	polygon(canvas, f, room.Boundary, "fill:#f5f0e6;stroke:#3c3c3c;stroke-width:2")
	if res.DoorZone != nil {
		polygon(canvas, f, res.DoorZone, "fill:"+doorZoneColor.Hex()+";fill-opacity:0.5;stroke:#c00;stroke-width:0.5;stroke-dasharray:4,2")
	}
	for _, z := range res.ClearanceZones {
		polygon(canvas, f, z, "fill:"+clearanceColor.Hex()+";fill-opacity:0.5;stroke:#2196f3;stroke-width:0.5;stroke-dasharray:4,2")
	}

	if room.Door != nil {
		ax, ay := f.Map(room.Door.Segment.A)
		bx, by := f.Map(room.Door.Segment.B)
		canvas.Line(round(ax), round(ay), round(bx), round(by), "stroke:"+doorColor.Hex()+";stroke-width:4")
	}

	for _, p := range res.Placements {
		col := colorFor(p.Item.Category)
		polygon(canvas, f, p.Footprint(), "fill:"+col.Hex()+";stroke:#1e1e1e;stroke-width:1")

		ex, ey := p.Rotation.Extents(p.Item)
		if ex*f.scale > 40 && ey*f.scale > 14 {
			cx, cy := f.Map(p.Center)
			canvas.Text(round(cx), round(cy)+4, p.Item.Name, "text-anchor:middle;font-family:Helvetica,Arial;font-size:11px;fill:#000")
		}
	}

	// Width annotation below the room
	y := round(f.offsetY+canvasH) + 16
	canvas.Text(round(f.offsetX+canvasW/2), y, fmt.Sprintf("%.0f mm", f.bound.Max[0]-f.bound.Min[0]),
		"text-anchor:middle;font-size:10px;fill:#666")

	x := svgMargin
	y += svgLegendRow / 2
	for _, c := range model.Categories {
		canvas.Rect(x, y-9, 10, 10, "fill:"+colorFor(c).Hex())
		canvas.Text(x+14, y, c.String(), "font-size:10px;fill:#333")
		x += 90
	}

	canvas.End()
	return nil
}

// ExportSVG writes the layout drawing to an SVG file.
func ExportSVG(path string, room model.Room, res model.Result) error {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, room, res); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write SVG: %w", err)
	}
	return nil
}

func polygon(canvas *svg.SVG, f frame, r orb.Ring, style string) {
	pts := open(r)
	xs := make([]int, len(pts))
	ys := make([]int, len(pts))
	for i, p := range pts {
		x, y := f.Map(p)
		xs[i], ys[i] = round(x), round(y)
	}
	canvas.Polygon(xs, ys, style)
}

func round(v float64) int {
	return int(math.Round(v))
}
