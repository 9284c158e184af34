package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
	"github.com/paulmach/orb"

	"github.com/piwi3910/RoomPlan/internal/model"
)

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	legendHeight = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF writes the layout drawing on the first page and a summary page
// with statistics, placements and settings after it.
func ExportPDF(path string, room model.Room, res model.Result, settings model.Settings) error {
	if len(room.Boundary) < 3 {
		return fmt.Errorf("room has no boundary to draw")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, room, res)

	pdf.AddPage()
	renderSummaryPage(pdf, room, res, settings)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the room, its zones and the placed items.
func renderLayoutPage(pdf *fpdf.Fpdf, room model.Room, res model.Result) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	if !res.Feasible {
		pdf.SetTextColor(200, 0, 0)
	}
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, Title(res), "", 0, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Room area: %.2f m² | Occupied: %.2f m² | Utilization: %.1f%% | Touching walls: %d",
		res.Stats.RoomArea/1e6, res.Stats.OccupiedArea/1e6, res.Stats.Utilization(), res.Stats.WallTouching)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - legendHeight
	f := newFrame(room, res, marginLeft, drawAreaTop, drawWidth, drawHeight)

	// Room floor
	pdf.SetFillColor(245, 240, 230)
	pdf.SetDrawColor(60, 60, 60)
	pdf.SetLineWidth(0.6)
	drawRing(pdf, f, room.Boundary, "FD")

	// Door zone and clearance zones are translucent so overlaps stay visible.
	pdf.SetAlpha(0.5, "Normal")
	if res.DoorZone != nil {
		pdf.SetFillColor(doorZoneColor.R, doorZoneColor.G, doorZoneColor.B)
		pdf.SetDrawColor(200, 0, 0)
		pdf.SetLineWidth(0.2)
		drawRing(pdf, f, res.DoorZone, "FD")
	}
	for _, z := range res.ClearanceZones {
		pdf.SetFillColor(clearanceColor.R, clearanceColor.G, clearanceColor.B)
		pdf.SetDrawColor(33, 150, 243)
		pdf.SetLineWidth(0.2)
		drawRing(pdf, f, z, "FD")
	}
	pdf.SetAlpha(1, "Normal")

	if room.Door != nil {
		pdf.SetDrawColor(doorColor.R, doorColor.G, doorColor.B)
		pdf.SetLineWidth(1.2)
		ax, ay := f.Map(room.Door.Segment.A)
		bx, by := f.Map(room.Door.Segment.B)
		pdf.Line(ax, ay, bx, by)
	}

	for _, p := range res.Placements {
		col := colorFor(p.Item.Category)
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		drawRing(pdf, f, p.Footprint(), "FD")

		ex, ey := p.Rotation.Extents(p.Item)
		pw, ph := ex*f.scale, ey*f.scale
		if pw > 12 && ph > 6 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)
			cx, cy := f.Map(p.Center)
			label := p.Item.Name
			labelW := pdf.GetStringWidth(label)
			if labelW < pw-2 {
				pdf.SetXY(cx-labelW/2, cy-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	canvasW, canvasH := f.Size()
	drawDimensionAnnotations(pdf, f.bound, f.offsetX, f.offsetY, canvasW, canvasH)
	drawCategoryLegend(pdf, f.offsetY+canvasH+6)
}

// drawRing fills and/or strokes a ring in room coordinates.
func drawRing(pdf *fpdf.Fpdf, f frame, r orb.Ring, style string) {
	pts := open(r)
	if len(pts) < 3 {
		return
	}
	poly := make([]fpdf.PointType, len(pts))
	for i, p := range pts {
		x, y := f.Map(p)
		poly[i] = fpdf.PointType{X: x, Y: y}
	}
	pdf.Polygon(poly, style)
}

// drawDimensionAnnotations adds width and depth labels outside the room.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, b orb.Bound, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	widthLabel := fmt.Sprintf("%.0f mm", b.Max[0]-b.Min[0])
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	heightLabel := fmt.Sprintf("%.0f mm", b.Max[1]-b.Min[1])
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawCategoryLegend renders one colour swatch per category plus the zones.
func drawCategoryLegend(pdf *fpdf.Fpdf, y float64) {
	pdf.SetFont("Helvetica", "", 7)
	x := marginLeft

	swatch := func(c rgb, label string) {
		pdf.SetFillColor(c.R, c.G, c.B)
		pdf.Rect(x, y+0.5, 3, 3, "F")
		pdf.SetXY(x+4, y)
		w := pdf.GetStringWidth(label) + 2
		pdf.CellFormat(w, 4, label, "", 0, "L", false, 0, "")
		x += w + 8
	}

	for _, c := range model.Categories {
		swatch(colorFor(c), c.String())
	}
	swatch(doorZoneColor, "door zone")
	swatch(clearanceColor, "clearance")
}

// renderSummaryPage draws statistics, the placement table and the settings.
func renderSummaryPage(pdf *fpdf.Fpdf, room model.Room, res model.Result, settings model.Settings) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Room Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	doorLabel := "none"
	if room.Door != nil {
		doorLabel = fmt.Sprintf("%.0f mm, opens outward", room.Door.Width())
		if room.Door.OpensInward {
			doorLabel = fmt.Sprintf("%.0f mm, opens inward", room.Door.Width())
		}
	}

	summaryItems := []struct {
		label string
		value string
	}{
		{"Feasible", fmt.Sprintf("%t", res.Feasible)},
		{"Items Placed", fmt.Sprintf("%d", len(res.Placements))},
		{"Door", doorLabel},
		{"Utilization", fmt.Sprintf("%.1f%%", res.Stats.Utilization())},
		{"Candidates Evaluated", fmt.Sprintf("%d", res.Stats.Candidates)},
		{"Rejected (boundary/door/occupied/clearance)", fmt.Sprintf("%d / %d / %d / %d",
			res.Stats.Rejections.Boundary, res.Stats.Rejections.Door,
			res.Stats.Rejections.Occupied, res.Stats.Rejections.Clearance)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(80, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(60, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Placements", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{12, 60, 35, 45, 50, 25}
	headers := []string{"#", "Item", "Category", "Size", "Center", "Rotation"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, p := range res.Placements {
		if y > pageHeight-marginBottom-10 {
			pdf.AddPage()
			y = marginTop
		}
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", i+1),
			p.Item.Name,
			p.Item.Category.String(),
			fmt.Sprintf("%.0f x %.0f mm", p.Item.Length, p.Item.Width),
			fmt.Sprintf("(%.0f, %.0f)", p.Center[0], p.Center[1]),
			fmt.Sprintf("%d\xb0", int(p.Rotation)),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if !res.Feasible {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: "+res.Message, "", 0, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 8
	}

	y += 8
	if y > pageHeight-marginBottom-40 {
		pdf.AddPage()
		y = marginTop
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Solver Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Grid Spacing", fmt.Sprintf("%.0f mm", settings.GridSpacing)},
		{"Wall Stride Cap", fmt.Sprintf("%.0f mm", settings.WallStrideCap)},
		{"Touch Tolerance", fmt.Sprintf("%.1f mm", settings.TouchTolerance)},
		{"Outward Door Clearance", fmt.Sprintf("%.0f mm", settings.OutwardDoorClearance)},
		{"Clearance Depth Factor", fmt.Sprintf("%.2f", settings.ClearanceDepthFactor)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by RoomPlan - Room Appliance Layout Planner", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
