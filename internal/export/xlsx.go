package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/RoomPlan/internal/model"
)

const (
	placementsSheet = "Placements"
	summarySheet    = "Summary"
)

var placementHeaders = []interface{}{"Order", "Item", "Category", "Length (mm)", "Width (mm)", "Center X", "Center Y", "Rotation"}

// ExportXLSX writes a workbook with one row per placement and a summary
// sheet with the layout statistics.
func ExportXLSX(path string, room model.Room, res model.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), placementsSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to add summary sheet: %w", err)
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := f.SetSheetRow(placementsSheet, "A1", &placementHeaders); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := f.SetCellStyle(placementsSheet, "A1", "H1", header); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, p := range res.Placements {
		row := []interface{}{
			i + 1,
			p.Item.Name,
			p.Item.Category.String(),
			p.Item.Length,
			p.Item.Width,
			p.Center[0],
			p.Center[1],
			int(p.Rotation),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(placementsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write placement %q: %w", p.Item.Name, err)
		}
	}
	if err := f.SetColWidth(placementsSheet, "A", "H", 14); err != nil {
		return err
	}

	door := "none"
	if room.Door != nil {
		door = fmt.Sprintf("%.0f mm outward", room.Door.Width())
		if room.Door.OpensInward {
			door = fmt.Sprintf("%.0f mm inward", room.Door.Width())
		}
	}

	summary := [][]interface{}{
		{"Feasible", res.Feasible},
		{"Message", res.Message},
		{"Failed Item", res.FailedItem},
		{"Items Placed", len(res.Placements)},
		{"Door", door},
		{"Room Area (mm²)", res.Stats.RoomArea},
		{"Occupied Area (mm²)", res.Stats.OccupiedArea},
		{"Utilization (%)", res.Stats.Utilization()},
		{"Touching Walls", res.Stats.WallTouching},
		{"Candidates", res.Stats.Candidates},
		{"Rejected: Boundary", res.Stats.Rejections.Boundary},
		{"Rejected: Door", res.Stats.Rejections.Door},
		{"Rejected: Occupied", res.Stats.Rejections.Occupied},
		{"Rejected: Clearance", res.Stats.Rejections.Clearance},
	}
	for i, row := range summary {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary: %w", err)
		}
	}
	if err := f.SetCellStyle(summarySheet, "A1", fmt.Sprintf("A%d", len(summary)), header); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 24); err != nil {
		return err
	}

	return f.SaveAs(path)
}
