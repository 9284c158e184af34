package export

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

func TestExportXLSX_Sheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.xlsx")
	room, res := buildTestLayout(t)

	if err := ExportXLSX(path, room, res); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(placementsSheet)
	if err != nil {
		t.Fatalf("cannot read placements: %v", err)
	}
	if len(rows) != len(res.Placements)+1 {
		t.Fatalf("expected %d rows, got %d", len(res.Placements)+1, len(rows))
	}
	if rows[0][1] != "Item" {
		t.Errorf("unexpected header %v", rows[0])
	}
	if rows[1][1] != res.Placements[0].Item.Name || rows[1][2] != "fridge" {
		t.Errorf("unexpected first row %v", rows[1])
	}

	placed, err := f.GetCellValue(summarySheet, "B4")
	if err != nil {
		t.Fatalf("cannot read summary: %v", err)
	}
	if placed != "5" {
		t.Errorf("expected 5 items placed, got %q", placed)
	}
}

func TestExportXLSX_Infeasible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "infeasible.xlsx")
	room, res := buildInfeasibleLayout(t)

	if err := ExportXLSX(path, room, res); err != nil {
		t.Fatalf("ExportXLSX returned error: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("cannot reopen workbook: %v", err)
	}
	defer f.Close()

	failed, _ := f.GetCellValue(summarySheet, "B3")
	if failed != "shelf_2" {
		t.Errorf("expected failed item shelf_2, got %q", failed)
	}
}
