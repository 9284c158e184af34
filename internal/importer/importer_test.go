package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/xuri/excelize/v2"
	"github.com/yofu/dxf"

	"github.com/piwi3910/RoomPlan/internal/model"
)

// ─── DetectCSVDelimiter Tests ──────────────────────────────

func TestDetectCSVDelimiter_Comma(t *testing.T) {
	data := []byte("Name,Length,Width,Qty\nshelf,1200,400,2\nfridge,800,700,1\n")
	got := DetectCSVDelimiter(data)
	if got != ',' {
		t.Errorf("expected comma delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Semicolon(t *testing.T) {
	data := []byte("Name;Length;Width;Qty\nshelf;1200;400;2\nfridge;800;700;1\n")
	got := DetectCSVDelimiter(data)
	if got != ';' {
		t.Errorf("expected semicolon delimiter, got %q", got)
	}
}

func TestDetectCSVDelimiter_Tab(t *testing.T) {
	data := []byte("Name\tLength\tWidth\nshelf\t1200\t400\nfridge\t800\t700\n")
	got := DetectCSVDelimiter(data)
	if got != '\t' {
		t.Errorf("expected tab delimiter, got %q", got)
	}
}

// ─── DetectColumns Tests ───────────────────────────────────

func TestDetectColumns_StandardHeaders(t *testing.T) {
	row := []string{"Name", "Length", "Width", "Quantity", "Category"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Name != 0 || mapping.Length != 1 || mapping.Width != 2 {
		t.Errorf("unexpected mapping %+v", mapping)
	}
	if mapping.Quantity != 3 {
		t.Errorf("expected Quantity at 3, got %d", mapping.Quantity)
	}
	if mapping.Category != 4 {
		t.Errorf("expected Category at 4, got %d", mapping.Category)
	}
}

func TestDetectColumns_AliasesAndOrder(t *testing.T) {
	row := []string{"DEPTH", "Type", "LEN", "Appliance"}
	mapping, isHeader := DetectColumns(row)

	if !isHeader {
		t.Error("expected header to be detected")
	}
	if mapping.Width != 0 {
		t.Errorf("expected Width at 0, got %d", mapping.Width)
	}
	if mapping.Category != 1 {
		t.Errorf("expected Category at 1, got %d", mapping.Category)
	}
	if mapping.Length != 2 {
		t.Errorf("expected Length at 2, got %d", mapping.Length)
	}
	if mapping.Name != 3 {
		t.Errorf("expected Name at 3, got %d", mapping.Name)
	}
	if mapping.Quantity != -1 {
		t.Errorf("expected no Quantity column, got %d", mapping.Quantity)
	}
}

func TestDetectColumns_NoHeader(t *testing.T) {
	mapping, isHeader := DetectColumns([]string{"shelf", "1200", "400"})
	if isHeader {
		t.Error("expected no header")
	}
	if mapping.Name != 0 || mapping.Length != 1 || mapping.Width != 2 || mapping.Quantity != 3 || mapping.Category != 4 {
		t.Errorf("expected positional mapping, got %+v", mapping)
	}
}

// ─── ImportCSVFromReader Tests ─────────────────────────────

func TestImportCSVFromReader_WithHeaders(t *testing.T) {
	csv := "Name,Length,Width\nfridge_1,800,700\nshelf_a,1200,400\niceMaker_1,500,500\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	if result.Items[0].Name != "fridge_1" || result.Items[0].Category != model.CategoryFridge {
		t.Errorf("unexpected first item %+v", result.Items[0])
	}
	if result.Items[1].Length != 1200 || result.Items[1].Width != 400 {
		t.Errorf("unexpected dimensions %vx%v", result.Items[1].Length, result.Items[1].Width)
	}
	if result.Items[2].Category != model.CategoryIceMaker {
		t.Errorf("expected iceMaker category, got %v", result.Items[2].Category)
	}
}

func TestImportCSVFromReader_WithoutHeaders(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader("shelf_1,1200,400\nsofa,1800,800\n"), ',')

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[1].Category != model.CategoryOther {
		t.Errorf("expected other category for sofa, got %v", result.Items[1].Category)
	}
}

func TestImportCSVFromReader_QuantityExpandsNames(t *testing.T) {
	csv := "Name;Length;Width;Qty\nshelf;1200;400;3\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ';')

	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	for i, want := range []string{"shelf_1", "shelf_2", "shelf_3"} {
		if result.Items[i].Name != want {
			t.Errorf("item %d: expected %q, got %q", i, want, result.Items[i].Name)
		}
		if result.Items[i].Category != model.CategoryShelf {
			t.Errorf("item %d: expected shelf category, got %v", i, result.Items[i].Category)
		}
	}
}

func TestImportCSVFromReader_ExplicitCategory(t *testing.T) {
	csv := "Name,Length,Width,Category\ncooler,800,700,fridge\nbox,500,500,banana\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Category != model.CategoryFridge {
		t.Errorf("expected explicit fridge category, got %v", result.Items[0].Category)
	}
	if result.Items[1].Category != model.CategoryOther {
		t.Errorf("expected fallback category, got %v", result.Items[1].Category)
	}

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w, "Unknown category 'banana'") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected unknown category warning, got %v", result.Warnings)
	}
}

func TestImportCSVFromReader_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want string
	}{
		{"invalid length", "Name,Length,Width\nshelf,abc,400\n", "Invalid length"},
		{"missing width", "Name,Length,Width\nshelf,1200,\n", "Missing width"},
		{"negative", "Name,Length,Width\nshelf,-5,400\n", "must be positive"},
		{"invalid quantity", "Name,Length,Width,Qty\nshelf,1200,400,x\n", "Invalid quantity"},
		{"missing column", "Name,Length\nshelf,1200\n", "Required columns not found"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ImportCSVFromReader(strings.NewReader(tc.csv), ',')
			if len(result.Errors) == 0 {
				t.Fatal("expected an error")
			}
			if !strings.Contains(result.Errors[0], tc.want) {
				t.Errorf("expected error containing %q, got %q", tc.want, result.Errors[0])
			}
		})
	}
}

func TestImportCSVFromReader_DuplicateNames(t *testing.T) {
	csv := "Name,Length,Width\nshelf,1200,400\nshelf,1000,300\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Items) != 1 {
		t.Errorf("expected 1 item, got %d", len(result.Items))
	}
	if len(result.Errors) != 1 || !strings.Contains(result.Errors[0], "Duplicate item name 'shelf'") {
		t.Errorf("expected duplicate error, got %v", result.Errors)
	}
}

func TestImportCSVFromReader_EmptyRowsAndNames(t *testing.T) {
	csv := "Name,Length,Width\n,800,700\n,,\n,500,500\n"
	result := ImportCSVFromReader(strings.NewReader(csv), ',')

	if len(result.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(result.Items))
	}
	if result.Items[0].Name != "item_1" || result.Items[1].Name != "item_2" {
		t.Errorf("expected generated names, got %q and %q", result.Items[0].Name, result.Items[1].Name)
	}
}

func TestImportCSVFromReader_EmptyFile(t *testing.T) {
	result := ImportCSVFromReader(strings.NewReader(""), ',')
	if len(result.Errors) == 0 {
		t.Error("expected error for empty input")
	}
}

// ─── File Import Tests ─────────────────────────────────────

func TestImportCSV_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "items.csv")
	if err := os.WriteFile(path, []byte("Name;Length;Width\nfridge;800;700\n"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	result := ImportItems(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(result.Items))
	}
	if len(result.Warnings) == 0 || result.Warnings[0] != "Detected semicolon delimiter" {
		t.Errorf("expected delimiter warning, got %v", result.Warnings)
	}
}

func TestImportCSV_FileNotFound(t *testing.T) {
	result := ImportCSV("/nonexistent/path/items.csv")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func createTestExcel(t *testing.T, rows [][]interface{}) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "items.xlsx")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	for i, row := range rows {
		for j, cell := range row {
			cellRef, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatalf("failed to create cell reference: %v", err)
			}
			if err := f.SetCellValue(sheet, cellRef, cell); err != nil {
				t.Fatalf("failed to set cell value: %v", err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		t.Fatalf("failed to save Excel file: %v", err)
	}
	return path
}

func TestImportExcel_WithHeaders(t *testing.T) {
	path := createTestExcel(t, [][]interface{}{
		{"Item", "Length", "Width", "Qty"},
		{"fridge", 800, 700, 2},
		{"overShelf", 1000, 300, 1},
	})

	result := ImportItems(path)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result.Items))
	}
	if result.Items[0].Name != "fridge_1" || result.Items[1].Name != "fridge_2" {
		t.Errorf("unexpected names %q, %q", result.Items[0].Name, result.Items[1].Name)
	}
	if result.Items[2].Category != model.CategoryOverShelf {
		t.Errorf("expected overShelf category, got %v", result.Items[2].Category)
	}
}

func TestImportExcel_FileNotFound(t *testing.T) {
	result := ImportExcel("/nonexistent/path/items.xlsx")
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

// ─── DXF Room Import Tests ─────────────────────────────────

func writeRoomDXF(t *testing.T, build func(add func(x1, y1, x2, y2 float64))) string {
	t.Helper()
	d := dxf.NewDrawing()
	build(func(x1, y1, x2, y2 float64) {
		if _, err := d.Line(x1, y1, 0, x2, y2, 0); err != nil {
			t.Fatalf("failed to add line: %v", err)
		}
	})

	path := filepath.Join(t.TempDir(), "room.dxf")
	if err := d.SaveAs(path); err != nil {
		t.Fatalf("failed to save DXF: %v", err)
	}
	return path
}

func TestImportRoomDXF_LinesWithDoor(t *testing.T) {
	path := writeRoomDXF(t, func(add func(x1, y1, x2, y2 float64)) {
		add(0, 0, 6000, 0)
		add(6000, 0, 6000, 4000)
		add(6000, 4000, 0, 4000)
		add(0, 4000, 0, 0)
		add(2000, 0, 2900, 0)
	})

	result := ImportRoomDXF(path, true)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if got := result.Room.Area(); got < 24e6-1 || got > 24e6+1 {
		t.Errorf("expected area 24e6, got %v", got)
	}
	if result.Room.Door == nil {
		t.Fatal("expected a door")
	}
	if result.Room.Door.Width() < 899.99 || result.Room.Door.Width() > 900.01 {
		t.Errorf("expected door width 900, got %v", result.Room.Door.Width())
	}
	if !result.Room.Door.OpensInward {
		t.Error("expected inward door")
	}
}

func TestImportRoomDXF_NoDoor(t *testing.T) {
	path := writeRoomDXF(t, func(add func(x1, y1, x2, y2 float64)) {
		add(0, 0, 3000, 0)
		add(3000, 0, 0, 3000)
		add(0, 3000, 0, 0)
	})

	result := ImportRoomDXF(path, false)

	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if result.Room.Door != nil {
		t.Errorf("expected no door, got %+v", result.Room.Door)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected a missing door warning")
	}
}

func TestImportRoomDXF_OpenShape(t *testing.T) {
	path := writeRoomDXF(t, func(add func(x1, y1, x2, y2 float64)) {
		add(0, 0, 3000, 0)
		add(3000, 0, 3000, 3000)
	})

	result := ImportRoomDXF(path, false)
	if len(result.Errors) == 0 {
		t.Error("expected error for an open outline")
	}
}

func TestImportRoomDXF_FileNotFound(t *testing.T) {
	result := ImportRoomDXF("/nonexistent/room.dxf", false)
	if len(result.Errors) == 0 {
		t.Error("expected error for nonexistent file")
	}
}

func pt(x, y float64) orb.Point { return orb.Point{x, y} }

func TestChainSegments_DropsOpenChains(t *testing.T) {
	segs := []segment{
		{start: pt(0, 0), end: pt(10, 0)},
		{start: pt(10, 10), end: pt(10, 0)},
		{start: pt(10, 10), end: pt(0, 0)},
		{start: pt(50, 50), end: pt(60, 50)},
	}
	outlines := chainSegments(segs, chainTolerance)
	if len(outlines) != 1 {
		t.Fatalf("expected 1 outline, got %d", len(outlines))
	}
	if len(outlines[0]) != 3 {
		t.Errorf("expected 3 vertices, got %d", len(outlines[0]))
	}
}

func TestBulgeArcPoints_Semicircle(t *testing.T) {
	pts := bulgeArcPoints(pt(0, 0), pt(10, 0), 1, 8)
	if len(pts) != 9 {
		t.Fatalf("expected 9 points, got %d", len(pts))
	}
	mid := pts[4]
	if mid[0] < 4.99 || mid[0] > 5.01 || (mid[1] > -4.99 && mid[1] < 4.99) {
		t.Errorf("expected apex at distance 5 from the chord, got %v", mid)
	}
}
