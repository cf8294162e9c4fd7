package dataset

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xuri/excelize/v2"
)

func writeWorkbook(t *testing.T, rows [][]interface{}) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}

	path := filepath.Join(t.TempDir(), "episode.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
	return path
}

func TestReadXLSXFile(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"tick", "action_x", "use_energy"},
		{1, 0, 0},
		{2, 1, 0},
	})

	table, err := ReadXLSXFile(path)
	if err != nil {
		t.Fatalf("ReadXLSXFile() error = %v", err)
	}

	wantHeader := []string{"tick", "action_x", "use_energy"}
	if !reflect.DeepEqual(table.Header, wantHeader) {
		t.Errorf("header = %v, want %v", table.Header, wantHeader)
	}
	wantRows := [][]string{{"1", "0", "0"}, {"2", "1", "0"}}
	if !reflect.DeepEqual(table.Rows, wantRows) {
		t.Errorf("rows = %v, want %v", table.Rows, wantRows)
	}
}

func TestReadXLSXFile_PadsShortRows(t *testing.T) {
	// The streaming reader drops trailing empty cells; they must come
	// back as empty fields so positional column access holds.
	path := writeWorkbook(t, [][]interface{}{
		{"tick", "action_x", "use_energy"},
		{1, 0},
	})

	table, err := ReadXLSXFile(path)
	if err != nil {
		t.Fatalf("ReadXLSXFile() error = %v", err)
	}

	if len(table.Rows) != 1 || len(table.Rows[0]) != 3 {
		t.Fatalf("rows = %v, want one row of width 3", table.Rows)
	}
	if table.Rows[0][2] != "" {
		t.Errorf("padded cell = %q, want empty", table.Rows[0][2])
	}
}

func TestReadFile_DispatchesOnExtension(t *testing.T) {
	path := writeWorkbook(t, [][]interface{}{
		{"action_x", "use_energy"},
		{0, 0},
	})

	table, err := ReadFile(path, DefaultCSVOptions())
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if table.NumRows() != 1 || table.NumCols() != 2 {
		t.Errorf("table = %dx%d, want 1x2", table.NumRows(), table.NumCols())
	}
}
