package dataset

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/zerotrim/zerotrim/internal/model"
	"github.com/zerotrim/zerotrim/pkg/util"
)

// ReadXLSXFile loads a table from the first sheet of an XLSX workbook.
// The first sheet row is the header; short rows are padded to header
// width so positional column access stays valid.
func ReadXLSXFile(path string) (*model.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to open xlsx: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, ErrNoSheets
		}
		sheetName = sheets[0]
	}

	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read rows: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, ErrEmptyFile
	}
	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("dataset: failed to read header: %w", err)
	}
	if len(header) == 0 {
		return nil, ErrEmptyFile
	}

	table := &model.Table{Header: header}

	for rows.Next() {
		cols, err := rows.Columns()
		if err != nil {
			continue // skip malformed rows
		}
		if len(cols) == 0 {
			continue
		}
		// The streaming reader drops trailing empty cells.
		for len(cols) < len(header) {
			cols = append(cols, "")
		}
		table.Rows = append(table.Rows, cols)
	}

	return table, nil
}

// ReadFile loads a table from path, dispatching on the file extension
// (.csv / .csv.gz / .xlsx).
func ReadFile(path string, opts CSVOptions) (*model.Table, error) {
	switch util.BaseFormat(path) {
	case ".csv", ".tsv", ".txt":
		return ReadCSVFile(path, opts)
	case ".xlsx":
		return ReadXLSXFile(path)
	default:
		return nil, ErrUnsupportedFormat
	}
}
