package dataset

import "errors"

var (
	// ErrEmptyFile is returned when the input has no header row.
	ErrEmptyFile = errors.New("dataset: file has no header row")

	// ErrNoSheets is returned when an XLSX workbook contains no sheets.
	ErrNoSheets = errors.New("dataset: workbook has no sheets")

	// ErrUnsupportedFormat is returned for file extensions that are
	// neither delimited text nor XLSX.
	ErrUnsupportedFormat = errors.New("dataset: unsupported input format")
)
