// Package model defines core data structures for zerotrim.
package model

import (
	"strconv"
	"strings"
)

// Table is an in-memory ordered table with a named header row.
// Row order is significant and preserved by every operation; the last
// two columns are the action columns the idle predicate is evaluated on.
type Table struct {
	// Header holds the column names in positional order.
	Header []string

	// Rows holds the data rows. Each row has one field per header column.
	Rows [][]string
}

// NumRows returns the number of data rows (header excluded).
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// NumCols returns the number of columns.
func (t *Table) NumCols() int {
	return len(t.Header)
}

// ActionColumns returns the indices of the two rightmost columns, which
// carry the action flag and energy values. ok is false when the table
// has fewer than two columns.
func (t *Table) ActionColumns() (flagIdx, energyIdx int, ok bool) {
	n := len(t.Header)
	if n < 2 {
		return 0, 0, false
	}
	return n - 2, n - 1, true
}

// IsIdle reports whether a row is idle: both action columns hold a
// numeric value exactly equal to zero. Fields that do not parse as
// numbers (including empty fields) are treated as non-zero.
func IsIdle(row []string, flagIdx, energyIdx int) bool {
	if flagIdx >= len(row) || energyIdx >= len(row) {
		return false
	}
	return isZero(row[flagIdx]) && isZero(row[energyIdx])
}

// isZero reports whether a field holds an integer or float literal
// comparing exactly equal to zero.
func isZero(field string) bool {
	field = strings.TrimSpace(field)
	if field == "" {
		return false
	}
	v, err := strconv.ParseFloat(field, 64)
	return err == nil && v == 0
}
