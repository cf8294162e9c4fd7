// Package runs detects and downsamples runs of idle rows in a training
// dataset. A row is idle when its two trailing action columns are both
// exactly zero; a run is a maximal contiguous block of idle rows.
//
// Both operations are pure: they never mutate their input table and
// carry no state between calls.
package runs

import "github.com/zerotrim/zerotrim/internal/model"

// Run is a maximal block of consecutive idle rows. Start and End are
// 0-based row indices, both inclusive.
type Run struct {
	Start int
	End   int
}

// Length returns the number of rows in the run.
func (r Run) Length() int {
	return r.End - r.Start + 1
}

// idleMask evaluates the idle predicate once per row.
func idleMask(t *model.Table, flagIdx, energyIdx int) []bool {
	mask := make([]bool, len(t.Rows))
	for i, row := range t.Rows {
		mask[i] = model.IsIdle(row, flagIdx, energyIdx)
	}
	return mask
}

// detectRuns scans the idle mask left to right and returns all maximal
// runs in increasing start order. A run is closed by the first non-idle
// row or by the end of the table.
func detectRuns(mask []bool) []Run {
	var out []Run
	start := -1

	for i, idle := range mask {
		if idle {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, Run{Start: start, End: i - 1})
			start = -1
		}
	}

	if start >= 0 {
		out = append(out, Run{Start: start, End: len(mask) - 1})
	}

	return out
}

// countIdle returns the number of set entries in the mask.
func countIdle(mask []bool) int {
	n := 0
	for _, idle := range mask {
		if idle {
			n++
		}
	}
	return n
}
