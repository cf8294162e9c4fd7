package runs

import (
	"sort"

	"github.com/zerotrim/zerotrim/internal/model"
)

// Stats describes the idle-run distribution of a table.
type Stats struct {
	// TotalRows is the number of data rows scanned.
	TotalRows int

	// IdleRows is the number of rows where both action columns are zero.
	IdleRows int

	// IdleFraction is IdleRows / TotalRows, 0 for an empty table.
	IdleFraction float64

	// RunCount is the number of maximal idle runs.
	RunCount int

	// MeanRunLength is the average run length, 0 when there are no runs.
	MeanRunLength float64

	// MaxRunLength is the longest run length, 0 when there are no runs.
	MaxRunLength int

	// LengthCounts maps run length to the number of runs of that length.
	LengthCounts map[int]int
}

// Lengths returns the histogram keys in ascending order.
func (s *Stats) Lengths() []int {
	lengths := make([]int, 0, len(s.LengthCounts))
	for l := range s.LengthCounts {
		lengths = append(lengths, l)
	}
	sort.Ints(lengths)
	return lengths
}

// Analyze scans the table once and reports idle-run statistics.
// Returns ErrInvalidSchema when the action columns cannot be located.
func Analyze(t *model.Table) (*Stats, error) {
	flagIdx, energyIdx, ok := t.ActionColumns()
	if !ok {
		return nil, ErrInvalidSchema
	}

	mask := idleMask(t, flagIdx, energyIdx)
	detected := detectRuns(mask)

	stats := &Stats{
		TotalRows:    len(mask),
		IdleRows:     countIdle(mask),
		RunCount:     len(detected),
		LengthCounts: make(map[int]int, len(detected)),
	}

	if stats.TotalRows > 0 {
		stats.IdleFraction = float64(stats.IdleRows) / float64(stats.TotalRows)
	}

	totalLength := 0
	for _, run := range detected {
		l := run.Length()
		totalLength += l
		stats.LengthCounts[l]++
		if l > stats.MaxRunLength {
			stats.MaxRunLength = l
		}
	}
	if len(detected) > 0 {
		stats.MeanRunLength = float64(totalLength) / float64(len(detected))
	}

	return stats, nil
}
