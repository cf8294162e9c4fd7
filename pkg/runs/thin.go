package runs

import "github.com/zerotrim/zerotrim/internal/model"

const (
	// DefaultMaxZeroSequence is the longest idle run left untouched.
	DefaultMaxZeroSequence = 10

	// DefaultKeepInterval is the stride at which rows are retained in
	// the trimmed tail of a long run.
	DefaultKeepInterval = 5
)

// Options configures a thinning pass.
type Options struct {
	// MaxZeroSequence is the run-length threshold. Runs of at most this
	// many rows survive intact; longer runs keep this many leading rows
	// and are thinned beyond them.
	MaxZeroSequence int

	// KeepInterval is the stride within the thinned tail: every
	// KeepInterval-th row after the kept prefix survives, starting with
	// the row immediately after it.
	KeepInterval int
}

// DefaultOptions returns the standard thinning parameters.
func DefaultOptions() Options {
	return Options{
		MaxZeroSequence: DefaultMaxZeroSequence,
		KeepInterval:    DefaultKeepInterval,
	}
}

// ThinStats describes the effect of one thinning pass.
type ThinStats struct {
	OriginalRows int
	FilteredRows int

	// ReductionPct is the percentage of rows removed, 0 for an empty input.
	ReductionPct float64

	OriginalIdle int

	// FilteredIdle is recomputed from the output table, not derived by
	// subtraction.
	FilteredIdle int

	// IdleReductionPct is the percentage of idle rows removed, 0 when
	// the input had none.
	IdleReductionPct float64

	// LongRuns is the number of runs that exceeded the threshold.
	LongRuns int
}

// Thin returns a copy of the table with long idle runs downsampled.
//
// Runs of length at most opts.MaxZeroSequence are untouched. For a
// longer run starting at s, rows s .. s+MaxZeroSequence-1 are always
// kept; beyond that prefix a row at offset o from the first thinned
// position survives iff o % KeepInterval == 0. Surviving rows keep
// their relative order and the input table is never mutated.
func Thin(t *model.Table, opts Options) (*model.Table, *ThinStats, error) {
	if opts.MaxZeroSequence <= 0 || opts.KeepInterval <= 0 {
		return nil, nil, ErrInvalidConfiguration
	}
	flagIdx, energyIdx, ok := t.ActionColumns()
	if !ok {
		return nil, nil, ErrInvalidSchema
	}

	mask := idleMask(t, flagIdx, energyIdx)

	keep := make([]bool, len(mask))
	for i := range keep {
		keep[i] = true
	}

	longRuns := 0
	for _, run := range detectRuns(mask) {
		if run.Length() <= opts.MaxZeroSequence {
			continue
		}
		longRuns++

		keepEnd := run.Start + opts.MaxZeroSequence - 1
		for i := keepEnd + 1; i <= run.End; i++ {
			offset := i - keepEnd - 1
			keep[i] = offset%opts.KeepInterval == 0
		}
	}

	header := make([]string, len(t.Header))
	copy(header, t.Header)

	filtered := &model.Table{Header: header}
	for i, row := range t.Rows {
		if keep[i] {
			filtered.Rows = append(filtered.Rows, row)
		}
	}

	stats := &ThinStats{
		OriginalRows: len(t.Rows),
		FilteredRows: len(filtered.Rows),
		OriginalIdle: countIdle(mask),
		LongRuns:     longRuns,
	}
	stats.FilteredIdle = countIdle(idleMask(filtered, flagIdx, energyIdx))

	if stats.OriginalRows > 0 {
		stats.ReductionPct = (1 - float64(stats.FilteredRows)/float64(stats.OriginalRows)) * 100
	}
	if stats.OriginalIdle > 0 {
		stats.IdleReductionPct = (1 - float64(stats.FilteredIdle)/float64(stats.OriginalIdle)) * 100
	}

	return filtered, stats, nil
}
