package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/zerotrim/zerotrim/pkg/runs"
	"github.com/zerotrim/zerotrim/pkg/tui"
	"github.com/zerotrim/zerotrim/pkg/util"
)

var (
	batchOutputDir  string
	parallelWorkers int
	failFast        bool
)

var batchCmd = &cobra.Command{
	Use:   "batch [files or globs...]",
	Short: "Thin multiple datasets",
	Long: `Thin every matching dataset into an output directory. Files are
processed concurrently; each individual file is still a single
sequential pass.

Examples:
  zerotrim batch -d reduced/ "runs/*.csv"
  zerotrim batch -d reduced/ --workers 8 episode1.csv episode2.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().StringVarP(&batchOutputDir, "output-dir", "d", "reduced", "Output directory")
	batchCmd.Flags().IntVar(&parallelWorkers, "workers", 4, "Number of files processed concurrently")
	batchCmd.Flags().BoolVar(&failFast, "fail-fast", false, "Stop on first failure")
	batchCmd.Flags().StringVar(&delimiter, "delimiter", ",", "Field delimiter")
	batchCmd.Flags().IntVar(&maxZeroSequence, "max-zero-sequence", runs.DefaultMaxZeroSequence, "Longest idle run left untouched")
	batchCmd.Flags().IntVar(&keepInterval, "keep-interval", runs.DefaultKeepInterval, "Stride of kept rows inside thinned runs")
}

// BatchResult is the outcome of thinning one file.
type BatchResult struct {
	JobID      string
	InputPath  string
	OutputPath string
	Stats      *runs.ThinStats
	Error      error
}

func runBatch(cmd *cobra.Command, args []string) error {
	var inputFiles []string
	for _, pattern := range args {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			// Try as literal path
			if _, err := os.Stat(pattern); err == nil {
				inputFiles = append(inputFiles, pattern)
			} else {
				fmt.Fprintf(os.Stderr, "Warning: no files match pattern %q\n", pattern)
			}
		} else {
			inputFiles = append(inputFiles, matches...)
		}
	}

	if len(inputFiles) == 0 {
		return fmt.Errorf("no input files found")
	}

	if err := os.MkdirAll(batchOutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	fmt.Printf("Thinning %d files with %d workers...\n\n", len(inputFiles), parallelWorkers)

	ctx, cancel := signalContext()
	defer cancel()

	shutdown := initTelemetry(ctx)
	defer shutdown()

	opts := runs.Options{
		MaxZeroSequence: maxZeroSequence,
		KeepInterval:    keepInterval,
	}

	results := make(chan BatchResult, len(inputFiles))
	bar := tui.ShowProgress(int64(len(inputFiles)), "thinning")

	var failed atomic.Int64

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelWorkers)

	startTime := time.Now()

	for _, inputPath := range inputFiles {
		inputPath := inputPath // capture
		g.Go(func() error {
			result := BatchResult{
				JobID:      uuid.New().String()[:8],
				InputPath:  inputPath,
				OutputPath: batchOutputPath(inputPath),
			}
			result.Stats, result.Error = processFile(ctx, inputPath, result.OutputPath, opts, false)
			results <- result
			bar.Add(1)

			if result.Error != nil {
				failed.Add(1)
				if failFast {
					return result.Error
				}
			}
			return nil
		})
	}

	err := g.Wait()
	close(results)
	bar.Finish()

	var allResults []BatchResult
	var totalRows, keptRows int64
	for r := range results {
		allResults = append(allResults, r)
		if r.Stats != nil {
			totalRows += int64(r.Stats.OriginalRows)
			keptRows += int64(r.Stats.FilteredRows)
		}
	}

	totalDuration := time.Since(startTime)

	tui.ClearLine()
	fmt.Printf("\n=== Batch Thinning Complete ===\n\n")
	fmt.Printf("  Total files: %d\n", len(inputFiles))
	fmt.Printf("  Succeeded:   %d\n", int64(len(inputFiles))-failed.Load())
	fmt.Printf("  Failed:      %d\n", failed.Load())
	fmt.Printf("  Rows:        %d -> %d\n", totalRows, keptRows)
	fmt.Printf("  Duration:    %v\n", totalDuration.Round(time.Millisecond))

	if failed.Load() > 0 {
		fmt.Println("\nErrors:")
		for _, r := range allResults {
			if r.Error != nil {
				fmt.Printf("  [%s] %s: %v\n", r.JobID, filepath.Base(r.InputPath), r.Error)
			}
		}
	}

	if err != nil && failFast {
		return fmt.Errorf("batch thinning failed: %w", err)
	}
	if failed.Load() > 0 {
		return fmt.Errorf("%d files failed", failed.Load())
	}

	return nil
}

// batchOutputPath places the reduced file in the output directory,
// always as plain CSV.
func batchOutputPath(input string) string {
	base := filepath.Base(util.StripCompression(input))
	stem := base[:len(base)-len(filepath.Ext(base))]
	return filepath.Join(batchOutputDir, stem+".csv")
}
