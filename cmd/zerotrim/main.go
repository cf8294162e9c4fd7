// zerotrim - Training-set rebalancer for game-AI tick logs.
// Downsamples long runs of idle rows (action and energy columns both
// zero) so supervised training is not dominated by inactivity.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"

	"github.com/zerotrim/zerotrim/internal/model"
	"github.com/zerotrim/zerotrim/pkg/config"
	"github.com/zerotrim/zerotrim/pkg/dataset"
	"github.com/zerotrim/zerotrim/pkg/runs"
	"github.com/zerotrim/zerotrim/pkg/telemetry"
	"github.com/zerotrim/zerotrim/pkg/tui"
	"github.com/zerotrim/zerotrim/pkg/util"
)

var (
	version = "0.1.0"
	commit  = "dev"
)

// CLI flags
var (
	inputFile  string
	outputFile string
	delimiter  string
	verbose    bool

	maxZeroSequence int
	keepInterval    int
	showAnalysis    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zerotrim",
	Short: "zerotrim - Downsample idle runs in training datasets",
	Long: `zerotrim rebalances AI training datasets whose rows are dominated by
inactivity. Rows whose two trailing action columns are both zero form
idle runs; runs longer than a threshold are thinned to a fixed stride
while everything else survives untouched.`,
	Version: fmt.Sprintf("%s (%s)", version, commit),
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var reduceCmd = &cobra.Command{
	Use:   "reduce",
	Short: "Thin long idle runs and write the reduced dataset",
	Long: `Thin long idle runs out of a dataset and write the result.

Runs of at most --max-zero-sequence idle rows are kept intact. Longer
runs keep their first --max-zero-sequence rows, then every
--keep-interval-th row after that.

Examples:
  zerotrim reduce -i training_dataset.csv
  zerotrim reduce -i run.csv -o run_small.csv --max-zero-sequence 20 --keep-interval 3
  zerotrim reduce -i export.xlsx -o export_reduced.csv --analyze`,
	RunE: runReduce,
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Report the idle-run distribution of a dataset",
	Long:  `Analyze a dataset and print idle-row counts and the run-length histogram.`,
	RunE:  runAnalyze,
}

func init() {
	cfg := config.Global().Get()

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	reduceCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input dataset path (required)")
	reduceCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output path (default: <input>_reduced.csv)")
	reduceCmd.Flags().StringVar(&delimiter, "delimiter", cfg.Dataset.Delimiter, "Field delimiter")
	reduceCmd.Flags().IntVar(&maxZeroSequence, "max-zero-sequence", cfg.Thinning.MaxZeroSequence, "Longest idle run left untouched")
	reduceCmd.Flags().IntVar(&keepInterval, "keep-interval", cfg.Thinning.KeepInterval, "Stride of kept rows inside thinned runs")
	reduceCmd.Flags().BoolVar(&showAnalysis, "analyze", false, "Print run distributions before and after thinning")
	reduceCmd.MarkFlagRequired("input")

	analyzeCmd.Flags().StringVarP(&inputFile, "input", "i", "", "Input dataset path (required)")
	analyzeCmd.Flags().StringVar(&delimiter, "delimiter", cfg.Dataset.Delimiter, "Field delimiter")
	analyzeCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(reduceCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(watchCmd)
}

func runReduce(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	output := outputFile
	if output == "" {
		output = defaultOutputPath(inputFile)
	}

	ctx, cancel := signalContext()
	defer cancel()

	shutdown := initTelemetry(ctx)
	defer shutdown()

	if verbose {
		fmt.Printf("Input:             %s\n", inputFile)
		fmt.Printf("Output:            %s\n", output)
		fmt.Printf("Max zero sequence: %d\n", maxZeroSequence)
		fmt.Printf("Keep interval:     %d\n", keepInterval)
	}

	opts := runs.Options{
		MaxZeroSequence: maxZeroSequence,
		KeepInterval:    keepInterval,
	}

	startTime := time.Now()
	stats, err := processFile(ctx, inputFile, output, opts, showAnalysis || verbose)
	if err != nil {
		return fmt.Errorf("reduction failed: %w", err)
	}

	tui.PrintReductionReport(stats, time.Since(startTime))

	return nil
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if _, err := os.Stat(inputFile); os.IsNotExist(err) {
		return fmt.Errorf("input file does not exist: %s", inputFile)
	}

	table, err := loadTable(inputFile)
	if err != nil {
		return err
	}

	stats, err := runs.Analyze(table)
	if err != nil {
		return err
	}

	tui.PrintDistribution("IDLE RUN DISTRIBUTION", stats)
	return nil
}

// processFile runs the full pipeline on one file: load, optionally
// analyze, thin, write, optionally analyze the output.
func processFile(ctx context.Context, input, output string, opts runs.Options, analyze bool) (*runs.ThinStats, error) {
	ctx, span := telemetry.StartSpan(ctx, "zerotrim.reduce")
	defer span.End()
	telemetry.SetSpanAttributes(ctx,
		attribute.String("input", input),
		attribute.Int("max_zero_sequence", opts.MaxZeroSequence),
		attribute.Int("keep_interval", opts.KeepInterval),
	)

	table, err := loadTable(input)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	if analyze {
		before, err := runs.Analyze(table)
		if err != nil {
			return nil, err
		}
		tui.PrintDistribution("INPUT DISTRIBUTION", before)
	}

	filtered, stats, err := runs.Thin(table, opts)
	if err != nil {
		telemetry.RecordError(ctx, err)
		return nil, err
	}

	if err := dataset.WriteCSVFile(output, filtered, csvOptions()); err != nil {
		telemetry.RecordError(ctx, err)
		return nil, fmt.Errorf("failed to write %s: %w", output, err)
	}

	if analyze {
		after, err := runs.Analyze(filtered)
		if err != nil {
			return nil, err
		}
		tui.PrintDistribution("OUTPUT DISTRIBUTION", after)
	}

	telemetry.SetSpanAttributes(ctx,
		attribute.Int("rows.original", stats.OriginalRows),
		attribute.Int("rows.filtered", stats.FilteredRows),
	)

	return stats, nil
}

func loadTable(path string) (*model.Table, error) {
	table, err := dataset.ReadFile(path, csvOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return table, nil
}

func csvOptions() dataset.CSVOptions {
	opts := dataset.DefaultCSVOptions()
	if delimiter != "" {
		opts.Delimiter = delimiter[0]
	}
	return opts
}

// defaultOutputPath derives "<stem>_reduced.csv" next to the input.
func defaultOutputPath(input string) string {
	suffix := config.Global().Get().Watch.OutputSuffix
	stem := util.StripCompression(input)
	stem = stem[:len(stem)-len(filepath.Ext(stem))]
	return stem + suffix + ".csv"
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted, cleaning up...")
		cancel()
	}()

	return ctx, cancel
}

// initTelemetry wires OTLP export when enabled in config. The returned
// function flushes pending spans.
func initTelemetry(ctx context.Context) func() {
	cfg := config.Global().Get().Telemetry
	if !cfg.Enabled {
		return func() {}
	}

	otlpCfg := telemetry.DefaultOTLPConfig("zerotrim")
	otlpCfg.ServiceVersion = version
	if cfg.Endpoint != "" {
		otlpCfg.Endpoint = cfg.Endpoint
	}

	shutdown, err := telemetry.InitOTLP(otlpCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: telemetry disabled: %v\n", err)
		return func() {}
	}

	return func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		shutdown(flushCtx)
	}
}
