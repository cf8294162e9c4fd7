package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/zerotrim/zerotrim/pkg/config"
	"github.com/zerotrim/zerotrim/pkg/runs"
	"github.com/zerotrim/zerotrim/pkg/util"
	"github.com/zerotrim/zerotrim/pkg/watch"
)

var watchDir string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch a directory and thin datasets as they appear",
	Long: `Watch a directory for dataset writes and thin each file once it has
settled. Reduced files are written next to their source with the
configured suffix, and are themselves excluded from rewatching.

Example:
  zerotrim watch -d data/episodes`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&watchDir, "dir", "d", ".", "Directory to watch")
	watchCmd.Flags().IntVar(&maxZeroSequence, "max-zero-sequence", runs.DefaultMaxZeroSequence, "Longest idle run left untouched")
	watchCmd.Flags().IntVar(&keepInterval, "keep-interval", runs.DefaultKeepInterval, "Stride of kept rows inside thinned runs")
}

func runWatch(cmd *cobra.Command, args []string) error {
	stat, err := os.Stat(watchDir)
	if err != nil {
		return fmt.Errorf("cannot watch %s: %w", watchDir, err)
	}
	if !stat.IsDir() {
		return fmt.Errorf("not a directory: %s", watchDir)
	}

	cfg := config.Global().Get().Watch

	ctx, cancel := signalContext()
	defer cancel()

	shutdown := initTelemetry(ctx)
	defer shutdown()

	opts := runs.Options{
		MaxZeroSequence: maxZeroSequence,
		KeepInterval:    keepInterval,
	}

	watcher, err := watch.NewWatcher(watchDir, cfg.OutputSuffix, cfg.Debounce)
	if err != nil {
		return err
	}
	defer watcher.Close()

	watcher.OnChange = func(path string) error {
		output := watchOutputPath(path, cfg.OutputSuffix)
		stats, err := processFile(ctx, path, output, opts, false)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d -> %d rows (-%.2f%%)\n",
			filepath.Base(path), stats.OriginalRows, stats.FilteredRows, stats.ReductionPct)
		return nil
	}
	watcher.OnError = func(path string, err error) {
		if path == "" {
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
			return
		}
		fmt.Fprintf(os.Stderr, "%s: %v\n", filepath.Base(path), err)
	}

	fmt.Printf("Watching %s (Ctrl+C to stop)...\n", watchDir)

	if err := watcher.Run(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// watchOutputPath writes "<stem><suffix>.csv" next to the input.
func watchOutputPath(input, suffix string) string {
	stem := util.StripCompression(input)
	stem = stem[:len(stem)-len(filepath.Ext(stem))]
	return stem + suffix + ".csv"
}
