package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yildizm/textlens/internal/client"
	"github.com/yildizm/textlens/internal/config"
	"github.com/yildizm/textlens/internal/dashboard"
	"github.com/yildizm/textlens/internal/logger"
)

// Editors write a file in several steps; wait for them to settle
const defaultWatchDebounce = 300 * time.Millisecond

var (
	watchChartsDir string
	watchDebounce  time.Duration
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [file]",
		Short: "Re-analyze a file every time it changes",
		Long: `Upload a file for analysis, then upload it again after every change.

Uses file system notifications on the file's directory, so editors that save
by replacing the file are followed too. Each result replaces the previous
one, charts included. Press Ctrl+C to stop watching.

Examples:
  textlens watch draft.txt
  textlens watch draft.txt --charts-dir ./charts -o markdown`,
		Args: cobra.ExactArgs(1),
		RunE: runWatch,
	}

	cmd.Flags().StringVar(&watchChartsDir, "charts-dir", "", "export charts as images into this directory")
	cmd.Flags().DurationVar(&watchDebounce, "debounce", defaultWatchDebounce, "quiet period after a change before re-analyzing")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := GetGlobalConfig()
	if err != nil {
		return err
	}

	filename := args[0]
	if err := validateFilePath(filename); err != nil {
		return fmt.Errorf("invalid file path: %w", err)
	}
	target, err := filepath.Abs(filename)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", filename, err)
	}

	chartsDir := watchChartsDir
	if chartsDir == "" {
		chartsDir = cfg.Charts.Dir
	}
	log := newLogger("watch")
	dash, err := createDashboard(cfg, log, chartsDir)
	if err != nil {
		return err
	}
	if chartsDir == "" {
		defer func() {
			if err := dash.Close(); err != nil {
				log.Warn("failed to release charts: %v", err)
			}
		}()
	}

	watcher, err := createWatcher(filepath.Dir(target))
	if err != nil {
		return err
	}
	defer cleanupWatcher(watcher)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &fileWatcher{
		target:   target,
		dash:     dash,
		cfg:      cfg,
		out:      cmd.OutOrStdout(),
		log:      log,
		debounce: watchDebounce,
	}

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching file: %s\n", target)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}
	return w.run(ctx, watcher.Events, watcher.Errors)
}

// fileWatcher re-analyzes one file whenever it settles after a change
type fileWatcher struct {
	target   string
	dash     *dashboard.Dashboard
	cfg      *config.Config
	out      io.Writer
	log      *logger.Logger
	debounce time.Duration
}

// run analyzes the file once, then after every relevant event until ctx
// is done or the event channel closes
func (w *fileWatcher) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	w.analyze(ctx)

	var settle <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if w.isRelevant(event) {
				settle = time.After(w.debounce)
			}

		case <-settle:
			settle = nil
			w.analyze(ctx)

		case err, ok := <-errs:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.log.Warn("watcher error: %v", err)
		}
	}
}

// isRelevant reports whether event changed the content of the target
func (w *fileWatcher) isRelevant(event fsnotify.Event) bool {
	if filepath.Clean(event.Name) != w.target {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}

// analyze uploads the target and prints the dashboard. Failures are
// printed too and never stop the watch.
func (w *fileWatcher) analyze(ctx context.Context) {
	err := w.dash.AnalyzeFile(ctx, client.FileFromPath(w.target))
	if ctx.Err() != nil {
		return
	}

	fmt.Fprintf(w.out, "%s [%s] %s\n", GetEmoji("watch"), time.Now().Format("15:04:05"), w.target)
	if err != nil {
		w.log.Debug("analysis of %s failed: %v", w.target, err)
	}

	f, ferr := getFormatter(w.cfg)
	if ferr != nil {
		w.log.Error("failed to get formatter: %v", ferr)
		return
	}
	output, ferr := f.Format(w.dash.Snapshot())
	if ferr != nil {
		w.log.Error("failed to format output: %v", ferr)
		return
	}
	if _, ferr := w.out.Write(output); ferr != nil {
		w.log.Error("failed to write output: %v", ferr)
	}
}

// cleanupWatcher safely closes watcher with error logging
func cleanupWatcher(watcher *fsnotify.Watcher) {
	if err := watcher.Close(); err != nil && isVerbose() {
		fmt.Fprintf(os.Stderr, "Warning: failed to close watcher: %v\n", err)
	}
}

// createWatcher creates a watcher on dir
func createWatcher(dir string) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := watcher.Add(dir); err != nil {
		cleanupWatcher(watcher)
		return nil, fmt.Errorf("failed to watch directory: %w", err)
	}

	return watcher, nil
}
