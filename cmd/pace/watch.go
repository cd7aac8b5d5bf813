package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/AnatoleLucet/pace"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchWait time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch PATH...",
	Short: "Report changed files once they settle",
	Long: `Watches the given files and directories and prints the sorted list of
changed paths, space separated, once no event arrived for --wait.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return watchPaths(cmd.Context(), args, watchWait, cmd.OutOrStdout())
	},
}

func init() {
	watchCmd.Flags().DurationVarP(&watchWait, "wait", "w", 300*time.Millisecond, "quiet period before changes are reported")
}

// changeSet accumulates changed paths between two reports.
type changeSet struct {
	mu    sync.Mutex
	paths map[string]struct{}
}

func (c *changeSet) add(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.paths == nil {
		c.paths = make(map[string]struct{})
	}
	c.paths[path] = struct{}{}
}

func (c *changeSet) drain() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	paths := slices.Sorted(maps.Keys(c.paths))
	c.paths = nil
	return paths
}

func watchPaths(ctx context.Context, paths []string, wait time.Duration, out io.Writer) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watching %s: %w", path, err)
		}
		logger.Debug("Watching path", zap.String("path", path))
	}

	w := &lineWriter{out: out}
	changes := &changeSet{}
	report := pace.NewDebouncer(func(struct{}) {
		if paths := changes.drain(); len(paths) > 0 {
			w.print(strings.Join(paths, " "))
		}
	}, wait, pace.WithLogger(slogger()))
	defer report.Cancel()

	for {
		select {
		case <-ctx.Done():
			return w.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return w.Err()
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			logger.Debug("File change detected", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			changes.add(event.Name)
			report.Call(struct{}{})
		case err, ok := <-watcher.Errors:
			if !ok {
				return w.Err()
			}
			logger.Error("File watcher error", zap.Error(err))
		}
	}
}
