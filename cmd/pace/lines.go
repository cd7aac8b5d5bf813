package main

import (
	"bufio"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/AnatoleLucet/pace"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	debounceWait  time.Duration
	throttleLimit time.Duration
	trailing      bool
)

var debounceCmd = &cobra.Command{
	Use:   "debounce",
	Short: "Print a stdin line once input has been quiet for --wait",
	Long: `Reads lines from stdin and prints the last line of each burst, once no
new line arrived for --wait. The pending line is printed at end of input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return debounceLines(cmd.InOrStdin(), cmd.OutOrStdout(), debounceWait)
	},
}

var throttleCmd = &cobra.Command{
	Use:   "throttle",
	Short: "Print at most one stdin line per --limit",
	Long: `Reads lines from stdin and prints the first line of each --limit interval,
dropping the others. With --trailing, the last dropped line of an interval is
printed when it ends, and at end of input.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return throttleLines(cmd.InOrStdin(), cmd.OutOrStdout(), throttleLimit, trailing)
	},
}

func init() {
	debounceCmd.Flags().DurationVarP(&debounceWait, "wait", "w", 300*time.Millisecond, "quiet period before a line is printed")

	throttleCmd.Flags().DurationVarP(&throttleLimit, "limit", "l", time.Second, "minimum interval between printed lines")
	throttleCmd.Flags().BoolVarP(&trailing, "trailing", "t", false, "also print the last line dropped in each interval")
}

// lineWriter serializes writes coming from timer goroutines.
type lineWriter struct {
	mu  sync.Mutex
	out io.Writer
	err error
}

func (w *lineWriter) print(line string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintln(w.out, line)
}

func (w *lineWriter) Err() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return w.err
}

func debounceLines(in io.Reader, out io.Writer, wait time.Duration) error {
	w := &lineWriter{out: out}
	d := pace.NewDebouncer(w.print, wait, pace.WithLogger(slogger()))

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		d.Call(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		d.Cancel()
		return fmt.Errorf("reading input: %w", err)
	}

	if d.Flush() {
		logger.Debug("flushed pending line at end of input")
	}
	return w.Err()
}

func throttleLines(in io.Reader, out io.Writer, limit time.Duration, trailing bool) error {
	w := &lineWriter{out: out}

	opts := []pace.Option{pace.WithLogger(slogger())}
	if trailing {
		opts = append(opts, pace.WithTrailing())
	}
	th := pace.NewThrottler(w.print, limit, opts...)

	dropped := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if !th.Call(scanner.Text()) {
			dropped++
		}
	}
	if err := scanner.Err(); err != nil {
		th.Cancel()
		return fmt.Errorf("reading input: %w", err)
	}

	if trailing {
		th.Flush()
	}
	logger.Debug("input done", zap.Int("dropped", dropped))
	return w.Err()
}
