package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/reclaim/internal/platform/tui"
	"github.com/vovakirdan/reclaim/internal/storage"
)

var (
	flagHistoryLimit int
	flagInteractive  bool
	flagClear        bool
	flagStats        bool
	flagRunID        string
)

var historyCmd = &cobra.Command{
	Use:   "history [source]",
	Short: "Show recorded runs",
	Long: `Show runs recorded with solve --save or submitted over SSH.

Without a source the most recent runs are listed. With a source, that
source's runs are listed best result first.

Examples:
  reclaim history
  reclaim history grid.txt
  reclaim history ssh:alice --limit 5
  reclaim history --interactive
  reclaim history --stats
  reclaim history --run 0b6c1f0e-...
  reclaim history stdin --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Maximum runs to list")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Open the history table")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the source's runs (all runs without a source)")
	historyCmd.Flags().BoolVar(&flagStats, "stats", false, "Print per-source totals")
	historyCmd.Flags().StringVar(&flagRunID, "run", "", "Print one run by its run ID")
}

// terminalSize returns the size of stdout, or 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

func runHistory(cmd *cobra.Command, args []string) error {
	source := ""
	if len(args) > 0 {
		source = args[0]
	}

	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(source); err != nil {
			return err
		}
		logger.Info("cleared runs", "source", source)
		return nil
	}

	switch {
	case flagRunID != "":
		return printRun(cmd, store, flagRunID)
	case flagStats:
		return printStats(cmd, store)
	}

	if flagInteractive {
		width, height := terminalSize()
		return tui.RunHistory(store, width, height, source)
	}

	var runs []storage.Run
	if source == "" {
		runs, err = store.RecentRuns(flagHistoryLimit)
	} else {
		runs, err = store.RunsBySource(source, flagHistoryLimit)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if source == "" {
		fmt.Fprintln(out, "Recent runs")
	} else {
		fmt.Fprintf(out, "Runs - %s\n", source)
	}
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'reclaim solve --save <file>' to record one.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-6s  %-9s  %-12s  %-16s  %s\n", "#", "Result", "Grid", "Best", "Source", "Date")
	fmt.Fprintf(out, "  %-4s  %-6s  %-9s  %-12s  %-16s  %s\n", "-", "------", "----", "----", "------", "----")
	for i, r := range runs {
		best := "none"
		if r.BestGain > 0 {
			best = fmt.Sprintf("+%d (%d,%d)", r.BestGain, r.BestRow, r.BestCol)
		}
		fmt.Fprintf(out, "  %-4d  %-6d  %-9s  %-12s  %-16s  %s\n",
			i+1, r.Result, fmt.Sprintf("%dx%d", r.Rows, r.Cols), best, r.Source,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if source != "" {
		if best, err := store.BestResult(source); err == nil {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "Best: %d\n", best)
		}
	}
	return nil
}

// printRun prints every stored field of one run.
func printRun(cmd *cobra.Command, store *storage.Store, runID string) error {
	r, err := store.RunByID(runID)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no run with ID %s", runID)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run:       %s\n", r.RunID)
	fmt.Fprintf(out, "Source:    %s\n", r.Source)
	fmt.Fprintf(out, "Grid:      %dx%d\n", r.Rows, r.Cols)
	fmt.Fprintf(out, "Baseline:  %d\n", r.Baseline)
	if r.BestGain > 0 {
		fmt.Fprintf(out, "Removal:   (%d,%d) gains %d\n", r.BestRow, r.BestCol, r.BestGain)
	} else {
		fmt.Fprintln(out, "Removal:   none helps")
	}
	fmt.Fprintf(out, "Result:    %d\n", r.Result)
	fmt.Fprintf(out, "Took:      %s\n", r.Duration)
	fmt.Fprintf(out, "Recorded:  %s\n", r.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// printStats prints one line of totals per source.
func printStats(cmd *cobra.Command, store *storage.Store) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	fmt.Fprintf(out, "  %-16s  %-5s  %-6s  %-8s  %-10s  %s\n", "Source", "Runs", "Best", "Average", "Cells", "Last run")
	fmt.Fprintf(out, "  %-16s  %-5s  %-6s  %-8s  %-10s  %s\n", "------", "----", "----", "-------", "-----", "--------")
	for _, st := range stats {
		fmt.Fprintf(out, "  %-16s  %-5d  %-6d  %-8.1f  %-10d  %s\n",
			st.Source, st.Runs, st.BestResult, st.AvgResult, st.TotalCells,
			st.LastRun.Format("2006-01-02 15:04"))
	}
	return nil
}
