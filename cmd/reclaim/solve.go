package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/reclaim/internal/reclaim"
	"github.com/vovakirdan/reclaim/internal/storage"
)

var (
	flagExplain  bool
	flagGainMap  bool
	flagParallel int
	flagSave     bool
	flagProfile  string
)

var solveCmd = &cobra.Command{
	Use:   "solve [file]",
	Short: "Print the maximum reclaimable count for a grid",
	Long: `Read one grid from a file or stdin and print the maximum number of
reclaimable wasteland cells after removing at most one debris cell.

Malformed input prints an error to stderr and exits with status 1.

Examples:
  reclaim solve grid.txt
  reclaim solve < grid.txt
  reclaim solve --explain --map grid.txt
  reclaim solve --parallel 8 --save big.txt
  reclaim solve --profile cpu big.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSolve,
}

func init() {
	addSolveFlags(solveCmd)
}

// addSolveFlags registers solve's flags; the root command shares them.
func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&flagExplain, "explain", false, "Print a report instead of the bare number")
	cmd.Flags().BoolVar(&flagGainMap, "map", false, "Print the grid next to its gain map")
	cmd.Flags().IntVar(&flagParallel, "parallel", 0, "Scan with N workers (0 = use config)")
	cmd.Flags().BoolVar(&flagSave, "save", false, "Record the run in the history database")
	cmd.Flags().StringVar(&flagProfile, "profile", "", "Write a profile to the current directory: cpu or mem")
}

func runSolve(cmd *cobra.Command, args []string) error {
	if flagParallel < 0 {
		return fmt.Errorf("--parallel must be >= 0, got %d", flagParallel)
	}
	if flagProfile != "" {
		stop, err := startProfile(flagProfile)
		if err != nil {
			return err
		}
		defer stop.Stop()
	}

	source, g, err := readGrid(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	opts := settings.Analysis.Options()
	if flagParallel > 0 {
		opts.Workers = flagParallel
		opts.ParallelThreshold = 0
	}

	start := time.Now()
	a, err := reclaim.AnalyzeWith(cmd.Context(), g, opts)
	if err != nil {
		return err
	}
	took := time.Since(start)

	logger.Debug("analyzed grid",
		"source", source,
		"rows", g.Rows(),
		"cols", g.Cols(),
		"workers", opts.Workers,
		"took", took,
	)

	out := cmd.OutOrStdout()
	if flagGainMap {
		fmt.Fprint(out, reclaim.RenderGain(g, a))
		fmt.Fprintln(out)
	}
	if flagExplain {
		fmt.Fprint(out, reclaim.Explain(g, a))
	} else {
		fmt.Fprintln(out, a.Result())
	}

	if flagSave {
		return saveRun(storage.NewRun(source, g, a, took))
	}
	return nil
}

// readGrid parses the grid from the named file, or from stdin when no
// file is given. It also returns the source name recorded with runs.
func readGrid(stdin io.Reader, args []string) (string, *reclaim.Grid, error) {
	if len(args) == 0 || args[0] == "-" {
		g, err := reclaim.Parse(stdin)
		if err != nil {
			return "", nil, fmt.Errorf("stdin: %w", err)
		}
		return "stdin", g, nil
	}

	f, err := os.Open(args[0])
	if err != nil {
		return "", nil, fmt.Errorf("cannot open grid: %w", err)
	}
	defer f.Close()

	g, err := reclaim.Parse(f)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", args[0], err)
	}
	return args[0], g, nil
}

// saveRun stores a run in the configured history database.
func saveRun(r storage.Run) error {
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	_, runID, err := store.SaveRun(r)
	if err != nil {
		return err
	}
	logger.Info("saved run", "run_id", runID, "source", r.Source, "result", r.Result)
	return nil
}

// startProfile starts a CPU or memory profile written to the working directory.
func startProfile(kind string) (interface{ Stop() }, error) {
	var mode func(*profile.Profile)
	switch kind {
	case "cpu":
		mode = profile.CPUProfile
	case "mem":
		mode = profile.MemProfile
	default:
		return nil, fmt.Errorf("unknown profile %q (want cpu or mem)", kind)
	}
	return profile.Start(mode, profile.ProfilePath("."), profile.Quiet, profile.NoShutdownHook), nil
}
