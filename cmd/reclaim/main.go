// reclaim reports how many wasteland cells of a grid can be reclaimed when
// at most one debris cell is removed.
//
// Usage:
//
//	reclaim [file]           - Same as solve
//	reclaim solve [file]     - Print the maximum reclaimable count
//	reclaim levels [dir]     - List levels with their results
//	reclaim gen              - Print a random grid
//	reclaim history [source] - Show recorded runs
//	reclaim view [file|id]   - Open the heatmap viewer
//	reclaim serve            - Start the SSH server
//
// Global flags:
//
//	--config <path>    - Config file (default search: ~/.reclaim, ./configs, embedded)
//	--db <path>        - Run history database (overrides storage.path)
//	--log-level <lvl>  - debug, info, warn or error (overrides log.level)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/reclaim/internal/config"
	"github.com/vovakirdan/reclaim/internal/logging"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	// Set by loadSettings before any command runs
	settings config.Config
	logger   *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "reclaim [file]",
	Short: "Maximum reclaimable wasteland after removing at most one debris cell",
	Long: `reclaim reads a grid of wasteland (.) and debris (#) cells and prints the
largest number of wasteland cells that can be reclaimed when at most one
debris cell is removed. A wasteland cell is reclaimable when none of its
four neighbors is debris.

Input format: "R C" followed by R rows of C characters. With no file the
grid is read from stdin.

Available commands:
  solve    - Print the result for one grid (default)
  levels   - List levels with their results
  gen      - Print a random grid
  history  - Show recorded runs
  view     - Heatmap viewer
  serve    - SSH server

Examples:
  reclaim grid.txt
  echo "3 3 ... .#. ..." | reclaim
  reclaim solve --explain grid.txt
  reclaim gen --rows 500 --cols 500 | reclaim solve --parallel 8`,
	Args:              cobra.MaximumNArgs(1),
	PersistentPreRunE: loadSettings,
	RunE:              runSolve,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	addSolveFlags(rootCmd)

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadSettings resolves the config file and applies flag overrides.
func loadSettings(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	l, err := logging.New(os.Stderr, cfg.Log.Level, "reclaim")
	if err != nil {
		return err
	}

	settings = cfg
	logger = l
	logger.Debug("settings loaded", "config", flagConfig, "db", cfg.Storage.Path)
	return nil
}
