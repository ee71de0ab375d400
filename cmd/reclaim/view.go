package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reclaim/internal/levels"
	"github.com/vovakirdan/reclaim/internal/platform/tui"
	"github.com/vovakirdan/reclaim/internal/reclaim"
)

var flagMono bool

var viewCmd = &cobra.Command{
	Use:   "view [file|level-id]",
	Short: "Open the gain heatmap viewer",
	Long: `Show a grid with every debris cell colored by how many cells its
removal reclaims.

The argument is a grid file or the ID of a level (see 'reclaim levels').
Without an argument the grid is read from stdin.

Controls:
  Arrows/hjkl - Move the cursor
  N           - Jump to the best removal
  Tab         - Toggle heatmap/plain grid
  ?           - More keys
  Q/Esc       - Quit

Examples:
  reclaim view grid.txt
  reclaim view e01-cross
  reclaim gen --rows 60 --cols 200 | reclaim view`,
	Args: cobra.MaximumNArgs(1),
	RunE: runView,
}

func init() {
	viewCmd.Flags().BoolVar(&flagMono, "mono", false, "Use the grayscale theme")
}

func runView(cmd *cobra.Command, args []string) error {
	title, g, err := resolveViewGrid(cmd, args)
	if err != nil {
		return err
	}

	a, err := reclaim.AnalyzeWith(cmd.Context(), g, settings.Analysis.Options())
	if err != nil {
		return err
	}

	theme := tui.DefaultTheme()
	if flagMono {
		theme = tui.MonochromeTheme()
	}
	width, height := terminalSize()
	return tui.RunViewer(title, g, a, width, height, theme)
}

// resolveViewGrid treats an argument naming an existing file as a grid
// file and anything else as a level ID.
func resolveViewGrid(cmd *cobra.Command, args []string) (string, *reclaim.Grid, error) {
	if len(args) == 0 {
		return readGrid(cmd.InOrStdin(), args)
	}
	if _, err := os.Stat(args[0]); err == nil {
		return readGrid(cmd.InOrStdin(), args)
	}

	l, err := levelLoader(nil).LoadByID(args[0])
	if errors.Is(err, levels.ErrLevelNotFound) && settings.Levels.Dir != "" {
		l, err = levels.Builtin().LoadByID(args[0])
	}
	if errors.Is(err, levels.ErrLevelNotFound) {
		if ids, idsErr := levelLoader(nil).ListIDs(); idsErr == nil && len(ids) > 0 {
			return "", nil, fmt.Errorf("%w (available: %s)", err, strings.Join(ids, ", "))
		}
	}
	if err != nil {
		return "", nil, err
	}
	return l.Name, l.Grid, nil
}
