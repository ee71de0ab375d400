package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reclaim/internal/levels"
)

var levelsCmd = &cobra.Command{
	Use:   "levels [dir]",
	Short: "List levels with their computed results",
	Long: `Load every level file (.yaml, .yml, .txt, .grid) under a directory and
print its size, computed result and whether it matches the recorded answer.

Without a directory, levels.dir from the config is used; when that is empty
the built-in levels are listed.

Examples:
  reclaim levels
  reclaim levels ./levels`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLevels,
}

// levelLoader picks the directory argument, the configured directory or
// the built-in set, in that order.
func levelLoader(args []string) *levels.Loader {
	dir := settings.Levels.Dir
	if len(args) > 0 {
		dir = args[0]
	}
	if dir == "" {
		return levels.Builtin().WithLogger(logger)
	}
	return levels.NewLoader(dir).WithLogger(logger)
}

func runLevels(cmd *cobra.Command, args []string) error {
	loader := levelLoader(args)
	all, err := loader.LoadAll()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(all) == 0 {
		fmt.Fprintf(out, "No levels found in %s.\n", loader.Root)
		return nil
	}

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range all {
		if len(l.ID) > maxIDLen {
			maxIDLen = len(l.ID)
		}
	}

	fmt.Fprintf(out, "  %-*s  %-9s  %-6s  %s\n", maxIDLen, "ID", "Size", "Result", "Name")
	fmt.Fprintf(out, "  %-*s  %-9s  %-6s  %s\n", maxIDLen, "--", "----", "------", "----")

	failed := 0
	for _, l := range all {
		a := l.Analyze()
		mark := " "
		if ok, expected := l.Check(a); l.Expected != nil {
			mark = "✓"
			if !ok {
				mark = fmt.Sprintf("✗ expected %d", expected)
				failed++
			}
		}
		size := fmt.Sprintf("%dx%d", l.Grid.Rows(), l.Grid.Cols())
		fmt.Fprintf(out, "  %-*s  %-9s  %-6d  %s %s\n", maxIDLen, l.ID, size, a.Result(), l.Name, mark)
	}

	if failed > 0 {
		return fmt.Errorf("%d level(s) disagree with their expected result", failed)
	}
	return nil
}
