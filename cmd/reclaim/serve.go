package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reclaim/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the reclaim SSH server",
	Long: `Start an SSH server for remote analysis.

Interactive connections get a level picker and the heatmap viewer.
Connections without a terminal are answered in batch mode: the grid is
read from stdin and the result written back, so

  ssh -p 23235 localhost < grid.txt

prints the same number as 'reclaim solve grid.txt'. Runs are recorded as
ssh:<user>.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.reclaim/host_key

Examples:
  reclaim serve                           # Listen on :23235 with auto-generated key
  reclaim serve --ssh :2222               # Listen on port 2222
  reclaim serve --host-key ./my_host_key  # Use specific host key`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address host:port (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (0 = use config)")
	serveCmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory of levels offered to interactive sessions")
}

var flagLevelsDir string

func runServe(cmd *cobra.Command, _ []string) error {
	if flagSSHAddr != "" {
		settings.Server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		settings.Server.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		settings.Server.IdleTimeoutMinutes = flagIdleTimeout
	}

	var args []string
	if flagLevelsDir != "" {
		args = []string{flagLevelsDir}
	}
	lv, err := levelLoader(args).LoadAll()
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfigFrom(settings, lv)
	cfg.Logger = logger.WithPrefix("reclaim-ssh")

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Starting reclaim SSH server on %s\n", server.Addr())
	fmt.Fprintln(out, "Press Ctrl+C to stop")

	return server.ListenAndServe()
}
