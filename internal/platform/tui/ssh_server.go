package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/reclaim/internal/config"
	"github.com/vovakirdan/reclaim/internal/levels"
	"github.com/vovakirdan/reclaim/internal/logging"
	"github.com/vovakirdan/reclaim/internal/reclaim"
	"github.com/vovakirdan/reclaim/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.reclaim/host_key.
	HostKeyPath string

	// DBPath is the path to the run history database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Analysis picks the serial or parallel scan for submitted grids.
	Analysis reclaim.Options

	// Levels are offered by the interactive picker.
	Levels []levels.Level

	// Logger receives session events. Nil means a default stderr logger.
	Logger *log.Logger
}

// SSHServerConfigFrom builds a server config from the loaded settings.
func SSHServerConfigFrom(cfg config.Config, lv []levels.Level) SSHServerConfig {
	return SSHServerConfig{
		Address:     cfg.Server.Address,
		HostKeyPath: cfg.Server.HostKeyPath,
		DBPath:      cfg.Storage.Path,
		IdleTimeout: cfg.Server.IdleTimeout(),
		Analysis:    cfg.Analysis.Options(),
		Levels:      lv,
	}
}

// SSHServer wraps a Wish SSH server for reclaim.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		var err error
		logger, err = logging.New(os.Stderr, "info", "reclaim-ssh")
		if err != nil {
			return nil, err
		}
	}

	// Runs are best-effort; the server still answers without a database
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		hostKeyPath = config.UserPath("host_key")
	}
	hostKeyPath, err = config.ExpandHome(hostKeyPath)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve host key path: %w", err)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	// The last middleware runs first: log, then divert PTY-less sessions to
	// batch mode, then hand the rest to Bubble Tea.
	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.batchMiddleware,
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each interactive session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()

	model := NewSessionModel(s.config.Levels, pty.Window.Width, pty.Window.Height, sshSession.User(), s.saveRun)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// batchMiddleware answers sessions without a PTY: the grid is read from
// the session's stdin and the result written back, as in `ssh host < grid.txt`.
func (s *SSHServer) batchMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		if _, _, ok := sshSession.Pty(); ok {
			next(sshSession)
			return
		}

		code := s.solveBatch(sshSession.Context(), sshSession, sshSession, sshSession.Stderr(), sessionSource(sshSession.User()))
		if err := sshSession.Exit(code); err != nil {
			s.logger.Debug("exit status not delivered", "user", sshSession.User(), "error", err)
		}
	}
}

// solveBatch reads one grid from in, writes the result to out and returns
// the process exit status. Malformed input writes the error to errOut and
// never yields a number.
func (s *SSHServer) solveBatch(ctx context.Context, in io.Reader, out, errOut io.Writer, source string) int {
	start := time.Now()

	g, err := reclaim.Parse(in)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		s.logger.Warn("rejected grid", "source", source, "error", err)
		return 1
	}

	a, err := reclaim.AnalyzeWith(ctx, g, s.config.Analysis)
	if err != nil {
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintln(out, a.Result())
	s.logger.Info("solved grid",
		"source", source,
		"rows", g.Rows(),
		"cols", g.Cols(),
		"result", a.Result(),
	)
	s.saveRun(storage.NewRun(source, g, a, time.Since(start)))
	return 0
}

// saveRun records a run when a database is available.
func (s *SSHServer) saveRun(r storage.Run) {
	if s.store == nil {
		return
	}
	if _, _, err := s.store.SaveRun(r); err != nil {
		s.logger.Warn("could not save run", "source", r.Source, "error", err)
	}
}

// sessionSource names runs submitted over SSH.
func sessionSource(user string) string {
	return "ssh:" + user
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		_, _, pty := sshSession.Pty()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"pty", pty,
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
