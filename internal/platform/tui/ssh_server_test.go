package tui

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/vovakirdan/reclaim/internal/config"
	"github.com/vovakirdan/reclaim/internal/logging"
	"github.com/vovakirdan/reclaim/internal/reclaim"
)

func TestSolveBatch(t *testing.T) {
	store := openTestStore(t)
	srv := &SSHServer{store: store, logger: logging.Discard()}

	var out, errOut bytes.Buffer
	code := srv.solveBatch(context.Background(), strings.NewReader("3 3\n...\n.#.\n...\n"), &out, &errOut, sessionSource("alice"))

	if code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, errOut.String())
	}
	if out.String() != "9\n" {
		t.Errorf("stdout = %q, expected %q", out.String(), "9\n")
	}

	runs, err := store.RunsBySource("ssh:alice", 10)
	if err != nil {
		t.Fatalf("RunsBySource() failed: %v", err)
	}
	if len(runs) != 1 || runs[0].Result != 9 || runs[0].BestRow != 2 || runs[0].BestCol != 2 {
		t.Errorf("saved runs = %+v", runs)
	}
}

func TestSolveBatchMalformed(t *testing.T) {
	store := openTestStore(t)
	srv := &SSHServer{store: store, logger: logging.Discard()}

	cases := []string{
		"",
		"0 3\n",
		"2 3\n...\n..\n",
		"1 3\n.x.\n",
	}
	for _, input := range cases {
		var out, errOut bytes.Buffer
		code := srv.solveBatch(context.Background(), strings.NewReader(input), &out, &errOut, "ssh:bob")

		if code != 1 {
			t.Errorf("input %q: exit code = %d, expected 1", input, code)
		}
		if out.Len() != 0 {
			t.Errorf("input %q: malformed input must not print a number, got %q", input, out.String())
		}
		if !strings.HasPrefix(errOut.String(), "Error: ") {
			t.Errorf("input %q: stderr = %q", input, errOut.String())
		}
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("rejected grids should not be saved, got %d runs", len(runs))
	}
}

func TestSolveBatchParallelWithoutStore(t *testing.T) {
	srv := &SSHServer{
		config: SSHServerConfig{Analysis: reclaim.Options{Workers: 4, ParallelThreshold: 1}},
		logger: logging.Discard(),
	}

	g, err := reclaim.Generate(reclaim.GenParams{Rows: 80, Cols: 30, Density: 0.2, Seed: 9})
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	var out, errOut bytes.Buffer
	if code := srv.solveBatch(context.Background(), strings.NewReader(g.Format()), &out, &errOut, "ssh:carol"); code != 0 {
		t.Fatalf("exit code = %d, stderr %q", code, errOut.String())
	}
	if want := reclaim.Solve(g); strings.TrimSpace(out.String()) != strconv.Itoa(want) {
		t.Errorf("stdout = %q, expected %d", out.String(), want)
	}
}

func TestSSHServerConfigFrom(t *testing.T) {
	cfg := config.Default()
	sc := SSHServerConfigFrom(cfg, nil)

	if sc.Address != cfg.Server.Address || sc.DBPath != cfg.Storage.Path {
		t.Errorf("address/db not copied: %+v", sc)
	}
	if sc.IdleTimeout != cfg.Server.IdleTimeout() {
		t.Errorf("idle timeout = %v", sc.IdleTimeout)
	}
	if sc.Analysis.Workers != cfg.Analysis.Workers {
		t.Errorf("analysis options not copied: %+v", sc.Analysis)
	}
}
