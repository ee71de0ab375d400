package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/reclaim/internal/reclaim"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestNewRunFromAnalysis(t *testing.T) {
	g, err := reclaim.FromRows([]string{"...", ".#.", "..."})
	if err != nil {
		t.Fatal(err)
	}
	r := NewRun("cross", g, reclaim.Analyze(g), 3*time.Millisecond)

	if r.Rows != 3 || r.Cols != 3 {
		t.Errorf("expected 3x3, got %dx%d", r.Rows, r.Cols)
	}
	if r.Baseline != 4 || r.BestGain != 5 || r.Result != 9 {
		t.Errorf("unexpected numbers: %+v", r)
	}
	if r.BestRow != 2 || r.BestCol != 2 {
		t.Errorf("expected best at (2,2), got (%d,%d)", r.BestRow, r.BestCol)
	}

	solid, _ := reclaim.FromRows([]string{"##"})
	r = NewRun("solid", solid, reclaim.Analyze(solid), 0)
	if r.BestRow != 0 || r.BestCol != 0 {
		t.Errorf("expected no best cell, got (%d,%d)", r.BestRow, r.BestCol)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, result := range []int{100, 50, 200} {
		if _, _, err := store.SaveRun(Run{Source: "field", Rows: 10, Cols: 30, Result: result}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	if _, _, err := store.SaveRun(Run{Source: "quarry", Rows: 3, Cols: 3}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RunsBySource("field", 10)
	if err != nil {
		t.Fatalf("RunsBySource() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}

	// Should be sorted descending
	if runs[0].Result != 200 || runs[1].Result != 100 || runs[2].Result != 50 {
		t.Errorf("Runs not in expected order: %v", runs)
	}

	quarry, err := store.RunsBySource("quarry", 10)
	if err != nil {
		t.Fatalf("RunsBySource() failed: %v", err)
	}
	if len(quarry) != 1 {
		t.Errorf("Expected 1 quarry run, got %d", len(quarry))
	}
}

func TestStoreRunsBySourceLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Source: "test", Result: (i + 1) * 100})
	}

	runs, err := store.RunsBySource("test", 3)
	if err != nil {
		t.Fatalf("RunsBySource() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Result != 500 || runs[1].Result != 400 || runs[2].Result != 300 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreRecentRuns(t *testing.T) {
	store := openTestStore(t)

	for _, src := range []string{"a", "b", "c"} {
		store.SaveRun(Run{Source: src})
	}

	runs, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}
	if runs[0].Source != "c" || runs[1].Source != "b" {
		t.Errorf("Expected newest first, got %s, %s", runs[0].Source, runs[1].Source)
	}
}

func TestStoreRunByID(t *testing.T) {
	store := openTestStore(t)

	in := Run{
		Source:   "stdin",
		Rows:     4,
		Cols:     5,
		Baseline: 7,
		BestGain: 3,
		Result:   10,
		BestRow:  2,
		BestCol:  4,
		Duration: 1500 * time.Microsecond,
	}
	_, runID, err := store.SaveRun(in)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if runID == "" {
		t.Fatal("expected a generated run ID")
	}

	got, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("run not found")
	}
	if got.Result != 10 || got.BestRow != 2 || got.BestCol != 4 || got.Duration != in.Duration {
		t.Errorf("round trip mismatch: %+v", got)
	}

	missing, err := store.RunByID("no-such-run")
	if err != nil || missing != nil {
		t.Errorf("expected nil, nil for missing run, got %v, %v", missing, err)
	}
}

func TestStoreDuplicateRunID(t *testing.T) {
	store := openTestStore(t)

	if _, _, err := store.SaveRun(Run{RunID: "fixed", Source: "x"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, _, err := store.SaveRun(Run{RunID: "fixed", Source: "x"}); err == nil {
		t.Error("expected unique constraint error")
	}
}

func TestStoreBestResult(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestResult("field")
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("Expected 0 for empty source, got %d", best)
	}

	store.SaveRun(Run{Source: "field", Result: 100})
	store.SaveRun(Run{Source: "field", Result: 300})
	store.SaveRun(Run{Source: "field", Result: 200})

	best, err = store.BestResult("field")
	if err != nil {
		t.Fatalf("BestResult() failed: %v", err)
	}
	if best != 300 {
		t.Errorf("Expected 300, got %d", best)
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Source: "field", Result: 100})
	store.SaveRun(Run{Source: "field", Result: 200})
	store.SaveRun(Run{Source: "quarry", Result: 300})

	if err := store.ClearRuns("field"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	field, _ := store.RunsBySource("field", 10)
	if len(field) != 0 {
		t.Errorf("Expected 0 field runs after clear, got %d", len(field))
	}

	quarry, _ := store.RunsBySource("quarry", 10)
	if len(quarry) != 1 {
		t.Errorf("Quarry runs should not be affected by clearing field")
	}
}

func TestStoreClearAllRuns(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Source: "field", Result: 100})
	store.SaveRun(Run{Source: "quarry", Result: 300})

	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}

	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Empty source should clear every run, %d remain", len(runs))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{Source: "b", Rows: 2, Cols: 5, Result: 4})
	store.SaveRun(Run{Source: "a", Rows: 3, Cols: 3, Result: 9})
	store.SaveRun(Run{Source: "b", Rows: 2, Cols: 5, Result: 8})

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("Expected 2 sources, got %d", len(stats))
	}
	if stats[0].Source != "a" || stats[1].Source != "b" {
		t.Errorf("Expected sources sorted, got %s, %s", stats[0].Source, stats[1].Source)
	}
	b := stats[1]
	if b.Runs != 2 || b.BestResult != 8 || b.AvgResult != 6 || b.TotalCells != 20 {
		t.Errorf("Unexpected stats for b: %+v", b)
	}

	sources, err := store.Sources()
	if err != nil {
		t.Fatalf("Sources() failed: %v", err)
	}
	if len(sources) != 2 || sources[0] != "a" {
		t.Errorf("Unexpected sources: %v", sources)
	}
}
