package config

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	var fromYAML Config
	if err := yaml.Unmarshal(DefaultYAML(), &fromYAML); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if fromYAML != Default() {
		t.Errorf("embedded default %+v differs from Default() %+v", fromYAML, Default())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	data := []byte("analysis:\n  workers: 8\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Analysis.Workers != 8 {
		t.Errorf("expected workers 8, got %d", cfg.Analysis.Workers)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected log level debug, got %q", cfg.Log.Level)
	}
	// Unset keys keep defaults
	if cfg.Analysis.ParallelThreshold != Default().Analysis.ParallelThreshold {
		t.Errorf("parallel_threshold should keep default, got %d", cfg.Analysis.ParallelThreshold)
	}
	if cfg.Server.Address != ":23235" {
		t.Errorf("server address should keep default, got %q", cfg.Server.Address)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing custom config")
	}
}

func TestLoadCustomPathInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("analysis: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("expected parse error")
	}

	outOfRange := filepath.Join(dir, "range.yaml")
	if err := os.WriteFile(outOfRange, []byte("generator:\n  density: 2\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(outOfRange); err == nil {
		t.Error("expected validation error for density 2")
	}
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"negative workers", func(c *Config) { c.Analysis.Workers = -1 }, false},
		{"negative threshold", func(c *Config) { c.Analysis.ParallelThreshold = -5 }, false},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"negative idle", func(c *Config) { c.Server.IdleTimeoutMinutes = -1 }, false},
		{"empty level", func(c *Config) { c.Log.Level = "" }, true},
	}

	for _, tc := range testCases {
		cfg := Default()
		tc.mutate(&cfg)
		err := cfg.Validate()
		if (err == nil) != tc.ok {
			t.Errorf("%s: Validate() error = %v, want ok=%v", tc.name, err, tc.ok)
		}
	}
}

func TestAnalysisOptions(t *testing.T) {
	a := AnalysisConfig{Workers: 4, ParallelThreshold: 100}
	opts := a.Options()
	if opts.Workers != 4 || opts.ParallelThreshold != 100 {
		t.Errorf("Options() = %+v", opts)
	}
}

func TestExpandHome(t *testing.T) {
	got, err := ExpandHome("/abs/path.db")
	if err != nil || got != "/abs/path.db" {
		t.Errorf("absolute path changed: %q, %v", got, err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err = ExpandHome("~/.reclaim/runs.db")
	if err != nil {
		t.Fatalf("ExpandHome failed: %v", err)
	}
	if want := filepath.Join(home, ".reclaim", "runs.db"); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
