// Package config provides YAML-based configuration loading for reclaim.
package config

import (
	"fmt"
	"time"

	"github.com/vovakirdan/reclaim/internal/reclaim"
)

// Config contains all settings for the reclaim command and server.
type Config struct {
	Storage   StorageConfig   `yaml:"storage"`
	Log       LogConfig       `yaml:"log"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
	Server    ServerConfig    `yaml:"server"`
	Levels    LevelsConfig    `yaml:"levels"`
	Generator GeneratorConfig `yaml:"generator"`
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	Path string `yaml:"path"` // "~" is expanded to the home directory
}

// LogConfig controls the charmbracelet logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// AnalysisConfig decides when the row-partitioned scan is used.
type AnalysisConfig struct {
	Workers           int `yaml:"workers"`            // 0 or 1 = always serial
	ParallelThreshold int `yaml:"parallel_threshold"` // Minimum cell count for a parallel scan
}

// ServerConfig configures the SSH front end.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKeyPath        string `yaml:"host_key_path"` // Empty = ~/.reclaim/host_key
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
}

// IdleTimeout returns the idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// LevelsConfig points at a directory of level files.
type LevelsConfig struct {
	Dir string `yaml:"dir"` // Empty = built-in levels only
}

// GeneratorConfig holds defaults for `reclaim gen`.
type GeneratorConfig struct {
	Rows    int     `yaml:"rows"`
	Cols    int     `yaml:"cols"`
	Density float64 `yaml:"density"`
}

// Options converts the section into analyzer options.
func (a AnalysisConfig) Options() reclaim.Options {
	return reclaim.Options{
		Workers:           a.Workers,
		ParallelThreshold: a.ParallelThreshold,
	}
}

// Validate checks ranges that would otherwise fail deep inside a command.
func (c Config) Validate() error {
	if c.Analysis.Workers < 0 {
		return fmt.Errorf("config: analysis.workers must be >= 0, got %d", c.Analysis.Workers)
	}
	if c.Analysis.ParallelThreshold < 0 {
		return fmt.Errorf("config: analysis.parallel_threshold must be >= 0, got %d", c.Analysis.ParallelThreshold)
	}
	if c.Generator.Density < 0 || c.Generator.Density > 1 {
		return fmt.Errorf("config: generator.density must be in [0,1], got %g", c.Generator.Density)
	}
	if c.Server.IdleTimeoutMinutes < 0 {
		return fmt.Errorf("config: server.idle_timeout_minutes must be >= 0, got %d", c.Server.IdleTimeoutMinutes)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}
