package config

import (
	_ "embed"
)

//go:embed defaults/reclaim.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Path: "~/.reclaim/runs.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Analysis: AnalysisConfig{
			Workers:           4,
			ParallelThreshold: 250000,
		},
		Server: ServerConfig{
			Address:            ":23235",
			IdleTimeoutMinutes: 30,
		},
		Generator: GeneratorConfig{
			Rows:    20,
			Cols:    40,
			Density: 0.15,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
