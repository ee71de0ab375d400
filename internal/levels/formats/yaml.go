// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/reclaim/internal/reclaim"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Rows     []string          `yaml:"rows"`
	Expected *int              `yaml:"expected,omitempty"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// Level represents a parsed level ready for use.
type Level struct {
	ID       string
	Name     string
	Grid     *reclaim.Grid
	Expected *int // Known answer, if the file records one
	Metadata map[string]string
}

// ParseYAML parses a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if yl.ID == "" {
		return Level{}, fmt.Errorf("level has no id")
	}

	rows := make([]string, len(yl.Rows))
	for i, r := range yl.Rows {
		rows[i] = strings.TrimSpace(r)
	}
	g, err := reclaim.FromRows(rows)
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", yl.ID, err)
	}

	name := yl.Name
	if name == "" {
		name = yl.ID
	}

	return Level{
		ID:       yl.ID,
		Name:     name,
		Grid:     g,
		Expected: yl.Expected,
		Metadata: yl.Metadata,
	}, nil
}

// MarshalYAML renders a level back to its YAML form.
func MarshalYAML(l Level) ([]byte, error) {
	yl := YAMLLevel{
		ID:       l.ID,
		Name:     l.Name,
		Rows:     l.Grid.Lines(),
		Expected: l.Expected,
		Metadata: l.Metadata,
	}
	return yaml.Marshal(yl)
}

// ParseText parses the plain "R C" + rows input format. The ID is supplied
// by the caller, usually the file name without extension.
func ParseText(data []byte, id string) (Level, error) {
	g, err := reclaim.Parse(strings.NewReader(string(data)))
	if err != nil {
		return Level{}, fmt.Errorf("level %s: %w", id, err)
	}
	return Level{ID: id, Name: id, Grid: g}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml", ".txt", ".grid"}
}
