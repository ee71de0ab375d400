package formats

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/reclaim/internal/reclaim"
)

func TestParseYAML(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		wantErr  error
		wantName string
		wantRows []string
	}{
		{
			name:     "name defaults to id",
			data:     "id: ring\nrows:\n  - \"...\"\n  - \".#.\"\n",
			wantName: "ring",
			wantRows: []string{"...", ".#."},
		},
		{
			name:     "rows are trimmed",
			data:     "id: pad\nname: Padded\nrows:\n  - \"  .#.  \"\n  - \"\\t...\"\n",
			wantName: "Padded",
			wantRows: []string{".#.", "..."},
		},
		{
			name: "missing id",
			data: "name: Nameless\nrows:\n  - \"...\"\n",
		},
		{
			name:    "ragged rows",
			data:    "id: ragged\nrows:\n  - \"...\"\n  - \"..\"\n",
			wantErr: reclaim.ErrMalformedRow,
		},
		{
			name:    "no rows",
			data:    "id: empty\n",
			wantErr: reclaim.ErrInvalidDimension,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := ParseYAML([]byte(tc.data))
			if tc.wantRows == nil {
				if err == nil {
					t.Fatal("expected an error")
				}
				if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
					t.Errorf("error %v should wrap %v", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseYAML() failed: %v", err)
			}
			if l.Name != tc.wantName {
				t.Errorf("Name = %q, expected %q", l.Name, tc.wantName)
			}
			if got := strings.Join(l.Grid.Lines(), "|"); got != strings.Join(tc.wantRows, "|") {
				t.Errorf("rows = %q, expected %q", got, strings.Join(tc.wantRows, "|"))
			}
		})
	}
}

func TestParseYAMLKeepsExpected(t *testing.T) {
	l, err := ParseYAML([]byte("id: one\nrows: [\".#.\"]\nexpected: 3\nmetadata:\n  author: me\n"))
	if err != nil {
		t.Fatalf("ParseYAML() failed: %v", err)
	}
	if l.Expected == nil || *l.Expected != 3 {
		t.Errorf("Expected = %v, expected 3", l.Expected)
	}
	if l.Metadata["author"] != "me" {
		t.Errorf("Metadata = %v", l.Metadata)
	}
}

func TestParseText(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr error
	}{
		{"valid", "2 3\n...\n.#.\n", nil},
		{"bad dimension", "0 3\n", reclaim.ErrInvalidDimension},
		{"bad character", "1 3\n.x.\n", reclaim.ErrMalformedRow},
		{"missing row", "2 3\n...\n", reclaim.ErrMalformedRow},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l, err := ParseText([]byte(tc.data), "field")
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("ParseText() failed: %v", err)
				}
				if l.ID != "field" || l.Name != "field" {
					t.Errorf("ID/Name = %q/%q, expected field", l.ID, l.Name)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("error %v should wrap %v", err, tc.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "level field") {
				t.Errorf("error should name the level, got %v", err)
			}
		})
	}
}

func TestFormatExtensions(t *testing.T) {
	exts := strings.Join(FormatExtensions(), " ")
	for _, want := range []string{".yaml", ".yml", ".txt", ".grid"} {
		if !strings.Contains(exts, want) {
			t.Errorf("FormatExtensions() missing %s", want)
		}
	}
}
