package reclaim_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/reclaim/internal/reclaim"
)

func TestParse(t *testing.T) {
	g, err := reclaim.ParseString("3 3\n...\n.#.\n...\n")
	require.NoError(t, err)

	assert.Equal(t, 3, g.Rows())
	assert.Equal(t, 3, g.Cols())
	assert.Equal(t, reclaim.Debris, g.Get(reclaim.At(2, 2)))
	assert.Equal(t, reclaim.Wasteland, g.Get(reclaim.At(1, 1)))
	assert.Equal(t, 1, g.Count(reclaim.Debris))
	assert.Equal(t, 8, g.Count(reclaim.Wasteland))
}

func TestParseGuardBorder(t *testing.T) {
	g, err := reclaim.ParseString("1 1\n#\n")
	require.NoError(t, err)

	for _, d := range reclaim.Dirs {
		assert.Equal(t, reclaim.Other, g.Get(reclaim.At(1, 1).Step(d)), "neighbour %s", d)
	}
	assert.False(t, g.InBounds(reclaim.At(0, 1)))
	assert.Equal(t, reclaim.Other, g.Get(reclaim.At(-5, 40)))
}

func TestParseWhitespaceTolerant(t *testing.T) {
	g, err := reclaim.ParseString("  2\n\n3   ##.\r\n.#.\n trailing junk")
	require.NoError(t, err)
	assert.Equal(t, []string{"##.", ".#."}, g.Lines())
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  error
		row   int
	}{
		{"Empty", "", reclaim.ErrInvalidDimension, 0},
		{"MissingCols", "3", reclaim.ErrInvalidDimension, 0},
		{"NotInteger", "x 3\n...", reclaim.ErrInvalidDimension, 0},
		{"ZeroRows", "0 3\n", reclaim.ErrInvalidDimension, 0},
		{"TooManyCols", "1 1001\n", reclaim.ErrInvalidDimension, 0},
		{"NegativeRows", "-1 2\n", reclaim.ErrInvalidDimension, 0},
		{"MissingRow", "2 3\n...\n", reclaim.ErrMalformedRow, 2},
		{"ShortRow", "2 3\n...\n..\n", reclaim.ErrMalformedRow, 2},
		{"LongRow", "1 2\n...\n", reclaim.ErrMalformedRow, 1},
		{"BadChar", "1 3\n.x.\n", reclaim.ErrMalformedRow, 1},
		{"HugeToken", "1 3\n" + strings.Repeat(".", 70000), reclaim.ErrMalformedRow, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := reclaim.ParseString(tc.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tc.want)

			var le *reclaim.LoadError
			require.True(t, errors.As(err, &le))
			assert.Equal(t, tc.row, le.Row)
		})
	}
}

func TestFromRowsErrors(t *testing.T) {
	_, err := reclaim.FromRows(nil)
	assert.ErrorIs(t, err, reclaim.ErrInvalidDimension)

	_, err = reclaim.FromRows([]string{""})
	assert.ErrorIs(t, err, reclaim.ErrInvalidDimension)

	_, err = reclaim.FromRows([]string{"..", "."})
	assert.ErrorIs(t, err, reclaim.ErrMalformedRow)
}

func TestFormatRoundTrip(t *testing.T) {
	in := "2 4\n#..#\n.##.\n"
	g, err := reclaim.ParseString(in)
	require.NoError(t, err)
	assert.Equal(t, in, g.Format())

	again, err := reclaim.ParseString(g.Format())
	require.NoError(t, err)
	assert.True(t, g.Equal(again))
}

func TestLoadErrorMessage(t *testing.T) {
	_, err := reclaim.ParseString("1 3\n.?.")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "[MALFORMED_ROW] row 1")
}
