package reclaim

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxToken bounds a single whitespace separated token. A legal row is at
// most MaxDim bytes; anything much longer is reported as a malformed row.
const maxToken = 64 * 1024

// Parse reads a grid in the text input format:
//
//	R C
//	row_1
//	...
//	row_R
//
// Tokens are whitespace separated, so the header may span lines. Anything
// after the last row is ignored.
func Parse(r io.Reader) (*Grid, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxToken)
	sc.Split(bufio.ScanWords)

	rows, err := readDim(sc, "R")
	if err != nil {
		return nil, err
	}
	cols, err := readDim(sc, "C")
	if err != nil {
		return nil, err
	}

	g := newGrid(rows, cols)
	for i := 1; i <= rows; i++ {
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return nil, scanError(i, err)
			}
			return nil, rowError(i, "missing (got %d of %d rows)", i-1, rows)
		}
		if err := g.setRow(i, sc.Text()); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(s string) (*Grid, error) {
	return Parse(strings.NewReader(s))
}

// readDim reads one dimension token and checks its range.
func readDim(sc *bufio.Scanner, name string) (int, error) {
	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return 0, fmt.Errorf("reading %s: %w", name, err)
		}
		return 0, dimensionError("%s is missing", name)
	}
	n, err := strconv.Atoi(sc.Text())
	if err != nil {
		return 0, dimensionError("%s is not an integer: %q", name, sc.Text())
	}
	if n < MinDim || n > MaxDim {
		return 0, dimensionError("%s=%d outside [%d,%d]", name, n, MinDim, MaxDim)
	}
	return n, nil
}

func scanError(row int, err error) error {
	if errors.Is(err, bufio.ErrTooLong) {
		return rowError(row, "longer than %d bytes", maxToken)
	}
	return fmt.Errorf("reading row %d: %w", row, err)
}

// Format renders the grid in the full input format, header included.
func (g *Grid) Format() string {
	return fmt.Sprintf("%d %d\n%s", g.rows, g.cols, g.String())
}
