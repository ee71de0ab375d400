package reclaim

import "strings"

// Grid is an immutable R x C field of cells surrounded by a one-cell guard
// border of Other. Cells are stored row-major over the padded shape, so
// interior coordinates run from (1,1) to (Rows, Cols) and every neighbour
// lookup of an interior cell stays in range.
type Grid struct {
	rows   int
	cols   int
	stride int    // cols + 2
	cells  []Cell // (rows+2) * (cols+2)
}

// newGrid allocates a padded grid of Other cells.
func newGrid(rows, cols int) *Grid {
	return &Grid{
		rows:   rows,
		cols:   cols,
		stride: cols + 2,
		cells:  make([]Cell, (rows+2)*(cols+2)),
	}
}

// FromRows builds a grid from rows of '.' and '#' characters.
// The number of rows and the length of the first row set the dimensions.
func FromRows(rows []string) (*Grid, error) {
	if len(rows) < MinDim || len(rows) > MaxDim {
		return nil, dimensionError("row count %d outside [%d,%d]", len(rows), MinDim, MaxDim)
	}
	cols := len(rows[0])
	if cols < MinDim || cols > MaxDim {
		return nil, dimensionError("column count %d outside [%d,%d]", cols, MinDim, MaxDim)
	}

	g := newGrid(len(rows), cols)
	for i, row := range rows {
		if err := g.setRow(i+1, row); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// setRow fills interior row r (1-based) from its text form.
func (g *Grid) setRow(r int, row string) error {
	if len(row) != g.cols {
		return rowError(r, "length %d, want %d", len(row), g.cols)
	}
	base := r * g.stride
	for j := 0; j < len(row); j++ {
		cell, ok := ParseCell(row[j])
		if !ok {
			return rowError(r, "column %d: unexpected character %q", j+1, row[j])
		}
		g.cells[base+j+1] = cell
	}
	return nil
}

// Rows returns the number of interior rows.
func (g *Grid) Rows() int { return g.rows }

// Cols returns the number of interior columns.
func (g *Grid) Cols() int { return g.cols }

// Size returns the number of interior cells.
func (g *Grid) Size() int { return g.rows * g.cols }

// index converts a padded coordinate to a flat index.
func (g *Grid) index(c Coord) int {
	return c.Row*g.stride + c.Col
}

// InBounds reports whether c is an interior cell.
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 1 && c.Row <= g.rows && c.Col >= 1 && c.Col <= g.cols
}

// Get returns the cell at c. Guard-border and outside positions are Other.
func (g *Grid) Get(c Coord) Cell {
	if c.Row < 0 || c.Row > g.rows+1 || c.Col < 0 || c.Col > g.cols+1 {
		return Other
	}
	return g.cells[g.index(c)]
}

// Count returns how many interior cells hold the given state.
func (g *Grid) Count(kind Cell) int {
	n := 0
	for r := 1; r <= g.rows; r++ {
		base := r * g.stride
		for _, cell := range g.cells[base+1 : base+1+g.cols] {
			if cell == kind {
				n++
			}
		}
	}
	return n
}

// DebrisNeighbors counts debris among the four neighbours of c.
func (g *Grid) DebrisNeighbors(c Coord) int {
	n := 0
	for _, d := range Dirs {
		if g.Get(c.Step(d)) == Debris {
			n++
		}
	}
	return n
}

// With returns a copy of the grid with the cell at c replaced.
// Out-of-bounds coordinates return an unchanged copy.
func (g *Grid) With(c Coord, cell Cell) *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	out := &Grid{rows: g.rows, cols: g.cols, stride: g.stride, cells: cells}
	if g.InBounds(c) {
		out.cells[g.index(c)] = cell
	}
	return out
}

// Lines returns the grid rows in text form.
func (g *Grid) Lines() []string {
	lines := make([]string, g.rows)
	buf := make([]byte, g.cols)
	for r := 1; r <= g.rows; r++ {
		base := r * g.stride
		for j := 0; j < g.cols; j++ {
			buf[j] = g.cells[base+j+1].Char()
		}
		lines[r-1] = string(buf)
	}
	return lines
}

// String renders the rows, one per line.
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n") + "\n"
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.rows != other.rows || g.cols != other.cols {
		return false
	}
	for i, cell := range g.cells {
		if cell != other.cells[i] {
			return false
		}
	}
	return true
}
