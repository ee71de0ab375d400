package reclaim

// Analysis is the outcome of one scan over a grid.
type Analysis struct {
	// Baseline counts wasteland cells with no adjacent debris.
	Baseline int
	// Best is the largest gain over all cells, 0 when no removal helps.
	Best int
	// BestAt is the first cell in row-major order whose gain equals Best.
	// Valid only when HasBest is true.
	BestAt  Coord
	HasBest bool

	rows   int
	cols   int
	stride int
	gain   []int // padded like the grid
}

// Result is the maximum number of reclaimable cells: Baseline + Best.
func (a Analysis) Result() int {
	return a.Baseline + a.Best
}

// GainAt returns the number of extra cells reclaimed by removing the debris
// at c. Cells that are not removal candidates report 0.
func (a Analysis) GainAt(c Coord) int {
	if c.Row < 1 || c.Row > a.rows || c.Col < 1 || c.Col > a.cols {
		return 0
	}
	return a.gain[c.Row*a.stride+c.Col]
}

// Candidate is a debris cell whose removal reclaims Gain cells.
type Candidate struct {
	At   Coord
	Gain int
}

// Candidates lists every cell with a positive gain in row-major order.
func (a Analysis) Candidates() []Candidate {
	var out []Candidate
	for r := 1; r <= a.rows; r++ {
		for c := 1; c <= a.cols; c++ {
			if v := a.gain[r*a.stride+c]; v > 0 {
				out = append(out, Candidate{At: At(r, c), Gain: v})
			}
		}
	}
	return out
}

// neighborOffsets returns flat index offsets for Dirs in scan order.
func (g *Grid) neighborOffsets() [4]int {
	var offs [4]int
	for k, d := range Dirs {
		dr, dc := d.Delta()
		offs[k] = dr*g.stride + dc
	}
	return offs
}

// Analyze runs the classifier over every interior cell and reduces the
// gain tally to its maximum.
func Analyze(g *Grid) Analysis {
	gain := make([]int, len(g.cells))
	baseline := classifyRows(g, gain, 0, 1, g.rows)
	return finish(g, baseline, gain)
}

// classifyRows applies the per-cell policy to interior rows [from, to].
// gain covers padded rows starting at padded row origin, so index
// r*stride+c lands at gain[(r-origin)*stride+c]. Returns the baseline count
// contributed by these rows.
//
//	wasteland, 0 debris neighbours  -> baseline
//	wasteland, 1 debris neighbour   -> gain of that neighbour
//	debris,    0 debris neighbours  -> gain of the cell itself
//	anything else                   -> nothing
func classifyRows(g *Grid, gain []int, origin, from, to int) int {
	offs := g.neighborOffsets()
	shift := origin * g.stride
	baseline := 0

	for r := from; r <= to; r++ {
		base := r * g.stride
		for i := base + 1; i <= base+g.cols; i++ {
			cell := g.cells[i]
			if cell == Other {
				continue
			}

			num, p := 0, -1
			for k, off := range offs {
				if g.cells[i+off] == Debris {
					num++
					p = k
				}
			}

			switch {
			case cell == Wasteland && num == 0:
				baseline++
			case cell == Wasteland && num == 1:
				gain[i+offs[p]-shift]++
			case cell == Debris && num == 0:
				gain[i-shift]++
			}
		}
	}
	return baseline
}

// finish reduces the tally and assembles the Analysis.
func finish(g *Grid, baseline int, gain []int) Analysis {
	a := Analysis{
		Baseline: baseline,
		rows:     g.rows,
		cols:     g.cols,
		stride:   g.stride,
		gain:     gain,
	}
	a.Best, a.BestAt, a.HasBest = a.reduce()
	return a
}

// reduce returns the maximum gain and the first coordinate holding it.
func (a Analysis) reduce() (best int, at Coord, ok bool) {
	for r := 1; r <= a.rows; r++ {
		base := r * a.stride
		for c := 1; c <= a.cols; c++ {
			if v := a.gain[base+c]; v > best {
				best = v
				at = At(r, c)
				ok = true
			}
		}
	}
	return best, at, ok
}

// Solve returns the maximum number of reclaimable cells in g.
func Solve(g *Grid) int {
	return Analyze(g).Result()
}
