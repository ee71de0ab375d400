package reclaim

import "fmt"

// GenParams configures random grid generation.
type GenParams struct {
	Rows    int
	Cols    int
	Density float64 // Probability that a cell is debris, in [0, 1]
	Seed    uint64  // RNG seed; equal seeds give equal grids
}

// DefaultGenParams returns a mid-sized, sparse grid configuration.
func DefaultGenParams() GenParams {
	return GenParams{
		Rows:    20,
		Cols:    40,
		Density: 0.15,
		Seed:    0,
	}
}

// RNG is a deterministic pseudo-random number generator (xorshift64).
type RNG struct {
	state uint64
}

// NewRNG creates a new RNG with the given seed.
func NewRNG(seed uint64) *RNG {
	if seed == 0 {
		seed = 88172645463325252
	}
	return &RNG{state: seed}
}

// Next returns the next random uint64.
func (r *RNG) Next() uint64 {
	r.state ^= r.state << 13
	r.state ^= r.state >> 7
	r.state ^= r.state << 17
	return r.state
}

// Float returns a random float64 in [0, 1).
func (r *RNG) Float() float64 {
	return float64(r.Next()>>11) / float64(1<<53)
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Generate builds a random grid. Each cell is debris with probability
// p.Density, independently.
func Generate(p GenParams) (*Grid, error) {
	if p.Rows < MinDim || p.Rows > MaxDim || p.Cols < MinDim || p.Cols > MaxDim {
		return nil, dimensionError("%dx%d outside [%d,%d]", p.Rows, p.Cols, MinDim, MaxDim)
	}
	if p.Density < 0 || p.Density > 1 {
		return nil, fmt.Errorf("reclaim: density %.3f outside [0,1]", p.Density)
	}

	rng := NewRNG(p.Seed)
	g := newGrid(p.Rows, p.Cols)
	for r := 1; r <= p.Rows; r++ {
		base := r * g.stride
		for c := 1; c <= p.Cols; c++ {
			if rng.Float() < p.Density {
				g.cells[base+c] = Debris
			} else {
				g.cells[base+c] = Wasteland
			}
		}
	}
	return g, nil
}
