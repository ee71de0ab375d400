package reclaim

import (
	"fmt"
	"strings"
)

// GainRune returns a single character for a gain value: '1'-'9', then
// 'a'-'z', then '*' for anything larger.
func GainRune(v int) rune {
	switch {
	case v <= 0:
		return '0'
	case v < 10:
		return rune('0' + v)
	case v < 36:
		return rune('a' + v - 10)
	default:
		return '*'
	}
}

// RenderGain renders the grid next to its gain map.
//
// In the gain map:
//   - '+' wasteland counted in the baseline
//   - '.' other wasteland
//   - '#' debris that is not a removal candidate
//   - digits/letters the gain of a removal candidate (see GainRune)
func RenderGain(g *Grid, a Analysis) string {
	var sb strings.Builder
	for r := 1; r <= g.rows; r++ {
		for c := 1; c <= g.cols; c++ {
			sb.WriteByte(g.Get(At(r, c)).Char())
		}
		sb.WriteString("   ")
		for c := 1; c <= g.cols; c++ {
			sb.WriteRune(mapRune(g, a, At(r, c)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// mapRune picks the gain map character for one cell.
func mapRune(g *Grid, a Analysis, at Coord) rune {
	cell := g.Get(at)
	if v := a.GainAt(at); v > 0 {
		return GainRune(v)
	}
	if cell == Debris {
		return '#'
	}
	if g.DebrisNeighbors(at) == 0 {
		return '+'
	}
	return '.'
}

// Explain returns a short human-readable report of an analysis.
func Explain(g *Grid, a Analysis) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Grid:      %dx%d (%d wasteland, %d debris)\n",
		g.Rows(), g.Cols(), g.Count(Wasteland), g.Count(Debris))
	fmt.Fprintf(&sb, "Baseline:  %d\n", a.Baseline)
	if a.HasBest {
		fmt.Fprintf(&sb, "Removal:   %s gains %d\n", a.BestAt, a.Best)
	} else {
		sb.WriteString("Removal:   none helps\n")
	}
	fmt.Fprintf(&sb, "Result:    %d\n", a.Result())
	return sb.String()
}
