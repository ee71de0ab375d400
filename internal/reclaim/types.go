// Package reclaim computes how much wasteland can be reclaimed from a grid
// when at most one debris cell is removed. The package is UI-agnostic and
// deterministic.
package reclaim

import "fmt"

// Cell is the state of a single grid cell.
type Cell uint8

const (
	// Other is the zero value. It marks the guard border and is neither
	// wasteland nor debris.
	Other Cell = iota
	Wasteland
	Debris
)

// Input characters for the two meaningful cell states.
const (
	WastelandChar = '.'
	DebrisChar    = '#'
)

// String returns the name of the cell state.
func (c Cell) String() string {
	switch c {
	case Wasteland:
		return "Wasteland"
	case Debris:
		return "Debris"
	default:
		return "Other"
	}
}

// Char returns the input character for the cell, or ' ' for Other.
func (c Cell) Char() byte {
	switch c {
	case Wasteland:
		return WastelandChar
	case Debris:
		return DebrisChar
	default:
		return ' '
	}
}

// ParseCell maps an input character to a cell state.
func ParseCell(b byte) (Cell, bool) {
	switch b {
	case WastelandChar:
		return Wasteland, true
	case DebrisChar:
		return Debris, true
	default:
		return Other, false
	}
}

// Dir is one of the four orthogonal directions.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// Dirs lists the directions in scan order.
var Dirs = [4]Dir{DirUp, DirDown, DirLeft, DirRight}

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	case DirRight:
		return "Right"
	default:
		return "Unknown"
	}
}

// Delta returns the (drow, dcol) offset for one step in this direction.
func (d Dir) Delta() (drow, dcol int) {
	switch d {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

// Coord is a 1-based (row, col) position inside a grid.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Step returns the coordinate one step away in direction d.
func (c Coord) Step(d Dir) Coord {
	dr, dc := d.Delta()
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}
