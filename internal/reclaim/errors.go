package reclaim

import (
	"errors"
	"fmt"
)

// Dimension bounds accepted by the loader.
const (
	MinDim = 1
	MaxDim = 1000
)

var (
	// ErrInvalidDimension indicates R or C is missing or outside [MinDim, MaxDim].
	ErrInvalidDimension = errors.New("reclaim: invalid dimension")
	// ErrMalformedRow indicates a missing row, a row of the wrong length, or
	// a character other than '.' and '#'.
	ErrMalformedRow = errors.New("reclaim: malformed row")
)

// Error codes carried by LoadError.
const (
	CodeInvalidDimension = "INVALID_DIMENSION"
	CodeMalformedRow     = "MALFORMED_ROW"
)

// LoadError describes why a grid could not be loaded.
// Row is the 1-based row number for row errors and 0 otherwise.
type LoadError struct {
	Code string
	Row  int
	Msg  string
}

func (e *LoadError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("[%s] row %d: %s", e.Code, e.Row, e.Msg)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Msg)
}

// Unwrap maps the code back to its sentinel so errors.Is works.
func (e *LoadError) Unwrap() error {
	switch e.Code {
	case CodeInvalidDimension:
		return ErrInvalidDimension
	case CodeMalformedRow:
		return ErrMalformedRow
	default:
		return nil
	}
}

func dimensionError(format string, args ...any) error {
	return &LoadError{Code: CodeInvalidDimension, Msg: fmt.Sprintf(format, args...)}
}

func rowError(row int, format string, args ...any) error {
	return &LoadError{Code: CodeMalformedRow, Row: row, Msg: fmt.Sprintf(format, args...)}
}
