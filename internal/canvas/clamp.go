// Package canvas provides a colored character buffer that views draw into
// before the platform converts it to styled terminal output. It has no
// Bubble Tea dependency.
package canvas

// Clamp restricts val to [lo, hi].
func Clamp(val, lo, hi int) int {
	return max(lo, min(val, hi))
}
