package chart

import (
	"fmt"
	"math"
	"strconv"
)

// FormatCompact renders v with a magnitude suffix: 1.5M, 12.3K or 999.
func FormatCompact(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", v/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", v/1_000)
	default:
		return strconv.Itoa(int(math.Round(v)))
	}
}

// px formats a coordinate.
func px(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
