package chart

import (
	"math"
	"strings"
)

const (
	// curveTension scales the neighbor vector used for control points.
	curveTension = 0.3
	// targetMarkers is the approximate number of point markers drawn.
	targetMarkers = 10
)

// point is a position on the canvas.
type point struct {
	X, Y float64
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// smoothPath returns a cubic Bezier path through pts. The end points stand
// in for their own missing neighbors. Control point y values are clamped to
// [top, bottom] so the curve cannot leave the plot.
func smoothPath(pts []point, top, bottom float64) string {
	if len(pts) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M" + px(pts[0].X) + "," + px(pts[0].Y))
	at := func(i int) point {
		return pts[max(0, min(len(pts)-1, i))]
	}
	for i := 0; i < len(pts)-1; i++ {
		prev, cur, next, after := at(i-1), at(i), at(i+1), at(i+2)
		c1 := point{
			X: cur.X + (next.X-prev.X)*curveTension/2,
			Y: clamp(cur.Y+(next.Y-prev.Y)*curveTension/2, top, bottom),
		}
		c2 := point{
			X: next.X - (after.X-cur.X)*curveTension/2,
			Y: clamp(next.Y-(after.Y-cur.Y)*curveTension/2, top, bottom),
		}
		b.WriteString(" C" + px(c1.X) + "," + px(c1.Y) +
			" " + px(c2.X) + "," + px(c2.Y) +
			" " + px(next.X) + "," + px(next.Y))
	}
	return b.String()
}

// areaPath closes the curve down to baseline and back to the first point.
func areaPath(curve string, pts []point, baseline float64) string {
	if len(pts) == 0 {
		return ""
	}
	first, last := pts[0], pts[len(pts)-1]
	return curve +
		" L" + px(last.X) + "," + px(baseline) +
		" L" + px(first.X) + "," + px(baseline) + " Z"
}

// sampleIndices picks roughly target evenly strided indices out of n,
// always including the last one.
func sampleIndices(n, target int) []int {
	if n <= 0 {
		return nil
	}
	stride := int(math.Ceil(float64(n) / float64(target)))
	if stride < 1 {
		stride = 1
	}
	var idx []int
	for i := 0; i < n; i += stride {
		idx = append(idx, i)
	}
	if idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}
