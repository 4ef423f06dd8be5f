package chart

import (
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/loc-chart/internal/domain"
)

// Canvas and plot area, in SVG user units.
const (
	Width  = 850
	Height = 300

	plotLeft   = 70.0
	plotRight  = 820.0
	plotTop    = 70.0
	plotBottom = 255.0

	// windowMonthDays is the length of one month when windowing the series.
	windowMonthDays = 30
)

// linearScale maps the domain [d0, d1] onto the range [r0, r1].
type linearScale struct {
	d0, d1, r0, r1 float64
}

// newLinearScale treats an empty domain as having a span of 1.
func newLinearScale(d0, d1, r0, r1 float64) linearScale {
	if d1 == d0 {
		d1 = d0 + 1
	}
	return linearScale{d0: d0, d1: d1, r0: r0, r1: r1}
}

func (s linearScale) at(v float64) float64 {
	return s.r0 + (v-s.d0)/(s.d1-s.d0)*(s.r1-s.r0)
}

// bounds returns the minimum and maximum of values, or 0, 0 when empty.
func bounds(values []float64) (float64, float64) {
	lo, err := stats.Min(values)
	if err != nil {
		return 0, 0
	}
	hi, err := stats.Max(values)
	if err != nil {
		return 0, 0
	}
	return lo, hi
}

// maxOf returns the maximum of values, or 0 when empty.
func maxOf(values []float64) float64 {
	hi, err := stats.Max(values)
	if err != nil {
		return 0
	}
	return hi
}

// windowWeeks keeps the records whose week is within the last months*30
// days. When that leaves nothing, the full slice is returned.
func windowWeeks(weeks []domain.WeeklyRecord, months int, now time.Time) []domain.WeeklyRecord {
	if months <= 0 {
		return weeks
	}
	cutoff := now.Add(-time.Duration(months*windowMonthDays) * 24 * time.Hour).Unix()
	var visible []domain.WeeklyRecord
	for _, w := range weeks {
		if w.Week >= cutoff {
			visible = append(visible, w)
		}
	}
	if len(visible) == 0 {
		return weeks
	}
	return visible
}

// cumulativeNet returns the running additions minus deletions total.
func cumulativeNet(weeks []domain.WeeklyRecord) []float64 {
	values := make([]float64, len(weeks))
	running := 0
	for i, w := range weeks {
		running += w.Additions - w.Deletions
		values[i] = float64(running)
	}
	return values
}

// evenTicks returns n evenly spaced values from lo to hi inclusive.
// A flat range collapses to a single tick.
func evenTicks(lo, hi float64, n int) []float64 {
	if hi == lo || n < 2 {
		return []float64{lo}
	}
	ticks := make([]float64, n)
	for i := range ticks {
		ticks[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return ticks
}

func weekTime(week int64) time.Time {
	return time.Unix(week, 0).UTC()
}
