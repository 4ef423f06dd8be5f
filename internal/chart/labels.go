package chart

import (
	"sort"
	"time"
)

// MinLabelSpacing is the minimum horizontal distance between two x-axis labels.
const MinLabelSpacing = 85.0

// axisLabel is a candidate or selected x-axis label.
type axisLabel struct {
	X    float64
	Text string
}

// monthLabelText names a month: the year for January, the month otherwise.
func monthLabelText(t time.Time) string {
	if t.Month() == time.January {
		return t.Format("2006")
	}
	return t.Format("Jan")
}

// finalLabelText names the last data point.
func finalLabelText(t time.Time) string {
	return t.Format("Jan 2006")
}

// monthStarts returns the first instant of every month in [from, to].
func monthStarts(from, to time.Time) []time.Time {
	from, to = from.UTC(), to.UTC()
	m := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	if m.Before(from) {
		m = m.AddDate(0, 1, 0)
	}
	var starts []time.Time
	for ; !m.After(to); m = m.AddDate(0, 1, 0) {
		starts = append(starts, m)
	}
	return starts
}

// monthCandidates turns month positions into label candidates. Months older
// than a year before now keep only January unless windowed is set.
func monthCandidates(months []time.Time, xs []float64, now time.Time, windowed bool) []axisLabel {
	yearAgo := now.AddDate(-1, 0, 0)
	candidates := make([]axisLabel, 0, len(months))
	for i, m := range months {
		if !windowed && m.Before(yearAgo) && m.Month() != time.January {
			continue
		}
		candidates = append(candidates, axisLabel{X: xs[i], Text: monthLabelText(m)})
	}
	return candidates
}

// selectLabels keeps candidates greedily from right to left. A candidate is
// kept when it is at least minSpacing left of the previously kept label and
// not left of leftEdge. The result is ordered left to right.
func selectLabels(candidates []axisLabel, minSpacing, leftEdge float64) []axisLabel {
	sorted := append([]axisLabel(nil), candidates...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X > sorted[j].X })

	var kept []axisLabel
	for _, c := range sorted {
		if c.X < leftEdge {
			continue
		}
		if len(kept) > 0 && kept[len(kept)-1].X-c.X < minSpacing {
			continue
		}
		kept = append(kept, c)
	}

	for i, j := 0, len(kept)-1; i < j; i, j = i+1, j-1 {
		kept[i], kept[j] = kept[j], kept[i]
	}
	return kept
}
