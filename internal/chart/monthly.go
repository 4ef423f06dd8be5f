package chart

import (
	"math"
	"time"

	"github.com/naka-gawa/loc-chart/internal/domain"
)

const (
	maxBarWidth = 40.0
	// minTickGap is the minimum vertical distance between two y-axis labels.
	minTickGap = 12.0
)

// monthBucket sums the weekly records falling in one calendar month.
type monthBucket struct {
	Start     time.Time
	Additions int
	Deletions int
	Commits   int
}

// bucketMonths groups weeks by UTC calendar month, filling the months without
// activity between the first and last one with empty buckets.
func bucketMonths(weeks []domain.WeeklyRecord) []monthBucket {
	if len(weeks) == 0 {
		return nil
	}
	sums := make(map[time.Time]*monthBucket)
	first, last := time.Time{}, time.Time{}
	for _, w := range weeks {
		t := weekTime(w.Week)
		start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
		b, ok := sums[start]
		if !ok {
			b = &monthBucket{Start: start}
			sums[start] = b
		}
		b.Additions += w.Additions
		b.Deletions += w.Deletions
		b.Commits += w.Commits
		if first.IsZero() || start.Before(first) {
			first = start
		}
		if start.After(last) {
			last = start
		}
	}

	var buckets []monthBucket
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		if b, ok := sums[m]; ok {
			buckets = append(buckets, *b)
		} else {
			buckets = append(buckets, monthBucket{Start: m})
		}
	}
	return buckets
}

// lastMonths keeps the buckets of the last n calendar months before now.
// When that leaves nothing, every bucket is kept.
func lastMonths(buckets []monthBucket, n int, now time.Time) []monthBucket {
	if n <= 0 {
		return buckets
	}
	current := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	cutoff := current.AddDate(0, -(n - 1), 0)
	for i, b := range buckets {
		if !b.Start.Before(cutoff) {
			return buckets[i:]
		}
	}
	return buckets
}

// baselineY splits the plot height between additions and deletions in
// proportion to their peaks.
func baselineY(maxAdd, maxDel float64) float64 {
	ratio := 0.5
	if maxAdd+maxDel > 0 {
		ratio = maxAdd / (maxAdd + maxDel)
	}
	return plotTop + (plotBottom-plotTop)*ratio
}

type tick struct {
	Y     float64
	Label string
}

// barTicks labels the baseline and each polarity independently, dropping
// labels that would overlap one already placed.
func barTicks(maxAdd, maxDel, baseline float64) []tick {
	ticks := []tick{{Y: baseline, Label: "0"}}
	var candidates []tick
	if maxAdd > 0 {
		up := newLinearScale(0, maxAdd, baseline, plotTop)
		candidates = append(candidates,
			tick{Y: up.at(maxAdd), Label: FormatCompact(maxAdd)},
			tick{Y: up.at(maxAdd / 2), Label: FormatCompact(maxAdd / 2)})
	}
	if maxDel > 0 {
		down := newLinearScale(0, maxDel, baseline, plotBottom)
		candidates = append(candidates,
			tick{Y: down.at(maxDel), Label: FormatCompact(-maxDel)},
			tick{Y: down.at(maxDel / 2), Label: FormatCompact(-maxDel / 2)})
	}
	for _, c := range candidates {
		free := true
		for _, t := range ticks {
			if math.Abs(t.Y-c.Y) < minTickGap {
				free = false
				break
			}
		}
		if free {
			ticks = append(ticks, c)
		}
	}
	return ticks
}

// drawMonthly lays out additions as bars growing up from the baseline and
// deletions as bars growing down from it.
func (r *Renderer) drawMonthly(doc *document, weeks []domain.WeeklyRecord, opts domain.RenderOptions) {
	now := r.now()
	buckets := lastMonths(bucketMonths(weeks), opts.Months, now)

	adds := make([]float64, len(buckets))
	dels := make([]float64, len(buckets))
	for i, b := range buckets {
		adds[i] = float64(b.Additions)
		dels[i] = float64(b.Deletions)
	}
	maxAdd, maxDel := maxOf(adds), maxOf(dels)
	baseline := baselineY(maxAdd, maxDel)

	for i, t := range barTicks(maxAdd, maxDel, baseline) {
		class := "grid"
		if i == 0 {
			class = "baseline"
		}
		doc.printf(`<line class="%s" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", class, px(plotLeft), px(t.Y), px(plotRight), px(t.Y))
		doc.text("axis", plotLeft-8, t.Y+4, "end", t.Label)
	}

	slot := (plotRight - plotLeft) / float64(len(buckets))
	barWidth := math.Min(slot*0.7, maxBarWidth)
	centers := make([]float64, len(buckets))
	starts := make([]time.Time, len(buckets))
	for i, b := range buckets {
		centers[i] = plotLeft + slot*(float64(i)+0.5)
		starts[i] = b.Start
		x := centers[i] - barWidth/2
		if b.Additions > 0 && maxAdd > 0 {
			h := adds[i] / maxAdd * (baseline - plotTop)
			doc.printf(`<rect class="bar bar-add" x="%s" y="%s" width="%s" height="%s" rx="2"><title>%s: +%d</title></rect>`+"\n",
				px(x), px(baseline-h), px(barWidth), px(h), b.Start.Format("Jan 2006"), b.Additions)
		}
		if b.Deletions > 0 && maxDel > 0 {
			h := dels[i] / maxDel * (plotBottom - baseline)
			doc.printf(`<rect class="bar bar-del" x="%s" y="%s" width="%s" height="%s" rx="2"><title>%s: -%d</title></rect>`+"\n",
				px(x), px(baseline), px(barWidth), px(h), b.Start.Format("Jan 2006"), b.Deletions)
		}
	}

	last := len(buckets) - 1
	candidates := []axisLabel{{X: centers[last], Text: finalLabelText(starts[last])}}
	candidates = append(candidates, monthCandidates(starts[:last], centers[:last], now, opts.Months > 0)...)
	for _, l := range selectLabels(candidates, MinLabelSpacing, plotLeft) {
		doc.text("axis", l.X, plotBottom+20, "middle", l.Text)
	}
}
