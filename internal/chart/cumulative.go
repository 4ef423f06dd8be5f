package chart

import (
	"time"

	"github.com/naka-gawa/loc-chart/internal/domain"
)

// drawCumulative plots the running net line total as a smoothed area chart.
// Time maps linearly onto the x axis.
func (r *Renderer) drawCumulative(doc *document, weeks []domain.WeeklyRecord, opts domain.RenderOptions) {
	now := r.now()
	visible := windowWeeks(weeks, opts.Months, now)
	values := cumulativeNet(visible)

	first, last := weekTime(visible[0].Week), weekTime(visible[len(visible)-1].Week)
	xScale := newLinearScale(float64(first.Unix()), float64(last.Unix()), plotLeft, plotRight)
	lo, hi := bounds(values)
	yScale := newLinearScale(lo, hi, plotBottom, plotTop)

	for _, v := range evenTicks(lo, hi, 5) {
		y := yScale.at(v)
		doc.printf(`<line class="grid" x1="%s" y1="%s" x2="%s" y2="%s"/>`+"\n", px(plotLeft), px(y), px(plotRight), px(y))
		doc.text("axis", plotLeft-8, y+4, "end", FormatCompact(v))
	}

	for _, l := range timeAxisLabels(first, last, xScale, now, opts.Months > 0) {
		doc.text("axis", l.X, plotBottom+20, "middle", l.Text)
	}

	pts := make([]point, len(values))
	for i, w := range visible {
		pts[i] = point{X: xScale.at(float64(w.Week)), Y: yScale.at(values[i])}
	}
	curve := smoothPath(pts, plotTop, plotBottom)
	doc.printf(`<path class="area" d="%s"/>`+"\n", areaPath(curve, pts, yScale.at(lo)))
	doc.printf(`<path class="line" d="%s"/>`+"\n", curve)
	for _, i := range sampleIndices(len(pts), targetMarkers) {
		doc.printf(`<circle class="point" cx="%s" cy="%s" r="3"/>`+"\n", px(pts[i].X), px(pts[i].Y))
	}
}

// timeAxisLabels picks the x-axis labels for a series spanning first..last.
func timeAxisLabels(first, last time.Time, xScale linearScale, now time.Time, windowed bool) []axisLabel {
	months := monthStarts(first, last)
	xs := make([]float64, len(months))
	for i, m := range months {
		xs[i] = xScale.at(float64(m.Unix()))
	}
	// The final point goes first so it wins a tie with a month boundary.
	candidates := []axisLabel{{X: xScale.at(float64(last.Unix())), Text: finalLabelText(last)}}
	candidates = append(candidates, monthCandidates(months, xs, now, windowed)...)
	return selectLabels(candidates, MinLabelSpacing, plotLeft)
}
