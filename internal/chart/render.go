// Package chart lays out a contribution series as a fixed size SVG image.
package chart

import (
	"fmt"
	"time"

	"github.com/naka-gawa/loc-chart/internal/domain"
)

// Renderer turns contribution series into SVG images. It never fails:
// degenerate input is normalized instead of reported.
type Renderer struct {
	// Now is the clock used for windowing and label thinning.
	Now func() time.Time
}

// NewRenderer creates a Renderer using the wall clock.
func NewRenderer() *Renderer {
	return &Renderer{Now: time.Now}
}

func (r *Renderer) now() time.Time {
	if r.Now == nil {
		return time.Now().UTC()
	}
	return r.Now().UTC()
}

// Render draws series for identity according to opts.
func (r *Renderer) Render(identity string, series *domain.ContributionSeries, opts domain.RenderOptions) []byte {
	if series == nil {
		series = &domain.ContributionSeries{}
	}
	doc := newDocument(resolvePalette(opts))
	doc.open(opts.HideBorder)
	doc.text("header", 25, 35, "start", title(identity, opts))

	if len(series.WeeklyData) == 0 {
		doc.text("no-data", Width/2, (plotTop+plotBottom)/2, "middle", "No contribution data")
		return doc.close()
	}

	doc.text("subheader", 25, 55, "start", summary(series, opts))
	switch opts.Mode {
	case domain.MonthlyMode:
		r.drawMonthly(doc, series.WeeklyData, opts)
	default:
		r.drawCumulative(doc, series.WeeklyData, opts)
	}
	return doc.close()
}

// RenderError draws a failure message on a card of the same size as a chart.
func (r *Renderer) RenderError(primary, secondary string, opts domain.RenderOptions) []byte {
	doc := newDocument(resolvePalette(opts))
	doc.open(opts.HideBorder)
	doc.text("error-title", Width/2, Height/2-8, "middle", primary)
	if secondary != "" {
		doc.text("error-detail", Width/2, Height/2+18, "middle", secondary)
	}
	return doc.close()
}

func title(identity string, opts domain.RenderOptions) string {
	if opts.CustomTitle != "" {
		return opts.CustomTitle
	}
	if opts.Mode == domain.MonthlyMode {
		return fmt.Sprintf("%s's Monthly Code Changes", identity)
	}
	return fmt.Sprintf("%s's Lines of Code", identity)
}

// summary describes the totals of the whole series, whatever the window.
func summary(series *domain.ContributionSeries, opts domain.RenderOptions) string {
	s := fmt.Sprintf("+%s / -%s lines · net %s · %d commits",
		FormatCompact(float64(series.TotalAdditions)),
		FormatCompact(float64(series.TotalDeletions)),
		FormatCompact(float64(series.NetLines)),
		series.TotalCommits)
	if opts.Months > 0 {
		s += fmt.Sprintf(" · showing last %d months", opts.Months)
	}
	return s
}
