// Package handler serves contribution charts over HTTP.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/naka-gawa/loc-chart/internal/chart"
	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/naka-gawa/loc-chart/internal/usecase"
)

// SeriesBuilder produces the contribution series of a user.
type SeriesBuilder interface {
	Run(ctx context.Context, identity string, orgs []string) (*domain.ContributionSeries, error)
}

// ChartHandler renders the chart of the user named in the query string.
// It always answers with an SVG image, even on failure.
type ChartHandler struct {
	builder      SeriesBuilder
	renderer     *chart.Renderer
	logger       *log.Logger
	cacheSeconds int
}

// NewChartHandler creates a new ChartHandler instance.
func NewChartHandler(builder SeriesBuilder, renderer *chart.Renderer, cacheSeconds int, logger *log.Logger) *ChartHandler {
	return &ChartHandler{
		builder:      builder,
		renderer:     renderer,
		logger:       logger,
		cacheSeconds: cacheSeconds,
	}
}

// ParseRenderOptions reads the rendering options from query parameters.
func ParseRenderOptions(q url.Values) domain.RenderOptions {
	opts := domain.RenderOptions{
		Theme:           q.Get("theme"),
		BackgroundColor: chart.NormalizeHex(q.Get("bg_color")),
		LineColor:       chart.NormalizeHex(q.Get("line_color")),
		AreaColor:       chart.NormalizeHex(q.Get("area_color")),
		PointColor:      chart.NormalizeHex(q.Get("point_color")),
		TitleColor:      chart.NormalizeHex(q.Get("title_color")),
		TextColor:       chart.NormalizeHex(q.Get("text_color")),
		BorderColor:     chart.NormalizeHex(q.Get("border_color")),
		CustomTitle:     q.Get("custom_title"),
		Mode:            domain.ParseChartMode(q.Get("chart")),
	}
	if hide, err := strconv.ParseBool(q.Get("hide_border")); err == nil {
		opts.HideBorder = hide
	}
	if months, err := strconv.Atoi(q.Get("months")); err == nil && months > 0 {
		opts.Months = months
	}
	return opts
}

func (h *ChartHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := ParseRenderOptions(q)
	username := strings.TrimSpace(q.Get("username"))

	if username == "" {
		h.writeError(w, opts, "Missing parameter", "username is required")
		return
	}

	series, err := h.builder.Run(r.Context(), username, usecase.ParseOrgList(q.Get("orgs")))
	if err != nil {
		h.logger.Printf("Handler: failed to build series for %s: %v\n", username, err)
		if errors.Is(err, domain.ErrMissingParameter) {
			h.writeError(w, opts, "Missing parameter", err.Error())
			return
		}
		h.writeError(w, opts, "Something went wrong", err.Error())
		return
	}

	writeSvgHeaders(w)
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", h.cacheSeconds))
	if _, err := w.Write(h.renderer.Render(username, series, opts)); err != nil {
		h.logger.Printf("Handler: failed to write chart: %v\n", err)
	}
}

func (h *ChartHandler) writeError(w http.ResponseWriter, opts domain.RenderOptions, primary, secondary string) {
	writeSvgHeaders(w)
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(h.renderer.RenderError(primary, secondary, opts)); err != nil {
		h.logger.Printf("Handler: failed to write error image: %v\n", err)
	}
}

func writeSvgHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
}
