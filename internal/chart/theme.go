package chart

import (
	"strings"

	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Theme holds the base colors of a named theme, as hex without '#'.
type Theme struct {
	Title      string
	Text       string
	Background string
	Border     string
}

// Themes are the named themes accepted in RenderOptions.Theme.
var Themes = map[string]Theme{
	"default":     {Title: "2f80ed", Text: "434d58", Background: "fffefe", Border: "e4e2e2"},
	"dark":        {Title: "ffffff", Text: "9f9f9f", Background: "151515", Border: "e4e2e2"},
	"radical":     {Title: "fe428e", Text: "a9fef7", Background: "141321", Border: "e4e2e2"},
	"tokyonight":  {Title: "70a5fd", Text: "38bdae", Background: "1a1b27", Border: "e4e2e2"},
	"gruvbox":     {Title: "fabd2f", Text: "8ec07c", Background: "282828", Border: "e4e2e2"},
	"github_dark": {Title: "58a6ff", Text: "c9d1d9", Background: "0d1117", Border: "30363d"},
	"vue":         {Title: "41b883", Text: "273849", Background: "fffefe", Border: "e4e2e2"},
}

// accents are the companion colors picked by background luminance.
type accents struct {
	Line, Area, Point, Addition, Deletion, Grid string
}

var (
	darkAccents  = accents{Line: "58a6ff", Area: "58a6ff", Point: "79c0ff", Addition: "3fb950", Deletion: "f85149", Grid: "30363d"}
	lightAccents = accents{Line: "0969da", Area: "0969da", Point: "0550ae", Addition: "1a7f37", Deletion: "cf222e", Grid: "d0d7de"}
)

// palette is the fully resolved set of colors used by one render, with '#'.
type palette struct {
	Title, Text, Background, Border string
	Line, Area, Point               string
	Addition, Deletion, Grid        string
}

// NormalizeHex strips a leading '#' and returns the color in lower case.
// It returns "" when s is not a 3 or 6 digit hex color.
func NormalizeHex(s string) string {
	s = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if len(s) != 3 && len(s) != 6 {
		return ""
	}
	for _, c := range s {
		if !strings.ContainsRune("0123456789abcdef", c) {
			return ""
		}
	}
	return s
}

func expandHex(s string) string {
	if len(s) == 3 {
		return string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	return s
}

// IsDark reports whether the perceived luminance of hex is below 128.
func IsDark(hex string) bool {
	hex = NormalizeHex(hex)
	if hex == "" {
		return false
	}
	c := drawing.ColorFromHex(expandHex(hex))
	luminance := (int(c.R)*299 + int(c.G)*587 + int(c.B)*114) / 1000
	return luminance < 128
}

func pick(override, fallback string) string {
	if v := NormalizeHex(override); v != "" {
		return "#" + v
	}
	return "#" + fallback
}

// resolvePalette merges the theme, the caller overrides and the accent preset.
func resolvePalette(opts domain.RenderOptions) palette {
	theme, ok := Themes[strings.ToLower(opts.Theme)]
	if !ok {
		theme = Themes["default"]
	}
	p := palette{
		Title:      pick(opts.TitleColor, theme.Title),
		Text:       pick(opts.TextColor, theme.Text),
		Background: pick(opts.BackgroundColor, theme.Background),
		Border:     pick(opts.BorderColor, theme.Border),
	}

	preset := lightAccents
	if IsDark(p.Background) {
		preset = darkAccents
	}
	p.Line = pick(opts.LineColor, preset.Line)
	p.Area = pick(opts.AreaColor, preset.Area)
	p.Point = pick(opts.PointColor, preset.Point)
	p.Addition = "#" + preset.Addition
	p.Deletion = "#" + preset.Deletion
	p.Grid = "#" + preset.Grid
	return p
}
