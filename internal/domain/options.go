package domain

// ChartMode selects how a series is drawn.
type ChartMode string

const (
	// CumulativeMode draws the running net line total as an area chart.
	CumulativeMode ChartMode = "cumulative"
	// MonthlyMode draws additions and deletions per calendar month as bars.
	MonthlyMode ChartMode = "monthly"
)

// ParseChartMode maps a user supplied value to a ChartMode.
// Unknown values fall back to CumulativeMode.
func ParseChartMode(s string) ChartMode {
	switch ChartMode(s) {
	case MonthlyMode, "bar", "bars":
		return MonthlyMode
	default:
		return CumulativeMode
	}
}

// RenderOptions configures the look of a rendered chart.
// Color fields are hex strings without the leading '#'; empty means "use the theme".
type RenderOptions struct {
	Theme           string
	BackgroundColor string
	LineColor       string
	AreaColor       string
	PointColor      string
	TitleColor      string
	TextColor       string
	BorderColor     string
	HideBorder      bool
	CustomTitle     string
	// Months restricts the visible range to the last N months. Totals are unaffected.
	Months int
	Mode   ChartMode
}
