package handler

import (
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/naka-gawa/loc-chart/internal/chart"
	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// mockBuilder is a mock implementation of SeriesBuilder.
type mockBuilder struct {
	mock.Mock
}

func (m *mockBuilder) Run(ctx context.Context, identity string, orgs []string) (*domain.ContributionSeries, error) {
	args := m.Called(ctx, identity, orgs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContributionSeries), args.Error(1)
}

func TestParseRenderOptions(t *testing.T) {
	q := url.Values{
		"theme":        {"dark"},
		"bg_color":     {"#0D1117"},
		"line_color":   {"nope"},
		"hide_border":  {"true"},
		"custom_title": {"Hello"},
		"months":       {"6"},
		"chart":        {"monthly"},
	}
	assert.Equal(t, domain.RenderOptions{
		Theme:           "dark",
		BackgroundColor: "0d1117",
		HideBorder:      true,
		CustomTitle:     "Hello",
		Months:          6,
		Mode:            domain.MonthlyMode,
	}, ParseRenderOptions(q))

	assert.Equal(t, 0, ParseRenderOptions(url.Values{"months": {"-3"}}).Months)
	assert.Equal(t, domain.CumulativeMode, ParseRenderOptions(url.Values{}).Mode)
}

func TestChartHandler_ServeHTTP(t *testing.T) {
	series := &domain.ContributionSeries{
		WeeklyData:     []domain.WeeklyRecord{{Week: 1700000000, Additions: 100, Deletions: 20, Commits: 1}},
		TotalAdditions: 100,
		TotalDeletions: 20,
		TotalCommits:   1,
		NetLines:       80,
	}

	testCases := []struct {
		name          string
		query         string
		setup         func(b *mockBuilder)
		expectBody    []string
		expectCache   string
		expectNoCalls bool
	}{
		{
			name:  "happy path - renders the chart",
			query: "username=octocat&orgs=acme,%20globex",
			setup: func(b *mockBuilder) {
				b.On("Run", mock.Anything, "octocat", []string{"acme", "globex"}).Return(series, nil)
			},
			expectBody:  []string{"octocat&#39;s Lines of Code", `class="line"`},
			expectCache: "public, max-age=60",
		},
		{
			name:          "missing username - error image without any fetch",
			query:         "bg_color=000000",
			setup:         func(b *mockBuilder) {},
			expectBody:    []string{"Missing parameter", "username is required", `fill="#000000"`},
			expectCache:   "no-store",
			expectNoCalls: true,
		},
		{
			name:  "pipeline failure - error image",
			query: "username=octocat",
			setup: func(b *mockBuilder) {
				b.On("Run", mock.Anything, "octocat", []string(nil)).Return(nil, errors.New("upstream exploded"))
			},
			expectBody:  []string{"Something went wrong", "upstream exploded"},
			expectCache: "no-store",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			builder := new(mockBuilder)
			tc.setup(builder)
			h := NewChartHandler(builder, chart.NewRenderer(), 60, log.New(io.Discard, "", 0))

			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api?"+tc.query, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "image/svg+xml; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Equal(t, tc.expectCache, rec.Header().Get("Cache-Control"))
			for _, s := range tc.expectBody {
				assert.Contains(t, rec.Body.String(), s)
			}
			if tc.expectNoCalls {
				builder.AssertNotCalled(t, "Run", mock.Anything, mock.Anything, mock.Anything)
			}
			builder.AssertExpectations(t)
		})
	}
}
