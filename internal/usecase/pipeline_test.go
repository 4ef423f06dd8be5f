package usecase

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"
	"time"

	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPipeline_Run(t *testing.T) {
	t0 := int64(1700000000)
	fetcher := new(mockFetcher)
	fetcher.On("FetchUserRepos", mock.Anything, "octocat").Return([]domain.RepoRef{
		{Owner: "octocat", Name: "hello"},
		{Owner: "acme", Name: "api"},
	}, nil)
	fetcher.On("FetchOrgRepos", mock.Anything, "acme").Return([]domain.RepoRef{
		{Owner: "acme", Name: "api"},
		{Owner: "acme", Name: "legacy"},
	}, nil)
	fetcher.On("FetchContributorStats", mock.Anything, "octocat", "hello").Return([]domain.ContributorWeeks{
		{Login: "octocat", Weeks: []domain.WeeklyRecord{{Week: t0, Additions: 100, Deletions: 20, Commits: 2}}},
	}, nil)
	fetcher.On("FetchContributorStats", mock.Anything, "acme", "api").Return([]domain.ContributorWeeks{
		{Login: "Octocat", Weeks: []domain.WeeklyRecord{{Week: t0 + week, Additions: 50, Deletions: 10, Commits: 1}}},
	}, nil)
	fetcher.On("FetchContributorStats", mock.Anything, "acme", "legacy").Return(nil, errors.New("boom"))

	pipeline := NewPipeline(fetcher, log.New(io.Discard, "", 0))
	pipeline.Collector().RetryDelay = time.Millisecond

	series, err := pipeline.Run(context.Background(), " octocat ", []string{"acme"})

	require.NoError(t, err)
	assert.Equal(t, 150, series.TotalAdditions)
	assert.Equal(t, 30, series.TotalDeletions)
	assert.Equal(t, 3, series.TotalCommits)
	assert.Equal(t, 120, series.NetLines)
	assert.Len(t, series.WeeklyData, 2)
	fetcher.AssertNumberOfCalls(t, "FetchContributorStats", 3)
}

func TestPipeline_Run_MissingIdentity(t *testing.T) {
	fetcher := new(mockFetcher)
	pipeline := NewPipeline(fetcher, log.New(io.Discard, "", 0))

	series, err := pipeline.Run(context.Background(), "", nil)

	assert.ErrorIs(t, err, domain.ErrMissingParameter)
	assert.Nil(t, series)
	assert.Empty(t, fetcher.Calls, "no network call may happen before the identity is validated")
}
