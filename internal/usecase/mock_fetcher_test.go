package usecase

import (
	"context"

	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/stretchr/testify/mock"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchUserRepos(ctx context.Context, login string) ([]domain.RepoRef, error) {
	args := m.Called(ctx, login)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepoRef), args.Error(1)
}

func (m *mockFetcher) FetchOrgRepos(ctx context.Context, org string) ([]domain.RepoRef, error) {
	args := m.Called(ctx, org)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RepoRef), args.Error(1)
}

func (m *mockFetcher) FetchContributorStats(ctx context.Context, owner, repo string) ([]domain.ContributorWeeks, error) {
	args := m.Called(ctx, owner, repo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ContributorWeeks), args.Error(1)
}
