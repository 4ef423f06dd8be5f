// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
)

// DefaultMaxPages bounds how many pages of repositories are read per source.
const DefaultMaxPages = 10

// ErrStatsComputing is returned when GitHub answers 202 Accepted because the
// contributor statistics for a repository are still being generated.
var ErrStatsComputing = errors.New("contributor statistics are being computed")

// RepoLister lists repositories for discovery.
type RepoLister interface {
	FetchUserRepos(ctx context.Context, login string) ([]domain.RepoRef, error)
	FetchOrgRepos(ctx context.Context, org string) ([]domain.RepoRef, error)
}

// StatsFetcher fetches per-repository contributor statistics.
type StatsFetcher interface {
	FetchContributorStats(ctx context.Context, owner, repo string) ([]domain.ContributorWeeks, error)
}

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	RepoLister
	StatsFetcher
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *log.Logger
	maxPages      int
}

// pageInfo is shared by the paginated repository queries.
type pageInfo struct {
	HasNextPage bool
	EndCursor   githubv4.String
}

// userReposQuery lists the non-fork repositories a user owns, collaborates on,
// or can see through organization membership.
type userReposQuery struct {
	User struct {
		Repositories struct {
			PageInfo pageInfo
			Nodes    []struct {
				Name  string
				Owner struct {
					Login string
				}
			}
		} `graphql:"repositories(first: 100, after: $cursor, isFork: false, ownerAffiliations: [OWNER, COLLABORATOR, ORGANIZATION_MEMBER])"`
	} `graphql:"user(login: $login)"`
}

// orgReposQuery lists the non-fork repositories of an organization.
type orgReposQuery struct {
	Organization struct {
		Repositories struct {
			PageInfo pageInfo
			Nodes    []struct {
				Name string
			}
		} `graphql:"repositories(first: 100, after: $cursor, isFork: false)"`
	} `graphql:"organization(login: $login)"`
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
// The token is threaded in explicitly; nothing is read from the environment here.
func NewGitHubGateway(token string, maxPages int, logger *log.Logger) (*GitHubGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(1*time.Minute, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	var transport http.RoundTripper = rateLimitWaiter
	if token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
		}
	}
	httpClient := &http.Client{Transport: transport}
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	return &GitHubGateway{
		restClient:    github.NewClient(httpClient),
		graphqlClient: githubv4.NewClient(httpClient),
		logger:        logger,
		maxPages:      maxPages,
	}, nil
}

// FetchUserRepos returns the non-fork repositories affiliated with login.
func (g *GitHubGateway) FetchUserRepos(ctx context.Context, login string) ([]domain.RepoRef, error) {
	variables := map[string]interface{}{
		"login":  githubv4.String(login),
		"cursor": (*githubv4.String)(nil),
	}
	var repos []domain.RepoRef
	for page := 1; ; page++ {
		var q userReposQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to list repositories for user %s: %w", login, err)
		}
		for _, node := range q.User.Repositories.Nodes {
			repos = append(repos, domain.RepoRef{Owner: node.Owner.Login, Name: node.Name})
		}
		if !q.User.Repositories.PageInfo.HasNextPage {
			break
		}
		if page >= g.maxPages {
			g.logger.Printf("  Stopping after %d pages of repositories for user %s", page, login)
			break
		}
		variables["cursor"] = githubv4.NewString(q.User.Repositories.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of user repositories...")
	}
	g.logger.Printf("Found %d repositories for user %s\n", len(repos), login)
	return repos, nil
}

// FetchOrgRepos returns the non-fork repositories of org. The owner of each
// returned RepoRef is org exactly as supplied by the caller.
func (g *GitHubGateway) FetchOrgRepos(ctx context.Context, org string) ([]domain.RepoRef, error) {
	variables := map[string]interface{}{
		"login":  githubv4.String(org),
		"cursor": (*githubv4.String)(nil),
	}
	var repos []domain.RepoRef
	for page := 1; ; page++ {
		var q orgReposQuery
		if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
			return nil, fmt.Errorf("failed to list repositories for organization %s: %w", org, err)
		}
		for _, node := range q.Organization.Repositories.Nodes {
			repos = append(repos, domain.RepoRef{Owner: org, Name: node.Name})
		}
		if !q.Organization.Repositories.PageInfo.HasNextPage {
			break
		}
		if page >= g.maxPages {
			g.logger.Printf("  Stopping after %d pages of repositories for organization %s", page, org)
			break
		}
		variables["cursor"] = githubv4.NewString(q.Organization.Repositories.PageInfo.EndCursor)
		g.logger.Println("  Fetching next page of organization repositories...")
	}
	g.logger.Printf("Found %d repositories for organization %s\n", len(repos), org)
	return repos, nil
}

// FetchContributorStats returns the weekly statistics of every contributor
// of owner/repo. It returns ErrStatsComputing when GitHub answers 202.
func (g *GitHubGateway) FetchContributorStats(ctx context.Context, owner, repo string) ([]domain.ContributorWeeks, error) {
	stats, _, err := g.restClient.Repositories.ListContributorsStats(ctx, owner, repo)
	if err != nil {
		var accepted *github.AcceptedError
		if errors.As(err, &accepted) {
			return nil, ErrStatsComputing
		}
		return nil, fmt.Errorf("failed to fetch contributor stats for %s/%s: %w", owner, repo, err)
	}

	contributors := make([]domain.ContributorWeeks, 0, len(stats))
	for _, s := range stats {
		if s == nil {
			continue
		}
		weeks := make([]domain.WeeklyRecord, 0, len(s.Weeks))
		for _, w := range s.Weeks {
			if w == nil {
				continue
			}
			weeks = append(weeks, domain.WeeklyRecord{
				Week:      w.GetWeek().Unix(),
				Additions: w.GetAdditions(),
				Deletions: w.GetDeletions(),
				Commits:   w.GetCommits(),
			})
		}
		contributors = append(contributors, domain.ContributorWeeks{
			Login: s.GetAuthor().GetLogin(),
			Weeks: weeks,
		})
	}
	return contributors, nil
}
