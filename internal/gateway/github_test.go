package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/shurcooL/githubv4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestGateway creates a GitHubGateway that communicates with a mock HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) (*GitHubGateway, *httptest.Server) {
	server := httptest.NewServer(handler)

	// Setup REST client to point to the mock server.
	restClient := github.NewClient(server.Client())
	baseURL, err := url.Parse(server.URL + "/")
	require.NoError(t, err)
	restClient.BaseURL = baseURL

	// Use NewEnterpriseClient to point the GraphQL client to our mock server's URL.
	graphqlClient := githubv4.NewEnterpriseClient(server.URL, server.Client())
	logger := log.New(io.Discard, "", 0)

	gateway := &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
		maxPages:      DefaultMaxPages,
	}

	return gateway, server
}

func TestGitHubGateway_FetchContributorStats(t *testing.T) {
	testCases := []struct {
		name           string
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expected       []domain.ContributorWeeks
		expectedErr    error
		expectedErrMsg string
	}{
		{
			name: "happy path - decodes contributors and weeks",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/repos/octo/hello/stats/contributors", r.URL.Path)
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `[{"author":{"login":"Octocat"},"total":3,"weeks":[{"w":1700000000,"a":10,"d":2,"c":1},{"w":1700604800,"a":0,"d":0,"c":0}]}]`)
			},
			expected: []domain.ContributorWeeks{
				{
					Login: "Octocat",
					Weeks: []domain.WeeklyRecord{
						{Week: 1700000000, Additions: 10, Deletions: 2, Commits: 1},
						{Week: 1700604800},
					},
				},
			},
		},
		{
			name: "computing - GitHub answers 202",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusAccepted)
				fmt.Fprint(w, `{}`)
			},
			expectedErr: ErrStatsComputing,
		},
		{
			name: "error case - GitHub API returns an error",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				fmt.Fprint(w, `{"message": "Internal Server Error"}`)
			},
			expectedErrMsg: "failed to fetch contributor stats for octo/hello",
		},
		{
			name: "error case - payload is not a list",
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, `{"message": "not a list"}`)
			},
			expectedErrMsg: "failed to fetch contributor stats",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway, server := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))
			defer server.Close()

			result, err := gateway.FetchContributorStats(context.Background(), "octo", "hello")
			switch {
			case tc.expectedErr != nil:
				assert.ErrorIs(t, err, tc.expectedErr)
			case tc.expectedErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

// TestGitHubGateway_RepoListing covers the GraphQL discovery queries.
func TestGitHubGateway_RepoListing(t *testing.T) {
	testCases := []struct {
		name           string
		methodToTest   func(gateway *GitHubGateway) ([]domain.RepoRef, error)
		queryContains  string
		responseBody   string
		expected       []domain.RepoRef
		expectedErrMsg string
	}{
		{
			name: "FetchUserRepos - happy path",
			methodToTest: func(gateway *GitHubGateway) ([]domain.RepoRef, error) {
				return gateway.FetchUserRepos(context.Background(), "octocat")
			},
			queryContains: "ownerAffiliations",
			responseBody:  `{"data":{"user":{"repositories":{"pageInfo":{"hasNextPage":false,"endCursor":""},"nodes":[{"name":"hello","owner":{"login":"octocat"}},{"name":"infra","owner":{"login":"acme"}}]}}}}`,
			expected: []domain.RepoRef{
				{Owner: "octocat", Name: "hello"},
				{Owner: "acme", Name: "infra"},
			},
		},
		{
			name: "FetchOrgRepos - owner is the org name as supplied",
			methodToTest: func(gateway *GitHubGateway) ([]domain.RepoRef, error) {
				return gateway.FetchOrgRepos(context.Background(), "Acme")
			},
			queryContains: "organization(login:",
			responseBody:  `{"data":{"organization":{"repositories":{"pageInfo":{"hasNextPage":false,"endCursor":""},"nodes":[{"name":"api"}]}}}}`,
			expected:      []domain.RepoRef{{Owner: "Acme", Name: "api"}},
		},
		{
			name: "FetchOrgRepos - error case",
			methodToTest: func(gateway *GitHubGateway) ([]domain.RepoRef, error) {
				return gateway.FetchOrgRepos(context.Background(), "ghost")
			},
			queryContains:  "organization(login:",
			responseBody:   `{"errors":[{"message":"Could not resolve to an Organization"}]}`,
			expectedErrMsg: "failed to list repositories for organization ghost",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			handler := func(w http.ResponseWriter, r *http.Request) {
				body, err := io.ReadAll(r.Body)
				require.NoError(t, err)
				assert.Contains(t, string(body), tc.queryContains)

				w.WriteHeader(http.StatusOK)
				fmt.Fprint(w, tc.responseBody)
			}
			gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
			defer server.Close()

			result, err := tc.methodToTest(gateway)

			if tc.expectedErrMsg != "" {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, result)
			}
		})
	}
}

func TestGitHubGateway_FetchUserRepos_Pagination(t *testing.T) {
	calls := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		calls++
		w.WriteHeader(http.StatusOK)
		if strings.Contains(string(body), `"cursor":"page2"`) {
			fmt.Fprint(w, `{"data":{"user":{"repositories":{"pageInfo":{"hasNextPage":true,"endCursor":"page3"},"nodes":[{"name":"b","owner":{"login":"octocat"}}]}}}}`)
			return
		}
		fmt.Fprint(w, `{"data":{"user":{"repositories":{"pageInfo":{"hasNextPage":true,"endCursor":"page2"},"nodes":[{"name":"a","owner":{"login":"octocat"}}]}}}}`)
	}
	gateway, server := setupTestGateway(t, http.HandlerFunc(handler))
	defer server.Close()
	gateway.maxPages = 2

	result, err := gateway.FetchUserRepos(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "pagination should stop at maxPages")
	assert.Equal(t, []domain.RepoRef{
		{Owner: "octocat", Name: "a"},
		{Owner: "octocat", Name: "b"},
	}, result)
}
