// Package domain contains the core data structures and domain logic for the application.
package domain

import "errors"

// ErrMissingParameter is returned when a required input, such as the target
// user name, is absent. It is the only fatal condition of the pipeline.
var ErrMissingParameter = errors.New("missing parameter")

// RepoRef identifies a single repository on GitHub.
type RepoRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

// Key returns the deduplication key "owner/name".
func (r RepoRef) Key() string {
	return r.Owner + "/" + r.Name
}

// WeeklyRecord holds one week's change totals. Week is the unix timestamp
// of the week start as reported by GitHub.
type WeeklyRecord struct {
	Week      int64 `json:"week"`
	Additions int   `json:"additions"`
	Deletions int   `json:"deletions"`
	Commits   int   `json:"commits"`
}

// IsZero reports whether the record carries no activity at all.
func (w WeeklyRecord) IsZero() bool {
	return w.Additions == 0 && w.Deletions == 0 && w.Commits == 0
}

// ContributorWeeks is one contributor entry of a repository's statistics.
type ContributorWeeks struct {
	Login string
	Weeks []WeeklyRecord
}

// RepoWeeks is the result of collecting statistics for a single repository.
// A nil Weeks with a nil Err means the repository had nothing for the user.
type RepoWeeks struct {
	Repo  RepoRef
	Weeks []WeeklyRecord
	Err   error
}

// SourceResult is the result of listing repositories from one source,
// either the user's own repositories or a single organization.
type SourceResult struct {
	Source string
	Repos  []RepoRef
	Err    error
}

// ContributionSeries is the aggregated, time ordered output of the pipeline.
type ContributionSeries struct {
	WeeklyData     []WeeklyRecord `json:"weekly_data"`
	TotalAdditions int            `json:"total_additions"`
	TotalDeletions int            `json:"total_deletions"`
	TotalCommits   int            `json:"total_commits"`
	NetLines       int            `json:"net_lines"`
}
