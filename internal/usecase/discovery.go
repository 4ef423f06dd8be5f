package usecase

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/naka-gawa/loc-chart/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// Discoverer builds the set of repositories whose statistics are collected.
type Discoverer struct {
	lister gateway.RepoLister
	logger *log.Logger
}

// NewDiscoverer creates a new Discoverer instance.
func NewDiscoverer(lister gateway.RepoLister, logger *log.Logger) *Discoverer {
	return &Discoverer{
		lister: lister,
		logger: logger,
	}
}

// ParseOrgList splits a comma-separated list of organization names,
// trimming whitespace and dropping empty entries.
func ParseOrgList(s string) []string {
	var orgs []string
	for _, part := range strings.Split(s, ",") {
		if org := strings.TrimSpace(part); org != "" {
			orgs = append(orgs, org)
		}
	}
	return orgs
}

// Discover returns the deduplicated repositories of identity plus the
// non-fork repositories of every organization in orgs.
// A failing source is logged and contributes nothing; only a missing
// identity is an error.
func (d *Discoverer) Discover(ctx context.Context, identity string, orgs []string) ([]domain.RepoRef, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return nil, fmt.Errorf("%w: username", domain.ErrMissingParameter)
	}

	results := make([]domain.SourceResult, len(orgs)+1)

	// Every goroutine returns nil so one failing source never cancels the others.
	var eg errgroup.Group
	eg.Go(func() error {
		repos, err := d.lister.FetchUserRepos(ctx, identity)
		results[0] = domain.SourceResult{Source: "user:" + identity, Repos: repos, Err: err}
		return nil
	})
	for i, org := range orgs {
		i, org := i, org
		eg.Go(func() error {
			repos, err := d.lister.FetchOrgRepos(ctx, org)
			results[i+1] = domain.SourceResult{Source: "org:" + org, Repos: repos, Err: err}
			return nil
		})
	}
	_ = eg.Wait()

	var all []domain.RepoRef
	for _, r := range results {
		if r.Err != nil {
			d.logger.Printf("Discovery: skipping %s: %v\n", r.Source, r.Err)
			continue
		}
		all = append(all, r.Repos...)
	}

	repos := Dedupe(all)
	d.logger.Printf("Discovery: %d unique repositories from %d sources\n", len(repos), len(results))
	return repos, nil
}

// Dedupe removes repositories with a repeated owner/name key, keeping the first.
func Dedupe(repos []domain.RepoRef) []domain.RepoRef {
	seen := make(map[string]struct{}, len(repos))
	unique := make([]domain.RepoRef, 0, len(repos))
	for _, r := range repos {
		if _, ok := seen[r.Key()]; ok {
			continue
		}
		seen[r.Key()] = struct{}{}
		unique = append(unique, r)
	}
	return unique
}
