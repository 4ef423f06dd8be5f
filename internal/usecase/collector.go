package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/naka-gawa/loc-chart/internal/gateway"
	"golang.org/x/sync/errgroup"
)

// Collector defaults.
const (
	DefaultRetryDelay  = 1500 * time.Millisecond
	DefaultTimeout     = 10 * time.Second
	DefaultConcurrency = 16
)

// Collector fetches the weekly statistics of one user across many repositories.
type Collector struct {
	fetcher gateway.StatsFetcher
	logger  *log.Logger

	// RetryDelay is how long to wait before the single retry after GitHub
	// reports that statistics are still being computed.
	RetryDelay time.Duration
	// Timeout bounds each repository's fetch, retry included.
	Timeout time.Duration
	// Concurrency caps the number of in-flight repository fetches.
	Concurrency int
}

// NewCollector creates a new Collector instance with default tuning.
func NewCollector(fetcher gateway.StatsFetcher, logger *log.Logger) *Collector {
	return &Collector{
		fetcher:     fetcher,
		logger:      logger,
		RetryDelay:  DefaultRetryDelay,
		Timeout:     DefaultTimeout,
		Concurrency: DefaultConcurrency,
	}
}

// Collect fetches statistics for every repository concurrently and returns one
// result per repository, at the same index. It never fails as a whole: errors
// are recorded on the individual results.
func (c *Collector) Collect(ctx context.Context, repos []domain.RepoRef, identity string) []domain.RepoWeeks {
	c.logger.Printf("Collector: fetching stats for %d repositories...\n", len(repos))
	results := make([]domain.RepoWeeks, len(repos))

	var eg errgroup.Group
	if c.Concurrency > 0 {
		eg.SetLimit(c.Concurrency)
	}
	for i, repo := range repos {
		i, repo := i, repo
		eg.Go(func() error {
			weeks, err := c.collectRepo(ctx, repo, identity)
			if err != nil {
				c.logger.Printf("  %s: %v\n", repo.Key(), err)
			}
			results[i] = domain.RepoWeeks{Repo: repo, Weeks: weeks, Err: err}
			return nil
		})
	}
	_ = eg.Wait()

	c.logger.Println("Collector: all repositories settled.")
	return results
}

// collectRepo returns the weeks of identity in repo, or nil when there are none.
func (c *Collector) collectRepo(ctx context.Context, repo domain.RepoRef, identity string) ([]domain.WeeklyRecord, error) {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	contributors, err := c.fetcher.FetchContributorStats(ctx, repo.Owner, repo.Name)
	if errors.Is(err, gateway.ErrStatsComputing) {
		c.logger.Printf("  %s: stats are being computed, retrying in %s\n", repo.Key(), c.RetryDelay)
		if err := sleep(ctx, c.RetryDelay); err != nil {
			return nil, fmt.Errorf("failed waiting to retry: %w", err)
		}
		contributors, err = c.fetcher.FetchContributorStats(ctx, repo.Owner, repo.Name)
		if errors.Is(err, gateway.ErrStatsComputing) {
			c.logger.Printf("  %s: stats still not ready, skipping\n", repo.Key())
			return nil, nil
		}
	}
	if err != nil {
		return nil, err
	}

	for _, contributor := range contributors {
		if strings.EqualFold(contributor.Login, identity) {
			return contributor.Weeks, nil
		}
	}
	return nil, nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
