package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/naka-gawa/loc-chart/internal/domain"
	"github.com/naka-gawa/loc-chart/internal/gateway"
)

// Pipeline is the use case for building a user's contribution series.
// It orchestrates discovery, collection and aggregation.
type Pipeline struct {
	discoverer *Discoverer
	collector  *Collector
	logger     *log.Logger
}

// NewPipeline creates a new Pipeline instance backed by fetcher.
func NewPipeline(fetcher gateway.Fetcher, logger *log.Logger) *Pipeline {
	return &Pipeline{
		discoverer: NewDiscoverer(fetcher, logger),
		collector:  NewCollector(fetcher, logger),
		logger:     logger,
	}
}

// Collector exposes the collector so callers can tune it.
func (p *Pipeline) Collector() *Collector {
	return p.collector
}

// Run performs the main business logic. The only error it returns is
// domain.ErrMissingParameter; every other failure degrades to less data.
func (p *Pipeline) Run(ctx context.Context, identity string, orgs []string) (*domain.ContributionSeries, error) {
	p.logger.Println("Usecase: Starting contribution aggregation...")
	identity = strings.TrimSpace(identity)

	repos, err := p.discoverer.Discover(ctx, identity, orgs)
	if err != nil {
		return nil, err
	}

	results := p.collector.Collect(ctx, repos, identity)
	withData := 0
	for _, r := range results {
		if len(r.Weeks) > 0 {
			withData++
		}
	}
	p.logger.Printf("Usecase: %d of %d repositories have data for %s\n", withData, len(results), identity)

	series := Aggregate(results)
	p.logger.Printf("Usecase: Aggregation complete, %d active weeks.\n", len(series.WeeklyData))
	return &series, nil
}
