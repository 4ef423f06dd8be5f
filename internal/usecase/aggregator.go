// Package usecase contains the business logic of the application.
package usecase

import (
	"sort"

	"github.com/naka-gawa/loc-chart/internal/domain"
)

// Aggregate merges per-repository weekly records into a single series.
// Weeks without any activity are skipped, so they never show up as points.
// The result does not depend on the order of results.
func Aggregate(results []domain.RepoWeeks) domain.ContributionSeries {
	byWeek := make(map[int64]*domain.WeeklyRecord)
	for _, result := range results {
		for _, week := range result.Weeks {
			if week.IsZero() {
				continue
			}
			slot, ok := byWeek[week.Week]
			if !ok {
				slot = &domain.WeeklyRecord{Week: week.Week}
				byWeek[week.Week] = slot
			}
			slot.Additions += week.Additions
			slot.Deletions += week.Deletions
			slot.Commits += week.Commits
		}
	}

	weeks := make([]int64, 0, len(byWeek))
	for week := range byWeek {
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i] < weeks[j] })

	series := domain.ContributionSeries{WeeklyData: make([]domain.WeeklyRecord, 0, len(weeks))}
	for _, week := range weeks {
		record := *byWeek[week]
		series.WeeklyData = append(series.WeeklyData, record)
		series.TotalAdditions += record.Additions
		series.TotalDeletions += record.Deletions
		series.TotalCommits += record.Commits
	}
	series.NetLines = series.TotalAdditions - series.TotalDeletions
	return series
}
