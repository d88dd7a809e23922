// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/naka-gawa/github-wrapped/internal/gateway"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Aggregator is the use case for building a user's yearly report.
// It orchestrates the fetching and reduction of data.
type Aggregator struct {
	fetcher gateway.Fetcher
	logger  *logrus.Logger
	now     func() time.Time
}

// NewAggregator creates a new Aggregator instance.
func NewAggregator(fetcher gateway.Fetcher, logger *logrus.Logger) *Aggregator {
	return &Aggregator{
		fetcher: fetcher,
		logger:  logger,
		now:     time.Now,
	}
}

// YearStart returns January 1st, 00:00 UTC, of the UTC year containing now.
func YearStart(now time.Time) time.Time {
	return time.Date(now.UTC().Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Aggregate fetches the user's contributions since the start of the year and reduces them to Stats.
// The profile is fetched alongside. Failing to get it does not fail the report.
func (a *Aggregator) Aggregate(ctx context.Context, username string) (*domain.Report, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, &domain.InputError{Reason: "username is required"}
	}

	now := a.now()
	from := YearStart(now)
	log := a.logger.WithField("user", username)
	log.Debug("Usecase: Starting data aggregation...")

	var raw *domain.RawContributionResponse
	var profile *domain.Profile

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		raw, err = a.fetcher.FetchContributions(egCtx, username, from)
		if err != nil {
			return &domain.UpstreamError{Op: "fetch contributions", Err: err}
		}
		return nil
	})

	eg.Go(func() error {
		p, err := a.fetcher.FetchProfile(egCtx, username)
		if err != nil {
			log.WithError(err).Warn("Usecase: profile unavailable, continuing without it")
			return nil
		}
		profile = p
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}
	log.Debug("Usecase: All data fetched successfully.")

	stats, err := Reduce(raw)
	if err != nil {
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"commits": stats.TotalCommits,
		"prs":     stats.TotalPRs,
		"issues":  stats.TotalIssues,
		"reviews": stats.CommentsOnPRs,
	}).Info("Usecase: Aggregation complete.")

	return &domain.Report{
		Username:    username,
		From:        from,
		GeneratedAt: now,
		Profile:     profile,
		Stats:       stats,
	}, nil
}
