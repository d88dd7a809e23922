package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func day(value string, count int) domain.ContributionDay {
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return domain.ContributionDay{Date: d, ContributionCount: count}
}

func repoContrib(name string, count int) domain.RepositoryContributions {
	return domain.RepositoryContributions{Repository: &domain.RepositoryRef{Name: name}, TotalCount: count}
}

func review(author, repo, createdAt string, mergedAt string) domain.ReviewContribution {
	pr := &domain.PullRequestRef{Author: &domain.Actor{Login: author}, CreatedAt: ts(createdAt)}
	if mergedAt != "" {
		pr.MergedAt = ts(mergedAt)
	}
	return domain.ReviewContribution{PullRequest: pr, Repository: &domain.RepositoryRef{Name: repo}}
}

func lang(name string, size int) domain.LanguageEdge {
	return domain.LanguageEdge{Size: size, Node: &domain.Language{Name: name}}
}

func fixtureResponse() *domain.RawContributionResponse {
	return &domain.RawContributionResponse{
		TotalCommitContributions:      42,
		TotalPullRequestContributions: 7,
		TotalIssueContributions:       3,
		CommitContributionsByRepository: []domain.RepositoryContributions{
			repoContrib("r1", 1), repoContrib("r2", 9), repoContrib("r3", 4), repoContrib("r4", 9),
			repoContrib("r5", 2), repoContrib("r6", 17),
		},
		PullRequestContributionsByRepository: []domain.RepositoryContributions{
			repoContrib("r2", 5), repoContrib("r6", 2),
		},
		IssueContributionsByRepository: []domain.RepositoryContributions{
			repoContrib("r3", 2), repoContrib("r1", 1),
		},
		PullRequestReviewContributions: []domain.ReviewContribution{
			review("alice", "r2", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"),
			review("bob", "r2", "2024-02-01T10:00:00Z", ""),
			review("alice", "r6", "2024-03-01T00:00:00Z", "2024-03-01T00:30:00Z"),
		},
		ContributionCalendar: &domain.ContributionCalendar{
			Weeks: []domain.ContributionWeek{
				{Days: []domain.ContributionDay{
					day("2023-12-31", 2), // Sunday, before the year started
					day("2024-01-01", 5), // Monday
					day("2024-01-02", 1), // Tuesday
				}},
				{Days: []domain.ContributionDay{
					day("2024-02-05", 3), // Monday
					day("2024-02-06", 0), // Tuesday
				}},
			},
		},
		Repositories: []domain.Repository{
			{Name: "r1", Languages: []domain.LanguageEdge{lang("Go", 1000), lang("Shell", 20)}},
			{Name: "r2", Languages: []domain.LanguageEdge{lang("TypeScript", 500), lang("Go", 250)}},
			{Name: "r3"},
		},
	}
}

func TestReduce(t *testing.T) {
	raw := fixtureResponse()
	stats, err := Reduce(raw)
	require.NoError(t, err)

	t.Run("totals pass through", func(t *testing.T) {
		assert.Equal(t, raw.TotalCommitContributions, stats.TotalCommits)
		assert.Equal(t, raw.TotalPullRequestContributions, stats.TotalPRs)
		assert.Equal(t, raw.TotalIssueContributions, stats.TotalIssues)
	})

	t.Run("per repository counts keep API order", func(t *testing.T) {
		assert.Equal(t, []domain.Entry{
			{Key: "r1", Count: 1}, {Key: "r2", Count: 9}, {Key: "r3", Count: 4},
			{Key: "r4", Count: 9}, {Key: "r5", Count: 2}, {Key: "r6", Count: 17},
		}, stats.CommitsByRepo.Entries())
		assert.Equal(t, []domain.Entry{{Key: "r2", Count: 5}, {Key: "r6", Count: 2}}, stats.PRsByRepo.Entries())
		assert.Equal(t, []domain.Entry{{Key: "r3", Count: 2}, {Key: "r1", Count: 1}}, stats.IssuesByRepo.Entries())
	})

	t.Run("reviews", func(t *testing.T) {
		assert.Equal(t, len(raw.PullRequestReviewContributions), stats.CommentsOnPRs)
		assert.Equal(t, []domain.Entry{{Key: "alice", Count: 2}, {Key: "bob", Count: 1}}, stats.TopReviewers.Entries())
		assert.Equal(t, []domain.Entry{{Key: "r2", Count: 2}, {Key: "r6", Count: 1}}, stats.MostReviewedRepos.Entries())
		assert.Equal(t, []int64{86400000, 1800000}, stats.PRMergeTimes)
		assert.Empty(t, stats.IssueResolutionTimes)
		assert.NotNil(t, stats.IssueResolutionTimes)
	})

	t.Run("languages accumulate bytes", func(t *testing.T) {
		assert.Equal(t, []domain.Entry{
			{Key: "Go", Count: 1250}, {Key: "Shell", Count: 20}, {Key: "TypeScript", Count: 500},
		}, stats.TopLanguages.Entries())
	})

	t.Run("monthly contributions conserve the calendar total", func(t *testing.T) {
		assert.Equal(t, []domain.Entry{
			{Key: "December", Count: 2}, {Key: "January", Count: 6}, {Key: "February", Count: 3},
		}, stats.MonthlyContributions.Entries())

		var total int
		for _, w := range raw.ContributionCalendar.Weeks {
			for _, d := range w.Days {
				total += d.ContributionCount
			}
		}
		assert.Equal(t, total, stats.MonthlyContributions.Sum())
	})

	t.Run("most active day", func(t *testing.T) {
		assert.Equal(t, "Monday", stats.MostActiveDay)
	})

	t.Run("top repositories", func(t *testing.T) {
		// r2 and r4 tie at 9 and keep their API order.
		assert.Equal(t, []domain.Entry{
			{Key: "r6", Count: 17}, {Key: "r2", Count: 9}, {Key: "r4", Count: 9},
			{Key: "r3", Count: 4}, {Key: "r5", Count: 2},
		}, stats.TopReposByCommits.Entries())
		assert.Equal(t, []domain.Entry{{Key: "r3", Count: 2}, {Key: "r1", Count: 1}}, stats.TopReposByIssues.Entries())

		for _, top := range []struct {
			top, full domain.Tally
		}{
			{stats.TopReposByCommits, stats.CommitsByRepo},
			{stats.TopReposByIssues, stats.IssuesByRepo},
		} {
			entries := top.top.Entries()
			assert.LessOrEqual(t, len(entries), domain.TopRepoLimit)
			for i, e := range entries {
				full, ok := top.full.Get(e.Key)
				assert.True(t, ok)
				assert.Equal(t, full, e.Count)
				if i > 0 {
					assert.GreaterOrEqual(t, entries[i-1].Count, e.Count)
				}
			}
		}
	})
}

func TestReduce_Examples(t *testing.T) {
	t.Run("top repos by commits is descending", func(t *testing.T) {
		stats, err := Reduce(&domain.RawContributionResponse{
			CommitContributionsByRepository: []domain.RepositoryContributions{repoContrib("a", 5), repoContrib("b", 10)},
		})
		require.NoError(t, err)
		assert.Equal(t, []domain.Entry{{Key: "b", Count: 10}, {Key: "a", Count: 5}}, stats.TopReposByCommits.Entries())
	})

	t.Run("one day merge latency", func(t *testing.T) {
		stats, err := Reduce(&domain.RawContributionResponse{
			PullRequestReviewContributions: []domain.ReviewContribution{
				review("alice", "a", "2024-01-01T00:00:00Z", "2024-01-02T00:00:00Z"),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []int64{86400000}, stats.PRMergeTimes)
	})

	t.Run("duplicate repository entries, last write wins", func(t *testing.T) {
		stats, err := Reduce(&domain.RawContributionResponse{
			CommitContributionsByRepository: []domain.RepositoryContributions{
				repoContrib("a", 5), repoContrib("b", 1), repoContrib("a", 2),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, []domain.Entry{{Key: "a", Count: 2}, {Key: "b", Count: 1}}, stats.CommitsByRepo.Entries())
	})

	t.Run("empty response", func(t *testing.T) {
		stats, err := Reduce(&domain.RawContributionResponse{})
		require.NoError(t, err)
		assert.Equal(t, 0, stats.CommentsOnPRs)
		assert.Equal(t, "", stats.MostActiveDay)
		assert.Equal(t, []int64{}, stats.PRMergeTimes)
		assert.Equal(t, 0, stats.TopReposByCommits.Len())
	})
}

func TestMostActiveDay_TieBreak(t *testing.T) {
	testCases := []struct {
		name     string
		days     []domain.ContributionDay
		expected string
	}{
		{
			name:     "Sunday wins a tie with Saturday",
			days:     []domain.ContributionDay{day("2024-01-06", 4), day("2024-01-07", 4)},
			expected: "Sunday",
		},
		{
			name:     "Wednesday beats Friday on a tie regardless of calendar order",
			days:     []domain.ContributionDay{day("2024-01-05", 3), day("2024-01-03", 3)},
			expected: "Wednesday",
		},
		{
			name:     "sums are per weekday",
			days:     []domain.ContributionDay{day("2024-01-05", 3), day("2024-01-12", 3), day("2024-01-03", 5)},
			expected: "Friday",
		},
		{
			name:     "all zero picks the first weekday present",
			days:     []domain.ContributionDay{day("2024-01-04", 0), day("2024-01-02", 0)},
			expected: "Tuesday",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			stats, err := Reduce(&domain.RawContributionResponse{
				ContributionCalendar: &domain.ContributionCalendar{
					Weeks: []domain.ContributionWeek{{Days: tc.days}},
				},
			})
			require.NoError(t, err)
			assert.Equal(t, tc.expected, stats.MostActiveDay)
		})
	}
}

func TestReduce_MissingFields(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(raw *domain.RawContributionResponse)
		field  string
	}{
		{
			name:   "repository of a commit contribution",
			mutate: func(raw *domain.RawContributionResponse) { raw.CommitContributionsByRepository[2].Repository = nil },
			field:  "commitContributionsByRepository[2].repository",
		},
		{
			name:   "repository of an issue contribution",
			mutate: func(raw *domain.RawContributionResponse) { raw.IssueContributionsByRepository[0].Repository = nil },
			field:  "issueContributionsByRepository[0].repository",
		},
		{
			name:   "pull request of a review",
			mutate: func(raw *domain.RawContributionResponse) { raw.PullRequestReviewContributions[1].PullRequest = nil },
			field:  "pullRequestReviewContributions[1].pullRequest",
		},
		{
			name:   "author of a reviewed pull request",
			mutate: func(raw *domain.RawContributionResponse) { raw.PullRequestReviewContributions[0].PullRequest.Author = nil },
			field:  "pullRequestReviewContributions[0].pullRequest.author",
		},
		{
			name:   "repository of a review",
			mutate: func(raw *domain.RawContributionResponse) { raw.PullRequestReviewContributions[2].Repository = nil },
			field:  "pullRequestReviewContributions[2].repository",
		},
		{
			name:   "createdAt of a merged pull request",
			mutate: func(raw *domain.RawContributionResponse) { raw.PullRequestReviewContributions[0].PullRequest.CreatedAt = nil },
			field:  "pullRequestReviewContributions[0].pullRequest.createdAt",
		},
		{
			name:   "language node",
			mutate: func(raw *domain.RawContributionResponse) { raw.Repositories[1].Languages[1].Node = nil },
			field:  "repositories[1].languages[1].node",
		},
		{
			name: "calendar date",
			mutate: func(raw *domain.RawContributionResponse) {
				raw.ContributionCalendar.Weeks[1].Days[0].Date = time.Time{}
			},
			field: "contributionCalendar.weeks[1].contributionDays[0].date",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := fixtureResponse()
			tc.mutate(raw)

			stats, err := Reduce(raw)
			assert.Nil(t, stats)
			var missing *domain.MissingFieldError
			require.True(t, errors.As(err, &missing))
			assert.Equal(t, tc.field, missing.Field)
			assert.ErrorIs(t, err, domain.ErrUpstream)
		})
	}

	t.Run("nil response", func(t *testing.T) {
		_, err := Reduce(nil)
		assert.ErrorIs(t, err, domain.ErrUpstream)
	})

	t.Run("unmerged pull request does not need createdAt", func(t *testing.T) {
		raw := fixtureResponse()
		raw.PullRequestReviewContributions[1].PullRequest.CreatedAt = nil
		_, err := Reduce(raw)
		assert.NoError(t, err)
	})
}
