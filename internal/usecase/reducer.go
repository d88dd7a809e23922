package usecase

import (
	"fmt"
	"time"

	"github.com/naka-gawa/github-wrapped/internal/domain"
)

// Reduce derives Stats from a single contributions response in one pass.
// Month and weekday names are English, taken from the calendar dates themselves.
func Reduce(raw *domain.RawContributionResponse) (*domain.Stats, error) {
	if raw == nil {
		return nil, &domain.MissingFieldError{Field: "user"}
	}

	s := &domain.Stats{
		TotalCommits:         raw.TotalCommitContributions,
		TotalPRs:             raw.TotalPullRequestContributions,
		TotalIssues:          raw.TotalIssueContributions,
		PRMergeTimes:         []int64{},
		IssueResolutionTimes: []int64{},
	}

	var err error
	if s.CommitsByRepo, err = byRepository("commitContributionsByRepository", raw.CommitContributionsByRepository); err != nil {
		return nil, err
	}
	if s.PRsByRepo, err = byRepository("pullRequestContributionsByRepository", raw.PullRequestContributionsByRepository); err != nil {
		return nil, err
	}
	if s.IssuesByRepo, err = byRepository("issueContributionsByRepository", raw.IssueContributionsByRepository); err != nil {
		return nil, err
	}

	for i, rc := range raw.PullRequestReviewContributions {
		path := fmt.Sprintf("pullRequestReviewContributions[%d]", i)
		pr := rc.PullRequest
		switch {
		case pr == nil:
			return nil, &domain.MissingFieldError{Field: path + ".pullRequest"}
		case pr.Author == nil:
			return nil, &domain.MissingFieldError{Field: path + ".pullRequest.author"}
		case rc.Repository == nil:
			return nil, &domain.MissingFieldError{Field: path + ".repository"}
		}

		s.CommentsOnPRs++
		// Keyed by the PR author rather than the reviewer.
		s.TopReviewers.Add(pr.Author.Login, 1)
		s.MostReviewedRepos.Add(rc.Repository.Name, 1)

		if pr.MergedAt != nil {
			if pr.CreatedAt == nil {
				return nil, &domain.MissingFieldError{Field: path + ".pullRequest.createdAt"}
			}
			s.PRMergeTimes = append(s.PRMergeTimes, pr.MergedAt.Sub(*pr.CreatedAt).Milliseconds())
		}
	}

	for i, repo := range raw.Repositories {
		for j, edge := range repo.Languages {
			if edge.Node == nil {
				return nil, &domain.MissingFieldError{Field: fmt.Sprintf("repositories[%d].languages[%d].node", i, j)}
			}
			s.TopLanguages.Add(edge.Node.Name, edge.Size)
		}
	}

	var weekdays [7]int
	var seen [7]bool
	if cal := raw.ContributionCalendar; cal != nil {
		for i, week := range cal.Weeks {
			for j, day := range week.Days {
				if day.Date.IsZero() {
					return nil, &domain.MissingFieldError{Field: fmt.Sprintf("contributionCalendar.weeks[%d].contributionDays[%d].date", i, j)}
				}
				s.MonthlyContributions.Add(day.Date.Month().String(), day.ContributionCount)
				wd := day.Date.Weekday()
				weekdays[wd] += day.ContributionCount
				seen[wd] = true
			}
		}
	}
	s.MostActiveDay = mostActiveDay(weekdays, seen)

	s.TopReposByCommits = s.CommitsByRepo.Top(domain.TopRepoLimit)
	s.TopReposByIssues = s.IssuesByRepo.Top(domain.TopRepoLimit)

	return s, nil
}

func byRepository(field string, entries []domain.RepositoryContributions) (domain.Tally, error) {
	var t domain.Tally
	for i, e := range entries {
		if e.Repository == nil {
			return domain.Tally{}, &domain.MissingFieldError{Field: fmt.Sprintf("%s[%d].repository", field, i)}
		}
		t.Set(e.Repository.Name, e.TotalCount)
	}
	return t, nil
}

// mostActiveDay walks Sunday through Saturday and keeps the first weekday with the highest sum.
// Only weekdays present in the calendar are candidates.
func mostActiveDay(sums [7]int, seen [7]bool) string {
	best := -1
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if !seen[wd] {
			continue
		}
		if best < 0 || sums[wd] > sums[best] {
			best = int(wd)
		}
	}
	if best < 0 {
		return ""
	}
	return time.Weekday(best).String()
}
