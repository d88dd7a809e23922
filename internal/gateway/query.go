package gateway

import (
	"fmt"
	"time"

	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/shurcooL/githubv4"
)

// calendarDateLayout is the format of ContributionCalendarDay.date.
const calendarDateLayout = "2006-01-02"

type repositoryName struct {
	Name string
}

type repositoryContributionNode struct {
	Repository    *repositoryName
	Contributions struct {
		TotalCount int
	}
}

type reviewContributionNode struct {
	PullRequest *struct {
		Author *struct {
			Login string
		}
		CreatedAt *githubv4.DateTime
		MergedAt  *githubv4.DateTime
	}
	Repository *repositoryName
}

// contributionsQuery is the single query issued per user.
// Reviews and repositories are limited to the first page of 100, languages to 5 per repository.
type contributionsQuery struct {
	User *struct {
		ContributionsCollection struct {
			TotalCommitContributions             int
			TotalPullRequestContributions        int
			TotalIssueContributions              int
			CommitContributionsByRepository      []repositoryContributionNode `graphql:"commitContributionsByRepository(maxRepositories: 100)"`
			PullRequestContributionsByRepository []repositoryContributionNode `graphql:"pullRequestContributionsByRepository(maxRepositories: 100)"`
			IssueContributionsByRepository       []repositoryContributionNode `graphql:"issueContributionsByRepository(maxRepositories: 100)"`
			PullRequestReviewContributions       struct {
				Nodes []reviewContributionNode
			} `graphql:"pullRequestReviewContributions(first: 100)"`
			ContributionCalendar *struct {
				Weeks []struct {
					ContributionDays []struct {
						Date              string
						ContributionCount int
					}
				}
			}
		} `graphql:"contributionsCollection(from: $from)"`
		Repositories struct {
			Nodes []struct {
				Name      string
				Languages struct {
					Edges []struct {
						Size int
						Node *struct {
							Name string
						}
					}
				} `graphql:"languages(first: 5)"`
			}
		} `graphql:"repositories(first: 100)"`
	} `graphql:"user(login: $username)"`
}

// toDomain converts the decoded query into the domain response.
// It only fails when a calendar date cannot be parsed.
func (q *contributionsQuery) toDomain() (*domain.RawContributionResponse, error) {
	cc := q.User.ContributionsCollection
	raw := &domain.RawContributionResponse{
		TotalCommitContributions:             cc.TotalCommitContributions,
		TotalPullRequestContributions:        cc.TotalPullRequestContributions,
		TotalIssueContributions:              cc.TotalIssueContributions,
		CommitContributionsByRepository:      convertRepoContributions(cc.CommitContributionsByRepository),
		PullRequestContributionsByRepository: convertRepoContributions(cc.PullRequestContributionsByRepository),
		IssueContributionsByRepository:       convertRepoContributions(cc.IssueContributionsByRepository),
	}

	for _, node := range cc.PullRequestReviewContributions.Nodes {
		review := domain.ReviewContribution{Repository: convertRepoRef(node.Repository)}
		if pr := node.PullRequest; pr != nil {
			ref := &domain.PullRequestRef{
				CreatedAt: convertDateTime(pr.CreatedAt),
				MergedAt:  convertDateTime(pr.MergedAt),
			}
			if pr.Author != nil {
				ref.Author = &domain.Actor{Login: pr.Author.Login}
			}
			review.PullRequest = ref
		}
		raw.PullRequestReviewContributions = append(raw.PullRequestReviewContributions, review)
	}

	if cal := cc.ContributionCalendar; cal != nil {
		calendar := &domain.ContributionCalendar{}
		for _, w := range cal.Weeks {
			week := domain.ContributionWeek{}
			for _, d := range w.ContributionDays {
				date, err := time.Parse(calendarDateLayout, d.Date)
				if err != nil {
					return nil, fmt.Errorf("invalid contribution calendar date %q: %w", d.Date, err)
				}
				week.Days = append(week.Days, domain.ContributionDay{Date: date, ContributionCount: d.ContributionCount})
			}
			calendar.Weeks = append(calendar.Weeks, week)
		}
		raw.ContributionCalendar = calendar
	}

	for _, node := range q.User.Repositories.Nodes {
		repo := domain.Repository{Name: node.Name}
		for _, edge := range node.Languages.Edges {
			le := domain.LanguageEdge{Size: edge.Size}
			if edge.Node != nil {
				le.Node = &domain.Language{Name: edge.Node.Name}
			}
			repo.Languages = append(repo.Languages, le)
		}
		raw.Repositories = append(raw.Repositories, repo)
	}

	return raw, nil
}

func convertRepoContributions(nodes []repositoryContributionNode) []domain.RepositoryContributions {
	out := make([]domain.RepositoryContributions, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, domain.RepositoryContributions{
			Repository: convertRepoRef(n.Repository),
			TotalCount: n.Contributions.TotalCount,
		})
	}
	return out
}

func convertRepoRef(r *repositoryName) *domain.RepositoryRef {
	if r == nil {
		return nil
	}
	return &domain.RepositoryRef{Name: r.Name}
}

func convertDateTime(dt *githubv4.DateTime) *time.Time {
	if dt == nil {
		return nil
	}
	t := dt.Time
	return &t
}
