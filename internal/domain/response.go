package domain

import "time"

// RawContributionResponse is the decoded result of the contributions query for a single user.
// Objects the API may return as null are pointers so the reducer can tell "absent" from "zero".
type RawContributionResponse struct {
	TotalCommitContributions      int
	TotalPullRequestContributions int
	TotalIssueContributions       int

	CommitContributionsByRepository      []RepositoryContributions
	PullRequestContributionsByRepository []RepositoryContributions
	IssueContributionsByRepository       []RepositoryContributions

	PullRequestReviewContributions []ReviewContribution
	ContributionCalendar           *ContributionCalendar

	Repositories []Repository
}

// RepositoryRef identifies a repository by its short name.
type RepositoryRef struct {
	Name string
}

// RepositoryContributions is one "contributions by repository" entry.
type RepositoryContributions struct {
	Repository *RepositoryRef
	TotalCount int
}

// Actor is the author of a pull request.
type Actor struct {
	Login string
}

// PullRequestRef holds the pull request fields a review contribution points at.
type PullRequestRef struct {
	Author    *Actor
	CreatedAt *time.Time
	MergedAt  *time.Time
}

// ReviewContribution is a single pull request review made by the user.
type ReviewContribution struct {
	PullRequest *PullRequestRef
	Repository  *RepositoryRef
}

// ContributionCalendar is the weekly contribution calendar.
type ContributionCalendar struct {
	Weeks []ContributionWeek
}

type ContributionWeek struct {
	Days []ContributionDay
}

type ContributionDay struct {
	Date              time.Time
	ContributionCount int
}

// Repository is a repository owned by the user along with its first few languages.
type Repository struct {
	Name      string
	Languages []LanguageEdge
}

type LanguageEdge struct {
	Size int
	Node *Language
}

type Language struct {
	Name string
}
