// Package domain contains the core data structures and domain logic for the application.
package domain

import "time"

// TopRepoLimit caps TopReposByCommits and TopReposByIssues.
const TopRepoLimit = 5

// Stats is the year-to-date activity summary for one user.
// It is built once from a single RawContributionResponse and never modified afterwards.
type Stats struct {
	TotalCommits int `json:"totalCommits"`
	TotalPRs     int `json:"totalPRs"`
	TotalIssues  int `json:"totalIssues"`

	CommitsByRepo Tally `json:"commitsByRepo"`
	PRsByRepo     Tally `json:"prsByRepo"`
	IssuesByRepo  Tally `json:"issuesByRepo"`

	CommentsOnPRs int `json:"commentsOnPRs"`
	// TopReviewers is keyed by the login of the reviewed pull request's author.
	TopReviewers      Tally `json:"topReviewers"`
	MostReviewedRepos Tally `json:"mostReviewedRepos"`

	TopLanguages         Tally `json:"topLanguages"`
	MonthlyContributions Tally `json:"monthlyContributions"`

	// PRMergeTimes are merge latencies in milliseconds.
	PRMergeTimes []int64 `json:"prMergeTimes"`
	// IssueResolutionTimes has no data source and is always empty.
	IssueResolutionTimes []int64 `json:"issueResolutionTimes"`

	MostActiveDay string `json:"mostActiveDay"`

	TopReposByCommits Tally `json:"topReposByCommits"`
	TopReposByIssues  Tally `json:"topReposByIssues"`
}

// Profile is the public profile shown next to the stats. It is optional.
type Profile struct {
	Login     string `json:"login"`
	Name      string `json:"name,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
	HTMLURL   string `json:"htmlUrl,omitempty"`
}

// DisplayName returns the profile name, falling back to the login.
func (p *Profile) DisplayName() string {
	if p == nil {
		return ""
	}
	if p.Name != "" {
		return p.Name
	}
	return p.Login
}

// Report bundles the stats with the request that produced them.
type Report struct {
	Username    string    `json:"username"`
	From        time.Time `json:"from"`
	GeneratedAt time.Time `json:"generatedAt"`
	Profile     *Profile  `json:"profile,omitempty"`
	Stats       *Stats    `json:"stats"`
}
