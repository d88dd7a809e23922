// Package gateway provides a gateway to the GitHub API,
// abstracting away the underlying REST and GraphQL clients.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/google/go-github/v62/github"
	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/shurcooL/githubv4"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// Fetcher defines the behavior of a gateway for fetching information from GitHub.
type Fetcher interface {
	// FetchContributions runs the contributions query for username, scoped to activity since from.
	FetchContributions(ctx context.Context, username string, from time.Time) (*domain.RawContributionResponse, error)
	// FetchProfile looks up the public profile of username.
	FetchProfile(ctx context.Context, username string) (*domain.Profile, error)
}

// Options configures the HTTP clients of a GitHubGateway.
type Options struct {
	Token string
	// GraphQLURL and APIURL point at a GitHub Enterprise instance when set.
	GraphQLURL string
	APIURL     string
	Timeout    time.Duration
	// RateLimitMaxWait is the longest the client sleeps on a secondary rate limit.
	// Zero returns the rate-limit response to the caller immediately.
	RateLimitMaxWait time.Duration
}

// GitHubGateway is the concrete implementation of the Fetcher interface.
type GitHubGateway struct {
	restClient    *github.Client
	graphqlClient *githubv4.Client
	logger        *logrus.Logger
}

// NewGitHubGateway is a constructor that creates a new instance of GitHubGateway.
func NewGitHubGateway(opts Options, logger *logrus.Logger) (*GitHubGateway, error) {
	onLimit := func(*github_ratelimit.CallbackContext) {
		logger.Warn("GitHub secondary rate limit hit, giving up on the request")
	}
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(opts.RateLimitMaxWait, onLimit))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
	httpClient := &http.Client{
		Timeout: opts.Timeout,
		Transport: &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: ts,
		},
	}

	restClient := github.NewClient(httpClient)
	if opts.APIURL != "" {
		restClient, err = restClient.WithEnterpriseURLs(opts.APIURL, opts.APIURL)
		if err != nil {
			return nil, fmt.Errorf("failed to configure enterprise API URL: %w", err)
		}
	}

	graphqlClient := githubv4.NewClient(httpClient)
	if opts.GraphQLURL != "" {
		graphqlClient = githubv4.NewEnterpriseClient(opts.GraphQLURL, httpClient)
	}

	return &GitHubGateway{
		restClient:    restClient,
		graphqlClient: graphqlClient,
		logger:        logger,
	}, nil
}

func (g *GitHubGateway) FetchContributions(ctx context.Context, username string, from time.Time) (*domain.RawContributionResponse, error) {
	log := g.logger.WithFields(logrus.Fields{"user": username, "from": from.Format(time.RFC3339)})
	log.Debug("Fetching contributions using GraphQL API...")

	variables := map[string]interface{}{
		"username": githubv4.String(username),
		"from":     githubv4.DateTime{Time: from},
	}
	var q contributionsQuery
	if err := g.graphqlClient.Query(ctx, &q, variables); err != nil {
		return nil, fmt.Errorf("failed to execute GraphQL query for contributions: %w", err)
	}
	if q.User == nil {
		return nil, fmt.Errorf("user %q not found", username)
	}

	raw, err := q.toDomain()
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"reviews":      len(raw.PullRequestReviewContributions),
		"repositories": len(raw.Repositories),
	}).Debug("Completed fetching contributions.")
	return raw, nil
}

func (g *GitHubGateway) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	g.logger.WithField("user", username).Debug("Fetching profile using REST API...")
	user, _, err := g.restClient.Users.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile with REST API: %w", err)
	}
	return &domain.Profile{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		AvatarURL: user.GetAvatarURL(),
		HTMLURL:   user.GetHTMLURL(),
	}, nil
}
