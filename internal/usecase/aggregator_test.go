package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/naka-gawa/github-wrapped/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockFetcher is a mock implementation of the gateway.Fetcher interface.
// It allows us to simulate the behavior of the GitHub gateway without making real API calls.
type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) FetchContributions(ctx context.Context, username string, from time.Time) (*domain.RawContributionResponse, error) {
	args := m.Called(ctx, username, from)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RawContributionResponse), args.Error(1)
}

func (m *mockFetcher) FetchProfile(ctx context.Context, username string) (*domain.Profile, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Profile), args.Error(1)
}

func fixedNow() time.Time {
	return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
}

func TestYearStart(t *testing.T) {
	testCases := []struct {
		name     string
		now      time.Time
		expected time.Time
	}{
		{
			name:     "mid year",
			now:      fixedNow(),
			expected: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "local new year that is still December in UTC",
			now:      time.Date(2025, time.January, 1, 5, 0, 0, 0, time.FixedZone("JST", 9*60*60)),
			expected: time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, YearStart(tc.now))
		})
	}
}

// TestAggregator_Aggregate uses a table-driven approach to test the aggregator.
func TestAggregator_Aggregate(t *testing.T) {
	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	profile := &domain.Profile{Login: "octocat", Name: "The Octocat"}

	testCases := []struct {
		name            string
		username        string
		mockRaw         *domain.RawContributionResponse
		mockRawErr      error
		mockProfile     *domain.Profile
		mockProfileErr  error
		expectFetch     bool
		expectedProfile *domain.Profile
		expectInputErr  bool
		expectUpstream  bool
	}{
		{
			name:            "happy path - report with profile",
			username:        "  octocat ",
			mockRaw:         fixtureResponse(),
			mockProfile:     profile,
			expectFetch:     true,
			expectedProfile: profile,
		},
		{
			name:           "profile failure is tolerated",
			username:       "octocat",
			mockRaw:        fixtureResponse(),
			mockProfileErr: errors.New("404 Not Found"),
			expectFetch:    true,
		},
		{
			name:           "error case - fetch contributions fails",
			username:       "octocat",
			mockRawErr:     errors.New("github api error"),
			mockProfile:    profile,
			expectFetch:    true,
			expectUpstream: true,
		},
		{
			name:     "error case - response is missing a field",
			username: "octocat",
			mockRaw: &domain.RawContributionResponse{
				PullRequestReviewContributions: []domain.ReviewContribution{{}},
			},
			mockProfile:    profile,
			expectFetch:    true,
			expectUpstream: true,
		},
		{
			name:           "input error - empty username",
			username:       "",
			expectInputErr: true,
		},
		{
			name:           "input error - whitespace username",
			username:       " \t\n",
			expectInputErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			fetcher := new(mockFetcher)
			if tc.expectFetch {
				fetcher.On("FetchContributions", mock.Anything, "octocat", from).Return(tc.mockRaw, tc.mockRawErr)
				fetcher.On("FetchProfile", mock.Anything, "octocat").Return(tc.mockProfile, tc.mockProfileErr).Maybe()
			}

			aggregator := NewAggregator(fetcher, logger.Discard())
			aggregator.now = fixedNow

			// --- Act ---
			report, err := aggregator.Aggregate(context.Background(), tc.username)

			// --- Assert ---
			switch {
			case tc.expectInputErr:
				assert.ErrorIs(t, err, domain.ErrInput)
				assert.Nil(t, report)
				fetcher.AssertNotCalled(t, "FetchContributions", mock.Anything, mock.Anything, mock.Anything)
				fetcher.AssertNotCalled(t, "FetchProfile", mock.Anything, mock.Anything)
			case tc.expectUpstream:
				assert.ErrorIs(t, err, domain.ErrUpstream)
				assert.Nil(t, report)
			default:
				require.NoError(t, err)
				assert.Equal(t, "octocat", report.Username)
				assert.Equal(t, from, report.From)
				assert.Equal(t, fixedNow(), report.GeneratedAt)
				assert.Equal(t, tc.expectedProfile, report.Profile)
				assert.Equal(t, 42, report.Stats.TotalCommits)
			}

			fetcher.AssertExpectations(t)
		})
	}
}

func TestAggregator_WrapsFetchError(t *testing.T) {
	cause := errors.New("401 Bad credentials")
	fetcher := new(mockFetcher)
	fetcher.On("FetchContributions", mock.Anything, "octocat", mock.Anything).Return(nil, cause)
	fetcher.On("FetchProfile", mock.Anything, "octocat").Return(nil, cause).Maybe()

	_, err := NewAggregator(fetcher, logger.Discard()).Aggregate(context.Background(), "octocat")

	var upstream *domain.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "fetch contributions", upstream.Op)
	assert.ErrorIs(t, err, cause)
}
