package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/naka-gawa/github-wrapped/internal/domain"
	"github.com/sirupsen/logrus"
)

// ErrSuperseded is returned to a submission that was replaced by a newer one before it finished.
var ErrSuperseded = errors.New("superseded by a newer request")

// Runner produces a report for a username. *Aggregator implements it.
type Runner interface {
	Aggregate(ctx context.Context, username string) (*domain.Report, error)
}

// Snapshot is the state of the single result slot.
type Snapshot struct {
	RequestID string         `json:"requestId,omitempty"`
	Username  string         `json:"username,omitempty"`
	Pending   bool           `json:"pending"`
	Report    *domain.Report `json:"report,omitempty"`
	Error     string         `json:"error,omitempty"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// Tracker owns the current result slot. A new submission cancels the one in flight,
// and only the latest submission may write its result.
type Tracker struct {
	runner Runner
	logger *logrus.Logger

	mu      sync.Mutex
	seq     uint64
	cancel  context.CancelFunc
	current Snapshot
}

func NewTracker(runner Runner, logger *logrus.Logger) *Tracker {
	return &Tracker{
		runner: runner,
		logger: logger,
	}
}

// Current returns a copy of the slot.
func (t *Tracker) Current() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Submit runs a report for username and stores it unless a newer submission arrived meanwhile.
// A blank username is rejected without touching the in-flight request or the stored report.
func (t *Tracker) Submit(ctx context.Context, username string) (*domain.Report, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		err := &domain.InputError{Reason: "username is required"}
		t.mu.Lock()
		t.current.Error = err.Error()
		t.current.UpdatedAt = time.Now()
		t.mu.Unlock()
		return nil, err
	}

	requestID := uuid.NewString()
	runCtx, cancel := context.WithCancel(ctx)

	t.mu.Lock()
	t.seq++
	seq := t.seq
	if t.cancel != nil {
		t.cancel()
	}
	t.cancel = cancel
	t.current.RequestID = requestID
	t.current.Username = username
	t.current.Pending = true
	t.current.UpdatedAt = time.Now()
	t.mu.Unlock()

	log := t.logger.WithFields(logrus.Fields{"request_id": requestID, "user": username})
	log.Debug("Tracker: submission started")

	report, err := t.runner.Aggregate(runCtx, username)

	t.mu.Lock()
	defer t.mu.Unlock()
	cancel()

	if seq != t.seq {
		log.Debug("Tracker: discarding result of superseded submission")
		return nil, ErrSuperseded
	}
	t.cancel = nil
	t.current.Pending = false
	t.current.UpdatedAt = time.Now()

	if err != nil {
		log.WithError(err).Warn("Tracker: submission failed")
		t.current.Report = nil
		t.current.Error = err.Error()
		return nil, err
	}
	t.current.Report = report
	t.current.Error = ""
	return report, nil
}
