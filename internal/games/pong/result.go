package pong

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pong/internal/multiplayer"
)

// DefaultReportTimeout bounds a single result save.
const DefaultReportTimeout = 10 * time.Second

// Reporter hands finished matches to a ResultSaver exactly once per
// session. Saves run in the background; failures are logged and never
// retried.
type Reporter struct {
	saver   multiplayer.ResultSaver
	logger  *log.Logger
	timeout time.Duration
	wg      sync.WaitGroup
}

// NewReporter creates a reporter. A nil saver drops results; a nil logger
// discards log output.
func NewReporter(saver multiplayer.ResultSaver, logger *log.Logger) *Reporter {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Reporter{saver: saver, logger: logger, timeout: DefaultReportTimeout}
}

// Report posts the result of a session that reached GAMEOVER. The posted
// flag is set before the save is dispatched, so a second call for the same
// session, or a failed save, never produces another post.
func (r *Reporter) Report(s *Session, now time.Time) bool {
	if s.State() != StateGameOver || !s.markPosted() {
		return false
	}
	rec := s.Record(now)
	sessionID := s.ID()

	if r.saver == nil {
		r.logger.Debug("no result saver configured", "session", sessionID)
		return true
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		id, err := r.saver.SaveMatchResult(ctx, rec)
		if err != nil {
			r.logger.Error("failed to save match result", "session", sessionID, "error", err)
			return
		}
		r.logger.Info("match result saved", "session", sessionID, "match", id,
			"score", []int{rec.ScoreP1, rec.ScoreP2}, "duration", rec.DurationSeconds)
	}()
	return true
}

// Wait blocks until every dispatched save has finished.
func (r *Reporter) Wait() {
	r.wg.Wait()
}
