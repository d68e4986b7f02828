package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
)

// SessionSweeper periodically deletes expired session rows. Expired
// sessions are already rejected at authorization time; the sweeper only
// keeps the table from accumulating dead rows.
type SessionSweeper struct {
	sessionRepository store.SessionRepository

	// interval between sweeps. A non-positive interval disables the
	// sweeper entirely.
	interval time.Duration

	logger *logger.Logger
}

func NewSessionSweeper(sessionRepository store.SessionRepository, interval time.Duration, logger *logger.Logger) *SessionSweeper {
	return &SessionSweeper{
		sessionRepository: sessionRepository,
		interval:          interval,
		logger:            logger,
	}
}

// Run sweeps on every tick until ctx is cancelled. A failed sweep is
// logged and retried on the next tick; it never stops the worker.
func (s *SessionSweeper) Run(ctx context.Context) {
	if s.interval <= 0 {
		s.logger.Info().Msg("session sweeper disabled")
		return
	}

	s.logger.Info().Dur("interval", s.interval).Msg("session sweeper started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("session sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionSweeper) sweep(ctx context.Context) {
	deleted, err := s.sessionRepository.DeleteExpiredSessions(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Err(err).Msg("session sweep failed")
		return
	}

	if deleted > 0 {
		s.logger.Info().Int64("deleted", deleted).Msg("expired sessions removed")
	}
}
