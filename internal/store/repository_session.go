package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/models"
)

// sessionRepository is the SQL-backed implementation of [SessionRepository].
// Each operation is a single atomic statement against the "sessions" table,
// which is what gives concurrent sign-ins and sign-outs their consistency.
type sessionRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewSessionRepository constructs a [SessionRepository] backed by the
// provided database connection and logger.
func NewSessionRepository(db *DB, logger *logger.Logger) SessionRepository {
	logger.Debug().Msg("creating session repository")
	return &sessionRepository{
		db:     db,
		logger: logger,
	}
}

// CreateSession persists a new session row and returns it with
// server-assigned fields populated.
func (r *sessionRepository) CreateSession(ctx context.Context, session models.Session) (models.Session, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createSession,
		session.Token, session.UserID, session.CreatedAt, session.ExpiresAt)

	var created models.Session
	if err := row.Scan(&created.SessionID, &created.Token, &created.UserID, &created.CreatedAt, &created.ExpiresAt); err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.CreateSession").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: session insert failed")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindSessionByToken resolves the given token to its session row, or
// [ErrSessionNotFound] when the token is unknown.
func (r *sessionRepository) FindSessionByToken(ctx context.Context, token string) (models.Session, error) {
	log := logger.FromContext(ctx)

	var found models.Session
	row := r.db.QueryRowContext(ctx, findSessionByToken, token)

	if err := row.Scan(&found.SessionID, &found.Token, &found.UserID, &found.CreatedAt, &found.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Session{}, ErrSessionNotFound
		}

		log.Err(err).
			Str("func", "*sessionRepository.FindSessionByToken").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: session lookup failed")
		return models.Session{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// DeleteSessionByToken removes the session with the given token. Removing a
// token that never existed (or was already removed) is a no-op.
func (r *sessionRepository) DeleteSessionByToken(ctx context.Context, token string) error {
	log := logger.FromContext(ctx)

	if _, err := r.db.ExecContext(ctx, deleteSessionByToken, token); err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.DeleteSessionByToken").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: session delete failed")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// DeleteExpiredSessions removes all sessions whose expiry deadline is at or
// before now and reports the number of deleted rows.
func (r *sessionRepository) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteExpiredSessions, now)
	if err != nil {
		log.Err(err).
			Str("func", "*sessionRepository.DeleteExpiredSessions").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: expired session sweep failed")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	return deleted, nil
}
