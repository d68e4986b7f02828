package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSessionRepo(t *testing.T) (*sessionRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	l := logger.Nop()
	repo := &sessionRepository{
		db:     &DB{DB: db, logger: l, errorClassificator: NewPostgresErrorClassifier()},
		logger: l,
	}
	return repo, mock, db
}

func TestCreateSession_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	ctx := context.Background()
	now := time.Now()
	expires := now.Add(12 * time.Hour)

	rows := sqlmock.
		NewRows([]string{"session_id", "token", "user_id", "created_at", "expires_at"}).
		AddRow(1, "tok-123", 7, now, expires)

	mock.ExpectQuery("INSERT INTO sessions").
		WithArgs("tok-123", int64(7), now, expires).
		WillReturnRows(rows)

	created, err := repo.CreateSession(ctx, models.Session{
		Token: "tok-123", UserID: 7, CreatedAt: now, ExpiresAt: expires,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.SessionID)
	assert.Equal(t, "tok-123", created.Token)
	assert.Equal(t, int64(7), created.UserID)
}

func TestCreateSession_DBError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("INSERT INTO sessions").
		WillReturnError(errors.New("connection refused"))

	_, err := repo.CreateSession(context.Background(), models.Session{Token: "tok", UserID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected DB error")
}

func TestFindSessionByToken_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	now := time.Now()
	rows := sqlmock.
		NewRows([]string{"session_id", "token", "user_id", "created_at", "expires_at"}).
		AddRow(3, "tok-abc", 9, now, now.Add(time.Hour))

	mock.ExpectQuery("SELECT session_id, token, user_id, created_at, expires_at").
		WithArgs("tok-abc").
		WillReturnRows(rows)

	found, err := repo.FindSessionByToken(context.Background(), "tok-abc")
	require.NoError(t, err)
	assert.Equal(t, int64(9), found.UserID)
	assert.Equal(t, "tok-abc", found.Token)
}

func TestFindSessionByToken_NotFound(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectQuery("SELECT session_id, token, user_id, created_at, expires_at").
		WithArgs("ghost-token").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindSessionByToken(context.Background(), "ghost-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDeleteSessionByToken_Success(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("tok-abc").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeleteSessionByToken(context.Background(), "tok-abc")
	require.NoError(t, err)
}

func TestDeleteSessionByToken_MissingTokenIsNoOp(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	// zero rows affected must not surface as an error
	mock.ExpectExec("DELETE FROM sessions").
		WithArgs("already-gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteSessionByToken(context.Background(), "already-gone")
	require.NoError(t, err)
}

func TestDeleteSessionByToken_DBError(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	mock.ExpectExec("DELETE FROM sessions").
		WillReturnError(errors.New("db down"))

	err := repo.DeleteSessionByToken(context.Background(), "tok")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected DB error")
}

func TestDeleteExpiredSessions_ReportsCount(t *testing.T) {
	repo, mock, db := newTestSessionRepo(t)
	defer db.Close()

	now := time.Now()
	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 4))

	deleted, err := repo.DeleteExpiredSessions(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(4), deleted)
}
