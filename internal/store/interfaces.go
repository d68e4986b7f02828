package store

import (
	"context"
	"time"

	"github.com/MKhiriev/go-task-keeper/models"
)

// UserRepository is the credential store contract: a durable mapping from
// login to user identity and password hash.
type UserRepository interface {
	// CreateUser persists a new account and returns it with server-assigned
	// fields populated. A duplicate login yields ErrLoginAlreadyExists.
	CreateUser(ctx context.Context, user models.User) (models.User, error)

	// FindUserByLogin returns the user with the given login or
	// ErrNoUserWasFound.
	FindUserByLogin(ctx context.Context, login string) (models.User, error)

	// FindUserByID returns the user with the given id or ErrNoUserWasFound.
	// An id obtained from a live session that does not resolve is a store
	// inconsistency and must be surfaced loudly by the caller.
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
}

// SessionRepository is the session store contract: opaque tokens mapping to
// user identifiers with an absolute expiry.
type SessionRepository interface {
	// CreateSession persists a new session row.
	CreateSession(ctx context.Context, session models.Session) (models.Session, error)

	// FindSessionByToken resolves a token to its session or returns
	// ErrSessionNotFound. Expiry is not checked here; that is policy and
	// belongs to the service layer.
	FindSessionByToken(ctx context.Context, token string) (models.Session, error)

	// DeleteSessionByToken removes the session with the given token.
	// Deleting a token that does not exist is a no-op, not an error.
	DeleteSessionByToken(ctx context.Context, token string) error

	// DeleteExpiredSessions removes every session whose expiry deadline is
	// at or before now and reports how many rows were deleted.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

// TaskRepository persists tasks and their notes. Every operation is scoped
// by the owning user id; a task belonging to a different user behaves
// exactly like a missing one.
type TaskRepository interface {
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)
	FindTaskByID(ctx context.Context, userID, taskID int64) (models.Task, error)
	FindTasks(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error

	AddNote(ctx context.Context, note models.Note) (models.Note, error)
	FindNotesByTaskID(ctx context.Context, taskID int64) ([]models.Note, error)
}
