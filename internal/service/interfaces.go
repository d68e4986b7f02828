package service

import (
	"context"

	"github.com/MKhiriev/go-task-keeper/models"
)

// AuthService is the authentication gate. Every protected operation in the
// application passes through Authorize; nothing else hands out user ids.
type AuthService interface {
	// RegisterUser creates a new account with a bcrypt-hashed password.
	RegisterUser(ctx context.Context, user models.User) (models.User, error)

	// SignIn verifies credentials and establishes a new session. All
	// credential failures return ErrInvalidCredentials; only store
	// breakage surfaces as anything else.
	SignIn(ctx context.Context, user models.User) (models.Session, error)

	// Authorize resolves a session token to the owning user id.
	// Missing, unknown and expired tokens all return ErrUnauthenticated.
	Authorize(ctx context.Context, token string) (int64, error)

	// SignOut revokes the session behind the token. Revoking a token that
	// no longer resolves is a no-op.
	SignOut(ctx context.Context, token string) error
}

// TaskService manages a user's task list. All operations are scoped by the
// caller-supplied user id, which handlers take from the authorized context.
type TaskService interface {
	CreateTask(ctx context.Context, userID int64, task models.Task) (models.Task, error)
	ListTasks(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error)
	GetTask(ctx context.Context, userID, taskID int64) (models.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, update models.TaskUpdate) (models.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error

	AddNote(ctx context.Context, userID, taskID int64, body string) (models.Note, error)
}
