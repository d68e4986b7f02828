package adapter

import (
	"context"

	"github.com/MKhiriev/go-task-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// go-task-keeper server. Implementations are responsible for serialisation,
// session token management, and mapping transport-level errors to the
// sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the session token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the session token currently stored in the adapter, or
	// an empty string if none has been set.
	Token() string

	// Register creates a new account with the provided credentials.
	// Registration does not sign in; call Login afterwards.
	Register(ctx context.Context, user models.User) (models.User, error)

	// Login authenticates the user. On success it stores the returned
	// session token via SetToken and returns the session.
	Login(ctx context.Context, user models.User) (models.Session, error)

	// Logout revokes the current session on the server and clears the
	// stored token. Safe to call without a stored token.
	Logout(ctx context.Context) error

	// ListTasks fetches the caller's tasks, narrowed by filter.
	ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error)

	// CreateTask creates a task and returns it with server-assigned fields.
	CreateTask(ctx context.Context, task models.Task) (models.Task, error)

	// GetTask fetches a single task with its notes attached.
	GetTask(ctx context.Context, taskID int64) (models.Task, error)

	// UpdateTask applies a partial update and returns the updated task.
	UpdateTask(ctx context.Context, taskID int64, update models.TaskUpdate) (models.Task, error)

	// DeleteTask removes a task and its notes.
	DeleteTask(ctx context.Context, taskID int64) error

	// AddNote appends a free-text note to a task.
	AddNote(ctx context.Context, taskID int64, body string) (models.Note, error)
}
