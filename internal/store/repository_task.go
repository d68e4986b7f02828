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

// taskRepository is the SQL-backed implementation of [TaskRepository].
// Every statement it issues carries the owning user id in its WHERE clause,
// so cross-user access is impossible at this layer regardless of what the
// caller passes in.
type taskRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewTaskRepository constructs a [TaskRepository] backed by the provided
// database connection and logger.
func NewTaskRepository(db *DB, logger *logger.Logger) TaskRepository {
	logger.Debug().Msg("creating task repository")
	return &taskRepository{
		db:     db,
		logger: logger,
	}
}

// CreateTask persists a new task and returns it with server-assigned fields
// (TaskID, CreatedAt, UpdatedAt) populated.
func (r *taskRepository) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createTask,
		task.UserID, task.Title, task.Deadline, task.Priority, task.Status, task.Backlog)

	created, err := scanTask(row)
	if err != nil {
		log.Err(err).
			Str("func", "*taskRepository.CreateTask").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: task insert failed")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindTaskByID retrieves a single task owned by userID, or [ErrTaskNotFound]
// when the task does not exist or belongs to somebody else.
func (r *taskRepository) FindTaskByID(ctx context.Context, userID, taskID int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, findTaskByID, userID, taskID)

	found, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}

		log.Err(err).
			Str("func", "*taskRepository.FindTaskByID").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: task lookup failed")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// FindTasks retrieves the tasks owned by userID that match the filter,
// ordered by deadline with undated tasks last.
func (r *taskRepository) FindTasks(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindTasksQuery(userID, filter)
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.FindTasks").Msg("error: building listing query failed")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*taskRepository.FindTasks").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: task listing failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0)
	for rows.Next() {
		var task models.Task
		if err := rows.Scan(&task.TaskID, &task.UserID, &task.Title, &task.Deadline,
			&task.Priority, &task.Status, &task.Backlog, &task.CreatedAt, &task.UpdatedAt); err != nil {
			log.Err(err).Str("func", "*taskRepository.FindTasks").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return tasks, nil
}

// UpdateTask applies a partial update to a task owned by userID and returns
// the updated row.
//
// Returns [ErrEmptyUpdate] when the update would change nothing, and
// [ErrTaskNotFound] when the task does not exist or belongs to another user.
func (r *taskRepository) UpdateTask(ctx context.Context, userID, taskID int64, update models.TaskUpdate) (models.Task, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return models.Task{}, ErrEmptyUpdate
	}

	query, args, err := buildUpdateTaskQuery(userID, taskID, update, time.Now().UTC())
	if err != nil {
		log.Err(err).Str("func", "*taskRepository.UpdateTask").Msg("error: building update query failed")
		return models.Task{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	row := r.db.QueryRowContext(ctx, query, args...)

	updated, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Task{}, ErrTaskNotFound
		}

		log.Err(err).
			Str("func", "*taskRepository.UpdateTask").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: task update failed")
		return models.Task{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return updated, nil
}

// DeleteTask removes a task owned by userID together with its notes (the
// schema cascades the delete). Returns [ErrTaskNotFound] when nothing was
// deleted.
func (r *taskRepository) DeleteTask(ctx context.Context, userID, taskID int64) error {
	log := logger.FromContext(ctx)

	res, err := r.db.ExecContext(ctx, deleteTask, userID, taskID)
	if err != nil {
		log.Err(err).
			Str("func", "*taskRepository.DeleteTask").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: task delete failed")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("unexpected DB error: %w", err)
	}
	if affected == 0 {
		return ErrTaskNotFound
	}

	return nil
}

// AddNote attaches a note to a task. Task ownership must be verified by the
// caller before adding; the repository only guarantees referential
// integrity.
func (r *taskRepository) AddNote(ctx context.Context, note models.Note) (models.Note, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, addNote, note.TaskID, note.Body)

	var created models.Note
	if err := row.Scan(&created.NoteID, &created.TaskID, &created.Body, &created.CreatedAt); err != nil {
		log.Err(err).
			Str("func", "*taskRepository.AddNote").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: note insert failed")
		return models.Note{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return created, nil
}

// FindNotesByTaskID retrieves all notes attached to a task in creation
// order.
func (r *taskRepository) FindNotesByTaskID(ctx context.Context, taskID int64) ([]models.Note, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, findNotesByTaskID, taskID)
	if err != nil {
		log.Err(err).
			Str("func", "*taskRepository.FindNotesByTaskID").
			Bool("retryable", r.db.errorClassificator.Classify(err) == Retryable).
			Msg("error: note listing failed")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.NoteID, &note.TaskID, &note.Body, &note.CreatedAt); err != nil {
			log.Err(err).Str("func", "*taskRepository.FindNotesByTaskID").Msg("error: scanning error")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return notes, nil
}

// scanTask scans a single task row in the canonical column order.
func scanTask(row *sql.Row) (models.Task, error) {
	var task models.Task
	err := row.Scan(&task.TaskID, &task.UserID, &task.Title, &task.Deadline,
		&task.Priority, &task.Status, &task.Backlog, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return models.Task{}, err
	}

	return task, nil
}
