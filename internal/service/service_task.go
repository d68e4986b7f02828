package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
)

// taskService is the concrete implementation of TaskService.
// Ownership is enforced structurally: every repository call carries the
// caller's user id, so a task belonging to someone else simply does not
// exist from this service's point of view.
type taskService struct {
	taskRepository store.TaskRepository
	logger         *logger.Logger
}

func NewTaskService(taskRepository store.TaskRepository, logger *logger.Logger) TaskService {
	return &taskService{
		taskRepository: taskRepository,
		logger:         logger,
	}
}

// CreateTask validates and persists a new task for the given user.
//
// The title is required. Priority defaults to PriorityNormal and status to
// StatusOpen when left empty; explicit but unknown values are rejected.
//
// Returns the persisted task (with a server-assigned TaskID) or:
//   - ErrValidationNoTitle if the title is empty.
//   - ErrValidationBadPriority / ErrValidationBadStatus for unknown values.
//   - A wrapped storage error if the repository call fails.
func (s *taskService) CreateTask(ctx context.Context, userID int64, task models.Task) (models.Task, error) {
	log := logger.FromContext(ctx)

	task.Title = strings.TrimSpace(task.Title)
	if task.Title == "" {
		return models.Task{}, ErrValidationNoTitle
	}
	if task.Priority == "" {
		task.Priority = models.PriorityNormal
	}
	if !task.Priority.Valid() {
		return models.Task{}, ErrValidationBadPriority
	}
	if task.Status == "" {
		task.Status = models.StatusOpen
	}
	if !task.Status.Valid() {
		return models.Task{}, ErrValidationBadStatus
	}

	task.UserID = userID
	createdTask, err := s.taskRepository.CreateTask(ctx, task)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("task creation ended with error")
		return models.Task{}, fmt.Errorf("task creation ended with error: %w", err)
	}

	return createdTask, nil
}

// ListTasks returns the user's tasks matching the filter, ordered by
// deadline with undated tasks last.
func (s *taskService) ListTasks(ctx context.Context, userID int64, filter models.TaskFilter) ([]models.Task, error) {
	log := logger.FromContext(ctx)

	if filter.Status != nil && !filter.Status.Valid() {
		return nil, ErrValidationBadStatus
	}
	if filter.Priority != nil && !filter.Priority.Valid() {
		return nil, ErrValidationBadPriority
	}

	tasks, err := s.taskRepository.FindTasks(ctx, userID, filter)
	if err != nil {
		log.Err(err).Int64("userID", userID).Msg("task listing ended with error")
		return nil, fmt.Errorf("task listing ended with error: %w", err)
	}

	return tasks, nil
}

// GetTask returns a single task with its notes attached.
//
// A task owned by a different user returns store.ErrTaskNotFound, exactly
// like a task that does not exist.
func (s *taskService) GetTask(ctx context.Context, userID, taskID int64) (models.Task, error) {
	log := logger.FromContext(ctx)

	task, err := s.taskRepository.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Int64("taskID", taskID).Msg("task lookup failed")
		return models.Task{}, fmt.Errorf("task lookup failed: %w", err)
	}

	notes, err := s.taskRepository.FindNotesByTaskID(ctx, task.TaskID)
	if err != nil {
		log.Err(err).Int64("taskID", taskID).Msg("notes lookup failed")
		return models.Task{}, fmt.Errorf("notes lookup failed: %w", err)
	}
	task.Notes = notes

	return task, nil
}

// UpdateTask applies a partial update to a task owned by the user.
//
// Returns the updated task or:
//   - ErrValidationNothingToApply if the update changes nothing.
//   - ErrValidationNoTitle / ErrValidationBadPriority / ErrValidationBadStatus
//     for invalid field values.
//   - A wrapped storage error otherwise (store.ErrTaskNotFound for a missing
//     or foreign task).
func (s *taskService) UpdateTask(ctx context.Context, userID, taskID int64, update models.TaskUpdate) (models.Task, error) {
	log := logger.FromContext(ctx)

	if update.Empty() {
		return models.Task{}, ErrValidationNothingToApply
	}
	if update.Title != nil {
		trimmed := strings.TrimSpace(*update.Title)
		if trimmed == "" {
			return models.Task{}, ErrValidationNoTitle
		}
		update.Title = &trimmed
	}
	if update.Priority != nil && !update.Priority.Valid() {
		return models.Task{}, ErrValidationBadPriority
	}
	if update.Status != nil && !update.Status.Valid() {
		return models.Task{}, ErrValidationBadStatus
	}

	updatedTask, err := s.taskRepository.UpdateTask(ctx, userID, taskID, update)
	if err != nil {
		log.Err(err).Int64("userID", userID).Int64("taskID", taskID).Msg("task update ended with error")
		return models.Task{}, fmt.Errorf("task update ended with error: %w", err)
	}

	return updatedTask, nil
}

// DeleteTask removes a task owned by the user; its notes go with it.
func (s *taskService) DeleteTask(ctx context.Context, userID, taskID int64) error {
	log := logger.FromContext(ctx)

	if err := s.taskRepository.DeleteTask(ctx, userID, taskID); err != nil {
		log.Err(err).Int64("userID", userID).Int64("taskID", taskID).Msg("task deletion ended with error")
		return fmt.Errorf("task deletion ended with error: %w", err)
	}

	return nil
}

// AddNote attaches a free-text note to a task owned by the user.
//
// Ownership is checked by resolving the task through the user-scoped lookup
// first; a foreign task fails with store.ErrTaskNotFound before any note is
// written.
func (s *taskService) AddNote(ctx context.Context, userID, taskID int64, body string) (models.Note, error) {
	log := logger.FromContext(ctx)

	body = strings.TrimSpace(body)
	if body == "" {
		return models.Note{}, ErrValidationEmptyNote
	}

	task, err := s.taskRepository.FindTaskByID(ctx, userID, taskID)
	if err != nil {
		log.Err(err).Int64("userID", userID).Int64("taskID", taskID).Msg("task lookup failed")
		return models.Note{}, fmt.Errorf("task lookup failed: %w", err)
	}

	note, err := s.taskRepository.AddNote(ctx, models.Note{TaskID: task.TaskID, Body: body})
	if err != nil {
		log.Err(err).Int64("taskID", taskID).Msg("note creation ended with error")
		return models.Note{}, fmt.Errorf("note creation ended with error: %w", err)
	}

	return note, nil
}
