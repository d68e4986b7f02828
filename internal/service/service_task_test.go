package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/mock"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestTaskSvc(t *testing.T, ctrl *gomock.Controller) (*taskService, *mock.MockTaskRepository) {
	t.Helper()
	mockTasks := mock.NewMockTaskRepository(ctrl)
	svc := NewTaskService(mockTasks, logger.Nop()).(*taskService)
	return svc, mockTasks
}

// ── CreateTask ───────────────────────────────────────────────────────────────

func TestTaskService_CreateTask_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	mockTasks.EXPECT().
		CreateTask(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			assert.Equal(t, int64(1), task.UserID)
			assert.Equal(t, "buy milk", task.Title)
			assert.Equal(t, models.PriorityNormal, task.Priority)
			assert.Equal(t, models.StatusOpen, task.Status)
			task.TaskID = 7
			return task, nil
		})

	created, err := svc.CreateTask(ctx, 1, models.Task{Title: "  buy milk  "})

	require.NoError(t, err)
	assert.Equal(t, int64(7), created.TaskID)
}

func TestTaskService_CreateTask_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	tests := []struct {
		name    string
		task    models.Task
		wantErr error
	}{
		{name: "empty title", task: models.Task{}, wantErr: ErrValidationNoTitle},
		{name: "whitespace title", task: models.Task{Title: "   "}, wantErr: ErrValidationNoTitle},
		{name: "unknown priority", task: models.Task{Title: "x", Priority: "urgent"}, wantErr: ErrValidationBadPriority},
		{name: "unknown status", task: models.Task{Title: "x", Status: "paused"}, wantErr: ErrValidationBadStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateTask(ctx, 1, tt.task)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskService_CreateTask_OwnerOverridden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	mockTasks.EXPECT().
		CreateTask(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, task models.Task) (models.Task, error) {
			// inbound UserID must never win over the authorized one
			assert.Equal(t, int64(1), task.UserID)
			return task, nil
		})

	_, err := svc.CreateTask(ctx, 1, models.Task{Title: "x", UserID: 999})

	require.NoError(t, err)
}

// ── ListTasks ────────────────────────────────────────────────────────────────

func TestTaskService_ListTasks_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	status := models.StatusOpen
	filter := models.TaskFilter{Status: &status}
	want := []models.Task{{TaskID: 1, Title: "buy milk"}, {TaskID: 2, Title: "walk dog"}}

	mockTasks.EXPECT().
		FindTasks(ctx, int64(1), filter).
		Return(want, nil)

	tasks, err := svc.ListTasks(ctx, 1, filter)

	require.NoError(t, err)
	assert.Equal(t, want, tasks)
}

func TestTaskService_ListTasks_BadFilter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	badStatus := models.TaskStatus("paused")
	_, err := svc.ListTasks(ctx, 1, models.TaskFilter{Status: &badStatus})
	assert.ErrorIs(t, err, ErrValidationBadStatus)

	badPriority := models.TaskPriority("urgent")
	_, err = svc.ListTasks(ctx, 1, models.TaskFilter{Priority: &badPriority})
	assert.ErrorIs(t, err, ErrValidationBadPriority)
}

// ── GetTask ──────────────────────────────────────────────────────────────────

func TestTaskService_GetTask_WithNotes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	mockTasks.EXPECT().
		FindTaskByID(ctx, int64(1), int64(7)).
		Return(models.Task{TaskID: 7, UserID: 1, Title: "buy milk"}, nil)
	mockTasks.EXPECT().
		FindNotesByTaskID(ctx, int64(7)).
		Return([]models.Note{{NoteID: 1, TaskID: 7, Body: "oat, not soy"}}, nil)

	task, err := svc.GetTask(ctx, 1, 7)

	require.NoError(t, err)
	require.Len(t, task.Notes, 1)
	assert.Equal(t, "oat, not soy", task.Notes[0].Body)
}

func TestTaskService_GetTask_ForeignTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	mockTasks.EXPECT().
		FindTaskByID(ctx, int64(2), int64(7)).
		Return(models.Task{}, store.ErrTaskNotFound)

	_, err := svc.GetTask(ctx, 2, 7)

	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}

// ── UpdateTask ───────────────────────────────────────────────────────────────

func TestTaskService_UpdateTask_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	status := models.StatusDone
	update := models.TaskUpdate{Status: &status}

	mockTasks.EXPECT().
		UpdateTask(ctx, int64(1), int64(7), update).
		Return(models.Task{TaskID: 7, Status: models.StatusDone, UpdatedAt: time.Now().UTC()}, nil)

	updated, err := svc.UpdateTask(ctx, 1, 7, update)

	require.NoError(t, err)
	assert.Equal(t, models.StatusDone, updated.Status)
}

func TestTaskService_UpdateTask_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	emptyTitle := "   "
	badPriority := models.TaskPriority("urgent")
	badStatus := models.TaskStatus("paused")

	tests := []struct {
		name    string
		update  models.TaskUpdate
		wantErr error
	}{
		{name: "empty update", update: models.TaskUpdate{}, wantErr: ErrValidationNothingToApply},
		{name: "blank title", update: models.TaskUpdate{Title: &emptyTitle}, wantErr: ErrValidationNoTitle},
		{name: "unknown priority", update: models.TaskUpdate{Priority: &badPriority}, wantErr: ErrValidationBadPriority},
		{name: "unknown status", update: models.TaskUpdate{Status: &badStatus}, wantErr: ErrValidationBadStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateTask(ctx, 1, 7, tt.update)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTaskService_UpdateTask_TitleTrimmed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	title := "  buy milk  "
	mockTasks.EXPECT().
		UpdateTask(ctx, int64(1), int64(7), gomock.Any()).
		DoAndReturn(func(_ context.Context, _, _ int64, update models.TaskUpdate) (models.Task, error) {
			require.NotNil(t, update.Title)
			assert.Equal(t, "buy milk", *update.Title)
			return models.Task{TaskID: 7, Title: *update.Title}, nil
		})

	_, err := svc.UpdateTask(ctx, 1, 7, models.TaskUpdate{Title: &title})

	require.NoError(t, err)
}

// ── DeleteTask ───────────────────────────────────────────────────────────────

func TestTaskService_DeleteTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	mockTasks.EXPECT().
		DeleteTask(ctx, int64(1), int64(7)).
		Return(nil)

	assert.NoError(t, svc.DeleteTask(ctx, 1, 7))
}

func TestTaskService_DeleteTask_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	mockTasks.EXPECT().
		DeleteTask(ctx, int64(1), int64(404)).
		Return(store.ErrTaskNotFound)

	assert.ErrorIs(t, svc.DeleteTask(ctx, 1, 404), store.ErrTaskNotFound)
}

// ── AddNote ──────────────────────────────────────────────────────────────────

func TestTaskService_AddNote_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	mockTasks.EXPECT().
		FindTaskByID(ctx, int64(1), int64(7)).
		Return(models.Task{TaskID: 7, UserID: 1, Title: "buy milk"}, nil)
	mockTasks.EXPECT().
		AddNote(ctx, models.Note{TaskID: 7, Body: "oat, not soy"}).
		Return(models.Note{NoteID: 3, TaskID: 7, Body: "oat, not soy"}, nil)

	note, err := svc.AddNote(ctx, 1, 7, "  oat, not soy  ")

	require.NoError(t, err)
	assert.Equal(t, int64(3), note.NoteID)
}

func TestTaskService_AddNote_EmptyBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestTaskSvc(t, ctrl)

	_, err := svc.AddNote(context.Background(), 1, 7, "   ")

	assert.ErrorIs(t, err, ErrValidationEmptyNote)
}

func TestTaskService_AddNote_ForeignTask(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockTasks := newTestTaskSvc(t, ctrl)
	ctx := context.Background()

	// ownership gate fires before any note write
	mockTasks.EXPECT().
		FindTaskByID(ctx, int64(2), int64(7)).
		Return(models.Task{}, store.ErrTaskNotFound)

	_, err := svc.AddNote(ctx, 2, 7, "sneaky")

	assert.ErrorIs(t, err, store.ErrTaskNotFound)
}
