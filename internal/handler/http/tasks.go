package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

// taskIDFromRequest parses the {taskID} URL segment.
func taskIDFromRequest(r *http.Request) (int64, error) {
	taskID, err := strconv.ParseInt(chi.URLParam(r, "taskID"), 10, 64)
	if err != nil || taskID <= 0 {
		return 0, ErrInvalidTaskID
	}
	return taskID, nil
}

// taskFilterFromQuery builds a listing filter from query parameters.
// Unknown values are passed through; the service layer rejects them.
func taskFilterFromQuery(r *http.Request) (models.TaskFilter, error) {
	var filter models.TaskFilter

	query := r.URL.Query()
	if raw := query.Get("status"); raw != "" {
		status := models.TaskStatus(raw)
		filter.Status = &status
	}
	if raw := query.Get("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		filter.Priority = &priority
	}
	if raw := query.Get("backlog"); raw != "" {
		backlog, err := strconv.ParseBool(raw)
		if err != nil {
			return models.TaskFilter{}, err
		}
		filter.Backlog = &backlog
	}

	return filter, nil
}

func (h *Handler) apiListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	filter, err := taskFilterFromQuery(r)
	if err != nil {
		http.Error(w, "invalid filter parameters", http.StatusBadRequest)
		return
	}

	tasks, err := h.services.TaskService.ListTasks(r.Context(), userID, filter)
	if err != nil {
		log.Err(err).Msg("error listing tasks")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, tasks, http.StatusOK)
}

func (h *Handler) apiCreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdTask, err := h.services.TaskService.CreateTask(r.Context(), userID, task)
	if err != nil {
		log.Err(err).Msg("error creating task")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, createdTask, http.StatusCreated)
}

func (h *Handler) apiGetTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	task, err := h.services.TaskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		log.Err(err).Int64("taskID", taskID).Msg("error fetching task")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	utils.WriteJSON(w, task, http.StatusOK)
}

func (h *Handler) apiUpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	var update models.TaskUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	updatedTask, err := h.services.TaskService.UpdateTask(r.Context(), userID, taskID, update)
	if err != nil {
		log.Err(err).Int64("taskID", taskID).Msg("error updating task")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, updatedTask, http.StatusOK)
}

func (h *Handler) apiDeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	if err := h.services.TaskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		log.Err(err).Int64("taskID", taskID).Msg("error deleting task")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) apiAddNote(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	var note models.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	createdNote, err := h.services.TaskService.AddNote(r.Context(), userID, taskID, note.Body)
	if err != nil {
		log.Err(err).Int64("taskID", taskID).Msg("error adding note")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	utils.WriteJSON(w, createdNote, http.StatusCreated)
}
