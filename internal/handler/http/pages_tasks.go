package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
)

// tasksPageData feeds the task-list template. Filter fields are kept as the
// raw query strings so the form re-renders with the active selection.
type tasksPageData struct {
	Flash          string
	Tasks          []models.Task
	FilterStatus   string
	FilterPriority string
	FilterBacklog  string
}

// taskPageData feeds the single-task template.
type taskPageData struct {
	Flash string
	Task  models.Task
}

const deadlineFormat = "2006-01-02"

func (h *Handler) tasksPage(w http.ResponseWriter, r *http.Request) {
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

	query := r.URL.Query()
	h.renderPage(w, r, "tasks.gohtml", http.StatusOK, tasksPageData{
		Flash:          h.popFlash(w, r),
		Tasks:          tasks,
		FilterStatus:   query.Get("status"),
		FilterPriority: query.Get("priority"),
		FilterBacklog:  query.Get("backlog"),
	})
}

func (h *Handler) taskPage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	task, err := h.services.TaskService.GetTask(r.Context(), userID, taskID)
	if err != nil {
		log.Err(err).Int64("taskID", taskID).Msg("error fetching task")
		http.Error(w, http.StatusText(statusFromError(err)), statusFromError(err))
		return
	}

	h.renderPage(w, r, "task.gohtml", http.StatusOK, taskPageData{
		Flash: h.popFlash(w, r),
		Task:  task,
	})
}

func (h *Handler) createTaskSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	task := models.Task{
		Title:    r.PostFormValue("title"),
		Priority: models.TaskPriority(r.PostFormValue("priority")),
		Status:   models.TaskStatus(r.PostFormValue("status")),
		Backlog:  r.PostFormValue("backlog") == "true",
	}
	if raw := r.PostFormValue("deadline"); raw != "" {
		deadline, err := time.Parse(deadlineFormat, raw)
		if err != nil {
			h.setFlash(w, "deadline must be a date like 2026-09-15")
			http.Redirect(w, r, "/tasks", http.StatusSeeOther)
			return
		}
		task.Deadline = &deadline
	}

	if _, err := h.services.TaskService.CreateTask(r.Context(), userID, task); err != nil {
		if statusFromError(err) == http.StatusBadRequest {
			h.setFlash(w, err.Error())
			http.Redirect(w, r, "/tasks", http.StatusSeeOther)
			return
		}
		log.Err(err).Msg("error creating task")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *Handler) updateTaskSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	update, err := taskUpdateFromForm(r)
	if err != nil {
		h.setFlash(w, "deadline must be a date like 2026-09-15")
		http.Redirect(w, r, taskURL(taskID), http.StatusSeeOther)
		return
	}

	if _, err := h.services.TaskService.UpdateTask(r.Context(), userID, taskID, update); err != nil {
		status := statusFromError(err)
		switch status {
		case http.StatusBadRequest:
			h.setFlash(w, err.Error())
			http.Redirect(w, r, taskURL(taskID), http.StatusSeeOther)
		case http.StatusNotFound:
			http.NotFound(w, r)
		default:
			log.Err(err).Int64("taskID", taskID).Msg("error updating task")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, taskURL(taskID), http.StatusSeeOther)
}

func (h *Handler) deleteTaskSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := h.services.TaskService.DeleteTask(r.Context(), userID, taskID); err != nil {
		if statusFromError(err) == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		log.Err(err).Int64("taskID", taskID).Msg("error deleting task")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *Handler) addNoteSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		log.Err(ErrNoUserIDInContext).Send()
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	if _, err := h.services.TaskService.AddNote(r.Context(), userID, taskID, r.PostFormValue("body")); err != nil {
		status := statusFromError(err)
		switch status {
		case http.StatusBadRequest:
			h.setFlash(w, err.Error())
			http.Redirect(w, r, taskURL(taskID), http.StatusSeeOther)
		case http.StatusNotFound:
			http.NotFound(w, r)
		default:
			log.Err(err).Int64("taskID", taskID).Msg("error adding note")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, taskURL(taskID), http.StatusSeeOther)
}

func taskURL(taskID int64) string {
	return "/tasks/" + strconv.FormatInt(taskID, 10)
}

// taskUpdateFromForm builds a partial update from the edit form. The form
// always posts every field, so each submitted value becomes part of the
// patch; only an unparseable deadline is an error.
func taskUpdateFromForm(r *http.Request) (models.TaskUpdate, error) {
	var update models.TaskUpdate

	if title := r.PostFormValue("title"); title != "" {
		update.Title = &title
	}
	if raw := r.PostFormValue("priority"); raw != "" {
		priority := models.TaskPriority(raw)
		update.Priority = &priority
	}
	if raw := r.PostFormValue("status"); raw != "" {
		status := models.TaskStatus(raw)
		update.Status = &status
	}

	backlog := r.PostFormValue("backlog") == "true"
	update.Backlog = &backlog

	if r.PostFormValue("clear_deadline") == "true" {
		update.ClearDeadline = true
	} else if raw := r.PostFormValue("deadline"); raw != "" {
		deadline, err := time.Parse(deadlineFormat, raw)
		if err != nil {
			return models.TaskUpdate{}, err
		}
		update.Deadline = &deadline
	}

	return update, nil
}
