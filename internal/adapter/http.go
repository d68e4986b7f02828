package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/go-resty/resty/v2"
)

const sessionCookieName = "session_token"

type httpServerAdapter struct {
	client *utils.HTTPClient

	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs an HTTP/REST implementation of
// [ServerAdapter]. It normalises and validates the base URL from
// adapterCfg.HTTPAddress and configures the underlying HTTP client with the
// resolved base URL and request timeout.
//
// Returns an error if adapterCfg.HTTPAddress is empty or cannot be parsed as
// a valid URL.
func NewHTTPServerAdapter(adapterCfg config.ClientAdapter, logger *logger.Logger) (ServerAdapter, error) {
	client := utils.NewHTTPClient()
	baseURL, err := normalizeBaseURL(adapterCfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	client.
		SetBaseURL(baseURL).
		SetTimeout(adapterCfg.RequestTimeout)

	return &httpServerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// SetToken implements [ServerAdapter]. It stores token (whitespace-trimmed)
// for use in the session cookie of all subsequent authenticated requests.
func (h *httpServerAdapter) SetToken(token string) {
	h.token = strings.TrimSpace(token)
}

// Token implements [ServerAdapter]. It returns the session token currently
// held by the adapter, or an empty string if none has been set.
func (h *httpServerAdapter) Token() string {
	return h.token
}

// authedRequest returns a request builder with the session cookie attached.
func (h *httpServerAdapter) authedRequest(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetCookie(&http.Cookie{Name: sessionCookieName, Value: h.token})
}

// Register implements [ServerAdapter]. It POSTs the user credentials to
// POST /api/user/register. Registration does not issue a session; a
// subsequent Login is required. Returns the created user record.
func (h *httpServerAdapter) Register(ctx context.Context, user models.User) (models.User, error) {
	var createdUser models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&createdUser).
		Post("/api/user/register")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	return createdUser, nil
}

// Login implements [ServerAdapter]. It POSTs the credentials to
// POST /api/user/login. On success the session token from the response body
// is stored via SetToken. Returns an error if the request fails or the server
// responds with a non-2xx status.
func (h *httpServerAdapter) Login(ctx context.Context, user models.User) (models.Session, error) {
	var session models.Session

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(user).
		SetResult(&session).
		Post("/api/user/login")
	if err != nil {
		return models.Session{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Session{}, err
	}

	h.SetToken(session.Token)
	return session, nil
}

// Logout implements [ServerAdapter]. It POSTs to POST /api/user/logout and
// clears the stored token regardless of the server's answer to a revoked or
// missing session.
func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.authedRequest(ctx).Post("/api/user/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	h.token = ""
	return mapHTTPError(resp)
}

// ListTasks implements [ServerAdapter]. It GETs /api/tasks with the filter
// encoded as query parameters and returns the decoded task list.
func (h *httpServerAdapter) ListTasks(ctx context.Context, filter models.TaskFilter) ([]models.Task, error) {
	req := h.authedRequest(ctx)
	if filter.Status != nil {
		req.SetQueryParam("status", string(*filter.Status))
	}
	if filter.Priority != nil {
		req.SetQueryParam("priority", string(*filter.Priority))
	}
	if filter.Backlog != nil {
		req.SetQueryParam("backlog", strconv.FormatBool(*filter.Backlog))
	}

	resp, err := req.Get("/api/tasks")
	if err != nil {
		return nil, fmt.Errorf("list tasks request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err = json.Unmarshal(resp.Body(), &tasks); err != nil {
		return nil, fmt.Errorf("decode task list response: %w", err)
	}

	return tasks, nil
}

// CreateTask implements [ServerAdapter]. It POSTs the task to
// POST /api/tasks and returns the created record with server-assigned fields.
func (h *httpServerAdapter) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	var createdTask models.Task

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(task).
		SetResult(&createdTask).
		Post("/api/tasks")
	if err != nil {
		return models.Task{}, fmt.Errorf("create task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return createdTask, nil
}

// GetTask implements [ServerAdapter]. It GETs /api/tasks/{taskID} and returns
// the task with its notes attached.
func (h *httpServerAdapter) GetTask(ctx context.Context, taskID int64) (models.Task, error) {
	var task models.Task

	resp, err := h.authedRequest(ctx).
		SetResult(&task).
		Get(taskURL(taskID))
	if err != nil {
		return models.Task{}, fmt.Errorf("get task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return task, nil
}

// UpdateTask implements [ServerAdapter]. It PATCHes the partial update to
// PATCH /api/tasks/{taskID} and returns the updated task.
func (h *httpServerAdapter) UpdateTask(ctx context.Context, taskID int64, update models.TaskUpdate) (models.Task, error) {
	var updatedTask models.Task

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&updatedTask).
		Patch(taskURL(taskID))
	if err != nil {
		return models.Task{}, fmt.Errorf("update task request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Task{}, err
	}

	return updatedTask, nil
}

// DeleteTask implements [ServerAdapter]. It DELETEs /api/tasks/{taskID}.
func (h *httpServerAdapter) DeleteTask(ctx context.Context, taskID int64) error {
	resp, err := h.authedRequest(ctx).Delete(taskURL(taskID))
	if err != nil {
		return fmt.Errorf("delete task request: %w", err)
	}

	return mapHTTPError(resp)
}

// AddNote implements [ServerAdapter]. It POSTs the note body to
// POST /api/tasks/{taskID}/notes and returns the created note.
func (h *httpServerAdapter) AddNote(ctx context.Context, taskID int64, body string) (models.Note, error) {
	var createdNote models.Note

	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.Note{Body: body}).
		SetResult(&createdNote).
		Post(taskURL(taskID) + "/notes")
	if err != nil {
		return models.Note{}, fmt.Errorf("add note request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Note{}, err
	}

	return createdNote, nil
}

func taskURL(taskID int64) string {
	return "/api/tasks/" + strconv.FormatInt(taskID, 10)
}
