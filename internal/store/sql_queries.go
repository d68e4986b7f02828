// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/Masterminds/squirrel"
)

const (
	createUser = `INSERT INTO users (login, password_hash)
		VALUES ($1, $2)
		RETURNING user_id, login, password_hash, created_at;`

	findUserByLogin = `SELECT user_id, login, password_hash, created_at
		FROM users
		WHERE login = $1;`

	findUserByID = `SELECT user_id, login, password_hash, created_at
		FROM users
		WHERE user_id = $1;`

	createSession = `INSERT INTO sessions (token, user_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING session_id, token, user_id, created_at, expires_at;`

	findSessionByToken = `SELECT session_id, token, user_id, created_at, expires_at
		FROM sessions
		WHERE token = $1;`

	deleteSessionByToken = `DELETE FROM sessions
		WHERE token = $1;`

	deleteExpiredSessions = `DELETE FROM sessions
		WHERE expires_at <= $1;`

	createTask = `INSERT INTO tasks (user_id, title, deadline, priority, status, backlog)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING task_id, user_id, title, deadline, priority, status, backlog, created_at, updated_at;`

	findTaskByID = `SELECT task_id, user_id, title, deadline, priority, status, backlog, created_at, updated_at
		FROM tasks
		WHERE user_id = $1 AND task_id = $2;`

	deleteTask = `DELETE FROM tasks
		WHERE user_id = $1 AND task_id = $2;`

	addNote = `INSERT INTO notes (task_id, body)
		VALUES ($1, $2)
		RETURNING note_id, task_id, body, created_at;`

	findNotesByTaskID = `SELECT note_id, task_id, body, created_at
		FROM notes
		WHERE task_id = $1
		ORDER BY created_at, note_id;`
)

// taskColumns is the canonical column order scanned into a models.Task.
var taskColumns = []string{
	"task_id", "user_id", "title", "deadline",
	"priority", "status", "backlog", "created_at", "updated_at",
}

// buildFindTasksQuery builds the SELECT for a filtered task listing.
// Restrictions are added only for non-nil filter fields; results are ordered
// by deadline (tasks without a deadline last), then by id for stability.
func buildFindTasksQuery(userID int64, filter models.TaskFilter) (string, []any, error) {
	qb := squirrel.
		Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	if filter.Status != nil {
		qb = qb.Where(squirrel.Eq{"status": *filter.Status})
	}
	if filter.Priority != nil {
		qb = qb.Where(squirrel.Eq{"priority": *filter.Priority})
	}
	if filter.Backlog != nil {
		qb = qb.Where(squirrel.Eq{"backlog": *filter.Backlog})
	}

	return qb.OrderBy("deadline IS NULL", "deadline", "task_id").ToSql()
}

// buildUpdateTaskQuery builds a partial UPDATE touching only the fields the
// caller set. Ownership is enforced in the WHERE clause so that updating a
// foreign task matches zero rows. The caller must reject empty updates
// before calling this.
func buildUpdateTaskQuery(userID, taskID int64, update models.TaskUpdate, now time.Time) (string, []any, error) {
	qb := squirrel.
		Update("tasks").
		Set("updated_at", now).
		PlaceholderFormat(squirrel.Dollar)

	if update.Title != nil {
		qb = qb.Set("title", *update.Title)
	}
	switch {
	case update.ClearDeadline:
		qb = qb.Set("deadline", nil)
	case update.Deadline != nil:
		qb = qb.Set("deadline", *update.Deadline)
	}
	if update.Priority != nil {
		qb = qb.Set("priority", *update.Priority)
	}
	if update.Status != nil {
		qb = qb.Set("status", *update.Status)
	}
	if update.Backlog != nil {
		qb = qb.Set("backlog", *update.Backlog)
	}

	return qb.
		Where(squirrel.Eq{"user_id": userID, "task_id": taskID}).
		Suffix("RETURNING task_id, user_id, title, deadline, priority, status, backlog, created_at, updated_at").
		ToSql()
}
