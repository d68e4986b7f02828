package models

import "time"

// TaskPriority is the urgency level assigned to a task.
type TaskPriority string

// Supported task priorities, ordered from least to most urgent.
const (
	PriorityLow    TaskPriority = "low"
	PriorityNormal TaskPriority = "normal"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the supported priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityNormal, PriorityHigh:
		return true
	}
	return false
}

// TaskStatus is the completion state of a task.
type TaskStatus string

// Supported task statuses.
const (
	StatusOpen TaskStatus = "open"
	StatusDone TaskStatus = "done"
)

// Valid reports whether s is one of the supported statuses.
func (s TaskStatus) Valid() bool {
	return s == StatusOpen || s == StatusDone
}

// Task is a single item on a user's personal task list.
// Tasks are strictly per-user: every query against the tasks table is
// scoped by UserID, so one user's tasks are invisible to another.
type Task struct {
	// TaskID is the internal unique identifier of the task.
	TaskID int64 `json:"task_id"`

	// UserID is the owner of the task. Not exposed via JSON: the owner is
	// always implied by the authenticated session.
	UserID int64 `json:"-"`

	// Title is the short human-readable description of the task.
	// Required and non-empty.
	Title string `json:"title"`

	// Deadline is the optional due date of the task.
	Deadline *time.Time `json:"deadline,omitempty"`

	// Priority is the urgency level. Defaults to PriorityNormal.
	Priority TaskPriority `json:"priority"`

	// Status is the completion state. Defaults to StatusOpen.
	Status TaskStatus `json:"status"`

	// Backlog marks the task as parked: visible in the backlog view but
	// excluded from the default listing.
	Backlog bool `json:"backlog"`

	// Notes are the free-text annotations attached to the task, ordered
	// by creation time. Populated only by single-task lookups.
	Notes []Note `json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the name of the database table
// associated with the Task model.
func (t Task) TableName() string {
	return "tasks"
}

// TaskFilter narrows a task listing. Nil fields mean "no restriction";
// the zero value selects every task belonging to the user.
type TaskFilter struct {
	Status   *TaskStatus
	Priority *TaskPriority
	Backlog  *bool
}

// TaskUpdate is a partial update applied to an existing task. Nil fields
// are left untouched. ClearDeadline removes an existing deadline; it takes
// precedence over Deadline.
type TaskUpdate struct {
	Title         *string       `json:"title,omitempty"`
	Deadline      *time.Time    `json:"deadline,omitempty"`
	ClearDeadline bool          `json:"clear_deadline,omitempty"`
	Priority      *TaskPriority `json:"priority,omitempty"`
	Status        *TaskStatus   `json:"status,omitempty"`
	Backlog       *bool         `json:"backlog,omitempty"`
}

// Empty reports whether the update would change nothing.
func (u TaskUpdate) Empty() bool {
	return u.Title == nil && u.Deadline == nil && !u.ClearDeadline &&
		u.Priority == nil && u.Status == nil && u.Backlog == nil
}
