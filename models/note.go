package models

import "time"

// Note is a free-text annotation attached to a task.
type Note struct {
	// NoteID is the internal unique identifier of the note.
	NoteID int64 `json:"note_id"`

	// TaskID is the task the note belongs to.
	TaskID int64 `json:"-"`

	// Body contains the note text. Required and non-empty.
	Body string `json:"body"`

	// CreatedAt is the timestamp when the note was added.
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the name of the database table
// associated with the Note model.
func (n Note) TableName() string {
	return "notes"
}
