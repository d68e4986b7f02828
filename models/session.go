package models

import "time"

// Session represents an authenticated browser session. A session is created
// at successful sign-in, resolved on every protected request, and destroyed
// at logout or expiry.
//
// The token is opaque: it carries no claims and is meaningful only as a key
// into the sessions table. Revoking a session is therefore a single DELETE.
type Session struct {
	// SessionID is the internal unique identifier of the session row.
	SessionID int64 `json:"-"`

	// Token is the opaque identifier handed to the client in an HttpOnly
	// cookie. It is generated server-side and never derived from user data.
	Token string `json:"token"`

	// UserID is the owner of the session. A live session always resolves
	// to exactly one existing user.
	UserID int64 `json:"-"`

	// CreatedAt is the timestamp when the session was established.
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the absolute expiry deadline. A session past this
	// deadline is treated identically to a missing one.
	ExpiresAt time.Time `json:"expires_at"`
}

// TableName returns the name of the database table
// associated with the Session model.
func (s Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session is past its expiry deadline at the
// given instant.
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
