package http

import (
	"net/http"
	"net/url"
	"time"

	"github.com/MKhiriev/go-task-keeper/models"
)

const (
	// sessionCookieName is the cookie carrying the opaque session token.
	// HttpOnly keeps it out of reach of page scripts; the token is only
	// ever interpreted server-side.
	sessionCookieName = "session_token"

	// flashCookieName carries a one-shot advisory message across a
	// redirect. It is consumed (and cleared) on the next page render.
	flashCookieName = "flash"
)

// sessionTokenFromRequest extracts the session token from the request
// cookie. An absent cookie yields an empty token, which the auth service
// treats as unauthenticated.
func sessionTokenFromRequest(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// setSessionCookie installs the session token for the browser. Cookie
// lifetime mirrors the session's absolute expiry, so the browser drops it
// around the same time the server stops honoring it.
func (h *Handler) setSessionCookie(w http.ResponseWriter, session models.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// setFlash stores a one-shot message shown on the next rendered page.
// The value is escaped because cookie values cannot carry spaces.
func (h *Handler) setFlash(w http.ResponseWriter, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(message),
		Path:     "/",
		Expires:  time.Now().Add(time.Minute),
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash returns the pending flash message, if any, and clears it.
func (h *Handler) popFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
