package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
)

// authAPI is the session-authentication middleware for JSON API routes.
//
// It reads the session cookie, resolves the opaque token through
// [service.AuthService.Authorize], and on success stores the authenticated
// user's id in the request context under [utils.UserIDCtxKey] before
// delegating to the next handler.
//
// A missing cookie, an unknown token, and an expired session all answer
// HTTP 401. A session-store failure answers HTTP 500: the server cannot
// tell whether the caller is signed in, which is not the caller's fault.
func (h *Handler) authAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, err := h.services.AuthService.Authorize(r.Context(), sessionTokenFromRequest(r))
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				http.Error(w, service.ErrUnauthenticated.Error(), http.StatusUnauthorized)
				return
			}
			log.Err(err).Msg("authorization check failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(h.contextWithUserID(r.Context(), userID)))
	})
}

// authPage is the session-authentication middleware for HTML routes.
//
// Resolution is identical to authAPI, but an unauthenticated browser is
// sent to the sign-in page with a 303 redirect and an advisory flash
// message instead of a bare 401.
func (h *Handler) authPage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		userID, err := h.services.AuthService.Authorize(r.Context(), sessionTokenFromRequest(r))
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				h.setFlash(w, msgSignInRequired)
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			log.Err(err).Msg("authorization check failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(h.contextWithUserID(r.Context(), userID)))
	})
}

// contextWithUserID stores the authenticated user's id in the context so
// that downstream handlers can retrieve it without another session lookup.
func (h *Handler) contextWithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, utils.UserIDCtxKey, userID)
}
