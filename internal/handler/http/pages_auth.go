package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
)

// authPageData feeds the login and register templates.
type authPageData struct {
	Flash string
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "login.gohtml", http.StatusOK, authPageData{Flash: h.popFlash(w, r)})
}

// loginSubmit handles the sign-in form. Every credential failure —
// empty fields, unknown login, wrong password — sends the user back to
// the form with the same generic message.
func (h *Handler) loginSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	session, err := h.services.AuthService.SignIn(r.Context(), models.User{
		Login:    r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided),
			errors.Is(err, service.ErrInvalidCredentials):
			h.setFlash(w, msgInvalidCredentials)
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during sign-in")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	h.setSessionCookie(w, session)
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "register.gohtml", http.StatusOK, authPageData{Flash: h.popFlash(w, r)})
}

// registerSubmit creates the account and signs the new user in right away,
// so registration lands on the task list rather than a second form.
func (h *Handler) registerSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form data", http.StatusBadRequest)
		return
	}

	user := models.User{
		Login:    r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}

	if _, err := h.services.AuthService.RegisterUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			h.setFlash(w, "login and password are required")
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		case errors.Is(err, store.ErrLoginAlreadyExists):
			h.setFlash(w, msgLoginTaken)
			http.Redirect(w, r, "/register", http.StatusSeeOther)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	session, err := h.services.AuthService.SignIn(r.Context(), user)
	if err != nil {
		// account exists but sign-in failed; let the user try by hand
		log.Err(err).Msg("post-registration sign-in failed")
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.setSessionCookie(w, session)
	http.Redirect(w, r, "/tasks", http.StatusSeeOther)
}

// logoutSubmit revokes the session and clears the cookie. Signing out an
// already-dead session still lands on the sign-in page without complaint.
func (h *Handler) logoutSubmit(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := h.services.AuthService.SignOut(r.Context(), sessionTokenFromRequest(r)); err != nil {
		log.Err(err).Msg("unexpected error occurred during sign-out")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
