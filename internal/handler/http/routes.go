package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/login", h.loginPage)
		r.Post("/login", h.loginSubmit)
		r.Get("/register", h.registerPage)
		r.Post("/register", h.registerSubmit)

		r.Post("/api/user/register", h.apiRegister)
		r.Post("/api/user/login", h.apiLogin)
		r.Get("/api/version", h.getAppVersion)
	})

	// HTML routes behind the session cookie
	router.Group(func(r chi.Router) {
		r.Use(h.authPage)

		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/tasks", http.StatusSeeOther)
		})
		r.Post("/logout", h.logoutSubmit)

		r.Get("/tasks", h.tasksPage)
		r.Post("/tasks", h.createTaskSubmit)
		r.Get("/tasks/{taskID}", h.taskPage)
		r.Post("/tasks/{taskID}/update", h.updateTaskSubmit)
		r.Post("/tasks/{taskID}/delete", h.deleteTaskSubmit)
		r.Post("/tasks/{taskID}/notes", h.addNoteSubmit)
	})

	// JSON API behind the same session cookie
	router.Group(func(r chi.Router) {
		r.Use(h.authAPI)

		r.Post("/api/user/logout", h.apiLogout)

		r.Get("/api/tasks", h.apiListTasks)
		r.Post("/api/tasks", h.apiCreateTask)
		r.Get("/api/tasks/{taskID}", h.apiGetTask)
		r.Patch("/api/tasks/{taskID}", h.apiUpdateTask)
		r.Delete("/api/tasks/{taskID}", h.apiDeleteTask)
		r.Post("/api/tasks/{taskID}/notes", h.apiAddNote)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
