package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

var pageTemplates = template.Must(template.New("pages").
	Funcs(template.FuncMap{
		"dateOnly": func(t *time.Time) string {
			if t == nil {
				return ""
			}
			return t.Format("2006-01-02")
		},
	}).
	ParseFS(templatesFS, "templates/*.gohtml"))

// renderPage executes the named template into a buffer first, so a template
// failure becomes a clean 500 instead of a half-written page.
func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string, status int, data any) {
	log := logger.FromRequest(r)

	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Err(err).Str("template", name).Msg("page rendering failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
