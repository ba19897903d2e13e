package handler

import (
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

type navItem struct {
	Path  string
	Label string
}

var views = []navItem{
	{"/shopping", "Spesa"},
	{"/pantry", "Dispensa"},
	{"/budget", "Budget"},
	{"/history", "Storico"},
	{"/meal-plan", "Menu settimanale"},
	{"/recipes", "Ricette"},
}

// PageHandler serves the HTML shells; data is loaded from the JSON API.
type PageHandler struct {
	templates *template.Template
	logger    *slog.Logger
}

func NewPageHandler(logger *slog.Logger) *PageHandler {
	return &PageHandler{
		templates: template.Must(template.ParseFS(templateFS, "templates/*.html")),
		logger:    logger,
	}
}

func (h *PageHandler) render(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render template", "template", name, "error", err)
	}
}

// View renders the application shell for the view at the request path.
func (h *PageHandler) View(w http.ResponseWriter, r *http.Request) {
	for _, v := range views {
		if v.Path == r.URL.Path {
			h.render(w, http.StatusOK, "app.html", map[string]any{
				"Title": v.Label,
				"View":  v.Path,
				"Nav":   views,
			})
			return
		}
	}
	http.NotFound(w, r)
}

// Home sends the root path to the shopping list.
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/shopping", http.StatusSeeOther)
}

// Static serves the embedded stylesheet under /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
