package ui

import (
	"html/template"
	"log/slog"
	"net/http"

	"github.com/dailabs/dai/assets"
)

var templates = template.Must(template.ParseFS(assets.TemplatesFS, "templates/*.html"))

// Render writes the named embedded template with the given data.
func Render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	err := templates.ExecuteTemplate(w, name, data)
	if err != nil {
		slog.Error("render failed", "template", name, "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}
