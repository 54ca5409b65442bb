package ui

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"cvsite/internal/ui/assets"
)

func MountRoutes(r chi.Router, h *Handler) {
	r.Get("/", h.Home)
	r.Get("/analytics", h.Dashboard)

	staticFS, err := fs.Sub(assets.StaticFS(), "static")
	if err == nil {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}
}
