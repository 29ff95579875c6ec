// Package web implements the HTML GUI driving adapter serving the embedded
// dashboard assets and the rendered docs page.
package web

import (
	"log/slog"
	"net/http"
	"sync"
)

// Handler is the web GUI driving adapter.
type Handler struct {
	logger *slog.Logger

	docsOnce sync.Once
	docsHTML string
}

// NewHandler creates a Handler.
func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

// Dashboard serves the single-page dashboard and ensures the CSRF token
// cookie is set for the scripts that call the API.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	csrfToken(w, r)

	page, err := StaticFS.ReadFile("static/index.html")
	if err != nil {
		h.logger.Error("failed to read dashboard page", "error", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

// Docs renders the embedded usage guide. The markdown is converted once and
// cached for the life of the process.
func (h *Handler) Docs(w http.ResponseWriter, r *http.Request) {
	csrfToken(w, r)

	h.docsOnce.Do(func() {
		h.docsHTML = "<!DOCTYPE html><html><head><title>KeyPanel Docs</title>" +
			`<link rel="stylesheet" href="/static/style.css"></head>` +
			`<body><main class="docs">` + RenderMarkdown(docsMarkdown) + "</main></body></html>"
	})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write([]byte(h.docsHTML))
}
