// Package web serves the server-rendered admin upload and public gallery pages.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/medialog/service/internal/logger"
	"github.com/medialog/service/internal/upload"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// Handler renders the admin and gallery pages. The gallery fetches the
// listing endpoint over HTTP at render time, through the configured site
// base URL, rather than reading the store directly.
type Handler struct {
	listURL string
	client  *http.Client
	tmpl    *template.Template
}

// NewHandler creates a web Handler that resolves the listing endpoint
// against siteBaseURL.
func NewHandler(siteBaseURL string) *Handler {
	return &Handler{
		listURL: strings.TrimRight(siteBaseURL, "/") + "/api/upload",
		client:  &http.Client{Timeout: 10 * time.Second},
		tmpl:    template.Must(template.ParseFS(templatesFS, "templates/*.tmpl")),
	}
}

// galleryEntry is one rendered card.
type galleryEntry struct {
	Src     string
	Caption string
	IsVideo bool
	Date    string
}

type galleryData struct {
	Entries []galleryEntry
}

// Gallery renders the public page: every upload as a card, newest first.
// An empty or unreachable listing yields an empty grid, never an error page.
func (h *Handler) Gallery(w http.ResponseWriter, r *http.Request) {
	data := galleryData{Entries: h.fetchEntries(r.Context())}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "gallery.tmpl", data); err != nil {
		logger.Log.Error("web: render gallery", zap.Error(err))
	}
}

// Admin renders the upload form page.
func (h *Handler) Admin(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, "admin.tmpl", nil); err != nil {
		logger.Log.Error("web: render admin", zap.Error(err))
	}
}

func (h *Handler) fetchEntries(ctx context.Context) []galleryEntry {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.listURL, nil)
	if err != nil {
		logger.Log.Warn("web: build listing request", zap.Error(err))
		return nil
	}

	resp, err := h.client.Do(req)
	if err != nil {
		logger.Log.Warn("web: fetch uploads", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Log.Warn("web: fetch uploads", zap.Int("status", resp.StatusCode))
		return nil
	}

	var body struct {
		Uploads []upload.Record `json:"uploads"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		logger.Log.Warn("web: decode uploads", zap.Error(err))
		return nil
	}

	entries := make([]galleryEntry, 0, len(body.Uploads))
	for _, rec := range body.Uploads {
		entries = append(entries, galleryEntry{
			Src:     mediaSrc(rec.File),
			Caption: rec.Caption,
			IsVideo: rec.Type == upload.TypeVideo,
			Date:    formatLongDate(rec.Date),
		})
	}
	return entries
}

// mediaSrc turns a stored location into a browser src attribute: absolute
// URLs pass through, relative paths are served from the site root.
func mediaSrc(file string) string {
	if strings.HasPrefix(file, "http://") || strings.HasPrefix(file, "https://") {
		return file
	}
	return "/" + file
}

// formatLongDate renders an ISO calendar date in a long human-readable form,
// e.g. "August 28, 2026". Unparseable input is shown as-is.
func formatLongDate(iso string) string {
	t, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return iso
	}
	return fmt.Sprintf("%s %d, %d", t.Month(), t.Day(), t.Year())
}
