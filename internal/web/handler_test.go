package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGalleryRendersEntries(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/upload", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uploads":[
			{"file":"uploads/1-shot.png","caption":"Clutch round","type":"image","date":"2026-08-28"},
			{"file":"https://cdn.example.com/media-blog/abc.mp4","caption":"First win","type":"video","date":"2026-01-05"}
		]}`))
	}))
	defer api.Close()

	h := NewHandler(api.URL)
	rr := httptest.NewRecorder()
	h.Gallery(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()

	assert.Contains(t, body, "Clutch round")
	assert.Contains(t, body, `src="/uploads/1-shot.png"`)
	assert.Contains(t, body, "August 28, 2026")

	assert.Contains(t, body, "<video")
	assert.Contains(t, body, `src="https://cdn.example.com/media-blog/abc.mp4"`)
	assert.Contains(t, body, "January 5, 2026")
}

func TestGalleryEmptyListing(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"uploads":[]}`))
	}))
	defer api.Close()

	h := NewHandler(api.URL)
	rr := httptest.NewRecorder()
	h.Gallery(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotContains(t, rr.Body.String(), "<article")
}

func TestGalleryFetchFailureYieldsEmptyGrid(t *testing.T) {
	// Point at a server that is already closed.
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	api.Close()

	h := NewHandler(api.URL)
	rr := httptest.NewRecorder()
	h.Gallery(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rr.Code, "the public page never errors")
	assert.NotContains(t, rr.Body.String(), "<article")
}

func TestAdminPageRenders(t *testing.T) {
	h := NewHandler("http://localhost:8080")
	rr := httptest.NewRecorder()
	h.Admin(rr, httptest.NewRequest(http.MethodGet, "/admin", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `id="file"`)
	assert.Contains(t, body, `id="caption"`)
	assert.Contains(t, body, `id="type"`)
}

func TestFormatLongDate(t *testing.T) {
	assert.Equal(t, "August 28, 2026", formatLongDate("2026-08-28"))
	assert.Equal(t, "January 5, 2026", formatLongDate("2026-01-05"))
	assert.Equal(t, "not-a-date", formatLongDate("not-a-date"))
}
