package upload

import (
	"io"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/medialog/service/internal/logger"
	"github.com/medialog/service/internal/response"
)

// parseMemoryLimit caps how much of a multipart body is held in memory by
// the form parser before it spills to temp files. The ingestion path still
// reads the file part fully into memory afterwards, matching the one-buffer
// contract of the endpoint.
const parseMemoryLimit = 32 << 20 // 32 MB

// Handler holds HTTP handlers for the upload endpoints.
type Handler struct {
	svc      *Service
	maxBytes int64
}

// NewHandler creates a new upload Handler. maxBytes bounds the accepted
// request body size.
func NewHandler(svc *Service, maxBytes int64) *Handler {
	return &Handler{svc: svc, maxBytes: maxBytes}
}

type uploadResponse struct {
	Message string `json:"message" example:"Upload successful"`
	File    Record `json:"file"`
}

type listResponse struct {
	Uploads []Record `json:"uploads"`
}

// Create godoc
//
//	@Summary		Upload a media file
//	@Description	Accepts a multipart form with a binary file, a caption, and a type of "image" or "video". Persists the bytes via the active storage backend and records the metadata.
//	@Tags			uploads
//	@Accept			multipart/form-data
//	@Produce		json
//	@Param			file	formData	file	true	"Media file"
//	@Param			caption	formData	string	true	"Caption"
//	@Param			type	formData	string	true	"image or video"
//	@Success		200		{object}	uploadResponse
//	@Failure		400		{object}	response.ErrorBody
//	@Failure		500		{object}	response.ErrorBody
//	@Router			/api/upload [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(parseMemoryLimit); err != nil {
		response.BadRequest(w, "request body is too large or not a valid multipart form")
		return
	}

	caption := r.FormValue("caption")
	mediaType := r.FormValue("type")
	file, header, fileErr := r.FormFile("file")
	if fileErr == nil {
		defer file.Close()
	}

	// Enumerate everything that is missing before touching any storage.
	var missing []string
	if fileErr != nil {
		missing = append(missing, "file")
	}
	if strings.TrimSpace(caption) == "" {
		missing = append(missing, "caption")
	}
	if mediaType == "" {
		missing = append(missing, "type")
	}
	if len(missing) > 0 {
		response.BadRequest(w, "Missing "+strings.Join(missing, ", "))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		logger.Log.Error("upload: read file part", zap.Error(err))
		response.ServerError(w, "Server error", "failed to read uploaded file")
		return
	}

	rec, err := h.svc.Ingest(r.Context(), Input{
		Data:         data,
		OriginalName: header.Filename,
		ContentType:  header.Header.Get("Content-Type"),
		Caption:      caption,
		Type:         mediaType,
	})
	if err != nil {
		if h.svc.IsInvalidInput(err) {
			response.BadRequest(w, err.Error())
			return
		}
		logger.Log.Error("upload: ingestion failed", zap.Error(err), zap.String("filename", header.Filename))
		response.ServerError(w, "Server error", "failed to store upload")
		return
	}

	response.JSON(w, http.StatusOK, uploadResponse{Message: "Upload successful", File: *rec})
}

// List godoc
//
//	@Summary		List all uploads
//	@Description	Returns every upload record ordered by date descending.
//	@Tags			uploads
//	@Produce		json
//	@Success		200	{object}	listResponse
//	@Failure		500	{object}	response.ErrorBody
//	@Router			/api/upload [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	uploads, err := h.svc.List(r.Context())
	if err != nil {
		logger.Log.Error("upload: list failed", zap.Error(err))
		response.ServerError(w, "Failed to fetch", "failed to read uploads")
		return
	}

	response.JSON(w, http.StatusOK, listResponse{Uploads: uploads})
}
