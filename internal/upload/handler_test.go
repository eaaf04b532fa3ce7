package upload

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMaxBytes = 10 << 20

type part struct {
	field    string
	value    string
	filename string // non-empty makes this a file part
}

func multipartBody(t *testing.T, parts []part) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for _, p := range parts {
		if p.filename != "" {
			fw, err := mw.CreateFormFile(p.field, p.filename)
			require.NoError(t, err)
			_, err = fw.Write([]byte(p.value))
			require.NoError(t, err)
		} else {
			require.NoError(t, mw.WriteField(p.field, p.value))
		}
	}
	require.NoError(t, mw.Close())
	return body, mw.FormDataContentType()
}

func postUpload(t *testing.T, h *Handler, parts []part) *httptest.ResponseRecorder {
	t.Helper()
	body, contentType := multipartBody(t, parts)
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	h.Create(rr, req)
	return rr
}

func TestCreateSuccess(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(NewService(repo, &fakeMedia{}), testMaxBytes)

	rr := postUpload(t, h, []part{
		{field: "file", value: "video bytes", filename: "clip.mp4"},
		{field: "caption", value: "  First win  "},
		{field: "type", value: "video"},
	})

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var resp struct {
		Message string `json:"message"`
		File    Record `json:"file"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Upload successful", resp.Message)
	assert.Equal(t, "First win", resp.File.Caption)
	assert.Equal(t, TypeVideo, resp.File.Type)
	assert.Equal(t, todayUTC(), resp.File.Date)
	assert.NotEmpty(t, resp.File.File)

	require.Len(t, repo.records, 1)
}

func TestCreateEnumeratesMissingParts(t *testing.T) {
	repo := &fakeRepo{}
	media := &fakeMedia{}
	h := NewHandler(NewService(repo, media), testMaxBytes)

	rr := postUpload(t, h, []part{
		{field: "file", value: "bytes", filename: "shot.png"},
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "caption")
	assert.Contains(t, resp.Message, "type")
	assert.NotContains(t, resp.Message, "file")

	assert.Empty(t, repo.records)
	assert.Empty(t, media.saved, "no bytes written on a 400")
}

func TestCreateMissingFile(t *testing.T) {
	h := NewHandler(NewService(&fakeRepo{}, &fakeMedia{}), testMaxBytes)

	rr := postUpload(t, h, []part{
		{field: "caption", value: "no file"},
		{field: "type", value: "image"},
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "file")
}

func TestCreateRejectsUnknownType(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(NewService(repo, &fakeMedia{}), testMaxBytes)

	rr := postUpload(t, h, []part{
		{field: "file", value: "bytes", filename: "shot.png"},
		{field: "caption", value: "caption"},
		{field: "type", value: "audio"},
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, repo.records)
}

func TestCreateStorageError(t *testing.T) {
	h := NewHandler(NewService(&fakeRepo{}, &fakeMedia{err: errors.New("unreachable")}), testMaxBytes)

	rr := postUpload(t, h, []part{
		{field: "file", value: "bytes", filename: "shot.png"},
		{field: "caption", value: "caption"},
		{field: "type", value: "image"},
	})

	require.Equal(t, http.StatusInternalServerError, rr.Code)

	var resp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "Server error", resp.Message)
	assert.NotEmpty(t, resp.Error)
	assert.NotContains(t, resp.Error, "unreachable", "internal detail must not leak")
}

func TestCreateOversizeBody(t *testing.T) {
	repo := &fakeRepo{}
	h := NewHandler(NewService(repo, &fakeMedia{}), 64) // 64-byte cap

	rr := postUpload(t, h, []part{
		{field: "file", value: string(bytes.Repeat([]byte("A"), 1024)), filename: "big.png"},
		{field: "caption", value: "too big"},
		{field: "type", value: "image"},
	})

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Empty(t, repo.records)
}

func TestListReturnsUploadsNewestFirst(t *testing.T) {
	repo := &fakeRepo{records: []Record{
		{File: "uploads/new.png", Caption: "new", Type: TypeImage, Date: "2026-08-28"},
		{File: "uploads/old.mp4", Caption: "old", Type: TypeVideo, Date: "2026-07-01"},
	}}
	h := NewHandler(NewService(repo, &fakeMedia{}), testMaxBytes)

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Uploads []Record `json:"uploads"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Uploads, 2)
	assert.Equal(t, "new", resp.Uploads[0].Caption)
	assert.Equal(t, "old", resp.Uploads[1].Caption)
}

func TestListEmptyStoreYieldsEmptyArray(t *testing.T) {
	repo := &fakeRepo{records: []Record{}}
	h := NewHandler(NewService(repo, &fakeMedia{}), testMaxBytes)

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"uploads":[]}`, rr.Body.String())
}

func TestListRepositoryError(t *testing.T) {
	repo := &fakeRepo{listErr: errors.New("connection refused")}
	h := NewHandler(NewService(repo, &fakeMedia{}), testMaxBytes)

	req := httptest.NewRequest(http.MethodGet, "/api/upload", nil)
	rr := httptest.NewRecorder()
	h.List(rr, req)

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Failed to fetch")
}
