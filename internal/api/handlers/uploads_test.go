package handlers

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/planora/server/internal/api/middleware"
	"github.com/planora/server/internal/config"
	"github.com/planora/server/internal/uploads"
	"github.com/stretchr/testify/require"
)

// newUploadsHandler builds a handler backed by a real minio client pointed at
// a dead endpoint. Tests exercise only the validation paths, which fail
// before any store access.
func newUploadsHandler(t *testing.T) *UploadsHandler {
	t.Helper()
	service, err := uploads.NewService(config.StorageConfig{
		Endpoint:  "localhost:9000",
		AccessKey: "test",
		SecretKey: "test",
		Bucket:    "test-uploads",
	})
	require.NoError(t, err)
	return NewUploadsHandler(service, "test")
}

func multipartUpload(t *testing.T, field, filename, contentType string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	header["Content-Type"] = []string{contentType}
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/uploads", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req.WithContext(middleware.WithUserID(req.Context(), 42))
}

func TestUploadsHandlerRejectsUnsupportedType(t *testing.T) {
	h := newUploadsHandler(t)
	req := multipartUpload(t, "file", "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	res := httptest.NewRecorder()

	h.Upload(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUploadsHandlerMissingFileField(t *testing.T) {
	h := newUploadsHandler(t)
	req := multipartUpload(t, "wrong_field", "photo.png", "image/png", []byte("fake"))
	res := httptest.NewRecorder()

	h.Upload(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUploadsHandlerBatchRejectsUnsupportedType(t *testing.T) {
	h := newUploadsHandler(t)
	req := multipartUpload(t, "files", "script.sh", "application/x-sh", []byte("#!/bin/sh"))
	res := httptest.NewRecorder()

	h.UploadBatch(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUploadsHandlerBatchMissingFilesField(t *testing.T) {
	h := newUploadsHandler(t)
	req := multipartUpload(t, "file", "photo.png", "image/png", []byte("fake"))
	res := httptest.NewRecorder()

	h.UploadBatch(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUploadsHandlerBase64BadPayload(t *testing.T) {
	h := newUploadsHandler(t)
	req := authedRequest(http.MethodPost, "/api/v1/uploads/base64",
		`{"data":"%%%not-base64%%%","content_type":"image/png"}`)
	res := httptest.NewRecorder()

	h.UploadBase64(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}

func TestUploadsHandlerBase64MissingContentType(t *testing.T) {
	h := newUploadsHandler(t)
	req := authedRequest(http.MethodPost, "/api/v1/uploads/base64", `{"data":"aGVsbG8="}`)
	res := httptest.NewRecorder()

	h.UploadBase64(res, req)

	require.Equal(t, http.StatusBadRequest, res.Code)
}
