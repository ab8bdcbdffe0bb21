package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"

	"github.com/planora/server/internal/api/problem"
	"github.com/planora/server/internal/uploads"
)

type UploadsHandler struct {
	Service *uploads.Service
	Env     string
}

func NewUploadsHandler(service *uploads.Service, env string) *UploadsHandler {
	return &UploadsHandler{Service: service, Env: env}
}

// Upload stores a single multipart file from the "file" field.
func (h *UploadsHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(uploads.MaxFileSize); err != nil {
		problem.Validation(w, r, err, h.Env, problem.WithDetail("expected multipart form data"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		problem.Validation(w, r, err, h.Env, problem.WithDetail("missing file field"))
		return
	}
	defer file.Close()

	object, err := h.storeFile(r, file, header)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "file uploaded", object)
}

// UploadBatch stores every file in the "files" field. The batch is
// all-or-nothing on validation: any invalid file rejects the whole request
// before anything is stored.
func (h *UploadsHandler) UploadBatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(8 * uploads.MaxFileSize); err != nil {
		problem.Validation(w, r, err, h.Env, problem.WithDetail("expected multipart form data"))
		return
	}
	if r.MultipartForm == nil || len(r.MultipartForm.File["files"]) == 0 {
		problem.Validation(w, r, errors.New("missing files field"), h.Env)
		return
	}

	headers := r.MultipartForm.File["files"]
	for _, header := range headers {
		if header.Size > uploads.MaxFileSize {
			problem.Validation(w, r, uploads.ErrFileTooLarge, h.Env)
			return
		}
	}

	objects := make([]*uploads.Object, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			problem.ServerError(w, r, err, h.Env)
			return
		}
		object, err := h.storeFile(r, file, header)
		_ = file.Close()
		if err != nil {
			h.writeUploadError(w, r, err)
			return
		}
		objects = append(objects, object)
	}
	writeData(w, http.StatusCreated, "files uploaded", objects)
}

type uploadBase64Request struct {
	Data        string `json:"data" validate:"required"`
	ContentType string `json:"content_type" validate:"required"`
}

func (h *UploadsHandler) UploadBase64(w http.ResponseWriter, r *http.Request) {
	var req uploadBase64Request
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	object, err := h.Service.UploadBase64(r.Context(), req.Data, req.ContentType)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "file uploaded", object)
}

type presignRequest struct {
	ContentType string `json:"content_type" validate:"required"`
}

func (h *UploadsHandler) Presign(w http.ResponseWriter, r *http.Request) {
	var req presignRequest
	if !decodeAndValidate(w, r, &req, h.Env) {
		return
	}

	signed, err := h.Service.PresignUpload(r.Context(), req.ContentType)
	if err != nil {
		h.writeUploadError(w, r, err)
		return
	}
	writeData(w, http.StatusCreated, "upload URL created", signed)
}

func (h *UploadsHandler) storeFile(r *http.Request, file multipart.File, header *multipart.FileHeader) (*uploads.Object, error) {
	contentType := header.Header.Get("Content-Type")
	return h.Service.Upload(r.Context(), file, header.Size, contentType)
}

func (h *UploadsHandler) writeUploadError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, uploads.ErrFileTooLarge),
		errors.Is(err, uploads.ErrUnsupportedType),
		errors.Is(err, uploads.ErrInvalidBase64):
		problem.Validation(w, r, err, h.Env, problem.WithDetail(err.Error()))
	case errors.Is(err, uploads.ErrStorageUnavailable):
		problem.Write(w, r, http.StatusBadGateway, problem.TypeUpstream, "Gateway error", err, h.Env)
	default:
		problem.ServerError(w, r, err, h.Env)
	}
}
