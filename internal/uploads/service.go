// Package uploads stores user files in an S3-compatible object store and
// hands back public URLs.
package uploads

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/oklog/ulid/v2"

	"github.com/planora/server/internal/config"
	"github.com/planora/server/internal/metrics"
)

// MaxFileSize is the per-file upload limit.
const MaxFileSize = 10 << 20 // 10 MB

var (
	ErrFileTooLarge       = errors.New("file exceeds 10MB limit")
	ErrUnsupportedType    = errors.New("unsupported content type")
	ErrInvalidBase64      = errors.New("invalid base64 payload")
	ErrStorageUnavailable = errors.New("object storage unavailable")
)

// allowedTypes maps accepted MIME types to the object key extension.
var allowedTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Object describes a stored upload.
type Object struct {
	Key         string `json:"key"`
	URL         string `json:"url"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
}

// PresignedUpload is a time-limited PUT URL for client-direct uploads.
type PresignedUpload struct {
	Key       string    `json:"key"`
	UploadURL string    `json:"upload_url"`
	PublicURL string    `json:"public_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// objectStore is the slice of the minio client the service uses.
type objectStore interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	PresignedPutObject(ctx context.Context, bucketName, objectName string, expires time.Duration) (*url.URL, error)
}

type Service struct {
	store         objectStore
	bucket        string
	publicBaseURL string
	presignExpiry time.Duration
}

func NewService(cfg config.StorageConfig) (*Service, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return newService(client, cfg), nil
}

func newService(store objectStore, cfg config.StorageConfig) *Service {
	publicBase := cfg.PublicBaseURL
	if publicBase == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicBase = fmt.Sprintf("%s://%s/%s", scheme, cfg.Endpoint, cfg.Bucket)
	}
	return &Service{
		store:         store,
		bucket:        cfg.Bucket,
		publicBaseURL: strings.TrimRight(publicBase, "/"),
		presignExpiry: cfg.PresignExpiry,
	}
}

// Upload validates and stores a single file, returning its public URL.
func (s *Service) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (*Object, error) {
	ext, err := validate(size, contentType)
	if err != nil {
		return nil, err
	}

	key := newKey(ext)
	_, err = s.store.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	metrics.UploadsTotal.WithLabelValues("direct").Inc()

	return &Object{
		Key:         key,
		URL:         s.publicURL(key),
		ContentType: contentType,
		Size:        size,
	}, nil
}

// UploadBase64 decodes a base64 payload and stores it. A data URI prefix
// ("data:image/png;base64,") is tolerated and stripped.
func (s *Service) UploadBase64(ctx context.Context, encoded, contentType string) (*Object, error) {
	if _, after, found := strings.Cut(encoded, ";base64,"); found {
		encoded = after
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidBase64
	}

	ext, err := validate(int64(len(data)), contentType)
	if err != nil {
		return nil, err
	}

	key := newKey(ext)
	_, err = s.store.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	metrics.UploadsTotal.WithLabelValues("base64").Inc()

	return &Object{
		Key:         key,
		URL:         s.publicURL(key),
		ContentType: contentType,
		Size:        int64(len(data)),
	}, nil
}

// PresignUpload issues a time-limited PUT URL so clients can upload directly
// to the object store. The content type still has to pass the whitelist; the
// size limit is enforced by the store's bucket policy, not here.
func (s *Service) PresignUpload(ctx context.Context, contentType string) (*PresignedUpload, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedType
	}

	key := newKey(ext)
	signed, err := s.store.PresignedPutObject(ctx, s.bucket, key, s.presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	metrics.UploadsTotal.WithLabelValues("presigned").Inc()

	return &PresignedUpload{
		Key:       key,
		UploadURL: signed.String(),
		PublicURL: s.publicURL(key),
		ExpiresAt: time.Now().Add(s.presignExpiry),
	}, nil
}

func (s *Service) publicURL(key string) string {
	return s.publicBaseURL + "/" + key
}

func validate(size int64, contentType string) (string, error) {
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	if size <= 0 || size > MaxFileSize {
		return "", ErrFileTooLarge
	}
	return ext, nil
}

// newKey generates a sortable, collision-free object key.
func newKey(ext string) string {
	return "uploads/" + ulid.Make().String() + ext
}
