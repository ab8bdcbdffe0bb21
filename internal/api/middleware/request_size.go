package middleware

import (
	"net/http"
)

const (
	// DefaultMaxBodySize caps JSON request bodies at 1MB.
	DefaultMaxBodySize int64 = 1 << 20

	// UploadMaxBodySize caps multipart upload bodies. Individual files are
	// limited to 10MB each by the uploads service; the envelope allows a
	// batch of a few files plus form overhead.
	UploadMaxBodySize int64 = 64 << 20
)

// RequestSize wraps the body with http.MaxBytesReader so oversized payloads
// fail with 413 instead of being buffered.
func RequestSize(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
