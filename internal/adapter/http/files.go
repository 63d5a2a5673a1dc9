package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kosthub/kosthub/internal/adapter/blob"
)

// RegisterFiles mounts the blob-serving route on the router. Public buckets
// serve directly; private buckets require a valid signed URL. This route
// bypasses Huma because it streams raw bytes, not JSON.
func RegisterFiles(r chi.Router, store *blob.Store) {
	r.Get("/files/{bucket}/*", func(w http.ResponseWriter, req *http.Request) {
		bucket := chi.URLParam(req, "bucket")
		path := chi.URLParam(req, "*")

		data, err := store.Open(bucket, path, req.URL.Query())
		if err != nil {
			if errors.Is(err, blob.ErrInvalidSignature) {
				http.Error(w, "invalid or expired signature", http.StatusForbidden)
				return
			}
			http.Error(w, "file not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", http.DetectContentType(data))
		w.Write(data)
	})
}
