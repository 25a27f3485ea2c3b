// internal/site/server.go
package site

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// NewRouter serves a rendered site directory for local preview.
func NewRouter(outDir string) (*chi.Mux, error) {
	info, err := os.Stat(outDir)
	if err != nil {
		return nil, fmt.Errorf("site directory %s: %w", outDir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("site directory %s is not a directory", outDir)
	}

	mux := chi.NewRouter()
	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.Handle("/*", http.FileServer(http.Dir(outDir)))
	return mux, nil
}
