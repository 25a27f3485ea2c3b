package results

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Source opens named input documents.
type Source interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	Location(name string) string
}

// DirSource reads documents from a local directory.
type DirSource string

// Open opens name relative to the directory.
func (d DirSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.Open(d.Location(name))
}

// Location returns the file path name resolves to.
func (d DirSource) Location(name string) string {
	return filepath.Join(string(d), name)
}

// HTTPSource fetches documents below a base URL.
type HTTPSource struct {
	BaseURL string
	Client  *http.Client
}

// StatusError reports a non-200 response.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Status)
}

func (s HTTPSource) httpClient() *http.Client {
	if s.Client != nil {
		return s.Client
	}
	return http.DefaultClient
}

// Open issues one GET request for name. There is no retry.
func (s HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target := s.Location(name)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &StatusError{URL: target, Status: resp.StatusCode}
	}
	return resp.Body, nil
}

// Location returns the URL name resolves to.
func (s HTTPSource) Location(name string) string {
	joined, err := url.JoinPath(s.BaseURL, name)
	if err != nil {
		return strings.TrimRight(s.BaseURL, "/") + "/" + name
	}
	return joined
}

// NewSource picks an HTTPSource for http(s) locations and a DirSource otherwise.
// A zero timeout leaves requests unbounded.
func NewSource(location string, timeout time.Duration) Source {
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return HTTPSource{BaseURL: location, Client: &http.Client{Timeout: timeout}}
	}
	return DirSource(location)
}

func readDocument(ctx context.Context, src Source, name string) ([]byte, error) {
	rc, err := src.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
