package photos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrUnsupportedScheme = errors.New("unsupported photo source")
	ErrNotConfigured     = errors.New("photo source not configured")
)

// Source opens a photo by reference and returns the file name to upload
// it under.
type Source interface {
	Open(ctx context.Context, ref string) (name string, rc io.ReadCloser, err error)
}

// FileSource reads photos from the local filesystem.
type FileSource struct{}

func (FileSource) Open(_ context.Context, ref string) (string, io.ReadCloser, error) {
	path := strings.TrimPrefix(ref, "file://")

	f, err := os.Open(path)
	if err != nil {
		return "", nil, fmt.Errorf("open photo: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return "", nil, fmt.Errorf("open photo: %w", err)
	}
	if st.IsDir() {
		_ = f.Close()
		return "", nil, fmt.Errorf("open photo: %s is a directory", path)
	}
	return filepath.Base(path), f, nil
}

// Resolver routes references to the source registered for their scheme.
// References without a scheme go to the local filesystem.
type Resolver struct {
	sources map[string]Source
}

func NewResolver() *Resolver {
	return &Resolver{sources: map[string]Source{
		"":     FileSource{},
		"file": FileSource{},
	}}
}

// Register installs src for scheme, replacing any previous one.
func (r *Resolver) Register(scheme string, src Source) {
	r.sources[strings.ToLower(scheme)] = src
}

func (r *Resolver) Open(ctx context.Context, ref string) (string, io.ReadCloser, error) {
	scheme := schemeOf(ref)
	src, ok := r.sources[scheme]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
	return src.Open(ctx, ref)
}

func schemeOf(ref string) string {
	scheme, _, ok := strings.Cut(ref, "://")
	if !ok || strings.ContainsAny(scheme, `/\`) {
		return ""
	}
	return strings.ToLower(scheme)
}
