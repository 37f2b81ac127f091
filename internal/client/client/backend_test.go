package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/manuelmariscal/coursera/internal/common"
)

const (
	desktopUA = "Mozilla/5.0 (X11; Linux x86_64) Firefox/120.0"
	mobileUA  = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Mobile/15E148"
)

type recordedCall struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
}

// recorder captures every request reaching the fake backend.
type recorder struct {
	mu    sync.Mutex
	calls []recordedCall
}

func (rec *recorder) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.mu.Lock()
		rec.calls = append(rec.calls, recordedCall{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
		})
		rec.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (rec *recorder) all() []recordedCall {
	rec.mu.Lock()
	defer rec.mu.Unlock()
	return append([]recordedCall(nil), rec.calls...)
}

func (rec *recorder) total() int {
	return len(rec.all())
}

func (rec *recorder) count(method, path string) int {
	n := 0
	for _, c := range rec.all() {
		if c.Method == method && c.Path == path {
			n++
		}
	}
	return n
}

func (rec *recorder) mobile() int {
	n := 0
	for _, c := range rec.all() {
		if c.Header.Get(common.MobileDeviceHeaderName) == "true" {
			n++
		}
	}
	return n
}

func (rec *recorder) last() recordedCall {
	calls := rec.all()
	if len(calls) == 0 {
		return recordedCall{}
	}
	return calls[len(calls)-1]
}

func newBackend(t *testing.T, routes func(r chi.Router)) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	r := chi.NewRouter()
	r.Use(rec.middleware)
	routes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv, rec
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func isMobileCall(r *http.Request) bool {
	return r.Header.Get(common.MobileDeviceHeaderName) == "true"
}

func newTestClient(srv *httptest.Server, opts ...Option) *RESTClient {
	base := []Option{WithBaseURL(srv.URL), WithUserAgent(desktopUA)}
	return NewRESTClient(append(base, opts...)...)
}

func fichaJSON(id, nombre string) map[string]any {
	return map[string]any{
		"id":                  id,
		"nombre":              nombre,
		"apellido":            "Pérez",
		"tipo_sangre":         "O+",
		"contacto_emergencia": "Luis",
		"numero_contacto":     "555-0101",
		"foto_url":            "default.jpg",
		"fecha_registro":      "2024-01-01",
	}
}
