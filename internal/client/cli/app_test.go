package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/manuelmariscal/coursera/internal/client/client"
	"github.com/manuelmariscal/coursera/internal/client/config"
	"github.com/manuelmariscal/coursera/internal/client/diagnostics"
	"github.com/manuelmariscal/coursera/internal/client/models"
	"github.com/manuelmariscal/coursera/internal/client/photos"
	"github.com/manuelmariscal/coursera/internal/client/repositories"
	"github.com/manuelmariscal/coursera/internal/client/services"
	"github.com/manuelmariscal/coursera/internal/client/session"
	"github.com/manuelmariscal/coursera/internal/logging"
)

// ------------ fake backend ------------

type backend struct {
	mu        sync.Mutex
	deleted   []string
	apiKeys   []string
	uploads   []string
	rateLimit bool
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func ficha(id, nombre string) map[string]any {
	return map[string]any{
		"id": id, "nombre": nombre, "apellido": "López", "tipo_sangre": "O+",
		"contacto_emergencia": "Luis", "numero_contacto": "555-0101",
	}
}

func (b *backend) routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"status": "healthy"})
	})
	r.Post("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body struct{ Username, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "Invalid username or password"})
			return
		}
		role := "user"
		if body.Username == "admin" {
			role = "admin"
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"message": "Login successful",
			"token":   "tok-" + body.Username,
			"user":    map[string]any{"id": 1, "username": body.Username, "name": "Test " + body.Username, "role": role},
		})
	})
	r.Get("/api/fichas", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		limited := b.rateLimit
		b.mu.Unlock()
		if limited {
			w.Header().Set("Retry-After", "42")
			writeJSON(w, http.StatusTooManyRequests, map[string]any{"error": "Too many requests"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"status": "success",
			"fichas": []any{ficha("AAA111", "Ana"), ficha("BBB222", "Beto")},
		})
	})
	r.Post("/api/fichas", func(w http.ResponseWriter, r *http.Request) {
		var f map[string]any
		_ = json.NewDecoder(r.Body).Decode(&f)
		f["id"] = "NEW001"
		writeJSON(w, http.StatusCreated, map[string]any{"status": "success", "ficha": f, "qr_url": "/api/qr/NEW001"})
	})
	r.Delete("/api/fichas/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		b.mu.Lock()
		b.apiKeys = append(b.apiKeys, r.Header.Get("X-API-Key"))
		b.mu.Unlock()
		if id == "missing" {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "Ficha no encontrada"})
			return
		}
		b.mu.Lock()
		b.deleted = append(b.deleted, id)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
	})
	r.Get("/api/qr/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("\x89PNG-fake"))
	})
	r.Post("/api/upload_photo/{id}", func(w http.ResponseWriter, r *http.Request) {
		_, hdr, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}
		b.mu.Lock()
		b.uploads = append(b.uploads, hdr.Filename)
		b.mu.Unlock()
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "foto_url": chi.URLParam(r, "id") + ".jpg"})
	})
	return r
}

// ------------ harness ------------

type harness struct {
	app *App
	out *bytes.Buffer
	be  *backend
	srv *httptest.Server
}

func newHarness(t *testing.T, cfg *config.Config, input ...string) *harness {
	t.Helper()

	be := &backend{}
	srv := httptest.NewServer(be.routes())
	t.Cleanup(srv.Close)

	repos, err := repositories.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = repos.Close() })

	logger := logging.Discard()
	store, w := session.New()
	api := client.NewRESTClient(
		client.WithBaseURL(srv.URL),
		client.WithCredentials(store),
		client.WithLogger(logger),
	)

	if cfg == nil {
		cfg = &config.Config{}
	}
	out := &bytes.Buffer{}
	app := NewApp(Deps{
		Config:  cfg,
		API:     api,
		Auth:    services.NewAuthService(api, repos.Metadata, store, w, logger),
		Records: services.NewRecordsService(api, logger),
		Diag:    diagnostics.New(api, logger),
		Photos:  photos.NewResolver(),
		Logger:  logger,
		In:      strings.NewReader(strings.Join(input, "\n") + "\n"),
		Out:     out,
	})
	return &harness{app: app, out: out, be: be, srv: srv}
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func stubSecret(t *testing.T, v string) *int {
	t.Helper()
	calls := 0
	orig := getSecret
	getSecret = func(io.Writer, string) ([]byte, error) {
		calls++
		return []byte(v), nil
	}
	t.Cleanup(func() { getSecret = orig })
	return &calls
}

// ------------ tests ------------

func TestApp_LoginListAndLogout(t *testing.T) {
	capturePrintln(t)
	stubPassword(t, "secret")

	h := newHarness(t, nil, "login ana", "fichas", "whoami", "logout", "exit")
	require.NoError(t, h.app.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Welcome, Test ana (user)")
	assert.Contains(t, out, "AAA111")
	assert.Contains(t, out, "Beto López")
	assert.Contains(t, out, "2 record(s)")
	assert.Contains(t, out, "User:     ana")
	assert.Contains(t, out, "Logged out")
	assert.Equal(t, session.Anonymous, h.app.snapshot().Status)
}

func TestApp_LoginRejected(t *testing.T) {
	capturePrintln(t)
	stubPassword(t, "wrong")

	h := newHarness(t, nil, "login ana")
	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, h.out.String(), "Not authorized")
	assert.Nil(t, h.app.snapshot().User)
}

func TestApp_RateLimitStartsCountdown(t *testing.T) {
	prompts := capturePrintln(t)

	h := newHarness(t, nil, "fichas", "status", "dismiss", "status")
	h.be.rateLimit = true
	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, h.out.String(), "Too many requests. Try again in 42 seconds")

	var waiting bool
	for _, p := range *prompts {
		if strings.Contains(p, "wait 4") {
			waiting = true
		}
	}
	assert.True(t, waiting, "prompt should show the countdown: %v", *prompts)
	assert.Equal(t, 0, h.app.countdown.Remaining())
}

func TestApp_AdminDeleteUsesConfiguredKey(t *testing.T) {
	capturePrintln(t)
	stubPassword(t, "secret")
	prompted := stubSecret(t, "unused")

	h := newHarness(t, &config.Config{APIKey: "cfg-key"}, "login admin", "delficha AAA111", "y")
	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, h.out.String(), "Record AAA111 deleted")
	assert.Equal(t, []string{"AAA111"}, h.be.deleted)
	assert.Equal(t, []string{"cfg-key"}, h.be.apiKeys)
	assert.Zero(t, *prompted)
}

func TestApp_BulkDeletePartial(t *testing.T) {
	capturePrintln(t)
	stubPassword(t, "secret")
	prompted := stubSecret(t, "typed-key")

	h := newHarness(t, nil, "login admin", "bulkdel A1 missing A2 A1", "y")
	require.NoError(t, h.app.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Bulk delete partial: 2 deleted, 1 failed")
	assert.Contains(t, out, "missing:")
	assert.Contains(t, out, "Retry with: bulkdel missing\n")
	assert.ElementsMatch(t, []string{"A1", "A2"}, h.be.deleted)
	assert.Equal(t, 1, *prompted)
	for _, k := range h.be.apiKeys {
		assert.Equal(t, "typed-key", k)
	}
}

func TestApp_DeleteDeclined(t *testing.T) {
	capturePrintln(t)
	stubPassword(t, "secret")

	h := newHarness(t, &config.Config{APIKey: "k"}, "login admin", "delficha AAA111", "n")
	require.NoError(t, h.app.Run(context.Background()))

	assert.Empty(t, h.be.deleted)
}

func TestApp_NewFichaValidationAndCreate(t *testing.T) {
	capturePrintln(t)

	h := newHarness(t, nil,
		"newficha", "Ana", "", "", "", "", "", "",
		"newficha", "Ana", "López", "A+", "Luis", "555", "", "",
	)
	require.NoError(t, h.app.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "required fields missing: apellido, tipo_sangre, contacto_emergencia, numero_contacto")
	assert.Contains(t, out, "Record NEW001 created")
	assert.Contains(t, out, "QR: /api/qr/NEW001")
}

func TestApp_QRAndPhoto(t *testing.T) {
	capturePrintln(t)

	dir := t.TempDir()
	qrFile := filepath.Join(dir, "qr.png")
	photo := filepath.Join(dir, "casco.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg"), 0o600))

	h := newHarness(t, nil, "qr AAA111 "+qrFile, "photo AAA111 "+photo, "photo AAA111 ftp://x/y")
	require.NoError(t, h.app.Run(context.Background()))

	b, err := os.ReadFile(qrFile)
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG-fake", string(b))

	assert.Equal(t, []string{"casco.jpg"}, h.be.uploads)
	out := h.out.String()
	assert.Contains(t, out, "Photo uploaded: AAA111.jpg")
	assert.Contains(t, out, "unsupported photo source")
}

func TestApp_Export(t *testing.T) {
	capturePrintln(t)
	stubPassword(t, "secret")

	dst := filepath.Join(t.TempDir(), "fichas.xlsx")
	h := newHarness(t, nil, "login admin", "export "+dst, "export notes.txt")
	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, h.out.String(), "Exported 2 record(s)")
	assert.Contains(t, h.out.String(), "usage: export <file.xlsx>")

	wb, err := excelize.OpenFile(dst)
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows("Fichas")
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestApp_StatusAndDiag(t *testing.T) {
	capturePrintln(t)

	h := newHarness(t, nil, "status", "diag")
	require.NoError(t, h.app.Run(context.Background()))

	out := h.out.String()
	assert.Contains(t, out, "Backend "+h.srv.URL+": healthy")
	assert.Contains(t, out, "Connection: connected (direct)")
	assert.Contains(t, out, "backend connection")
	assert.Contains(t, out, "received 2 records")
}

func TestApp_StatusPrompt(t *testing.T) {
	h := newHarness(t, nil)
	assert.Equal(t, "uninitialized", h.app.snapshot().Status.String())
	assert.Equal(t, "guest", h.app.status())

	h.app.countdown.Start(30)
	defer h.app.countdown.Dismiss()
	assert.Equal(t, "guest wait 30s", h.app.status())
}

func TestApp_WatchSessionLogsTransitions(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("slog", &buf, "info")
	require.NoError(t, err)
	a := &App{logger: logger}

	ana := &models.User{Username: "ana"}
	updates := make(chan session.Snapshot, 4)
	updates <- session.Snapshot{Status: session.Validating, Token: "t", Loading: true}
	updates <- session.Snapshot{Status: session.Authenticated, User: ana, Token: "t"}
	updates <- session.Snapshot{Status: session.Authenticated, User: ana, Token: "t"}
	updates <- session.Snapshot{Status: session.Anonymous}
	close(updates)

	a.watchSession(context.Background(), session.Uninitialized, updates)

	out := buf.String()
	assert.Equal(t, 3, strings.Count(out, "session changed"), out)
	assert.Contains(t, out, "from=uninitialized to=validating")
	assert.Contains(t, out, "from=validating to=authenticated user=ana")
	assert.Contains(t, out, "from=authenticated to=anonymous")
}

func TestApp_RunObservesSessionChanges(t *testing.T) {
	capturePrintln(t)
	stubPassword(t, "secret")

	h := newHarness(t, nil, "login ana", "logout")
	var buf bytes.Buffer
	logger, err := logging.New("slog", &buf, "info")
	require.NoError(t, err)
	h.app.logger = logger

	require.NoError(t, h.app.Run(context.Background()))

	assert.Contains(t, buf.String(), "to=anonymous")
}
