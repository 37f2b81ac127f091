package client

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manuelmariscal/coursera/internal/client/models"
	"github.com/manuelmariscal/coursera/internal/common"
)

func TestGetAllFichas(t *testing.T) {
	srv, rec := newBackend(t, func(r chi.Router) {
		r.Get("/api/fichas", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"status": "success",
				"fichas": []any{fichaJSON("A1", "Ana"), fichaJSON("B2", "Bea")},
			})
		})
	})
	c := newTestClient(srv)

	got, err := c.GetAllFichas(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Nombre)
	assert.Equal(t, models.ID("B2"), got[1].ID)
	assert.Equal(t, 1, rec.total())
}

func TestGetAllFichas_MalformedNeverReturnsAList(t *testing.T) {
	bodies := []string{
		`{"status":"success","fichas":{"id":"A1"}}`,
		`{"status":"success","fichas":null}`,
		`{"status":"success","fichas":"A1,B2"}`,
		`{"status":"success"}`,
		`[]`,
	}

	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			srv, _ := newBackend(t, func(r chi.Router) {
				r.Get("/api/fichas", func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					_, _ = w.Write([]byte(body))
				})
			})
			c := newTestClient(srv)

			got, err := c.GetAllFichas(context.Background())
			require.ErrorIs(t, err, ErrMalformedResponse)
			assert.Nil(t, got)
		})
	}
}

func TestSearchFichas_SendsOnlyNonEmptyParams(t *testing.T) {
	srv, rec := newBackend(t, func(r chi.Router) {
		r.Get("/api/buscar/fichas", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"status": "success", "fichas": []any{}})
		})
	})
	c := newTestClient(srv)

	got, err := c.SearchFichas(context.Background(), "ana", "")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)

	q := rec.last().Query
	assert.Equal(t, "ana", q.Get("nombre"))
	assert.False(t, q.Has("apellido"))
}

func TestGetFicha(t *testing.T) {
	srv, _ := newBackend(t, func(r chi.Router) {
		r.Get("/api/fichas/{id}", func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if id != "A1" {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "404 Not Found: Ficha médica no encontrada"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"status": "success", "ficha": fichaJSON(id, "Ana")})
		})
	})
	c := newTestClient(srv)

	f, err := c.GetFicha(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, "Ana Pérez", f.FullName())

	_, err = c.GetFicha(context.Background(), "ZZ")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateFicha_ReturnsQRURL(t *testing.T) {
	srv, _ := newBackend(t, func(r chi.Router) {
		r.Post("/api/fichas", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusCreated, map[string]any{
				"status":  "success",
				"message": "Ficha médica registrada con éxito",
				"ficha":   fichaJSON("NEW123", "Ana"),
				"qr_url":  "https://motosegura.online/fichas/NEW123",
			})
		})
	})
	c := newTestClient(srv)

	created, err := c.CreateFicha(context.Background(), models.Ficha{Nombre: "Ana"})
	require.NoError(t, err)
	assert.Equal(t, models.ID("NEW123"), created.Ficha.ID)
	assert.Equal(t, "https://motosegura.online/fichas/NEW123", created.QRURL)
}

func TestUpdateFicha_SendsCredentialWhenGiven(t *testing.T) {
	srv, rec := newBackend(t, func(r chi.Router) {
		r.Put("/api/fichas/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"status": "success", "ficha": fichaJSON(chi.URLParam(r, "id"), "Ana")})
		})
	})
	c := newTestClient(srv)

	_, err := c.UpdateFicha(context.Background(), "A1", models.Ficha{Nombre: "Ana"}, "")
	require.NoError(t, err)
	assert.Empty(t, rec.last().Header.Get(common.APIKeyHeaderName))

	_, err = c.UpdateFicha(context.Background(), "A1", models.Ficha{Nombre: "Ana"}, "key-1")
	require.NoError(t, err)
	assert.Equal(t, "key-1", rec.last().Header.Get(common.APIKeyHeaderName))
}

func TestDeleteFicha_WithoutCredentialMakesNoCall(t *testing.T) {
	srv, rec := newBackend(t, func(r chi.Router) {
		r.Delete("/api/fichas/{id}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
		})
	})
	c := newTestClient(srv)

	err := c.DeleteFicha(context.Background(), "A1", "")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, 0, rec.total())

	err = c.DeleteMoto(context.Background(), "7", "")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 0, rec.total())
}

func TestDeleteFicha_SendsAPIKey(t *testing.T) {
	srv, rec := newBackend(t, func(r chi.Router) {
		r.Delete("/api/fichas/{id}", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get(common.APIKeyHeaderName) != "secret" {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "API key inválida o faltante"})
				return
			}
			writeJSON(w, http.StatusOK, map[string]any{"status": "success", "ficha": fichaJSON(chi.URLParam(r, "id"), "Ana")})
		})
	})
	c := newTestClient(srv)

	require.NoError(t, c.DeleteFicha(context.Background(), "A1", "secret"))
	assert.Equal(t, 1, rec.count(http.MethodDelete, "/api/fichas/A1"))

	err := c.DeleteFicha(context.Background(), "A1", "wrong")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, http.StatusForbidden, StatusOf(err))
}

func TestUploadPhoto_SendsMultipartFile(t *testing.T) {
	var gotName, gotBody string
	srv, _ := newBackend(t, func(r chi.Router) {
		r.Post("/api/upload_photo/{id}", func(w http.ResponseWriter, r *http.Request) {
			f, hdr, err := r.FormFile("file")
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"status": "error", "message": "No se envió ningún archivo"})
				return
			}
			defer f.Close()
			b, _ := io.ReadAll(f)
			gotName, gotBody = hdr.Filename, string(b)

			id := chi.URLParam(r, "id")
			writeJSON(w, http.StatusOK, map[string]any{
				"status":   "success",
				"foto_url": id + ".jpg",
				"ficha":    fichaJSON(id, "Ana"),
			})
		})
	})
	c := newTestClient(srv)

	res, err := c.UploadPhoto(context.Background(), "A1", "me.jpg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "A1.jpg", res.FotoURL)
	require.NotNil(t, res.Ficha)
	assert.Equal(t, "me.jpg", gotName)
	assert.Equal(t, "jpeg-bytes", gotBody)
}

func TestDownloadQRCode(t *testing.T) {
	png := []byte{0x89, 'P', 'N', 'G'}
	srv, _ := newBackend(t, func(r chi.Router) {
		r.Get("/api/qr/{id}", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "image/png")
			_, _ = w.Write(png)
		})
	})
	c := newTestClient(srv)

	got, err := c.DownloadQRCode(context.Background(), "A1")
	require.NoError(t, err)
	assert.Equal(t, png, got)
}

func TestURLHelpers(t *testing.T) {
	c := NewRESTClient(WithBaseURL("https://api.example.test/"))

	assert.Equal(t, "https://api.example.test/api/qr/A1", c.QRCodeURL("A1"))
	assert.Equal(t, "https://api.example.test/api/qr/a%2Fb", c.QRCodeURL("a/b"))

	assert.Empty(t, c.PhotoURL(models.Ficha{FotoURL: models.DefaultPhoto}))
	assert.Empty(t, c.PhotoURL(models.Ficha{}))
	assert.Equal(t, "https://api.example.test/uploads/A1.jpg", c.PhotoURL(models.Ficha{FotoURL: "A1.jpg"}))
}
