package client

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bulkBackend(t *testing.T, failing map[string]int) (*RESTClient, *recorder) {
	t.Helper()
	srv, rec := newBackend(t, func(r chi.Router) {
		del := func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, "id")
			if status, ok := failing[id]; ok {
				writeJSON(w, status, map[string]string{"error": "cannot delete " + id})
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
		}
		r.Delete("/api/fichas/{id}", del)
		r.Delete("/api/motos/{id}", del)
	})
	return newTestClient(srv), rec
}

func TestBulkDelete_PartitionsOutcomes(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		failing map[string]int
		want    BulkStatus
	}{
		{"none fail", []string{"a", "b", "c"}, nil, BulkSuccess},
		{"one fails", []string{"a", "b", "c"}, map[string]int{"b": http.StatusNotFound}, BulkPartial},
		{"most fail", []string{"a", "b", "c", "d"}, map[string]int{"a": 500, "c": 404, "d": 403}, BulkPartial},
		{"all fail", []string{"a", "b"}, map[string]int{"a": 500, "b": 404}, BulkFailed},
		{"empty batch", []string{}, nil, BulkSuccess},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := bulkBackend(t, tt.failing)

			res, err := c.BulkDeleteFichas(context.Background(), tt.ids, "secret")
			require.NoError(t, err)

			n, m := len(tt.ids), len(tt.failing)
			assert.Equal(t, n-m, res.SuccessCount)
			assert.Len(t, res.Failures, m)
			assert.Equal(t, tt.want, res.Status)
			assert.Equal(t, n, rec.total(), "every id is attempted")

			var wantFailed []string
			for _, id := range tt.ids {
				if status, ok := tt.failing[id]; ok {
					wantFailed = append(wantFailed, id)
					f := res.Failures[len(wantFailed)-1]
					assert.Equal(t, id, f.ID)
					assert.Equal(t, status, f.Status)
				}
			}
			if wantFailed == nil {
				wantFailed = []string{}
			}
			assert.Equal(t, wantFailed, res.FailedIDs())
		})
	}
}

func TestBulkDelete_FailureKinds(t *testing.T) {
	c, _ := bulkBackend(t, map[string]int{"7": http.StatusNotFound, "8": http.StatusForbidden})

	res, err := c.BulkDeleteMotos(context.Background(), []string{"6", "7", "8"}, "secret")
	require.NoError(t, err)
	require.Len(t, res.Failures, 2)
	assert.Equal(t, KindNotFound, res.Failures[0].Kind)
	assert.Equal(t, KindUnauthorized, res.Failures[1].Kind)
	assert.Equal(t, BulkPartial, res.Status)
}

func TestBulkDelete_MissingCredentialMakesNoCalls(t *testing.T) {
	c, rec := bulkBackend(t, nil)

	res, err := c.BulkDeleteFichas(context.Background(), []string{"a", "b"}, "")
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Nil(t, res)
	assert.Equal(t, 0, rec.total())
}

func TestBulkDelete_WaitsForEveryCall(t *testing.T) {
	ids := make([]string, 25)
	failing := map[string]int{}
	for i := range ids {
		ids[i] = fmt.Sprintf("id-%02d", i)
		if i%3 == 0 {
			failing[ids[i]] = http.StatusInternalServerError
		}
	}
	c, rec := bulkBackend(t, failing)

	res, err := c.BulkDeleteFichas(context.Background(), ids, "secret")
	require.NoError(t, err)
	assert.Equal(t, len(ids), rec.total())
	assert.Equal(t, len(ids)-len(failing), res.SuccessCount)
	assert.Equal(t, BulkPartial, res.Status)
}
