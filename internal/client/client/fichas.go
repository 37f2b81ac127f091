package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/manuelmariscal/coursera/internal/client/models"
	"github.com/manuelmariscal/coursera/internal/common"
)

func (c *RESTClient) GetAllFichas(ctx context.Context) ([]models.Ficha, error) {
	return listWithFallback[models.Ficha](ctx, c, pathFichas, nil, "fichas")
}

func (c *RESTClient) SearchFichas(ctx context.Context, nombre, apellido string) ([]models.Ficha, error) {
	q := searchQuery("nombre", nombre, "apellido", apellido)
	return listWithFallback[models.Ficha](ctx, c, pathSearchFichas, q, "fichas")
}

func (c *RESTClient) GetFicha(ctx context.Context, id string) (*models.Ficha, error) {
	raw, err := c.execute(ctx, call{method: http.MethodGet, path: itemPath(pathFichas, id)})
	if err != nil {
		return nil, err
	}
	return decodeItem[models.Ficha](raw, "ficha")
}

func (c *RESTClient) CreateFicha(ctx context.Context, f models.Ficha) (*models.CreatedFicha, error) {
	raw, err := c.execute(ctx, call{method: http.MethodPost, path: pathFichas, body: f})
	if err != nil {
		return nil, err
	}

	ficha, err := decodeItem[models.Ficha](raw, "ficha")
	if err != nil {
		return nil, err
	}

	created := &models.CreatedFicha{Ficha: *ficha}
	var extra struct {
		QRURL string `json:"qr_url"`
	}
	if json.Unmarshal(raw, &extra) == nil {
		created.QRURL = extra.QRURL
	}
	return created, nil
}

// UpdateFicha sends the record; credential may be empty for photo-only updates.
func (c *RESTClient) UpdateFicha(ctx context.Context, id string, f models.Ficha, credential string) (*models.Ficha, error) {
	cl := call{method: http.MethodPut, path: itemPath(pathFichas, id), body: f}
	if credential != "" {
		cl.headers = map[string]string{common.APIKeyHeaderName: credential}
	}

	raw, err := c.execute(ctx, cl)
	if err != nil {
		return nil, err
	}
	return decodeItem[models.Ficha](raw, "ficha")
}

// DeleteFicha requires a credential; an empty one fails without a request.
func (c *RESTClient) DeleteFicha(ctx context.Context, id, credential string) error {
	return c.deleteWithCredential(ctx, itemPath(pathFichas, id), credential)
}

func (c *RESTClient) BulkDeleteFichas(ctx context.Context, ids []string, credential string) (*BulkResult, error) {
	return bulkDelete(ctx, ids, credential, c.DeleteFicha)
}

// QRCodeURL is the address of the QR image for a record.
func (c *RESTClient) QRCodeURL(id string) string {
	return c.baseURL + itemPath(pathQR, id)
}

// DownloadQRCode fetches the PNG behind QRCodeURL.
func (c *RESTClient) DownloadQRCode(ctx context.Context, id string) ([]byte, error) {
	raw, err := c.execute(ctx, call{
		method:  http.MethodGet,
		path:    itemPath(pathQR, id),
		headers: map[string]string{"Accept": "image/png"},
	})
	if err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, malformed("empty QR image")
	}
	return raw, nil
}

// UploadPhoto posts r as the multipart "file" field.
func (c *RESTClient) UploadPhoto(ctx context.Context, id, filename string, r io.Reader) (*models.PhotoUpload, error) {
	raw, err := c.execute(ctx, call{
		method: http.MethodPost,
		path:   itemPath(pathUploadPhoto, id),
		upload: &fileUpload{field: "file", name: filename, r: r},
	})
	if err != nil {
		return nil, err
	}

	if _, err := decodeObject(raw); err != nil {
		return nil, err
	}
	var out models.PhotoUpload
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &APIError{Kind: KindMalformedResponse, Message: "decode upload response", Err: err}
	}
	if out.FotoURL == "" {
		return nil, malformed("upload response lacks foto_url")
	}
	return &out, nil
}

// PhotoURL resolves a record's photo, or "" for the default placeholder.
func (c *RESTClient) PhotoURL(f models.Ficha) string {
	if f.FotoURL == "" || f.FotoURL == models.DefaultPhoto {
		return ""
	}
	return c.baseURL + itemPath(pathUploads, f.FotoURL)
}

func (c *RESTClient) deleteWithCredential(ctx context.Context, path, credential string) error {
	if credential == "" {
		return errMissingCredential()
	}

	raw, err := c.execute(ctx, call{
		method:  http.MethodDelete,
		path:    path,
		headers: map[string]string{common.APIKeyHeaderName: credential},
	})
	if err != nil {
		return err
	}
	return checkAck(raw)
}

func errMissingCredential() *APIError {
	return &APIError{Kind: KindUnauthorized, Message: "delete credential required"}
}
