package client

import (
	"context"
	"net/http"

	"github.com/manuelmariscal/coursera/internal/client/models"
)

func (c *RESTClient) GetAllMotos(ctx context.Context) ([]models.Moto, error) {
	return listWithFallback[models.Moto](ctx, c, pathMotos, nil, "motos")
}

func (c *RESTClient) SearchMotos(ctx context.Context, placa, propietario string) ([]models.Moto, error) {
	q := searchQuery("placa", placa, "propietario", propietario)
	return listWithFallback[models.Moto](ctx, c, pathSearchMotos, q, "motos")
}

func (c *RESTClient) GetMoto(ctx context.Context, id string) (*models.Moto, error) {
	raw, err := c.execute(ctx, call{method: http.MethodGet, path: itemPath(pathMotos, id)})
	if err != nil {
		return nil, err
	}
	return decodeItem[models.Moto](raw, "moto")
}

func (c *RESTClient) CreateMoto(ctx context.Context, m models.Moto) (*models.Moto, error) {
	raw, err := c.execute(ctx, call{method: http.MethodPost, path: pathMotos, body: m})
	if err != nil {
		return nil, err
	}
	return decodeItem[models.Moto](raw, "moto")
}

func (c *RESTClient) UpdateMoto(ctx context.Context, id string, m models.Moto) (*models.Moto, error) {
	raw, err := c.execute(ctx, call{method: http.MethodPut, path: itemPath(pathMotos, id), body: m})
	if err != nil {
		return nil, err
	}
	return decodeItem[models.Moto](raw, "moto")
}

func (c *RESTClient) DeleteMoto(ctx context.Context, id, credential string) error {
	return c.deleteWithCredential(ctx, itemPath(pathMotos, id), credential)
}

func (c *RESTClient) BulkDeleteMotos(ctx context.Context, ids []string, credential string) (*BulkResult, error) {
	return bulkDelete(ctx, ids, credential, c.DeleteMoto)
}
