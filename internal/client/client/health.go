package client

import (
	"context"
	"net/http"
)

// CheckHealth calls GET /health.
func (c *RESTClient) CheckHealth(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, pathHealth)
}

// GetAPIStatus calls GET /.
func (c *RESTClient) GetAPIStatus(ctx context.Context) (map[string]any, error) {
	return c.getMap(ctx, pathRoot)
}

// ProbeHealth calls GET /health through the raw client with the mobile
// marker header, bypassing the configured middleware.
func (c *RESTClient) ProbeHealth(ctx context.Context) (map[string]any, error) {
	body, status, err := c.rawGet(ctx, pathHealth, nil)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, c.classify(status, body, http.Header{})
	}
	return decodeMap(body)
}

func (c *RESTClient) getMap(ctx context.Context, path string) (map[string]any, error) {
	raw, err := c.execute(ctx, call{method: http.MethodGet, path: path})
	if err != nil {
		return nil, err
	}
	return decodeMap(raw)
}
