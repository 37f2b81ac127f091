// Package netx holds plain net/http helpers for requests that must bypass
// the configured API client.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// Get performs a GET to url with the given headers and returns at most
// limit bytes of the body together with the status code. A non-2xx status
// is not an error; only transport and read failures are.
func Get(ctx context.Context, hc *http.Client, url string, header http.Header, limit int64) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
