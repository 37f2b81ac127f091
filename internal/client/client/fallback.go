package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/manuelmariscal/coursera/internal/common"
	"github.com/manuelmariscal/coursera/internal/netx"
)

const maxRawBody = 10 << 20

// listWithFallback fetches a collection through the primary client. On a
// mobile device a failed call (other than a rate limit) is retried exactly
// once through the raw client; if that also fails the original error is
// returned.
func listWithFallback[T any](ctx context.Context, c *RESTClient, path string, query url.Values, key string) ([]T, error) {
	items, err := primaryList[T](ctx, c, path, query, key)
	if err == nil || !c.IsMobileDevice() || errors.Is(err, ErrRateLimited) {
		return items, err
	}

	c.logger.Warn(ctx, "primary request failed, trying mobile fallback", "path", path, "error", err)

	fb, fbErr := fallbackList[T](ctx, c, path, query, key)
	if fbErr != nil {
		c.logger.Warn(ctx, "mobile fallback failed", "path", path, "error", fbErr)
		return nil, err
	}
	return fb, nil
}

func primaryList[T any](ctx context.Context, c *RESTClient, path string, query url.Values, key string) ([]T, error) {
	raw, err := c.execute(ctx, call{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return nil, err
	}
	return decodeList[T](raw, key)
}

// fallbackList accepts only a 2xx {status: "success", <key>: [...]} body.
func fallbackList[T any](ctx context.Context, c *RESTClient, path string, query url.Values, key string) ([]T, error) {
	body, status, err := c.rawGet(ctx, path, query)
	if err != nil {
		return nil, err
	}
	if status < 200 || status > 299 {
		return nil, c.classify(status, body, http.Header{})
	}

	env, err := decodeObject(body)
	if err != nil {
		return nil, err
	}
	if s := envelopeStatus(env); s != statusSuccess {
		return nil, malformed("fallback status %q", s)
	}
	return decodeList[T](body, key)
}

// rawGet issues a GET outside the resty middleware, marked as coming from a
// mobile device.
func (c *RESTClient) rawGet(ctx context.Context, path string, query url.Values) ([]byte, int, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	h := http.Header{}
	h.Set(common.MobileDeviceHeaderName, "true")
	h.Set("Accept", "application/json")
	h.Set("User-Agent", c.userAgent)
	if tok := c.token(); tok != "" {
		h.Set(common.AuthorizationHeaderName, "Bearer "+tok)
	}

	body, status, err := netx.Get(ctx, c.raw, u, h, maxRawBody)
	if err != nil {
		return nil, status, &APIError{Kind: KindNetworkUnreachable, Status: status, Message: "no response from server", Err: err}
	}
	return body, status, nil
}
