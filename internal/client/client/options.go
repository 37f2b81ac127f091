package client

import (
	"net/http"
	"time"

	"github.com/manuelmariscal/coursera/internal/logging"
)

const (
	DefaultBaseURL   = "https://api.motosegura.online"
	DefaultUserAgent = "motosegura-cli/1.0 (Go)"

	MobileTimeout  = 30 * time.Second
	DesktopTimeout = 15 * time.Second
)

// Option configures a RESTClient.
type Option func(*RESTClient)

// WithBaseURL sets the backend origin. Empty values are ignored.
func WithBaseURL(u string) Option {
	return func(c *RESTClient) {
		if u != "" {
			c.baseURL = u
		}
	}
}

// WithUserAgent sets the User-Agent, which also drives mobile detection.
func WithUserAgent(ua string) Option {
	return func(c *RESTClient) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

func WithLogger(l logging.Logger) Option {
	return func(c *RESTClient) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithCredentials sets the source of the bearer token read on every request.
func WithCredentials(src CredentialSource) Option {
	return func(c *RESTClient) {
		c.creds = src
	}
}

// WithClock overrides the time source used for retry-after computation.
func WithClock(now func() time.Time) Option {
	return func(c *RESTClient) {
		if now != nil {
			c.now = now
		}
	}
}

// WithTransport sets the round tripper used by the primary client.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *RESTClient) {
		c.transport = rt
	}
}

// WithFallbackHTTPClient sets the raw client used for the mobile fallback
// and direct health probes.
func WithFallbackHTTPClient(hc *http.Client) Option {
	return func(c *RESTClient) {
		if hc != nil {
			c.raw = hc
		}
	}
}
