package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/manuelmariscal/coursera/internal/common"
	"github.com/manuelmariscal/coursera/internal/logging"
)

// RESTClient talks to the MotoSegura backend over HTTP. It is safe for
// concurrent use.
type RESTClient struct {
	baseURL   string
	userAgent string
	logger    logging.Logger
	creds     CredentialSource
	now       func() time.Time
	transport http.RoundTripper

	http *resty.Client
	// raw bypasses the resty middleware; it serves the mobile fallback
	// and direct health probes.
	raw *http.Client
}

var _ Client = (*RESTClient)(nil)

func NewRESTClient(opts ...Option) *RESTClient {
	c := &RESTClient{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		logger:    logging.Discard(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.baseURL = strings.TrimRight(c.baseURL, "/")

	timeout := DesktopTimeout
	if c.IsMobileDevice() {
		timeout = MobileTimeout
	}

	// cookiejar.New only fails on a broken PublicSuffixList.
	jar, _ := cookiejar.New(nil)

	r := resty.New().
		SetBaseURL(c.baseURL).
		SetTimeout(timeout).
		SetCookieJar(jar).
		SetHeader("Accept", "application/json").
		SetLogger(restyLogger{l: c.logger})
	if c.transport != nil {
		r.SetTransport(c.transport)
	}
	r.OnBeforeRequest(c.beforeRequest)
	r.OnAfterResponse(c.afterResponse)
	r.OnError(c.onError)
	c.http = r

	if c.raw == nil {
		c.raw = &http.Client{Timeout: timeout, Jar: jar, Transport: c.transport}
	}

	return c
}

// BaseURL returns the configured backend origin.
func (c *RESTClient) BaseURL() string {
	return c.baseURL
}

// IsMobileDevice reports whether the configured user agent is a mobile one.
func (c *RESTClient) IsMobileDevice() bool {
	return IsMobileUserAgent(c.userAgent)
}

func (c *RESTClient) token() string {
	if c.creds == nil {
		return ""
	}
	return c.creds.Token()
}

func (c *RESTClient) beforeRequest(_ *resty.Client, req *resty.Request) error {
	if tok := c.token(); tok != "" {
		req.SetHeader(common.AuthorizationHeaderName, "Bearer "+tok)
	}
	req.SetHeader(common.RequestIDHeaderName, uuid.NewString())
	req.SetHeader("User-Agent", c.userAgent)
	return nil
}

func (c *RESTClient) afterResponse(_ *resty.Client, resp *resty.Response) error {
	req := resp.Request
	args := []any{
		"method", req.Method,
		"url", req.URL,
		"status", resp.StatusCode(),
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"duration", resp.Time(),
	}
	if resp.IsError() {
		c.logger.Warn(req.Context(), "api response", args...)
	} else {
		c.logger.Debug(req.Context(), "api response", args...)
	}
	return nil
}

func (c *RESTClient) onError(req *resty.Request, err error) {
	c.logger.Error(req.Context(), "api request failed",
		"method", req.Method,
		"url", req.URL,
		"request_id", req.Header.Get(common.RequestIDHeaderName),
		"error", err,
	)
}

type fileUpload struct {
	field string
	name  string
	r     io.Reader
}

type call struct {
	method  string
	path    string
	body    any
	headers map[string]string
	query   url.Values
	upload  *fileUpload
}

// Request issues an arbitrary call and returns the raw 2xx body. Failures
// are classified into *APIError.
func (c *RESTClient) Request(ctx context.Context, method, path string, body any, headers map[string]string) (json.RawMessage, error) {
	raw, err := c.execute(ctx, call{method: method, path: path, body: body, headers: headers})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(raw), nil
}

func (c *RESTClient) execute(ctx context.Context, cl call) ([]byte, error) {
	req := c.http.R().SetContext(ctx)
	if cl.body != nil {
		req.SetBody(cl.body)
	}
	if len(cl.headers) > 0 {
		req.SetHeaders(cl.headers)
	}
	if len(cl.query) > 0 {
		req.SetQueryParamsFromValues(cl.query)
	}
	if cl.upload != nil {
		req.SetFileReader(cl.upload.field, cl.upload.name, cl.upload.r)
	}

	resp, err := req.Execute(cl.method, cl.path)
	if err != nil {
		return nil, &APIError{Kind: KindNetworkUnreachable, Message: "no response from server", Err: err}
	}

	if resp.IsSuccess() {
		return resp.Body(), nil
	}
	return nil, c.classify(resp.StatusCode(), resp.Body(), resp.Header())
}

func (c *RESTClient) classify(status int, body []byte, header http.Header) *APIError {
	e := &APIError{Status: status, Message: errorMessage(body, status)}

	switch {
	case status == http.StatusTooManyRequests:
		e.Kind = KindRateLimited
		e.RetryAfter = RetryAfterSeconds(body, header.Get(common.RetryAfterHeaderName), c.now())
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		e.Kind = KindUnauthorized
	case status == http.StatusNotFound:
		e.Kind = KindNotFound
	case status >= 500:
		e.Kind = KindServerError
	case status >= 400:
		e.Kind = KindInvalidRequest
	default:
		e.Kind = KindMalformedResponse
	}
	return e
}

// errorMessage extracts "error" or "message" from a JSON error body.
func errorMessage(body []byte, status int) string {
	var b struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &b) == nil {
		if b.Error != "" {
			return b.Error
		}
		if b.Message != "" {
			return b.Message
		}
	}
	if t := http.StatusText(status); t != "" {
		return t
	}
	return fmt.Sprintf("HTTP %d", status)
}

type restyLogger struct {
	l logging.Logger
}

func (r restyLogger) Errorf(format string, v ...any) {
	r.l.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (r restyLogger) Warnf(format string, v ...any) {
	r.l.Warn(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (r restyLogger) Debugf(format string, v ...any) {
	r.l.Debug(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}
