package client

import (
	"context"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/ogccite/csw-dgiwg-contract-tests/servicedef"
)

const (
	userAgent       = "csw-dgiwg-contract-tests"
	requestIDHeader = "X-Request-ID"
)

var defaultMediaTypes = []string{servicedef.MediaTypeApplicationXML, servicedef.MediaTypeTextXML}

// CSWClient submits requests to the catalogue service under test. Every request is
// bounded by the timeout given to NewCSWClient; a timeout is reported as an error.
type CSWClient struct {
	http   *resty.Client
	logger *slog.Logger
}

// Response is the captured outcome of one HTTP exchange.
type Response struct {
	Method     string
	URL        string
	RequestID  string
	StatusCode int
	Header     http.Header
	Body       []byte
	Duration   time.Duration
}

// Option customizes a CSWClient.
type Option func(*resty.Client)

// WithHeader adds a header to every request.
func WithHeader(name, value string) Option {
	return func(c *resty.Client) { c.SetHeader(name, value) }
}

// NewCSWClient creates a client whose requests time out after timeout.
func NewCSWClient(timeout time.Duration, logger *slog.Logger, options ...Option) *CSWClient {
	if logger == nil {
		logger = slog.Default()
	}
	rc := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)
	for _, o := range options {
		o(rc)
	}
	return &CSWClient{http: rc, logger: logger}
}

// SubmitPost sends an XML entity to endpoint.
func (c *CSWClient) SubmitPost(ctx context.Context, endpoint string, body []byte, mediaTypes ...string) (*Response, error) {
	req := c.newRequest(ctx, mediaTypes).
		SetHeader("Content-Type", servicedef.MediaTypeApplicationXML).
		SetBody(body)
	return c.execute(req, http.MethodPost, endpoint)
}

// SubmitGet sends a key-value-pair request to endpoint. Trailing "?" or "&"
// characters of capabilities-advertised URIs are ignored.
func (c *CSWClient) SubmitGet(ctx context.Context, endpoint string, params map[string]string, mediaTypes ...string) (*Response, error) {
	req := c.newRequest(ctx, mediaTypes).SetQueryParams(params)
	return c.execute(req, http.MethodGet, strings.TrimRight(endpoint, "?&"))
}

func (c *CSWClient) newRequest(ctx context.Context, mediaTypes []string) *resty.Request {
	if len(mediaTypes) == 0 {
		mediaTypes = defaultMediaTypes
	}
	if ctx == nil {
		ctx = context.Background()
	}
	return c.http.R().
		SetContext(ctx).
		SetHeader("Accept", strings.Join(mediaTypes, ", ")).
		SetHeader(requestIDHeader, uuid.NewString())
}

func (c *CSWClient) execute(req *resty.Request, method, endpoint string) (*Response, error) {
	requestID := req.Header.Get(requestIDHeader)
	c.logger.Debug("sending request", "method", method, "url", endpoint, "requestID", requestID)

	resp, err := req.Execute(method, endpoint)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "url", endpoint, "error", err)
		return nil, fmt.Errorf("%s %s failed: %w", method, endpoint, err)
	}
	ret := &Response{
		Method:     method,
		URL:        endpoint,
		RequestID:  requestID,
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
		Duration:   resp.Time(),
	}
	c.logger.Debug("received response", "method", method, "url", endpoint,
		"status", ret.StatusCode, "bytes", len(ret.Body), "duration", ret.Duration)
	return ret, nil
}

// MediaType returns the media type of the response entity without parameters.
func (r *Response) MediaType() string {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

// IsXML reports whether the response declares an XML media type.
func (r *Response) IsXML() bool {
	mt := r.MediaType()
	return mt == servicedef.MediaTypeApplicationXML || mt == servicedef.MediaTypeTextXML ||
		strings.HasSuffix(mt, "+xml")
}
