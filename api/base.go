package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// Default client settings
const (
	DefaultTimeout     = 30 * time.Second
	DefaultRetryDelay  = 1 * time.Second
	DefaultMaxDelay    = 10 * time.Second
	DefaultBackoffMult = 2.0
)

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Recorder receives one observation per Send. outcome is "ok" or the
// ErrorKind of the failure.
type Recorder interface {
	ObserveRequest(endpoint, outcome string, duration time.Duration)
}

// Client sends requests to a node API. Its fields are fixed after NewClient,
// so a Client is safe for concurrent use.
type Client struct {
	config      BlockchainConfig
	httpClient  Doer
	timeout     time.Duration
	maxRetries  int
	retryDelay  time.Duration
	maxDelay    time.Duration
	backoffMult float64
	logger      *slog.Logger
	recorder    Recorder
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the transport. The transport's own timeout applies.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.httpClient = doer
	}
}

// WithTimeout sets the timeout of the default transport.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithMaxRetries sets how many times a transport failure is retried. The default is 0.
func WithMaxRetries(n int) Option {
	return func(c *Client) {
		if n >= 0 {
			c.maxRetries = n
		}
	}
}

// WithRetryDelay sets the delay before the first retry.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Client) {
		c.retryDelay = d
	}
}

// WithMaxDelay caps the backoff between retries.
func WithMaxDelay(d time.Duration) Option {
	return func(c *Client) {
		c.maxDelay = d
	}
}

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRecorder sets a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(c *Client) {
		c.recorder = r
	}
}

// NewClient creates a client bound to config.
func NewClient(config BlockchainConfig, opts ...Option) *Client {
	c := &Client{
		config:      config,
		timeout:     DefaultTimeout,
		retryDelay:  DefaultRetryDelay,
		maxDelay:    DefaultMaxDelay,
		backoffMult: DefaultBackoffMult,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Config returns the configuration the client was built with.
func (c *Client) Config() BlockchainConfig {
	return c.config
}

// URLFor returns the full URL of ep, or an *Error of kind KindInvalidURL.
func (c *Client) URLFor(ep Endpoint) (*url.URL, error) {
	u, err := c.resolve(ep)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// resolve concatenates the base URL and the endpoint path. The result must be
// an absolute http(s) URL.
func (c *Client) resolve(ep Endpoint) (*url.URL, *Error) {
	raw := c.config.RPCURL + ep.Path()
	u, err := url.Parse(raw)
	if err != nil {
		return nil, newError(KindInvalidURL, ep, raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, newError(KindInvalidURL, ep, raw, fmt.Errorf("unsupported scheme %q", u.Scheme))
	}
	if u.Host == "" {
		return nil, newError(KindInvalidURL, ep, raw, fmt.Errorf("missing host"))
	}
	return u, nil
}

// Send posts req to the node and waits for the answer. It never panics on a
// failed request; every failure is reported through the returned Response.
func (c *Client) Send(ctx context.Context, req Request) Response {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()
	resp := c.send(ctx, req)
	elapsed := time.Since(start)

	outcome := "ok"
	if f := resp.Failure(); f != nil {
		outcome = f.Kind.String()
		c.logger.Warn("Request failed", "endpoint", req.Endpoint.Name(), "kind", outcome, "status", resp.StatusCode, "error", f.Error())
	} else {
		c.logger.Debug("Request complete", "endpoint", req.Endpoint.Name(), "status", resp.StatusCode, "duration", elapsed)
	}
	if c.recorder != nil {
		c.recorder.ObserveRequest(req.Endpoint.Name(), outcome, elapsed)
	}
	return resp
}

// SendAsync runs Send on a new goroutine and hands the response to callback
// exactly once.
func (c *Client) SendAsync(ctx context.Context, req Request, callback func(Response)) {
	go func() {
		resp := c.Send(ctx, req)
		if callback != nil {
			callback(resp)
		}
	}()
}

func (c *Client) send(ctx context.Context, req Request) Response {
	ep := req.Endpoint
	fail := func(kind ErrorKind, rawURL string, status int, cause error) Response {
		return Response{
			Result:     Fail[Value](newError(kind, ep, rawURL, cause)),
			Endpoint:   ep,
			StatusCode: status,
		}
	}

	u, urlErr := c.resolve(ep)
	if urlErr != nil {
		return Response{Result: Fail[Value](urlErr), Endpoint: ep}
	}
	target := u.String()

	body, err := encodeParams(req.Params)
	if err != nil {
		return fail(KindEncode, target, 0, err)
	}

	c.logger.Debug("Sending request", "endpoint", ep.Name(), "url", target)

	var (
		status  int
		data    []byte
		lastErr error
	)
	delay := c.retryDelay
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return fail(KindTransport, target, 0, ctx.Err())
			case <-time.After(delay):
			}
			delay = time.Duration(float64(delay) * c.backoffMult)
			if delay > c.maxDelay {
				delay = c.maxDelay
			}
			c.logger.Debug("Retrying request", "endpoint", ep.Name(), "attempt", attempt, "error", lastErr)
		}

		status, data, lastErr = c.roundTrip(ctx, target, body)
		if lastErr == nil {
			break
		}
	}
	if lastErr != nil {
		return fail(KindTransport, target, status, lastErr)
	}

	if len(data) == 0 {
		return fail(KindNoData, target, status, nil)
	}

	value, err := ParseValue(data)
	if err != nil {
		return fail(KindDecode, target, status, err)
	}

	return Response{Result: Ok(value), Endpoint: ep, StatusCode: status}
}

// roundTrip sends one POST and reads the whole body.
func (c *Client) roundTrip(ctx context.Context, target string, body []byte) (int, []byte, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

// encodeParams serializes params as a JSON object. nil params encode as {}.
func encodeParams(params Params) ([]byte, error) {
	if params == nil {
		params = Params{}
	}
	data, err := json.Marshal(map[string]Value(params))
	if err != nil {
		return nil, err
	}
	return data, nil
}
