package openai

import (
	"context"

	"github.com/maxbolgarin/abstract"
	"github.com/maxbolgarin/cliex"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/logze/v2"
	"golang.org/x/oauth2"
)

// Client executes requests against the API. It is read-only after New
// and can be shared between goroutines.
type Client struct {
	cli     *cliex.HTTP
	tokens  oauth2.TokenSource
	baseURL string
	org     string
	log     logze.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithTokenSource replaces the static API key with a token source.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

// WithLogger sets the logger used for per-call debug records.
func WithLogger(log logze.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// New creates a new API client
func New(cfg Config, opts ...Option) (*Client, error) {
	if err := cfg.PrepareAndValidate(); err != nil {
		return nil, errm.Wrap(err, "validate config")
	}

	c := &Client{
		baseURL: cfg.BaseURL,
		org:     cfg.Organization,
		log:     logze.With("component", "openai"),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.tokens == nil {
		if cfg.APIKey == "" {
			return nil, errm.New("API key is required")
		}
		c.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.APIKey})
	}

	cli, err := cliex.NewWithConfig(cliex.Config{
		BaseURL:        cfg.BaseURL,
		UserAgent:      cfg.UserAgent,
		ProxyAddress:   cfg.ProxyURL,
		RequestTimeout: cfg.Timeout,
	})
	if err != nil {
		return nil, errm.Wrap(err, "failed to create HTTP client")
	}
	// failures are reported to the caller as is
	cli.C().SetRetryCount(0)
	c.cli = cli

	return c, nil
}

// BaseURL returns the address every operation is resolved against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Execute sends req and returns its typed response.
//
// Errors are one of:
//   - *TransportError: no HTTP reply was received, or the token source failed;
//   - *StatusError: the reply status is not 2xx, the body is not decoded;
//   - *DecodeError: a 2xx reply does not match the response shape.
func Execute[T any](ctx context.Context, c *Client, req Request[T]) (T, error) {
	var zero T

	method := req.Method()
	url := req.URL(c.baseURL)

	// a refreshing token source fails for the same reasons the call would
	token, err := c.tokens.Token()
	if err != nil {
		return zero, &TransportError{Method: method, URL: url, Err: errm.Wrap(err, "failed to get token")}
	}

	r := c.cli.C().R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetAuthToken(token.AccessToken)
	if c.org != "" {
		r.SetHeader("OpenAI-Organization", c.org)
	}

	if payload := req.Payload(); payload != nil && hasBody(method) {
		body, err := EncodeJSON(payload)
		if err != nil {
			return zero, err
		}
		r.SetHeader("Content-Type", "application/json").SetBody(body)
	}

	timer := abstract.StartTimer()
	resp, err := r.Execute(method, url)

	// response hooks of the transport may return an error together with a reply,
	// so the status decides, not the error
	if resp == nil || resp.StatusCode() == 0 {
		if err == nil {
			err = errm.New("no response")
		}
		c.log.Debug("request failed", "method", method, "url", url, "error", err, "elapsed", timer.ElapsedTime().String())
		return zero, &TransportError{Method: method, URL: url, Err: err}
	}
	c.log.Debug("request done", "method", method, "url", url, "status", resp.StatusCode(), "elapsed", timer.ElapsedTime().String())

	body := resp.Body()
	if !resp.IsSuccess() {
		return zero, newStatusError(method, url, resp.StatusCode(), body)
	}
	if err != nil {
		return zero, &TransportError{Method: method, URL: url, Err: err}
	}

	out, err := req.Decode(body)
	if err != nil {
		return zero, &DecodeError{URL: url, Body: body, Err: err}
	}

	return out, nil
}

// ExecuteAsync runs Execute on its own goroutine. The channel receives exactly one
// result and is closed afterwards.
func ExecuteAsync[T any](ctx context.Context, c *Client, req Request[T]) <-chan Result[T] {
	out := make(chan Result[T], 1)
	go func() {
		defer close(out)
		resp, err := Execute(ctx, c, req)
		out <- Result[T]{Response: resp, Err: err}
	}()
	return out
}

func newStatusError(method, url string, code int, body []byte) *StatusError {
	out := &StatusError{
		Method:     method,
		URL:        url,
		StatusCode: code,
		Body:       body,
	}
	var envelope struct {
		Error *APIError `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil {
		out.API = envelope.Error
	}
	return out
}
