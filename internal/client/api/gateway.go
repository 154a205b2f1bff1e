package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/taskdesk/internal/logging"
	"github.com/google/uuid"
)

const (
	headerRequestID = "X-Request-Id"
	contentTypeJSON = "application/json"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 4 << 20

	defaultTimeout = 15 * time.Second
)

// TokenSource yields the bearer token to attach, if any.
type TokenSource interface {
	Token() (string, bool)
}

type Gateway struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
	logger  logging.Logger
}

type Option func(*Gateway)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) { g.http = c }
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(g *Gateway) { g.http.Timeout = d }
}

func WithLogger(l logging.Logger) Option {
	return func(g *Gateway) { g.logger = l }
}

// New creates a Gateway for baseURL reading credentials from tokens.
func New(baseURL string, tokens TokenSource, opts ...Option) *Gateway {
	g := &Gateway{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: defaultTimeout},
		logger:  logging.Discard(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Get fetches path and decodes the JSON response into out (which may be nil).
func (g *Gateway) Get(ctx context.Context, path string, out any) error {
	return g.do(ctx, http.MethodGet, path, nil, out)
}

// Post sends body as JSON to path and decodes the response into out (which may be nil).
func (g *Gateway) Post(ctx context.Context, path string, body, out any) error {
	return g.do(ctx, http.MethodPost, path, body, out)
}

// Ping probes backend liveness.
func (g *Gateway) Ping(ctx context.Context) error {
	return g.Get(ctx, "/health", nil)
}

func (g *Gateway) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)
	req.Header.Set(headerRequestID, requestID)
	if token, ok := g.tokens.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := g.http.Do(req)
	if err != nil {
		g.logger.Debug(ctx, "api request failed", "method", method, "path", path, "request_id", requestID, logging.KeyError, err)
		return &Error{Message: GenericMessage, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: GenericMessage, Err: err}
	}

	g.logger.Debug(ctx, "api request", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{StatusCode: resp.StatusCode, Message: messageFrom(data)}
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{StatusCode: resp.StatusCode, Message: GenericMessage, Err: fmt.Errorf("decode %s %s: %w", method, path, err)}
	}
	return nil
}
