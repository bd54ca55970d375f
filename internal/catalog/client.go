package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Fetcher retrieves the records behind a fully built query URL.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]Record, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

var (
	// ErrTransport covers network failures and non-success statuses.
	ErrTransport = errors.New("transport")
	// ErrDecode covers malformed or unexpected response bodies.
	ErrDecode = errors.New("decode")
)

const (
	// DefaultEndpoint is the Hacker News search API; the term is appended.
	DefaultEndpoint  = "https://hn.algolia.com/api/v1/search?query="
	defaultUserAgent = "stories/0.1"
	requestTimeout   = 5 * time.Second
	maxBodyBytes     = 8 << 20
)

// Client talks to a catalog search API over HTTP.
type Client struct {
	http      *http.Client
	schema    Schema
	userAgent string
}

// NewClient builds a Client decoding responses with schema. A zero timeout
// uses the default.
func NewClient(schema Schema, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = requestTimeout
	}
	return &Client{
		http: &http.Client{
			Timeout: timeout,
		},
		schema:    schema,
		userAgent: defaultUserAgent,
	}
}

// Schema returns the schema the client decodes with.
func (c *Client) Schema() Schema {
	return c.schema
}

// Fetch performs a GET against rawURL and decodes the result records.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]Record, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: create request: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: execute request: %w", ErrTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: api %s returned status %d", ErrTransport, req.URL.Path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read response: %w", ErrTransport, err)
	}
	records, err := c.schema.Decode(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrDecode, err)
	}
	return records, nil
}

// Decode turns a response body into records. Bodies may be a bare JSON
// array or, when the schema names an envelope, an object holding the array.
func (s Schema) Decode(body []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	if trimmed[0] == '{' {
		if s.Envelope == "" {
			return nil, fmt.Errorf("expected array, got object")
		}
		var envelope map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, err
		}
		inner, ok := envelope[s.Envelope]
		if !ok {
			return nil, fmt.Errorf("missing %q in response", s.Envelope)
		}
		trimmed = bytes.TrimSpace(inner)
	}

	decoder := json.NewDecoder(bytes.NewReader(trimmed))
	decoder.UseNumber()
	var raw []map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return nil, err
	}
	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("unexpected data after results")
	}
	// A JSON null decodes to a nil slice; treat it like an empty result.
	records := make([]Record, 0, len(raw))
	for _, fields := range raw {
		records = append(records, s.recordFrom(fields))
	}
	return records, nil
}

// QueryURL derives the query URL for term: the endpoint followed by the
// escaped term.
func QueryURL(endpoint, term string) string {
	return endpoint + url.QueryEscape(term)
}

// ParseEndpoint validates an endpoint and fills in a missing scheme. Unlike
// a base URL the query string is kept, since terms are appended verbatim.
func ParseEndpoint(endpoint string) (string, error) {
	trimmed := strings.TrimSpace(endpoint)
	if trimmed == "" {
		return DefaultEndpoint, nil
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("endpoint %q: unsupported scheme %q", endpoint, u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("endpoint %q: missing host", endpoint)
	}
	return trimmed, nil
}
