// Package hosted talks to a hosted Postgres REST endpoint (PostgREST dialect)
// for layout settings and products.
package hosted

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

// ErrMissingURL is returned by NewClient when no base url is configured.
var ErrMissingURL = errors.New("hosted: base url is required")

// Config configures the REST client.
type Config struct {
	BaseURL string
	APIKey  string
	// BearerToken overrides APIKey in the Authorization header, used when
	// requests run on behalf of a signed-in user.
	BearerToken string
	HTTPClient  *http.Client
}

// Client issues REST calls under /rest/v1.
type Client struct {
	baseURL string
	apiKey  string
	bearer  string
	client  *http.Client
}

// RemoteError is a non-2xx response.
type RemoteError struct {
	Status int
	Body   string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("hosted: remote error %d: %s", e.Status, e.Body)
}

// NewClient builds a client for cfg.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrMissingURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	bearer := cfg.BearerToken
	if bearer == "" {
		bearer = cfg.APIKey
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		bearer:  bearer,
		client:  httpClient,
	}, nil
}

// WithBearer returns a copy of c that authenticates as token.
func (c *Client) WithBearer(token string) *Client {
	clone := *c
	clone.bearer = token
	return &clone
}

type request struct {
	method string
	table  string
	query  url.Values
	prefer string
	body   any
}

func (c *Client) do(ctx context.Context, r request, target any) error {
	var body io.Reader
	if r.body != nil {
		raw, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("hosted: encode payload: %w", err)
		}
		body = bytes.NewReader(raw)
	}
	endpoint := c.baseURL + "/rest/v1/" + r.table
	if len(r.query) > 0 {
		endpoint += "?" + r.query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("hosted: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
	}
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("hosted: http request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		var buf bytes.Buffer
		_, _ = buf.ReadFrom(resp.Body)
		return &RemoteError{Status: resp.StatusCode, Body: buf.String()}
	}
	if target == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("hosted: decode response: %w", err)
	}
	return nil
}

func eq(value string) string {
	return "eq." + value
}

// inList renders a PostgREST in.(...) filter, quoting every value.
func inList(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
	}
	return "in.(" + strings.Join(quoted, ",") + ")"
}
