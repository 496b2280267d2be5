// Package compare calls a generative-text API to produce a short
// textual comparison of two bikes. The call is best-effort: no retry,
// no caching, and a failure degrades the comparison page rather than
// failing the request.
package compare

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// ErrUpstream is returned when the text-generation service fails,
// times out or produces no usable text. Callers should render the
// page without commentary instead of propagating it as a request
// failure.
var ErrUpstream = errors.New("comparison service unavailable")

// Config holds everything the client needs. It is injected at
// construction time; the client never reads process-wide state.
type Config struct {
	APIKey  string
	Model   string        // e.g. "gemini-1.5-flash"
	BaseURL string        // override for tests; default Gemini endpoint
	Timeout time.Duration // per-call deadline, default 15s
}

const defaultBaseURL = "https://generativelanguage.googleapis.com"

// Client talks to the Gemini generateContent REST endpoint.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient builds a Client with a pooled HTTP transport.
func NewClient(cfg Config) *Client {
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   5 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// wire types for the generateContent request/response
type generateRequest struct {
	Contents []content `json:"contents"`
}
type content struct {
	Parts []part `json:"parts"`
}
type part struct {
	Text string `json:"text"`
}
type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Compare returns free-text commentary on the two bike summaries. Any
// transport failure, non-2xx status, or empty candidate list is
// reported as ErrUpstream; the assistant has no effect on rental data
// so callers may always continue without the text.
func (c *Client) Compare(ctx context.Context, a, b Summary) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: buildPrompt(a, b)}}}},
	})
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.cfg.BaseURL, c.cfg.Model, c.cfg.APIKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: status %s", ErrUpstream, resp.Status)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	for _, cand := range out.Candidates {
		for _, p := range cand.Content.Parts {
			if text := strings.TrimSpace(p.Text); text != "" {
				return text, nil
			}
		}
	}
	return "", fmt.Errorf("%w: empty response", ErrUpstream)
}
