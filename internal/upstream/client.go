// Package upstream issues HTTP requests against the backend API and
// folds every outcome into a uniform Result envelope. No retries, no
// caching; one call, one result.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shelfside/boardgame-tracker/internal/config"
)

// Result is the tagged outcome of a single upstream call. Either OK is
// true and Data holds the raw JSON body, or OK is false and Kind, Message
// and Status describe what went wrong.
type Result struct {
	OK      bool
	Status  int
	Data    json.RawMessage
	Kind    ErrorKind
	Message string
}

// Client talks to the backend API. The bearer token may be empty, in
// which case requests go out unauthenticated rather than being rejected
// locally.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     zerolog.Logger
}

func New(cfg config.UpstreamConfig, logger zerolog.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.Token,
		http:    &http.Client{Timeout: cfg.Timeout()},
		log:     logger.With().Str("component", "upstream").Logger(),
	}
}

// Call performs one request against the backend. endpoint is a path like
// "/games"; body, when non-nil, is sent as JSON. Network failure, non-2xx
// status and an unparseable body each produce a distinct error kind but
// never an error value or panic; callers inspect the Result.
func (c *Client) Call(ctx context.Context, method, endpoint string, body any) Result {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return failure(KindNetwork, 0, fmt.Sprintf("encode request body: %v", err))
		}
		reader = bytes.NewReader(payload)
	}

	url := c.baseURL + "/" + strings.TrimLeft(endpoint, "/")
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return failure(KindNetwork, 0, fmt.Sprintf("create request: %v", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("endpoint", endpoint).Msg("upstream request failed")
		return failure(KindNetwork, 0, fmt.Sprintf("request %s %s: %v", method, endpoint, err))
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return failure(KindNetwork, resp.StatusCode, fmt.Sprintf("read response body: %v", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn().Int("status", resp.StatusCode).Str("endpoint", endpoint).Msg("upstream returned non-success status")
		return failure(KindUpstream, resp.StatusCode, upstreamMessage(raw, resp.StatusCode))
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return Result{OK: true, Status: resp.StatusCode, Data: json.RawMessage("null")}
	}
	if !json.Valid(raw) {
		return failure(KindMalformed, resp.StatusCode, "response body is not valid JSON")
	}
	return Result{OK: true, Status: resp.StatusCode, Data: raw}
}

// Ping reports whether the backend is reachable. Any response counts,
// error statuses included: readiness is about the wire, not the route.
func (c *Client) Ping(ctx context.Context) error {
	res := c.Call(ctx, http.MethodGet, "/", nil)
	if res.Kind == KindNetwork {
		return res.Err()
	}
	return nil
}

func failure(kind ErrorKind, status int, msg string) Result {
	return Result{Status: status, Kind: kind, Message: msg}
}

// upstreamMessage digs a human-readable message out of an error body,
// falling back to the bare status text.
func upstreamMessage(raw []byte, status int) string {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if envelope.Error != "" {
			return envelope.Error
		}
		if envelope.Message != "" {
			return envelope.Message
		}
	}
	return fmt.Sprintf("upstream returned status %d", status)
}
