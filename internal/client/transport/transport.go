// Package transport is the single choke point for every request the client
// sends. It attaches the bearer credential, classifies responses into the
// error taxonomy, and evicts the credential store when the server reports the
// session invalid (401/403). The eviction is the only mutation this package
// performs outside its return value.
package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/shopsync/internal/client/credentials"
	"github.com/dmitrijs2005/shopsync/internal/logging"
)

// Requester is the request surface consumed by the session manager, the
// synchronizer and the order ledger. Tests substitute fakes.
type Requester interface {
	Request(ctx context.Context, method, path string, in, out any) error
}

// Client is the HTTP-backed Requester.
type Client struct {
	baseURL string
	http    *http.Client
	creds   *credentials.Store
	logger  logging.Logger
}

func NewClient(baseURL string, creds *credentials.Store, timeout time.Duration, logger logging.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		creds:   creds,
		logger:  logger.With("component", "transport"),
	}
}

// Request issues method path with in marshalled as the JSON body (nil for
// none) and decodes the response into out (nil to discard).
//
// Classification:
//   - 401/403: credential store is cleared first, then ErrUnauthenticated /
//     ErrForbidden surfaces (via *RemoteError).
//   - other non-success: *RemoteError{Status, Body}; an unparsable body
//     yields *MalformedResponseError instead.
//   - success: the body is decoded into out; an empty or unparsable body is
//     treated as an empty object and out is left untouched.
func (c *Client) Request(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.creds.Get().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Invalid or expired credential: evict before surfacing the failure so
	// every caller observes an already-cleared session.
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		c.logger.Warn(ctx, "credential rejected, clearing session", "status", resp.StatusCode, "path", path)
		c.creds.Clear(ctx)
	}

	payload := bytes.TrimSpace(raw)
	success := resp.StatusCode >= 200 && resp.StatusCode < 300

	if !success {
		if len(payload) == 0 {
			payload = []byte("{}")
		}
		if !json.Valid(payload) {
			return &MalformedResponseError{Status: resp.StatusCode}
		}
		return &RemoteError{Status: resp.StatusCode, Body: payload}
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		// Not every endpoint returns a body; treat an undecodable success
		// body as empty rather than failing the call.
		c.logger.Warn(ctx, "unparsable success body, treating as empty", "path", path)
	}
	return nil
}
