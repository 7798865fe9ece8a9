package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chamseddine-glitch/sha/internal/config"
	"github.com/chamseddine-glitch/sha/internal/shared/apperr"
)

// Client talks to the shared JSON document store. Each bin holds one whole
// document; GET returns the latest written version, PUT overwrites it.
// There are no partial updates.
type Client struct {
	baseURL   string
	masterKey string
	http      *http.Client
}

func NewClient(cfg config.RemoteConfig) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		masterKey: cfg.MasterKey,
		http:      &http.Client{Timeout: timeout},
	}
}

// Get fetches the latest document in the bin. A bin that has never been
// written returns (nil, nil) — "never published" is a valid state.
func (c *Client) Get(ctx context.Context, binID string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/b/"+binID+"/latest", nil)
	if err != nil {
		return nil, apperr.Wrap(err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, apperr.UnavailableErr("The store service is unreachable.", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := statusError(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.UnavailableErr("The store service returned an unreadable response.", err)
	}

	// The store wraps documents as {"record": ..., "metadata": ...}.
	var envelope struct {
		Record json.RawMessage `json:"record"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperr.ParseErr("The store service returned a malformed document.", err)
	}
	if len(envelope.Record) == 0 || string(envelope.Record) == "null" {
		return nil, nil
	}
	return envelope.Record, nil
}

// Put overwrites the whole document in the bin.
func (c *Client) Put(ctx context.Context, binID string, doc any) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return apperr.Wrap(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.baseURL+"/b/"+binID, bytes.NewReader(payload))
	if err != nil {
		return apperr.Wrap(err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return apperr.UnavailableErr("The store service is unreachable.", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	return statusError(resp)
}

func (c *Client) setHeaders(req *http.Request) {
	if c.masterKey != "" {
		req.Header.Set("X-Master-Key", c.masterKey)
	}
}

// statusError translates store responses into the app error taxonomy.
func statusError(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return apperr.UnauthorizedErr("Store service credentials are misconfigured.")
	case resp.StatusCode == http.StatusTooManyRequests:
		return apperr.RateLimitedErr("The store service is throttling requests. Try again shortly.")
	default:
		return apperr.UnavailableErr("The store service failed.",
			fmt.Errorf("document store: unexpected status %d", resp.StatusCode))
	}
}
