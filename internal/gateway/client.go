package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/STAR-173/prms-admin-gateway/domain"
)

// Request describes one outbound backend call. Path is relative to the
// public API prefix (e.g. "/admin/houses/list") and may carry a query
// string. Auth is attached unless NoAuth is set; a missing token does not
// block the call — the server is authoritative and answers 401 itself.
type Request struct {
	Method string
	Path   string
	Body   interface{}
	NoAuth bool
}

// Response is the successful outcome of a Gateway call.
type Response struct {
	Status int
	Body   []byte
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return fmt.Errorf("failed to decode response body: %w", err)
	}
	return nil
}

// Client is the single sanctioned entry point for backend calls. It knows
// only the public base URL; the real backend location is the edge
// rewriter's concern.
type Client struct {
	baseURL     string
	httpClient  *http.Client
	store       domain.SessionStore
	invalidator *Invalidator
}

func NewClient(baseURL string, timeout time.Duration, store domain.SessionStore, invalidator *Invalidator) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		httpClient:  &http.Client{Timeout: timeout},
		store:       store,
		invalidator: invalidator,
	}
}

// Call issues the request. Any 401, for any call, invalidates the session
// synchronously before the error is returned — including calls made by the
// login flow itself. No retries; every other failure is handed back typed.
func (c *Client) Call(ctx context.Context, req Request) (*Response, error) {
	var bodyReader io.Reader
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, &Error{Err: fmt.Errorf("failed to encode request body: %w", err)}
		}
		bodyReader = bytes.NewReader(data)
	}

	path := req.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to build request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	if !req.NoAuth {
		if sess, err := c.store.Load(ctx); err == nil && sess != nil && sess.Token != "" {
			httpReq.Header.Set("Authorization", "Bearer "+sess.Token)
		}
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &Error{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		c.invalidator.Invalidate(ctx)
		return nil, &Error{Status: resp.StatusCode, Message: serverMessage(body)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{Status: resp.StatusCode, Message: serverMessage(body)}
	}

	return &Response{Status: resp.StatusCode, Body: body}, nil
}

// serverMessage pulls a human-readable message out of an error body when the
// backend provides one; it is surfaced to the operator verbatim.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
