package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
)

// httpClient allows http.Client to be mocked for tests
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// StatusError is returned when the daemon answers with a status the call does not handle.
type StatusError struct {
	Method     string
	URI        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s for %q, unexpected %d: %s", e.Method, e.URI, e.StatusCode,
		http.StatusText(e.StatusCode))
}

// Generic REST restClient
type restClient struct {
	client  httpClient
	baseURL *url.URL
}

// do sends a request for uri, relative to the base URL, asking for a JSON response.
func (c *restClient) do(ctx context.Context, method, uri string, body []byte) (*http.Response, error) {
	target := c.baseURL.JoinPath(uri)
	var r io.Reader
	if body != nil {
		r = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), r)
	if err != nil {
		return nil, fmt.Errorf("%s for %q: %w", method, target, err)
	}
	req.Header.Set("Accept", "application/json")

	return c.client.Do(req)
}

// doJSON performs a request and decodes the JSON response into v, which may be nil.  Status codes
// listed in accept are decoded like 200 so error payloads reach the caller, any other status is
// a *StatusError.
func (c *restClient) doJSON(
	ctx context.Context, method string, uri string, v any, accept ...int) error {
	resp, err := c.do(ctx, method, uri, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK && !slices.Contains(accept, resp.StatusCode) {
		return &StatusError{Method: method, URI: uri, StatusCode: resp.StatusCode}
	}
	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
