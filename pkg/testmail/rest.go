package testmail

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// httpClient allows http.Client to be mocked for tests
type httpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Generic REST restClient
type restClient struct {
	client  httpClient
	baseURL *url.URL
}

// do performs a GET request against the base URL with the provided query and returns the
// response.
func (c *restClient) do(ctx context.Context, query url.Values) (*http.Response, error) {
	u := *c.baseURL
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("GET for %q: %v", c.baseURL, err)
	}
	req.Header.Set("Accept", "application/json")

	return c.client.Do(req)
}
