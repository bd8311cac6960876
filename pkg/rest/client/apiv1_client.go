// Package client provides a basic REST client for a running tmviewer daemon
package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tmviewer/tmviewer/pkg/rest/model"
)

// Client accesses the tmviewer REST API v1
type Client struct {
	restClient
}

// New creates a new v1 REST API client given the base URL of a tmviewer daemon, ex:
// "http://localhost:9080"
func New(baseURL string, opts ...func(*ClientOptions)) (*Client, error) {
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}

	options := getDefaultClientOptions()
	for _, opt := range opts {
		opt(options)
	}

	c := &Client{
		restClient{
			client: &http.Client{
				Transport: options.transport,
				Timeout:   options.timeout,
			},
			baseURL: parsedURL,
		},
	}
	return c, nil
}

// ListEmails returns the list currently held by the daemon.
func (c *Client) ListEmails(ctx context.Context) (*model.JSONEmailListV1, error) {
	list := &model.JSONEmailListV1{}
	if err := c.doJSON(ctx, "GET", "/api/v1/emails", list); err != nil {
		return nil, err
	}
	return list, nil
}

// GetEmail returns a single email, including its bodies.
func (c *Client) GetEmail(ctx context.Context, index int) (*model.JSONEmailV1, error) {
	email := &model.JSONEmailV1{}
	if err := c.doJSON(ctx, "GET", "/api/v1/emails/"+strconv.Itoa(index), email); err != nil {
		return nil, err
	}
	return email, nil
}

// Fetch asks the daemon to refresh its list.  A fetch the daemon rejected or that failed upstream
// is returned as an error carrying the daemon's message, alongside the decoded result.
func (c *Client) Fetch(ctx context.Context) (*model.JSONFetchResultV1, error) {
	result := &model.JSONFetchResultV1{}
	err := c.doJSON(ctx, "POST", "/api/v1/fetch", result,
		http.StatusBadRequest, http.StatusConflict, http.StatusBadGateway)
	if err != nil {
		return nil, err
	}
	if result.Error != "" {
		return result, errors.New(result.Error)
	}
	return result, nil
}
