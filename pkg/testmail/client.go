// Package testmail provides a client for the testmail.app JSON retrieval API.
package testmail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the public retrieval endpoint.
const DefaultBaseURL = "https://api.testmail.app/api/json"

// maxBodyBytes bounds how much of a response body will be read.
const maxBodyBytes = 64 << 20

// Client accesses the retrieval endpoint.
type Client struct {
	restClient
}

// Query holds the user supplied request parameters.  APIKey and Namespace are required.
type Query struct {
	APIKey    string
	Namespace string
	Tag       string
	Limit     int
	Offset    int
	LiveQuery bool
}

// Values converts the query into URL parameters.
func (q Query) Values() url.Values {
	v := url.Values{}
	v.Set("apikey", strings.TrimSpace(q.APIKey))
	v.Set("namespace", strings.TrimSpace(q.Namespace))
	if tag := strings.TrimSpace(q.Tag); tag != "" {
		v.Set("tag", tag)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Offset > 0 {
		v.Set("offset", strconv.Itoa(q.Offset))
	}
	if q.LiveQuery {
		v.Set("livequery", "true")
	}
	return v
}

// Validate reports ErrMissingCredentials if the key or namespace is blank.
func (q Query) Validate() error {
	if strings.TrimSpace(q.APIKey) == "" || strings.TrimSpace(q.Namespace) == "" {
		return ErrMissingCredentials
	}
	return nil
}

// New creates a new client given the retrieval endpoint URL, ex:
// "https://api.testmail.app/api/json"
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

// wireInbox defers decoding of emails so a malformed list can be told apart from a malformed
// envelope.
type wireInbox struct {
	Result  string          `json:"result"`
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Limit   int             `json:"limit"`
	Offset  int             `json:"offset"`
	Emails  json.RawMessage `json:"emails"`
}

// ListEmails retrieves one page of emails.  The returned error is one of
// ErrMissingCredentials, ErrMalformedResponse (possibly wrapped), *APIError or *NetworkError.
func (c *Client) ListEmails(ctx context.Context, q Query) (*Inbox, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, q.Values())
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	return DecodeInbox(body, resp.StatusCode)
}

// DecodeInbox parses a retrieval response body.  status is only used to annotate errors.
func DecodeInbox(body []byte, status int) (*Inbox, error) {
	var w wireInbox
	if err := json.Unmarshal(body, &w); err != nil {
		return nil, fmt.Errorf("%w: HTTP %d: %v", ErrMalformedResponse, status, err)
	}
	if w.Result != ResultSuccess {
		return nil, &APIError{Result: w.Result, Message: w.Message}
	}

	raw := bytes.TrimSpace(w.Emails)
	if len(raw) == 0 || raw[0] != '[' {
		return nil, fmt.Errorf("%w: emails is not an array", ErrMalformedResponse)
	}
	var emails []Email
	if err := json.Unmarshal(raw, &emails); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if emails == nil {
		emails = []Email{}
	}

	return &Inbox{
		Result:  w.Result,
		Message: w.Message,
		Count:   w.Count,
		Limit:   w.Limit,
		Offset:  w.Offset,
		Emails:  emails,
	}, nil
}
