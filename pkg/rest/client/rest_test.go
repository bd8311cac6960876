package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseURLStr = "http://test.local:8080"
const baseURLPathStr = baseURLStr + "/tmviewer"

var baseURL = mustParse(baseURLStr)

func mustParse(s string) *url.URL {
	u, err := url.Parse(s)
	if err != nil {
		panic(err)
	}
	return u
}

type mockHTTPClient struct {
	req        *http.Request
	statusCode int
	body       string
}

func (m *mockHTTPClient) Do(req *http.Request) (resp *http.Response, err error) {
	m.req = req
	if m.statusCode == 0 {
		m.statusCode = 200
	}
	resp = &http.Response{
		StatusCode: m.statusCode,
		Body:       io.NopCloser(bytes.NewBufferString(m.body)),
	}
	return
}

func (m *mockHTTPClient) ReqBody() []byte {
	r, err := m.req.GetBody()
	if err != nil {
		return nil
	}
	defer r.Close()
	body, err := io.ReadAll(r)
	if err != nil {
		return nil
	}
	return body
}

func TestDoJoinsBasePath(t *testing.T) {
	tests := []struct {
		name    string
		base    string
		method  string
		uri     string
		body    []byte
		wantURL string
	}{
		{"root get", baseURLStr, "GET", "/api/v1/emails", nil, baseURLStr + "/api/v1/emails"},
		{"root post", baseURLStr, "POST", "/api/v1/fetch", []byte("body"), baseURLStr + "/api/v1/fetch"},
		{"prefixed", baseURLStr + "/tmviewer", "GET", "/api/v1/emails",
			nil, baseURLStr + "/tmviewer/api/v1/emails"},
		{"prefixed slash", baseURLStr + "/tmviewer/", "GET", "/api/v1/emails/3",
			nil, baseURLStr + "/tmviewer/api/v1/emails/3"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mth := &mockHTTPClient{}
			c := &restClient{mth, mustParse(tc.base)}

			resp, err := c.do(context.Background(), tc.method, tc.uri, tc.body)
			require.NoError(t, err)
			require.NoError(t, resp.Body.Close())

			assert.Equal(t, tc.method, mth.req.Method)
			assert.Equal(t, tc.wantURL, mth.req.URL.String())
			assert.Equal(t, "application/json", mth.req.Header.Get("Accept"))
			if tc.body != nil {
				assert.Equal(t, tc.body, mth.ReqBody())
			}
		})
	}
}

func TestDoJSON(t *testing.T) {
	mth := &mockHTTPClient{body: `{"count": 3}`}
	c := &restClient{mth, baseURL}

	var v struct{ Count int }
	require.NoError(t, c.doJSON(context.Background(), "GET", "/api/v1/emails", &v))
	assert.Equal(t, 3, v.Count)

	// A nil target skips decoding.
	require.NoError(t, c.doJSON(context.Background(), "GET", "/api/v1/emails", nil))
}

func TestDoJSONAcceptedStatus(t *testing.T) {
	mth := &mockHTTPClient{statusCode: http.StatusConflict, body: `{"error": "busy"}`}
	c := &restClient{mth, baseURL}

	var v map[string]any
	err := c.doJSON(context.Background(), "POST", "/api/v1/fetch", &v, http.StatusConflict)
	require.NoError(t, err)
	assert.Equal(t, "busy", v["error"])

	err = c.doJSON(context.Background(), "POST", "/api/v1/fetch", &v)
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusConflict, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "unexpected 409: Conflict")
}
