package testmail

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockedClient(t *testing.T, mth *mockHTTPClient) *Client {
	t.Helper()
	c, err := New(baseURLStr)
	require.NoError(t, err)
	c.client = mth
	return c
}

func TestQueryValues(t *testing.T) {
	tests := []struct {
		name  string
		query Query
		want  string
	}{
		{
			name:  "required only",
			query: Query{APIKey: " key ", Namespace: "ns"},
			want:  "apikey=key&namespace=ns",
		},
		{
			name:  "tag",
			query: Query{APIKey: "key", Namespace: "ns", Tag: "signup"},
			want:  "apikey=key&namespace=ns&tag=signup",
		},
		{
			name:  "paging",
			query: Query{APIKey: "key", Namespace: "ns", Limit: 20, Offset: 40, LiveQuery: true},
			want:  "apikey=key&limit=20&livequery=true&namespace=ns&offset=40",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.query.Values().Encode())
		})
	}
}

func TestListEmailsMissingCredentials(t *testing.T) {
	for _, q := range []Query{
		{},
		{APIKey: "key"},
		{Namespace: "ns"},
		{APIKey: "  ", Namespace: "ns"},
	} {
		mth := &mockHTTPClient{}
		c := newMockedClient(t, mth)

		_, err := c.ListEmails(context.Background(), q)
		assert.ErrorIs(t, err, ErrMissingCredentials)
		assert.Zero(t, mth.calls, "no request may be made without credentials")
	}
}

func TestListEmailsSuccess(t *testing.T) {
	mth := &mockHTTPClient{
		body: `{
			"result": "success",
			"message": null,
			"count": 12,
			"limit": 10,
			"offset": 2,
			"emails": [
				{"from": "\"Jane Doe\" <jane@x.com>", "to": "ns.tag@inbox.testmail.app",
				 "subject": "first", "text": "hello", "timestamp": 1700000000000, "tag": "tag",
				 "attachments": [{"filename": "a.txt", "size": 500}]},
				{"from": "bob@x.com", "subject": "second", "html": "<p>hi</p>",
				 "timestamp": 1700000001000, "attachments": []}
			]
		}`,
	}
	c := newMockedClient(t, mth)

	inbox, err := c.ListEmails(context.Background(), Query{APIKey: "key", Namespace: "ns", Tag: "tag"})
	require.NoError(t, err)

	assert.Equal(t, baseURLStr+"?apikey=key&namespace=ns&tag=tag", mth.req.URL.String())
	assert.Equal(t, 12, inbox.Count)
	assert.Equal(t, 2, inbox.Offset)
	require.Len(t, inbox.Emails, 2)
	assert.Equal(t, "first", inbox.Emails[0].Subject)
	assert.Equal(t, "second", inbox.Emails[1].Subject)
	assert.Equal(t, int64(500), inbox.Emails[0].Attachments[0].Size)
	assert.Equal(t, int64(1700000000000), inbox.Emails[0].Time().UnixMilli())
}

func TestListEmailsEmptyList(t *testing.T) {
	mth := &mockHTTPClient{body: `{"result":"success","count":0,"emails":[]}`}
	c := newMockedClient(t, mth)

	inbox, err := c.ListEmails(context.Background(), Query{APIKey: "key", Namespace: "ns"})
	require.NoError(t, err)
	assert.NotNil(t, inbox.Emails)
	assert.Empty(t, inbox.Emails)
}

func TestListEmailsFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
		wantMsg string
	}{
		{name: "not json", body: "<html>oops</html>", wantErr: ErrMalformedResponse},
		{name: "not json 502", status: 502, body: "Bad Gateway", wantErr: ErrMalformedResponse},
		{name: "emails missing", body: `{"result":"success"}`, wantErr: ErrMalformedResponse},
		{name: "emails null", body: `{"result":"success","emails":null}`, wantErr: ErrMalformedResponse},
		{name: "emails object", body: `{"result":"success","emails":{"a":1}}`, wantErr: ErrMalformedResponse},
		{name: "emails string", body: `{"result":"success","emails":"nope"}`, wantErr: ErrMalformedResponse},
		{name: "bad element", body: `{"result":"success","emails":[{"timestamp":"x"}]}`, wantErr: ErrMalformedResponse},
		{name: "fail with message", status: 401, body: `{"result":"fail","message":"Invalid API key"}`,
			wantMsg: "Invalid API key"},
		{name: "fail without message", body: `{"result":"fail"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mth := &mockHTTPClient{statusCode: tc.status, body: tc.body}
			c := newMockedClient(t, mth)

			inbox, err := c.ListEmails(context.Background(), Query{APIKey: "key", Namespace: "ns"})
			require.Error(t, err)
			assert.Nil(t, inbox)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.wantMsg, apiErr.Message)
		})
	}
}

func TestListEmailsNetworkError(t *testing.T) {
	cause := errors.New("dial tcp: no route to host")
	mth := &mockHTTPClient{err: cause}
	c := newMockedClient(t, mth)

	_, err := c.ListEmails(context.Background(), Query{APIKey: "key", Namespace: "ns"})
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.ErrorIs(t, err, cause)
}
