package webui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tmviewer/tmviewer/pkg/config"
	"github.com/tmviewer/tmviewer/pkg/server/web"
	"github.com/tmviewer/tmviewer/pkg/settings"
	"github.com/tmviewer/tmviewer/pkg/testmail"
	"github.com/tmviewer/tmviewer/pkg/viewer"
	"github.com/tmviewer/tmviewer/pkg/webui/sanitize"
)

// stubLister answers every fetch with the same inbox or error.
type stubLister struct {
	inbox *testmail.Inbox
	err   error
}

func (s *stubLister) ListEmails(context.Context, testmail.Query) (*testmail.Inbox, error) {
	return s.inbox, s.err
}

var routesOnce sync.Once

// setupWebUI points the shared router at a fresh session backed by client.
func setupWebUI(t *testing.T, client viewer.Lister) *viewer.Session {
	t.Helper()
	routesOnce.Do(func() {
		SetupRoutes(web.Router.PathPrefix("/").Subrouter())
	})
	store := settings.Open("")
	require.NoError(t, store.Save(settings.Settings{APIKey: "key", Namespace: "ns"}))
	sess := viewer.NewSession(client, store, nil, viewer.Config{
		Location: time.UTC,
	})
	conf := &config.Root{Web: config.Web{Addr: "127.0.0.1:0"}}
	web.NewServer(conf, sess, nil, &sanitize.Sandbox{})
	return sess
}

func testGet(t *testing.T, path string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	web.Router.ServeHTTP(w, req)
	return w
}

func testPost(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	web.Router.ServeHTTP(w, req)
	return w
}

func inbox(emails ...testmail.Email) *testmail.Inbox {
	return &testmail.Inbox{
		Result: testmail.ResultSuccess,
		Count:  len(emails),
		Emails: emails,
	}
}

func requireRedirect(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	require.Equal(t, http.StatusSeeOther, w.Code)
	require.True(t, strings.HasPrefix(w.Header().Get("Location"), "/"), w.Header().Get("Location"))
}
