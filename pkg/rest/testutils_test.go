package rest

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tmviewer/tmviewer/pkg/config"
	"github.com/tmviewer/tmviewer/pkg/extension"
	"github.com/tmviewer/tmviewer/pkg/msghub"
	"github.com/tmviewer/tmviewer/pkg/server/web"
	"github.com/tmviewer/tmviewer/pkg/settings"
	"github.com/tmviewer/tmviewer/pkg/testmail"
	"github.com/tmviewer/tmviewer/pkg/viewer"
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

// setupWebServer points the shared router at a fresh session backed by client.  A nil hub
// disables the monitor.
func setupWebServer(
	t *testing.T,
	client viewer.Lister,
	extHost *extension.Host,
	hub *msghub.Hub,
	conf settings.Settings,
) *viewer.Session {
	t.Helper()
	routesOnce.Do(func() {
		SetupRoutes(web.Router.PathPrefix("/api/").Subrouter())
	})
	store := settings.Open("")
	require.NoError(t, store.Save(conf))
	sess := viewer.NewSession(client, store, extHost, viewer.Config{
		Location: time.UTC,
		Clock: func() time.Time {
			return time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)
		},
	})
	web.NewServer(&config.Root{}, sess, hub, nil)
	return sess
}

func testRestGet(t *testing.T, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", url, nil)
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Accept-Language", "en")
	w := httptest.NewRecorder()
	web.Router.ServeHTTP(w, req)
	return w
}

func testRestPost(t *testing.T, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", url, strings.NewReader(""))
	req.Header.Add("Accept", "application/json")
	req.Header.Add("Accept-Language", "en")
	w := httptest.NewRecorder()
	web.Router.ServeHTTP(w, req)
	return w
}

// decodeJSON parses the body of w into a generic value for the decoded* helpers.
func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) any {
	t.Helper()
	var result any
	require.NoError(t, json.NewDecoder(w.Body).Decode(&result), "body: %s", w.Body.String())
	return result
}

func inbox(emails ...testmail.Email) *testmail.Inbox {
	return &testmail.Inbox{
		Result: testmail.ResultSuccess,
		Count:  len(emails) + 20,
		Offset: 3,
		Emails: emails,
	}
}

func decodedBoolEquals(t *testing.T, json any, path string, want bool) {
	t.Helper()
	els := strings.Split(path, "/")
	val, msg := getDecodedPath(json, els...)
	if msg != "" {
		t.Errorf("JSON result%s", msg)
		return
	}
	if got, ok := val.(bool); ok {
		if got == want {
			return
		}
	}
	t.Errorf("JSON result/%s == %v (%T), want: %v", path, val, val, want)
}

func decodedNumberEquals(t *testing.T, json any, path string, want float64) {
	t.Helper()
	els := strings.Split(path, "/")
	val, msg := getDecodedPath(json, els...)
	if msg != "" {
		t.Errorf("JSON result%s", msg)
		return
	}
	got, ok := val.(float64)
	if ok {
		if got == want {
			return
		}
	}
	t.Errorf("JSON result/%s == %v (%T) %v (int64),\nwant: %v / %v",
		path, val, val, int64(got), want, int64(want))
}

func decodedStringEquals(t *testing.T, json any, path string, want string) {
	t.Helper()
	els := strings.Split(path, "/")
	val, msg := getDecodedPath(json, els...)
	if msg != "" {
		t.Errorf("JSON result%s", msg)
		return
	}
	if got, ok := val.(string); ok {
		if got == want {
			return
		}
	}
	t.Errorf("JSON result/%s == %v (%T), want: %v", path, val, val, want)
}

// getDecodedPath recursively navigates the specified path, returning the requested element.  If
// something goes wrong, the returned string will contain an explanation.
//
// Named path elements require the parent element to be a map[string]any, numbers in square
// brackets require the parent element to be a []any.
//
//	getDecodedPath(o, "users", "[1]", "name")
//
// is equivalent to the JavaScript:
//
//	o.users[1].name
func getDecodedPath(o any, path ...string) (any, string) {
	if len(path) == 0 {
		return o, ""
	}
	if o == nil {
		return nil, " is nil"
	}
	key := path[0]
	present := false
	var val any
	if key[0] == '[' {
		// Expecting slice.
		index, err := strconv.Atoi(strings.Trim(key, "[]"))
		if err != nil {
			return nil, "/" + key + " is not a slice index"
		}
		oslice, ok := o.([]any)
		if !ok {
			return nil, " is not a slice"
		}
		if index >= len(oslice) {
			return nil, "/" + key + " is out of bounds"
		}
		val, present = oslice[index], true
	} else {
		// Expecting map.
		omap, ok := o.(map[string]any)
		if !ok {
			return nil, " is not a map"
		}
		val, present = omap[key]
	}
	if !present {
		return nil, "/" + key + " is missing"
	}
	result, msg := getDecodedPath(val, path[1:]...)
	if msg != "" {
		return nil, "/" + key + msg
	}
	return result, ""
}
