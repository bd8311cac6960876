package webui

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmviewer/tmviewer/pkg/testmail"
)

func TestIndexEmptyState(t *testing.T) {
	setupWebUI(t, &stubLister{})

	w := testGet(t, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "请先配置 API 并获取邮件")
	assert.Contains(t, w.Body.String(), `<html lang="zh" data-theme="light">`)

	w = testGet(t, "/", "Accept-Language", "en-US,en;q=0.8")
	assert.Contains(t, w.Body.String(), "Please configure API and fetch emails")
}

func TestFetchRendersEveryEmail(t *testing.T) {
	emails := []testmail.Email{
		{From: "Alice <alice@example.com>", Subject: "<script>alert(1)</script>", Text: "hi"},
		{From: "bob@example.com", Subject: "second", Tag: "signup"},
		{From: "张三 <z@example.com>", Text: "third body"},
	}
	setupWebUI(t, &stubLister{inbox: inbox(emails...)})

	requireRedirect(t, testPost(t, "/fetch", nil))

	w := testGet(t, "/", "Accept-Language", "en")
	body := w.Body.String()
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, strings.Count(body, `<article class="email-item`))
	assert.NotContains(t, body, "<script>alert(1)</script>")
	assert.Contains(t, body, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, body, "Successfully fetched 3 emails")
	assert.Contains(t, body, "(No Subject)")
	assert.Contains(t, body, `<span class="avatar">张</span>`)
	assert.Contains(t, body, "Total: 3")

	// The notice is shown once.
	w = testGet(t, "/", "Accept-Language", "en")
	assert.NotContains(t, w.Body.String(), "Successfully fetched")
}

func TestFetchSavesSubmittedSettings(t *testing.T) {
	sess := setupWebUI(t, &stubLister{inbox: inbox()})

	form := url.Values{"apikey": {" k2 "}, "namespace": {"other"}, "tag": {"t1"}}
	requireRedirect(t, testPost(t, "/fetch", form))

	conf := sess.Settings()
	assert.Equal(t, "k2", conf.APIKey)
	assert.Equal(t, "other", conf.Namespace)
	assert.Equal(t, "t1", conf.Tag)
}

func TestFetchErrorState(t *testing.T) {
	setupWebUI(t, &stubLister{err: &testmail.APIError{Result: "fail", Message: "Invalid <key>"}})

	requireRedirect(t, testPost(t, "/fetch", nil))

	body := testGet(t, "/", "Accept-Language", "en").Body.String()
	assert.Contains(t, body, `class="error-state"`)
	assert.Contains(t, body, "Invalid &lt;key&gt;")
	assert.Zero(t, strings.Count(body, `<article class="email-item`))
}

func TestFetchMissingCredentials(t *testing.T) {
	setupWebUI(t, &stubLister{inbox: inbox()})

	form := url.Values{"apikey": {""}, "namespace": {""}}
	requireRedirect(t, testPost(t, "/fetch", form))

	body := testGet(t, "/", "Accept-Language", "en").Body.String()
	assert.Contains(t, body, "Please enter API Key and Namespace")
}

func TestToggleAndTabs(t *testing.T) {
	email := testmail.Email{
		From:    "a@example.com",
		Subject: "both",
		Text:    "plain <b>text</b>",
		HTML:    `<p onclick="x()">rich</p><script>evil()</script>`,
		Attachments: []testmail.Attachment{
			{Filename: "report.pdf", Size: 2048},
		},
	}
	setupWebUI(t, &stubLister{inbox: inbox(email)})
	requireRedirect(t, testPost(t, "/fetch", nil))

	w := testPost(t, "/email/0/toggle", nil)
	requireRedirect(t, w)
	assert.True(t, strings.HasSuffix(w.Header().Get("Location"), "#email-0"))

	body := testGet(t, "/", "Accept-Language", "en").Body.String()
	assert.Contains(t, body, `class="email-item expanded"`)
	assert.Contains(t, body, `sandbox="allow-same-origin"`)
	assert.NotContains(t, body, "evil()")
	assert.NotContains(t, body, "onclick")
	assert.Contains(t, body, "report.pdf")
	assert.Contains(t, body, "2.0 KB")
	assert.Contains(t, body, "/email/0/copy/html")

	requireRedirect(t, testPost(t, "/email/0/tab/text", nil))
	body = testGet(t, "/", "Accept-Language", "en").Body.String()
	assert.Contains(t, body, `<div class="body-text">plain &lt;b&gt;text&lt;/b&gt;</div>`)
	assert.NotContains(t, body, "<iframe")

	requireRedirect(t, testPost(t, "/email/0/toggle", nil))
	body = testGet(t, "/").Body.String()
	assert.NotContains(t, body, `class="email-detail"`)
}

func TestToggleOutOfRangeIsIgnored(t *testing.T) {
	setupWebUI(t, &stubLister{inbox: inbox(testmail.Email{Text: "x"})})
	requireRedirect(t, testPost(t, "/fetch", nil))

	requireRedirect(t, testPost(t, "/email/9/toggle", nil))
	assert.NotContains(t, testGet(t, "/").Body.String(), `class="email-detail"`)

	w := testPost(t, "/email/x/toggle", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCopyEndpoint(t *testing.T) {
	setupWebUI(t, &stubLister{inbox: inbox(
		testmail.Email{Text: "raw <text> & more"},
		testmail.Email{HTML: "<p>only html</p>"},
	)})
	requireRedirect(t, testPost(t, "/fetch", nil))

	w := testGet(t, "/email/0/copy/text")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "raw <text> & more", w.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))

	// Html falls back to text.
	w = testGet(t, "/email/0/copy/html")
	assert.Equal(t, "raw <text> & more", w.Body.String())

	// Text never falls back to html.
	w = testGet(t, "/email/1/copy/text", "Accept-Language", "en")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "No content to copy")

	w = testGet(t, "/email/1/copy/html")
	assert.Equal(t, "<p>only html</p>", w.Body.String())

	w = testGet(t, "/email/5/copy/text")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportEndpoint(t *testing.T) {
	setupWebUI(t, &stubLister{inbox: inbox(testmail.Email{
		From:    "a@example.com",
		To:      "ns@inbox.testmail.app",
		Subject: "Export me",
		Text:    "body",
	})})
	requireRedirect(t, testPost(t, "/fetch", nil))

	w := testGet(t, "/email/0/eml")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "message/rfc822", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), ".eml")
	assert.Contains(t, w.Body.String(), "Subject: Export me")

	assert.Equal(t, http.StatusNotFound, testGet(t, "/email/3/eml").Code)
}

func TestPreferences(t *testing.T) {
	sess := setupWebUI(t, &stubLister{})

	requireRedirect(t, testPost(t, "/lang/en", nil))
	requireRedirect(t, testPost(t, "/theme/dark", nil))
	assert.Equal(t, "en", sess.Settings().Lang)
	assert.Equal(t, "dark", sess.Settings().Theme)

	// Saved language wins over Accept-Language.
	body := testGet(t, "/", "Accept-Language", "zh-CN").Body.String()
	assert.Contains(t, body, `<html lang="en" data-theme="dark">`)
	assert.Contains(t, body, "/lang/zh")
	assert.Contains(t, body, "/theme/light")

	assert.Equal(t, http.StatusNotFound, testPost(t, "/lang/fr", nil).Code)
}

func TestSaveSettings(t *testing.T) {
	sess := setupWebUI(t, &stubLister{})

	form := url.Values{"apikey": {"abc"}, "namespace": {"n1"}, "tag": {""}}
	requireRedirect(t, testPost(t, "/settings", form))
	assert.Equal(t, "n1", sess.Settings().Namespace)

	body := testGet(t, "/", "Accept-Language", "en").Body.String()
	assert.Contains(t, body, "Settings saved")
	assert.Contains(t, body, `value="n1"`)
}

func TestStatus(t *testing.T) {
	setupWebUI(t, &stubLister{})

	w := testGet(t, "/status")
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	settings := got["settings"].(map[string]any)
	assert.Equal(t, true, settings["has-api-key"])
	assert.Equal(t, "ns", settings["namespace"])
	assert.NotContains(t, w.Body.String(), `"key"`)
}

func TestStaticFiles(t *testing.T) {
	setupWebUI(t, &stubLister{})

	w := testGet(t, "/static/app.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "--accent")

	w = testGet(t, "/static/app.js")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "execCommand")
}
