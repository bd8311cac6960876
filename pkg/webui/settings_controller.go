package webui

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/server/web"
	"github.com/tmviewer/tmviewer/pkg/settings"
	"github.com/tmviewer/tmviewer/pkg/viewer"
)

// redirectHome sends the browser back to the index page, optionally to an anchor.
func redirectHome(w http.ResponseWriter, req *http.Request, anchor string) {
	target := web.Reverse("RootIndex")
	if anchor != "" {
		target += "#" + anchor
	}
	http.Redirect(w, req, target, http.StatusSeeOther)
}

// saveForm stores the connection fields when the request carries them.  A failed write is
// reported to the user through the session notice, only a malformed form is an error.
func saveForm(req *http.Request, ctx *web.Context) error {
	if err := req.ParseForm(); err != nil {
		return err
	}
	if _, ok := req.PostForm["namespace"]; !ok {
		return nil
	}
	_ = ctx.Session.UpdateSettings(
		req.PostForm.Get("apikey"),
		req.PostForm.Get("namespace"),
		req.PostForm.Get("tag"),
	)
	return nil
}

// FetchInbox saves any submitted settings, then fetches the inbox.
func FetchInbox(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	if err := saveForm(req, ctx); err != nil {
		return err
	}
	web.ExpFetchesTotal.Add(1)
	if _, err := ctx.Session.Fetch(req.Context()); errors.Is(err, viewer.ErrFetchInProgress) {
		log.Debug().Str("module", "webui").Msg("Fetch already running, request ignored")
	}
	redirectHome(w, req, "")
	return nil
}

// SaveSettings stores the connection fields without fetching.
func SaveSettings(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	if err := saveForm(req, ctx); err != nil {
		return err
	}
	redirectHome(w, req, "")
	return nil
}

// SetLanguage persists the UI language.
func SetLanguage(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	if err := ctx.Session.SetLanguage(i18n.Parse(ctx.Vars["lang"])); err != nil {
		return err
	}
	redirectHome(w, req, "")
	return nil
}

// SetTheme persists the UI theme.
func SetTheme(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	if err := ctx.Session.SetTheme(settings.ParseTheme(ctx.Vars["theme"])); err != nil {
		return err
	}
	redirectHome(w, req, "")
	return nil
}
