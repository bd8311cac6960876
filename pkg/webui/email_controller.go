package webui

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/tmviewer/tmviewer/pkg/export"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/server/web"
)

// emailIndex reads the index route variable.  The route pattern guarantees digits.
func emailIndex(ctx *web.Context) int {
	index, err := strconv.Atoi(ctx.Vars["index"])
	if err != nil {
		return -1
	}
	return index
}

// EmailToggle expands or collapses an email.
func EmailToggle(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	index := emailIndex(ctx)
	ctx.Session.Toggle(index)
	redirectHome(w, req, "email-"+strconv.Itoa(index))
	return nil
}

// EmailTab selects the body tab of the expanded email.
func EmailTab(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	index := emailIndex(ctx)
	tab, _ := mailview.ParseBody(ctx.Vars["tab"])
	ctx.Session.SetTab(index, tab)
	redirectHome(w, req, "email-"+strconv.Itoa(index))
	return nil
}

// EmailCopy outputs the raw body for the browser to place on the clipboard.
func EmailCopy(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	kind, _ := mailview.ParseBody(ctx.Vars["kind"])
	content, err := ctx.Session.CopySource(emailIndex(ctx), kind)
	switch {
	case errors.Is(err, mailview.ErrNoContent):
		http.Error(w, ctx.Printer().T(i18n.NoContentCopy), http.StatusNotFound)
		return nil
	case errors.Is(err, mailview.ErrNoSuchEmail):
		http.NotFound(w, req)
		return nil
	case err != nil:
		return err
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, err = w.Write([]byte(content))
	return err
}

// EmailExport downloads an email as an .eml file.
func EmailExport(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	email, ok := ctx.Session.Email(emailIndex(ctx))
	if !ok {
		http.NotFound(w, req)
		return nil
	}
	raw, err := export.Bytes(email)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "message/rfc822")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename(email)+`"`)
	_, err = w.Write(raw)
	return err
}
