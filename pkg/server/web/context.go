package web

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/tmviewer/tmviewer/pkg/config"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/msghub"
	"github.com/tmviewer/tmviewer/pkg/viewer"
)

// Context is passed into every request handler function.
type Context struct {
	Vars       map[string]string
	Session    *viewer.Session
	MsgHub     *msghub.Hub
	Isolator   mailview.Isolator
	RootConfig *config.Root
	// Lang is the request language, the saved preference wins over Accept-Language.
	Lang   i18n.Lang
	IsJSON bool
}

// Close the Context (currently does nothing).
func (c *Context) Close() {
	// Do nothing
}

// Printer returns a message printer for the request language.
func (c *Context) Printer() *i18n.Printer {
	return i18n.NewPrinter(c.Lang)
}

// headerMatch returns true if the request header specified by name contains the specified value.
// Case is ignored.
func headerMatch(req *http.Request, name string, value string) bool {
	name = http.CanonicalHeaderKey(name)
	value = strings.ToLower(value)

	for _, hv := range req.Header[name] {
		if value == strings.ToLower(hv) {
			return true
		}
	}

	return false
}

// NewContext returns a Context for the given HTTP Request.
func NewContext(req *http.Request) (*Context, error) {
	lang := i18n.Match(req.Header.Get("Accept-Language"))
	if session != nil {
		lang = session.Language(lang)
	}
	ctx := &Context{
		Vars:       mux.Vars(req),
		Session:    session,
		MsgHub:     msgHub,
		Isolator:   isolator,
		RootConfig: rootConfig,
		Lang:       lang,
		IsJSON:     headerMatch(req, "Accept", "application/json"),
	}
	return ctx, nil
}
