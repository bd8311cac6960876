// Package webui powers the viewer's server rendered web GUI.
package webui

import (
	"embed"
	"io/fs"

	"github.com/gorilla/mux"
	"github.com/tmviewer/tmviewer/pkg/server/web"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

// SetupRoutes populates routes for the webui into the provided Router.
func SetupRoutes(r *mux.Router) {
	templates, _ := fs.Sub(templateFiles, "templates")
	web.SetTemplateFS(templates)
	static, _ := fs.Sub(staticFiles, "static")

	r.Path("/").Handler(
		web.Handler(RootIndex)).Name("RootIndex").Methods("GET")
	r.Path("/status").Handler(
		web.Handler(RootStatus)).Name("RootStatus").Methods("GET")
	r.Path("/fetch").Handler(
		web.Handler(FetchInbox)).Name("FetchInbox").Methods("POST")
	r.Path("/settings").Handler(
		web.Handler(SaveSettings)).Name("SaveSettings").Methods("POST")
	r.Path("/lang/{lang:zh|en}").Handler(
		web.Handler(SetLanguage)).Name("SetLanguage").Methods("POST")
	r.Path("/theme/{theme:light|dark}").Handler(
		web.Handler(SetTheme)).Name("SetTheme").Methods("POST")
	r.Path("/email/{index:[0-9]+}/toggle").Handler(
		web.Handler(EmailToggle)).Name("EmailToggle").Methods("POST")
	r.Path("/email/{index:[0-9]+}/tab/{tab:html|text}").Handler(
		web.Handler(EmailTab)).Name("EmailTab").Methods("POST")
	r.Path("/email/{index:[0-9]+}/copy/{kind:html|text}").Handler(
		web.Handler(EmailCopy)).Name("EmailCopy").Methods("GET")
	r.Path("/email/{index:[0-9]+}/eml").Handler(
		web.Handler(EmailExport)).Name("EmailExport").Methods("GET")

	staticRoute := r.PathPrefix("/static/").Name("Static")
	prefix, err := staticRoute.GetPathTemplate()
	if err != nil {
		prefix = "/static/"
	}
	staticRoute.Handler(web.StaticHandler(prefix, static))
}
