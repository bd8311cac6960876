package webui

import (
	"net/http"
	"time"

	"github.com/tmviewer/tmviewer/pkg/config"
	"github.com/tmviewer/tmviewer/pkg/i18n"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/server/web"
	"github.com/tmviewer/tmviewer/pkg/settings"
	"github.com/tmviewer/tmviewer/pkg/viewer"
)

// pageData is the template model of the index page.
type pageData struct {
	viewer.Snapshot
	Version    string
	Live       bool
	RenderedAt int64 // Epoch milliseconds.
}

// NextTheme is the theme the toggle switches to.
func (p pageData) NextTheme() settings.Theme {
	if p.Theme == settings.ThemeDark {
		return settings.ThemeLight
	}
	return settings.ThemeDark
}

// detailData feeds the detail partial.
type detailData struct {
	Index   int
	Printer *i18n.Printer
	Detail  *mailview.DetailView
}

// DetailOf prepares the detail partial of item.
func (p pageData) DetailOf(item mailview.ItemView) detailData {
	return detailData{Index: item.Index, Printer: p.Printer, Detail: item.Detail}
}

// RootIndex serves the viewer page.
func RootIndex(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	snap := ctx.Session.Snapshot(viewer.SnapshotOptions{
		Fallback:   ctx.Lang,
		Isolator:   ctx.Isolator,
		TakeNotice: true,
	})
	return web.RenderTemplate("index.html", w, pageData{
		Snapshot:   snap,
		Version:    config.Version,
		Live:       ctx.MsgHub != nil,
		RenderedAt: time.Now().UnixMilli(),
	})
}

// RootStatus outputs the running configuration as JSON.
func RootStatus(w http.ResponseWriter, req *http.Request, ctx *web.Context) (err error) {
	root := ctx.RootConfig
	conf := ctx.Session.Settings()
	return web.RenderJSON(w, &jsonServerConfig{
		Version:      config.Version,
		BuildDate:    config.BuildDate,
		WebListener:  root.Web.Addr,
		BasePath:     root.Web.BasePath,
		APIBaseURL:   root.API.BaseURL,
		Timeout:      root.API.Timeout.String(),
		PollInterval: root.API.PollInterval.String(),
		SettingsFile: root.Settings.SettingsPath(),
		Fetching:     ctx.Session.Fetching(),
		Settings: jsonSettings{
			HasAPIKey: conf.APIKey != "",
			Namespace: conf.Namespace,
			Tag:       conf.Tag,
			Lang:      string(ctx.Lang),
			Theme:     string(settings.ParseTheme(conf.Theme)),
		},
	})
}
