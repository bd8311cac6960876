// Package server wires the viewer services together and controls their lifecycle.
package server

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmviewer/tmviewer/pkg/config"
	"github.com/tmviewer/tmviewer/pkg/extension"
	"github.com/tmviewer/tmviewer/pkg/extension/luahost"
	"github.com/tmviewer/tmviewer/pkg/msghub"
	"github.com/tmviewer/tmviewer/pkg/rest"
	"github.com/tmviewer/tmviewer/pkg/server/web"
	"github.com/tmviewer/tmviewer/pkg/settings"
	"github.com/tmviewer/tmviewer/pkg/stringutil"
	"github.com/tmviewer/tmviewer/pkg/testmail"
	"github.com/tmviewer/tmviewer/pkg/viewer"
	"github.com/tmviewer/tmviewer/pkg/webui"
	"github.com/tmviewer/tmviewer/pkg/webui/sanitize"
)

// Services holds the configured services.
type Services struct {
	ExtHost   *extension.Host
	LuaHost   *luahost.Host
	Settings  *settings.Store
	Session   *viewer.Session
	MsgHub    *msghub.Hub
	Poller    *viewer.Poller
	WebServer *web.Server
}

// FullEnvironment wires up a complete viewer environment from conf.  A Lua script is loaded when
// one exists at the configured path.
func FullEnvironment(conf *config.Root) (*Services, error) {
	extHost := extension.NewHost()
	luaHost, err := luahost.New(conf.Lua, extHost)
	if err != nil {
		return nil, err
	}

	client, err := testmail.New(conf.API.BaseURL, testmail.WithTimeout(conf.API.Timeout))
	if err != nil {
		return nil, err
	}

	store := settings.Open(conf.Settings.SettingsPath())
	session := viewer.NewSession(client, store, extHost, viewer.Config{
		Timeout:  conf.API.Timeout,
		Limit:    conf.API.Limit,
		Location: time.Local,
	})
	msgHub := msghub.New(conf.Web.MonitorHistory, extHost)

	// Configure routes, API first as the UI prefix matches every path.
	prefix := stringutil.MakePathPrefixer(conf.Web.BasePath)
	rest.SetupRoutes(web.Router.PathPrefix(prefix("/api/")).Subrouter())
	webui.SetupRoutes(web.Router.PathPrefix(prefix("/")).Subrouter())
	webServer := web.NewServer(conf, session, msgHub, &sanitize.Sandbox{})

	return &Services{
		ExtHost:   extHost,
		LuaHost:   luaHost,
		Settings:  store,
		Session:   session,
		MsgHub:    msgHub,
		Poller:    viewer.NewPoller(session, conf.API.PollInterval),
		WebServer: webServer,
	}, nil
}

// Start all services, readyFunc is called once the web server is accepting connections.
func (s *Services) Start(ctx context.Context, readyFunc func()) {
	log.Info().Str("phase", "startup").Str("settings", s.Settings.Path()).
		Bool("lua", s.LuaHost != nil).Msg("Starting services")
	go s.MsgHub.Start(ctx)
	go s.Poller.Start(ctx)
	go s.WebServer.Start(ctx, readyFunc)
	if s.LuaHost != nil {
		go func() {
			<-ctx.Done()
			s.LuaHost.Close()
		}()
	}
}

// Notify merges the error notification channels of all fallible services, allowing the process to
// be shutdown if needed.
func (s *Services) Notify() <-chan error {
	return s.WebServer.Notify()
}
