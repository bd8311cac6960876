// Package web provides the plumbing for the viewer's web UI and REST API.
package web

import (
	"context"
	"expvar"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/tmviewer/tmviewer/pkg/config"
	"github.com/tmviewer/tmviewer/pkg/mailview"
	"github.com/tmviewer/tmviewer/pkg/msghub"
	"github.com/tmviewer/tmviewer/pkg/stringutil"
	"github.com/tmviewer/tmviewer/pkg/viewer"
)

var (
	// session is the single inbox session served by every handler.
	session *viewer.Session

	// msgHub holds a reference to the fetch event pub/sub system.
	msgHub *msghub.Hub

	isolator   mailview.Isolator
	rootConfig *config.Root

	// Router is shared between web, webui and rest packages.  It sends incoming requests to the
	// correct handler function.
	Router = mux.NewRouter()

	// ExpWebSocketConnectsCurrent tracks the number of open WebSockets.
	ExpWebSocketConnectsCurrent = new(expvar.Int)

	// ExpFetchesTotal counts fetches started through the web surface.
	ExpFetchesTotal = new(expvar.Int)
)

func init() {
	m := expvar.NewMap("http")
	m.Set("WebSocketConnectsCurrent", ExpWebSocketConnectsCurrent)
	m.Set("FetchesTotal", ExpFetchesTotal)
}

// Server defines an instance of the web server.
type Server struct {
	server   *http.Server
	listener net.Listener
	notify   chan error // Notify on fatal error.
}

// NewServer wires the shared handler state and routes the fixed paths.  Package routes must be
// registered by the caller, before or after.
func NewServer(
	conf *config.Root,
	sess *viewer.Session,
	mh *msghub.Hub,
	iso mailview.Isolator,
) *Server {
	rootConfig = conf
	session = sess
	msgHub = mh
	isolator = iso

	// Redirect requests to / if there is a base path configured.
	prefix := stringutil.MakePathPrefixer(conf.Web.BasePath)
	redirectBase := prefix("/")
	if redirectBase != "/" {
		log.Info().Str("module", "web").Str("redirectURL", redirectBase).
			Msg("Redirecting requests from / to base path")
		Router.Path("/").Handler(http.RedirectHandler(redirectBase, http.StatusFound))
	}

	Router.Handle(prefix("/debug/vars"), expvar.Handler())
	if conf.Web.PProf {
		Router.HandleFunc(prefix("/debug/pprof/"), pprof.Index)
		Router.HandleFunc(prefix("/debug/pprof/cmdline"), pprof.Cmdline)
		Router.HandleFunc(prefix("/debug/pprof/profile"), pprof.Profile)
		Router.HandleFunc(prefix("/debug/pprof/symbol"), pprof.Symbol)
		Router.HandleFunc(prefix("/debug/pprof/trace"), pprof.Trace)
		log.Warn().Str("module", "web").Str("phase", "startup").
			Msg("Go pprof tools installed to " + prefix("/debug/pprof"))
	}

	Router.NotFoundHandler = noMatchHandler(
		http.StatusNotFound, "No route matches URI path")
	Router.MethodNotAllowedHandler = noMatchHandler(
		http.StatusMethodNotAllowed, "Method not allowed for URI path")

	return &Server{
		server: &http.Server{
			Addr:         conf.Web.Addr,
			Handler:      requestLoggingWrapper(Router),
			ReadTimeout:  60 * time.Second,
			WriteTimeout: 60 * time.Second,
		},
		notify: make(chan error, 1),
	}
}

// Start begins listening for HTTP requests, readyFunc is called once the listener is open.
func (s *Server) Start(ctx context.Context, readyFunc func()) {
	var err error
	s.listener, err = net.Listen("tcp", s.server.Addr)
	if err != nil {
		log.Error().Str("module", "web").Str("phase", "startup").Err(err).
			Msg("HTTP failed to start TCP4 listener")
		s.notify <- err
		close(s.notify)
		return
	}
	log.Info().Str("module", "web").Str("phase", "startup").Str("addr", s.listener.Addr().String()).
		Msg("HTTP listening on tcp4")
	readyFunc()

	// Listener go routine.
	go s.serve(ctx)

	// Wait for shutdown.
	<-ctx.Done()
	log.Debug().Str("module", "web").Str("phase", "shutdown").Msg("HTTP server shutting down on request")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.server.Shutdown(shutdownCtx); err != nil {
		log.Error().Str("module", "web").Str("phase", "shutdown").Err(err).
			Msg("Failed to shut down HTTP server")
	}
}

// serve begins serving HTTP requests.
func (s *Server) serve(ctx context.Context) {
	// server.Serve blocks until the server is shut down.
	err := s.server.Serve(s.listener)

	select {
	case <-ctx.Done():
		// Nop
	default:
		log.Error().Str("module", "web").Str("phase", "startup").Err(err).
			Msg("HTTP server failed")
		s.notify <- err
		close(s.notify)
	}
}

// Notify allows the running web server to be monitored for a fatal error.
func (s *Server) Notify() <-chan error {
	return s.notify
}

// Addr returns the address the server is listening on, nil before Start has opened the listener.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}
