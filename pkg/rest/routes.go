// Package rest serves the JSON and websocket API of the viewer.
package rest

import (
	"github.com/gorilla/mux"
	"github.com/tmviewer/tmviewer/pkg/server/web"
)

// SetupRoutes populates the routes for the REST interface
func SetupRoutes(r *mux.Router) {
	// API v1
	r.Path("/v1/emails").Handler(
		web.Handler(EmailListV1)).Name("EmailListV1").Methods("GET")
	r.Path("/v1/emails/{index:[0-9]+}").Handler(
		web.Handler(EmailShowV1)).Name("EmailShowV1").Methods("GET")
	r.Path("/v1/fetch").Handler(
		web.Handler(FetchV1)).Name("FetchV1").Methods("POST")
	r.Path("/v1/monitor").Handler(
		web.Handler(MonitorV1)).Name("MonitorV1").Methods("GET")
}
