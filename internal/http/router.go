package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nhl-schedule-pressure/internal/http/handlers"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/http/middleware"
	"github.com/preston-bernstein/nhl-schedule-pressure/internal/metrics"
)

// Routes collects the handlers mounted on the router. Admin and MCP are optional.
type Routes struct {
	Handler  *handlers.Handler
	Admin    *handlers.AdminHandler
	MCP      nethttp.Handler
	Logger   *slog.Logger
	Recorder *metrics.Recorder
}

// NewRouter registers HTTP routes on a gorilla/mux router wrapped with request logging.
func NewRouter(routes Routes) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.Logging(routes.Logger, routes.Recorder))

	h := routes.Handler
	r.HandleFunc("/health", h.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", h.Ready).Methods(nethttp.MethodGet)
	r.HandleFunc("/loads", h.Loads).Methods(nethttp.MethodGet)
	r.HandleFunc("/loads/{team}", h.TeamLoad).Methods(nethttp.MethodGet)
	r.HandleFunc("/games", h.Games).Methods(nethttp.MethodGet)

	if routes.Admin != nil {
		r.HandleFunc("/admin/refresh", routes.Admin.Refresh).Methods(nethttp.MethodPost)
	}
	if routes.MCP != nil {
		r.PathPrefix("/mcp").Handler(routes.MCP)
	}

	r.NotFoundHandler = middleware.LoggingMiddleware(routes.Logger, routes.Recorder, handlers.NotFound(routes.Logger))
	r.MethodNotAllowedHandler = middleware.LoggingMiddleware(routes.Logger, routes.Recorder, handlers.MethodNotAllowed(routes.Logger))
	return r
}
