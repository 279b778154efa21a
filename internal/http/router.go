package http

import (
	"log/slog"
	nethttp "net/http"

	"github.com/gorilla/mux"

	"github.com/preston-bernstein/nhl-odds-service/internal/http/handlers"
	"github.com/preston-bernstein/nhl-odds-service/internal/http/middleware"
	"github.com/preston-bernstein/nhl-odds-service/internal/metrics"
)

// Routes groups the handlers mounted by NewRouter. Static and Admin are optional.
type Routes struct {
	API    *handlers.Handler
	Static *handlers.StaticHandler
	Admin  *handlers.AdminHandler
}

// NewRouter registers HTTP routes on a gorilla/mux router.
// CORS wraps the router so preflight requests are answered even for GET-only routes.
func NewRouter(routes Routes, logger *slog.Logger, recorder *metrics.Recorder) nethttp.Handler {
	r := mux.NewRouter()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger, recorder))

	r.HandleFunc("/health", routes.API.Health).Methods(nethttp.MethodGet)
	r.HandleFunc("/ready", routes.API.Ready).Methods(nethttp.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	// Subrouters do not inherit the root's fallback handlers.
	api.NotFoundHandler = nethttp.HandlerFunc(notFound)
	api.MethodNotAllowedHandler = nethttp.HandlerFunc(methodNotAllowed)
	api.HandleFunc("/predictions", routes.API.Predictions).Methods(nethttp.MethodGet)
	api.HandleFunc("/predictions/history", routes.API.History).Methods(nethttp.MethodGet)
	api.HandleFunc("/predictions/latest", routes.API.Latest).Methods(nethttp.MethodGet)

	if routes.Admin != nil {
		r.HandleFunc("/admin/predictions/refresh", routes.Admin.RefreshDocument).Methods(nethttp.MethodPost)
	}
	if routes.Static != nil {
		r.HandleFunc("/", routes.Static.Index).Methods(nethttp.MethodGet)
		r.PathPrefix("/static/").Handler(routes.Static.Assets("/static/")).Methods(nethttp.MethodGet)
	}

	r.NotFoundHandler = nethttp.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = nethttp.HandlerFunc(methodNotAllowed)
	return middleware.CORS(r)
}

func notFound(w nethttp.ResponseWriter, _ *nethttp.Request) {
	writeStatus(w, nethttp.StatusNotFound, `{"error":"not found"}`)
}

func methodNotAllowed(w nethttp.ResponseWriter, _ *nethttp.Request) {
	writeStatus(w, nethttp.StatusMethodNotAllowed, `{"error":"method not allowed"}`)
}

func writeStatus(w nethttp.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body + "\n"))
}
