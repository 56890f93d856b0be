// Package httptransport assembles the public router: middleware chain, auth
// and task routes, and the operational endpoints.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "taskdeck/internal/auth/handler"
	"taskdeck/internal/platform/metrics"
	"taskdeck/internal/platform/middleware"
	taskhandler "taskdeck/internal/task/handler"
)

// Deps carries everything the router mounts.
type Deps struct {
	Logger   *slog.Logger
	Metrics  *metrics.Metrics
	Auth     *authhandler.Handler
	Tasks    *taskhandler.Handler
	Resolver middleware.TokenResolver
	Health   func() error
}

// NewRouter wires all endpoints. Auth routes are public; task routes require
// a valid access token.
func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(middleware.ContentTypeJSON)
	r.Use(middleware.Latency(d.Metrics))

	d.Auth.Register(r)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.Resolver, d.Logger))
		d.Tasks.Register(r)
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if d.Health != nil {
			if err := d.Health(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	return r
}
