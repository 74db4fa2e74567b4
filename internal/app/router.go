package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hireboard/hireboard/internal/applications"
	"github.com/hireboard/hireboard/internal/auth"
	"github.com/hireboard/hireboard/internal/companies"
	"github.com/hireboard/hireboard/internal/jobs"
	"github.com/hireboard/hireboard/internal/observability"
	"github.com/hireboard/hireboard/internal/users"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger              *slog.Logger
	Config              *Config
	AuthHandler         *auth.Handler
	UsersHandler        *users.Handler
	JobsHandler         *jobs.Handler
	CompaniesHandler    *companies.Handler
	ApplicationsHandler *applications.Handler
	Metrics             *observability.Metrics
}

// NewRouter constructs the chi.Router with Hireboard defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/session", params.AuthHandler.MountRoutes)
	r.Route("/users", func(r chi.Router) {
		params.UsersHandler.MountRoutes(r)
		if params.ApplicationsHandler != nil {
			params.ApplicationsHandler.MountUserRoutes(r)
		}
	})
	r.Route("/jobs", func(r chi.Router) {
		params.JobsHandler.MountRoutes(r)
		if params.ApplicationsHandler != nil {
			params.ApplicationsHandler.MountJobRoutes(r)
		}
	})
	if params.CompaniesHandler != nil {
		r.Route("/companies", params.CompaniesHandler.MountRoutes)
	}
	if params.ApplicationsHandler != nil {
		r.Route("/applications", params.ApplicationsHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
