package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/palmledger/palmledger/internal/auth"
	"github.com/palmledger/palmledger/internal/chat"
	"github.com/palmledger/palmledger/internal/dashboard"
	"github.com/palmledger/palmledger/internal/fertilizer"
	"github.com/palmledger/palmledger/internal/harvest"
	"github.com/palmledger/palmledger/internal/notes"
	"github.com/palmledger/palmledger/internal/observability"
	"github.com/palmledger/palmledger/internal/palmtree"
	"github.com/palmledger/palmledger/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger            *slog.Logger
	Config            *Config
	AuthMiddleware    *auth.Middleware
	AuthHandler       *auth.Handler
	HarvestHandler    *harvest.Handler
	FertilizerHandler *fertilizer.Handler
	PalmTreeHandler   *palmtree.Handler
	NotesHandler      *notes.Handler
	ChatHandler       *chat.Handler
	DashboardHandler  *dashboard.Handler
	JobHandler        *jobs.Handler
	Metrics           *observability.Metrics
}

// NewRouter constructs the chi.Router with application defaults.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:  params.Logger,
		Config:  params.Config,
		Metrics: params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", params.AuthHandler.MountRoutes)

		r.Group(func(r chi.Router) {
			r.Use(params.AuthMiddleware.RequireAuth)

			r.Route("/harvest", params.HarvestHandler.MountRoutes)
			r.Route("/fertilizer", params.FertilizerHandler.MountRoutes)
			r.Route("/palmtrees", params.PalmTreeHandler.MountRoutes)
			r.Route("/notes", params.NotesHandler.MountRoutes)
			r.Route("/chat", params.ChatHandler.MountRoutes)
			r.Route("/dashboard", params.DashboardHandler.MountRoutes)

			r.Group(func(r chi.Router) {
				r.Use(params.AuthMiddleware.RequireAdmin)
				r.Route("/users", params.AuthHandler.MountUserRoutes)
				if params.JobHandler != nil {
					r.Route("/jobs", params.JobHandler.MountRoutes)
				}
			})
		})
	})

	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	return r
}
