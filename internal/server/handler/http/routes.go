package http

import (
	"net/http"

	"github.com/atinyakov/PageGuard/internal/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// UnlockPath is where challenge forms post password submissions.
const UnlockPath = "/api/unlock"

// Handlers groups the endpoint handlers mounted by NewRouter.
type Handlers struct {
	Render     *RenderHandler
	Unlock     *UnlockHandler
	Session    *SessionHandler
	Protection *ProtectionHandler
	Settings   *SettingsHandler
}

// NewRouter constructs the HTTP handler that serves the PageGuard API.
//
// Routes:
//
//	POST   /api/render                            → Render   (establishes a session)
//	POST   /api/unlock                            → Unlock   (existing session only)
//	DELETE /api/session                           → Session.End
//	GET    /api/admin/items/{itemID}/protection   → Protection.Get
//	PUT    /api/admin/items/{itemID}/protection   → Protection.Put
//	DELETE /api/admin/protections                 → Protection.Purge
//	GET    /api/admin/settings                    → Settings.Get
//	PUT    /api/admin/settings                    → Settings.Put
//	GET    /metrics                               → Prometheus
//
// Admin routes require the bearer token; an empty token disables them.
func NewRouter(
	h Handlers,
	sessions *middleware.Sessions,
	adminToken string,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(chiMiddleware.Recoverer)
	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.With(sessions.Establish).Post("/render", h.Render.Render)
		r.With(sessions.Load).Post("/unlock", h.Unlock.Unlock)
		r.With(sessions.Load).Delete("/session", h.Session.End)

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.AdminAuth(adminToken))
			r.Get("/items/{itemID}/protection", h.Protection.Get)
			r.Put("/items/{itemID}/protection", h.Protection.Put)
			r.Delete("/protections", h.Protection.Purge)
			r.Get("/settings", h.Settings.Get)
			r.Put("/settings", h.Settings.Put)
		})
	})

	return r
}
