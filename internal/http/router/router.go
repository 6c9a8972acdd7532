// Package router arma el árbol de rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httpx "github.com/neogulmap/neogulmap/internal/http"
	"github.com/neogulmap/neogulmap/internal/http/handlers"
	"github.com/neogulmap/neogulmap/internal/store/core"
)

// Deps son las dependencias del router.
type Deps struct {
	Log      *zap.Logger
	Handlers *handlers.Handlers
	Store    core.UserRepository
	Registry prometheus.Registerer
}

// New registra todas las rutas y middlewares.
func New(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(httpx.RequestID)
	r.Use(httpx.MetricsMiddleware)
	r.Use(httpx.AccessLog(d.Log))

	metricsHandler := httpx.RegisterMetrics(d.Registry)
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		if err := d.Store.Ping(req.Context()); err != nil {
			httpx.WriteError(w, http.StatusServiceUnavailable, "not_ready", "store no disponible", 1001)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	})

	h := d.Handlers
	r.Route("/v1/auth", func(r chi.Router) {
		r.Get("/providers", h.Providers)
		r.Get("/social/{provider}/start", h.SocialStart)
		r.Get("/social/{provider}/callback", h.SocialCallback)
		r.Post("/refresh", h.Refresh)
		r.Post("/signup", h.CompleteProfile)
		r.Get("/me", h.Me)
		r.Post("/logout", h.Logout)
	})

	return r
}
