package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mostafaosama999/Marketing-agent-sub006/internal/api/handlers"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/api/middleware"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/config"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/logger"
	"github.com/mostafaosama999/Marketing-agent-sub006/internal/pkg/metrics"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Rule   *handlers.RuleHandler
	Ticket *handlers.TicketHandler
	Writer *handlers.WriterHandler
	Client *handlers.ClientHandler
	Alert  *handlers.AlertHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200))
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)
		r.Handle("/metrics", metrics.Handler())
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		r.Route("/api/v1", func(r chi.Router) {
			r.Route("/rules", func(r chi.Router) {
				r.Get("/", h.Rule.List)
				r.Post("/", h.Rule.Create)
				r.Post("/test", h.Rule.TestAdhoc)
				r.Get("/watch", h.Rule.Watch)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Rule.Get)
					r.Put("/", h.Rule.Update)
					r.Delete("/", h.Rule.Delete)
					r.Patch("/enabled", h.Rule.SetEnabled)
					r.Post("/test", h.Rule.Test)
				})
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Get("/", h.Ticket.List)
				r.Get("/statuses", h.Ticket.Statuses)
			})
			r.Get("/writers", h.Writer.List)
			r.Get("/clients", h.Client.List)

			r.Route("/alerts", func(r chi.Router) {
				r.Get("/", h.Alert.List)
				r.Get("/summary", h.Alert.Summary)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.Alert.Get)
					r.Patch("/status", h.Alert.UpdateStatus)
					r.Delete("/", h.Alert.Delete)
				})
			})
		})
	})

	return r
}
