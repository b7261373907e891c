package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

var corsMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
	http.MethodOptions,
}

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)
	if len(h.corsOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.corsOrigins,
			AllowedMethods:   corsMethods,
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{traceIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}
	router.Use(withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	router.With(h.optionalAuth).Get("/", h.root)
	router.Get("/health", h.health)
	router.Get("/api/version", h.getServerVersion)

	router.Route("/api/v1", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Post("/auth/register", h.register)
			r.Post("/auth/login", h.login)
			r.Post("/auth/login/oauth", h.loginForm)
			r.Post("/auth/refresh", h.refresh)
		})

		// routes for any active principal
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/auth/me", h.me)
			r.Post("/auth/change-password", h.changePassword)

			r.Route("/portfolio", func(r chi.Router) {
				r.Get("/", comingSoon("Portfolio endpoints"))
				r.Post("/", comingSoon("Portfolio creation"))
				r.Get("/{portfolioID}/holdings", comingSoon("Portfolio holdings"))
				r.Post("/{portfolioID}/transactions", comingSoon("Transaction creation"))
			})
			r.Route("/risk", func(r chi.Router) {
				r.Get("/assessment", comingSoon("Risk assessment"))
				r.Post("/scan", comingSoon("Risk scan triggered"))
				r.Get("/alerts", comingSoon("Risk alerts"))
			})
			r.Route("/news", func(r chi.Router) {
				r.Get("/", comingSoon("News monitoring"))
				r.Get("/alerts", comingSoon("News alerts"))
				r.Get("/policy-updates", comingSoon("Policy updates"))
			})
			r.Route("/simulation", func(r chi.Router) {
				r.Post("/run", comingSoon("Disaster simulation"))
				r.Get("/scenarios", comingSoon("Scenario templates"))
				r.Get("/history", comingSoon("Simulation history"))
			})
			r.Route("/playbook", func(r chi.Router) {
				r.Post("/generate", comingSoon("Defense playbook generation"))
				r.Get("/", comingSoon("Defense playbooks"))
				r.Get("/{playbookID}", comingSoon("Specific playbook"))
			})

			// admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(h.adminOnly)

				r.Get("/", h.listUsers)
				r.Get("/{userID}", h.userNotFound)
				r.Put("/{userID}", h.userNotFound)
				r.Delete("/{userID}", h.deleteUser)
			})
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
