package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/picourse/api/internal/metrics"
)

// NewRouter wires all routes and the middleware stack.
func NewRouter(h *Handler, db Pinger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(observe)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", h.Health(db))
	r.Method("GET", "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.Post("/refresh", h.Refresh)
		})

		// Public discovery
		r.Get("/subjects", h.ListSubjects)
		r.Route("/tutors", func(r chi.Router) {
			r.Get("/", h.ListTutors)
			r.Get("/{id}", h.GetTutor)
		})

		// Authenticated
		r.Group(func(r chi.Router) {
			r.Use(h.authenticate)

			r.Get("/me", h.Me)
			r.Patch("/me", h.UpdateMe)

			r.Route("/lesson-requests", func(r chi.Router) {
				r.Get("/", h.ListLessonRequests)
				r.Post("/", h.CreateLessonRequest)
				r.Patch("/{id}", h.UpdateLessonRequest)
			})
		})
	})

	return r
}
