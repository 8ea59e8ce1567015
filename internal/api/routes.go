package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/heptareview/internal/errors"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(loggingMiddleware)
	r.Use(recoveryMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Route("/cards", func(r chi.Router) {
			r.Get("/", s.handleListCards)
			r.Post("/", s.handleCreateCard)
			r.Get("/{id}", s.handleGetCard)
			r.Put("/{id}", s.handleUpdateCard)
			r.Delete("/{id}", s.handleDeleteCard)
			r.Get("/{id}/reviews", s.handleCardReviews)
		})

		r.Post("/reviews", s.handleSubmitReview)
		r.Get("/reviews/today", s.handleDueToday)

		r.Get("/subjects", s.handleListSubjects)
		r.Post("/subjects", s.handleCreateSubject)
		r.Delete("/subjects/{id}", s.handleDeleteSubject)

		r.Get("/stats", s.handleStats)
		r.Get("/stats/subject-distribution", s.handleSubjectDistribution)
		r.Get("/stats/familiarity-distribution", s.handleFamiliarityDistribution)

		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			handleError(w, r, errors.NewNotFoundError("route", r.URL.Path))
		})
	})
	return r
}
