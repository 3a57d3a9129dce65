package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/KingAbe1/wp-next-blog/internal/api/handlers"
	"github.com/KingAbe1/wp-next-blog/internal/blog"
	"github.com/KingAbe1/wp-next-blog/internal/metrics"
)

// NewRouter creates and configures the HTTP router with the content API,
// the health check and the metrics endpoint. m may be nil.
func NewRouter(engine *blog.Engine, m *metrics.Metrics) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(RequestID)
	r.Use(RequestLogger)
	r.Use(Recovery)
	r.Use(CORS)

	r.Get("/healthz", handlers.Health())
	r.Handle("/metrics", m.Handler())

	// API sub-router.
	r.Route("/api", func(api chi.Router) {
		api.Get("/posts", handlers.ListPosts(engine))
		api.Get("/posts/{slug}", handlers.GetPost(engine))

		api.Get("/categories", handlers.ListCategories(engine))
		api.Get("/categories/{slug}", handlers.GetCategory(engine))
		api.Get("/categories/{slug}/posts", handlers.ListCategoryPosts(engine))
	})

	return r
}
