package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/deps"
	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/ldsnotes/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

// registerAPI mounts /api behind one shared per-IP limiter. Session routes
// are additionally host-enforced.
func registerAPI(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateBurst,
		RefillPerIPPerMin: d.RatePerMin,
		MaxEntries:        10000,
		TrustProxy:        d.TrustProxy,
	})
	hostOnly := mw.EnforceHost(d.AllowedHosts, d.Logger)

	r.Route("/api", func(api chi.Router) {
		api.Use(limit)

		api.With(hostOnly).Post("/session", handlers.CreateSession(d))
		api.With(hostOnly).Delete("/session", handlers.DeleteSession(d))

		api.Get("/annotations", handlers.Annotations(d))
		api.Get("/annotations/markdown", handlers.AnnotationsMarkdown(d))
		api.Get("/tags", handlers.Tags(d))
		api.Get("/folders", handlers.Folders(d))
		api.Get("/content", handlers.Content(d))
	})
}
