package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/socialpulse/engine/internal/middleware"
	"github.com/socialpulse/engine/pkg/logger"
)

// Handlers aggregates every domain handler the router mounts, following
// the teacher's pattern of a single struct gathering one *XHandler per
// concern.
type Handlers struct {
	Health   *HealthHandler
	Events   *EventsHandler
	Schedule *ScheduleHandler
}

// NewRouter builds the chi router for the engine's HTTP surface (spec
// §4.12): global middleware, health probes unauthenticated, and the
// brand-scoped v1 API.
func NewRouter(h Handlers, log *logger.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(60 * time.Second))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Brand-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/v1/healthz", h.Health.Check)
	r.Get("/v1/readyz", h.Health.Ready)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.BrandContext())

		r.Post("/events", h.Events.Ingest)

		r.Route("/schedule", func(r chi.Router) {
			r.Post("/", h.Schedule.Create)
			r.Post("/bulk", h.Schedule.Bulk)
			r.Get("/calendar", h.Schedule.Calendar)
			r.Patch("/{id}", h.Schedule.Update)
			r.Delete("/{id}", h.Schedule.Cancel)
		})
	})

	return r
}
