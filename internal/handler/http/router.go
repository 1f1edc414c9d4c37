package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/planboard/capacity-backend-go/internal/handler/http/middleware"
	"github.com/planboard/capacity-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	frontendURL string,
	env string,
	authHandler AuthHandler,
	reportHandler ReportHandler,
	assignmentHandler AssignmentHandler,
	catalogHandler CatalogHandler,
	feedHandler FeedHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "capacity-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// SSE stream authenticates through a short-lived token in the
		// query string, not the Authorization header.
		r.Get("/events", feedHandler.Stream)

		// Development-only bootstrap; the handler 404s in any other env.
		r.Post("/auth/dev-token", authHandler.DevToken)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/assignments", func(r chi.Router) {
				r.Get("/", assignmentHandler.List)
				r.Put("/", assignmentHandler.Upsert)
				r.Put("/bulk", assignmentHandler.BulkUpsert)
				r.Delete("/{id}", assignmentHandler.Delete)
			})

			r.Route("/reports", func(r chi.Router) {
				r.Route("/revenue", func(r chi.Router) {
					r.Get("/monthly", reportHandler.RevenueMonthly)
					r.Get("/quarterly", reportHandler.RevenueQuarterly)
					r.Get("/annual", reportHandler.RevenueAnnual)
				})
				r.Get("/licenses/{week}", reportHandler.LicenseDemand)
				r.Route("/capacity", func(r chi.Router) {
					r.Get("/", reportHandler.Capacity)
					r.Get("/free-by-week", reportHandler.FreeCapacityByWeek)
				})
			})

			r.Route("/catalog", func(r chi.Router) {
				r.Get("/engineers", catalogHandler.ListEngineers)
				r.Get("/projects", catalogHandler.ListProjects)
				r.Get("/projects/{code}", catalogHandler.GetProject)
				r.Get("/licenses", catalogHandler.ListLicenses)
				r.Get("/customers", catalogHandler.ListCustomers)
				r.Get("/programs", catalogHandler.ListPrograms)
			})

			r.Post("/refresh", feedHandler.Refresh)
			r.Get("/events/token", feedHandler.GetSSEToken)
		})
	})
	return r
}
