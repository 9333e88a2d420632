package main

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crucial707/file-comparator/internal/config"
	"github.com/crucial707/file-comparator/internal/handlers"
	"github.com/crucial707/file-comparator/internal/middleware"
	"github.com/crucial707/file-comparator/internal/repo"
)

// newRouter wires the full HTTP API: middleware chain, public auth routes,
// and the token-protected comparison routes.
func newRouter(db *sql.DB, cfg config.Config) chi.Router {
	userRepo := repo.NewUserRepo(db)
	comparisonRepo := repo.NewComparisonRepo(db)

	authHandler := &handlers.AuthHandler{UserRepo: userRepo, Secret: []byte(cfg.JWTSecret)}
	compareHandler := &handlers.CompareHandler{UploadDir: cfg.UploadDir}
	comparisonHandler := &handlers.ComparisonHandler{Repo: comparisonRepo}
	healthHandler := &handlers.HealthHandler{DB: db}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Prometheus)
	r.Use(middleware.SecurityHeaders(cfg.TLSCertFile != "" && cfg.TLSKeyFile != ""))
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/api/test-db", healthHandler.TestDB)
	r.Get("/uploads/*", compareHandler.ServeUpload)

	// Public auth routes, rate limited per IP.
	authLimiter := middleware.AuthRateLimiter()
	r.Group(func(r chi.Router) {
		r.Use(authLimiter.Middleware)
		r.Use(middleware.MaxBytes(middleware.DefaultMaxBodyBytes))
		r.Post("/api/register", authHandler.Register)
		r.Post("/api/login", authHandler.Login)
	})

	// Token-protected routes.
	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTMiddleware([]byte(cfg.JWTSecret)))
		r.With(middleware.MaxBytes(middleware.DefaultMaxUploadBytes)).
			Post("/api/compare", compareHandler.Compare)
		r.With(middleware.MaxBytes(middleware.DefaultMaxBodyBytes)).
			Post("/api/save-comparison", comparisonHandler.Save)
		r.Get("/api/my-comparisons", comparisonHandler.List)
		r.Delete("/api/comparison/{id}", comparisonHandler.Delete)
	})

	return r
}
