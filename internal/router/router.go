package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/saulo-duarte/habits-lambda/internal/auth"
	"github.com/saulo-duarte/habits-lambda/internal/config"
	"github.com/saulo-duarte/habits-lambda/internal/habit"
	"github.com/saulo-duarte/habits-lambda/internal/metrics"
	"github.com/saulo-duarte/habits-lambda/internal/middlewares"
	"github.com/saulo-duarte/habits-lambda/internal/progress"
)

type RouterConfig struct {
	HabitHandler    *habit.Handler
	ProgressHandler *progress.Handler
	AuthHandler     *auth.Handler
	AllowedOrigins  []string

	// Metrics is instrumented on every route; MetricsHandler, when set, is
	// served on /metrics.
	Metrics        metrics.Recorder
	MetricsHandler http.Handler
}

func New(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.Cors(cfg.AllowedOrigins))
	if cfg.Metrics != nil {
		r.Use(metrics.Middleware(cfg.Metrics))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		config.JSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/auth", func(r chi.Router) {
		r.Post("/logout", cfg.AuthHandler.Logout)
	})

	r.Group(func(r chi.Router) {
		r.Use(auth.AuthMiddleware)

		// habit owns the writes and progress the reads of the same resource, so
		// both register on one /habits subrouter instead of mounting their own.
		r.Route("/habits", func(r chi.Router) {
			habit.Routes(r, cfg.HabitHandler)
			progress.Routes(r, cfg.ProgressHandler)
		})
	})
	return r
}
