package container

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"

	"github.com/saulo-duarte/habits-lambda/internal/auth"
	"github.com/saulo-duarte/habits-lambda/internal/completion"
	"github.com/saulo-duarte/habits-lambda/internal/config"
	"github.com/saulo-duarte/habits-lambda/internal/habit"
	"github.com/saulo-duarte/habits-lambda/internal/metrics"
	"github.com/saulo-duarte/habits-lambda/internal/migrations"
	"github.com/saulo-duarte/habits-lambda/internal/progress"
	"github.com/saulo-duarte/habits-lambda/internal/router"
)

type Container struct {
	Settings          *config.Settings
	HabitContainer    *habit.HabitContainer
	ProgressContainer *progress.ProgressContainer
	AuthHandler       *auth.Handler
	Metrics           metrics.Recorder
	MetricsHandler    http.Handler
}

func New(ctx context.Context, s *config.Settings) (*Container, error) {
	config.InitLogger(s.LogLevel)
	auth.Init(s.JWTSecret)

	if err := config.Connect(ctx, s.DatabaseDSN); err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if s.RunMigrations {
		sqlDB, err := config.DB.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}
		if err := migrations.Up(ctx, sqlDB); err != nil {
			return nil, err
		}
	}

	var (
		rec         metrics.Recorder = metrics.Noop{}
		metricsHTTP http.Handler
	)
	if s.MetricsEnabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		p := metrics.NewPrometheus(reg)
		rec, metricsHTTP = p, p.Handler()
	}

	cache := progress.NewNoopStreakCache()
	if s.CacheEnabled {
		cache = progress.NewStreakCache(s.CacheSizeMB, int(s.CacheTTL.Seconds()))
	}

	habitContainer := habit.NewHabitContainer(config.DB)
	progressContainer := progress.NewProgressContainer(
		habitContainer.Repo,
		completion.NewRepository(config.DB),
		cache,
		rec,
		s.Location(),
	)
	habitContainer.Wire(progressContainer.Engine)

	config.Logger.WithFields(logrus.Fields{
		"cache_enabled":   s.CacheEnabled,
		"metrics_enabled": s.MetricsEnabled,
		"timezone":        s.DefaultTimezone,
	}).Info("Container initialized")

	return &Container{
		Settings:          s,
		HabitContainer:    habitContainer,
		ProgressContainer: progressContainer,
		AuthHandler:       auth.NewHandler(s.CookieDomain),
		Metrics:           rec,
		MetricsHandler:    metricsHTTP,
	}, nil
}

func (c *Container) Router() *chi.Mux {
	return router.New(router.RouterConfig{
		HabitHandler:    c.HabitContainer.Handler,
		ProgressHandler: c.ProgressContainer.Handler,
		AuthHandler:     c.AuthHandler,
		AllowedOrigins:  c.Settings.AllowedOrigins,
		Metrics:         c.Metrics,
		MetricsHandler:  c.MetricsHandler,
	})
}
