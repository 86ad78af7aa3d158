package config

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	s, err := load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, 8080, s.Port)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "UTC", s.DefaultTimezone)
	assert.False(t, s.CacheEnabled)
	assert.Equal(t, 10*time.Minute, s.CacheTTL)
	assert.True(t, s.MetricsEnabled)
	assert.True(t, s.RunMigrations)
	assert.Equal(t, time.UTC, s.Location())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_DSN", "postgres://localhost/habits")
	t.Setenv("CACHE_ENABLED", "true")
	t.Setenv("CACHE_SIZE_MB", "4")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	s, err := load(viper.New())

	require.NoError(t, err)
	assert.Equal(t, 9090, s.Port)
	assert.Equal(t, "postgres://localhost/habits", s.DatabaseDSN)
	assert.True(t, s.CacheEnabled)
	assert.Equal(t, 4, s.CacheSizeMB)
	assert.Equal(t, 30*time.Second, s.CacheTTL)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, s.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad port", map[string]string{"PORT": "70000"}},
		{"unknown zone", map[string]string{"DEFAULT_TIMEZONE": "Nowhere/Zone"}},
		{"cache without size", map[string]string{"CACHE_ENABLED": "true", "CACHE_SIZE_MB": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(viper.New())
			assert.Error(t, err)
		})
	}
}

func TestWithContext_AddsRequestAndUser(t *testing.T) {
	var buf bytes.Buffer
	Logger.SetOutput(&buf)
	Logger.SetFormatter(&logrus.JSONFormatter{})
	t.Cleanup(func() { InitLogger("info") })

	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-1")
	ctx = ContextWithUserID(ctx, "user-1")
	WithContext(ctx).Info("hello")

	assert.Contains(t, buf.String(), `"request_id":"req-1"`)
	assert.Contains(t, buf.String(), `"user_id":"user-1"`)
}

func TestError_WritesJSONBody(t *testing.T) {
	rr := httptest.NewRecorder()

	Error(rr, http.StatusConflict, "already there")

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"already there"}`, rr.Body.String())
}
