package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 0.75, cfg.KBRelevanceThreshold)
	assert.Equal(t, 10*time.Second, cfg.FacadeCallTimeout)
	assert.Equal(t, "Support", cfg.TicketQueue)
	assert.Equal(t, "Hardware Support", cfg.HardwareQueue)
	assert.False(t, cfg.UseRedisKB)
	assert.Nil(t, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("KB_RELEVANCE_THRESHOLD", "0.9")
	t.Setenv("FACADE_CALL_TIMEOUT", "3s")
	t.Setenv("USE_REDIS_KB", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 0.9, cfg.KBRelevanceThreshold)
	assert.Equal(t, 3*time.Second, cfg.FacadeCallTimeout)
	assert.True(t, cfg.UseRedisKB)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadIgnoresInvalidValues(t *testing.T) {
	t.Setenv("KB_RELEVANCE_THRESHOLD", "not-a-number")
	t.Setenv("FACADE_CALL_TIMEOUT", "soon")
	t.Setenv("USE_REDIS_KB", "yep")

	cfg := Load()

	assert.Equal(t, 0.75, cfg.KBRelevanceThreshold)
	assert.Equal(t, 10*time.Second, cfg.FacadeCallTimeout)
	assert.False(t, cfg.UseRedisKB)
}
