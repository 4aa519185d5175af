package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOCKOUT_THRESHOLD", "")
	t.Setenv("LOCKOUT_DURATION", "")
	t.Setenv("GROUNDING_CONTEXT_MAX_BYTES", "")

	cfg := Load()
	assert.Equal(t, 3, cfg.Auth.LockoutThreshold)
	assert.Equal(t, 30*time.Second, cfg.Auth.LockoutDuration)
	assert.Equal(t, 200000, cfg.Knowledge.GroundingContextMaxBytes)
	assert.Equal(t, 500*1024, cfg.Knowledge.MaxAudioClipBytes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOCKOUT_DURATION", "45s")
	t.Setenv("LLM_TEMPERATURE", "0.9")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := Load()
	assert.Equal(t, 45*time.Second, cfg.Auth.LockoutDuration)
	assert.InDelta(t, 0.9, cfg.Ai.Temperature, 1e-9)
	assert.True(t, cfg.App.OtelEnabled)
	assert.Equal(t, "test-secret", cfg.Keys.JWTSecret)
}

func TestGetEnvHelpers_FallBackOnGarbage(t *testing.T) {
	t.Setenv("X_INT", "abc")
	t.Setenv("X_DUR", "soon")
	t.Setenv("X_BOOL", "maybe")
	assert.Equal(t, 7, getEnvAsInt("X_INT", 7))
	assert.Equal(t, time.Minute, getEnvAsDuration("X_DUR", time.Minute))
	assert.False(t, getEnvAsBool("X_BOOL", false))
}
