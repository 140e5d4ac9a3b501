package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	require.Equal(t, time.Hour, rules.MinDuration)
	require.Equal(t, 24*time.Hour, rules.MaxDuration)
	require.Equal(t, 30*24*time.Hour, rules.MaxAdvance)
	require.Equal(t, time.Hour, rules.CancelGrace)
}

func TestLoad(t *testing.T) {
	t.Run("missing database url", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "")
		t.Setenv("JWT_SECRET", "s3cret")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("missing jwt secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/parkboard")
		t.Setenv("JWT_SECRET", "")
		_, err := Load()
		require.Error(t, err)
	})

	t.Run("defaults applied", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/parkboard")
		t.Setenv("JWT_SECRET", "s3cret")
		t.Setenv("PORT", "")
		t.Setenv("ALLOWED_ORIGINS", "")
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "8080", cfg.Port)
		require.Equal(t, "*", cfg.AllowedOrigins)
		require.Equal(t, DefaultRules(), cfg.Rules)
	})
}
