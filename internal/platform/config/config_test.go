package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(newViper(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "file://migrations", cfg.MigrationsPath)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "quarry-billing", cfg.JWTIssuer)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, "300-M", cfg.RateLimit)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.True(t, cfg.MetricsEnabled)
	assert.Empty(t, cfg.CORSAllowedOrigins)
}

func TestFromViper_Overrides(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{
		"PORT":                 "9090",
		"JWT_SECRET":           "prod-secret",
		"JWT_EXPIRY_DURATION":  "30m",
		"CORS_ALLOWED_ORIGINS": "https://billing.example.com, http://localhost:5173 ,",
		"IS_PRODUCTION":        true,
	}))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, []string{"https://billing.example.com", "http://localhost:5173"}, cfg.CORSAllowedOrigins)
}

func TestFromViper_InvalidExpiryFallsBack(t *testing.T) {
	cfg, err := fromViper(newViper(map[string]any{"JWT_EXPIRY_DURATION": "soon"}))
	require.NoError(t, err)
	assert.Equal(t, 12*time.Hour, cfg.JWTExpiryDuration)
}

func TestFromViper_ProductionRequiresSecret(t *testing.T) {
	_, err := fromViper(newViper(map[string]any{"IS_PRODUCTION": true}))
	assert.Error(t, err)
}
