package infra

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// В каталоге пакета нет config.yaml, поэтому LoadConfig обязан
// отработать на дефолтах, без файла.
func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)

	assert.Equal(t, "http://localhost:3000", cfg.Gateway.AllowedOrigin)
	assert.Equal(t, "http://localhost:8081", cfg.Gateway.Services["customer-service"])
	assert.Equal(t, "http://localhost:8082", cfg.Gateway.Services["policy-service"])
	assert.Equal(t, "http://localhost:8083", cfg.Gateway.Services["auth-service"])

	// retry_attempts=1 — исходящий lookup без повторов по умолчанию
	assert.EqualValues(t, 1, cfg.Clients.RetryAttempts)
	assert.Equal(t, 10*time.Second, cfg.Clients.Timeout)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9001")
	t.Setenv("GATEWAY_ALLOWED_ORIGIN", "http://front.internal")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, "http://front.internal", cfg.Gateway.AllowedOrigin)
}
