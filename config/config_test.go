package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, StoreDriverNocoDB, cfg.Store.Driver)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.SessionExpiry)
	assert.Equal(t, "mistral-large-latest", cfg.LLM.Model)
	assert.Equal(t, 100, cfg.NocoDB.PageSize)
	assert.Nil(t, cfg.LLM.Temperature)
	assert.Equal(t, []string{"*"}, cfg.App.AllowedOrigins)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())
	t.Setenv("NOCODB_AUTH_TOKEN", "legacy-token")
	t.Setenv("MISTRAL_API_KEY", "mistral-key")
	t.Setenv("LLM_TEMPERATURE", "0.7")
	t.Setenv("JWT_SESSION_EXPIRY", "not-a-duration")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "legacy-token", cfg.NocoDB.APIToken)
	assert.Equal(t, "mistral-key", cfg.LLM.APIKey)
	require.NotNil(t, cfg.LLM.Temperature)
	assert.InDelta(t, 0.7, *cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 30*24*time.Hour, cfg.JWT.SessionExpiry)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
}
