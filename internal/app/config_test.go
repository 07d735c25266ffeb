package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("COUNTERDESK_API_TOKEN", "secret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8000", cfg.APIBaseURL)
	assert.Equal(t, "secret", cfg.APIToken)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "$", cfg.CurrencySymbol)
	assert.Equal(t, "pretty", cfg.LogFormat)
}

func TestLoadConfigRequiresToken(t *testing.T) {
	t.Setenv("COUNTERDESK_API_TOKEN", "")

	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("COUNTERDESK_API_TOKEN", "secret")
	t.Setenv("COUNTERDESK_API_BASE_URL", "https://desk.example.com")
	t.Setenv("COUNTERDESK_REQUEST_TIMEOUT", "5s")
	t.Setenv("COUNTERDESK_CURRENCY_SYMBOL", "€")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://desk.example.com", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "€", cfg.CurrencySymbol)
}

func TestTestModeRefresh(t *testing.T) {
	t.Setenv("COUNTERDESK_TEST_MODE", "1")
	RefreshTestMode()
	assert.True(t, InTestMode())

	t.Setenv("COUNTERDESK_TEST_MODE", "")
	RefreshTestMode()
	assert.False(t, InTestMode())
}
