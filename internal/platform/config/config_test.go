package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, []string{"EUR", "USD", "GBP"}, cfg.Currencies)
		assert.Equal(t, "PLN", cfg.LocalCurrency)
		assert.Equal(t, "https://api.nbp.pl/api", cfg.RateAPIURL)
		assert.Equal(t, "A", cfg.RateTable)
		assert.Equal(t, "./data/database.json", cfg.DatabasePath)
		assert.Equal(t, "8080", cfg.Port)
		assert.False(t, cfg.Debug)
	})

	t.Run("Environment overrides", func(t *testing.T) {
		t.Setenv("CURRENCIES", "eur, chf ,jpy")
		t.Setenv("LOCAL_CURRENCY", "eur")
		t.Setenv("RATE_TABLE", "B")
		t.Setenv("DEBUG", "true")

		cfg, err := LoadConfig()

		require.NoError(t, err)
		assert.Equal(t, []string{"EUR", "CHF", "JPY"}, cfg.Currencies)
		assert.Equal(t, "EUR", cfg.LocalCurrency)
		assert.Equal(t, "B", cfg.RateTable)
		assert.True(t, cfg.Debug)
	})
}

func TestIsAllowedCurrency(t *testing.T) {
	cfg := &Config{
		Currencies:    []string{"EUR", "USD"},
		LocalCurrency: "PLN",
	}

	assert.True(t, cfg.IsAllowedCurrency("EUR"))
	assert.True(t, cfg.IsAllowedCurrency("USD"))
	assert.True(t, cfg.IsAllowedCurrency("PLN"), "local currency is always allowed")
	assert.False(t, cfg.IsAllowedCurrency("CHF"))
	assert.False(t, cfg.IsAllowedCurrency("eur"), "codes are case sensitive")
}
