package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration. It is passed explicitly into the
// store, the rate client and the services so nothing depends on process-wide
// state.
type Config struct {
	// Currencies is the allow-list of foreign currency codes.
	Currencies []string
	// LocalCurrency is the base currency all foreign amounts convert into.
	// It is always implicitly allowed.
	LocalCurrency string
	// RateAPIURL is the base URL of the rate authority API.
	RateAPIURL string
	// RateTable is the quotation table identifier, a single letter.
	RateTable string
	// DatabasePath is the location of the persisted JSON document.
	DatabasePath string
	// Port is the HTTP listen port for server mode.
	Port string
	// Debug enables debug-level logging.
	Debug bool
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("CURRENCIES", "EUR,USD,GBP")
	viper.SetDefault("LOCAL_CURRENCY", "PLN")
	viper.SetDefault("RATE_API_URL", "https://api.nbp.pl/api")
	viper.SetDefault("RATE_TABLE", "A")
	viper.SetDefault("DATABASE_PATH", "./data/database.json")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)

	viper.AutomaticEnv()

	cfg := &Config{
		LocalCurrency: strings.ToUpper(viper.GetString("LOCAL_CURRENCY")),
		RateAPIURL:    viper.GetString("RATE_API_URL"),
		RateTable:     viper.GetString("RATE_TABLE"),
		DatabasePath:  viper.GetString("DATABASE_PATH"),
		Port:          viper.GetString("PORT"),
		Debug:         viper.GetBool("DEBUG"),
	}

	for _, code := range strings.Split(viper.GetString("CURRENCIES"), ",") {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" {
			cfg.Currencies = append(cfg.Currencies, code)
		}
	}

	return cfg, nil
}

// IsAllowedCurrency reports whether a code is on the allow-list. The local
// currency is always allowed.
func (c *Config) IsAllowedCurrency(code string) bool {
	if code == c.LocalCurrency {
		return true
	}
	for _, allowed := range c.Currencies {
		if code == allowed {
			return true
		}
	}
	return false
}
