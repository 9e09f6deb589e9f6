package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"invoicefx/internal/apperrors"
	"invoicefx/internal/infrastructure/logger"
	"invoicefx/internal/platform/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClientConfig(baseURL string) *config.Config {
	return &config.Config{
		Currencies:    []string{"EUR", "USD", "GBP"},
		LocalCurrency: "PLN",
		RateAPIURL:    baseURL,
		RateTable:     "A",
	}
}

func newTestClient(cfg *config.Config) *NBPAPIClient {
	log := logger.NewJSONLogger(io.Discard, logger.ErrorLevel)
	return NewNBPAPIClient(cfg, &http.Client{Timeout: 2 * time.Second}, log)
}

func TestGetExchangeRate(t *testing.T) {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Successful response is parsed into a quote", func(t *testing.T) {
		var gotPath, gotQuery string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotQuery = r.URL.RawQuery
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"table": "A",
				"currency": "euro",
				"code": "EUR",
				"rates": [{"no": "001/A/NBP/2024", "effectiveDate": "2024-01-02", "mid": 4.3434}]
			}`))
		}))
		defer server.Close()

		client := newTestClient(testClientConfig(server.URL))

		quote, err := client.GetExchangeRate(context.Background(), "EUR", date)

		require.NoError(t, err)
		assert.Equal(t, "/exchangerates/rates/A/EUR/2024-01-02/", gotPath)
		assert.Equal(t, "format=json", gotQuery)
		assert.Equal(t, "A", quote.Table)
		assert.Equal(t, "EUR", quote.Code)
		require.Len(t, quote.Rates, 1)
		assert.Equal(t, 4.3434, quote.Mid())
		assert.True(t, date.Equal(quote.Rates[0].EffectiveDate))
	})

	t.Run("404 maps to a not found provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "404 NotFound - Not Found - Brak danych", http.StatusNotFound)
		}))
		defer server.Close()

		client := newTestClient(testClientConfig(server.URL))

		_, err := client.GetExchangeRate(context.Background(), "EUR", date)

		var provErr *apperrors.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, apperrors.ProviderNotFound, provErr.Kind)
		assert.Equal(t, "EUR", provErr.Code)
	})

	t.Run("400 maps to a bad request provider error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "400 BadRequest", http.StatusBadRequest)
		}))
		defer server.Close()

		client := newTestClient(testClientConfig(server.URL))

		_, err := client.GetExchangeRate(context.Background(), "USD", date)

		var provErr *apperrors.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, apperrors.ProviderBadRequest, provErr.Kind)
	})

	t.Run("Unexpected status maps to unavailable", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newTestClient(testClientConfig(server.URL))

		_, err := client.GetExchangeRate(context.Background(), "EUR", date)

		var provErr *apperrors.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, apperrors.ProviderUnavailable, provErr.Kind)
	})

	t.Run("Disallowed currency is rejected without a network call", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
		}))
		defer server.Close()

		client := newTestClient(testClientConfig(server.URL))

		_, err := client.GetExchangeRate(context.Background(), "CHF", date)

		var provErr *apperrors.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, apperrors.ProviderInvalidCurrency, provErr.Kind)
		assert.Equal(t, 0, requests)
	})

	t.Run("Second lookup for the same code and date hits the cache", func(t *testing.T) {
		requests := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requests++
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"table": "A",
				"currency": "euro",
				"code": "EUR",
				"rates": [{"no": "001/A/NBP/2024", "effectiveDate": "2024-01-02", "mid": 4.3434}]
			}`))
		}))
		defer server.Close()

		client := newTestClient(testClientConfig(server.URL))

		first, err := client.GetExchangeRate(context.Background(), "EUR", date)
		require.NoError(t, err)

		second, err := client.GetExchangeRate(context.Background(), "EUR", date)
		require.NoError(t, err)

		assert.Equal(t, 1, requests)
		assert.Equal(t, first.Mid(), second.Mid())
	})

	t.Run("Response without rate entries maps to not found", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"table": "A", "currency": "euro", "code": "EUR", "rates": []}`))
		}))
		defer server.Close()

		client := newTestClient(testClientConfig(server.URL))

		_, err := client.GetExchangeRate(context.Background(), "EUR", date)

		var provErr *apperrors.ProviderError
		require.ErrorAs(t, err, &provErr)
		assert.Equal(t, apperrors.ProviderNotFound, provErr.Kind)
	})
}
