// Package api internal/infrastructure/api/nbp_client.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"invoicefx/internal/apperrors"
	"invoicefx/internal/domain/entity"
	"invoicefx/internal/infrastructure/cache"
	"invoicefx/internal/infrastructure/logger"
	"invoicefx/internal/platform/config"
)

const exchangeRatePath = "/exchangerates/rates"

// NBPAPIClient fetches mid-market rates from the Narodowy Bank Polski API.
// It implements the domain RateProvider interface.
type NBPAPIClient struct {
	baseURL    string
	table      string
	cfg        *config.Config
	httpClient *http.Client
	cache      *cache.QuoteCache
	logger     logger.Logger
}

// NewNBPAPIClient creates a new NBP API client
func NewNBPAPIClient(cfg *config.Config, httpClient *http.Client, log logger.Logger) *NBPAPIClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 10 * time.Second,
		}
	}

	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &NBPAPIClient{
		baseURL:    cfg.RateAPIURL,
		table:      cfg.RateTable,
		cfg:        cfg,
		httpClient: httpClient,
		cache:      cache.NewQuoteCache(),
		logger:     log,
	}
}

// nbpResponse represents the response structure from the NBP API
type nbpResponse struct {
	Table    string `json:"table"`
	Currency string `json:"currency"`
	Code     string `json:"code"`
	Rates    []struct {
		No            string  `json:"no"`
		EffectiveDate string  `json:"effectiveDate"`
		Mid           float64 `json:"mid"`
	} `json:"rates"`
}

// GetExchangeRate retrieves the quotation for a currency code on a specific
// date. Codes outside the configured allow-list are rejected before any
// network call is made.
func (c *NBPAPIClient) GetExchangeRate(ctx context.Context, code string, date time.Time) (*entity.ExchangeRateQuote, error) {
	if !c.cfg.IsAllowedCurrency(code) {
		return nil, &apperrors.ProviderError{
			Kind: apperrors.ProviderInvalidCurrency,
			Code: code,
			Date: date,
		}
	}

	// Check cache first
	if cached := c.cache.Get(code, date); cached != nil {
		c.logger.Debug("Quote served from cache", map[string]interface{}{
			"code": code,
			"date": date.Format("2006-01-02"),
		})
		return cached, nil
	}

	reqURL := fmt.Sprintf("%s%s/%s/%s/%s/?format=json",
		c.baseURL,
		exchangeRatePath,
		c.table,
		code,
		date.Format("2006-01-02"))

	c.logger.Debug("Requesting quote", map[string]interface{}{
		"url": reqURL,
	})

	resp, err := c.doWithRetry(ctx, reqURL)
	if err != nil {
		return nil, &apperrors.ProviderError{
			Kind: apperrors.ProviderUnavailable,
			Code: code,
			Date: date,
			Err:  err,
		}
	}

	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			c.logger.Warn("Error closing response body", map[string]interface{}{
				"error": closeErr.Error(),
			})
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &apperrors.ProviderError{
			Kind: apperrors.ProviderUnavailable,
			Code: code,
			Date: date,
			Err:  fmt.Errorf("failed to read response body: %w", err),
		}
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// fall through to parsing
	case http.StatusNotFound:
		return nil, &apperrors.ProviderError{
			Kind: apperrors.ProviderNotFound,
			Code: code,
			Date: date,
			Err:  fmt.Errorf("no published rate: %s", string(bodyBytes)),
		}
	case http.StatusBadRequest:
		return nil, &apperrors.ProviderError{
			Kind: apperrors.ProviderBadRequest,
			Code: code,
			Date: date,
			Err:  fmt.Errorf("rejected request: %s", string(bodyBytes)),
		}
	default:
		return nil, &apperrors.ProviderError{
			Kind: apperrors.ProviderUnavailable,
			Code: code,
			Date: date,
			Err:  fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(bodyBytes)),
		}
	}

	var nbpResp nbpResponse
	if err := json.Unmarshal(bodyBytes, &nbpResp); err != nil {
		return nil, &apperrors.ProviderError{
			Kind: apperrors.ProviderUnavailable,
			Code: code,
			Date: date,
			Err:  fmt.Errorf("failed to decode response: %w", err),
		}
	}

	if len(nbpResp.Rates) == 0 {
		return nil, &apperrors.ProviderError{
			Kind: apperrors.ProviderNotFound,
			Code: code,
			Date: date,
			Err:  fmt.Errorf("response contained no rate entries"),
		}
	}

	quote := &entity.ExchangeRateQuote{
		Table:    nbpResp.Table,
		Currency: nbpResp.Currency,
		Code:     nbpResp.Code,
	}

	for _, r := range nbpResp.Rates {
		effectiveDate, err := time.Parse("2006-01-02", r.EffectiveDate)
		if err != nil {
			return nil, &apperrors.ProviderError{
				Kind: apperrors.ProviderUnavailable,
				Code: code,
				Date: date,
				Err:  fmt.Errorf("failed to parse effective date '%s': %w", r.EffectiveDate, err),
			}
		}
		if r.Mid <= 0 {
			return nil, &apperrors.ProviderError{
				Kind: apperrors.ProviderUnavailable,
				Code: code,
				Date: date,
				Err:  fmt.Errorf("invalid mid rate value: %f", r.Mid),
			}
		}
		quote.Rates = append(quote.Rates, entity.RateEntry{
			No:            r.No,
			EffectiveDate: effectiveDate,
			Mid:           r.Mid,
		})
	}

	c.logger.Info("Quote fetched", map[string]interface{}{
		"code": quote.Code,
		"date": date.Format("2006-01-02"),
		"mid":  quote.Mid(),
	})

	c.cache.Put(quote, date)

	return quote, nil
}

// doWithRetry executes the request, retrying transport failures with
// exponential backoff.
func (c *NBPAPIClient) doWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	const maxRetries = 3

	var resp *http.Response
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		var req *http.Request
		req, err = http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Add("Accept", "application/json")

		resp, err = c.httpClient.Do(req)
		if err == nil {
			return resp, nil
		}

		if attempt < maxRetries {
			backoff := time.Duration(attempt*attempt) * time.Second
			c.logger.Warn("Request failed, retrying", map[string]interface{}{
				"attempt": attempt,
				"backoff": backoff.String(),
				"error":   err.Error(),
			})

			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("failed to execute request after %d attempts: %w", maxRetries, err)
}
