package apperrors

import (
	"fmt"
	"time"
)

// ProviderErrorKind distinguishes the failure modes of the rate provider.
type ProviderErrorKind string

const (
	// ProviderInvalidCurrency means the currency code is not on the configured
	// allow-list; no network call was made.
	ProviderInvalidCurrency ProviderErrorKind = "invalid_currency"
	// ProviderNotFound means no rate is published for the requested date/currency.
	ProviderNotFound ProviderErrorKind = "not_found"
	// ProviderBadRequest means the rate authority rejected the request.
	ProviderBadRequest ProviderErrorKind = "bad_request"
	// ProviderUnavailable covers transport failures and unexpected statuses.
	ProviderUnavailable ProviderErrorKind = "unavailable"
)

// ProviderError is the single error kind surfaced for every rate-provider
// failure. Reconciliation cannot proceed without rate data, so it propagates
// to callers unchanged.
type ProviderError struct {
	Kind ProviderErrorKind
	Code string
	Date time.Time
	Err  error
}

func (e *ProviderError) Error() string {
	msg := fmt.Sprintf("rate provider: %s for %s on %s", e.Kind, e.Code, e.Date.Format("2006-01-02"))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
