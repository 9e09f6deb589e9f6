package cache

import (
	"testing"
	"time"

	"invoicefx/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quoteFor(code string, date time.Time, mid float64) *entity.ExchangeRateQuote {
	return &entity.ExchangeRateQuote{
		Table: "A",
		Code:  code,
		Rates: []entity.RateEntry{
			{No: "001/A/NBP/2024", EffectiveDate: date, Mid: mid},
		},
	}
}

func TestQuoteCache(t *testing.T) {
	date := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	t.Run("Put and get", func(t *testing.T) {
		c := NewQuoteCache()
		quote := quoteFor("EUR", date, 4.3434)

		c.Put(quote, date)

		got := c.Get("EUR", date)
		require.NotNil(t, got)
		assert.Equal(t, quote, got)
		assert.Equal(t, 1, c.Size())
	})

	t.Run("Miss on unknown key", func(t *testing.T) {
		c := NewQuoteCache()
		c.Put(quoteFor("EUR", date, 4.3434), date)

		assert.Nil(t, c.Get("USD", date))
		assert.Nil(t, c.Get("EUR", date.AddDate(0, 0, 1)))
	})

	t.Run("Entries keyed by code and date are independent", func(t *testing.T) {
		c := NewQuoteCache()
		nextDay := date.AddDate(0, 0, 1)

		c.Put(quoteFor("EUR", date, 4.3434), date)
		c.Put(quoteFor("EUR", nextDay, 4.2101), nextDay)

		assert.Equal(t, 2, c.Size())
		assert.Equal(t, 4.3434, c.Get("EUR", date).Mid())
		assert.Equal(t, 4.2101, c.Get("EUR", nextDay).Mid())
	})

	t.Run("Expired entry is not returned", func(t *testing.T) {
		c := NewQuoteCache()
		c.SetTTL(1 * time.Millisecond)

		c.Put(quoteFor("EUR", date, 4.3434), date)
		time.Sleep(5 * time.Millisecond)

		assert.Nil(t, c.Get("EUR", date))
	})

	t.Run("Clear empties the cache", func(t *testing.T) {
		c := NewQuoteCache()
		c.Put(quoteFor("EUR", date, 4.3434), date)
		c.Put(quoteFor("USD", date, 3.9432), date)

		c.Clear()

		assert.Equal(t, 0, c.Size())
		assert.Nil(t, c.Get("EUR", date))
	})
}
