package cache

import (
	"sync"
	"time"

	"invoicefx/internal/domain/entity"
)

// cacheEntry holds a cached quote and when it stops being valid
type cacheEntry struct {
	quote     *entity.ExchangeRateQuote
	expiresAt time.Time
}

// QuoteCache provides a thread-safe in-memory cache for exchange rate quotes,
// keyed by currency code and quotation date.
type QuoteCache struct {
	entries map[string]cacheEntry
	ttl     time.Duration
	mutex   sync.RWMutex
}

// NewQuoteCache creates a new quote cache. Published rates never change for a
// past date, so the default TTL is generous.
func NewQuoteCache() *QuoteCache {
	return &QuoteCache{
		entries: make(map[string]cacheEntry),
		ttl:     24 * time.Hour,
	}
}

func cacheKey(code string, date time.Time) string {
	return code + ":" + date.Format("2006-01-02")
}

// Get retrieves a quote from the cache if available and not expired
func (c *QuoteCache) Get(code string, date time.Time) *entity.ExchangeRateQuote {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.entries[cacheKey(code, date)]
	if !exists || time.Now().After(entry.expiresAt) {
		return nil
	}

	return entry.quote
}

// Put stores a quote in the cache under the date it was requested for
func (c *QuoteCache) Put(quote *entity.ExchangeRateQuote, forDate time.Time) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries[cacheKey(quote.Code, forDate)] = cacheEntry{
		quote:     quote,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries from the cache
func (c *QuoteCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// SetTTL sets how long cached quotes stay valid
func (c *QuoteCache) SetTTL(ttl time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.ttl = ttl
}

// Size returns the number of items in the cache
func (c *QuoteCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}
