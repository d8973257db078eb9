package pricing

import (
	"sync"
	"time"
)

// PriceCache holds resolved rate cards per source key until their TTL lapses.
// Cards are cloned on the way in and out so callers may adjust them freely.
type PriceCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cachedCard
}

type cachedCard struct {
	card    *RateCard
	fetched time.Time
}

func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cachedCard),
	}
}

// Get returns a copy of the card stored under key, or nil when absent or stale
func (c *PriceCache) Get(key string) *RateCard {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil
	}
	if c.ttl > 0 && c.now().Sub(entry.fetched) >= c.ttl {
		c.mu.Lock()
		if current, still := c.entries[key]; still && current.fetched.Equal(entry.fetched) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil
	}
	return entry.card.Clone()
}

func (c *PriceCache) Set(key string, card *RateCard) {
	if card == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cachedCard{card: card.Clone(), fetched: c.now()}
}

// Len reports how many cards are held, stale ones included
func (c *PriceCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *PriceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cachedCard)
}
