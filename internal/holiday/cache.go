package holiday

import (
	"sync"
	"time"
)

// yearCache stores merged calendars per year so repeated reservation checks
// within a term do not refetch the remote source.
type yearCache struct {
	mu      sync.RWMutex
	now     func() time.Time
	ttl     time.Duration
	entries map[int]yearCacheEntry
}

type yearCacheEntry struct {
	holidays  []Holiday
	expiresAt time.Time
}

func newYearCache(ttl time.Duration, now func() time.Time) *yearCache {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	if now == nil {
		now = time.Now
	}
	return &yearCache{now: now, ttl: ttl, entries: make(map[int]yearCacheEntry)}
}

func (c *yearCache) Get(year int) ([]Holiday, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	entry, ok := c.entries[year]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, year)
		c.mu.Unlock()
		return nil, false
	}
	return cloneHolidays(entry.holidays), true
}

func (c *yearCache) Store(year int, holidays []Holiday) {
	if c == nil {
		return
	}
	cloned := cloneHolidays(holidays)
	expiry := c.now().Add(c.ttl)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[year] = yearCacheEntry{holidays: cloned, expiresAt: expiry}
}

func cloneHolidays(holidays []Holiday) []Holiday {
	if holidays == nil {
		return nil
	}
	cloned := make([]Holiday, len(holidays))
	copy(cloned, holidays)
	return cloned
}
