package advice

import (
	"sync"
	"time"

	"carbon_netzero/internal/models"
)

// CacheKey identifies a computed payload.
type CacheKey struct {
	WindowHours int
	TopN        int
}

type cacheEntry struct {
	payload   models.AdvicePayload
	expiresAt time.Time
}

// Cache memoizes advice payloads with a per-entry TTL. Expired entries are
// removed lazily when their own key is looked up; there is no sweeper and no
// capacity bound.
type Cache struct {
	mu      sync.Mutex
	entries map[CacheKey]cacheEntry
	clock   Clock
}

// NewCache returns an empty cache. A nil clock uses the wall clock.
func NewCache(clock Clock) *Cache {
	if clock == nil {
		clock = RealClock{}
	}
	return &Cache{
		entries: make(map[CacheKey]cacheEntry),
		clock:   clock,
	}
}

// Get returns the payload for key if it has not expired.
func (c *Cache) Get(key CacheKey) (models.AdvicePayload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return models.AdvicePayload{}, false
	}
	if !c.clock.Now().Before(entry.expiresAt) {
		delete(c.entries, key)
		return models.AdvicePayload{}, false
	}
	return clonePayload(entry.payload), true
}

// Put stores payload under key until now+ttl, replacing any previous entry.
func (c *Cache) Put(key CacheKey, payload models.AdvicePayload, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		payload:   clonePayload(payload),
		expiresAt: c.clock.Now().Add(ttl),
	}
}

// Len reports how many entries, expired or not, are held.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func clonePayload(p models.AdvicePayload) models.AdvicePayload {
	out := p
	out.StrategiesByDepartment = make([]models.DepartmentStrategies, len(p.StrategiesByDepartment))
	for i, d := range p.StrategiesByDepartment {
		d.Strategies = cloneStrategies(d.Strategies)
		out.StrategiesByDepartment[i] = d
	}
	out.GlobalRecommendations = cloneStrategies(p.GlobalRecommendations)
	return out
}

func cloneStrategies(in []models.StrategyItem) []models.StrategyItem {
	out := make([]models.StrategyItem, len(in))
	for i, s := range in {
		s.Actions = append([]string{}, s.Actions...)
		out[i] = s
	}
	return out
}
