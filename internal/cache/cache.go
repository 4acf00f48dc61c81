// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

package cache

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/goccy/go-json"
)

// entry is a cached value with its expiration instant.
type entry struct {
	data      interface{}
	expiresAt time.Time
}

// Cache is a thread-safe in-memory TTL cache with a capacity bound.
//
// Expired entries are dropped lazily on Get and in bulk by Sweep; there
// is no internal goroutine, callers schedule Sweep themselves (the
// refresh package runs it as a supervised periodic task). When the
// capacity bound is reached, the entry closest to expiry is evicted to
// make room.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	ttl        time.Duration
	maxEntries int
	lastSweep  time.Time

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	Hits      int64     `json:"hits"`
	Misses    int64     `json:"misses"`
	Evictions int64     `json:"evictions"`
	Entries   int       `json:"entries"`
	LastSweep time.Time `json:"last_sweep"`
}

// New creates a cache whose entries expire after ttl. maxEntries bounds
// the cache size; zero or negative means unbounded.
func New(ttl time.Duration, maxEntries int) *Cache {
	return &Cache{
		entries:    make(map[string]entry),
		ttl:        ttl,
		maxEntries: maxEntries,
	}
}

// Get returns the value stored under key. Expired entries count as
// misses and are removed on access.
func (c *Cache) Get(key string, now time.Time) (interface{}, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		c.misses.Add(1)
		return nil, false
	}

	if now.After(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; another goroutine may have
		// replaced the entry since the read.
		if cur, still := c.entries[key]; still && now.After(cur.expiresAt) {
			delete(c.entries, key)
			c.evictions.Add(1)
		}
		c.mu.Unlock()
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return e.data, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache) Set(key string, value interface{}, now time.Time) {
	c.SetWithTTL(key, value, c.ttl, now)
}

// SetWithTTL stores value under key with an explicit TTL, evicting the
// soonest-to-expire entry first when the cache is at capacity.
func (c *Cache) SetWithTTL(key string, value interface{}, ttl time.Duration, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		c.evictIfFullLocked()
	}

	c.entries[key] = entry{
		data:      value,
		expiresAt: now.Add(ttl),
	}
}

// evictIfFullLocked removes the entry with the earliest expiry when the
// capacity bound is reached. Caller holds the write lock.
func (c *Cache) evictIfFullLocked() {
	if c.maxEntries <= 0 || len(c.entries) < c.maxEntries {
		return
	}

	var (
		oldestKey    string
		oldestExpiry time.Time
		found        bool
	)
	for k, e := range c.entries {
		if !found || e.expiresAt.Before(oldestExpiry) {
			oldestKey = k
			oldestExpiry = e.expiresAt
			found = true
		}
	}

	if found {
		delete(c.entries, oldestKey)
		c.evictions.Add(1)
	}
}

// Delete removes key from the cache. Removing an absent key is a no-op.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		c.evictions.Add(1)
	}
	c.mu.Unlock()
}

// Clear drops every entry in one operation.
func (c *Cache) Clear() {
	c.mu.Lock()
	evicted := int64(len(c.entries))
	c.entries = make(map[string]entry)
	c.mu.Unlock()

	c.evictions.Add(evicted)
}

// Sweep removes all entries that have expired as of now and returns how
// many were removed. Intended to run as a periodic supervised task.
func (c *Cache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	c.lastSweep = now
	c.evictions.Add(int64(removed))

	return removed
}

// Len returns the current number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// GetStats returns a snapshot of the cache counters.
func (c *Cache) GetStats() Stats {
	c.mu.RLock()
	entries := len(c.entries)
	lastSweep := c.lastSweep
	c.mu.RUnlock()

	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
		Entries:   entries,
		LastSweep: lastSweep,
	}
}

// HitRate returns the hit percentage over all lookups, 0 when no
// lookups have happened.
func (c *Cache) HitRate() float64 {
	hits := c.hits.Load()
	total := hits + c.misses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100.0
}

// GenerateKey derives a compact deterministic cache key from a method
// name and its parameters. Parameters are JSON-serialized and hashed;
// serialization failures fall back to the fmt representation.
func GenerateKey(method string, params interface{}) string {
	data, err := json.Marshal(params)
	if err != nil {
		return fmt.Sprintf("%s:%v", method, params)
	}

	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%x", method, hash[:16])
}
