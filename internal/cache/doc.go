// Euphonia - Mood-Aware Music Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/euphonia

/*
Package cache provides the thread-safe in-memory TTL cache backing
recommendation responses.

Each (user, mood, limit) recommendation is cached for a configurable
TTL so repeated requests inside the window skip the full scoring pass.

# Overview

The cache provides:
  - Thread-safe concurrent access (sync.RWMutex, atomic counters)
  - Per-entry TTL with lazy expiration on Get
  - Bulk expiration via Sweep, designed to run as a supervised
    periodic task rather than an unmanaged internal goroutine
  - A capacity bound evicting the soonest-to-expire entry first
  - Deterministic key derivation (GenerateKey) hashing JSON-encoded
    request parameters

# Clock Injection

Get, Set, and Sweep take the current time explicitly instead of calling
time.Now. The recommendation engine passes its injected clock through,
which keeps expiry behavior fully deterministic in tests.

# Usage Example

	c := cache.New(10*time.Minute, 1000)
	key := cache.GenerateKey("recommend", requestParams)

	if data, ok := c.Get(key, now); ok {
	    return data.(*recommend.Response), nil
	}
	resp := computeResponse()
	c.Set(key, resp, now)

# Statistics

Hit, miss, and eviction counters accumulate over the cache lifetime;
GetStats returns a consistent snapshot and HitRate the derived
percentage. Counters feed the Prometheus gauges exported by the
metrics package.
*/
package cache
