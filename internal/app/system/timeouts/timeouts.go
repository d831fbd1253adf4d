// Package timeouts provides centralized timeout values for handler
// operations. These are used with context.WithTimeout for database
// operations and other I/O in HTTP handlers, so the values stay
// consistent across the application and are easy to adjust in one place.
//
// Guidelines for choosing a timeout:
//   - Ping: health checks and connectivity verification
//   - Short: simple single-document reads or lookups
//   - Medium: list queries, moderate writes, multi-step reads
//   - Long: complex writes, operations touching multiple collections
package timeouts

import (
	"sync"
	"time"
)

// Default timeout values (used if Configure is not called).
const (
	DefaultPing   = 2 * time.Second
	DefaultShort  = 5 * time.Second
	DefaultMedium = 10 * time.Second
	DefaultLong   = 30 * time.Second
)

var mu sync.RWMutex

var (
	ping   = DefaultPing
	short  = DefaultShort
	medium = DefaultMedium
	long   = DefaultLong
)

// Configure overrides the default timeout tiers. Zero values leave the
// corresponding tier unchanged.
func Configure(pingD, shortD, mediumD, longD time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	if pingD > 0 {
		ping = pingD
	}
	if shortD > 0 {
		short = shortD
	}
	if mediumD > 0 {
		medium = mediumD
	}
	if longD > 0 {
		long = longD
	}
}

// Ping returns the timeout for health checks and connectivity verification.
func Ping() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return ping
}

// Short returns the timeout for simple operations like single-document reads.
func Short() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return short
}

// Medium returns the timeout for list queries and moderate writes.
func Medium() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return medium
}

// Long returns the timeout for multi-step writes touching several collections.
func Long() time.Duration {
	mu.RLock()
	defer mu.RUnlock()
	return long
}
