// Package cache stores search results across runs so repeated analyses of
// the same video, or overlapping claims within one video, do not re-issue
// identical provider queries.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Store is a byte-level cache layer
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// QueryKey derives a stable cache key from a provider name and query string.
// The digest keeps keys filename-safe and hides query text from the cache dir.
func QueryKey(providerName, query string) string {
	hash := sha256.Sum256([]byte(providerName + "\x00" + query))
	return "claimsift.v1." + hex.EncodeToString(hash[:])
}
