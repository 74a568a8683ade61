package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"
)

// Cache defines the interface for run-scoped caching of oracle results.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key from arbitrary text (e.g. a prompt).
func Key(text string) string {
	hash := sha256.Sum256([]byte(text))
	return "slidesift:v1:" + hex.EncodeToString(hash[:])
}

// PairKey generates an order-independent key for a pair of texts, so a
// claim pair caches the same verdict regardless of argument order.
func PairKey(a, b string) string {
	parts := []string{strings.TrimSpace(a), strings.TrimSpace(b)}
	sort.Strings(parts)
	return Key(strings.Join(parts, "|"))
}
