package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// CachedResult is a lint result stored for one endpoint and canonical document.
type CachedResult struct {
	Key      string      `json:"key"`
	Endpoint string      `json:"endpoint"`
	StoredAt time.Time   `json:"stored_at"`
	Result   *LintResult `json:"result"`
}

// CacheKey identifies canonical content linted by endpoint.
func CacheKey(endpoint, canonical string) string {
	sum := sha256.Sum256([]byte(endpoint + "\x00" + canonical))
	return hex.EncodeToString(sum[:])
}

// IsExpired reports whether the entry is older than ttl at now.
// A zero ttl never expires.
func (c *CachedResult) IsExpired(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(c.StoredAt) > ttl
}
