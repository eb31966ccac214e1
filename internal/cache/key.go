package cache

import (
	"crypto/sha256"
	"encoding/hex"
)

// Key returns the cache key for content digested as lang.
// Format: {lang}:{sha256 of content}. The path is not part of the key, so identical files
// share one entry.
func Key(lang string, content []byte) string {
	return lang + ":" + hashBytes(content)
}

// hashBytes returns the SHA-256 hash of b as lowercase hex.
func hashBytes(b []byte) string {
	h := sha256.Sum256(b)
	return hex.EncodeToString(h[:])
}
