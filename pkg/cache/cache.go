// Package cache stores rendered diagram artifacts keyed by content.
//
// Rendering the same diagram twice is pure waste: the DOT description is
// deterministic, so an artifact can be keyed by the hash of its DOT text
// plus the output format and reused until the diagram changes. The
// [Cache] interface has four backends:
//
//   - [FileCache]: directory of entry files, for CLI usage
//   - [RedisCache]: shared cache for multi-instance deployments
//   - [MongoCache]: document-store variant with TTL expiry
//   - [NullCache]: caching disabled
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is the interface for artifact storage backends.
// Implementations report a miss as (nil, false, nil); the error return is
// reserved for backend failures.
type Cache interface {
	// Get retrieves the artifact stored under key.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores an artifact under key. A zero ttl means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the artifact under key. Deleting a missing key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// ArtifactKey builds the cache key for a rendered artifact from the hash
// of its DOT description and the output format.
func ArtifactKey(dotHash, format string) string {
	return hashKey("artifact", dotHash, format)
}

// Hash computes the SHA-256 content hash of data as a 64-char hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey builds a namespaced key by hashing the components.
// Format: prefix:hash(parts...). The full hash keeps collisions out of
// reach even for adversarial inputs.
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}
