package utils

import (
	"context"       // Context for Redis operations
	"encoding/json" // JSON encoding/decoding
	"strconv"       // Key building
	"time"          // Time durations

	"github.com/redis/go-redis/v9" // Redis client
)

// Cache keys used across handlers
const (
	StatsCacheKey          = "stats:public"    // Public aggregate stats
	PaymentMethodsCacheKey = "payment:methods" // Member-facing payment channels
)

// TxHistoryCacheKey builds the cache key for a page of a user's ledger. The
// version segment changes on every write, so a bump orphans every cached
// page and size at once instead of chasing individual keys.
func TxHistoryCacheKey(userID string, version int64, page, limit int) string {
	return "txhistory:user:" + userID + ":v:" + strconv.FormatInt(version, 10) +
		":page:" + strconv.Itoa(page) + ":size:" + strconv.Itoa(limit)
}

// txHistoryVersionKey holds the current ledger cache version for a user
func txHistoryVersionKey(userID string) string {
	return "txhistory:user:" + userID + ":version"
}

// TxHistoryVersion returns the user's current ledger cache version. A
// missing key (or any Redis error) reads as version 0.
func TxHistoryVersion(ctx context.Context, rdb *redis.Client, userID string) int64 {
	v, err := rdb.Get(ctx, txHistoryVersionKey(userID)).Int64()
	if err != nil {
		return 0
	}
	return v
}

// GetCache retrieves a value from Redis and unmarshals it into dest
func GetCache(ctx context.Context, rdb *redis.Client, key string, dest any) (bool, error) {
	val, err := rdb.Get(ctx, key).Result() // Get value from Redis
	if err == redis.Nil {
		return false, nil // Key does not exist
	} else if err != nil {
		return false, err // Other Redis error
	}
	return true, json.Unmarshal([]byte(val), dest) // Unmarshal JSON into dest
}

// SetCache sets a value in Redis with a specified TTL
func SetCache(ctx context.Context, rdb *redis.Client, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value) // Marshal value to JSON
	if err != nil {
		return err // Return error if marshaling fails
	}
	return rdb.Set(ctx, key, b, ttl).Err() // Set value in Redis with TTL
}

// DeleteCache deletes a key from Redis
func DeleteCache(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err() // Delete key from Redis
}

// InvalidateTxHistory bumps the user's ledger cache version. Orphaned pages
// under the old version simply age out with their TTL.
func InvalidateTxHistory(ctx context.Context, rdb *redis.Client, userID string) {
	_ = rdb.Incr(ctx, txHistoryVersionKey(userID)).Err() // Bump the version
}
