package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrMiss is returned by Get when a key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache is the key/value surface the service needs. Redis backs it in
// production; an in-process implementation exists for tests and cache-less
// development. The cache is never a source of truth.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	// Incr bumps a version counter used for selective list invalidation.
	Incr(ctx context.Context, key string) (int64, error)
	Ping(ctx context.Context) error
	Close() error
}

// Key derivation lives in one place so every key belonging to an owner can
// be computed deterministically, without scanning the keyspace.

// BooksVersionKey holds the owner's current book-list version. Mutations
// bump it; list keys embed it, so stale entries become unreachable and
// lapse via TTL.
func BooksVersionKey(ownerID string) string {
	return "books:v:" + ownerID
}

// BooksPageKey caches one page of an owner's book list.
func BooksPageKey(ownerID string, version int64, page, limit int) string {
	return fmt.Sprintf("books:%s:%d:p%d:l%d", ownerID, version, page, limit)
}

// BooksAllKey caches the owner's full, unpaginated book list.
func BooksAllKey(ownerID string, version int64) string {
	return fmt.Sprintf("books:%s:%d:all", ownerID, version)
}

// FavoritesKey caches a user's favorites list. Favorite mutations delete it
// directly.
func FavoritesKey(userID string) string {
	return "favorites:" + userID
}
