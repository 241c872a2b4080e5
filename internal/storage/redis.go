package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	redisDocumentKeyPrefix = "doc:"
	redisCollectionsKey    = "collections"
)

// RedisStore keeps each document as a JSON string and tracks collection
// names in a set.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore creates a document store backed by Redis.
func NewRedisStore(rdb *redis.Client) *RedisStore {
	if rdb == nil {
		panic("storage: redis client required")
	}
	return &RedisStore{rdb: rdb}
}

func redisDocumentKey(collection Collection, id string) string {
	return redisDocumentKeyPrefix + string(collection) + ":" + id
}

// Insert writes the document and registers its collection atomically.
func (s *RedisStore) Insert(ctx context.Context, collection Collection, doc Document) (_ string, err error) {
	if err := checkInsert(collection, doc); err != nil {
		return "", err
	}
	ctx, span := startSpan(ctx, DriverRedis, "insert", collection)
	defer func() { endSpan(span, err) }()

	payload, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("storage: encode document: %w", err)
	}

	id := uuid.NewString()
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, redisDocumentKey(collection, id), payload, 0)
	pipe.SAdd(ctx, redisCollectionsKey, string(collection))
	if _, err := pipe.Exec(ctx); err != nil {
		return "", fmt.Errorf("storage: redis insert: %w", err)
	}
	return id, nil
}

// ListCollectionNames returns the registered collection names, sorted.
func (s *RedisStore) ListCollectionNames(ctx context.Context) (_ []string, err error) {
	ctx, span := startSpan(ctx, DriverRedis, "list_collections", "")
	defer func() { endSpan(span, err) }()

	names, err := s.rdb.SMembers(ctx, redisCollectionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("storage: redis list collections: %w", err)
	}
	sort.Strings(names)
	return names, nil
}
