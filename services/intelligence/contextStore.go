// File: services/intelligence/contextStore.go
package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const summaryPrefix = "ai:summary:"

// RedisSummaryStore caches generated review summaries keyed by the exact set
// of comments, so a new review naturally produces a new key.
type RedisSummaryStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSummaryStore(client *redis.Client, ttl time.Duration) *RedisSummaryStore {
	return &RedisSummaryStore{client: client, ttl: ttl}
}

func summaryKey(comments []string) string {
	h := sha256.Sum256([]byte(strings.Join(comments, "\x00")))
	return summaryPrefix + hex.EncodeToString(h[:])
}

func (s *RedisSummaryStore) Get(ctx context.Context, comments []string) (string, bool) {
	data, err := s.client.Get(ctx, summaryKey(comments)).Result()
	if err != nil {
		return "", false
	}
	return data, true
}

func (s *RedisSummaryStore) Set(ctx context.Context, comments []string, summary string) error {
	return s.client.Set(ctx, summaryKey(comments), summary, s.ttl).Err()
}
