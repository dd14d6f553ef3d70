package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"apnakam/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ListCache holds each user's sorted, deduplicated booking list. Every
// Invalidate bumps the user's version; Set stores a list only if the version
// read before the list was fetched is still current, so a fill racing a
// transition never caches the pre-transition rows.
type ListCache interface {
	Get(ctx context.Context, userID string) ([]models.Booking, bool)
	Version(ctx context.Context, userID string) (int64, error)
	Set(ctx context.Context, userID string, version int64, bookings []models.Booking)
	Invalidate(ctx context.Context, userIDs ...string)
}

// versionKeyTTL bounds how long an idle user's version counter lives.
const versionKeyTTL = 24 * time.Hour

var errStaleList = errors.New("booking list version changed")

// RedisListCache stores booking lists as JSON under bookings:list:<userID>,
// guarded by a counter under bookings:ver:<userID>. Cache failures are logged
// and treated as misses.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRedisListCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisListCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisListCache{client: client, ttl: ttl, logger: logger}
}

func listCacheKey(userID string) string {
	return fmt.Sprintf("bookings:list:%s", userID)
}

func listVersionKey(userID string) string {
	return fmt.Sprintf("bookings:ver:%s", userID)
}

func (c *RedisListCache) Get(ctx context.Context, userID string) ([]models.Booking, bool) {
	raw, err := c.client.Get(ctx, listCacheKey(userID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Booking cache read failed", zap.String("userID", userID), zap.Error(err))
		}
		return nil, false
	}
	var bookings []models.Booking
	if err := json.Unmarshal(raw, &bookings); err != nil {
		c.logger.Warn("Booking cache entry corrupt", zap.String("userID", userID), zap.Error(err))
		return nil, false
	}
	return bookings, true
}

func readVersion(ctx context.Context, cmd redis.Cmdable, userID string) (int64, error) {
	v, err := cmd.Get(ctx, listVersionKey(userID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

func (c *RedisListCache) Version(ctx context.Context, userID string) (int64, error) {
	v, err := readVersion(ctx, c.client, userID)
	if err != nil {
		c.logger.Warn("Booking cache version read failed", zap.String("userID", userID), zap.Error(err))
	}
	return v, err
}

func (c *RedisListCache) Set(ctx context.Context, userID string, version int64, bookings []models.Booking) {
	raw, err := json.Marshal(bookings)
	if err != nil {
		return
	}
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, userID)
		if err != nil {
			return err
		}
		if current != version {
			return errStaleList
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, listCacheKey(userID), raw, c.ttl)
			return nil
		})
		return err
	}, listVersionKey(userID))

	switch {
	case err == nil:
	case errors.Is(err, errStaleList), errors.Is(err, redis.TxFailedErr):
		c.logger.Debug("Skipped stale booking cache fill", zap.String("userID", userID))
	default:
		c.logger.Warn("Booking cache write failed", zap.String("userID", userID), zap.Error(err))
	}
}

func (c *RedisListCache) Invalidate(ctx context.Context, userIDs ...string) {
	if len(userIDs) == 0 {
		return
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Incr(ctx, listVersionKey(id))
			pipe.Expire(ctx, listVersionKey(id), versionKeyTTL)
			pipe.Del(ctx, listCacheKey(id))
		}
		return nil
	})
	if err != nil {
		c.logger.Warn("Booking cache invalidation failed", zap.Strings("userIDs", userIDs), zap.Error(err))
	}
}

// noopCache is used when no cache is configured.
type noopCache struct{}

func (noopCache) Get(context.Context, string) ([]models.Booking, bool)  { return nil, false }
func (noopCache) Version(context.Context, string) (int64, error)        { return 0, nil }
func (noopCache) Set(context.Context, string, int64, []models.Booking) {}
func (noopCache) Invalidate(context.Context, ...string)                 {}
