package attendance

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const recordCacheKeyPrefix = "attendance:employee:"

func recordCacheKey(employeeID string) string {
	return recordCacheKeyPrefix + employeeID
}

// RecordCache is an explicit lookup-or-fetch cache of one employee's records.
// Every mark and every employee deletion calls Invalidate, so a hit never
// serves a status older than the last write. A nil redis client degrades to
// fetch-only.
type RecordCache struct {
	rdb    *redis.Client
	sf     singleflight.Group
	ttl    time.Duration
	logger *zap.Logger
}

func NewRecordCache(rdb *redis.Client, ttl time.Duration, logger ...*zap.Logger) *RecordCache {
	l := zap.L().Named("attendance.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("attendance.cache")
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &RecordCache{rdb: rdb, ttl: ttl, logger: l}
}

func (c *RecordCache) GetOrFetch(
	ctx context.Context,
	employeeID string,
	fetch func() ([]AttendanceResponse, error),
) ([]AttendanceResponse, error) {
	if c.rdb == nil {
		return fetch()
	}

	cacheKey := recordCacheKey(employeeID)

	if cached, err := c.rdb.Get(ctx, cacheKey).Result(); err == nil {
		var resp []AttendanceResponse
		if json.Unmarshal([]byte(cached), &resp) == nil {
			return resp, nil
		}
	}

	// Collapse concurrent misses for the same employee into one fetch.
	v, err, _ := c.sf.Do(cacheKey, func() (interface{}, error) {
		resp, err := fetch()
		if err != nil {
			return nil, err
		}

		if jsonData, err := json.Marshal(resp); err == nil {
			if err := c.rdb.Set(ctx, cacheKey, jsonData, c.ttl).Err(); err != nil {
				c.logger.Warn("cache store failed",
					zap.String("key", cacheKey),
					zap.Error(err),
				)
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]AttendanceResponse), nil
}

func (c *RecordCache) Invalidate(ctx context.Context, employeeID string) {
	if c.rdb == nil {
		return
	}

	cacheKey := recordCacheKey(employeeID)
	if err := c.rdb.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("cache invalidate failed",
			zap.String("key", cacheKey),
			zap.Error(err),
		)
	}
}
