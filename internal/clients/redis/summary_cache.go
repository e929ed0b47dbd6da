package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/yardvine/yardvine-backend/internal/pkg/ctxutil"
	"github.com/yardvine/yardvine-backend/internal/pkg/logger"
)

// SummaryCache caches per-provider directory summary stats so the client
// list view does not recompute them on every request. Entries are
// invalidated whenever a client or job for that provider changes.
type SummaryCache interface {
	Get(ctx context.Context, providerID uuid.UUID, dest interface{}) (bool, error)
	Set(ctx context.Context, providerID uuid.UUID, value interface{}) error
	Invalidate(ctx context.Context, providerID uuid.UUID) error
	Close() error
}

type summaryCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewSummaryCache(log *logger.Logger) (SummaryCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 5 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("SUMMARY_CACHE_TTL")); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &summaryCache{
		log: log.With("service", "RedisSummaryCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func summaryKey(providerID uuid.UUID) string {
	return "directory:summary:" + providerID.String()
}

func (c *summaryCache) Get(ctx context.Context, providerID uuid.UUID, dest interface{}) (bool, error) {
	if c == nil || c.rdb == nil {
		return false, fmt.Errorf("summary cache not initialized")
	}
	ctx = ctxutil.Default(ctx)
	raw, err := c.rdb.Get(ctx, summaryKey(providerID)).Bytes()
	if err == goredis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		// Stale or mismatched payload: treat as a miss and drop it.
		_ = c.rdb.Del(ctx, summaryKey(providerID)).Err()
		return false, nil
	}
	return true, nil
}

func (c *summaryCache) Set(ctx context.Context, providerID uuid.UUID, value interface{}) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("summary cache not initialized")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctxutil.Default(ctx), summaryKey(providerID), raw, c.ttl).Err()
}

func (c *summaryCache) Invalidate(ctx context.Context, providerID uuid.UUID) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctxutil.Default(ctx), summaryKey(providerID)).Err()
}

func (c *summaryCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
