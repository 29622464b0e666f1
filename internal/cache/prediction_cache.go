package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/appsmart/inventario/backend-go/internal/config"
	"github.com/appsmart/inventario/backend-go/internal/domain"
)

const (
	predictionKeyPrefix     = "predictions:payload"
	predictionScanBatchSize = 100
)

// PredictionCache stores prediction payloads keyed by CatalogKey.
type PredictionCache interface {
	Get(ctx context.Context, key string) (*domain.PredictionPayload, bool, error)
	Set(ctx context.Context, key string, payload *domain.PredictionPayload) error
	// InvalidateAll drops every stored payload and reports how many went away.
	InvalidateAll(ctx context.Context) (int64, error)
}

type redisPredictionCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopPredictionCache struct{}

func NewPredictionCache(cfg config.CacheConfig) (PredictionCache, error) {
	if !cfg.Enabled {
		return &noopPredictionCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return newRedisPredictionCache(client, ttl), nil
}

func NewNoopPredictionCache() PredictionCache {
	return &noopPredictionCache{}
}

func newRedisPredictionCache(client *redis.Client, ttl time.Duration) *redisPredictionCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &redisPredictionCache{client: client, ttl: ttl}
}

func (c *redisPredictionCache) Get(ctx context.Context, key string) (*domain.PredictionPayload, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var out domain.PredictionPayload
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, false, fmt.Errorf("decode prediction cache: %w", err)
	}

	return &out, true, nil
}

func (c *redisPredictionCache) Set(ctx context.Context, key string, payload *domain.PredictionPayload) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode prediction cache: %w", err)
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisPredictionCache) InvalidateAll(ctx context.Context) (int64, error) {
	return unlinkByPrefix(ctx, c.client, predictionKeyPrefix, predictionScanBatchSize)
}

func (n *noopPredictionCache) Get(ctx context.Context, key string) (*domain.PredictionPayload, bool, error) {
	return nil, false, nil
}

func (n *noopPredictionCache) Set(ctx context.Context, key string, payload *domain.PredictionPayload) error {
	return nil
}

func (n *noopPredictionCache) InvalidateAll(ctx context.Context) (int64, error) {
	return 0, nil
}

// CatalogKey identifies a prediction run. Synthesized histories depend on the
// catalog contents, their order and the calendar month, so all three go into
// the hash.
func CatalogKey(products []*domain.Product, at time.Time) string {
	h := sha1.New()
	h.Write([]byte(at.Format("2006-01")))
	for _, p := range products {
		if p == nil {
			continue
		}
		h.Write([]byte{'\n'})
		h.Write([]byte(strconv.FormatInt(p.ID, 10)))
		for _, field := range []string{
			p.Title,
			p.BrandName(),
			nullDecimalString(p.NormalPrice),
			nullDecimalString(p.LowPrice),
			nullDecimalString(p.HighPrice),
			strconv.FormatBool(p.OnSale),
			strconv.FormatBool(p.OutOfStock),
			nullDecimalString(p.Savings),
			nullDecimalString(p.SavingsPercent),
		} {
			h.Write([]byte{'|'})
			h.Write([]byte(field))
		}
	}
	return fmt.Sprintf("%s:%s", predictionKeyPrefix, hex.EncodeToString(h.Sum(nil)))
}
