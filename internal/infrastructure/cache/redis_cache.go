// Package cache implementa la caché del resumen del dashboard.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Produccion-api/internal/application/analytics"
	"github.com/jhoicas/Produccion-api/internal/application/dto"
	"github.com/jhoicas/Produccion-api/internal/application/inventory"
	"github.com/jhoicas/Produccion-api/pkg/logger"
)

var (
	_ analytics.OverviewCache = (*RedisOverviewCache)(nil)
	_ inventory.Invalidator   = (*RedisOverviewCache)(nil)
)

const overviewKeyPrefix = "dashboard:overview:"

// OverviewKey clave del resumen de una empresa.
func OverviewKey(companyID string) string {
	return overviewKeyPrefix + companyID
}

// RedisOverviewCache guarda el resumen serializado en JSON con TTL.
// También invalida la entrada después de cada escritura que cambia stock, costos o gastos.
type RedisOverviewCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

// Options conexión a Redis.
type Options struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

func NewRedisOverviewCache(opts Options, log *logger.Logger) *RedisOverviewCache {
	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  2 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	return &RedisOverviewCache{client: client, ttl: opts.TTL, log: logger.OrNop(log)}
}

func (c *RedisOverviewCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisOverviewCache) Close() error {
	return c.client.Close()
}

func (c *RedisOverviewCache) Get(ctx context.Context, companyID string) (*dto.DashboardOverviewDTO, bool, error) {
	val, err := c.client.Get(ctx, OverviewKey(companyID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var resp dto.DashboardOverviewDTO
	if err := json.Unmarshal(val, &resp); err != nil {
		return nil, false, err
	}
	return &resp, true, nil
}

func (c *RedisOverviewCache) Set(ctx context.Context, companyID string, v *dto.DashboardOverviewDTO) error {
	if v == nil {
		return nil
	}
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, OverviewKey(companyID), payload, c.ttl).Err()
}

// Invalidate borra el resumen de la empresa. Si Redis falla el TTL acota la desactualización.
func (c *RedisOverviewCache) Invalidate(ctx context.Context, companyID string) {
	if err := c.client.Del(ctx, OverviewKey(companyID)).Err(); err != nil {
		c.log.Warn().Err(err).Str("company_id", companyID).Msg("cache: invalidación fallida")
	}
}
