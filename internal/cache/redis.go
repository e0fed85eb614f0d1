package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aircondor/reservations/config"
	"github.com/aircondor/reservations/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	seatMapTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, seatMapTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		seatMapTTL: seatMapTTL,
	}
}

// AcquireSeatHold takes a short advisory hold on a seat while the
// issuing transaction runs. The database constraint is the real guard;
// the hold only cuts down on doomed transactions when two agents go for
// the same seat.
func (c *RedisCache) AcquireSeatHold(ctx context.Context, flightID, seatID int64, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatHoldKey(flightID, seatID), "held", ttl).Result()
}

func (c *RedisCache) ReleaseSeatHold(ctx context.Context, flightID, seatID int64) error {
	return c.client.Del(ctx, seatHoldKey(flightID, seatID)).Err()
}

func (c *RedisCache) GetSeatMap(ctx context.Context, flightID int64) ([]domain.SeatStatus, error) {
	data, err := c.client.Get(ctx, seatMapKey(flightID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var entries []domain.SeatStatus
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *RedisCache) SetSeatMap(ctx context.Context, flightID int64, entries []domain.SeatStatus) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, seatMapKey(flightID), payload, c.seatMapTTL).Err()
}

func (c *RedisCache) InvalidateSeatMap(ctx context.Context, flightID int64) error {
	return c.client.Del(ctx, seatMapKey(flightID)).Err()
}

func seatMapKey(flightID int64) string {
	return fmt.Sprintf("cache:seatmap:%d", flightID)
}

func seatHoldKey(flightID, seatID int64) string {
	return fmt.Sprintf("hold:flight:%d:seat:%d", flightID, seatID)
}
