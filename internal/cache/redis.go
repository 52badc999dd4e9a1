package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Domenick1991/airbooking/config"
	"github.com/Domenick1991/airbooking/internal/domain"
	"github.com/redis/go-redis/v9"
)

// FlightPage is one cached page of the flight list.
type FlightPage struct {
	Flights []domain.Flight `json:"flights"`
	Count   int             `json:"count"`
}

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

// GetFlights returns the cached page for the filter, or nil on a miss, together with the list version
// it was looked up under. A page built after a miss must be stored with SetFlights under that version.
func (c *RedisCache) GetFlights(ctx context.Context, filter domain.FlightFilter) (*FlightPage, int64, error) {
	version, err := c.flightsVersion(ctx)
	if err != nil {
		return nil, 0, err
	}

	data, err := c.client.Get(ctx, flightsKey(version, filter)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, version, nil
		}
		return nil, version, err
	}

	var page FlightPage
	if err := json.Unmarshal(data, &page); err != nil {
		return nil, version, err
	}
	return &page, version, nil
}

// SetFlights stores a page under the version GetFlights reported. If InvalidateFlights ran in between,
// the page lands under a retired key and is never served.
func (c *RedisCache) SetFlights(ctx context.Context, version int64, filter domain.FlightFilter, page *FlightPage) error {
	payload, err := json.Marshal(page)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, flightsKey(version, filter), payload, c.flightsTTL).Err()
}

// InvalidateFlights bumps the list version; pages stored under older versions expire on their own.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	return c.client.Incr(ctx, flightsVersionKey).Err()
}

func (c *RedisCache) flightsVersion(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, flightsVersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return v, err
}

// AcquireSeatLock reports false if another request holds the seat.
func (c *RedisCache) AcquireSeatLock(ctx context.Context, key domain.SeatKey, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, seatLockKey(key), "locked", ttl).Result()
}

func (c *RedisCache) ReleaseSeatLock(ctx context.Context, key domain.SeatKey) error {
	return c.client.Del(ctx, seatLockKey(key)).Err()
}

const flightsVersionKey = "cache:flights:version"

func flightsKey(version int64, f domain.FlightFilter) string {
	date := ""
	if f.Date != nil {
		date = f.Date.Format(time.DateOnly)
	}
	p := f.Page.Normalize()
	return fmt.Sprintf("cache:flights:v%d:src=%q:dst=%q:date=%s:limit=%d:offset=%d",
		version, f.Source, f.Destination, date, p.Limit, p.Offset)
}

func seatLockKey(key domain.SeatKey) string {
	return "lock:seat:" + key.String()
}
