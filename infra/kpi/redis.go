package kpi

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ishantk2507/ZeroWasteAI/core/metrics/eco"
)

const redisPrefix = "zerowaste:kpi:"

// RedisStore keeps one hash per recipient and day plus a sorted set of
// the days each recipient has records for.
type RedisStore struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisStore connects to addr and checks the server answers.
func NewRedisStore(addr string) (*RedisStore, error) {
	return NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: addr}))
}

// NewRedisStoreWithClient wraps an existing client.
func NewRedisStoreWithClient(c *redis.Client) (*RedisStore, error) {
	s := &RedisStore{client: c, timeout: 5 * time.Second}
	ctx, cancel := s.ctx()
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return s, nil
}

func (s *RedisStore) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), s.timeout)
}

func daysKey(recipientID string) string { return redisPrefix + recipientID + ":days" }

func dayKey(recipientID string, d time.Time) string {
	return redisPrefix + recipientID + ":" + d.Format("2006-01-02")
}

// Add increments the counters of the record's day atomically.
func (s *RedisStore) Add(r eco.Record) error {
	d := eco.Day(r.Date)
	key := dayKey(r.RecipientID, d)
	ctx, cancel := s.ctx()
	defer cancel()
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HIncrBy(ctx, key, "deliveries", int64(r.Deliveries))
		p.HIncrByFloat(ctx, key, "distance_km", r.DistanceKm)
		p.HIncrByFloat(ctx, key, "co2_saved_kg", r.CO2SavedKg)
		p.ZAdd(ctx, daysKey(r.RecipientID), redis.Z{Score: float64(d.Unix()), Member: key})
		return nil
	})
	return err
}

// Query returns records in the range [start,end], oldest first.
func (s *RedisStore) Query(recipientID string, start, end time.Time) ([]eco.Record, error) {
	start = eco.Day(start)
	end = eco.Day(end)
	ctx, cancel := s.ctx()
	defer cancel()
	keys, err := s.client.ZRangeByScore(ctx, daysKey(recipientID), &redis.ZRangeBy{
		Min: strconv.FormatInt(start.Unix(), 10),
		Max: strconv.FormatInt(end.Unix(), 10),
	}).Result()
	if err != nil {
		return nil, err
	}
	res := make([]eco.Record, 0, len(keys))
	for _, key := range keys {
		fields, err := s.client.HGetAll(ctx, key).Result()
		if err != nil {
			return nil, err
		}
		rec, err := parseRecord(recipientID, key, fields)
		if err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, nil
}

func parseRecord(recipientID, key string, f map[string]string) (eco.Record, error) {
	day, err := time.Parse("2006-01-02", key[len(key)-len("2006-01-02"):])
	if err != nil {
		return eco.Record{}, fmt.Errorf("%s: %w", key, err)
	}
	rec := eco.Record{RecipientID: recipientID, Date: day}
	if rec.Deliveries, err = strconv.Atoi(orZero(f["deliveries"])); err != nil {
		return eco.Record{}, fmt.Errorf("%s deliveries: %w", key, err)
	}
	if rec.DistanceKm, err = strconv.ParseFloat(orZero(f["distance_km"]), 64); err != nil {
		return eco.Record{}, fmt.Errorf("%s distance_km: %w", key, err)
	}
	if rec.CO2SavedKg, err = strconv.ParseFloat(orZero(f["co2_saved_kg"]), 64); err != nil {
		return eco.Record{}, fmt.Errorf("%s co2_saved_kg: %w", key, err)
	}
	return rec, nil
}

func orZero(s string) string {
	if s == "" {
		return "0"
	}
	return s
}

// Close closes the client.
func (s *RedisStore) Close() error { return s.client.Close() }
