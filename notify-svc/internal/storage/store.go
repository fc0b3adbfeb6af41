package storage

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"flavor-heaven/notify-svc/internal/domain"

	"github.com/redis/go-redis/v9"
)

const DayLayout = "2006-01-02"

// DailyStats is the hash stored under stats:daily:<day>.
type DailyStats struct {
	Day          string  `json:"day"`
	Orders       int64   `json:"orders"`
	Revenue      float64 `json:"revenue"`
	Reservations int64   `json:"reservations"`
	Guests       int64   `json:"guests"`
	Contacts     int64   `json:"contacts"`
}

type ItemCount struct {
	ItemID   string  `json:"itemId"`
	Quantity float64 `json:"quantity"`
}

// StatsStore keeps per-day counters in Redis. Keys expire TTL after the last write.
type StatsStore struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewStatsStore(client *redis.Client) *StatsStore {
	return &StatsStore{Client: client, TTL: 30 * 24 * time.Hour}
}

func DailyKey(day string) string { return "stats:daily:" + day }
func ItemsKey(day string) string { return "stats:items:" + day }

func (s *StatsStore) RecordOrder(ctx context.Context, order domain.Order, day string) error {
	pipe := s.Client.TxPipeline()
	pipe.HIncrBy(ctx, DailyKey(day), "orders", 1)
	pipe.HIncrByFloat(ctx, DailyKey(day), "revenue", order.Total)
	for _, line := range order.Items {
		pipe.ZIncrBy(ctx, ItemsKey(day), float64(line.Quantity), line.ID)
	}
	pipe.Expire(ctx, DailyKey(day), s.TTL)
	pipe.Expire(ctx, ItemsKey(day), s.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record order %s: %w", order.OrderNumber, err)
	}
	return nil
}

func (s *StatsStore) RecordReservation(ctx context.Context, reservation domain.Reservation, day string) error {
	pipe := s.Client.TxPipeline()
	pipe.HIncrBy(ctx, DailyKey(day), "reservations", 1)
	pipe.HIncrBy(ctx, DailyKey(day), "guests", int64(reservation.Guests))
	pipe.Expire(ctx, DailyKey(day), s.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record reservation: %w", err)
	}
	return nil
}

func (s *StatsStore) RecordContact(ctx context.Context, day string) error {
	pipe := s.Client.TxPipeline()
	pipe.HIncrBy(ctx, DailyKey(day), "contacts", 1)
	pipe.Expire(ctx, DailyKey(day), s.TTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("record contact: %w", err)
	}
	return nil
}

// Daily reads the counters of one day; a day without events is all zeros.
func (s *StatsStore) Daily(ctx context.Context, day string) (DailyStats, error) {
	fields, err := s.Client.HGetAll(ctx, DailyKey(day)).Result()
	if err != nil {
		return DailyStats{}, err
	}

	stats := DailyStats{Day: day}
	stats.Orders, _ = strconv.ParseInt(fields["orders"], 10, 64)
	stats.Revenue, _ = strconv.ParseFloat(fields["revenue"], 64)
	stats.Reservations, _ = strconv.ParseInt(fields["reservations"], 10, 64)
	stats.Guests, _ = strconv.ParseInt(fields["guests"], 10, 64)
	stats.Contacts, _ = strconv.ParseInt(fields["contacts"], 10, 64)
	return stats, nil
}

// TopItems lists the most ordered items of a day, highest quantity first.
func (s *StatsStore) TopItems(ctx context.Context, day string, limit int) ([]ItemCount, error) {
	if limit <= 0 {
		limit = 10
	}
	result, err := s.Client.ZRevRangeWithScores(ctx, ItemsKey(day), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	items := make([]ItemCount, 0, len(result))
	for _, z := range result {
		id, _ := z.Member.(string)
		items = append(items, ItemCount{ItemID: id, Quantity: z.Score})
	}
	return items, nil
}
