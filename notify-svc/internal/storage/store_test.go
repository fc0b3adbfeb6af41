package storage

import (
	"context"
	"testing"
	"time"

	"flavor-heaven/notify-svc/internal/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStats(t *testing.T) (*StatsStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewStatsStore(client), mr
}

func TestStatsStoreRecordsDay(t *testing.T) {
	store, mr := setupStats(t)
	ctx := context.Background()
	day := "2026-10-18"

	require.NoError(t, store.RecordOrder(ctx, domain.Order{
		OrderNumber: "FH-1",
		Items: []domain.OrderLine{
			{ID: "burger-1", Quantity: 2},
			{ID: "fries-1", Quantity: 1},
		},
		Total: 30.25,
	}, day))
	require.NoError(t, store.RecordOrder(ctx, domain.Order{
		OrderNumber: "FH-2",
		Items:       []domain.OrderLine{{ID: "fries-1", Quantity: 4}},
		Total:       12.5,
	}, day))
	require.NoError(t, store.RecordReservation(ctx, domain.Reservation{Guests: 4}, day))
	require.NoError(t, store.RecordReservation(ctx, domain.Reservation{Guests: 2}, day))
	require.NoError(t, store.RecordContact(ctx, day))

	stats, err := store.Daily(ctx, day)
	require.NoError(t, err)
	assert.Equal(t, DailyStats{
		Day:          day,
		Orders:       2,
		Revenue:      42.75,
		Reservations: 2,
		Guests:       6,
		Contacts:     1,
	}, stats)

	items, err := store.TopItems(ctx, day, 0)
	require.NoError(t, err)
	assert.Equal(t, []ItemCount{{ItemID: "fries-1", Quantity: 5}, {ItemID: "burger-1", Quantity: 2}}, items)

	items, err = store.TopItems(ctx, day, 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.Equal(t, 30*24*time.Hour, mr.TTL(DailyKey(day)))
	assert.Equal(t, 30*24*time.Hour, mr.TTL(ItemsKey(day)))
}

func TestStatsStoreEmptyDay(t *testing.T) {
	store, _ := setupStats(t)

	stats, err := store.Daily(context.Background(), "2026-01-01")
	require.NoError(t, err)
	assert.Equal(t, DailyStats{Day: "2026-01-01"}, stats)

	items, err := store.TopItems(context.Background(), "2026-01-01", 5)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestStatsStoreExpires(t *testing.T) {
	store, mr := setupStats(t)
	ctx := context.Background()

	require.NoError(t, store.RecordContact(ctx, "2026-10-18"))
	mr.FastForward(31 * 24 * time.Hour)

	stats, err := store.Daily(ctx, "2026-10-18")
	require.NoError(t, err)
	assert.Zero(t, stats.Contacts)
}

func TestStatsStoreConnectionError(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	store := NewStatsStore(client)
	mr.Close()

	assert.Error(t, store.RecordContact(context.Background(), "2026-10-18"))
	_, err := store.Daily(context.Background(), "2026-10-18")
	assert.Error(t, err)
}
