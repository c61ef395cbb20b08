package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daeruvan/TicketService/internal/config"
)

const testEvent = "Ultimate-Code-Warrior-LIVE-@-Showbox"

func TestSeatCache_NotifyAvailability(t *testing.T) {
	ctx := context.Background()
	key := "seats:available:" + testEvent

	t.Run("空席数を保存して通知する", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewSeatCache(db, time.Minute)
		mock.ExpectSet(key, 140, time.Minute).SetVal("OK")
		mock.ExpectPublish(AvailabilityChannel, testEvent+":140").SetVal(1)

		err := cache.NotifyAvailability(ctx, testEvent, 140)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("保存に失敗したら通知しない", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewSeatCache(db, time.Minute)
		mock.ExpectSet(key, 140, time.Minute).SetErr(errors.New("connection refused"))

		err := cache.NotifyAvailability(ctx, testEvent, 140)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("通知の失敗をエラーとして返す", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		cache := NewSeatCache(db, time.Minute)
		mock.ExpectSet(key, 0, time.Minute).SetVal("OK")
		mock.ExpectPublish(AvailabilityChannel, testEvent+":0").SetErr(errors.New("readonly"))

		err := cache.NotifyAvailability(ctx, testEvent, 0)

		assert.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSeatCache_GetAvailableCount_Mock(t *testing.T) {
	ctx := context.Background()
	key := "seats:available:" + testEvent

	t.Run("保存された値を返す", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetVal("147")

		count, err := NewSeatCache(db, time.Minute).GetAvailableCount(ctx, testEvent)

		require.NoError(t, err)
		assert.Equal(t, 147, count)
	})

	t.Run("キャッシュミス時はErrCacheMissを返す", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet(key).RedisNil()

		_, err := NewSeatCache(db, time.Minute).GetAvailableCount(ctx, testEvent)

		assert.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("Redisエラーはラップして返す", func(t *testing.T) {
		db, mock := redismock.NewClientMock()
		mock.ExpectGet(key).SetErr(errors.New("timeout"))

		_, err := NewSeatCache(db, time.Minute).GetAvailableCount(ctx, testEvent)

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrCacheMiss)
	})
}

func setupTestRedis(t *testing.T) *redis.Client {
	client := NewClient(&config.RedisConfig{Host: "localhost", Port: "6379"})
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	if err := Ping(ctx, client); err != nil {
		client.Close()
		t.Skip("Redis not available")
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func TestSeatCache_Redis(t *testing.T) {
	client := setupTestRedis(t)
	cache := NewSeatCache(client, 30*time.Second)
	ctx := context.Background()
	eventName := "test-event-123"
	t.Cleanup(func() { _ = cache.Invalidate(ctx, eventName) })

	t.Run("キャッシュにセットした値を取得できる", func(t *testing.T) {
		require.NoError(t, cache.NotifyAvailability(ctx, eventName, 100))

		count, err := cache.GetAvailableCount(ctx, eventName)
		require.NoError(t, err)
		assert.Equal(t, 100, count)
	})

	t.Run("キャッシュを無効化できる", func(t *testing.T) {
		require.NoError(t, cache.SetAvailableCount(ctx, eventName, 50))
		require.NoError(t, cache.Invalidate(ctx, eventName))

		_, err := cache.GetAvailableCount(ctx, eventName)
		assert.ErrorIs(t, err, ErrCacheMiss)
	})
}
