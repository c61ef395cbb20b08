package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// AvailabilityChannel は空席数の変化を流すチャンネル
const AvailabilityChannel = "seats:availability"

var (
	ErrCacheMiss = errors.New("キャッシュが見つかりません")
)

// SeatCache はイベントの空席数をRedisに写す。正となる在庫はプロセス内の台帳にある
type SeatCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewSeatCache は新しいSeatCacheインスタンスを作成する
func NewSeatCache(client redis.Cmdable, ttl time.Duration) *SeatCache {
	return &SeatCache{client: client, ttl: ttl}
}

// NotifyAvailability は空席数を保存し、購読者へ通知する
func (c *SeatCache) NotifyAvailability(ctx context.Context, eventName string, available int) error {
	if err := c.SetAvailableCount(ctx, eventName, available); err != nil {
		return err
	}
	msg := eventName + ":" + strconv.Itoa(available)
	if err := c.client.Publish(ctx, AvailabilityChannel, msg).Err(); err != nil {
		return fmt.Errorf("空席数の通知に失敗: %w", err)
	}
	return nil
}

// GetAvailableCount はイベントの空席数をキャッシュから取得する
func (c *SeatCache) GetAvailableCount(ctx context.Context, eventName string) (int, error) {
	val, err := c.client.Get(ctx, availableCountKey(eventName)).Int()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrCacheMiss
		}
		return 0, fmt.Errorf("キャッシュ取得に失敗: %w", err)
	}
	return val, nil
}

// SetAvailableCount はイベントの空席数をキャッシュに保存する
func (c *SeatCache) SetAvailableCount(ctx context.Context, eventName string, count int) error {
	if err := c.client.Set(ctx, availableCountKey(eventName), count, c.ttl).Err(); err != nil {
		return fmt.Errorf("キャッシュ保存に失敗: %w", err)
	}
	return nil
}

// Invalidate はイベントのキャッシュを無効化する
func (c *SeatCache) Invalidate(ctx context.Context, eventName string) error {
	if err := c.client.Del(ctx, availableCountKey(eventName)).Err(); err != nil {
		return fmt.Errorf("キャッシュ無効化に失敗: %w", err)
	}
	return nil
}

func availableCountKey(eventName string) string {
	return fmt.Sprintf("seats:available:%s", eventName)
}
