package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoundService(t *testing.T, rows, cols int, opts ...RegistryOption) *EventService {
	t.Helper()
	f := newFixture(t, rows, cols, opts...)
	svc := NewEventService(f.reg)
	require.NoError(t, svc.Bind(testEventName))
	return svc
}

func TestEventService_Bind(t *testing.T) {
	t.Run("一度だけ紐付けられる", func(t *testing.T) {
		svc := NewEventService(newFixture(t, 10, 15).reg)

		require.NoError(t, svc.Bind(testEventName))
		name, ok := svc.BoundEvent()
		assert.True(t, ok)
		assert.Equal(t, testEventName, name)

		assert.ErrorIs(t, svc.Bind(testEventName), ErrAlreadyBound)
		assert.ErrorIs(t, svc.Bind("別のイベント"), ErrAlreadyBound)
	})

	t.Run("台帳と異なるイベント名では紐付けられない", func(t *testing.T) {
		svc := NewEventService(newFixture(t, 10, 15).reg)

		assert.ErrorIs(t, svc.Bind("別のイベント"), ErrEventMismatch)
		_, ok := svc.BoundEvent()
		assert.False(t, ok)
	})
}

func TestEventService_Guards(t *testing.T) {
	ctx := context.Background()

	t.Run("紐付け前は全操作が失敗する", func(t *testing.T) {
		svc := NewEventService(newFixture(t, 10, 15).reg)

		_, err := svc.NumSeatsAvailable(testEventName)
		assert.ErrorIs(t, err, ErrNotBound)
		_, err = svc.FindAndHoldSeats(ctx, testEventName, 1, "a@b.com")
		assert.ErrorIs(t, err, ErrNotBound)
		_, err = svc.ReserveSeats(ctx, testEventName, 0, "a@b.com")
		assert.ErrorIs(t, err, ErrNotBound)
		_, err = svc.ReleaseHold(ctx, testEventName, 0, "a@b.com")
		assert.ErrorIs(t, err, ErrNotBound)
		_, err = svc.Snapshot(testEventName)
		assert.ErrorIs(t, err, ErrNotBound)
		_, err = svc.Inventory()
		assert.ErrorIs(t, err, ErrNotBound)
	})

	t.Run("イベント名が一致しない操作は失敗する", func(t *testing.T) {
		svc := newBoundService(t, 10, 15)

		_, err := svc.NumSeatsAvailable("other")
		assert.ErrorIs(t, err, ErrEventMismatch)
		_, err = svc.FindAndHoldSeats(ctx, "other", 1, "a@b.com")
		assert.ErrorIs(t, err, ErrEventMismatch)
		_, err = svc.ReserveSeats(ctx, "other", 0, "a@b.com")
		assert.ErrorIs(t, err, ErrEventMismatch)
		_, err = svc.ReleaseHold(ctx, "other", 0, "a@b.com")
		assert.ErrorIs(t, err, ErrEventMismatch)
		_, err = svc.Snapshot("other")
		assert.ErrorIs(t, err, ErrEventMismatch)

		n, err := svc.NumSeatsAvailable(testEventName)
		require.NoError(t, err)
		assert.Equal(t, 150, n)
	})
}

func TestEventService_Scenario(t *testing.T) {
	ctx := context.Background()

	t.Run("仮押さえから予約までの流れ", func(t *testing.T) {
		// 1. 150席のイベント
		svc := newBoundService(t, 10, 15)
		n, err := svc.NumSeatsAvailable(testEventName)
		require.NoError(t, err)
		assert.Equal(t, 150, n)

		// 2. 10席を仮押さえ
		h, err := svc.FindAndHoldSeats(ctx, testEventName, 10, "a@b.com")
		require.NoError(t, err)
		assert.Len(t, h.Seats, 10)
		n, err = svc.NumSeatsAvailable(testEventName)
		require.NoError(t, err)
		assert.Equal(t, 140, n)

		// 3. 予約を確定
		code, err := svc.ReserveSeats(ctx, testEventName, h.ID, "a@b.com")
		require.NoError(t, err)
		assert.NotEmpty(t, code)
		n, err = svc.NumSeatsAvailable(testEventName)
		require.NoError(t, err)
		assert.Equal(t, 140, n)

		snap, err := svc.Snapshot(testEventName)
		require.NoError(t, err)
		assert.Len(t, snap.Reservations, 1)

		// 4. 同じ仮押さえは再度確定できない
		_, err = svc.ReserveSeats(ctx, testEventName, h.ID, "a@b.com")
		assert.ErrorIs(t, err, ErrNotFound)

		inv, err := svc.Inventory()
		require.NoError(t, err)
		assert.Equal(t, 140, inv.Available)
		assert.Equal(t, 10, inv.Reserved)
		assert.Equal(t, 1, inv.Reservations)
	})

	t.Run("確定しなければ期限切れで空席に戻る", func(t *testing.T) {
		reg, err := NewHoldRegistry(newTestEvent(t, 10, 15), WithHoldDuration(200*time.Millisecond))
		require.NoError(t, err)
		svc := NewEventService(reg)
		defer svc.Close()
		require.NoError(t, svc.Bind(testEventName))

		_, err = svc.FindAndHoldSeats(ctx, testEventName, 5, "c@d.com")
		require.NoError(t, err)
		n, err := svc.NumSeatsAvailable(testEventName)
		require.NoError(t, err)
		assert.Equal(t, 145, n)

		time.Sleep(300 * time.Millisecond)

		n, err = svc.NumSeatsAvailable(testEventName)
		require.NoError(t, err)
		assert.Equal(t, 150, n)
		assert.Equal(t, 0, reg.ActiveHoldCount())
	})

	t.Run("明示的に解放する", func(t *testing.T) {
		svc := newBoundService(t, 10, 15)
		h, err := svc.FindAndHoldSeats(ctx, testEventName, 4, "a@b.com")
		require.NoError(t, err)

		released, err := svc.ReleaseHold(ctx, testEventName, h.ID, "a@b.com")
		require.NoError(t, err)
		assert.True(t, released)

		n, err := svc.NumSeatsAvailable(testEventName)
		require.NoError(t, err)
		assert.Equal(t, 150, n)
	})
}
