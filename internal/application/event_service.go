package application

import (
	"context"
	"fmt"
	"sync"

	"github.com/Daeruvan/TicketService/internal/domain/event"
	"github.com/Daeruvan/TicketService/internal/domain/hold"
)

// EventService は1つのイベントに紐付くチケットサービスの窓口。
// Bind が成功するまでは全操作が ErrNotBound を返す
type EventService struct {
	registry *HoldRegistry

	mu    sync.RWMutex
	bound string
}

// NewEventService は registry のイベントを扱うサービスを作成する
func NewEventService(registry *HoldRegistry) *EventService {
	return &EventService{registry: registry}
}

// Bind はサービスをイベントに紐付ける。紐付けは一度だけ行える
func (s *EventService) Bind(eventName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.bound != "" {
		return fmt.Errorf("%w: %s", ErrAlreadyBound, s.bound)
	}
	if eventName != s.registry.Event().Name {
		return fmt.Errorf("%w: %q", ErrEventMismatch, eventName)
	}
	s.bound = eventName
	return nil
}

// BoundEvent は紐付け済みのイベント名を返す
func (s *EventService) BoundEvent() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bound, s.bound != ""
}

func (s *EventService) check(eventName string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.bound == "" {
		return ErrNotBound
	}
	if eventName != s.bound {
		return fmt.Errorf("%w: %q", ErrEventMismatch, eventName)
	}
	return nil
}

// NumSeatsAvailable は空席数を返す
func (s *EventService) NumSeatsAvailable(eventName string) (int, error) {
	if err := s.check(eventName); err != nil {
		return 0, err
	}
	return s.registry.AvailableCount(), nil
}

// FindAndHoldSeats は最も好ましい空席を numSeats 席仮押さえする
func (s *EventService) FindAndHoldSeats(ctx context.Context, eventName string, numSeats int, email string) (*hold.SeatHold, error) {
	if err := s.check(eventName); err != nil {
		return nil, err
	}
	return s.registry.CreateHold(ctx, numSeats, email)
}

// ReserveSeats は仮押さえを確定し、確認コードを返す
func (s *EventService) ReserveSeats(ctx context.Context, eventName string, holdID int, email string) (string, error) {
	if err := s.check(eventName); err != nil {
		return "", err
	}
	return s.registry.ConfirmHold(ctx, holdID, email)
}

// ReleaseHold は仮押さえを解放する
func (s *EventService) ReleaseHold(ctx context.Context, eventName string, holdID int, email string) (bool, error) {
	if err := s.check(eventName); err != nil {
		return false, err
	}
	return s.registry.ReleaseHold(ctx, holdID, email)
}

// Snapshot はイベントの状態のコピーを返す
func (s *EventService) Snapshot(eventName string) (Snapshot, error) {
	if err := s.check(eventName); err != nil {
		return Snapshot{}, err
	}
	return s.registry.Snapshot(), nil
}

// Inventory は紐付け済みイベントの在庫集計を返す
func (s *EventService) Inventory() (event.Inventory, error) {
	if _, ok := s.BoundEvent(); !ok {
		return event.Inventory{}, ErrNotBound
	}
	return s.registry.Inventory(), nil
}

// Close はイベントの期限切れタイマーを停止する
func (s *EventService) Close() {
	s.registry.Close()
}
