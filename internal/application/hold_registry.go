package application

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Daeruvan/TicketService/internal/domain/event"
	"github.com/Daeruvan/TicketService/internal/domain/hold"
	"github.com/Daeruvan/TicketService/internal/domain/reservation"
	"github.com/Daeruvan/TicketService/internal/domain/seat"
	"github.com/Daeruvan/TicketService/internal/pkg/logger"
	"github.com/Daeruvan/TicketService/internal/pkg/metrics"
	"github.com/Daeruvan/TicketService/internal/worker"
)

const (
	triggerExplicit = "explicit"
	triggerExpired  = "expired"
)

// Scheduler は仮押さえの期限切れタイマーを管理するインターフェース
type Scheduler interface {
	Schedule(key hold.Key, d time.Duration, fire func()) error
	Cancel(key hold.Key) bool
	Stop()
}

// AvailabilityNotifier は空席数の変化を受け取るインターフェース
type AvailabilityNotifier interface {
	NotifyAvailability(ctx context.Context, eventName string, available int) error
}

// ConfirmationPublisher は確定した予約を受け取るインターフェース
type ConfirmationPublisher interface {
	PublishConfirmation(ctx context.Context, eventName string, r reservation.Reservation) error
}

// activeHold は管理中の仮押さえ。serial はID再利用後の古いタイマーを見分けるために使う
type activeHold struct {
	hold   *hold.SeatHold
	seats  []*seat.Seat
	serial uint64
}

// HoldRegistry は1イベント分の座席表・仮押さえ・予約台帳を1つのロックで保護する
type HoldRegistry struct {
	mu         sync.Mutex
	event      event.Event
	seats      *seat.Map
	available  int
	holds      map[hold.Key]*activeHold
	ids        map[int]hold.Key
	allocator  *hold.IDAllocator
	ledger     *reservation.Ledger
	nextSerial uint64

	duration  time.Duration
	idCeiling int
	clock     clockwork.Clock
	scheduler Scheduler
	metrics   *metrics.Metrics
	notifier  AvailabilityNotifier
	publisher ConfirmationPublisher
	log       *zap.Logger
}

// RegistryOption は HoldRegistry の設定を変更する
type RegistryOption func(*HoldRegistry)

// WithHoldDuration は仮押さえの有効期間を設定する。0以下は無視する
func WithHoldDuration(d time.Duration) RegistryOption {
	return func(r *HoldRegistry) {
		if d > 0 {
			r.duration = d
		}
	}
}

func WithIDCeiling(ceiling int) RegistryOption {
	return func(r *HoldRegistry) { r.idCeiling = ceiling }
}

func WithClock(clock clockwork.Clock) RegistryOption {
	return func(r *HoldRegistry) { r.clock = clock }
}

func WithScheduler(s Scheduler) RegistryOption {
	return func(r *HoldRegistry) { r.scheduler = s }
}

func WithMetrics(m *metrics.Metrics) RegistryOption {
	return func(r *HoldRegistry) { r.metrics = m }
}

func WithAvailabilityNotifier(n AvailabilityNotifier) RegistryOption {
	return func(r *HoldRegistry) { r.notifier = n }
}

func WithConfirmationPublisher(p ConfirmationPublisher) RegistryOption {
	return func(r *HoldRegistry) { r.publisher = p }
}

// NewHoldRegistry はイベントの座席表を作成し、全席利用可能な状態の台帳を返す
func NewHoldRegistry(ev *event.Event, opts ...RegistryOption) (*HoldRegistry, error) {
	seats, err := seat.NewMap(ev.Rows, ev.Columns)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	r := &HoldRegistry{
		event:     *ev,
		seats:     seats,
		available: seats.Len(),
		holds:     make(map[hold.Key]*activeHold),
		ids:       make(map[int]hold.Key),
		ledger:    reservation.NewLedger(),
		duration:  hold.DefaultDuration,
		idCeiling: hold.DefaultIDCeiling,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.clock == nil {
		r.clock = clockwork.NewRealClock()
	}
	if r.scheduler == nil {
		r.scheduler = worker.NewExpirationScheduler(r.clock)
	}
	r.allocator = hold.NewIDAllocator(r.idCeiling)
	r.log = logger.With(logger.Event(ev.Name))
	r.metrics.ObserveInventory(r.available, 0)
	return r, nil
}

// CreateHold は最も好ましい空席を numSeats 席仮押さえする
func (r *HoldRegistry) CreateHold(ctx context.Context, numSeats int, email string) (*hold.SeatHold, error) {
	if err := hold.ValidateSeatCount(numSeats); err != nil {
		r.metrics.HoldRequested(metrics.OutcomeInvalidArgument)
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}
	if err := hold.ValidateEmail(email); err != nil {
		r.metrics.HoldRequested(metrics.OutcomeInvalidArgument)
		return nil, fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	r.mu.Lock()
	h, available, active, err := r.createHoldLocked(numSeats, email)
	r.mu.Unlock()

	if err != nil {
		if Kind(err) == ErrInsufficientInventory {
			r.metrics.HoldRequested(metrics.OutcomeInsufficientInventory)
		}
		return nil, err
	}

	r.metrics.HoldRequested(metrics.OutcomeCreated)
	r.metrics.ObserveInventory(available, active)
	r.log.Info("座席を仮押さえしました",
		logger.HoldID(h.ID),
		logger.Email(email),
		logger.Seats(numSeats),
		logger.Available(available),
		zap.Time("expires_at", h.ExpiresAt),
	)
	r.notifyAvailability(ctx, available)
	return h, nil
}

func (r *HoldRegistry) createHoldLocked(numSeats int, email string) (*hold.SeatHold, int, int, error) {
	if numSeats > r.available {
		return nil, 0, 0, fmt.Errorf("%w: 要求 %d 席 / 空席 %d 席", ErrInsufficientInventory, numSeats, r.available)
	}
	selected := r.seats.SelectBest(numSeats)
	if len(selected) < numSeats {
		return nil, 0, 0, fmt.Errorf("%w: 要求 %d 席 / 選択可能 %d 席", ErrInsufficientInventory, numSeats, len(selected))
	}

	id, err := r.allocator.Next(func(id int) bool {
		_, ok := r.ids[id]
		return ok
	})
	if err != nil {
		return nil, 0, 0, fmt.Errorf("%w: %w", ErrInsufficientInventory, err)
	}
	if _, dup := r.ids[id]; dup {
		r.log.Error("有効な仮押さえとIDが重複しました", logger.HoldID(id))
		return nil, 0, 0, fmt.Errorf("%w: %w", ErrInvariantViolation, hold.ErrHoldIDCollision)
	}

	key := hold.Key{ID: id, Email: email}
	serial := r.nextSerial
	if err := r.scheduler.Schedule(key, r.duration, func() { r.expire(key, serial) }); err != nil {
		return nil, 0, 0, fmt.Errorf("期限切れタイマーの登録に失敗: %w", err)
	}

	for i, s := range selected {
		if err := s.Hold(); err != nil {
			for _, done := range selected[:i] {
				_ = done.Release()
			}
			r.scheduler.Cancel(key)
			r.log.Error("空席のはずの座席を仮押さえできません", zap.Error(err))
			return nil, 0, 0, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
	}

	copies := make([]seat.Seat, len(selected))
	for i, s := range selected {
		copies[i] = *s
	}
	h := hold.NewSeatHold(id, email, copies, r.clock.Now(), r.duration)

	r.nextSerial++
	r.available -= numSeats
	r.holds[key] = &activeHold{hold: h, seats: selected, serial: serial}
	r.ids[id] = key
	return h.Clone(), r.available, len(r.holds), nil
}

// ConfirmHold は有効な仮押さえを予約として確定し、確認コードを返す
func (r *HoldRegistry) ConfirmHold(ctx context.Context, holdID int, email string) (string, error) {
	key := hold.Key{ID: holdID, Email: email}

	r.mu.Lock()
	res, active, err := r.confirmHoldLocked(key)
	available := r.available
	r.mu.Unlock()

	if err != nil {
		return "", err
	}

	r.metrics.HoldFinished(metrics.TransitionConfirmed)
	r.metrics.ObserveInventory(available, active)
	r.log.Info("仮押さえを予約として確定しました",
		logger.HoldID(holdID),
		logger.Email(email),
		logger.Seats(len(res.Hold.Seats)),
		logger.ConfirmationCode(res.ConfirmationCode),
	)
	if r.publisher != nil {
		if err := r.publisher.PublishConfirmation(ctx, r.event.Name, *res); err != nil {
			r.log.Warn("予約確定の通知に失敗しました",
				logger.ConfirmationCode(res.ConfirmationCode),
				zap.Error(err),
			)
		}
	}
	return res.ConfirmationCode, nil
}

func (r *HoldRegistry) confirmHoldLocked(key hold.Key) (*reservation.Reservation, int, error) {
	ah, ok := r.holds[key]
	if !ok {
		return nil, 0, fmt.Errorf("%w: %w: id=%d", ErrNotFound, hold.ErrHoldNotFound, key.ID)
	}

	// 取り消しに間に合わなかったタイマーは expire で仮押さえが見つからず何もしない
	r.scheduler.Cancel(key)

	for _, s := range ah.seats {
		if err := s.Reserve(); err != nil {
			r.log.Error("仮押さえ中でない座席を予約しようとしました", zap.Error(err))
			return nil, 0, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
	}
	if err := ah.hold.Confirm(); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	r.remove(key)

	res, err := reservation.NewReservation(r.ledger.NewUniqueCode(), ah.hold, r.clock.Now())
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	if err := r.ledger.Append(res); err != nil {
		return nil, 0, fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	return res, len(r.holds), nil
}

// ReleaseHold は有効な仮押さえを明示的に解放し、座席を空席に戻す
func (r *HoldRegistry) ReleaseHold(ctx context.Context, holdID int, email string) (bool, error) {
	key := hold.Key{ID: holdID, Email: email}

	r.mu.Lock()
	ah, ok := r.holds[key]
	if !ok {
		r.mu.Unlock()
		return false, fmt.Errorf("%w: %w: id=%d", ErrNotFound, hold.ErrHoldNotFound, holdID)
	}
	r.scheduler.Cancel(key)
	err := r.releaseLocked(key, ah)
	available, active := r.available, len(r.holds)
	r.mu.Unlock()

	if err != nil {
		return false, err
	}
	r.released(ctx, ah.hold, triggerExplicit, available, active)
	return true, nil
}

// expire はタイマーから呼ばれる。serial が一致する有効な仮押さえのみ解放する
func (r *HoldRegistry) expire(key hold.Key, serial uint64) {
	r.mu.Lock()
	ah, ok := r.holds[key]
	if !ok || ah.serial != serial {
		r.mu.Unlock()
		r.log.Debug("仮押さえは既に終了しています", logger.HoldID(key.ID), logger.Email(key.Email))
		return
	}
	err := r.releaseLocked(key, ah)
	available, active := r.available, len(r.holds)
	r.mu.Unlock()

	if err != nil {
		return
	}
	r.released(context.Background(), ah.hold, triggerExpired, available, active)
}

func (r *HoldRegistry) releaseLocked(key hold.Key, ah *activeHold) error {
	for _, s := range ah.seats {
		if err := s.Release(); err != nil {
			r.log.Error("仮押さえ中でない座席を解放しようとしました", zap.Error(err))
			return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
	}
	if err := ah.hold.Release(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
	}
	r.available += len(ah.seats)
	r.remove(key)
	return nil
}

func (r *HoldRegistry) remove(key hold.Key) {
	delete(r.holds, key)
	delete(r.ids, key.ID)
}

func (r *HoldRegistry) released(ctx context.Context, h *hold.SeatHold, trigger string, available, active int) {
	transition := metrics.TransitionReleased
	if trigger == triggerExpired {
		transition = metrics.TransitionExpired
	}
	r.metrics.HoldFinished(transition)
	r.metrics.ObserveInventory(available, active)
	r.log.Info("仮押さえを解放しました",
		logger.HoldID(h.ID),
		logger.Email(h.CustomerEmail),
		logger.Seats(len(h.Seats)),
		logger.Available(available),
		logger.Trigger(trigger),
	)
	r.notifyAvailability(ctx, available)
}

func (r *HoldRegistry) notifyAvailability(ctx context.Context, available int) {
	if r.notifier == nil {
		return
	}
	if err := r.notifier.NotifyAvailability(ctx, r.event.Name, available); err != nil {
		r.log.Warn("空席数の同期に失敗しました", logger.Available(available), zap.Error(err))
	}
}

// Event はイベント情報を返す
func (r *HoldRegistry) Event() event.Event {
	return r.event
}

// HoldDuration は仮押さえの有効期間を返す
func (r *HoldRegistry) HoldDuration() time.Duration {
	return r.duration
}

// AvailableCount は空席数を返す
func (r *HoldRegistry) AvailableCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.available
}

// ActiveHoldCount は有効な仮押さえ数を返す
func (r *HoldRegistry) ActiveHoldCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.holds)
}

// Reservations は確定済み予約を確定順に返す
func (r *HoldRegistry) Reservations() []reservation.Reservation {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ledger.All()
}

// Inventory は現時点の在庫集計を返す
func (r *HoldRegistry) Inventory() event.Inventory {
	r.mu.Lock()
	defer r.mu.Unlock()

	counts := r.seats.CountByStatus()
	return event.Inventory{
		Available:    r.available,
		Held:         counts[seat.StatusHeld],
		Reserved:     counts[seat.StatusReserved],
		ActiveHolds:  len(r.holds),
		Reservations: r.ledger.Len(),
	}
}

// Snapshot はイベントの状態の読み取り専用コピー
type Snapshot struct {
	Event        event.Event
	Available    int
	Seats        []seat.Seat
	Holds        []hold.SeatHold
	Reservations []reservation.Reservation
}

// Snapshot は現時点の状態のコピーを返す。仮押さえは作成順に並ぶ
func (r *HoldRegistry) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	active := make([]*activeHold, 0, len(r.holds))
	for _, ah := range r.holds {
		active = append(active, ah)
	}
	slices.SortFunc(active, func(a, b *activeHold) int {
		return cmp.Compare(a.serial, b.serial)
	})
	holds := make([]hold.SeatHold, len(active))
	for i, ah := range active {
		holds[i] = *ah.hold.Clone()
	}

	return Snapshot{
		Event:        r.event,
		Available:    r.available,
		Seats:        r.seats.Snapshot(),
		Holds:        holds,
		Reservations: r.ledger.All(),
	}
}

// Close は未発火のタイマーをすべて取り消す
func (r *HoldRegistry) Close() {
	r.scheduler.Stop()
}
