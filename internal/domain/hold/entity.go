package hold

import (
	"fmt"
	"time"

	"github.com/Daeruvan/TicketService/internal/domain/seat"
)

// Status は仮押さえの状態を表す。Confirmed と Released は終端状態
type Status string

const (
	StatusActive    Status = "active"
	StatusConfirmed Status = "confirmed"
	StatusReleased  Status = "released"
)

// DefaultDuration は仮押さえの有効期間のデフォルト値
const DefaultDuration = 20 * time.Second

// Key は有効な仮押さえを一意に識別する（ID とメールアドレスの組）
type Key struct {
	ID    int
	Email string
}

func (k Key) String() string {
	return fmt.Sprintf("(%d,%s)", k.ID, k.Email)
}

// SeatHold は顧客のための期限付き仮押さえを表す
type SeatHold struct {
	ID            int
	CustomerEmail string
	Seats         []seat.Seat // 好ましさ順
	Status        Status
	CreatedAt     time.Time
	ExpiresAt     time.Time
}

// NewSeatHold は有効状態の仮押さえを作成する
func NewSeatHold(id int, email string, seats []seat.Seat, createdAt time.Time, duration time.Duration) *SeatHold {
	return &SeatHold{
		ID:            id,
		CustomerEmail: email,
		Seats:         seats,
		Status:        StatusActive,
		CreatedAt:     createdAt,
		ExpiresAt:     createdAt.Add(duration),
	}
}

// Key は仮押さえのキーを返す
func (h *SeatHold) Key() Key {
	return Key{ID: h.ID, Email: h.CustomerEmail}
}

// IsActive は仮押さえが有効かを返す
func (h *SeatHold) IsActive() bool {
	return h.Status == StatusActive
}

// Positions は仮押さえ中の座席位置を返す
func (h *SeatHold) Positions() []seat.Position {
	out := make([]seat.Position, len(h.Seats))
	for i, s := range h.Seats {
		out[i] = s.Position
	}
	return out
}

// Confirm は仮押さえを確定済みにし、座席の写しを予約済みにする
func (h *SeatHold) Confirm() error {
	if h.Status != StatusActive {
		return ErrHoldNotActive
	}
	h.Status = StatusConfirmed
	for i := range h.Seats {
		h.Seats[i].Status = seat.StatusReserved
	}
	return nil
}

// Release は仮押さえを解放済みにし、座席の写しを利用可能に戻す
func (h *SeatHold) Release() error {
	if h.Status != StatusActive {
		return ErrHoldNotActive
	}
	h.Status = StatusReleased
	for i := range h.Seats {
		h.Seats[i].Status = seat.StatusAvailable
	}
	return nil
}

// Clone は座席の写しを含めた複製を返す
func (h *SeatHold) Clone() *SeatHold {
	c := *h
	c.Seats = append([]seat.Seat(nil), h.Seats...)
	return &c
}
