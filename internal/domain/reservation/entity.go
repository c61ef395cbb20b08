package reservation

import (
	"time"

	"github.com/google/uuid"

	"github.com/Daeruvan/TicketService/internal/domain/hold"
	"github.com/Daeruvan/TicketService/internal/domain/seat"
)

// Reservation は確定済み予約を表す。作成後は変更しない
type Reservation struct {
	ConfirmationCode string
	CustomerEmail    string
	Hold             hold.SeatHold // 確定時点の仮押さえ（座席は予約済み）
	ConfirmedAt      time.Time
}

// NewReservation は確定済みの仮押さえから予約を作成する
func NewReservation(code string, h *hold.SeatHold, confirmedAt time.Time) (*Reservation, error) {
	if code == "" {
		return nil, ErrConfirmationCodeRequired
	}
	if h.Status != hold.StatusConfirmed {
		return nil, ErrHoldNotConfirmed
	}
	return &Reservation{
		ConfirmationCode: code,
		CustomerEmail:    h.CustomerEmail,
		Hold:             *h.Clone(),
		ConfirmedAt:      confirmedAt,
	}, nil
}

// Seats は予約済み座席の位置を返す
func (r *Reservation) Seats() []seat.Position {
	return r.Hold.Positions()
}

// NewConfirmationCode は新しい確認コードを生成する
func NewConfirmationCode() string {
	return uuid.NewString()
}
