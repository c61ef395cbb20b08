package event

import (
	"strings"
	"time"
)

// Event はチケット販売対象のイベントを表す。作成後に名前と座席数は変わらない
type Event struct {
	Name      string
	StartAt   time.Time
	Rows      int
	Columns   int
	CreatedAt time.Time
}

// NewEvent は now 時点で検証したイベントを作成する
func NewEvent(name string, startAt time.Time, rows, cols int, now time.Time) (*Event, error) {
	e := &Event{
		Name:      strings.TrimSpace(name),
		StartAt:   startAt,
		Rows:      rows,
		Columns:   cols,
		CreatedAt: now,
	}
	if err := e.Validate(now); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate はイベントの検証を行う
func (e *Event) Validate(now time.Time) error {
	if e.Name == "" {
		return ErrEventNameRequired
	}
	if e.StartAt.Before(now) {
		return ErrEventInPast
	}
	if e.Rows < 1 {
		return ErrInvalidRows
	}
	if e.Columns < 1 {
		return ErrInvalidColumns
	}
	return nil
}

// TotalSeats は総座席数を返す
func (e *Event) TotalSeats() int {
	return e.Rows * e.Columns
}

// Inventory はある時点の座席在庫の集計
type Inventory struct {
	Available    int
	Held         int
	Reserved     int
	ActiveHolds  int
	Reservations int
}
