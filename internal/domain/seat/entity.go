package seat

import "fmt"

// Status は座席の状態を表す
type Status string

const (
	StatusAvailable Status = "available"
	StatusHeld      Status = "held"
	StatusReserved  Status = "reserved"
)

// Symbol は座席表で使う1文字表記を返す
func (s Status) Symbol() byte {
	switch s {
	case StatusAvailable:
		return 'a'
	case StatusHeld:
		return 'h'
	case StatusReserved:
		return 'r'
	default:
		return '?'
	}
}

// Position は座席の位置（行・列とも1始まり）
type Position struct {
	Row    int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("[%d,%d]", p.Row, p.Column)
}

// Seat は座席エンティティを表す
type Seat struct {
	Position
	Favorability int // 小さいほど良い席
	Status       Status
}

// NewSeat は利用可能状態の座席を作成する
func NewSeat(pos Position, favorability int) *Seat {
	return &Seat{
		Position:     pos,
		Favorability: favorability,
		Status:       StatusAvailable,
	}
}

// IsAvailable は座席が確保可能かを返す
func (s *Seat) IsAvailable() bool {
	return s.Status == StatusAvailable
}

// Hold は座席を仮押さえ状態にする
func (s *Seat) Hold() error {
	if s.Status != StatusAvailable {
		return fmt.Errorf("%w: %s", ErrSeatNotAvailable, s.Position)
	}
	s.Status = StatusHeld
	return nil
}

// Reserve は仮押さえ中の座席を予約済みにする。予約済みは終端状態
func (s *Seat) Reserve() error {
	if s.Status != StatusHeld {
		return fmt.Errorf("%w: %s", ErrSeatNotHeld, s.Position)
	}
	s.Status = StatusReserved
	return nil
}

// Release は仮押さえ中の座席を解放する
func (s *Seat) Release() error {
	if s.Status != StatusHeld {
		return fmt.Errorf("%w: %s", ErrSeatNotHeld, s.Position)
	}
	s.Status = StatusAvailable
	return nil
}
