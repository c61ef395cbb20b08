package seat

import (
	"cmp"
	"fmt"
	"slices"
)

// Map は1イベント分の座席表。座席は前列から後列、左から右の順に並ぶ
type Map struct {
	rows  int
	cols  int
	seats []*Seat
}

// NewMap は rows x cols の座席表を作成する。全座席は利用可能状態で始まる
func NewMap(rows, cols int) (*Map, error) {
	if rows < 1 {
		return nil, ErrInvalidRows
	}
	if cols < 1 {
		return nil, ErrInvalidColumns
	}
	seats := make([]*Seat, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			pos := Position{Row: row + 1, Column: col + 1}
			seats = append(seats, NewSeat(pos, Favorability(row, col, rows, cols)))
		}
	}
	return &Map{rows: rows, cols: cols, seats: seats}, nil
}

func (m *Map) Rows() int    { return m.rows }
func (m *Map) Columns() int { return m.cols }
func (m *Map) Len() int     { return len(m.seats) }

// At は指定位置の座席を返す
func (m *Map) At(pos Position) (*Seat, error) {
	if pos.Row < 1 || pos.Row > m.rows || pos.Column < 1 || pos.Column > m.cols {
		return nil, fmt.Errorf("%w: %s", ErrSeatNotFound, pos)
	}
	return m.seats[(pos.Row-1)*m.cols+(pos.Column-1)], nil
}

// SelectBest は利用可能な座席を好ましさ順に最大 n 席返す。
// 同点の場合は座席表の並び順を保つ。座席の状態は変更しない
func (m *Map) SelectBest(n int) []*Seat {
	available := make([]*Seat, 0, len(m.seats))
	for _, s := range m.seats {
		if s.IsAvailable() {
			available = append(available, s)
		}
	}
	slices.SortStableFunc(available, func(a, b *Seat) int {
		return cmp.Compare(a.Favorability, b.Favorability)
	})
	if n < len(available) {
		available = available[:n]
	}
	return available
}

// CountByStatus は状態ごとの座席数を返す
func (m *Map) CountByStatus() map[Status]int {
	counts := make(map[Status]int, 3)
	for _, s := range m.seats {
		counts[s.Status]++
	}
	return counts
}

// Snapshot は座席表のコピーを並び順どおりに返す
func (m *Map) Snapshot() []Seat {
	out := make([]Seat, len(m.seats))
	for i, s := range m.seats {
		out[i] = *s
	}
	return out
}
