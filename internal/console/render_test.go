package console

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Daeruvan/TicketService/internal/application"
	"github.com/Daeruvan/TicketService/internal/domain/event"
	"github.com/Daeruvan/TicketService/internal/domain/hold"
	"github.com/Daeruvan/TicketService/internal/domain/reservation"
	"github.com/Daeruvan/TicketService/internal/domain/seat"
)

func TestRenderSeats(t *testing.T) {
	seats := []seat.Seat{
		{Position: seat.Position{Row: 1, Column: 1}, Status: seat.StatusAvailable},
		{Position: seat.Position{Row: 1, Column: 2}, Status: seat.StatusHeld},
		{Position: seat.Position{Row: 2, Column: 1}, Status: seat.StatusReserved},
		{Position: seat.Position{Row: 2, Column: 2}, Status: seat.StatusAvailable},
	}

	got := renderSeats(2, 2, seats)

	assert.Equal(t, "[[  STAGE  ]]\n--\nah\nra\n", got)
}

func TestRenderSeats_StagePadding(t *testing.T) {
	got := renderSeats(1, 21, nil)

	lines := strings.Split(got, "\n")
	assert.Equal(t, "----[[  STAGE  ]]----", lines[0])
	assert.Equal(t, strings.Repeat("-", 21), lines[1])
}

func TestRenderPositions(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want string
	}{
		{"空", 0, ""},
		{"1行に収まる", 3, "[1,1] [1,2] [1,3]\n"},
		{"6件ごとに改行", 7, "[1,1] [1,2] [1,3] [1,4] [1,5] [1,6]\n[1,7]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			positions := make([]seat.Position, tt.n)
			for i := range positions {
				positions[i] = seat.Position{Row: 1, Column: i + 1}
			}
			assert.Equal(t, tt.want, renderPositions(positions))
		})
	}
}

func TestRenderEvent(t *testing.T) {
	start := time.Date(2030, time.September, 17, 6, 30, 0, 0, time.UTC)
	held := []seat.Seat{{Position: seat.Position{Row: 1, Column: 1}, Status: seat.StatusHeld}}
	reserved := []seat.Seat{{Position: seat.Position{Row: 1, Column: 2}, Status: seat.StatusReserved}}
	snap := application.Snapshot{
		Event:     event.Event{Name: "Show", StartAt: start, Rows: 1, Columns: 2},
		Available: 0,
		Seats:     append(append([]seat.Seat{}, held...), reserved...),
		Holds: []hold.SeatHold{
			{ID: 3, CustomerEmail: "a@b.com", Seats: held, Status: hold.StatusActive, ExpiresAt: start},
		},
		Reservations: []reservation.Reservation{
			{ConfirmationCode: "CODE-1", CustomerEmail: "c@d.com", Hold: hold.SeatHold{Seats: reserved}},
		},
	}

	var buf bytes.Buffer
	RenderEvent(&buf, snap)
	out := buf.String()

	assert.Contains(t, out, "Name: Show\n")
	assert.Contains(t, out, "Date: 2030-09-17 Time: 06:30:00\n")
	assert.Contains(t, out, "Available Seats: 0\n")
	assert.Contains(t, out, "\nhr\n")
	assert.Contains(t, out, "SeatHold: 3 a@b.com (expires 06:30:00)\n[1,1]\n")
	assert.Contains(t, out, "Reservation Confirmation Code: CODE-1\nCustomer Email: c@d.com\nSeats: [1,2]\n")
	assert.Less(t, strings.Index(out, "Seat Holds:"), strings.Index(out, "Reservations:"))
}
