package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/Daeruvan/TicketService/internal/application"
	"github.com/Daeruvan/TicketService/internal/domain/hold"
	"github.com/Daeruvan/TicketService/internal/domain/seat"
)

const (
	stageSign       = "[[  STAGE  ]]"
	positionsPerRow = 6
	wideRule        = "=============================================================================="
	sectionRule     = "======================================================"
	entryRule       = "-------------------------------------------------------"
)

// RenderEvent はイベントの状態を表示用テキストとして書き出す
func RenderEvent(w io.Writer, snap application.Snapshot) {
	var b strings.Builder
	ev := snap.Event

	b.WriteString(wideRule + "\n")
	b.WriteString("===========================   TicketedEvent   ================================\n")
	fmt.Fprintf(&b, "Name: %s\n", ev.Name)
	fmt.Fprintf(&b, "Date: %s Time: %s\n", ev.StartAt.Format("2006-01-02"), ev.StartAt.Format("15:04:05"))
	fmt.Fprintf(&b, "Available Seats: %d\n", snap.Available)
	b.WriteString(renderSeats(ev.Rows, ev.Columns, snap.Seats))
	b.WriteString("\n")

	b.WriteString(sectionRule + "\nSeat Holds:\n")
	for i := range snap.Holds {
		b.WriteString(renderHold(&snap.Holds[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(sectionRule + "\nReservations:\n")
	for _, r := range snap.Reservations {
		b.WriteString(entryRule + "\n")
		fmt.Fprintf(&b, "Reservation Confirmation Code: %s\n", r.ConfirmationCode)
		fmt.Fprintf(&b, "Customer Email: %s\n", r.CustomerEmail)
		b.WriteString("Seats: " + renderPositions(r.Seats()))
	}
	b.WriteString("\n")

	io.WriteString(w, b.String())
}

// renderSeats は舞台を上にして座席の状態を1席1文字で並べる
func renderSeats(rows, cols int, seats []seat.Seat) string {
	grid := make([][]byte, rows)
	for r := range grid {
		grid[r] = make([]byte, cols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}
	for _, s := range seats {
		r, c := s.Position.Row-1, s.Position.Column-1
		if r < 0 || r >= rows || c < 0 || c >= cols {
			continue
		}
		grid[r][c] = s.Status.Symbol()
	}

	var b strings.Builder
	pad := strings.Repeat("-", max((cols-len(stageSign))/2, 0))
	b.WriteString(pad + stageSign + pad + "\n")
	b.WriteString(strings.Repeat("-", cols) + "\n")
	for _, row := range grid {
		b.Write(row)
		b.WriteByte('\n')
	}
	return b.String()
}

func renderHold(h *hold.SeatHold) string {
	return fmt.Sprintf("%s\nSeatHold: %d %s (expires %s)\n%s",
		wideRule, h.ID, h.CustomerEmail, h.ExpiresAt.Format("15:04:05"), renderPositions(h.Positions()))
}

// renderPositions は座席位置を1行6件で並べる
func renderPositions(positions []seat.Position) string {
	var b strings.Builder
	for i, p := range positions {
		b.WriteString(p.String())
		if (i+1)%positionsPerRow == 0 || i == len(positions)-1 {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
