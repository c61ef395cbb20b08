package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/Daeruvan/TicketService/internal/config"
	"github.com/Daeruvan/TicketService/internal/domain/reservation"
)

// ReservationConfirmed は予約確定時に送信するメッセージ
type ReservationConfirmed struct {
	Event            string    `json:"event"`
	ConfirmationCode string    `json:"confirmation_code"`
	CustomerEmail    string    `json:"customer_email"`
	HoldID           int       `json:"hold_id"`
	Seats            []string  `json:"seats"`
	ConfirmedAt      time.Time `json:"confirmed_at"`
}

// NewReservationConfirmed は予約からメッセージを作成する
func NewReservationConfirmed(eventName string, r reservation.Reservation) ReservationConfirmed {
	positions := r.Seats()
	seats := make([]string, len(positions))
	for i, p := range positions {
		seats[i] = p.String()
	}
	return ReservationConfirmed{
		Event:            eventName,
		ConfirmationCode: r.ConfirmationCode,
		CustomerEmail:    r.CustomerEmail,
		HoldID:           r.Hold.ID,
		Seats:            seats,
		ConfirmedAt:      r.ConfirmedAt.UTC(),
	}
}

// Publisher は予約確定メッセージを永続キューへ送信する。
// 送信のたびに接続し、送信後に切断する
type Publisher struct {
	url   string
	queue string
}

// NewPublisher は新しいPublisherを作成する
func NewPublisher(cfg *config.AMQPConfig) *Publisher {
	return &Publisher{url: cfg.URL, queue: cfg.Queue}
}

// PublishConfirmation は予約確定メッセージを送信する
func (p *Publisher) PublishConfirmation(ctx context.Context, eventName string, r reservation.Reservation) error {
	body, err := json.Marshal(NewReservationConfirmed(eventName, r))
	if err != nil {
		return fmt.Errorf("メッセージの変換に失敗: %w", err)
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("RabbitMQ接続に失敗: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("チャンネル作成に失敗: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("キュー宣言に失敗: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    r.ConfirmationCode,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("メッセージ送信に失敗: %w", err)
	}
	return nil
}
