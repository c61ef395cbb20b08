package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// 仮押さえ作成の結果ラベル
const (
	OutcomeCreated               = "created"
	OutcomeInvalidArgument       = "invalid_argument"
	OutcomeInsufficientInventory = "insufficient_inventory"
)

// 仮押さえの終端遷移ラベル
const (
	TransitionConfirmed = "confirmed"
	TransitionReleased  = "released"
	TransitionExpired   = "expired"
)

// Metrics はアプリケーションのメトリクスを管理する
type Metrics struct {
	// 管理用HTTPリクエストの総数（method, path, status_code）
	HTTPRequestsTotal *prometheus.CounterVec

	// 管理用HTTPリクエストのレイテンシ（method, path）
	HTTPRequestDuration *prometheus.HistogramVec

	// 仮押さえ要求の総数（outcome: created, invalid_argument, insufficient_inventory）
	HoldsTotal *prometheus.CounterVec

	// 仮押さえの終端遷移の総数（transition: confirmed, released, expired）
	HoldTransitionsTotal *prometheus.CounterVec

	// 確定済み予約の総数
	ReservationsTotal prometheus.Counter

	// 有効な仮押さえ数
	ActiveHolds prometheus.Gauge

	// 利用可能な座席数
	AvailableSeats prometheus.Gauge
}

// New は新しいMetricsインスタンスを作成し、デフォルトレジストリに登録する
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry は指定したレジストリにメトリクスを登録する
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of admin HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Admin HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1},
			},
			[]string{"method", "path"},
		),
		HoldsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seat_holds_total",
				Help: "Total number of seat hold requests by outcome",
			},
			[]string{"outcome"},
		),
		HoldTransitionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seat_hold_transitions_total",
				Help: "Total number of seat holds leaving the active state",
			},
			[]string{"transition"},
		),
		ReservationsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "reservations_total",
				Help: "Total number of confirmed reservations",
			},
		),
		ActiveHolds: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "active_seat_holds",
				Help: "Current number of active seat holds",
			},
		),
		AvailableSeats: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "available_seats",
				Help: "Current number of available seats",
			},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.HoldsTotal,
		m.HoldTransitionsTotal,
		m.ReservationsTotal,
		m.ActiveHolds,
		m.AvailableSeats,
	)

	return m
}

// ObserveInventory は在庫ゲージを更新する。nil の場合は何もしない
func (m *Metrics) ObserveInventory(available, activeHolds int) {
	if m == nil {
		return
	}
	m.AvailableSeats.Set(float64(available))
	m.ActiveHolds.Set(float64(activeHolds))
}

// HoldRequested は仮押さえ要求の結果を数える
func (m *Metrics) HoldRequested(outcome string) {
	if m == nil {
		return
	}
	m.HoldsTotal.WithLabelValues(outcome).Inc()
}

// HoldFinished は仮押さえの終端遷移を数える
func (m *Metrics) HoldFinished(transition string) {
	if m == nil {
		return
	}
	m.HoldTransitionsTotal.WithLabelValues(transition).Inc()
	if transition == TransitionConfirmed {
		m.ReservationsTotal.Inc()
	}
}
