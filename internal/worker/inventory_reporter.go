package worker

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Daeruvan/TicketService/internal/domain/event"
	"github.com/Daeruvan/TicketService/internal/pkg/logger"
)

// InventorySource は在庫集計を提供するインターフェース
type InventorySource interface {
	Inventory() (event.Inventory, error)
}

// InventoryReporter は座席在庫を定期的にログ出力するワーカー
type InventoryReporter struct {
	source   InventorySource
	interval time.Duration
	clock    clockwork.Clock
	stopCh   chan struct{}
	doneCh   chan struct{}
}

// NewInventoryReporter は新しいレポーターを作成
func NewInventoryReporter(source InventorySource, interval time.Duration, clock clockwork.Clock) *InventoryReporter {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &InventoryReporter{
		source:   source,
		interval: interval,
		clock:    clock,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start はレポーターを開始。ctx のキャンセルか Stop で戻る
func (r *InventoryReporter) Start(ctx context.Context) {
	logger.Info("在庫レポーター開始", zap.Duration("interval", r.interval))

	ticker := r.clock.NewTicker(r.interval)
	defer ticker.Stop()
	defer close(r.doneCh)

	for {
		select {
		case <-ctx.Done():
			logger.Info("在庫レポーター停止（コンテキストキャンセル）")
			return
		case <-r.stopCh:
			logger.Info("在庫レポーター停止（シグナル受信）")
			return
		case <-ticker.Chan():
			r.report()
		}
	}
}

// Stop はレポーターを停止し、Start が戻るまで待つ
func (r *InventoryReporter) Stop() {
	close(r.stopCh)
	<-r.doneCh
}

func (r *InventoryReporter) report() {
	inv, err := r.source.Inventory()
	if err != nil {
		logger.Debug("在庫集計をスキップ", zap.Error(err))
		return
	}
	logger.Info("座席在庫",
		logger.Available(inv.Available),
		zap.Int("held", inv.Held),
		zap.Int("reserved", inv.Reserved),
		zap.Int("active_holds", inv.ActiveHolds),
		zap.Int("reservations", inv.Reservations),
	)
}
