package handler

import "github.com/Daeruvan/TicketService/internal/domain/event"

// InventoryProvider は現在のイベントの在庫集計を提供するインターフェース
type InventoryProvider interface {
	Inventory() (event.Inventory, error)
}
