package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/Daeruvan/TicketService/internal/domain/event"
)

// NewTestEcho はテスト用のEchoインスタンスを作成する
func NewTestEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// StaticInventory は固定の集計を返す InventoryProvider
type StaticInventory struct {
	Inv event.Inventory
	Err error
}

func (s StaticInventory) Inventory() (event.Inventory, error) {
	return s.Inv, s.Err
}
