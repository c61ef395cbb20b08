package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Daeruvan/TicketService/internal/application"
)

// InventoryHandler は座席在庫の参照ハンドラー
type InventoryHandler struct {
	inventory InventoryProvider
}

func NewInventoryHandler(inventory InventoryProvider) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// InventoryResponse は在庫集計のレスポンス
type InventoryResponse struct {
	Available    int `json:"available"`
	Held         int `json:"held"`
	Reserved     int `json:"reserved"`
	ActiveHolds  int `json:"active_holds"`
	Reservations int `json:"reservations"`
}

// Get は現在のイベントの在庫集計を返す
func (h *InventoryHandler) Get(c echo.Context) error {
	inv, err := h.inventory.Inventory()
	if err != nil {
		if errors.Is(err, application.ErrNotBound) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "イベントが作成されていません")
		}
		return err
	}
	return c.JSON(http.StatusOK, InventoryResponse{
		Available:    inv.Available,
		Held:         inv.Held,
		Reserved:     inv.Reserved,
		ActiveHolds:  inv.ActiveHolds,
		Reservations: inv.Reservations,
	})
}
