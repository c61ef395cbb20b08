package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// HealthHandler はヘルスチェックハンドラー
type HealthHandler struct {
	inventory InventoryProvider
}

// NewHealthHandler はHealthHandlerを作成する
func NewHealthHandler(inventory InventoryProvider) *HealthHandler {
	return &HealthHandler{inventory: inventory}
}

// HealthResponse はヘルスチェックのレスポンス
type HealthResponse struct {
	Status    string `json:"status"`
	EventOpen bool   `json:"event_open"`
	Timestamp string `json:"timestamp"`
}

// Check はヘルスチェックを行う。イベント未作成でもプロセスは健全とみなす
func (h *HealthHandler) Check(c echo.Context) error {
	_, err := h.inventory.Inventory()
	return c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		EventOpen: err == nil,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}
