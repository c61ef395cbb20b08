package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Daeruvan/TicketService/internal/api/handler"
	"github.com/Daeruvan/TicketService/internal/api/middleware"
	"github.com/Daeruvan/TicketService/internal/config"
	"github.com/Daeruvan/TicketService/internal/pkg/metrics"
)

// NewServer は管理用HTTPサーバーを構築する。
// チケット操作は公開せず、ヘルスチェック・在庫参照・メトリクスのみを提供する
func NewServer(cfg *config.AdminConfig, m *metrics.Metrics, gatherer prometheus.Gatherer, inventory handler.InventoryProvider) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = CustomHTTPErrorHandler
	e.Server.ReadTimeout = cfg.ReadTimeout
	e.Server.WriteTimeout = cfg.WriteTimeout

	middleware.SetupMiddleware(e, m)

	health := handler.NewHealthHandler(inventory)
	inv := handler.NewInventoryHandler(inventory)

	e.GET("/health", health.Check)
	e.GET("/inventory", inv.Get)
	e.GET("/metrics",
		echo.WrapHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})),
		middleware.MetricsBasicAuth(cfg.MetricsUser, cfg.MetricsPassword),
	)
	return e
}
