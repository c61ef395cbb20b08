package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Daeruvan/TicketService/internal/api"
	"github.com/Daeruvan/TicketService/internal/application"
	"github.com/Daeruvan/TicketService/internal/config"
	"github.com/Daeruvan/TicketService/internal/console"
	"github.com/Daeruvan/TicketService/internal/infrastructure/rabbitmq"
	redisinfra "github.com/Daeruvan/TicketService/internal/infrastructure/redis"
	"github.com/Daeruvan/TicketService/internal/pkg/logger"
	"github.com/Daeruvan/TicketService/internal/pkg/metrics"
	"github.com/Daeruvan/TicketService/internal/worker"
)

const shutdownTimeout = 10 * time.Second

// App はシェル・管理サーバー・在庫レポーターと外部連携をまとめたプロセス全体
type App struct {
	cfg      *config.Config
	shell    *console.Shell
	server   *echo.Echo
	reporter *worker.InventoryReporter
	redis    *goredis.Client

	reporting bool
}

// New は設定に従って各コンポーネントを組み立てる。
// Redis が有効な場合は接続を確認し、失敗すればエラーを返す
func New(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, error) {
	a := &App{cfg: cfg}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewWithRegistry(reg)

	opts := []application.RegistryOption{application.WithMetrics(m)}
	if cfg.Redis.Enabled {
		client := redisinfra.NewClient(&cfg.Redis)
		if err := redisinfra.Ping(ctx, client); err != nil {
			client.Close()
			return nil, err
		}
		a.redis = client
		opts = append(opts, application.WithAvailabilityNotifier(redisinfra.NewSeatCache(client, cfg.Redis.TTL)))
		logger.Info("Redisへの空席数ミラーを有効化", zap.String("addr", cfg.Redis.Addr()))
	}
	if cfg.AMQP.Enabled {
		opts = append(opts, application.WithConfirmationPublisher(rabbitmq.NewPublisher(&cfg.AMQP)))
		logger.Info("予約確定イベントの送信を有効化", zap.String("queue", cfg.AMQP.Queue))
	}

	a.shell = console.NewShell(in, out, cfg, console.WithRegistryOptions(opts...))
	a.server = api.NewServer(&cfg.Admin, m, reg, a.shell)
	if cfg.Report.Interval > 0 {
		a.reporter = worker.NewInventoryReporter(a.shell, cfg.Report.Interval, nil)
	}
	return a, nil
}

// Shell はコマンドシェルを返す
func (a *App) Shell() *console.Shell {
	return a.shell
}

// Handler は管理APIのハンドラーを返す
func (a *App) Handler() http.Handler {
	return a.server
}

// Run はシェルが終了するか ctx がキャンセルされるまで動作し、その後すべてを停止する
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if a.cfg.Admin.Addr != "" {
		go func() {
			logger.Info("管理サーバー起動", zap.String("addr", a.cfg.Admin.Addr))
			if err := a.server.Start(a.cfg.Admin.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("管理サーバー起動エラー", zap.Error(err))
			}
		}()
	}
	if a.reporter != nil {
		a.reporting = true
		go a.reporter.Start(ctx)
	}

	shellDone := make(chan error, 1)
	go func() {
		shellDone <- a.shell.Run(ctx)
	}()

	var err error
	select {
	case <-ctx.Done():
		logger.Info("シャットダウンしています...")
	case err = <-shellDone:
		if errors.Is(err, context.Canceled) {
			err = nil
		}
	}
	a.Close()
	return err
}

// Close は各コンポーネントを停止する
func (a *App) Close() {
	if a.reporting {
		a.reporter.Stop()
		a.reporting = false
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("管理サーバーシャットダウンエラー", zap.Error(err))
	}

	a.shell.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("Redis切断エラー", zap.Error(err))
		}
		a.redis = nil
	}
}
