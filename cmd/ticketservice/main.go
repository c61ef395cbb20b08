package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/Daeruvan/TicketService/internal/app"
	"github.com/Daeruvan/TicketService/internal/config"
	"github.com/Daeruvan/TicketService/internal/pkg/logger"
)

func main() {
	envFile := pflag.String("env-file", ".env", "環境変数を読み込む .env ファイル")
	logLevel := pflag.String("log-level", "", "ログレベル (debug, info, warn, error)。LOG_LEVEL より優先")
	pflag.Parse()

	if err := config.LoadDotEnv(*envFile); err != nil {
		logger.Fatal(".env 読み込みエラー", zap.String("path", *envFile), zap.Error(err))
	}
	cfg := config.Load()

	logger.Set(logger.NewLogger(cfg.Env, *logLevel))
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, os.Stdin, os.Stdout)
	if err != nil {
		logger.Fatal("起動エラー", zap.Error(err))
	}

	logger.Info("チケットサービス起動", zap.String("env", cfg.Env))
	if err := a.Run(ctx); err != nil {
		logger.Error("入力の読み込みエラー", zap.Error(err))
	}
	logger.Info("チケットサービスが正常に終了しました")
}
