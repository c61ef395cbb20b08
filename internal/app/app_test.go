package app

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Daeruvan/TicketService/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		Event: config.EventConfig{
			Name:    config.DefaultEventName,
			StartAt: time.Now().Add(24 * time.Hour),
			Rows:    10,
			Columns: 15,
		},
		Hold: config.HoldConfig{Duration: 20 * time.Second, IDCeiling: 10000},
	}
}

func TestNew_RedisUnavailable(t *testing.T) {
	cfg := testConfig()
	cfg.Redis = config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: "1"}

	a, err := New(context.Background(), cfg, strings.NewReader(""), &bytes.Buffer{})

	assert.Error(t, err)
	assert.Nil(t, a)
}

func TestApp_Run(t *testing.T) {
	t.Run("exitでシェルが終わると停止する", func(t *testing.T) {
		cfg := testConfig()
		cfg.Report.Interval = time.Hour
		out := &bytes.Buffer{}
		a, err := New(context.Background(), cfg, strings.NewReader("ts create\nts findandholdseats 2 a@b.com\nexit\n"), out)
		require.NoError(t, err)

		require.NoError(t, a.Run(context.Background()))

		assert.Contains(t, out.String(), "仮押さえに成功しました")
		_, err = a.Shell().Inventory()
		assert.Error(t, err, "停止後はイベントが破棄される")
	})

	t.Run("コンテキストのキャンセルで停止する", func(t *testing.T) {
		cfg := testConfig()
		cfg.Admin.Addr = "127.0.0.1:0"
		a, err := New(context.Background(), cfg, blockingReader{}, &bytes.Buffer{})
		require.NoError(t, err)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- a.Run(ctx) }()
		cancel()

		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("Run が停止しません")
		}
	})
}

// blockingReader は入力が来ない標準入力の代わり
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}
