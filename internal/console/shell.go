package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/Daeruvan/TicketService/internal/application"
	"github.com/Daeruvan/TicketService/internal/config"
	"github.com/Daeruvan/TicketService/internal/domain/event"
	"github.com/Daeruvan/TicketService/internal/pkg/logger"
)

const (
	commandTicketService = "ts"
	commandHelp          = "help"
	commandExit          = "exit"

	actionCreate            = "create"
	actionPrint             = "print"
	actionNumSeatsAvailable = "numseatsavailable"
	actionFindAndHoldSeats  = "findandholdseats"
	actionReserveSeats      = "reserveseats"
	actionReleaseHold       = "releasehold"
)

const createUsage = "使い方: ts create [name] [year] [month] [day] [hour] [min] [rows] [cols]"

const helpText = `チケットサービスのコンソール
Commands:
  ts create              イベントを作成し、チケットサービスを紐付ける
                         任意引数: [name] [year] [month] [day] [hour] [min] [rows] [cols]
                         例: ts create Cat-Juggling-Competition 2030 8 20 18 00 30 30
  ts print               座席表・仮押さえ・予約を表示する
  ts numseatsavailable   空席数を表示する
  ts findandholdseats    最も良い空席を仮押さえする  引数: <numSeats> <email>
  ts reserveseats        仮押さえを予約として確定する  引数: <seatHoldId> <email>
  ts releasehold         仮押さえを解放する  引数: <seatHoldId> <email>
  help                   このヘルプを表示する
  exit                   終了する
`

var errNoService = errors.New("チケットサービスが作成されていません。ts create を実行してください")

// Shell は行単位のコマンドでチケットサービスを操作する対話シェル。
// ts create のたびに新しいイベントとサービスを作り直す
type Shell struct {
	in    *bufio.Scanner
	out   io.Writer
	cfg   *config.Config
	clock clockwork.Clock
	opts  []application.RegistryOption

	mu      sync.RWMutex
	service *application.EventService
}

// ShellOption は Shell の設定を変更する
type ShellOption func(*Shell)

// WithShellClock はイベント作成時の現在時刻に使う時計を設定する
func WithShellClock(clock clockwork.Clock) ShellOption {
	return func(s *Shell) { s.clock = clock }
}

// WithRegistryOptions は作成する HoldRegistry に渡すオプションを追加する
func WithRegistryOptions(opts ...application.RegistryOption) ShellOption {
	return func(s *Shell) { s.opts = append(s.opts, opts...) }
}

// NewShell は新しいシェルを作成する。仮押さえの期間とID上限は cfg から取る
func NewShell(in io.Reader, out io.Writer, cfg *config.Config, opts ...ShellOption) *Shell {
	s := &Shell{
		in:    bufio.NewScanner(in),
		out:   out,
		cfg:   cfg,
		clock: clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.opts = append([]application.RegistryOption{
		application.WithClock(s.clock),
		application.WithHoldDuration(cfg.Hold.Duration),
		application.WithIDCeiling(cfg.Hold.IDCeiling),
	}, s.opts...)
	return s
}

// Run は入力が尽きるか exit が入力されるまでコマンドを処理する
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, ok := s.readLine()
		if !ok {
			return s.in.Err()
		}
		if !s.Execute(ctx, line) {
			return nil
		}
	}
}

// Execute は1行分のコマンドを実行する。exit なら false を返す
func (s *Shell) Execute(ctx context.Context, line string) bool {
	args := strings.Fields(line)
	if len(args) == 0 {
		return true
	}

	switch strings.ToLower(args[0]) {
	case commandTicketService:
		s.runTicketService(ctx, args[1:])
	case commandHelp:
		s.println(helpText)
	case commandExit:
		return false
	default:
		s.println("コマンドが認識できません。help で使い方を表示します")
	}
	return true
}

// Inventory は現在のイベントの在庫集計を返す。イベントがなければ ErrNotBound
func (s *Shell) Inventory() (event.Inventory, error) {
	svc := s.current()
	if svc == nil {
		return event.Inventory{}, application.ErrNotBound
	}
	return svc.Inventory()
}

// Close は現在のイベントのタイマーを停止する
func (s *Shell) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.service != nil {
		s.service.Close()
		s.service = nil
	}
}

func (s *Shell) runTicketService(ctx context.Context, args []string) {
	if len(args) == 0 {
		s.println("無効なコマンドです。help で使い方を表示します")
		return
	}

	action, params := strings.ToLower(args[0]), args[1:]
	if action == actionCreate {
		s.create(params)
		return
	}

	svc := s.current()
	if svc == nil {
		s.println(errNoService.Error())
		return
	}
	name, _ := svc.BoundEvent()

	switch action {
	case actionPrint:
		snap, err := svc.Snapshot(name)
		if err != nil {
			s.printError("表示に失敗しました", err)
			return
		}
		RenderEvent(s.out, snap)
	case actionNumSeatsAvailable:
		n, err := svc.NumSeatsAvailable(name)
		if err != nil {
			s.printError("空席数の取得に失敗しました", err)
			return
		}
		s.printf("空席数: %d\n", n)
	case actionFindAndHoldSeats:
		n, email, ok := s.intAndEmail(params, "findandholdseats <numSeats> <email>")
		if !ok {
			return
		}
		s.printf("%s のために %d 席を探しています\n", email, n)
		h, err := svc.FindAndHoldSeats(ctx, name, n, email)
		if err != nil {
			s.printError("仮押さえに失敗しました", err)
			return
		}
		s.printf("仮押さえに成功しました。%s に期限切れになります\n", h.ExpiresAt.Format(time.TimeOnly))
		s.println(renderHold(h))
	case actionReserveSeats:
		id, email, ok := s.intAndEmail(params, "reserveseats <seatHoldId> <email>")
		if !ok {
			return
		}
		code, err := svc.ReserveSeats(ctx, name, id, email)
		if err != nil {
			s.printError("予約に失敗しました", err)
			return
		}
		s.printf("予約が確定しました。確認コード: %s\n", code)
	case actionReleaseHold:
		id, email, ok := s.intAndEmail(params, "releasehold <seatHoldId> <email>")
		if !ok {
			return
		}
		if _, err := svc.ReleaseHold(ctx, name, id, email); err != nil {
			s.printError("解放に失敗しました", err)
			return
		}
		s.printf("仮押さえ %d を解放しました\n", id)
	default:
		s.println("コマンドが認識できません。help で使い方を表示します")
	}
}

// create は引数を解釈してイベントを作り、サービスを入れ替える。
// 省略した引数は設定のデフォルト値を使う
func (s *Shell) create(params []string) {
	def := s.cfg.Event
	name := def.Name
	if len(params) > 0 {
		name = params[0]
	}

	start := def.StartAt
	fields := []struct {
		label string
		value int
	}{
		{"year", start.Year()},
		{"month", int(start.Month())},
		{"day", start.Day()},
		{"hour", start.Hour()},
		{"min", start.Minute()},
		{"rows", def.Rows},
		{"cols", def.Columns},
	}
	for i := range fields {
		if len(params) <= i+1 {
			break
		}
		v, err := strconv.Atoi(params[i+1])
		if err != nil {
			s.printf("無効な引数です。%s は整数で指定してください\n%s\n", fields[i].label, createUsage)
			return
		}
		fields[i].value = v
	}
	startAt := time.Date(fields[0].value, time.Month(fields[1].value), fields[2].value,
		fields[3].value, fields[4].value, 0, 0, start.Location())
	rows, cols := fields[5].value, fields[6].value

	if s.current() != nil && !s.confirmReplace() {
		return
	}

	ev, err := event.NewEvent(name, startAt, rows, cols, s.clock.Now())
	if err != nil {
		s.printError("イベントを作成できません", fmt.Errorf("%w: %w", application.ErrInvalidArgument, err))
		return
	}
	registry, err := application.NewHoldRegistry(ev, s.opts...)
	if err != nil {
		s.printError("イベントを作成できません", err)
		return
	}
	svc := application.NewEventService(registry)
	if err := svc.Bind(ev.Name); err != nil {
		registry.Close()
		s.printError("チケットサービスを紐付けできません", err)
		return
	}

	s.mu.Lock()
	old := s.service
	s.service = svc
	s.mu.Unlock()
	if old != nil {
		old.Close()
	}

	logger.Info("イベント作成", logger.Event(ev.Name), zap.Int("rows", rows), zap.Int("columns", cols))
	s.println("イベントを作成しました")
	snap, _ := svc.Snapshot(ev.Name)
	RenderEvent(s.out, snap)
	s.println("チケットサービスをイベントに紐付けました。利用できます")
}

func (s *Shell) confirmReplace() bool {
	s.println("チケットサービスは既に存在します。新しいものに置き換えますか? (Y/N)")
	answer, ok := s.readLine()
	if !ok {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y":
		return true
	case "n":
		s.println("チケットサービスは作成されませんでした")
	default:
		s.println("無効な応答です (Y/N)。チケットサービスは作成されませんでした")
	}
	return false
}

func (s *Shell) intAndEmail(params []string, usage string) (int, string, bool) {
	if len(params) < 2 {
		s.printf("無効なコマンドです。使い方: ts %s\n", usage)
		return 0, "", false
	}
	n, err := strconv.Atoi(params[0])
	if err != nil {
		s.printf("無効なコマンドです。最初の引数は整数で指定してください: ts %s\n", usage)
		return 0, "", false
	}
	return n, params[1], true
}

func (s *Shell) current() *application.EventService {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.service
}

func (s *Shell) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Shell) printError(msg string, err error) {
	s.printf("%s: %v\n", msg, err)
}

func (s *Shell) println(msg string) {
	fmt.Fprintln(s.out, msg)
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}
