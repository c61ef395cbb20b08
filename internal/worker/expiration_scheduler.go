package worker

import (
	"errors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/Daeruvan/TicketService/internal/domain/hold"
)

// ErrSchedulerStopped は停止後のスケジューラにタイマーを登録しようとした場合に返る
var ErrSchedulerStopped = errors.New("期限切れスケジューラは停止しています")

// ExpirationScheduler は仮押さえごとに1つの期限切れタイマーを管理する。
// タイマーは一度だけ発火し、再登録や再試行はしない
type ExpirationScheduler struct {
	clock   clockwork.Clock
	mu      sync.Mutex
	timers  map[hold.Key]*pendingExpiration
	stopped bool
}

type pendingExpiration struct {
	timer clockwork.Timer
}

// NewExpirationScheduler は新しいスケジューラを作成する。clock が nil なら実時間を使う
func NewExpirationScheduler(clock clockwork.Clock) *ExpirationScheduler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &ExpirationScheduler{
		clock:  clock,
		timers: make(map[hold.Key]*pendingExpiration),
	}
}

// Schedule は d 経過後に fire を一度だけ呼ぶタイマーを登録する。
// 同じキーの未発火タイマーがあれば置き換える。
// fire はスケジューラのロック外で、タイマーのゴルーチンから呼ばれる
func (s *ExpirationScheduler) Schedule(key hold.Key, d time.Duration, fire func()) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrSchedulerStopped
	}
	if old, ok := s.timers[key]; ok {
		old.timer.Stop()
	}

	p := &pendingExpiration{}
	// コールバックはこのロックが外れるまで map を参照できない
	p.timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		current, ok := s.timers[key]
		if !ok || current != p {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()

		fire()
	})
	s.timers[key] = p
	return nil
}

// Cancel は未発火のタイマーを取り消す。取り消せた場合 true を返す。
// false の場合、タイマーは既に発火済みか存在しない
func (s *ExpirationScheduler) Cancel(key hold.Key) bool {
	s.mu.Lock()
	p, ok := s.timers[key]
	if ok {
		delete(s.timers, key)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	p.timer.Stop()
	return true
}

// Pending は未発火のタイマー数を返す
func (s *ExpirationScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop は全タイマーを取り消し、以降の登録を拒否する
func (s *ExpirationScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for key, p := range s.timers {
		p.timer.Stop()
		delete(s.timers, key)
	}
}
