package reservation

// Ledger は確定済み予約の追記専用台帳。
// 並行安全ではない。呼び出し側のロック内で使うこと
type Ledger struct {
	entries []*Reservation
	byCode  map[string]*Reservation
}

// NewLedger は空の台帳を作成する
func NewLedger() *Ledger {
	return &Ledger{byCode: make(map[string]*Reservation)}
}

// Append は予約を台帳に追記する
func (l *Ledger) Append(r *Reservation) error {
	if r.ConfirmationCode == "" {
		return ErrConfirmationCodeRequired
	}
	if _, ok := l.byCode[r.ConfirmationCode]; ok {
		return ErrDuplicateConfirmation
	}
	l.entries = append(l.entries, r)
	l.byCode[r.ConfirmationCode] = r
	return nil
}

// Has は確認コードが使用済みかを返す
func (l *Ledger) Has(code string) bool {
	_, ok := l.byCode[code]
	return ok
}

// Get は確認コードから予約を取得する
func (l *Ledger) Get(code string) (Reservation, error) {
	r, ok := l.byCode[code]
	if !ok {
		return Reservation{}, ErrReservationNotFound
	}
	return *r, nil
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// All は追記順の予約のコピーを返す
func (l *Ledger) All() []Reservation {
	out := make([]Reservation, len(l.entries))
	for i, r := range l.entries {
		out[i] = *r
	}
	return out
}

// NewUniqueCode は台帳に存在しない確認コードを生成する
func (l *Ledger) NewUniqueCode() string {
	for {
		code := NewConfirmationCode()
		if !l.Has(code) {
			return code
		}
	}
}
