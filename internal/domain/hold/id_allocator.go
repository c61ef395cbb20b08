package hold

// DefaultIDCeiling はIDカウンタが0に戻る上限
const DefaultIDCeiling = 10000

// IDAllocator は 0 から ceiling-1 までを循環する仮押さえIDカウンタ。
// 一周したIDは再利用されるため、払い出し時に有効な仮押さえとの衝突を確認する。
// 並行安全ではない。呼び出し側のロック内で使うこと
type IDAllocator struct {
	next    int
	ceiling int
}

// NewIDAllocator は新しいIDカウンタを作成する。ceiling が1未満ならデフォルト値を使う
func NewIDAllocator(ceiling int) *IDAllocator {
	if ceiling < 1 {
		ceiling = DefaultIDCeiling
	}
	return &IDAllocator{ceiling: ceiling}
}

// Next は inUse が false を返す次のIDを払い出す。
// 全IDが使用中なら ErrHoldIDsExhausted を返す
func (a *IDAllocator) Next(inUse func(id int) bool) (int, error) {
	for i := 0; i < a.ceiling; i++ {
		id := a.next
		a.next++
		if a.next >= a.ceiling {
			a.next = 0
		}
		if !inUse(id) {
			return id, nil
		}
	}
	return 0, ErrHoldIDsExhausted
}

// Ceiling はIDの上限を返す
func (a *IDAllocator) Ceiling() int {
	return a.ceiling
}
