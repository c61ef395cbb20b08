package seat

import "errors"

// Seat ドメインのエラー定義
var (
	ErrSeatNotFound     = errors.New("座席が見つかりません")
	ErrSeatNotAvailable = errors.New("座席は確保できません")
	ErrSeatNotHeld      = errors.New("座席は仮押さえされていません")
	ErrInvalidRows      = errors.New("行数は1以上である必要があります")
	ErrInvalidColumns   = errors.New("列数は1以上である必要があります")
)
