package hold

import "errors"

// Hold ドメインのエラー定義
var (
	ErrInvalidSeatCount = errors.New("仮押さえする座席数は1以上である必要があります")
	ErrInvalidEmail     = errors.New("メールアドレスの形式が不正です")
	ErrHoldNotFound     = errors.New("仮押さえが見つかりません。期限切れの可能性があります")
	ErrHoldNotActive    = errors.New("仮押さえは有効ではありません")
	ErrHoldIDsExhausted = errors.New("割り当て可能な仮押さえIDがありません")
	ErrHoldIDCollision  = errors.New("有効な仮押さえとIDが重複しています")
)
