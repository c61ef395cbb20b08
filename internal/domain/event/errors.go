package event

import "errors"

// Event ドメインのエラー定義
var (
	ErrEventNameRequired = errors.New("イベント名は必須です")
	ErrEventInPast       = errors.New("過去の日時にイベントは作成できません")
	ErrInvalidRows       = errors.New("座席の行数は1以上である必要があります")
	ErrInvalidColumns    = errors.New("座席の列数は1以上である必要があります")
)
