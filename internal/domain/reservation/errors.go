package reservation

import "errors"

// Reservation ドメインのエラー定義
var (
	ErrReservationNotFound      = errors.New("予約が見つかりません")
	ErrConfirmationCodeRequired = errors.New("確認コードは必須です")
	ErrDuplicateConfirmation    = errors.New("確認コードが重複しています")
	ErrHoldNotConfirmed         = errors.New("確定されていない仮押さえからは予約を作成できません")
)
