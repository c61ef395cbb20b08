package application

import "errors"

// 呼び出し側に返すエラー種別。ドメインのエラーと結合して返すため、
// errors.Is で種別とドメインのエラーのどちらでも判定できる
var (
	ErrInvalidArgument       = errors.New("引数が不正です")
	ErrInsufficientInventory = errors.New("空席が不足しています")
	ErrNotFound              = errors.New("対象が見つかりません")
	ErrAlreadyBound          = errors.New("サービスは既にイベントに紐付けられています")
	ErrNotBound              = errors.New("サービスがイベントに紐付けられていません")
	ErrEventMismatch         = errors.New("紐付けられたイベントと一致しません")
	ErrInvariantViolation    = errors.New("内部の不変条件に違反しました")
)

var kinds = []error{
	ErrInvalidArgument,
	ErrInsufficientInventory,
	ErrNotFound,
	ErrAlreadyBound,
	ErrNotBound,
	ErrEventMismatch,
	ErrInvariantViolation,
}

// Kind は err が属するエラー種別を返す。どれにも属さなければ nil
func Kind(err error) error {
	for _, k := range kinds {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
