package logger

import "go.uber.org/zap"

// 座席在庫のログで共通に使うフィールド

func Event(name string) zap.Field { return zap.String("event", name) }

func HoldID(id int) zap.Field { return zap.Int("hold_id", id) }

func Email(email string) zap.Field { return zap.String("email", email) }

func Seats(n int) zap.Field { return zap.Int("seats", n) }

func Available(n int) zap.Field { return zap.Int("available", n) }

func ConfirmationCode(code string) zap.Field { return zap.String("confirmation_code", code) }

// Trigger は仮押さえ終了のきっかけ（explicit / expired）
func Trigger(trigger string) zap.Field { return zap.String("trigger", trigger) }
