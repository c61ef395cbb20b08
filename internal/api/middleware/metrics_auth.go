package middleware

import (
	"crypto/subtle"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// MetricsBasicAuth は /metrics エンドポイント用の Basic 認証ミドルウェア。
// user と password の両方が設定されている場合のみ認証を要求する
func MetricsBasicAuth(user, password string) echo.MiddlewareFunc {
	if user == "" || password == "" {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	return middleware.BasicAuth(func(u, p string, c echo.Context) (bool, error) {
		userMatch := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
		passMatch := subtle.ConstantTimeCompare([]byte(p), []byte(password)) == 1
		return userMatch && passMatch, nil
	})
}
