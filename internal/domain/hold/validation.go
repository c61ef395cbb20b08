package hold

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateEmail は顧客メールアドレスの形式を検証する
func ValidateEmail(email string) error {
	if err := validate.Var(email, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidEmail, email)
	}
	return nil
}

// ValidateSeatCount は仮押さえする座席数を検証する
func ValidateSeatCount(n int) error {
	if n < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidSeatCount, n)
	}
	return nil
}
