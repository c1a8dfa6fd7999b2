package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials возвращается при неверной паре email/пароль
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrForbidden возвращается, когда аутентифицированный актор не имеет права на операцию
	ErrForbidden = errors.New("forbidden")

	// ErrTooManyAttempts возвращается при превышении лимита попыток входа
	ErrTooManyAttempts = errors.New("too many login attempts")
)

// ValidationError describes malformed or missing input. The caller can
// always recover by resubmitting corrected input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
