package errors

import "errors"

var (
	ErrValidation         = errors.New("missing required fields")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingToken       = errors.New("missing authorization token")
	ErrInvalidToken       = errors.New("invalid token")
	ErrStore              = errors.New("store unavailable")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrUserNotFound)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrDuplicateEmail)
}
