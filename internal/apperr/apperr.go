// Package apperr defines the domain error kinds shared by services and
// controllers. Services wrap these sentinels with context via fmt.Errorf and
// %w; controllers translate them to HTTP statuses with HTTPStatus.
package apperr

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrNotFound              = errors.New("not found")
	ErrForbidden             = errors.New("forbidden")
	ErrInsufficientQuestions = errors.New("not enough questions available for this selection")
	ErrAlreadySubmitted      = errors.New("attempt already submitted")
	ErrExpired               = errors.New("attempt has expired")
	ErrInvalidOption         = errors.New("invalid option selected for a question")
	ErrNoQuestions           = errors.New("attempt has no questions to grade")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrConflict              = errors.New("already exists")
)

// HTTPStatus maps a service error to the status code the transport should
// answer with. Anything unrecognized is treated as a storage or internal
// failure.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrInvalidArgument),
		errors.Is(err, ErrInsufficientQuestions),
		errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrExpired),
		errors.Is(err, ErrInvalidOption),
		errors.Is(err, ErrNoQuestions):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
