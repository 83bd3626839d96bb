package apperror

import "errors"

var (
	ErrInvalidAction  = errors.New("invalid action")
	ErrMalformedBoard = errors.New("malformed board")
	ErrGameFinished   = errors.New("game is already finished")
)
