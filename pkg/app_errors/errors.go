package apperrors

import "errors"

var (
	ErrSeatNotFound         = errors.New("seat not found")
	ErrVenueNotFound        = errors.New("venue not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrKeyNotFound          = errors.New("key not found")
	ErrInvalidGestureTarget = errors.New("invalid gesture target")
	ErrUnsupportedCatalog   = errors.New("unsupported catalog format")
	ErrInternalServerError  = errors.New("internal server error")
)
