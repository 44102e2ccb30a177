package errors

import "errors"

var (
	ErrConfig            = errors.New("invalid poll configuration")
	ErrStorage           = errors.New("vote storage failure")
	ErrNameRequired      = errors.New("voter name is required")
	ErrUnsupportedFormat = errors.New("unsupported vote set format")
	ErrInvalidPollMarkup = errors.New("invalid poll markup")
)
