package apperr

import "errors"

var (
	ErrConfig         = errors.New("invalid configuration")
	ErrMalformedInput = errors.New("malformed input")
)
