package domain

import "errors"

var (
	ErrMissingInput = errors.New("missing input")
	ErrSchema       = errors.New("schema mismatch")
)
