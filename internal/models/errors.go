package models

import "errors"

var (
	// ErrValidation marks a submission rejected by presence/type checks.
	ErrValidation = errors.New("validation failed")
	// ErrPersistence marks a submission that could not be stored.
	ErrPersistence = errors.New("persistence failed")
)
