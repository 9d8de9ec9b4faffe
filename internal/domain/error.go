package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrEmptyMessage    = errors.New("message text is empty")
	ErrRateLimited     = errors.New("session message rate exceeded")
)
