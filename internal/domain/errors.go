package domain

import "errors"

// Sentinel errors shared across repositories and services.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned for domain-level validation failures.
	ErrInvalidInput = errors.New("invalid input")
)
