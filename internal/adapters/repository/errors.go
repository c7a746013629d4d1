package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound           = errors.New("user not found")
	ErrInvalidProfile     = errors.New("invalid profile")
	ErrInvalidInteraction = errors.New("invalid interaction")
)
