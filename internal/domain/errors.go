package domain

import "errors"

var (
	ErrUnauthorized = errors.New("authentication required")
	ErrNotFound     = errors.New("message not found")
	ErrValidation   = errors.New("validation failed")
	ErrDelivery     = errors.New("reply delivery failed")
	ErrStorage      = errors.New("storage failure")
)
