package data

import "errors"

var (
	ErrOrderNotFound             = errors.New("order not found")
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
)
