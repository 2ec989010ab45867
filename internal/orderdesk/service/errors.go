package service

import "errors"

var (
	ErrOrderNotFound = errors.New("order not found with this id")
	ErrOrderExists   = errors.New("order already exists")
)
