package service

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInsufficientBalance = errors.New("insufficient contract item balance")
	ErrOrdersLocked        = errors.New("order deletion is locked")
	ErrInvalidTransition   = errors.New("invalid case status transition")
)
