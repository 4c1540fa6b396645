package service

import "errors"

var (
	ErrQuizNotFound     = errors.New("quiz not found")
	ErrQuizNotAvailable = errors.New("quiz is not available")
	ErrNotFound         = errors.New("resource not found")
	ErrForbidden        = errors.New("permission denied")
	ErrUnauthorized     = errors.New("invalid credentials")
	ErrInvalidInput     = errors.New("invalid input")
	ErrConflict         = errors.New("conflict")
)
