package service

import "errors"

var (
	ErrUnauthenticated = errors.New("unauthenticated") // 401
	ErrForbidden       = errors.New("forbidden")       // 403
	ErrNotFound        = errors.New("not found")       // 404
	ErrEmptyCart       = errors.New("empty cart")      // 400
	ErrValidation      = errors.New("validation")      // 400
)
