package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation   = errors.New("validation")   // 400
	ErrNotFound     = errors.New("not found")    // 404
	ErrUnauthorized = errors.New("unauthorized") // 401
	ErrConflict     = errors.New("conflict")     // 400
)

// ErrInvalidCredentials covers both an unknown email and a wrong password.
var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
