package service

import (
	"errors"
	"fmt"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden: you do not own this resource")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ValidationError reports a bad input field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// RoleMismatchError is returned when the credentials are right but the account
// was registered with a different role than the one claimed at login.
type RoleMismatchError struct {
	Actual  string
	Claimed string
}

func (e *RoleMismatchError) Error() string {
	return fmt.Sprintf("account registered as %s, trying to login as %s", e.Actual, e.Claimed)
}

func (e *RoleMismatchError) Unwrap() error {
	return ErrRoleMismatch
}

// InsufficientStockError names the order line that could not be served
type InsufficientStockError struct {
	ProductID int64
	Name      string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (requested %d)", e.Name, e.Requested)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
