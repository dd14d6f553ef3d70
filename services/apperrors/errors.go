// Package apperrors holds the error taxonomy shared by the booking, review and
// search services. Handlers map each type to an HTTP status.
package apperrors

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed or missing input the caller can correct.
type ValidationError struct {
	Code    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Field)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(field, msg string) error {
	return &ValidationError{Code: "validation", Field: field, Message: msg}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// InvalidTransitionError reports a booking status change the state machine
// does not allow.
type InvalidTransitionError struct {
	From   string
	To     string
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	msg := fmt.Sprintf("cannot move booking from %q to %q", e.From, e.To)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// AuthorizationError reports a caller acting on a booking they are not
// entitled to change.
type AuthorizationError struct {
	UserID  string
	Action  string
	Message string
}

func (e *AuthorizationError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("user %s may not %s: %s", e.UserID, e.Action, e.Message)
	}
	return fmt.Sprintf("user %s may not %s", e.UserID, e.Action)
}

// TransactionError reports a store transaction that could not be committed,
// either after exhausting retries or on deadline expiry. Nothing was applied,
// so the caller may retry.
type TransactionError struct {
	Attempts int
	Err      error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction failed after %d attempt(s): %v", e.Attempts, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}

func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

func IsInvalidTransition(err error) bool {
	var target *InvalidTransitionError
	return errors.As(err, &target)
}

func IsAuthorization(err error) bool {
	var target *AuthorizationError
	return errors.As(err, &target)
}

func IsTransaction(err error) bool {
	var target *TransactionError
	return errors.As(err, &target)
}
