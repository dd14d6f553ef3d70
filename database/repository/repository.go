package repository

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a lookup by id matches no document.
	ErrNotFound = errors.New("document not found")
	// ErrWriteConflict is returned when a conditional write lost a race with a
	// concurrent writer, or the store aborted a transaction as transient. The
	// whole read-compute-write sequence may be retried.
	ErrWriteConflict = errors.New("write conflict")
)

// Collection names.
const (
	UsersCollection    = "users"
	BookingsCollection = "bookings"
	ReviewsCollection  = "reviews"
	PaymentsCollection = "payments"
	ContactsCollection = "contacts"
)

// WithTimeout derives a per-call context.
func WithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, timeout)
}
