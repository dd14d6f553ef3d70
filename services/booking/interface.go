package booking

import (
	"context"

	"apnakam/models"
)

// BookingService manages the booking lifecycle. Every operation that acts on
// an existing booking authorizes the caller against the booking's participants.
type BookingService interface {
	CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error)
	UpdateBookingStatus(ctx context.Context, callerID, bookingID string, to models.BookingStatus) (*models.Booking, error)
	GetBooking(ctx context.Context, callerID, bookingID string) (*models.Booking, error)
	ListBookingsForUser(ctx context.Context, userID string) (*models.BookingList, error)
}
