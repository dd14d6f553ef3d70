package bookingRepo

import (
	"context"

	"apnakam/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// UpdateStatus moves a booking from one status to another. The write only
	// applies if the stored status still equals from; otherwise it returns
	// repository.ErrWriteConflict (or repository.ErrNotFound if the booking is
	// gone).
	UpdateStatus(ctx context.Context, id string, from, to models.BookingStatus, cancelledBy models.Party) error
	// ListForUser returns bookings where the user is worker or customer,
	// newest booking date first.
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
}
