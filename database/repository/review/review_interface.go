package reviewRepo

import (
	"context"

	"apnakam/models"
)

// ReviewTxn is the set of reads and writes available inside one review
// transaction. A ReviewTxn is bound to the transaction that created it and
// must not be used after the callback returns.
type ReviewTxn interface {
	// GetWorkerAggregate reads the worker's rating state inside the transaction.
	GetWorkerAggregate(workerID string) (*models.WorkerAggregate, error)
	// GetBooking reads the booking inside the transaction.
	GetBooking(bookingID string) (*models.Booking, error)
	// InsertReview stages the new review document.
	InsertReview(review *models.Review) error
	// UpdateWorkerAggregate writes next only if the stored reviewCount still
	// equals expectedCount; otherwise it returns repository.ErrWriteConflict.
	UpdateWorkerAggregate(workerID string, expectedCount int, next models.WorkerAggregate) error
	// MarkBookingReviewed flips hasBeenReviewed to true only if it is still
	// false; otherwise it returns repository.ErrWriteConflict.
	MarkBookingReviewed(bookingID string) error
}

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// RunInTransaction executes fn as one atomic unit. Either every write made
	// through the ReviewTxn commits or none does. Transient conflicts surface as
	// repository.ErrWriteConflict so the caller can retry with fresh reads.
	RunInTransaction(ctx context.Context, fn func(tx ReviewTxn) error) error
	// ListByWorker returns a worker's reviews, newest first.
	ListByWorker(ctx context.Context, workerID string) ([]models.Review, error)
}
