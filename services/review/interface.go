package review

import (
	"context"

	"apnakam/models"
)

// ReviewService accepts reviews for completed bookings and keeps each worker's
// rating aggregate consistent with the reviews stored for them.
type ReviewService interface {
	SubmitReview(ctx context.Context, input models.SubmitReviewInput) (*models.Review, error)
	ListReviewsForWorker(ctx context.Context, workerID string) ([]models.Review, error)
	SummarizeReviews(ctx context.Context, workerID string) (*models.ReviewSummary, error)
}

// Summarizer condenses review comments into a short overview.
type Summarizer interface {
	SummarizeReviews(ctx context.Context, comments []string) (string, error)
}

// ListInvalidator drops cached booking lists.
type ListInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...string)
}
