package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"apnakam/database/repository"
	reviewRepo "apnakam/database/repository/review"
	"apnakam/models"
	"apnakam/services/apperrors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	maxCommentLength = 1000
	maxBackoff       = time.Second

	// NoWrittenFeedback is the summary for workers whose reviews carry no comments.
	NoWrittenFeedback = "This worker has not received any written feedback yet."
)

// Options tunes the review transaction.
type Options struct {
	Timeout     time.Duration
	MaxAttempts int
	BaseBackoff time.Duration
}

// DefaultOptions mirrors the platform defaults.
func DefaultOptions() Options {
	return Options{Timeout: 10 * time.Second, MaxAttempts: 5, BaseBackoff: 50 * time.Millisecond}
}

// DefaultReviewService implements ReviewService.
type DefaultReviewService struct {
	reviews    reviewRepo.ReviewRepository
	cache      ListInvalidator
	summarizer Summarizer
	opts       Options
	logger     *zap.Logger
	now        func() time.Time
}

// NewDefaultReviewService builds the service. cache and summarizer may be nil.
func NewDefaultReviewService(
	reviews reviewRepo.ReviewRepository,
	cache ListInvalidator,
	summarizer Summarizer,
	opts Options,
	logger *zap.Logger,
) *DefaultReviewService {
	def := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = def.MaxAttempts
	}
	if opts.BaseBackoff <= 0 {
		opts.BaseBackoff = def.BaseBackoff
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultReviewService{
		reviews:    reviews,
		cache:      cache,
		summarizer: summarizer,
		opts:       opts,
		logger:     logger,
		now:        time.Now,
	}
}

func validateReviewInput(input *models.SubmitReviewInput) error {
	input.BookingID = strings.TrimSpace(input.BookingID)
	input.WorkerID = strings.TrimSpace(input.WorkerID)
	input.CustomerID = strings.TrimSpace(input.CustomerID)
	input.Comment = strings.TrimSpace(input.Comment)

	switch {
	case input.BookingID == "":
		return apperrors.NewValidationError("bookingId", "booking is required")
	case input.WorkerID == "":
		return apperrors.NewValidationError("workerId", "worker is required")
	case input.CustomerID == "":
		return apperrors.NewValidationError("customerId", "customer is required")
	case input.Rating < models.MinRating || input.Rating > models.MaxRating:
		return apperrors.NewValidationError("rating", fmt.Sprintf("rating must be between %d and %d", models.MinRating, models.MaxRating))
	case utf8.RuneCountInString(input.Comment) > maxCommentLength:
		return apperrors.NewValidationError("comment", fmt.Sprintf("comment must be at most %d characters", maxCommentLength))
	}
	return nil
}

// SubmitReview records the review and folds its rating into the worker's
// aggregate in one transaction. Write conflicts rerun the whole transaction
// with fresh reads, up to MaxAttempts times within Timeout.
func (s *DefaultReviewService) SubmitReview(ctx context.Context, input models.SubmitReviewInput) (*models.Review, error) {
	if err := validateReviewInput(&input); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	var (
		created *models.Review
		lastErr error
	)
	for attempt := 1; attempt <= s.opts.MaxAttempts; attempt++ {
		err := s.reviews.RunInTransaction(ctx, func(tx reviewRepo.ReviewTxn) error {
			r, err := s.applyReview(tx, input)
			if err != nil {
				return err
			}
			created = r
			return nil
		})
		if err == nil {
			s.logger.Info("Review submitted",
				zap.String("bookingID", input.BookingID),
				zap.String("workerID", input.WorkerID),
				zap.Int("rating", input.Rating),
				zap.Int("attempt", attempt))
			if s.cache != nil {
				s.cache.Invalidate(ctx, input.WorkerID, input.CustomerID)
			}
			return created, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, &apperrors.TransactionError{Attempts: attempt, Err: fmt.Errorf("%w: %v", ctxErr, err)}
		}
		if isDomainError(err) {
			return nil, err
		}
		if !reviewRepo.IsRetryable(err) {
			s.logger.Error("Review transaction failed",
				zap.String("bookingID", input.BookingID),
				zap.Int("attempt", attempt),
				zap.Error(err))
			return nil, &apperrors.TransactionError{Attempts: attempt, Err: err}
		}

		lastErr = err
		s.logger.Debug("Review transaction conflict, retrying",
			zap.String("bookingID", input.BookingID),
			zap.Int("attempt", attempt),
			zap.Error(err))

		if attempt == s.opts.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return nil, &apperrors.TransactionError{Attempts: attempt, Err: ctx.Err()}
		case <-time.After(s.backoff(attempt)):
		}
	}

	s.logger.Warn("Review transaction retries exhausted",
		zap.String("bookingID", input.BookingID),
		zap.Int("attempts", s.opts.MaxAttempts),
		zap.Error(lastErr))
	return nil, &apperrors.TransactionError{Attempts: s.opts.MaxAttempts, Err: lastErr}
}

// isDomainError reports errors raised by the transaction body's own checks,
// which go back to the caller unchanged.
func isDomainError(err error) bool {
	return apperrors.IsValidation(err) || apperrors.IsNotFound(err) ||
		apperrors.IsAuthorization(err) || apperrors.IsInvalidTransition(err)
}

// backoff doubles per attempt, starting at BaseBackoff.
func (s *DefaultReviewService) backoff(attempt int) time.Duration {
	d := s.opts.BaseBackoff << (attempt - 1)
	if d <= 0 || d > maxBackoff {
		return maxBackoff
	}
	return d
}

// applyReview is one attempt of the transaction body.
func (s *DefaultReviewService) applyReview(tx reviewRepo.ReviewTxn, input models.SubmitReviewInput) (*models.Review, error) {
	worker, err := tx.GetWorkerAggregate(input.WorkerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("worker", input.WorkerID)
		}
		return nil, err
	}
	if !worker.IsWorker {
		return nil, apperrors.NewValidationError("workerId", "user is not a worker")
	}

	booking, err := tx.GetBooking(input.BookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("booking", input.BookingID)
		}
		return nil, err
	}
	if booking.WorkerID != input.WorkerID || booking.CustomerID != input.CustomerID {
		return nil, &apperrors.AuthorizationError{
			UserID:  input.CustomerID,
			Action:  "review booking " + input.BookingID,
			Message: "booking does not belong to this customer and worker",
		}
	}
	if booking.Status != models.BookingStatusCompleted {
		return nil, apperrors.NewValidationError("bookingId", "only completed bookings can be reviewed")
	}
	if booking.HasBeenReviewed {
		return nil, &apperrors.ValidationError{
			Code:    "already_reviewed",
			Field:   "bookingId",
			Message: "this booking has already been reviewed",
		}
	}

	next := worker.Fold(input.Rating)
	review := &models.Review{
		ID:             uuid.New().String(),
		BookingID:      input.BookingID,
		WorkerID:       input.WorkerID,
		CustomerID:     input.CustomerID,
		CustomerName:   input.CustomerName,
		CustomerAvatar: input.CustomerAvatar,
		Rating:         input.Rating,
		Comment:        input.Comment,
		CreatedAt:      s.now().UTC(),
	}

	if err := tx.InsertReview(review); err != nil {
		return nil, err
	}
	if err := tx.UpdateWorkerAggregate(input.WorkerID, worker.ReviewCount, next); err != nil {
		return nil, err
	}
	if err := tx.MarkBookingReviewed(input.BookingID); err != nil {
		return nil, err
	}
	return review, nil
}

func (s *DefaultReviewService) ListReviewsForWorker(ctx context.Context, workerID string) ([]models.Review, error) {
	workerID = strings.TrimSpace(workerID)
	if workerID == "" {
		return nil, apperrors.NewValidationError("workerId", "worker is required")
	}
	reviews, err := s.reviews.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews for %s: %w", workerID, err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// SummarizeReviews asks the summarizer for a short overview of the worker's
// written feedback.
func (s *DefaultReviewService) SummarizeReviews(ctx context.Context, workerID string) (*models.ReviewSummary, error) {
	reviews, err := s.ListReviewsForWorker(ctx, workerID)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return &models.ReviewSummary{Summary: ""}, nil
	}

	var comments []string
	for _, r := range reviews {
		if c := strings.TrimSpace(r.Comment); c != "" {
			comments = append(comments, c)
		}
	}
	if len(comments) == 0 {
		return &models.ReviewSummary{Summary: NoWrittenFeedback}, nil
	}
	if s.summarizer == nil {
		return nil, errors.New("review summarization is not configured")
	}

	summary, err := s.summarizer.SummarizeReviews(ctx, comments)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize reviews for %s: %w", workerID, err)
	}
	return &models.ReviewSummary{Summary: summary}, nil
}
