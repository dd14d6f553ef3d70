package booking

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"apnakam/database/repository"
	bookingRepo "apnakam/database/repository/booking"
	userRepo "apnakam/database/repository/user"
	"apnakam/models"
	"apnakam/services/apperrors"
	"apnakam/services/notification"
	"apnakam/services/tasks"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Bookings  bookingRepo.BookingRepository
	Users     userRepo.UserRepository
	Cache     ListCache
	Notifier  notification.NotificationService
	Reminders tasks.ReminderScheduler
	Logger    *zap.Logger
	// Location decides calendar dates (today, bookingDate).
	Location *time.Location
	Now      func() time.Time
}

// NewDefaultBookingService wires the required repositories. Cache, Notifier and
// Reminders are optional and may be nil.
func NewDefaultBookingService(
	bookings bookingRepo.BookingRepository,
	users userRepo.UserRepository,
	cache ListCache,
	notifier notification.NotificationService,
	reminders tasks.ReminderScheduler,
	loc *time.Location,
	logger *zap.Logger,
) *DefaultBookingService {
	if cache == nil {
		cache = noopCache{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &DefaultBookingService{
		Bookings:  bookings,
		Users:     users,
		Cache:     cache,
		Notifier:  notifier,
		Reminders: reminders,
		Logger:    logger,
		Location:  loc,
		Now:       time.Now,
	}
}

func (s *DefaultBookingService) CreateBooking(ctx context.Context, input models.CreateBookingInput) (*models.Booking, error) {
	workerID := strings.TrimSpace(input.WorkerID)
	customerID := strings.TrimSpace(input.CustomerID)
	if workerID == "" {
		return nil, apperrors.NewValidationError("workerId", "worker is required")
	}
	if customerID == "" {
		return nil, apperrors.NewValidationError("customerId", "customer is required")
	}
	if input.BookingDate.IsZero() {
		return nil, apperrors.NewValidationError("bookingDate", "booking date is required")
	}
	if workerID == customerID {
		return nil, apperrors.NewValidationError("workerId", "you cannot book yourself")
	}

	date := models.StartOfDay(input.BookingDate, s.Location)
	if date.Before(models.StartOfDay(s.Now(), s.Location)) {
		return nil, apperrors.NewValidationError("bookingDate", "booking date is in the past")
	}

	worker, err := s.lookupUser(ctx, "worker", workerID)
	if err != nil {
		return nil, err
	}
	if !worker.IsWorker {
		return nil, apperrors.NewValidationError("workerId", "user is not registered as a worker")
	}
	customer, err := s.lookupUser(ctx, "customer", customerID)
	if err != nil {
		return nil, err
	}

	workerName := firstNonEmpty(input.WorkerName, worker.Name)
	customerName := firstNonEmpty(input.CustomerName, customer.Name)
	if workerName == "" {
		return nil, apperrors.NewValidationError("workerName", "worker name is required")
	}
	if customerName == "" {
		return nil, apperrors.NewValidationError("customerName", "customer name is required")
	}

	now := s.Now().UTC()
	booking := &models.Booking{
		ID:           uuid.New().String(),
		WorkerID:     workerID,
		CustomerID:   customerID,
		WorkerName:   workerName,
		CustomerName: customerName,
		BookingDate:  date,
		Status:       models.BookingStatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.Logger.Info("Booking created",
		zap.String("bookingID", booking.ID),
		zap.String("workerID", workerID),
		zap.String("customerID", customerID))

	s.Cache.Invalidate(ctx, workerID, customerID)
	s.notifyAsync(ctx, booking, models.PartyCustomer)
	return booking, nil
}

func (s *DefaultBookingService) UpdateBookingStatus(ctx context.Context, callerID, bookingID string, to models.BookingStatus) (*models.Booking, error) {
	if strings.TrimSpace(bookingID) == "" {
		return nil, apperrors.NewValidationError("bookingId", "booking is required")
	}
	if !to.Valid() {
		return nil, apperrors.NewValidationError("status", fmt.Sprintf("unknown status %q", to))
	}

	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	party, ok := booking.PartyOf(callerID)
	if !ok {
		return nil, &apperrors.AuthorizationError{
			UserID:  callerID,
			Action:  "update booking " + bookingID,
			Message: "not a participant",
		}
	}

	from := booking.Status
	if !CanTransition(from, to) {
		return nil, &apperrors.InvalidTransitionError{From: string(from), To: string(to)}
	}
	if !CanAct(party, to) {
		return nil, &apperrors.AuthorizationError{
			UserID:  callerID,
			Action:  fmt.Sprintf("mark booking %s", to),
			Message: fmt.Sprintf("only the %s can do this", otherParty(party)),
		}
	}
	if to == models.BookingStatusCompleted {
		today := models.StartOfDay(s.Now(), s.Location)
		if today.Before(models.StartOfDay(booking.BookingDate, s.Location)) {
			return nil, &apperrors.InvalidTransitionError{
				From:   string(from),
				To:     string(to),
				Reason: "booking date has not been reached",
			}
		}
	}

	var cancelledBy models.Party
	if to == models.BookingStatusCancelled {
		cancelledBy = party
	}

	if err := s.Bookings.UpdateStatus(ctx, booking.ID, from, to, cancelledBy); err != nil {
		switch {
		case errors.Is(err, repository.ErrWriteConflict):
			return nil, &apperrors.InvalidTransitionError{
				From:   string(from),
				To:     string(to),
				Reason: "booking status changed concurrently",
			}
		case errors.Is(err, repository.ErrNotFound):
			return nil, apperrors.NewNotFoundError("booking", bookingID)
		}
		return nil, fmt.Errorf("failed to update booking %s: %w", bookingID, err)
	}

	booking.Status = to
	booking.CancelledBy = cancelledBy
	booking.UpdatedAt = s.Now().UTC()

	s.Logger.Info("Booking status updated",
		zap.String("bookingID", booking.ID),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
		zap.String("by", string(party)))

	s.Cache.Invalidate(ctx, booking.WorkerID, booking.CustomerID)
	s.notifyAsync(ctx, booking, party)
	if to == models.BookingStatusConfirmed {
		s.scheduleReminder(ctx, booking)
	}
	return booking, nil
}

func (s *DefaultBookingService) GetBooking(ctx context.Context, callerID, bookingID string) (*models.Booking, error) {
	booking, err := s.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if _, ok := booking.PartyOf(callerID); !ok {
		return nil, &apperrors.AuthorizationError{
			UserID:  callerID,
			Action:  "view booking " + bookingID,
			Message: "not a participant",
		}
	}
	return booking, nil
}

func (s *DefaultBookingService) ListBookingsForUser(ctx context.Context, userID string) (*models.BookingList, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, apperrors.NewValidationError("userId", "user is required")
	}

	bookings, ok := s.Cache.Get(ctx, userID)
	if !ok {
		// The version is read before the fetch so an invalidation in between
		// makes the fill below a no-op.
		version, verErr := s.Cache.Version(ctx, userID)
		fetched, err := s.Bookings.ListForUser(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("failed to list bookings for %s: %w", userID, err)
		}
		bookings = dedupeAndSort(fetched)
		if verErr == nil {
			s.Cache.Set(ctx, userID, version, bookings)
		}
	}

	return splitBookings(bookings, s.Now(), s.Location), nil
}

func (s *DefaultBookingService) getBooking(ctx context.Context, bookingID string) (*models.Booking, error) {
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("booking", bookingID)
		}
		return nil, fmt.Errorf("failed to fetch booking %s: %w", bookingID, err)
	}
	if !booking.Status.Valid() {
		return nil, fmt.Errorf("booking %s has unknown status %q", bookingID, booking.Status)
	}
	return booking, nil
}

func (s *DefaultBookingService) lookupUser(ctx context.Context, role, id string) (*models.User, error) {
	u, err := s.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(role, id)
		}
		return nil, fmt.Errorf("failed to fetch %s %s: %w", role, id, err)
	}
	return u, nil
}

// dedupeAndSort drops repeated ids and orders by bookingDate then createdAt,
// newest first.
func dedupeAndSort(bookings []models.Booking) []models.Booking {
	seen := make(map[string]struct{}, len(bookings))
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].BookingDate.Equal(out[j].BookingDate) {
			return out[i].BookingDate.After(out[j].BookingDate)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

func splitBookings(bookings []models.Booking, now time.Time, loc *time.Location) *models.BookingList {
	list := &models.BookingList{Upcoming: []models.Booking{}, Past: []models.Booking{}}
	for _, b := range bookings {
		if b.IsUpcoming(now, loc) {
			list.Upcoming = append(list.Upcoming, b)
		} else {
			list.Past = append(list.Past, b)
		}
	}
	return list
}

func otherParty(p models.Party) models.Party {
	if p == models.PartyWorker {
		return models.PartyCustomer
	}
	return models.PartyWorker
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
