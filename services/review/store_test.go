package review

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"apnakam/database/repository"
	reviewRepo "apnakam/database/repository/review"
	"apnakam/models"
)

// memStore is an in-memory ReviewRepository with optimistic transactions:
// reads see committed state, writes are staged and validated at commit.
type memStore struct {
	mu       sync.Mutex
	workers  map[string]models.WorkerAggregate
	bookings map[string]models.Booking
	reviews  []models.Review

	// injectConflicts fails that many upcoming commits with a write conflict.
	injectConflicts int
	// commitErrs are returned, in order, by upcoming commits before any write.
	commitErrs []error
	txnCount   int
}

func newMemStore() *memStore {
	return &memStore{
		workers:  map[string]models.WorkerAggregate{},
		bookings: map[string]models.Booking{},
	}
}

func (s *memStore) addWorker(id string, rating float64, count int) {
	s.workers[id] = models.WorkerAggregate{ID: id, IsWorker: true, Rating: rating, ReviewCount: count}
}

func (s *memStore) addCompletedBooking(id, workerID, customerID string) {
	s.bookings[id] = models.Booking{
		ID:         id,
		WorkerID:   workerID,
		CustomerID: customerID,
		Status:     models.BookingStatusCompleted,
	}
}

func (s *memStore) worker(id string) models.WorkerAggregate {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workers[id]
}

func (s *memStore) attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.txnCount
}

type stagedAggregate struct {
	expected int
	next     models.WorkerAggregate
}

type memTxn struct {
	store    *memStore
	reviews  []models.Review
	workers  map[string]stagedAggregate
	bookings []string
}

func (s *memStore) RunInTransaction(ctx context.Context, fn func(tx reviewRepo.ReviewTxn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.txnCount++
	s.mu.Unlock()

	tx := &memTxn{store: s, workers: map[string]stagedAggregate{}}
	if err := fn(tx); err != nil {
		return err
	}
	return s.commit(tx)
}

func (s *memStore) commit(tx *memTxn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.commitErrs) > 0 {
		err := s.commitErrs[0]
		s.commitErrs = s.commitErrs[1:]
		return err
	}
	if s.injectConflicts > 0 {
		s.injectConflicts--
		return fmt.Errorf("injected: %w", repository.ErrWriteConflict)
	}
	for id, w := range tx.workers {
		if s.workers[id].ReviewCount != w.expected {
			return repository.ErrWriteConflict
		}
	}
	for _, id := range tx.bookings {
		if s.bookings[id].HasBeenReviewed {
			return repository.ErrWriteConflict
		}
	}
	for _, r := range tx.reviews {
		for _, existing := range s.reviews {
			if existing.BookingID == r.BookingID {
				return repository.ErrWriteConflict
			}
		}
	}

	for id, w := range tx.workers {
		cur := s.workers[id]
		cur.Rating, cur.ReviewCount = w.next.Rating, w.next.ReviewCount
		s.workers[id] = cur
	}
	for _, id := range tx.bookings {
		b := s.bookings[id]
		b.HasBeenReviewed = true
		s.bookings[id] = b
	}
	s.reviews = append(s.reviews, tx.reviews...)
	return nil
}

func (s *memStore) ListByWorker(_ context.Context, workerID string) ([]models.Review, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Review
	for _, r := range s.reviews {
		if r.WorkerID == workerID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (t *memTxn) GetWorkerAggregate(workerID string) (*models.WorkerAggregate, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	w, ok := t.store.workers[workerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &w, nil
}

func (t *memTxn) GetBooking(bookingID string) (*models.Booking, error) {
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	b, ok := t.store.bookings[bookingID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (t *memTxn) InsertReview(review *models.Review) error {
	t.reviews = append(t.reviews, *review)
	return nil
}

func (t *memTxn) UpdateWorkerAggregate(workerID string, expectedCount int, next models.WorkerAggregate) error {
	t.workers[workerID] = stagedAggregate{expected: expectedCount, next: next}
	return nil
}

func (t *memTxn) MarkBookingReviewed(bookingID string) error {
	t.bookings = append(t.bookings, bookingID)
	return nil
}
