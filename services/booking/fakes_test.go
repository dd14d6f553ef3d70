package booking

import (
	"context"
	"fmt"
	"sync"

	"apnakam/database/repository"
	userRepo "apnakam/database/repository/user"
	"apnakam/models"
)

// memBookingRepo is an in-memory BookingRepository with compare-and-set
// status updates.
type memBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	// beforeUpdate, when set, runs inside UpdateStatus before the status check.
	beforeUpdate func(id string)
	// afterList, when set, runs after ListForUser has read its rows.
	afterList func(userID string)
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{bookings: map[string]models.Booking{}}
}

func (r *memBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.bookings[b.ID]; exists {
		return fmt.Errorf("duplicate booking %s", b.ID)
	}
	r.bookings[b.ID] = *b
	return nil
}

func (r *memBookingRepo) GetByID(_ context.Context, id string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("booking %s: %w", id, repository.ErrNotFound)
	}
	return &b, nil
}

func (r *memBookingRepo) UpdateStatus(_ context.Context, id string, from, to models.BookingStatus, cancelledBy models.Party) error {
	if r.beforeUpdate != nil {
		r.beforeUpdate(id)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[id]
	if !ok {
		return repository.ErrNotFound
	}
	if b.Status != from {
		return repository.ErrWriteConflict
	}
	b.Status = to
	if cancelledBy != "" {
		b.CancelledBy = cancelledBy
	}
	r.bookings[id] = b
	return nil
}

func (r *memBookingRepo) ListForUser(_ context.Context, userID string) ([]models.Booking, error) {
	r.mu.Lock()
	var out []models.Booking
	for _, b := range r.bookings {
		if b.WorkerID == userID || b.CustomerID == userID {
			out = append(out, b)
		}
	}
	hook := r.afterList
	r.mu.Unlock()

	if hook != nil {
		hook(userID)
	}
	return out, nil
}

func (r *memBookingRepo) setStatus(id string, s models.BookingStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bookings[id]
	b.Status = s
	r.bookings[id] = b
}

type memUserRepo struct {
	userRepo.UserRepository
	users map[string]*models.User
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user %s: %w", id, repository.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

type pushed struct {
	userID string
	title  string
	data   map[string]string
}

// chanNotifier records pushes on a channel so tests can wait for the
// asynchronous send.
type chanNotifier struct {
	sent chan pushed
}

func newChanNotifier() *chanNotifier {
	return &chanNotifier{sent: make(chan pushed, 16)}
}

func (n *chanNotifier) SendUserPushNotification(_ context.Context, userID, title, _ string, data map[string]string) error {
	n.sent <- pushed{userID: userID, title: title, data: data}
	return nil
}

type countingCache struct {
	noopCache
	mu          sync.Mutex
	invalidated []string
}

func (c *countingCache) Invalidate(_ context.Context, userIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, userIDs...)
}

// memListCache mirrors RedisListCache: Invalidate bumps a per-user version and
// Set only stores when the caller's version is still current.
type memListCache struct {
	mu       sync.Mutex
	lists    map[string][]models.Booking
	versions map[string]int64
}

func newMemListCache() *memListCache {
	return &memListCache{lists: map[string][]models.Booking{}, versions: map[string]int64{}}
}

func (c *memListCache) Get(_ context.Context, userID string) ([]models.Booking, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	l, ok := c.lists[userID]
	return l, ok
}

func (c *memListCache) Version(_ context.Context, userID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.versions[userID], nil
}

func (c *memListCache) Set(_ context.Context, userID string, version int64, bookings []models.Booking) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.versions[userID] != version {
		return
	}
	c.lists[userID] = bookings
}

func (c *memListCache) Invalidate(_ context.Context, userIDs ...string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, id := range userIDs {
		c.versions[id]++
		delete(c.lists, id)
	}
}

type recordingReminders struct {
	mu  sync.Mutex
	ids []string
}

func (r *recordingReminders) ScheduleBookingReminder(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, b.ID)
	return nil
}
