package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"apnakam/models"
	"apnakam/services/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ist = time.FixedZone("IST", 5*60*60+30*60)

type fixture struct {
	svc       *DefaultBookingService
	bookings  *memBookingRepo
	cache     *countingCache
	notifier  *chanNotifier
	reminders *recordingReminders
	now       time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		bookings:  newMemBookingRepo(),
		cache:     &countingCache{},
		notifier:  newChanNotifier(),
		reminders: &recordingReminders{},
		now:       time.Date(2025, 5, 20, 10, 0, 0, 0, ist),
	}
	users := &memUserRepo{users: map[string]*models.User{
		"w1": {ID: "w1", Name: "Ramesh Kumar", IsWorker: true, IsApproved: true},
		"c1": {ID: "c1", Name: "Priya Sharma"},
		"c2": {ID: "c2", Name: "Someone Else"},
	}}
	f.svc = NewDefaultBookingService(f.bookings, users, f.cache, f.notifier, f.reminders, ist, nil)
	f.svc.Now = func() time.Time { return f.now }
	return f
}

func (f *fixture) create(t *testing.T, date time.Time) *models.Booking {
	t.Helper()
	b, err := f.svc.CreateBooking(context.Background(), models.CreateBookingInput{
		WorkerID:    "w1",
		CustomerID:  "c1",
		BookingDate: date,
	})
	require.NoError(t, err)
	return b
}

func (f *fixture) waitPush(t *testing.T) pushed {
	t.Helper()
	select {
	case p := <-f.notifier.sent:
		return p
	case <-time.After(time.Second):
		t.Fatal("expected a push notification")
	}
	return pushed{}
}

func TestCanTransition(t *testing.T) {
	statuses := []models.BookingStatus{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
		models.BookingStatusCompleted,
	}
	legal := map[[2]models.BookingStatus]bool{
		{models.BookingStatusPending, models.BookingStatusConfirmed}:   true,
		{models.BookingStatusPending, models.BookingStatusCancelled}:   true,
		{models.BookingStatusConfirmed, models.BookingStatusCompleted}: true,
	}
	for _, from := range statuses {
		for _, to := range statuses {
			assert.Equal(t, legal[[2]models.BookingStatus{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestBookingLifecycleScenario(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, ist)

	b := f.create(t, date)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, "Ramesh Kumar", b.WorkerName)
	assert.Equal(t, "Priya Sharma", b.CustomerName)
	assert.False(t, b.HasBeenReviewed)
	p := f.waitPush(t)
	assert.Equal(t, "w1", p.userID)

	b, err := f.svc.UpdateBookingStatus(context.Background(), "w1", b.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusConfirmed, b.Status)
	p = f.waitPush(t)
	assert.Equal(t, "c1", p.userID)
	assert.Equal(t, "booking_confirmed", p.data["type"])
	assert.Equal(t, []string{b.ID}, f.reminders.ids)

	f.now = time.Date(2025, 6, 1, 18, 0, 0, 0, ist)
	b, err = f.svc.UpdateBookingStatus(context.Background(), "c1", b.ID, models.BookingStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, b.Status)

	stored, err := f.bookings.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, stored.Status)

	f.cache.mu.Lock()
	assert.Equal(t, []string{"w1", "c1", "w1", "c1", "w1", "c1"}, f.cache.invalidated)
	f.cache.mu.Unlock()
}

func TestCreateBookingValidation(t *testing.T) {
	f := newFixture(t)
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, ist)
	ctx := context.Background()

	cases := []struct {
		name  string
		input models.CreateBookingInput
		check func(error) bool
	}{
		{"missing worker", models.CreateBookingInput{CustomerID: "c1", BookingDate: date}, apperrors.IsValidation},
		{"missing customer", models.CreateBookingInput{WorkerID: "w1", BookingDate: date}, apperrors.IsValidation},
		{"missing date", models.CreateBookingInput{WorkerID: "w1", CustomerID: "c1"}, apperrors.IsValidation},
		{"self booking", models.CreateBookingInput{WorkerID: "w1", CustomerID: "w1", BookingDate: date}, apperrors.IsValidation},
		{"past date", models.CreateBookingInput{WorkerID: "w1", CustomerID: "c1", BookingDate: time.Date(2025, 5, 19, 0, 0, 0, 0, ist)}, apperrors.IsValidation},
		{"unknown worker", models.CreateBookingInput{WorkerID: "nobody", CustomerID: "c1", BookingDate: date}, apperrors.IsNotFound},
		{"unknown customer", models.CreateBookingInput{WorkerID: "w1", CustomerID: "nobody", BookingDate: date}, apperrors.IsNotFound},
		{"target is not a worker", models.CreateBookingInput{WorkerID: "c2", CustomerID: "c1", BookingDate: date}, apperrors.IsValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.CreateBooking(ctx, tc.input)
			require.Error(t, err)
			assert.True(t, tc.check(err), "unexpected error type: %v", err)
		})
	}
}

func TestUpdateBookingStatusAuthorization(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, ist)

	t.Run("stranger is rejected", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		_, err := f.svc.UpdateBookingStatus(ctx, "c2", b.ID, models.BookingStatusCancelled)
		assert.True(t, apperrors.IsAuthorization(err))
	})

	t.Run("customer cannot confirm", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		_, err := f.svc.UpdateBookingStatus(ctx, "c1", b.ID, models.BookingStatusConfirmed)
		assert.True(t, apperrors.IsAuthorization(err))
	})

	t.Run("worker cannot complete", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		f.bookings.setStatus(b.ID, models.BookingStatusConfirmed)
		f.now = time.Date(2025, 6, 2, 9, 0, 0, 0, ist)
		_, err := f.svc.UpdateBookingStatus(ctx, "w1", b.ID, models.BookingStatusCompleted)
		assert.True(t, apperrors.IsAuthorization(err))
	})

	t.Run("worker declines and customer withdraws", func(t *testing.T) {
		f := newFixture(t)
		b1 := f.create(t, date)
		got, err := f.svc.UpdateBookingStatus(ctx, "w1", b1.ID, models.BookingStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.PartyWorker, got.CancelledBy)

		b2 := f.create(t, date)
		got, err = f.svc.UpdateBookingStatus(ctx, "c1", b2.ID, models.BookingStatusCancelled)
		require.NoError(t, err)
		assert.Equal(t, models.PartyCustomer, got.CancelledBy)
	})
}

func TestUpdateBookingStatusIllegalEdges(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, ist)

	t.Run("pending cannot complete", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		_, err := f.svc.UpdateBookingStatus(ctx, "c1", b.ID, models.BookingStatusCompleted)
		assert.True(t, apperrors.IsInvalidTransition(err))
	})

	t.Run("confirmed cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		f.bookings.setStatus(b.ID, models.BookingStatusConfirmed)
		_, err := f.svc.UpdateBookingStatus(ctx, "c1", b.ID, models.BookingStatusCancelled)
		assert.True(t, apperrors.IsInvalidTransition(err))
	})

	t.Run("same state is illegal", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		_, err := f.svc.UpdateBookingStatus(ctx, "w1", b.ID, models.BookingStatusPending)
		assert.True(t, apperrors.IsInvalidTransition(err))
	})

	t.Run("terminal states stay terminal", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		f.bookings.setStatus(b.ID, models.BookingStatusCompleted)
		for _, to := range []models.BookingStatus{models.BookingStatusPending, models.BookingStatusConfirmed, models.BookingStatusCancelled} {
			_, err := f.svc.UpdateBookingStatus(ctx, "c1", b.ID, to)
			assert.True(t, apperrors.IsInvalidTransition(err), "completed -> %s", to)
		}
	})

	t.Run("completion before the booking date", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		f.bookings.setStatus(b.ID, models.BookingStatusConfirmed)
		f.now = time.Date(2025, 5, 31, 23, 0, 0, 0, ist)
		_, err := f.svc.UpdateBookingStatus(ctx, "c1", b.ID, models.BookingStatusCompleted)
		assert.True(t, apperrors.IsInvalidTransition(err))
	})

	t.Run("status moved after read", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		f.bookings.beforeUpdate = func(id string) { f.bookings.setStatus(id, models.BookingStatusCancelled) }
		_, err := f.svc.UpdateBookingStatus(ctx, "w1", b.ID, models.BookingStatusConfirmed)
		assert.True(t, apperrors.IsInvalidTransition(err))
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.svc.UpdateBookingStatus(ctx, "w1", "missing", models.BookingStatusConfirmed)
		assert.True(t, apperrors.IsNotFound(err))
	})

	t.Run("unknown status", func(t *testing.T) {
		f := newFixture(t)
		b := f.create(t, date)
		_, err := f.svc.UpdateBookingStatus(ctx, "w1", b.ID, "archived")
		assert.True(t, apperrors.IsValidation(err))
	})
}

func TestGetBookingParticipantsOnly(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, time.Date(2025, 6, 1, 0, 0, 0, 0, ist))

	got, err := f.svc.GetBooking(context.Background(), "c1", b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)

	_, err = f.svc.GetBooking(context.Background(), "c2", b.ID)
	assert.True(t, apperrors.IsAuthorization(err))
}

func TestListBookingsForUser(t *testing.T) {
	f := newFixture(t)
	day := func(d int) time.Time { return time.Date(2025, 5, d, 0, 0, 0, 0, ist) }
	created := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	seed := []models.Booking{
		{ID: "pending-old", WorkerID: "w1", CustomerID: "c1", BookingDate: day(10), Status: models.BookingStatusPending, CreatedAt: created},
		{ID: "confirmed-today", WorkerID: "w1", CustomerID: "c1", BookingDate: day(20), Status: models.BookingStatusConfirmed, CreatedAt: created},
		{ID: "confirmed-past", WorkerID: "w1", CustomerID: "c1", BookingDate: day(19), Status: models.BookingStatusConfirmed, CreatedAt: created},
		{ID: "completed", WorkerID: "w1", CustomerID: "c1", BookingDate: day(25), Status: models.BookingStatusCompleted, CreatedAt: created},
		{ID: "cancelled-a", WorkerID: "w1", CustomerID: "c1", BookingDate: day(22), Status: models.BookingStatusCancelled, CreatedAt: created},
		{ID: "cancelled-b", WorkerID: "w1", CustomerID: "c1", BookingDate: day(22), Status: models.BookingStatusCancelled, CreatedAt: created.Add(time.Hour)},
		{ID: "other", WorkerID: "w1", CustomerID: "c2", BookingDate: day(22), Status: models.BookingStatusPending, CreatedAt: created},
	}
	for i := range seed {
		require.NoError(t, f.bookings.Create(context.Background(), &seed[i]))
	}

	list, err := f.svc.ListBookingsForUser(context.Background(), "c1")
	require.NoError(t, err)

	ids := func(bs []models.Booking) []string {
		out := make([]string, 0, len(bs))
		for _, b := range bs {
			out = append(out, b.ID)
		}
		return out
	}
	assert.Equal(t, []string{"confirmed-today", "pending-old"}, ids(list.Upcoming))
	assert.Equal(t, []string{"completed", "cancelled-b", "cancelled-a", "confirmed-past"}, ids(list.Past))

	workerList, err := f.svc.ListBookingsForUser(context.Background(), "w1")
	require.NoError(t, err)
	assert.Len(t, append(workerList.Upcoming, workerList.Past...), 7)
}

func TestListBookingsCacheFillRacingTransition(t *testing.T) {
	f := newFixture(t)
	cache := newMemListCache()
	users := &memUserRepo{users: map[string]*models.User{
		"w1": {ID: "w1", Name: "Ramesh Kumar", IsWorker: true, IsApproved: true},
		"c1": {ID: "c1", Name: "Priya Sharma"},
	}}
	svc := NewDefaultBookingService(f.bookings, users, cache, f.notifier, f.reminders, ist, nil)
	svc.Now = func() time.Time { return f.now }
	ctx := context.Background()

	b, err := svc.CreateBooking(ctx, models.CreateBookingInput{
		WorkerID:    "w1",
		CustomerID:  "c1",
		BookingDate: time.Date(2025, 5, 22, 0, 0, 0, 0, ist),
	})
	require.NoError(t, err)
	f.waitPush(t)

	read := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	f.bookings.mu.Lock()
	f.bookings.afterList = func(string) {
		once.Do(func() {
			close(read)
			<-release
		})
	}
	f.bookings.mu.Unlock()

	done := make(chan *models.BookingList, 1)
	go func() {
		list, err := svc.ListBookingsForUser(ctx, "c1")
		assert.NoError(t, err)
		done <- list
	}()

	<-read
	_, err = svc.UpdateBookingStatus(ctx, "w1", b.ID, models.BookingStatusConfirmed)
	require.NoError(t, err)
	close(release)

	stale := <-done
	require.NotNil(t, stale)
	require.Len(t, stale.Upcoming, 1)
	assert.Equal(t, models.BookingStatusPending, stale.Upcoming[0].Status)

	list, err := svc.ListBookingsForUser(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, list.Upcoming, 1)
	assert.Equal(t, models.BookingStatusConfirmed, list.Upcoming[0].Status)

	// The fresh read is cached and served until the next transition.
	cached, ok := cache.Get(ctx, "c1")
	require.True(t, ok)
	assert.Equal(t, models.BookingStatusConfirmed, cached[0].Status)
}

func TestDedupeAndSort(t *testing.T) {
	d := time.Date(2025, 6, 1, 0, 0, 0, 0, ist)
	in := []models.Booking{
		{ID: "a", BookingDate: d},
		{ID: "b", BookingDate: d.AddDate(0, 0, 1)},
		{ID: "a", BookingDate: d},
	}
	out := dedupeAndSort(in)
	require.Len(t, out, 2)
	assert.Equal(t, "b", out[0].ID)
	assert.Equal(t, "a", out[1].ID)
}
