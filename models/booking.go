package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
)

// Party identifies which side of a booking acted.
type Party string

const (
	PartyWorker   Party = "worker"
	PartyCustomer Party = "customer"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled, BookingStatusCompleted:
		return true
	}
	return false
}

// Terminal reports whether no further transitions are possible.
func (s BookingStatus) Terminal() bool {
	return s == BookingStatusCancelled || s == BookingStatusCompleted
}

// Booking is a requested service engagement between a worker and a customer.
type Booking struct {
	ID              string        `bson:"id" json:"id"`
	WorkerID        string        `bson:"workerId" json:"workerId"`
	CustomerID      string        `bson:"customerId" json:"customerId"`
	WorkerName      string        `bson:"workerName" json:"workerName"`
	CustomerName    string        `bson:"customerName" json:"customerName"`
	BookingDate     time.Time     `bson:"bookingDate" json:"bookingDate"`
	Status          BookingStatus `bson:"status" json:"status"`
	CancelledBy     Party         `bson:"cancelledBy,omitempty" json:"cancelledBy,omitempty"`
	HasBeenReviewed bool          `bson:"hasBeenReviewed" json:"hasBeenReviewed"`
	CreatedAt       time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time     `bson:"updatedAt" json:"updatedAt"`
}

// PartyOf returns the role userID plays in the booking, if any.
func (b *Booking) PartyOf(userID string) (Party, bool) {
	switch userID {
	case "":
		return "", false
	case b.WorkerID:
		return PartyWorker, true
	case b.CustomerID:
		return PartyCustomer, true
	}
	return "", false
}

// CounterpartyID returns the id of the other participant.
func (b *Booking) CounterpartyID(userID string) string {
	if userID == b.WorkerID {
		return b.CustomerID
	}
	return b.WorkerID
}

// IsUpcoming buckets a booking into the "upcoming" tab: every pending request,
// and confirmed bookings whose date is today or later in loc.
func (b *Booking) IsUpcoming(now time.Time, loc *time.Location) bool {
	switch b.Status {
	case BookingStatusPending:
		return true
	case BookingStatusConfirmed:
		return !b.BookingDate.Before(StartOfDay(now, loc))
	}
	return false
}

// StartOfDay truncates t to midnight in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// CreateBookingInput is the request to open a new booking.
type CreateBookingInput struct {
	WorkerID     string    `json:"workerId"`
	CustomerID   string    `json:"-"`
	WorkerName   string    `json:"workerName,omitempty"`
	CustomerName string    `json:"customerName,omitempty"`
	BookingDate  time.Time `json:"-"`
}

// BookingList is the "my bookings" view split into its two tabs.
type BookingList struct {
	Upcoming []Booking `json:"upcoming"`
	Past     []Booking `json:"past"`
}
