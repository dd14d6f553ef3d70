package tasks

import (
	"apnakam/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const TypeBookingReminder = "booking:reminder"

// reminderHour is the local hour reminders fire on the booking date.
const reminderHour = 8

func NewReminderTask(payload models.ReminderPayload, fireAt time.Time) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	task := asynq.NewTask(TypeBookingReminder, b)
	opts := []asynq.Option{
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:" + payload.BookingID),
		asynq.MaxRetry(3),
	}

	return task, opts, nil
}

// ReminderFireTime is 08:00 on the booking's calendar date in loc.
func ReminderFireTime(bookingDate time.Time, loc *time.Location) time.Time {
	d := bookingDate.In(loc)
	return time.Date(d.Year(), d.Month(), d.Day(), reminderHour, 0, 0, 0, loc)
}

// ReminderScheduler enqueues booking-day reminders.
type ReminderScheduler interface {
	ScheduleBookingReminder(ctx context.Context, booking *models.Booking) error
}

// Enqueuer is the subset of *asynq.Client used here.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// AsynqReminderScheduler schedules reminders on the asynq queue.
type AsynqReminderScheduler struct {
	client Enqueuer
	loc    *time.Location
	Now    func() time.Time
}

func NewAsynqReminderScheduler(client Enqueuer, loc *time.Location) *AsynqReminderScheduler {
	return &AsynqReminderScheduler{client: client, loc: loc, Now: time.Now}
}

// ScheduleBookingReminder enqueues one reminder per booking. Bookings whose
// date has already passed are skipped; a booking confirmed on its own day after
// 08:00 is reminded immediately.
func (s *AsynqReminderScheduler) ScheduleBookingReminder(ctx context.Context, booking *models.Booking) error {
	now := s.Now()
	if booking.BookingDate.Before(models.StartOfDay(now, s.loc)) {
		return nil
	}
	fireAt := ReminderFireTime(booking.BookingDate, s.loc)
	if fireAt.Before(now) {
		fireAt = now
	}

	payload := models.ReminderPayload{
		BookingID: booking.ID,
		FireDate:  booking.BookingDate.In(s.loc).Format("2006-01-02"),
	}
	task, opts, err := NewReminderTask(payload, fireAt)
	if err != nil {
		return fmt.Errorf("build reminder task: %w", err)
	}

	if _, err := s.client.EnqueueContext(ctx, task, opts...); err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			return nil
		}
		return fmt.Errorf("enqueue reminder for booking %s: %w", booking.ID, err)
	}
	return nil
}
