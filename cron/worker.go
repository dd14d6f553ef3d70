package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"apnakam/database/repository"
	"apnakam/models"
	"apnakam/services/notification"
	"apnakam/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// BookingLoader fetches the booking a reminder refers to.
type BookingLoader interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// InitReminderWorker starts the asynq server that delivers booking-day
// reminders. The caller owns the returned server and must Shutdown it.
func InitReminderWorker(redisOpt asynq.RedisClientOpt, bookings BookingLoader, notifSvc notification.NotificationService, logger *zap.Logger) (*asynq.Server, error) {
	srv := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: logger.Sugar(),
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeBookingReminder, NewReminderHandler(bookings, notifSvc, logger))

	const maxAttempts = 5
	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err = srv.Start(mux); err == nil {
			logger.Info("Reminder worker started", zap.Int("attempt", attempt))
			return srv, nil
		}
		logger.Warn("Reminder worker failed to start",
			zap.Int("attempt", attempt),
			zap.Int("maxAttempts", maxAttempts),
			zap.Error(err),
		)
		time.Sleep(time.Duration(attempt*2) * time.Second)
	}
	return nil, fmt.Errorf("reminder worker: %w", err)
}

// NewReminderHandler pushes a reminder to both parties of a booking that is
// still confirmed. Bookings that moved on or vanished are dropped silently.
func NewReminderHandler(bookings BookingLoader, notifSvc notification.NotificationService, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid reminder payload", zap.Error(err))
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}

		booking, err := bookings.GetByID(ctx, p.BookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				logger.Info("Reminder for missing booking dropped", zap.String("bookingID", p.BookingID))
				return nil
			}
			return err
		}
		if booking.Status != models.BookingStatusConfirmed {
			logger.Info("Reminder skipped",
				zap.String("bookingID", booking.ID),
				zap.String("status", string(booking.Status)),
			)
			return nil
		}

		date := booking.BookingDate.Format("2 Jan 2006")
		data := map[string]string{
			"type":      tasks.TypeBookingReminder,
			"bookingId": booking.ID,
			"fireDate":  p.FireDate,
		}
		sends := []struct{ userID, body string }{
			{booking.CustomerID, fmt.Sprintf("%s is booked for you today, %s.", booking.WorkerName, date)},
			{booking.WorkerID, fmt.Sprintf("You have a job for %s today, %s.", booking.CustomerName, date)},
		}

		var failures []error
		for _, s := range sends {
			err := notifSvc.SendUserPushNotification(ctx, s.userID, "Booking today", s.body, data)
			if err == nil || errors.Is(err, notification.ErrNoPushTarget) {
				continue
			}
			logger.Warn("Reminder push failed",
				zap.String("bookingID", booking.ID),
				zap.String("userID", s.userID),
				zap.Error(err),
			)
			failures = append(failures, err)
		}
		// Retry only when nobody was reached, so a partial success is not repeated.
		if len(failures) == len(sends) {
			return errors.Join(failures...)
		}
		return nil
	}
}
