package booking

import (
	"context"
	"errors"
	"fmt"

	"apnakam/models"
	"apnakam/services/notification"

	"go.uber.org/zap"
)

// statusMessage builds the push sent to the party that did not act.
func statusMessage(b *models.Booking, actor models.Party) (title, body string) {
	date := b.BookingDate.Format("2 January 2006")
	switch b.Status {
	case models.BookingStatusPending:
		return "New booking request", fmt.Sprintf("%s wants to book you on %s.", b.CustomerName, date)
	case models.BookingStatusConfirmed:
		return "Booking confirmed!", fmt.Sprintf("%s confirmed your booking for %s.", b.WorkerName, date)
	case models.BookingStatusCompleted:
		return "Job marked complete", fmt.Sprintf("%s marked the job on %s as completed.", b.CustomerName, date)
	case models.BookingStatusCancelled:
		if actor == models.PartyWorker {
			return "Booking declined", fmt.Sprintf("%s could not take your booking for %s.", b.WorkerName, date)
		}
		return "Booking cancelled", fmt.Sprintf("%s cancelled the request for %s.", b.CustomerName, date)
	}
	return "Booking updated", fmt.Sprintf("Your booking for %s was updated.", date)
}

// notifyAsync pushes to the counterparty of actor without blocking the caller.
func (s *DefaultBookingService) notifyAsync(ctx context.Context, b *models.Booking, actor models.Party) {
	if s.Notifier == nil {
		return
	}
	recipient := b.WorkerID
	if actor == models.PartyWorker {
		recipient = b.CustomerID
	}
	title, body := statusMessage(b, actor)
	data := map[string]string{
		"type":      "booking_" + string(b.Status),
		"bookingId": b.ID,
		"status":    string(b.Status),
	}

	bg := context.WithoutCancel(ctx)
	go func() {
		err := s.Notifier.SendUserPushNotification(bg, recipient, title, body, data)
		if err != nil && !errors.Is(err, notification.ErrNoPushTarget) {
			s.Logger.Warn("Booking push failed",
				zap.String("bookingID", b.ID),
				zap.String("recipient", recipient),
				zap.Error(err))
		}
	}()
}

func (s *DefaultBookingService) scheduleReminder(ctx context.Context, b *models.Booking) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleBookingReminder(context.WithoutCancel(ctx), b); err != nil {
		s.Logger.Warn("Failed to schedule booking reminder", zap.String("bookingID", b.ID), zap.Error(err))
	}
}
