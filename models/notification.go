package models

// ReminderPayload is the asynq task body for a booking-day reminder.
type ReminderPayload struct {
	BookingID string `json:"bookingId"`
	FireDate  string `json:"fireDate"`
}
