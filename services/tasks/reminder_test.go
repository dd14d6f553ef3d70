package tasks

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"apnakam/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.tasks = append(r.tasks, task)
	return &asynq.TaskInfo{ID: "t"}, nil
}

var ist = time.FixedZone("IST", 5*60*60+30*60)

func TestReminderFireTime(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, ist)
	assert.Equal(t, time.Date(2026, 3, 14, 8, 0, 0, 0, ist), ReminderFireTime(date, ist))
}

func TestScheduleBookingReminder(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, ist)

	t.Run("future booking is enqueued", func(t *testing.T) {
		enq := &recordingEnqueuer{}
		s := NewAsynqReminderScheduler(enq, ist)
		s.Now = func() time.Time { return now }

		b := &models.Booking{ID: "b1", BookingDate: time.Date(2026, 3, 14, 0, 0, 0, 0, ist)}
		require.NoError(t, s.ScheduleBookingReminder(context.Background(), b))
		require.Len(t, enq.tasks, 1)
		assert.Equal(t, TypeBookingReminder, enq.tasks[0].Type())

		var p models.ReminderPayload
		require.NoError(t, json.Unmarshal(enq.tasks[0].Payload(), &p))
		assert.Equal(t, "b1", p.BookingID)
		assert.Equal(t, "2026-03-14", p.FireDate)
	})

	t.Run("past booking is skipped", func(t *testing.T) {
		enq := &recordingEnqueuer{}
		s := NewAsynqReminderScheduler(enq, ist)
		s.Now = func() time.Time { return now }

		b := &models.Booking{ID: "b2", BookingDate: time.Date(2026, 3, 9, 0, 0, 0, 0, ist)}
		require.NoError(t, s.ScheduleBookingReminder(context.Background(), b))
		assert.Empty(t, enq.tasks)
	})

	t.Run("duplicate task id is not an error", func(t *testing.T) {
		enq := &recordingEnqueuer{err: asynq.ErrTaskIDConflict}
		s := NewAsynqReminderScheduler(enq, ist)
		s.Now = func() time.Time { return now }

		b := &models.Booking{ID: "b3", BookingDate: time.Date(2026, 3, 10, 0, 0, 0, 0, ist)}
		assert.NoError(t, s.ScheduleBookingReminder(context.Background(), b))
	})
}
