package leave_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"leavedesk/internal/events"
	"leavedesk/internal/leave"
	"leavedesk/internal/messaging/kafka"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeOutboxRepository struct {
	created  []kafka.OutboxEvent
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository {
	return f
}

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		if err := f.createFn(ctx, event); err != nil {
			return err
		}
	}
	f.created = append(f.created, event)
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error {
	return nil
}

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

func TestSweeper_SweepOnce(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	lm := uuid.New()

	pendingRequest := func(assignedDaysAgo int) leave.LeaveRequest {
		assigned := now.Add(-time.Duration(assignedDaysAgo) * 24 * time.Hour)
		return leave.LeaveRequest{
			ID:                uuid.New(),
			BookingRef:        "LV-2026-0042",
			RequesterID:       uuid.New(),
			Status:            leave.StatusPendingLM,
			Year:              2026,
			CurrentApproverID: &lm,
			AssignedAt:        &assigned,
		}
	}

	t.Run("flags only requests past the SLA", func(t *testing.T) {
		overdue := pendingRequest(8)
		fresh := pendingRequest(2)

		repo := &fakeLeaveRepository{
			findPendingFn: func(ctx context.Context) ([]leave.LeaveRequest, error) {
				return []leave.LeaveRequest{overdue, fresh}, nil
			},
		}
		outbox := &fakeOutboxRepository{}
		sweeper := leave.NewSweeper(repo, &fakeCatalog{}, outbox)

		err := sweeper.SweepOnce(ctx, now)
		assert.NoError(t, err)
		assert.Len(t, outbox.created, 1)

		event := outbox.created[0]
		assert.Equal(t, events.LeaveEscalatedTopic, event.Topic)
		assert.Equal(t, overdue.ID.String(), event.AggregateID)

		var payload events.LeaveEscalatedEvent
		assert.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, "leave_escalated", payload.EventType)
		assert.Equal(t, lm.String(), payload.ApproverID)
		assert.Equal(t, overdue.AssignedAt.Add(7*24*time.Hour), payload.DueAt)
	})

	t.Run("re-sweep emits a deterministic event id", func(t *testing.T) {
		overdue := pendingRequest(8)
		repo := &fakeLeaveRepository{
			findPendingFn: func(ctx context.Context) ([]leave.LeaveRequest, error) {
				return []leave.LeaveRequest{overdue}, nil
			},
		}
		outbox := &fakeOutboxRepository{}
		sweeper := leave.NewSweeper(repo, &fakeCatalog{}, outbox)

		assert.NoError(t, sweeper.SweepOnce(ctx, now))
		assert.NoError(t, sweeper.SweepOnce(ctx, now.Add(time.Hour)))

		assert.Len(t, outbox.created, 2)
		assert.Equal(t, outbox.created[0].ID, outbox.created[1].ID,
			"same request and assignment must map to the same outbox id")
	})

	t.Run("nothing pending publishes nothing", func(t *testing.T) {
		repo := &fakeLeaveRepository{}
		outbox := &fakeOutboxRepository{}
		sweeper := leave.NewSweeper(repo, &fakeCatalog{}, outbox)

		assert.NoError(t, sweeper.SweepOnce(ctx, now))
		assert.Empty(t, outbox.created)
	})
}
