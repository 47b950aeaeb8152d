package audit_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"leavedesk/internal/audit"
	"leavedesk/internal/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeAuditRepository struct {
	created      []*audit.AuditLog
	findByLeave  func(ctx context.Context, leaveID string) ([]audit.AuditLog, error)
	findRecentFn func(ctx context.Context, limit int) ([]audit.AuditLog, error)
}

func (f *fakeAuditRepository) Create(ctx context.Context, log *audit.AuditLog) error {
	f.created = append(f.created, log)
	return nil
}

func (f *fakeAuditRepository) FindByLeave(ctx context.Context, leaveID string) ([]audit.AuditLog, error) {
	if f.findByLeave != nil {
		return f.findByLeave(ctx, leaveID)
	}
	return nil, nil
}

func (f *fakeAuditRepository) FindRecent(ctx context.Context, limit int) ([]audit.AuditLog, error) {
	if f.findRecentFn != nil {
		return f.findRecentFn(ctx, limit)
	}
	return nil, nil
}

func TestAuditService_RecordLifecycleEvent(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()

	event := events.LeaveLifecycleEvent{
		EventType:   "leave_decided",
		RequestID:   "req-123",
		LeaveID:     leaveID.String(),
		BookingRef:  "LV-2026-0042",
		RequesterID: uuid.New().String(),
		ActorID:     uuid.New().String(),
		Status:      "APPROVED",
		OccurredAt:  time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	raw, err := json.Marshal(event)
	assert.NoError(t, err)

	t.Run("success", func(t *testing.T) {
		repo := &fakeAuditRepository{}
		svc := audit.NewService(repo)

		assert.NoError(t, svc.RecordLifecycleEvent(ctx, event, raw))
		assert.Len(t, repo.created, 1)

		entry := repo.created[0]
		assert.Equal(t, leaveID, entry.LeaveID)
		assert.Equal(t, "leave_decided", entry.EventType)
		assert.Equal(t, "APPROVED", entry.Status)
		assert.Equal(t, "req-123", entry.TraceID)
		assert.Equal(t, event.OccurredAt, entry.OccurredAt)
		assert.JSONEq(t, string(raw), string(entry.Payload))
	})

	t.Run("malformed leave id is dropped without error", func(t *testing.T) {
		repo := &fakeAuditRepository{}
		svc := audit.NewService(repo)

		bad := event
		bad.LeaveID = "not-a-uuid"
		assert.NoError(t, svc.RecordLifecycleEvent(ctx, bad, raw))
		assert.Empty(t, repo.created)
	})
}

func TestAuditService_GetByLeave(t *testing.T) {
	ctx := context.Background()
	leaveID := uuid.New()

	repo := &fakeAuditRepository{
		findByLeave: func(ctx context.Context, id string) ([]audit.AuditLog, error) {
			return []audit.AuditLog{
				{
					ID:         uuid.New(),
					LeaveID:    leaveID,
					EventType:  "leave_submitted",
					Status:     "PENDING_LM",
					OccurredAt: time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
				},
			}, nil
		},
	}
	svc := audit.NewService(repo)

	resp, err := svc.GetByLeave(ctx, leaveID.String())
	assert.NoError(t, err)
	assert.Len(t, resp, 1)
	assert.Equal(t, "leave_submitted", resp[0].EventType)
	assert.Equal(t, "2026-03-02T09:00:00Z", resp[0].OccurredAt)
}
