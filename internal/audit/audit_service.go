package audit

import (
	"context"
	"encoding/json"
	"time"

	"leavedesk/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

//go:generate mockgen -source=audit_service.go -destination=mock/audit_service_mock.go -package=mock
type Service interface {
	RecordLifecycleEvent(ctx context.Context, event events.LeaveLifecycleEvent, raw []byte) error
	GetByLeave(ctx context.Context, leaveID string) ([]AuditLogResponse, error)
	GetRecent(ctx context.Context, limit int) ([]AuditLogResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("audit.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("audit.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) RecordLifecycleEvent(ctx context.Context, event events.LeaveLifecycleEvent, raw []byte) error {
	leaveID, err := uuid.Parse(event.LeaveID)
	if err != nil {
		s.logger.Warn("lifecycle event carries malformed leave id, dropping",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
		)
		return nil
	}

	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	entry := &AuditLog{
		ID:          uuid.New(),
		LeaveID:     leaveID,
		BookingRef:  event.BookingRef,
		EventType:   event.EventType,
		Status:      event.Status,
		ActorID:     event.ActorID,
		RequesterID: event.RequesterID,
		TraceID:     event.RequestID,
		Payload:     json.RawMessage(raw),
		OccurredAt:  occurredAt,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return err
	}

	s.logger.Debug("lifecycle event recorded",
		zap.String("leave_id", event.LeaveID),
		zap.String("event_type", event.EventType),
		zap.String("status", event.Status),
	)
	return nil
}

func (s *service) GetByLeave(ctx context.Context, leaveID string) ([]AuditLogResponse, error) {
	logs, err := s.repo.FindByLeave(ctx, leaveID)
	if err != nil {
		return nil, err
	}
	return mapToResponses(logs), nil
}

func (s *service) GetRecent(ctx context.Context, limit int) ([]AuditLogResponse, error) {
	logs, err := s.repo.FindRecent(ctx, limit)
	if err != nil {
		return nil, err
	}
	return mapToResponses(logs), nil
}
