package leave

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leavedesk/internal/events"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/policy"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

// Sweeper periodically flags pending requests that sat with one approver past
// the policy's SLA. It is advisory only: it publishes a notification event and
// never touches the request row, so the stored status stays the approver's to
// change.
type Sweeper struct {
	repo    Repository
	catalog policy.Catalog
	outbox  kafka.OutboxRepository
	logger  *zap.Logger
}

func NewSweeper(repo Repository, catalog policy.Catalog, outbox kafka.OutboxRepository, logger ...*zap.Logger) *Sweeper {
	l := zap.L().Named("leave.sweeper")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.sweeper")
	}
	return &Sweeper{repo: repo, catalog: catalog, outbox: outbox, logger: l}
}

func (s *Sweeper) Run(ctx context.Context, pollInterval time.Duration) {
	if pollInterval <= 0 {
		pollInterval = time.Hour
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	s.logger.Info("escalation sweeper started", zap.Duration("poll_interval", pollInterval))

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("escalation sweeper stopped")
			return
		case <-ticker.C:
			if err := s.SweepOnce(ctx, time.Now().UTC()); err != nil {
				s.logger.Error("escalation sweep failed", zap.Error(err))
			}
		}
	}
}

func (s *Sweeper) SweepOnce(ctx context.Context, now time.Time) error {
	pending, err := s.repo.FindPending(ctx)
	if err != nil {
		return err
	}

	escalationDays := make(map[int]int)
	escalated := 0

	for _, l := range pending {
		days, seen := escalationDays[l.Year]
		if !seen {
			days, err = s.catalog.EscalationDays(ctx, l.Year)
			if err != nil {
				s.logger.Warn("escalation days lookup failed", zap.Int("year", l.Year), zap.Error(err))
				days = 0
			}
			escalationDays[l.Year] = days
		}

		esc := ComputeEscalation(l.Status, l.AssignedAt, days, now)
		if !esc.IsEscalated {
			continue
		}

		if err := s.queueEscalationEvent(ctx, l, esc, now); err != nil {
			s.logger.Error("queue escalation event failed",
				zap.String("leave_id", l.ID.String()),
				zap.Error(err),
			)
			continue
		}
		escalated++
	}

	if escalated > 0 {
		s.logger.Info("escalation sweep flagged requests",
			zap.Int("pending", len(pending)),
			zap.Int("escalated", escalated),
		)
	}
	return nil
}

var escalationNamespace = uuid.MustParse("6f3c2a91-58d4-4b37-9c0e-1f2a6d8e4b5c")

func (s *Sweeper) queueEscalationEvent(ctx context.Context, l LeaveRequest, esc EscalationStatus, now time.Time) error {
	approverID := ""
	if l.CurrentApproverID != nil {
		approverID = l.CurrentApproverID.String()
	}

	event := events.LeaveEscalatedEvent{
		EventType:  "leave_escalated",
		LeaveID:    l.ID.String(),
		BookingRef: l.BookingRef,
		ApproverID: approverID,
		DueAt:      esc.DueAt,
		OccurredAt: now,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Deterministic id per (request, approver assignment, due date): re-sweeps
	// of a still-escalated request collide on the primary key instead of
	// spamming the approver.
	dedup := fmt.Sprintf("%s|%s|%s", l.ID, approverID, esc.DueAt.Format(time.RFC3339))
	eventID := uuid.NewSHA1(escalationNamespace, []byte(dedup))

	err = s.outbox.Create(ctx, kafka.OutboxEvent{
		ID:            eventID.String(),
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     "leave_escalated",
		Topic:         events.LeaveEscalatedTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
