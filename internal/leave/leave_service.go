package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"leavedesk/internal/balance"
	"leavedesk/internal/employee"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/messaging/kafka"
	"leavedesk/internal/orgchart"
	"leavedesk/internal/planner"
	"leavedesk/internal/policy"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/shared/counter"

	"leavedesk/internal/events"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Plan(ctx context.Context, requesterID string, req PlanRequest) (PlanResponse, error)
	Create(ctx context.Context, requesterID string, req CreateLeaveRequest) (LeaveResponse, error)
	Submit(ctx context.Context, requesterID, id string) (LeaveResponse, error)
	Decide(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, requesterID, id string) (LeaveResponse, error)
	GetAll(ctx context.Context, viewerID, role string) ([]LeaveResponse, error)
	GetByID(ctx context.Context, viewerID, role, id string) (LeaveResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	balances  balance.Service
	catalog   policy.Catalog
	employees employee.Repository
	chains    orgchart.Repository
	counter   counter.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balances balance.Service,
	catalog policy.Catalog,
	employees employee.Repository,
	chains orgchart.Repository,
	counterRepo counter.Repository,
	logger ...*zap.Logger,
) Service {
	return NewServiceWithOutbox(db, repo, balances, catalog, employees, chains, counterRepo, nil, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	balances balance.Service,
	catalog policy.Catalog,
	employees employee.Repository,
	chains orgchart.Repository,
	counterRepo counter.Repository,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		balances:  balances,
		catalog:   catalog,
		employees: employees,
		chains:    chains,
		counter:   counterRepo,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// planInputs bundles everything Plan and Create resolve before calling the
// pure planner.
type planInputs struct {
	startDate    time.Time
	endDate      time.Time
	workingDays  int
	year         int
	rule         policy.LeaveTypeRule
	remaining    balance.Remaining
	withinWindow bool
	strategy     planner.Strategy
}

func (s *service) resolvePlanInputs(ctx context.Context, requesterID, leaveTypeCode, startDate, endDate, strategy string) (planInputs, error) {
	var in planInputs

	if _, err := uuid.Parse(requesterID); err != nil {
		return in, leaveerrors.ErrInvalidRequesterID
	}

	start, err := parseDate(startDate)
	if err != nil {
		return in, err
	}
	end, err := parseDate(endDate)
	if err != nil {
		return in, err
	}
	if end.Before(start) {
		return in, leaveerrors.ErrInvalidDateRange
	}

	workingDays := planner.WorkingDays(start, end)
	if workingDays == 0 {
		return in, leaveerrors.ErrInvalidDateRange
	}

	strat, ok := planner.ParseStrategy(strategy)
	if !ok {
		return in, leaveerrors.ErrInvalidStrategy
	}

	rule, err := s.catalog.LeaveTypeRule(ctx, leaveTypeCode)
	if err != nil {
		return in, err
	}

	year := start.Year()
	bal, err := s.balances.Remaining(ctx, requesterID, year)
	if err != nil {
		return in, err
	}

	// The window is judged against the leave's start date: a January request
	// may still spend carry-forward even when decided in April.
	withinWindow, err := s.catalog.CarryForwardWindowOpen(ctx, start, year)
	if err != nil {
		return in, err
	}

	in = planInputs{
		startDate:    start,
		endDate:      end,
		workingDays:  workingDays,
		year:         year,
		rule:         rule,
		remaining:    bal.Remaining,
		withinWindow: withinWindow,
		strategy:     strat,
	}
	return in, nil
}

func (s *service) Plan(ctx context.Context, requesterID string, req PlanRequest) (PlanResponse, error) {
	in, err := s.resolvePlanInputs(ctx, requesterID, req.LeaveTypeCode, req.StartDate, req.EndDate, req.Strategy)
	if err != nil {
		return PlanResponse{}, err
	}

	res := planner.Compute(planner.Input{
		RequestedDays:     in.workingDays,
		Remaining:         in.remaining,
		WithinCarryWindow: in.withinWindow,
		Strategy:          in.strategy,
		Rule:              in.rule,
	})

	return PlanResponse{
		WorkingDays: in.workingDays,
		Consumption: res.Consumption,
		Feasible:    res.Feasible,
		Reason:      res.Reason,
		Warnings:    res.Warnings,
	}, nil
}

func (s *service) Create(ctx context.Context, requesterID string, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("requester_id", requesterID),
		zap.String("leave_type", req.LeaveTypeCode),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.String("strategy", req.Strategy),
	)

	in, err := s.resolvePlanInputs(ctx, requesterID, req.LeaveTypeCode, req.StartDate, req.EndDate, req.Strategy)
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	res := planner.Compute(planner.Input{
		RequestedDays:     in.workingDays,
		Remaining:         in.remaining,
		WithinCarryWindow: in.withinWindow,
		Strategy:          in.strategy,
		Rule:              in.rule,
	})
	if !res.Feasible {
		log.Warn("create leave plan infeasible", zap.String("reason", res.Reason))
		return LeaveResponse{}, wrapInfeasible(res.Reason)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	overlap, err := s.repo.HasOverlappingPeriod(ctx, requesterID, in.startDate, in.endDate, nil)
	if err != nil {
		log.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		log.Warn("create leave overlap detected",
			zap.String("requester_id", requesterID),
			zap.String("start_date", req.StartDate),
			zap.String("end_date", req.EndDate),
		)
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	seq, err := s.counter.GetNextValue(ctx, "booking_ref", fmt.Sprintf("%d", in.year))
	if err != nil {
		log.Error("create leave booking ref failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:                      uuid.New(),
		BookingRef:              fmt.Sprintf("LV-%d-%04d", in.year, seq),
		RequesterID:             uuid.MustParse(requesterID),
		LeaveTypeCode:           in.rule.Code,
		StartDate:               in.startDate,
		EndDate:                 in.endDate,
		WorkingDays:             in.workingDays,
		Reason:                  req.Reason,
		Status:                  StatusDraft,
		Year:                    in.year,
		ConsumptionCarryForward: res.Consumption.CarryForward,
		ConsumptionCurrentYear:  res.Consumption.CurrentYear,
	}

	if err := qtx.Create(ctx, l); err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("booking_ref", l.BookingRef),
		zap.String("requester_id", requesterID),
	)

	return mapToResponse(*l, EscalationStatus{}), nil
}

func (s *service) Submit(ctx context.Context, requesterID, id string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested",
		zap.String("leave_id", id),
		zap.String("requester_id", requesterID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.RequesterID.String() != requesterID {
		return LeaveResponse{}, leaveerrors.ErrNotRequester
	}
	if l.Status != StatusDraft {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	rule, err := s.catalog.LeaveTypeRule(ctx, l.LeaveTypeCode)
	if err != nil {
		return LeaveResponse{}, err
	}
	if rule.RequiresReason && l.Reason == "" {
		return LeaveResponse{}, leaveerrors.ErrReasonRequired
	}

	// The stored plan may have gone stale between draft and submit.
	bal, err := s.balances.Remaining(ctx, requesterID, l.Year)
	if err != nil {
		return LeaveResponse{}, err
	}
	c := l.Consumption()
	if c.CarryForward > bal.Remaining.CarryForward || c.CurrentYear > bal.Remaining.CurrentYear {
		return LeaveResponse{}, wrapInfeasible("balance changed since the request was planned")
	}

	emp, err := s.employees.FindByID(ctx, requesterID)
	if err != nil {
		return LeaveResponse{}, err
	}
	chain, err := s.findChain(ctx, requesterID)
	if err != nil {
		return LeaveResponse{}, err
	}

	assignment, err := RouteSubmit(emp.Role, chain)
	if err != nil {
		log.Warn("submit leave routing failed",
			zap.String("leave_id", id),
			zap.String("role", emp.Role),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	now := time.Now().UTC()
	l.Status = assignment.Status
	l.CurrentApproverID = &assignment.ApproverID
	l.AssignedAt = &now
	l.SubmittedAt = &now

	ok, err := qtx.UpdateTransition(ctx, l, StatusDraft)
	if err != nil {
		log.Error("submit leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrStaleState
	}

	if err := s.queueLifecycleEvent(ctx, tx, l, "leave_submitted", requesterID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("submit leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("submit leave success",
		zap.String("leave_id", id),
		zap.String("status", string(l.Status)),
		zap.String("approver_id", assignment.ApproverID.String()),
	)

	return s.withEscalation(ctx, *l), nil
}

func (s *service) Decide(ctx context.Context, actorID, id string, req DecideLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("decide leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("decision", req.Decision),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("decide leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if !l.Status.Pending() {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}
	// Row-level policy is the primary guard; this re-check keeps the core
	// honest when called in-process.
	if l.CurrentApproverID == nil || l.CurrentApproverID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrNotCurrentApprover
	}

	expected := l.Status
	actorUUID := uuid.MustParse(actorID)
	now := time.Now().UTC()

	switch Decision(req.Decision) {
	case DecisionReject:
		if req.Note == "" {
			return LeaveResponse{}, leaveerrors.ErrRejectionNoteRequired
		}
		l.Status = StatusRejected
		l.CurrentApproverID = nil
		l.DecidedAt = &now
		l.DecidedBy = &actorUUID
		l.DecisionNote = &req.Note

	case DecisionApprove:
		chain, err := s.findChain(ctx, l.RequesterID.String())
		if err != nil {
			return LeaveResponse{}, err
		}
		next, nextApprover, err := RouteApproval(l.Status, chain)
		if err != nil {
			return LeaveResponse{}, err
		}

		l.Status = next
		if next == StatusApproved {
			l.CurrentApproverID = nil
			l.DecidedAt = &now
			l.DecidedBy = &actorUUID
			if req.Note != "" {
				l.DecisionNote = &req.Note
			}
		} else {
			// SLA clock restarts for the next approver.
			l.CurrentApproverID = nextApprover
			l.AssignedAt = &now
		}

	default:
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	ok, err := qtx.UpdateTransition(ctx, l, expected)
	if err != nil {
		log.Error("decide leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		log.Warn("decide leave lost the race",
			zap.String("leave_id", id),
			zap.String("expected_status", string(expected)),
		)
		return LeaveResponse{}, leaveerrors.ErrStaleState
	}

	// Ledger mutation happens exactly here: the transition that lands on
	// APPROVED, inside the same transaction as the status flip.
	if l.Status == StatusApproved {
		if err := s.balances.ApplyForRequest(ctx, tx, l.ID, l.RequesterID, l.Year, l.Consumption()); err != nil {
			log.Warn("decide leave balance apply failed",
				zap.String("leave_id", id),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := s.queueLifecycleEvent(ctx, tx, l, "leave_decided", actorID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("decide leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("decide leave success",
		zap.String("leave_id", id),
		zap.String("status", string(l.Status)),
		zap.String("decided_by", actorID),
	)

	return s.withEscalation(ctx, *l), nil
}

func (s *service) Cancel(ctx context.Context, requesterID, id string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("cancel leave requested",
		zap.String("leave_id", id),
		zap.String("requester_id", requesterID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("cancel leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}
	if l.RequesterID.String() != requesterID {
		return LeaveResponse{}, leaveerrors.ErrNotRequester
	}
	if !l.Status.Pending() {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	expected := l.Status
	l.Status = StatusCancelled
	l.CurrentApproverID = nil

	ok, err := qtx.UpdateTransition(ctx, l, expected)
	if err != nil {
		log.Error("cancel leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if !ok {
		return LeaveResponse{}, leaveerrors.ErrStaleState
	}

	// Nothing was consumed while pending, so there is no ledger reversal.
	if err := s.queueLifecycleEvent(ctx, tx, l, "leave_cancelled", requesterID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("cancel leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("cancel leave success", zap.String("leave_id", id))

	return s.withEscalation(ctx, *l), nil
}

func (s *service) GetAll(ctx context.Context, viewerID, role string) ([]LeaveResponse, error) {
	var (
		leaves []LeaveRequest
		err    error
	)

	switch role {
	case employee.RoleAdmin:
		leaves, err = s.repo.FindAll(ctx)
	case employee.RoleLineManager, employee.RoleGeneralManager:
		var own, inbox []LeaveRequest
		own, err = s.repo.FindByRequester(ctx, viewerID)
		if err == nil {
			inbox, err = s.repo.FindByApprover(ctx, viewerID)
		}
		leaves = append(own, inbox...)
	default:
		leaves, err = s.repo.FindByRequester(ctx, viewerID)
	}
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	escalationDays := s.escalationDaysByYear(ctx, leaves)

	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l, ComputeEscalation(l.Status, l.AssignedAt, escalationDays[l.Year], now))
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, viewerID, role, id string) (LeaveResponse, error) {
	l, err := s.findRequest(ctx, id)
	if err != nil {
		return LeaveResponse{}, err
	}

	if !canView(*l, viewerID, role) {
		return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
	}

	return s.withEscalation(ctx, *l), nil
}

func canView(l LeaveRequest, viewerID, role string) bool {
	if role == employee.RoleAdmin {
		return true
	}
	if l.RequesterID.String() == viewerID {
		return true
	}
	return l.CurrentApproverID != nil && l.CurrentApproverID.String() == viewerID
}

func (s *service) findRequest(ctx context.Context, id string) (*LeaveRequest, error) {
	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrLeaveNotFound
		}
		return nil, err
	}
	return l, nil
}

func (s *service) findChain(ctx context.Context, employeeID string) (orgchart.ApprovalChain, error) {
	chain, err := s.chains.FindByEmployee(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// No chain row at all is the same configuration failure as an
			// empty slot.
			return orgchart.ApprovalChain{}, leaveerrors.ErrMissingApprover
		}
		return orgchart.ApprovalChain{}, err
	}
	return *chain, nil
}

func (s *service) withEscalation(ctx context.Context, l LeaveRequest) LeaveResponse {
	esc := EscalationStatus{}
	if l.Status.Pending() && l.AssignedAt != nil {
		if days, err := s.catalog.EscalationDays(ctx, l.Year); err == nil {
			esc = ComputeEscalation(l.Status, l.AssignedAt, days, time.Now().UTC())
		}
	}
	return mapToResponse(l, esc)
}

func (s *service) escalationDaysByYear(ctx context.Context, leaves []LeaveRequest) map[int]int {
	out := make(map[int]int)
	for _, l := range leaves {
		if _, seen := out[l.Year]; seen {
			continue
		}
		days, err := s.catalog.EscalationDays(ctx, l.Year)
		if err != nil {
			out[l.Year] = 0
			continue
		}
		out[l.Year] = days
	}
	return out
}

func (s *service) queueLifecycleEvent(ctx context.Context, tx *sql.Tx, l *LeaveRequest, eventType, actorID string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveLifecycleEvent{
		EventType:   eventType,
		RequestID:   rid,
		LeaveID:     l.ID.String(),
		BookingRef:  l.BookingRef,
		RequesterID: l.RequesterID.String(),
		ActorID:     actorID,
		Status:      string(l.Status),
		OccurredAt:  time.Now().UTC(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave_request",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	})
}

func wrapInfeasible(reason string) error {
	err := *leaveerrors.ErrPlanInfeasible
	if reason != "" {
		err.Message = reason
	}
	return &err
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}
