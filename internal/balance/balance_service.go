package balance

import (
	"context"
	"database/sql"
	"errors"

	balanceerrors "leavedesk/internal/balance/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_service.go -destination=mock/balance_service_mock.go -package=mock
type Service interface {
	// Remaining returns the clamped per-bucket balance for display and
	// planning.
	Remaining(ctx context.Context, employeeID string, year int) (BalanceResponse, error)

	// ApplyForRequest consumes days for an approved request inside the
	// caller's transaction. Exactly-once per request: a retried call is a
	// no-op once the (request, APPLY) entry exists.
	ApplyForRequest(ctx context.Context, tx *sql.Tx, requestID, employeeID uuid.UUID, year int, c Consumption) error

	// ReverseForRequest is the compensating path for cancellation or
	// rejection after approval.
	ReverseForRequest(ctx context.Context, tx *sql.Tx, requestID, employeeID uuid.UUID, year int, c Consumption) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("balance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("balance.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Remaining(ctx context.Context, employeeID string, year int) (BalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return BalanceResponse{}, balanceerrors.ErrInvalidEmployeeID
	}

	a, err := s.repo.FindAccount(ctx, employeeID, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return BalanceResponse{}, balanceerrors.ErrAccountNotFound
		}
		return BalanceResponse{}, err
	}

	return mapBalanceResponse(*a), nil
}

func (s *service) ApplyForRequest(ctx context.Context, tx *sql.Tx, requestID, employeeID uuid.UUID, year int, c Consumption) error {
	qtx := s.repo.WithTx(tx)

	a, err := s.repo.FindAccount(ctx, employeeID.String(), year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return balanceerrors.ErrAccountNotFound
		}
		return err
	}

	// Pure pre-check gives the caller a typed error before touching rows.
	if _, err := Apply(*a, c); err != nil {
		return err
	}

	if err := qtx.InsertEntry(ctx, &Entry{
		RequestID:        requestID,
		Direction:        EntryDirectionApply,
		EmployeeID:       employeeID,
		Year:             year,
		CarryForwardDays: c.CarryForward,
		CurrentYearDays:  c.CurrentYear,
	}); err != nil {
		if errors.Is(err, ErrDuplicateEntry) {
			s.logger.Warn("balance apply replayed, skipping",
				zap.String("request_id", requestID.String()),
			)
			return nil
		}
		return err
	}

	ok, err := qtx.ApplyCounters(ctx, a.ID.String(), c)
	if err != nil {
		return err
	}
	if !ok {
		// The SQL guard re-checks under the transaction; losing here means a
		// concurrent mutation drained the balance since the pre-check.
		return balanceerrors.ErrInsufficientBalance
	}

	s.logger.Info("balance applied",
		zap.String("request_id", requestID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.Int("year", year),
		zap.Int("carry_forward", c.CarryForward),
		zap.Int("current_year", c.CurrentYear),
	)
	return nil
}

func (s *service) ReverseForRequest(ctx context.Context, tx *sql.Tx, requestID, employeeID uuid.UUID, year int, c Consumption) error {
	qtx := s.repo.WithTx(tx)

	a, err := s.repo.FindAccount(ctx, employeeID.String(), year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return balanceerrors.ErrAccountNotFound
		}
		return err
	}

	if _, err := Reverse(*a, c); err != nil {
		return err
	}

	if err := qtx.InsertEntry(ctx, &Entry{
		RequestID:        requestID,
		Direction:        EntryDirectionReverse,
		EmployeeID:       employeeID,
		Year:             year,
		CarryForwardDays: c.CarryForward,
		CurrentYearDays:  c.CurrentYear,
	}); err != nil {
		if errors.Is(err, ErrDuplicateEntry) {
			s.logger.Warn("balance reverse replayed, skipping",
				zap.String("request_id", requestID.String()),
			)
			return nil
		}
		return err
	}

	ok, err := qtx.ReverseCounters(ctx, a.ID.String(), c)
	if err != nil {
		return err
	}
	if !ok {
		return balanceerrors.ErrReversalBelowZero
	}

	s.logger.Info("balance reversed",
		zap.String("request_id", requestID.String()),
		zap.String("employee_id", employeeID.String()),
		zap.Int("year", year),
	)
	return nil
}
