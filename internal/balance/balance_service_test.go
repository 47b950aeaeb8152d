package balance_test

import (
	"context"
	"database/sql"
	"testing"

	"leavedesk/internal/balance"
	balanceerrors "leavedesk/internal/balance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeBalanceRepository struct {
	withTxFn          func(tx *sql.Tx) balance.Repository
	findAccountFn     func(ctx context.Context, employeeID string, year int) (*balance.Account, error)
	applyCountersFn   func(ctx context.Context, accountID string, c balance.Consumption) (bool, error)
	reverseCountersFn func(ctx context.Context, accountID string, c balance.Consumption) (bool, error)
	insertEntryFn     func(ctx context.Context, e *balance.Entry) error
	findEntryFn       func(ctx context.Context, requestID, direction string) (*balance.Entry, error)
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) balance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBalanceRepository) FindAccount(ctx context.Context, employeeID string, year int) (*balance.Account, error) {
	if f.findAccountFn != nil {
		return f.findAccountFn(ctx, employeeID, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) ApplyCounters(ctx context.Context, accountID string, c balance.Consumption) (bool, error) {
	if f.applyCountersFn != nil {
		return f.applyCountersFn(ctx, accountID, c)
	}
	return true, nil
}

func (f *fakeBalanceRepository) ReverseCounters(ctx context.Context, accountID string, c balance.Consumption) (bool, error) {
	if f.reverseCountersFn != nil {
		return f.reverseCountersFn(ctx, accountID, c)
	}
	return true, nil
}

func (f *fakeBalanceRepository) InsertEntry(ctx context.Context, e *balance.Entry) error {
	if f.insertEntryFn != nil {
		return f.insertEntryFn(ctx, e)
	}
	return nil
}

func (f *fakeBalanceRepository) FindEntry(ctx context.Context, requestID, direction string) (*balance.Entry, error) {
	if f.findEntryFn != nil {
		return f.findEntryFn(ctx, requestID, direction)
	}
	return nil, gorm.ErrRecordNotFound
}

func newTestAccount(employeeID uuid.UUID, year int) *balance.Account {
	return &balance.Account{
		ID:                 uuid.New(),
		EmployeeID:         employeeID,
		Year:               year,
		EntitlementDays:    22,
		CarriedForwardDays: 3,
	}
}

func TestBalanceService_Remaining(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()

	t.Run("success", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findAccountFn: func(ctx context.Context, eid string, year int) (*balance.Account, error) {
				assert.Equal(t, employeeID.String(), eid)
				assert.Equal(t, 2026, year)
				a := newTestAccount(employeeID, year)
				a.UsedDays = 4
				return a, nil
			},
		}
		svc := balance.NewService(repo)

		resp, err := svc.Remaining(ctx, employeeID.String(), 2026)
		assert.NoError(t, err)
		assert.Equal(t, 18, resp.Remaining.CurrentYear)
		assert.Equal(t, 3, resp.Remaining.CarryForward)
	})

	t.Run("negative invalid employee id", func(t *testing.T) {
		svc := balance.NewService(&fakeBalanceRepository{})
		_, err := svc.Remaining(ctx, "not-a-uuid", 2026)
		assert.ErrorIs(t, err, balanceerrors.ErrInvalidEmployeeID)
	})

	t.Run("negative missing account", func(t *testing.T) {
		svc := balance.NewService(&fakeBalanceRepository{})
		_, err := svc.Remaining(ctx, employeeID.String(), 2026)
		assert.ErrorIs(t, err, balanceerrors.ErrAccountNotFound)
	})
}

func TestBalanceService_ApplyForRequest(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	requestID := uuid.New()

	withTx := func(t *testing.T) (*sql.DB, *sql.Tx) {
		t.Helper()
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		mock.ExpectBegin()
		tx, err := db.Begin()
		assert.NoError(t, err)
		return db, tx
	}

	t.Run("success records entry then counters", func(t *testing.T) {
		db, tx := withTx(t)
		defer db.Close()

		var inserted *balance.Entry
		var countersApplied bool
		repo := &fakeBalanceRepository{
			findAccountFn: func(ctx context.Context, eid string, year int) (*balance.Account, error) {
				return newTestAccount(employeeID, year), nil
			},
			insertEntryFn: func(ctx context.Context, e *balance.Entry) error {
				inserted = e
				return nil
			},
			applyCountersFn: func(ctx context.Context, accountID string, c balance.Consumption) (bool, error) {
				countersApplied = true
				assert.Equal(t, balance.Consumption{CarryForward: 3, CurrentYear: 2}, c)
				return true, nil
			},
		}
		svc := balance.NewService(repo)

		err := svc.ApplyForRequest(ctx, tx, requestID, employeeID, 2026, balance.Consumption{CarryForward: 3, CurrentYear: 2})
		assert.NoError(t, err)
		assert.True(t, countersApplied)
		assert.Equal(t, requestID, inserted.RequestID)
		assert.Equal(t, balance.EntryDirectionApply, inserted.Direction)
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		db, tx := withTx(t)
		defer db.Close()

		countersTouched := false
		repo := &fakeBalanceRepository{
			findAccountFn: func(ctx context.Context, eid string, year int) (*balance.Account, error) {
				return newTestAccount(employeeID, year), nil
			},
			insertEntryFn: func(ctx context.Context, e *balance.Entry) error {
				return balance.ErrDuplicateEntry
			},
			applyCountersFn: func(ctx context.Context, accountID string, c balance.Consumption) (bool, error) {
				countersTouched = true
				return true, nil
			},
		}
		svc := balance.NewService(repo)

		err := svc.ApplyForRequest(ctx, tx, requestID, employeeID, 2026, balance.Consumption{CurrentYear: 2})
		assert.NoError(t, err)
		assert.False(t, countersTouched)
	})

	t.Run("negative insufficient balance before any write", func(t *testing.T) {
		db, tx := withTx(t)
		defer db.Close()

		entryInserted := false
		repo := &fakeBalanceRepository{
			findAccountFn: func(ctx context.Context, eid string, year int) (*balance.Account, error) {
				a := newTestAccount(employeeID, year)
				a.UsedDays = 22
				return a, nil
			},
			insertEntryFn: func(ctx context.Context, e *balance.Entry) error {
				entryInserted = true
				return nil
			},
		}
		svc := balance.NewService(repo)

		err := svc.ApplyForRequest(ctx, tx, requestID, employeeID, 2026, balance.Consumption{CurrentYear: 1})
		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
		assert.False(t, entryInserted)
	})

	t.Run("negative guarded update loses to concurrent drain", func(t *testing.T) {
		db, tx := withTx(t)
		defer db.Close()

		repo := &fakeBalanceRepository{
			findAccountFn: func(ctx context.Context, eid string, year int) (*balance.Account, error) {
				return newTestAccount(employeeID, year), nil
			},
			applyCountersFn: func(ctx context.Context, accountID string, c balance.Consumption) (bool, error) {
				return false, nil
			},
		}
		svc := balance.NewService(repo)

		err := svc.ApplyForRequest(ctx, tx, requestID, employeeID, 2026, balance.Consumption{CurrentYear: 2})
		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
	})
}

func TestBalanceService_ReverseForRequest(t *testing.T) {
	ctx := context.Background()
	employeeID := uuid.New()
	requestID := uuid.New()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	t.Run("negative reversal below zero", func(t *testing.T) {
		repo := &fakeBalanceRepository{
			findAccountFn: func(ctx context.Context, eid string, year int) (*balance.Account, error) {
				return newTestAccount(employeeID, year), nil
			},
		}
		svc := balance.NewService(repo)

		err := svc.ReverseForRequest(ctx, tx, requestID, employeeID, 2026, balance.Consumption{CurrentYear: 1})
		assert.ErrorIs(t, err, balanceerrors.ErrReversalBelowZero)
	})
}
