package balance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=balance_repo.go -destination=mock/balance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindAccount(ctx context.Context, employeeID string, year int) (*Account, error)

	// ApplyCounters increments the used counters, guarded in SQL so the
	// account invariants hold even under concurrent approvals. Returns false
	// without mutating when either bucket would overdraw.
	ApplyCounters(ctx context.Context, accountID string, c Consumption) (bool, error)

	// ReverseCounters decrements the used counters, refusing to go below zero.
	ReverseCounters(ctx context.Context, accountID string, c Consumption) (bool, error)

	InsertEntry(ctx context.Context, e *Entry) error
	FindEntry(ctx context.Context, requestID, direction string) (*Entry, error)
}

// ErrDuplicateEntry marks an insert that hit the (request_id, direction)
// unique index, i.e. this mutation was already applied.
var ErrDuplicateEntry = errors.New("balance entry already recorded for this request")

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

func (r *repository) FindAccount(ctx context.Context, employeeID string, year int) (*Account, error) {
	var a Account
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		First(&a, "year = ?", year).Error
	return &a, err
}

func (r *repository) ApplyCounters(ctx context.Context, accountID string, c Consumption) (bool, error) {
	affected, err := r.exec(ctx, `
		UPDATE balance_accounts
		SET used_days = used_days + $1,
		    carried_forward_used_days = carried_forward_used_days + $2,
		    updated_at = now()
		WHERE id = $3
		  AND used_days + $1 <= entitlement_days
		  AND carried_forward_used_days + $2 <= carried_forward_days
	`, c.CurrentYear, c.CarryForward, accountID)
	return affected > 0, err
}

func (r *repository) ReverseCounters(ctx context.Context, accountID string, c Consumption) (bool, error) {
	affected, err := r.exec(ctx, `
		UPDATE balance_accounts
		SET used_days = used_days - $1,
		    carried_forward_used_days = carried_forward_used_days - $2,
		    updated_at = now()
		WHERE id = $3
		  AND used_days - $1 >= 0
		  AND carried_forward_used_days - $2 >= 0
	`, c.CurrentYear, c.CarryForward, accountID)
	return affected > 0, err
}

func (r *repository) InsertEntry(ctx context.Context, e *Entry) error {
	_, err := r.exec(ctx, `
		INSERT INTO balance_entries (
			id, request_id, direction, employee_id, year,
			carry_forward_days, current_year_days, created_at
		) VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, now())
	`, e.RequestID, e.Direction, e.EmployeeID, e.Year, e.CarryForwardDays, e.CurrentYearDays)
	if isUniqueViolation(err) {
		return ErrDuplicateEntry
	}
	return err
}

func (r *repository) FindEntry(ctx context.Context, requestID, direction string) (*Entry, error) {
	var e Entry
	err := r.db.WithContext(ctx).
		Where("request_id = ?", requestID).
		First(&e, "direction = ?", direction).Error
	return &e, err
}

// exec routes writes through the enclosing sql.Tx when one is set, so ledger
// mutation commits atomically with the request transition.
func (r *repository) exec(ctx context.Context, query string, args ...any) (int64, error) {
	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		return res.RowsAffected()
	}
	res := r.db.WithContext(ctx).Exec(query, args...)
	return res.RowsAffected, res.Error
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
