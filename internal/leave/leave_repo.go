package leave

import (
	"context"
	"database/sql"
	"time"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, l *LeaveRequest) error
	FindByID(ctx context.Context, id string) (*LeaveRequest, error)
	FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error)
	FindByApprover(ctx context.Context, approverID string) ([]LeaveRequest, error)
	FindAll(ctx context.Context) ([]LeaveRequest, error)
	FindPending(ctx context.Context) ([]LeaveRequest, error)

	// UpdateTransition persists a transition with a compare-and-swap on the
	// expected status. Returns false (no mutation) when the stored status
	// differs, i.e. a concurrent transition won.
	UpdateTransition(ctx context.Context, l *LeaveRequest, expected Status) (bool, error)

	HasOverlappingPeriod(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error)
}

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

func (r *repository) Create(ctx context.Context, l *LeaveRequest) error {
	if r.tx != nil {
		_, err := r.tx.ExecContext(ctx, `
			INSERT INTO leave_requests (
				id, booking_ref, requester_id, leave_type_code,
				start_date, end_date, working_days, reason, status,
				year, consumption_carry_forward, consumption_current_year,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now(), now())
		`, l.ID, l.BookingRef, l.RequesterID, l.LeaveTypeCode,
			l.StartDate, l.EndDate, l.WorkingDays, l.Reason, l.Status,
			l.Year, l.ConsumptionCarryForward, l.ConsumptionCurrentYear)
		return err
	}
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *repository) FindByID(ctx context.Context, id string) (*LeaveRequest, error) {
	var l LeaveRequest
	err := r.db.WithContext(ctx).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindByRequester(ctx context.Context, requesterID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("requester_id = ?", requesterID).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByApprover(ctx context.Context, approverID string) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("current_approver_id = ?", approverID).
		Where("status IN ?", []Status{StatusPendingLM, StatusPendingGM}).
		Order("assigned_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindAll(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Order("start_date DESC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindPending(ctx context.Context) ([]LeaveRequest, error) {
	var leaves []LeaveRequest
	err := r.db.WithContext(ctx).
		Where("status IN ?", []Status{StatusPendingLM, StatusPendingGM}).
		Order("assigned_at ASC").
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) UpdateTransition(ctx context.Context, l *LeaveRequest, expected Status) (bool, error) {
	query := `
		UPDATE leave_requests
		SET status = $1,
		    reason = $2,
		    current_approver_id = $3,
		    assigned_at = $4,
		    submitted_at = $5,
		    decided_at = $6,
		    decided_by = $7,
		    decision_note = $8,
		    updated_at = now()
		WHERE id = $9 AND status = $10
	`
	args := []any{
		l.Status, l.Reason, l.CurrentApproverID,
		l.AssignedAt, l.SubmittedAt, l.DecidedAt, l.DecidedBy, l.DecisionNote,
		l.ID, expected,
	}

	if r.tx != nil {
		res, err := r.tx.ExecContext(ctx, query, args...)
		if err != nil {
			return false, err
		}
		affected, err := res.RowsAffected()
		return affected > 0, err
	}

	res := r.db.WithContext(ctx).Exec(query, args...)
	return res.RowsAffected > 0, res.Error
}

func (r *repository) HasOverlappingPeriod(ctx context.Context, requesterID string, startDate, endDate time.Time, excludeID *string) (bool, error) {
	db := r.db.WithContext(ctx).
		Model(&LeaveRequest{}).
		Where("requester_id = ?", requesterID).
		Where("status NOT IN ?", []Status{StatusCancelled, StatusRejected}).
		Where("NOT (end_date < ? OR start_date > ?)", startDate, endDate)

	if excludeID != nil && *excludeID != "" {
		db = db.Where("id <> ?", *excludeID)
	}

	var count int64
	err := db.Count(&count).Error
	return count > 0, err
}
