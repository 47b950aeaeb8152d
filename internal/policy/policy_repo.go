package policy

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=policy_repo.go -destination=mock/policy_repo_mock.go -package=mock
type Repository interface {
	FindPolicyYear(ctx context.Context, year int) (*PolicyYear, error)
	FindAllPolicyYears(ctx context.Context) ([]PolicyYear, error)
	FindGradeEntitlements(ctx context.Context, year int) ([]GradeEntitlement, error)
	FindLeaveTypeRule(ctx context.Context, code string) (*LeaveTypeRule, error)
	FindActiveLeaveTypes(ctx context.Context) ([]LeaveTypeRule, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindPolicyYear(ctx context.Context, year int) (*PolicyYear, error) {
	var p PolicyYear
	err := r.db.WithContext(ctx).
		First(&p, "year = ?", year).Error
	return &p, err
}

func (r *repository) FindAllPolicyYears(ctx context.Context) ([]PolicyYear, error) {
	var years []PolicyYear
	err := r.db.WithContext(ctx).
		Order("year DESC").
		Find(&years).Error
	return years, err
}

func (r *repository) FindGradeEntitlements(ctx context.Context, year int) ([]GradeEntitlement, error) {
	var rules []GradeEntitlement
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Order("position ASC").
		Find(&rules).Error
	return rules, err
}

func (r *repository) FindLeaveTypeRule(ctx context.Context, code string) (*LeaveTypeRule, error) {
	var rule LeaveTypeRule
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		First(&rule, "code = ?", code).Error
	return &rule, err
}

func (r *repository) FindActiveLeaveTypes(ctx context.Context) ([]LeaveTypeRule, error) {
	var rules []LeaveTypeRule
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("code ASC").
		Find(&rules).Error
	return rules, err
}
