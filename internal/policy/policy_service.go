package policy

import (
	"context"
	"errors"
	"time"

	policyerrors "leavedesk/internal/policy/errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Catalog is the read-only policy surface the rest of the service consumes.
// It never mutates configuration; admin CRUD lives in a separate system.
//
//go:generate mockgen -source=policy_service.go -destination=mock/policy_service_mock.go -package=mock
type Catalog interface {
	PolicyYear(ctx context.Context, year int) (PolicyYear, error)
	ListPolicyYears(ctx context.Context) ([]PolicyYear, error)
	ListLeaveTypes(ctx context.Context) ([]LeaveTypeRule, error)
	LeaveTypeRule(ctx context.Context, code string) (LeaveTypeRule, error)

	// EntitlementForGrade scans the year's grade rules in order; the first
	// match wins. Returns nil when no range covers the grade.
	EntitlementForGrade(ctx context.Context, grade, year int) (*int, error)

	// AnnualEntitlement resolves the full precedence chain:
	// grade rule, then policy fallback, then type default, then zero.
	AnnualEntitlement(ctx context.Context, grade, year int, rule LeaveTypeRule) (int, error)

	// CarryForwardWindowOpen reports whether date is on or before the year's
	// carry-forward expiry.
	CarryForwardWindowOpen(ctx context.Context, date time.Time, year int) (bool, error)

	EscalationDays(ctx context.Context, year int) (int, error)
}

type catalog struct {
	repo   Repository
	logger *zap.Logger
}

func NewCatalog(repo Repository, logger ...*zap.Logger) Catalog {
	l := zap.L().Named("policy.catalog")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("policy.catalog")
	}
	return &catalog{repo: repo, logger: l}
}

func (c *catalog) PolicyYear(ctx context.Context, year int) (PolicyYear, error) {
	p, err := c.repo.FindPolicyYear(ctx, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PolicyYear{}, policyerrors.ErrPolicyYearNotFound
		}
		return PolicyYear{}, err
	}
	return *p, nil
}

func (c *catalog) ListPolicyYears(ctx context.Context) ([]PolicyYear, error) {
	return c.repo.FindAllPolicyYears(ctx)
}

func (c *catalog) ListLeaveTypes(ctx context.Context) ([]LeaveTypeRule, error) {
	return c.repo.FindActiveLeaveTypes(ctx)
}

func (c *catalog) LeaveTypeRule(ctx context.Context, code string) (LeaveTypeRule, error) {
	rule, err := c.repo.FindLeaveTypeRule(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.logger.Warn("leave type lookup miss", zap.String("code", code))
			return LeaveTypeRule{}, policyerrors.ErrLeaveTypeNotFound
		}
		return LeaveTypeRule{}, err
	}
	return *rule, nil
}

func (c *catalog) EntitlementForGrade(ctx context.Context, grade, year int) (*int, error) {
	rules, err := c.repo.FindGradeEntitlements(ctx, year)
	if err != nil {
		return nil, err
	}
	return entitlementFromRules(rules, grade), nil
}

func (c *catalog) AnnualEntitlement(ctx context.Context, grade, year int, rule LeaveTypeRule) (int, error) {
	if days, err := c.EntitlementForGrade(ctx, grade, year); err != nil {
		return 0, err
	} else if days != nil {
		return *days, nil
	}

	p, err := c.repo.FindPolicyYear(ctx, year)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}
	if err == nil && p.AnnualEntitlementFallback != nil {
		return *p.AnnualEntitlementFallback, nil
	}

	if rule.DefaultDays != nil {
		return *rule.DefaultDays, nil
	}

	c.logger.Warn("no entitlement source matched",
		zap.Int("grade", grade),
		zap.Int("year", year),
		zap.String("leave_type", rule.Code),
	)
	return 0, nil
}

func (c *catalog) CarryForwardWindowOpen(ctx context.Context, date time.Time, year int) (bool, error) {
	p, err := c.repo.FindPolicyYear(ctx, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, policyerrors.ErrPolicyYearNotFound
		}
		return false, err
	}
	return carryForwardWindowOpen(date, p.CarryForwardExpiry), nil
}

func (c *catalog) EscalationDays(ctx context.Context, year int) (int, error) {
	p, err := c.repo.FindPolicyYear(ctx, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, policyerrors.ErrPolicyYearNotFound
		}
		return 0, err
	}
	return p.EscalationDays, nil
}

// entitlementFromRules is the linear first-match-wins scan over grade ranges.
func entitlementFromRules(rules []GradeEntitlement, grade int) *int {
	for _, r := range rules {
		if grade >= r.GradeMin && grade <= r.GradeMax {
			days := r.AnnualDays
			return &days
		}
	}
	return nil
}

// carryForwardWindowOpen: the window closes strictly after the expiry date.
func carryForwardWindowOpen(date, expiry time.Time) bool {
	return !date.After(expiry)
}
