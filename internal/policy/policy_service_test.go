package policy_test

import (
	"context"
	"testing"
	"time"

	"leavedesk/internal/policy"
	policyerrors "leavedesk/internal/policy/errors"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakePolicyRepository struct {
	findPolicyYearFn        func(ctx context.Context, year int) (*policy.PolicyYear, error)
	findAllPolicyYearsFn    func(ctx context.Context) ([]policy.PolicyYear, error)
	findGradeEntitlementsFn func(ctx context.Context, year int) ([]policy.GradeEntitlement, error)
	findLeaveTypeRuleFn     func(ctx context.Context, code string) (*policy.LeaveTypeRule, error)
	findActiveLeaveTypesFn  func(ctx context.Context) ([]policy.LeaveTypeRule, error)
}

func (f *fakePolicyRepository) FindPolicyYear(ctx context.Context, year int) (*policy.PolicyYear, error) {
	if f.findPolicyYearFn != nil {
		return f.findPolicyYearFn(ctx, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePolicyRepository) FindAllPolicyYears(ctx context.Context) ([]policy.PolicyYear, error) {
	if f.findAllPolicyYearsFn != nil {
		return f.findAllPolicyYearsFn(ctx)
	}
	return nil, nil
}

func (f *fakePolicyRepository) FindGradeEntitlements(ctx context.Context, year int) ([]policy.GradeEntitlement, error) {
	if f.findGradeEntitlementsFn != nil {
		return f.findGradeEntitlementsFn(ctx, year)
	}
	return nil, nil
}

func (f *fakePolicyRepository) FindLeaveTypeRule(ctx context.Context, code string) (*policy.LeaveTypeRule, error) {
	if f.findLeaveTypeRuleFn != nil {
		return f.findLeaveTypeRuleFn(ctx, code)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePolicyRepository) FindActiveLeaveTypes(ctx context.Context) ([]policy.LeaveTypeRule, error) {
	if f.findActiveLeaveTypesFn != nil {
		return f.findActiveLeaveTypesFn(ctx)
	}
	return nil, nil
}

func intPtr(v int) *int { return &v }

func gradeRule(min, max, days, position int) policy.GradeEntitlement {
	return policy.GradeEntitlement{GradeMin: min, GradeMax: max, AnnualDays: days, Position: position}
}

func TestCatalog_EntitlementForGrade(t *testing.T) {
	ctx := context.Background()

	repo := &fakePolicyRepository{
		findGradeEntitlementsFn: func(ctx context.Context, year int) ([]policy.GradeEntitlement, error) {
			return []policy.GradeEntitlement{
				gradeRule(1, 5, 18, 0),
				gradeRule(6, 10, 22, 1),
				gradeRule(8, 15, 26, 2), // overlaps the previous range on purpose
			}, nil
		},
	}
	catalog := policy.NewCatalog(repo)

	t.Run("first match wins on overlap", func(t *testing.T) {
		days, err := catalog.EntitlementForGrade(ctx, 10, 2026)
		assert.NoError(t, err)
		assert.NotNil(t, days)
		assert.Equal(t, 22, *days)
	})

	t.Run("boundary grades are inclusive", func(t *testing.T) {
		days, err := catalog.EntitlementForGrade(ctx, 5, 2026)
		assert.NoError(t, err)
		assert.Equal(t, 18, *days)

		days, err = catalog.EntitlementForGrade(ctx, 6, 2026)
		assert.NoError(t, err)
		assert.Equal(t, 22, *days)
	})

	t.Run("no range matches", func(t *testing.T) {
		days, err := catalog.EntitlementForGrade(ctx, 20, 2026)
		assert.NoError(t, err)
		assert.Nil(t, days)
	})
}

func TestCatalog_AnnualEntitlement(t *testing.T) {
	ctx := context.Background()
	annual := policy.LeaveTypeRule{Code: "ANNUAL", DefaultDays: intPtr(12)}

	t.Run("grade rule takes precedence", func(t *testing.T) {
		repo := &fakePolicyRepository{
			findGradeEntitlementsFn: func(ctx context.Context, year int) ([]policy.GradeEntitlement, error) {
				return []policy.GradeEntitlement{gradeRule(1, 20, 22, 0)}, nil
			},
			findPolicyYearFn: func(ctx context.Context, year int) (*policy.PolicyYear, error) {
				return &policy.PolicyYear{Year: year, AnnualEntitlementFallback: intPtr(15)}, nil
			},
		}
		days, err := policy.NewCatalog(repo).AnnualEntitlement(ctx, 10, 2026, annual)
		assert.NoError(t, err)
		assert.Equal(t, 22, days)
	})

	t.Run("policy fallback when no grade rule", func(t *testing.T) {
		repo := &fakePolicyRepository{
			findPolicyYearFn: func(ctx context.Context, year int) (*policy.PolicyYear, error) {
				return &policy.PolicyYear{Year: year, AnnualEntitlementFallback: intPtr(15)}, nil
			},
		}
		days, err := policy.NewCatalog(repo).AnnualEntitlement(ctx, 10, 2026, annual)
		assert.NoError(t, err)
		assert.Equal(t, 15, days)
	})

	t.Run("type default when year has no fallback", func(t *testing.T) {
		repo := &fakePolicyRepository{
			findPolicyYearFn: func(ctx context.Context, year int) (*policy.PolicyYear, error) {
				return &policy.PolicyYear{Year: year}, nil
			},
		}
		days, err := policy.NewCatalog(repo).AnnualEntitlement(ctx, 10, 2026, annual)
		assert.NoError(t, err)
		assert.Equal(t, 12, days)
	})

	t.Run("zero when nothing matches", func(t *testing.T) {
		repo := &fakePolicyRepository{}
		days, err := policy.NewCatalog(repo).AnnualEntitlement(ctx, 10, 2026, policy.LeaveTypeRule{Code: "ANNUAL"})
		assert.NoError(t, err)
		assert.Equal(t, 0, days)
	})
}

func TestCatalog_CarryForwardWindowOpen(t *testing.T) {
	ctx := context.Background()
	expiry := time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC)

	repo := &fakePolicyRepository{
		findPolicyYearFn: func(ctx context.Context, year int) (*policy.PolicyYear, error) {
			if year != 2026 {
				return nil, gorm.ErrRecordNotFound
			}
			return &policy.PolicyYear{Year: year, CarryForwardExpiry: expiry}, nil
		},
	}
	catalog := policy.NewCatalog(repo)

	t.Run("open before expiry", func(t *testing.T) {
		open, err := catalog.CarryForwardWindowOpen(ctx, expiry.AddDate(0, 0, -1), 2026)
		assert.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("open on the expiry date itself", func(t *testing.T) {
		open, err := catalog.CarryForwardWindowOpen(ctx, expiry, 2026)
		assert.NoError(t, err)
		assert.True(t, open)
	})

	t.Run("closed the day after", func(t *testing.T) {
		open, err := catalog.CarryForwardWindowOpen(ctx, expiry.AddDate(0, 0, 1), 2026)
		assert.NoError(t, err)
		assert.False(t, open)
	})

	t.Run("negative unconfigured year", func(t *testing.T) {
		_, err := catalog.CarryForwardWindowOpen(ctx, expiry, 2031)
		assert.ErrorIs(t, err, policyerrors.ErrPolicyYearNotFound)
	})
}

func TestCatalog_LeaveTypeRule(t *testing.T) {
	ctx := context.Background()

	t.Run("negative unknown code", func(t *testing.T) {
		catalog := policy.NewCatalog(&fakePolicyRepository{})
		_, err := catalog.LeaveTypeRule(ctx, "SABBATICAL")
		assert.ErrorIs(t, err, policyerrors.ErrLeaveTypeNotFound)
	})
}
