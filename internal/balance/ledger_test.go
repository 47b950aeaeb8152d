package balance_test

import (
	"testing"

	"leavedesk/internal/balance"
	balanceerrors "leavedesk/internal/balance/errors"

	"github.com/stretchr/testify/assert"
)

func TestComputeRemaining(t *testing.T) {
	t.Run("normal account", func(t *testing.T) {
		rem := balance.ComputeRemaining(balance.Account{
			EntitlementDays:        22,
			UsedDays:               5,
			CarriedForwardDays:     3,
			CarriedForwardUsedDays: 1,
		})
		assert.Equal(t, balance.Remaining{CurrentYear: 17, CarryForward: 2}, rem)
	})

	t.Run("clamps negative buckets to zero", func(t *testing.T) {
		rem := balance.ComputeRemaining(balance.Account{
			EntitlementDays:        10,
			UsedDays:               12,
			CarriedForwardDays:     2,
			CarriedForwardUsedDays: 5,
		})
		assert.Equal(t, balance.Remaining{}, rem)
	})
}

func TestApply(t *testing.T) {
	base := balance.Account{
		EntitlementDays:    22,
		CarriedForwardDays: 3,
	}

	t.Run("consumes both buckets", func(t *testing.T) {
		a, err := balance.Apply(base, balance.Consumption{CarryForward: 3, CurrentYear: 2})
		assert.NoError(t, err)
		assert.Equal(t, 2, a.UsedDays)
		assert.Equal(t, 3, a.CarriedForwardUsedDays)
	})

	t.Run("negative insufficient balance leaves account untouched", func(t *testing.T) {
		a, err := balance.Apply(base, balance.Consumption{CarryForward: 4, CurrentYear: 0})
		assert.ErrorIs(t, err, balanceerrors.ErrInsufficientBalance)
		assert.Equal(t, base, a)
	})

	t.Run("negative consumption rejected", func(t *testing.T) {
		_, err := balance.Apply(base, balance.Consumption{CarryForward: -1})
		assert.ErrorIs(t, err, balanceerrors.ErrNegativeConsumption)
	})
}

func TestReverse(t *testing.T) {
	t.Run("round trip restores the account", func(t *testing.T) {
		base := balance.Account{
			EntitlementDays:    22,
			CarriedForwardDays: 3,
		}
		c := balance.Consumption{CarryForward: 2, CurrentYear: 3}

		applied, err := balance.Apply(base, c)
		assert.NoError(t, err)

		restored, err := balance.Reverse(applied, c)
		assert.NoError(t, err)
		assert.Equal(t, base, restored)
	})

	t.Run("negative refuses to go below zero", func(t *testing.T) {
		a := balance.Account{EntitlementDays: 22, UsedDays: 1}
		_, err := balance.Reverse(a, balance.Consumption{CurrentYear: 2})
		assert.ErrorIs(t, err, balanceerrors.ErrReversalBelowZero)
	})
}
