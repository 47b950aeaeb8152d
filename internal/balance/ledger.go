package balance

import (
	balanceerrors "leavedesk/internal/balance/errors"
)

// The ledger functions are pure: they take an account by value and return the
// updated copy. All persistence happens in the service layer inside one
// transaction, so a failed apply leaves the stored row untouched.

// ComputeRemaining clamps at zero so transiently inconsistent stored values
// never surface as negative balances.
func ComputeRemaining(a Account) Remaining {
	current := a.EntitlementDays - a.UsedDays
	if current < 0 {
		current = 0
	}
	carry := a.CarriedForwardDays - a.CarriedForwardUsedDays
	if carry < 0 {
		carry = 0
	}
	return Remaining{CurrentYear: current, CarryForward: carry}
}

// Apply consumes days from the account. Fails closed: either bucket short
// means no mutation at all.
func Apply(a Account, c Consumption) (Account, error) {
	if c.CarryForward < 0 || c.CurrentYear < 0 {
		return a, balanceerrors.ErrNegativeConsumption
	}

	rem := ComputeRemaining(a)
	if c.CarryForward > rem.CarryForward || c.CurrentYear > rem.CurrentYear {
		return a, balanceerrors.ErrInsufficientBalance
	}

	a.UsedDays += c.CurrentYear
	a.CarriedForwardUsedDays += c.CarryForward
	return a, nil
}

// Reverse is the compensating inverse of Apply, used only when an approved
// request is cancelled or rejected after the fact. It refuses to take either
// used counter below zero.
func Reverse(a Account, c Consumption) (Account, error) {
	if c.CarryForward < 0 || c.CurrentYear < 0 {
		return a, balanceerrors.ErrNegativeConsumption
	}
	if a.UsedDays-c.CurrentYear < 0 || a.CarriedForwardUsedDays-c.CarryForward < 0 {
		return a, balanceerrors.ErrReversalBelowZero
	}

	a.UsedDays -= c.CurrentYear
	a.CarriedForwardUsedDays -= c.CarryForward
	return a, nil
}
