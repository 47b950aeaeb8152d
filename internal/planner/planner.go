// Package planner computes how a leave request's working days are split
// between carry-forward and current-year balance. Everything here is pure:
// callers fetch balances and policy rules, the planner only arithmetics.
package planner

import (
	"fmt"
	"time"

	"leavedesk/internal/balance"
	"leavedesk/internal/policy"
)

type Strategy string

const (
	// StrategySmart drains the expiring carry-forward bucket first to
	// minimize forfeiture.
	StrategySmart       Strategy = "SMART"
	StrategyCurrentOnly Strategy = "CURRENT_ONLY"
	StrategyCarryOnly   Strategy = "CARRY_ONLY"
)

func ParseStrategy(s string) (Strategy, bool) {
	switch Strategy(s) {
	case StrategySmart, StrategyCurrentOnly, StrategyCarryOnly:
		return Strategy(s), true
	}
	return "", false
}

type Input struct {
	RequestedDays     int
	Remaining         balance.Remaining
	WithinCarryWindow bool
	Strategy          Strategy
	Rule              policy.LeaveTypeRule
}

type Result struct {
	Consumption balance.Consumption
	Feasible    bool
	Reason      string // set when infeasible
	Warnings    []string
}

// Compute splits RequestedDays across the two buckets under the chosen
// strategy. The sum of the returned consumption always equals RequestedDays
// when feasible.
func Compute(in Input) Result {
	res := Result{}

	if in.RequestedDays <= 0 {
		res.Reason = "requested days must be positive"
		return res
	}

	if blocked, reason := fixedDurationBlocks(in.Rule, in.RequestedDays); blocked {
		res.Reason = reason
		return res
	}
	res.Warnings = append(res.Warnings, fixedDurationWarnings(in.Rule, in.RequestedDays)...)

	switch in.Strategy {
	case StrategySmart:
		usableCarry := 0
		if in.WithinCarryWindow {
			usableCarry = min(in.Remaining.CarryForward, in.RequestedDays)
		}
		currentPortion := in.RequestedDays - usableCarry
		if currentPortion > in.Remaining.CurrentYear {
			res.Reason = "insufficient balance across carry-forward and current year"
			return res
		}
		res.Consumption = balance.Consumption{CarryForward: usableCarry, CurrentYear: currentPortion}

	case StrategyCurrentOnly:
		if in.RequestedDays > in.Remaining.CurrentYear {
			res.Reason = "insufficient current-year balance"
			return res
		}
		res.Consumption = balance.Consumption{CurrentYear: in.RequestedDays}
		if in.Remaining.CarryForward > 0 && in.WithinCarryWindow {
			res.Warnings = append(res.Warnings,
				"carry-forward balance is left unused and may expire")
		}

	case StrategyCarryOnly:
		if !in.WithinCarryWindow {
			res.Reason = "carry-forward window is closed"
			return res
		}
		if in.RequestedDays > in.Remaining.CarryForward {
			res.Reason = "insufficient carry-forward balance"
			return res
		}
		res.Consumption = balance.Consumption{CarryForward: in.RequestedDays}

	default:
		res.Reason = fmt.Sprintf("unknown strategy %q", in.Strategy)
		return res
	}

	if !in.WithinCarryWindow && in.Remaining.CarryForward > 0 {
		res.Warnings = append(res.Warnings,
			"carry-forward balance has passed its expiry window")
	}

	res.Feasible = true
	return res
}

// fixedDurationBlocks: only a fixed-day-only type rejects outright, and only
// when the request exceeds the fixed length.
func fixedDurationBlocks(rule policy.LeaveTypeRule, requestedDays int) (bool, string) {
	if rule.FixedDayOnly() && requestedDays > *rule.FixedDurationDays {
		return true, fmt.Sprintf("%s leave is fixed at %d day(s)", rule.Name, *rule.FixedDurationDays)
	}
	return false, ""
}

func fixedDurationWarnings(rule policy.LeaveTypeRule, requestedDays int) []string {
	if rule.FixedDurationDays == nil || requestedDays == *rule.FixedDurationDays {
		return nil
	}
	if rule.FixedDayOnly() && requestedDays > *rule.FixedDurationDays {
		return nil // already a hard block
	}
	return []string{fmt.Sprintf(
		"%s leave usually lasts %d day(s); this request covers %d",
		rule.Name, *rule.FixedDurationDays, requestedDays,
	)}
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// WorkingDays counts Monday..Friday in the inclusive [start, end] range.
// No holiday calendar. Returns 0 when end precedes start.
func WorkingDays(start, end time.Time) int {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return 0
	}

	days := 0
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		switch d.Weekday() {
		case time.Saturday, time.Sunday:
		default:
			days++
		}
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
