package leave_test

import (
	"testing"
	"time"

	"leavedesk/internal/employee"
	"leavedesk/internal/leave"
	leaveerrors "leavedesk/internal/leave/errors"
	"leavedesk/internal/orgchart"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func uuidPtr() *uuid.UUID {
	id := uuid.New()
	return &id
}

func TestRouteSubmit(t *testing.T) {
	lm := uuidPtr()
	gm := uuidPtr()

	t.Run("staff routes to line manager", func(t *testing.T) {
		a, err := leave.RouteSubmit(employee.RoleStaff, orgchart.ApprovalChain{
			LineManagerID:    lm,
			GeneralManagerID: gm,
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPendingLM, a.Status)
		assert.Equal(t, *lm, a.ApproverID)
	})

	t.Run("line manager skips straight to general manager", func(t *testing.T) {
		a, err := leave.RouteSubmit(employee.RoleLineManager, orgchart.ApprovalChain{
			LineManagerID:    lm,
			GeneralManagerID: gm,
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPendingGM, a.Status)
		assert.Equal(t, *gm, a.ApproverID)
	})

	t.Run("general manager also routes to the GM slot", func(t *testing.T) {
		a, err := leave.RouteSubmit(employee.RoleGeneralManager, orgchart.ApprovalChain{
			GeneralManagerID: gm,
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPendingGM, a.Status)
	})

	t.Run("negative staff without line manager", func(t *testing.T) {
		_, err := leave.RouteSubmit(employee.RoleStaff, orgchart.ApprovalChain{
			GeneralManagerID: gm,
		})
		assert.ErrorIs(t, err, leaveerrors.ErrMissingApprover)
	})

	t.Run("negative manager without general manager", func(t *testing.T) {
		_, err := leave.RouteSubmit(employee.RoleLineManager, orgchart.ApprovalChain{
			LineManagerID: lm,
		})
		assert.ErrorIs(t, err, leaveerrors.ErrMissingApprover)
	})
}

func TestRouteApproval(t *testing.T) {
	gm := uuidPtr()

	t.Run("LM approval advances to PENDING_GM", func(t *testing.T) {
		next, approver, err := leave.RouteApproval(leave.StatusPendingLM, orgchart.ApprovalChain{
			GeneralManagerID: gm,
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPendingGM, next)
		assert.Equal(t, gm, approver)
	})

	t.Run("GM approval is terminal", func(t *testing.T) {
		next, approver, err := leave.RouteApproval(leave.StatusPendingGM, orgchart.ApprovalChain{})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, next)
		assert.Nil(t, approver)
	})

	t.Run("negative LM approval with no GM configured", func(t *testing.T) {
		_, _, err := leave.RouteApproval(leave.StatusPendingLM, orgchart.ApprovalChain{})
		assert.ErrorIs(t, err, leaveerrors.ErrMissingApprover)
	})

	t.Run("negative non-pending status", func(t *testing.T) {
		_, _, err := leave.RouteApproval(leave.StatusDraft, orgchart.ApprovalChain{GeneralManagerID: gm})
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})
}

func TestComputeEscalation(t *testing.T) {
	assignedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	t.Run("not yet due", func(t *testing.T) {
		now := assignedAt.Add(6 * 24 * time.Hour)
		esc := leave.ComputeEscalation(leave.StatusPendingLM, &assignedAt, 7, now)
		assert.False(t, esc.IsEscalated)
		assert.Equal(t, assignedAt.Add(7*24*time.Hour), esc.DueAt)
	})

	t.Run("escalated once past the SLA", func(t *testing.T) {
		now := assignedAt.Add(8 * 24 * time.Hour)
		esc := leave.ComputeEscalation(leave.StatusPendingLM, &assignedAt, 7, now)
		assert.True(t, esc.IsEscalated)
	})

	t.Run("exactly at the boundary is not escalated", func(t *testing.T) {
		now := assignedAt.Add(7 * 24 * time.Hour)
		esc := leave.ComputeEscalation(leave.StatusPendingGM, &assignedAt, 7, now)
		assert.False(t, esc.IsEscalated)
	})

	t.Run("non-pending statuses never escalate", func(t *testing.T) {
		now := assignedAt.Add(30 * 24 * time.Hour)
		for _, s := range []leave.Status{leave.StatusDraft, leave.StatusApproved, leave.StatusRejected, leave.StatusCancelled} {
			esc := leave.ComputeEscalation(s, &assignedAt, 7, now)
			assert.False(t, esc.IsEscalated, "status %s", s)
		}
	})

	t.Run("nil assignment or zero SLA disables the clock", func(t *testing.T) {
		now := assignedAt.Add(30 * 24 * time.Hour)
		assert.False(t, leave.ComputeEscalation(leave.StatusPendingLM, nil, 7, now).IsEscalated)
		assert.False(t, leave.ComputeEscalation(leave.StatusPendingLM, &assignedAt, 0, now).IsEscalated)
	})
}
