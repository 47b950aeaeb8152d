package leave_test

import (
	"testing"

	"leavedesk/internal/leave"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to leave.Status }{
		{leave.StatusDraft, leave.StatusPendingLM},
		{leave.StatusDraft, leave.StatusPendingGM},
		{leave.StatusPendingLM, leave.StatusPendingGM},
		{leave.StatusPendingLM, leave.StatusRejected},
		{leave.StatusPendingLM, leave.StatusCancelled},
		{leave.StatusPendingGM, leave.StatusApproved},
		{leave.StatusPendingGM, leave.StatusRejected},
		{leave.StatusPendingGM, leave.StatusCancelled},
	}
	for _, tt := range allowed {
		assert.True(t, leave.CanTransition(tt.from, tt.to),
			"%s -> %s should be legal", tt.from, tt.to)
	}

	forbidden := []struct{ from, to leave.Status }{
		{leave.StatusDraft, leave.StatusApproved},
		{leave.StatusDraft, leave.StatusCancelled},
		{leave.StatusPendingLM, leave.StatusApproved}, // LM approval advances, never finalizes
		{leave.StatusApproved, leave.StatusCancelled},
		{leave.StatusRejected, leave.StatusPendingLM},
		{leave.StatusCancelled, leave.StatusDraft},
		{leave.StatusApproved, leave.StatusRejected},
	}
	for _, tt := range forbidden {
		assert.False(t, leave.CanTransition(tt.from, tt.to),
			"%s -> %s should be illegal", tt.from, tt.to)
	}
}

func TestStatusPredicates(t *testing.T) {
	assert.True(t, leave.StatusPendingLM.Pending())
	assert.True(t, leave.StatusPendingGM.Pending())
	assert.False(t, leave.StatusDraft.Pending())
	assert.False(t, leave.StatusApproved.Pending())

	assert.True(t, leave.StatusApproved.Terminal())
	assert.True(t, leave.StatusRejected.Terminal())
	assert.True(t, leave.StatusCancelled.Terminal())
	assert.False(t, leave.StatusDraft.Terminal())
	assert.False(t, leave.Status("BOGUS").Terminal())

	assert.True(t, leave.StatusDraft.Valid())
	assert.False(t, leave.Status("ESCALATED").Valid())
}
