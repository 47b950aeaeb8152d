package leaveerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrInvalidRequesterID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid requester id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"date range is empty or contains no working days",
		http.StatusBadRequest,
	)
	ErrInvalidStrategy = apperror.New(
		apperror.CodeInvalidInput,
		"strategy must be SMART, CURRENT_ONLY or CARRY_ONLY",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"an active leave request already covers part of this period",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"this transition is not allowed from the request's current status",
		http.StatusBadRequest,
	)
	ErrStaleState = apperror.New(
		apperror.CodeStaleState,
		"the request changed while this decision was in flight, reload and retry",
		http.StatusConflict,
	)
	ErrMissingApprover = apperror.New(
		apperror.CodeInvalidState,
		"no approver is configured for this requester, contact an administrator",
		http.StatusUnprocessableEntity,
	)
	ErrNotCurrentApprover = apperror.New(
		apperror.CodeForbidden,
		"only the currently assigned approver may decide this request",
		http.StatusForbidden,
	)
	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester may perform this action",
		http.StatusForbidden,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"this leave type requires a reason",
		http.StatusBadRequest,
	)
	ErrRejectionNoteRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a note is required when rejecting",
		http.StatusBadRequest,
	)
	ErrPlanInfeasible = apperror.New(
		apperror.CodeInvalidState,
		"the requested days cannot be covered by the selected strategy",
		http.StatusUnprocessableEntity,
	)
)
