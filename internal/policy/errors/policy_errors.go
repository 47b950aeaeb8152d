package policyerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrPolicyYearNotFound = apperror.New(
		apperror.CodeNotFound,
		"no leave policy configured for this year",
		http.StatusNotFound,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found or inactive",
		http.StatusNotFound,
	)
	ErrNoEntitlement = apperror.New(
		apperror.CodeInvalidState,
		"no entitlement rule matches this employee's grade",
		http.StatusUnprocessableEntity,
	)
)
