package balanceerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"no balance account for this employee and year",
		http.StatusNotFound,
	)
	ErrInsufficientBalance = apperror.New(
		apperror.CodeInvalidState,
		"insufficient leave balance for the requested consumption",
		http.StatusUnprocessableEntity,
	)
	ErrReversalBelowZero = apperror.New(
		apperror.CodeInvalidState,
		"reversal would take a used counter below zero",
		http.StatusUnprocessableEntity,
	)
	ErrNegativeConsumption = apperror.New(
		apperror.CodeInvalidInput,
		"consumption days must not be negative",
		http.StatusBadRequest,
	)
)
