package leaverequesterrors

import (
	"net/http"

	"campus-portal/internal/shared/apperror"
)

var (
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid school id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidStudentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid student id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"from_date must be before or equal to_date",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type",
		http.StatusBadRequest,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"reason is required",
		http.StatusBadRequest,
	)
	ErrRemarksRequired = apperror.New(
		apperror.CodeInvalidInput,
		"remarks are required for reject and return",
		http.StatusBadRequest,
	)
	ErrInvalidApprovalFlow = apperror.New(
		apperror.CodeInvalidInput,
		"approval flow must contain only known approval levels",
		http.StatusBadRequest,
	)
	ErrInvalidAction = apperror.New(
		apperror.CodeInvalidInput,
		"action must be one of approve, reject, return",
		http.StatusBadRequest,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidState = apperror.New(
		apperror.CodeInvalidState,
		"leave request is not pending",
		http.StatusConflict,
	)
	ErrNotReturned = apperror.New(
		apperror.CodeInvalidState,
		"only returned requests can be resubmitted",
		http.StatusConflict,
	)
	ErrNotRequestOwner = apperror.New(
		apperror.CodeForbidden,
		"only the requester may resubmit this request",
		http.StatusForbidden,
	)
	ErrStaleState = apperror.New(
		apperror.CodeStaleState,
		"request was already processed by someone else",
		http.StatusConflict,
	)
)
