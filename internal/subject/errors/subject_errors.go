package subjecterrors

import (
	"net/http"

	"campus-portal/internal/shared/apperror"
)

var (
	ErrSubjectNotFound = apperror.New(
		apperror.CodeNotFound,
		"Subject not found",
		http.StatusNotFound,
	)
	ErrSubjectCodeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Subject code already exists in this school",
		http.StatusConflict,
	)
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid school ID",
		http.StatusBadRequest,
	)
	ErrInvalidBatchID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid batch ID",
		http.StatusBadRequest,
	)
)
