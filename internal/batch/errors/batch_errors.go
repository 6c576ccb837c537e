package batcherrors

import (
	"net/http"

	"campus-portal/internal/shared/apperror"
)

var (
	ErrBatchNotFound = apperror.New(
		apperror.CodeNotFound,
		"Batch not found",
		http.StatusNotFound,
	)
	ErrBatchAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Batch with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidSchoolID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid school ID",
		http.StatusBadRequest,
	)
)
